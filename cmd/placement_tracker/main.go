// Package main provides the placement_tracker CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "placement_tracker",
	Short: "Placement preparation tracker",
	Long: "placement_tracker records job applications, tracks study topics across fixed curricula, " +
		"generates day-by-day study plans and awards badges for progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath  string
	storeName   string
	storePath   string
	databaseURL string
	redisURL    string
	offline     bool
	verbose     bool
	jsonOutput  bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	flags.StringVar(&storeName, "store", "", "Storage backend: memory, file, postgres or redis")
	flags.StringVar(&storePath, "store-path", "", "Data file for the file backend")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL URL for the postgres backend")
	flags.StringVar(&redisURL, "redis-url", "", "Redis URL for the redis backend")
	flags.BoolVar(&offline, "offline", false, "Use the local clock instead of the time API")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

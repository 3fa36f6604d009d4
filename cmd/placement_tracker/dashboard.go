package main

import (
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show applications, study progress and badges at a glance",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	dashboard, err := a.svc.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	return a.emit(dashboard, func() { a.printer.PrintDashboard(&dashboard) })
}

package main

import (
	"strings"

	"github.com/jonathan/placement-tracker/internal/types"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show or change the display name",
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the display name",
	Args:  cobra.NoArgs,
	RunE:  runUserShow,
}

var userSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Change the display name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUserSet,
}

func init() {
	userCmd.AddCommand(userShowCmd, userSetCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserShow(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	name := a.svc.UserName(cmd.Context())
	return a.emit(map[string]string{"name": name}, func() { a.printf("%s\n", name) })
}

func runUserSet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := a.svc.SetUserName(cmd.Context(), types.UserNameRequest{Name: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	return a.emit(map[string]string{"name": name}, func() { a.printf("✓ Display name set to %s\n", name) })
}

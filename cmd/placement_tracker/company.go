package main

import (
	"strings"

	"github.com/jonathan/placement-tracker/internal/types"
	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:     "company",
	Aliases: []string{"companies", "app"},
	Short:   "Track job applications",
}

var companyAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Record a new application with status Applied",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompanyAdd,
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCompanyList,
}

var companyStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Move an application to another status",
	Long:  "Move an application to Applied, Online Assessment (OA), Interview, Rejected or Offer.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompanyStatus,
}

var companyDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyDelete,
}

var companyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count applications per status",
	Args:  cobra.NoArgs,
	RunE:  runCompanyStats,
}

var (
	companyRole     string
	companyLocation string
	companyPackage  string
	companyFilter   string
)

func init() {
	companyAddCmd.Flags().StringVar(&companyRole, "role", "", "Role (defaults to Software Engineer)")
	companyAddCmd.Flags().StringVar(&companyLocation, "location", "", "Location (defaults to Remote)")
	companyAddCmd.Flags().StringVar(&companyPackage, "package", "", "Package range (defaults to 10-20 LPA)")
	companyListCmd.Flags().StringVar(&companyFilter, "status", "", "Only show applications with this status")

	companyCmd.AddCommand(companyAddCmd, companyListCmd, companyStatusCmd, companyDeleteCmd, companyStatsCmd)
	rootCmd.AddCommand(companyCmd)
}

// parseStatus matches a status case-insensitively and accepts "OA".
// Unknown input is returned unchanged so validation can report it.
func parseStatus(s string) types.ApplicationStatus {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "oa") {
		return types.StatusOnlineAssessment
	}
	for _, status := range types.ApplicationStatuses() {
		if strings.EqualFold(s, string(status)) {
			return status
		}
	}
	return types.ApplicationStatus(s)
}

func runCompanyAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.svc.AddApplication(cmd.Context(), types.NewApplicationRequest{
		Name:         strings.Join(args, " "),
		Role:         companyRole,
		Location:     companyLocation,
		PackageRange: companyPackage,
	})
	if err != nil {
		return err
	}
	return a.emit(created, func() { a.printf("✓ Added application #%d: %s (%s)\n", created.ID, created.Name, created.Role) })
}

func runCompanyList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	filter := companyFilter
	if filter != "" && !strings.EqualFold(filter, "all") {
		filter = string(parseStatus(filter))
	}
	apps, err := a.svc.Applications(cmd.Context(), filter)
	if err != nil {
		return err
	}
	return a.emit(apps, func() { a.printer.PrintApplications(apps) })
}

func runCompanyStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	updated, err := a.svc.UpdateApplicationStatus(cmd.Context(), id, types.StatusUpdateRequest{
		Status: parseStatus(strings.Join(args[1:], " ")),
	})
	if err != nil {
		return err
	}
	return a.emit(updated, func() { a.printf("✓ %s is now %s\n", updated.Name, updated.Status) })
}

func runCompanyDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.svc.DeleteApplication(cmd.Context(), id); err != nil {
		return err
	}
	return a.emit(map[string]int64{"deleted": id}, func() { a.printf("✓ Deleted application #%d\n", id) })
}

func runCompanyStats(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stats := a.svc.ApplicationStats(cmd.Context())
	return a.emit(stats, func() { a.printer.PrintStats(stats) })
}

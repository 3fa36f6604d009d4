package main

import (
	"fmt"
	"os"

	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/tracker"
	"github.com/jonathan/placement-tracker/internal/types"
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Track study topics per category",
	Long:  fmt.Sprintf("Track study topics. Categories: %v.", catalog.CategoryKeys()),
}

var studyListCmd = &cobra.Command{
	Use:   "list [CATEGORY]",
	Short: "Show the topics of a category (the active one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStudyList,
}

var studyDoneCmd = &cobra.Command{
	Use:   "done CATEGORY TOPIC_ID",
	Short: "Mark a topic completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudyMark(cmd, args, true)
	},
}

var studyUndoCmd = &cobra.Command{
	Use:   "undo CATEGORY TOPIC_ID",
	Short: "Mark a topic not completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudyMark(cmd, args, false)
	},
}

var studyUseCmd = &cobra.Command{
	Use:   "use CATEGORY",
	Short: "Select the active category",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudyUse,
}

var studyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every category to its catalog topics, all not completed",
	Args:  cobra.NoArgs,
	RunE:  runStudyReset,
}

var studyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write study progress as JSON",
	Args:  cobra.NoArgs,
	RunE:  runStudyExport,
}

var studyImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace study progress with an exported file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudyImport,
}

var (
	studyResetConfirm bool
	studyExportOut    string
)

func init() {
	studyResetCmd.Flags().BoolVarP(&studyResetConfirm, "yes", "y", false, "Confirm the reset")
	studyExportCmd.Flags().StringVarP(&studyExportOut, "out", "o", "", "Output file, e.g. "+tracker.ExportFileName+" (stdout when empty)")

	studyCmd.AddCommand(studyListCmd, studyDoneCmd, studyUndoCmd, studyUseCmd, studyResetCmd, studyExportCmd, studyImportCmd)
	rootCmd.AddCommand(studyCmd)
}

func summaryFor(categories []types.CategorySummary, key string) types.CategorySummary {
	for _, c := range categories {
		if c.Key == key {
			return c
		}
	}
	return types.CategorySummary{Key: key, Title: key}
}

func runStudyList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	overview := a.svc.Study(cmd.Context())
	if len(args) == 1 {
		topics, err := a.svc.CategoryTopics(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		overview.Active = args[0]
		overview.Topics = topics
	}

	return a.emit(overview, func() {
		a.printer.PrintTopics(summaryFor(overview.Categories, overview.Active), overview.Topics)
		a.printer.PrintProgress(overview.Categories)
	})
}

func runStudyMark(cmd *cobra.Command, args []string, completed bool) error {
	id, err := parseNumber("topic id", args[1])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	update, err := a.svc.SetTopicCompleted(cmd.Context(), args[0], id, completed)
	if err != nil {
		return err
	}
	return a.emit(update, func() {
		state := "done"
		if !completed {
			state = "not done"
		}
		a.printf("✓ %s marked %s (%s %d%%)\n", update.Topic.Name, state, catalog.DisplayName(update.Category), update.Percent)
		a.printer.PrintNewBadges(update.NewBadges)
	})
}

func runStudyUse(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.svc.SetActiveCategory(cmd.Context(), types.ActiveCategoryRequest{Category: args[0]}); err != nil {
		return err
	}
	return a.emit(map[string]string{"active": args[0]}, func() { a.printf("✓ Now studying %s\n", catalog.DisplayName(args[0])) })
}

func runStudyReset(cmd *cobra.Command, _ []string) error {
	if !studyResetConfirm {
		return fmt.Errorf("refusing to reset study progress without --yes")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.svc.ResetStudy(cmd.Context()); err != nil {
		return err
	}
	overview := a.svc.Study(cmd.Context())
	return a.emit(overview, func() { a.printf("✓ Study progress reset\n") })
}

func runStudyExport(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if studyExportOut == "" {
		return a.svc.ExportStudy(cmd.Context(), a.out)
	}

	f, err := os.Create(studyExportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", studyExportOut, err)
	}
	if err := a.svc.ExportStudy(cmd.Context(), f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", studyExportOut, err)
	}
	a.printf("✓ Study progress exported to %s\n", studyExportOut)
	return nil
}

func runStudyImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	imported, err := a.svc.ImportStudy(cmd.Context(), f)
	if err != nil {
		return err
	}
	return a.emit(imported, func() { a.printf("✓ Imported %d categories from %s\n", len(imported), args[0]) })
}

package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-tracker/internal/planning"
	"github.com/jonathan/placement-tracker/internal/types"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and follow day-by-day study plans",
}

var planPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a plan without saving it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPlanGenerate(cmd, false)
	},
}

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate and save a plan",
	Long:  "Generates one task per day from --start to --end (at most 40 days apart). The weekly mock day gets a fixed mock test task.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPlanGenerate(cmd, true)
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

var planShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a plan day by day",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's task of the current plan",
	Args:  cobra.NoArgs,
	RunE:  runPlanToday,
}

var planToggleCmd = &cobra.Command{
	Use:   "toggle ID DAY",
	Short: "Flip the completion of a plan day",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanToggle,
}

var planEditDayCmd = &cobra.Command{
	Use:   "edit-day ID DAY TEXT",
	Short: "Replace the task text of a day",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runPlanEditDay,
}

var planEditWeekCmd = &cobra.Command{
	Use:   "edit-week ID WEEK TEXT...",
	Short: "Replace the task texts of a week, one argument per day (\"\" keeps a day)",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runPlanEditWeek,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

var planRemindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List upcoming weeks that still have unplanned days",
	Args:  cobra.NoArgs,
	RunE:  runPlanReminders,
}

var (
	planTitle  string
	planTopics string
	planStart  string
	planEnd    string
	planWeek   int
)

func init() {
	for _, c := range []*cobra.Command{planPreviewCmd, planCreateCmd} {
		c.Flags().StringVarP(&planTitle, "title", "t", "", "Plan title (required)")
		c.Flags().StringVar(&planTopics, "topics", "", "Comma-separated topics: dsa, web, sd, os, oops (required)")
		c.Flags().StringVar(&planStart, "start", "", "Start date YYYY-MM-DD (required)")
		c.Flags().StringVar(&planEnd, "end", "", "End date YYYY-MM-DD (required)")

		for _, name := range []string{"title", "topics", "start", "end"} {
			if err := c.MarkFlagRequired(name); err != nil {
				panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
			}
		}
	}
	planShowCmd.Flags().IntVarP(&planWeek, "week", "w", 0, "Only show this week (1-based)")

	planCmd.AddCommand(planPreviewCmd, planCreateCmd, planListCmd, planShowCmd, planTodayCmd,
		planToggleCmd, planEditDayCmd, planEditWeekCmd, planDeleteCmd, planRemindersCmd)
	rootCmd.AddCommand(planCmd)
}

func splitTopics(s string) []string {
	var topics []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

func runPlanGenerate(cmd *cobra.Command, save bool) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	req := types.NewPlanRequest{
		Title:     planTitle,
		Topics:    splitTopics(planTopics),
		StartDate: planStart,
		EndDate:   planEnd,
	}

	var plan types.StudyPlan
	if save {
		plan, err = a.svc.CreatePlan(cmd.Context(), req)
	} else {
		plan, err = a.svc.PreviewPlan(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	return a.emit(plan, func() {
		a.printer.PrintPlan(&plan, 0)
		if save {
			a.printf("✓ Saved plan #%d\n", plan.ID)
		}
	})
}

func runPlanList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	plans := a.svc.Plans(cmd.Context())
	return a.emit(plans, func() { a.printer.PrintPlans(plans) })
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	plan, err := a.svc.Plan(cmd.Context(), id)
	if err != nil {
		return err
	}
	if planWeek != 0 {
		week, err := planning.WeekTasks(plan.DailyTasks, planWeek)
		if err != nil {
			return err
		}
		if jsonOutput {
			return a.emit(week, nil)
		}
	}
	return a.emit(plan, func() { a.printer.PrintPlan(&plan, planWeek) })
}

func runPlanToday(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	today := a.svc.Today(cmd.Context())
	return a.emit(today, func() { a.printer.PrintToday(today.Date, today.Plan, today.Task, today.Completion) })
}

func runPlanToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	day, err := parseNumber("day", args[1])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.svc.ToggleTask(cmd.Context(), id, day-1)
	if err != nil {
		return err
	}
	return a.emit(task, func() {
		state := "done"
		if !task.Completed {
			state = "not done"
		}
		a.printf("✓ Day %d marked %s\n", task.Day, state)
	})
}

func runPlanEditDay(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	day, err := parseNumber("day", args[1])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.svc.EditDay(cmd.Context(), id, day, types.EditDayRequest{Task: strings.Join(args[2:], " ")})
	if err != nil {
		return err
	}
	return a.emit(task, func() { a.printf("✓ Day %d updated\n", task.Day) })
}

func runPlanEditWeek(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	week, err := parseNumber("week", args[1])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.svc.EditWeek(cmd.Context(), id, week, types.EditWeekRequest{Tasks: args[2:]})
	if err != nil {
		return err
	}
	return a.emit(tasks, func() { a.printf("✓ Week %d updated (%d days)\n", week, len(tasks)) })
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.svc.DeletePlan(cmd.Context(), id); err != nil {
		return err
	}
	return a.emit(map[string]int64{"deleted": id}, func() { a.printf("✓ Deleted plan #%d\n", id) })
}

func runPlanReminders(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	reminders := a.svc.Reminders(cmd.Context())
	return a.emit(reminders, func() { a.printer.PrintReminders(reminders) })
}

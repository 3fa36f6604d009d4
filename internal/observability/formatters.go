// Package observability provides logging setup and the boxed terminal output of the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/placement-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a progress bar
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printNotice prints a one-line box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printNotice(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(text, boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// bar renders percent as a fixed-width bar.
func bar(percent int) string {
	filled := min(max(percent, 0), 100) * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintDashboard outputs the overview: greeting, application counts, progress and badges.
func (p *Printer) PrintDashboard(d *types.Dashboard) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Welcome back, %s!\n\n", d.UserName))

	a := d.Applications
	sb.WriteString(fmt.Sprintf("Applications: %d\n", a.Total))
	sb.WriteString(fmt.Sprintf("  Applied %d · OA %d · Interview %d · Offer %d · Rejected %d\n\n",
		a.Applied, a.OnlineAssessment, a.Interview, a.Offer, a.Rejected))

	sb.WriteString(progressLines(d.Categories))
	sb.WriteString(fmt.Sprintf("\nOverall      %s %3d%%\n", bar(d.OverallProgress), d.OverallProgress))

	if len(d.Badges) > 0 {
		sb.WriteString(fmt.Sprintf("\nBadges (%d):\n", len(d.Badges)))
		count := min(len(d.Badges), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  🏅 %s\n", d.Badges[i].Name))
		}
		if len(d.Badges) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.Badges)-maxItemsToShow))
		}
	}

	p.printBox("PLACEMENT DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintNewBadges(d.NewBadges)
}

func progressLines(categories []types.CategorySummary) string {
	var sb strings.Builder
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("%-12s %s %3d%%  (%d/%d)\n",
			truncate(c.DisplayName, 12), bar(c.Percent), c.Percent, c.Completed, c.Total))
	}
	return sb.String()
}

// PrintProgress outputs the per-category progress bars.
func (p *Printer) PrintProgress(categories []types.CategorySummary) {
	if len(categories) == 0 {
		return
	}
	p.printBox("STUDY PROGRESS", strings.TrimSuffix(progressLines(categories), "\n"))
}

// PrintNewBadges announces badges earned by the last change.
func (p *Printer) PrintNewBadges(badges []types.Badge) {
	for _, b := range badges {
		p.printNotice(fmt.Sprintf("🎉 New badge earned: %s", b.Name))
	}
}

// PrintApplications outputs the application list, newest first as given.
func (p *Printer) PrintApplications(apps []types.Application) {
	if len(apps) == 0 {
		p.printNotice("No applications yet")
		return
	}

	var sb strings.Builder
	for i, a := range apps {
		sb.WriteString(fmt.Sprintf("#%d  %s [%s]\n", a.ID, a.Name, a.Status.Label()))
		sb.WriteString(fmt.Sprintf("    %s · %s · %s\n", a.Role, a.Location, a.PackageRange))
		sb.WriteString(fmt.Sprintf("    Applied %s", a.AppliedDate.Format(types.DateLayout)))
		if i < len(apps)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox(fmt.Sprintf("APPLICATIONS (%d)", len(apps)), sb.String())
}

// PrintStats outputs application counts per status.
func (p *Printer) PrintStats(stats types.ApplicationStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", stats.Total))
	for _, status := range types.ApplicationStatuses() {
		sb.WriteString(fmt.Sprintf("  %-18s %d\n", status, stats.Count(status)))
	}
	p.printBox("APPLICATION STATS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopics outputs one category's checklist.
func (p *Printer) PrintTopics(summary types.CategorySummary, topics []types.Topic) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %d%% (%d/%d)\n\n", bar(summary.Percent), summary.Percent, summary.Completed, summary.Total))
	for _, t := range topics {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("[%s] %2d. %s\n", mark, t.ID, t.Name))
	}
	p.printBox(strings.ToUpper(summary.Title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan outputs a plan header and the first line of each day's task.
// week > 0 restricts the listing to that week.
func (p *Printer) PrintPlan(plan *types.StudyPlan, week int) {
	if plan == nil {
		return
	}

	done := 0
	for _, t := range plan.DailyTasks {
		if t.Completed {
			done++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("#%d  %s → %s (%d days)\n", plan.ID, plan.StartDate, plan.EndDate, plan.Duration))
	sb.WriteString(fmt.Sprintf("Topics: %s\n", strings.Join(plan.Topics, ", ")))
	sb.WriteString(fmt.Sprintf("Done:   %d/%d\n\n", done, len(plan.DailyTasks)))

	for _, t := range plan.DailyTasks {
		if week > 0 && (t.Day-1)/7+1 != week {
			continue
		}
		sb.WriteString(dayLine(t) + "\n")
	}

	p.printBox(strings.ToUpper(plan.Title), strings.TrimSuffix(sb.String(), "\n"))
}

func dayLine(t types.DailyTask) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	first, _, _ := strings.Cut(t.Task, "\n")
	if t.IsMockDay {
		first = "🎯 " + first
	}
	if strings.TrimSpace(first) == "" {
		first = "(not planned)"
	}
	date := t.Date
	if len(date) == len(types.DateLayout) {
		date = date[5:]
	}
	return fmt.Sprintf("[%s] Day %2d %s %s", mark, t.Day, date, first)
}

// PrintPlans outputs a one-line summary per plan.
func (p *Printer) PrintPlans(plans []types.StudyPlan) {
	if len(plans) == 0 {
		p.printNotice("No study plans yet")
		return
	}

	var sb strings.Builder
	for _, plan := range plans {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", plan.ID, plan.Title))
		sb.WriteString(fmt.Sprintf("    %s → %s · %s\n", plan.StartDate, plan.EndDate, strings.Join(plan.Topics, ", ")))
	}
	p.printBox(fmt.Sprintf("STUDY PLANS (%d)", len(plans)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintToday outputs today's task in full, or a notice when nothing is scheduled.
func (p *Printer) PrintToday(date string, plan *types.StudyPlan, task *types.DailyTask, completion int) {
	if plan == nil || task == nil {
		p.printNotice(fmt.Sprintf("No study task scheduled for %s", date))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s · Day %d of %d\n", plan.Title, task.Day, len(plan.DailyTasks)))
	sb.WriteString(fmt.Sprintf("Plan progress: %s %d%%\n\n", bar(completion), completion))
	sb.WriteString(task.Task)
	if task.Completed {
		sb.WriteString("\n\n✅ Done")
	}
	p.printBox("TODAY "+date, sb.String())
}

// PrintReminders outputs upcoming weeks that still need planning.
func (p *Printer) PrintReminders(reminders []types.Reminder) {
	if len(reminders) == 0 {
		p.printNotice("✅ NO UPCOMING WEEKS TO PLAN")
		return
	}

	var sb strings.Builder
	for i, r := range reminders {
		when := fmt.Sprintf("in %d days", r.DaysUntil)
		switch r.DaysUntil {
		case 0:
			when = "today"
		case 1:
			when = "tomorrow"
		}
		sb.WriteString(fmt.Sprintf("⚠ %s: week %d starts %s", r.PlanTitle, r.Week, when))
		if i < len(reminders)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("PLAN REMINDERS", sb.String())
}

package planning

import (
	"strings"
	"time"

	"github.com/jonathan/placement-tracker/internal/types"
)

// DaysPerWeek is the number of plan days grouped into one week.
const DaysPerWeek = 7

// Weeks returns how many (possibly partial) weeks the task list spans.
func Weeks(tasks []types.DailyTask) int {
	return (len(tasks) + DaysPerWeek - 1) / DaysPerWeek
}

// WeekTasks returns the tasks of a 1-based week.
func WeekTasks(tasks []types.DailyTask, week int) ([]types.DailyTask, error) {
	weeks := Weeks(tasks)
	if week < 1 || week > weeks {
		return nil, &IndexError{Kind: "week", Index: week, Max: weeks}
	}
	from := (week - 1) * DaysPerWeek
	to := min(week*DaysPerWeek, len(tasks))
	return tasks[from:to], nil
}

// ToggleTask flips the completion flag of the task at a 0-based index.
func ToggleTask(tasks []types.DailyTask, index int) error {
	if index < 0 || index >= len(tasks) {
		return &IndexError{Kind: "task index", Index: index, Max: len(tasks) - 1}
	}
	tasks[index].Completed = !tasks[index].Completed
	return nil
}

// EditDay replaces the text of a 1-based day. Generation is not re-run.
func EditDay(tasks []types.DailyTask, day int, text string) error {
	if day < 1 || day > len(tasks) {
		return &IndexError{Kind: "day", Index: day, Max: len(tasks)}
	}
	tasks[day-1].Task = text
	return nil
}

// EditWeek replaces the texts of a 1-based week in day order.
// Blank entries keep the current text; entries beyond the week are ignored.
func EditWeek(tasks []types.DailyTask, week int, texts []string) error {
	weekTasks, err := WeekTasks(tasks, week)
	if err != nil {
		return err
	}
	for i := range weekTasks {
		if i >= len(texts) || strings.TrimSpace(texts[i]) == "" {
			continue
		}
		weekTasks[i].Task = texts[i]
	}
	return nil
}

// TodayTask returns the task scheduled for today's date, if any.
func TodayTask(plan *types.StudyPlan, today time.Time) (int, *types.DailyTask) {
	if plan == nil {
		return -1, nil
	}
	date := FormatDate(today)
	for i := range plan.DailyTasks {
		if plan.DailyTasks[i].Date == date {
			return i, &plan.DailyTasks[i]
		}
	}
	return -1, nil
}

// CurrentPlan returns the first plan whose date range contains today.
func CurrentPlan(plans []types.StudyPlan, today time.Time) *types.StudyPlan {
	day := Day(today)
	for i := range plans {
		start, err := ParseDate(plans[i].StartDate)
		if err != nil {
			continue
		}
		end, err := ParseDate(plans[i].EndDate)
		if err != nil {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return &plans[i]
		}
	}
	return nil
}

// WeekReminders lists upcoming weeks (week 2 onward) starting within two days
// that still contain a day without task text.
func WeekReminders(plans []types.StudyPlan, today time.Time) []types.Reminder {
	var reminders []types.Reminder
	day := Day(today)
	for _, plan := range plans {
		start, err := ParseDate(plan.StartDate)
		if err != nil || len(plan.DailyTasks) == 0 {
			continue
		}
		weeks := Weeks(plan.DailyTasks)
		for week := 2; week <= weeks; week++ {
			weekStart := start.AddDate(0, 0, (week-1)*DaysPerWeek)
			daysUntil := SpanDays(day, weekStart)
			if daysUntil < 0 || daysUntil > 2 {
				continue
			}
			weekTasks, _ := WeekTasks(plan.DailyTasks, week)
			if hasBlankTask(weekTasks) {
				reminders = append(reminders, types.Reminder{
					PlanID:    plan.ID,
					PlanTitle: plan.Title,
					Week:      week,
					DaysUntil: daysUntil,
				})
			}
		}
	}
	return reminders
}

func hasBlankTask(tasks []types.DailyTask) bool {
	for _, t := range tasks {
		if strings.TrimSpace(t.Task) == "" {
			return true
		}
	}
	return false
}

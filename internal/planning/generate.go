package planning

import (
	"strings"
	"time"

	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/types"
)

// Options tunes plan generation.
type Options struct {
	// MockWeekday is the weekly mock-test day.
	MockWeekday time.Weekday
}

// DefaultOptions returns the standard generation options (Sunday mock days).
func DefaultOptions() Options {
	return Options{MockWeekday: time.Sunday}
}

// Generate builds one task per calendar day from start to end inclusive.
// Mock weekdays get the fixed mock text; every other day rotates through the
// templates of the selected topics, a side topic and the communication bullet.
// The result depends only on the arguments.
func Generate(start, end time.Time, topics []string, opts Options) ([]types.DailyTask, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}

	first := Day(start)
	total := SpanDays(start, end) + 1
	sides := catalog.SideTopics()

	tasks := make([]types.DailyTask, 0, total)
	for offset := 0; offset < total; offset++ {
		date := first.AddDate(0, 0, offset)
		task := types.DailyTask{
			Day:  offset + 1,
			Date: FormatDate(date),
		}

		if date.Weekday() == opts.MockWeekday {
			task.Task = catalog.MockDayText
			task.IsMockDay = true
		} else {
			task.Task = studyDayText(offset, topics, sides)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func studyDayText(offset int, topics, sides []string) string {
	lines := make([]string, 0, len(topics)+2)
	for _, key := range topics {
		tmpl, ok := catalog.LookupPlanTemplate(key)
		if !ok || len(tmpl.Lines) == 0 {
			continue
		}
		lines = append(lines, "• "+tmpl.Name+": "+tmpl.Lines[offset%len(tmpl.Lines)])
	}
	lines = append(lines, "• Side Topic (30min): "+sides[offset%len(sides)])
	lines = append(lines, catalog.CommunicationBullet)
	return strings.Join(lines, "\n")
}

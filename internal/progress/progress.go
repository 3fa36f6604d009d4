// Package progress computes completion percentages and application statistics.
package progress

import (
	"math"

	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/types"
)

// Percent returns round(100*done/total) with halves rounded up, or 0 when total is 0.
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	return int(math.Floor(float64(done)*100/float64(total) + 0.5))
}

// CompletedCount counts completed topics.
func CompletedCount(topics []types.Topic) int {
	n := 0
	for _, t := range topics {
		if t.Completed {
			n++
		}
	}
	return n
}

// CategoryProgress is the completion percentage of one category.
func CategoryProgress(topics []types.Topic) int {
	return Percent(CompletedCount(topics), len(topics))
}

// OverallProgress averages CategoryProgress over every category present,
// empty categories counting as 0.
func OverallProgress(p types.StudyProgress) int {
	if len(p) == 0 {
		return 0
	}
	sum := 0
	for _, topics := range p {
		sum += CategoryProgress(topics)
	}
	return int(math.Floor(float64(sum)/float64(len(p)) + 0.5))
}

// PlanCompletion is the share of completed tasks of a plan.
func PlanCompletion(tasks []types.DailyTask) int {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return Percent(done, len(tasks))
}

// Summaries returns one line per category: catalog categories first, then any
// other key found in the progress map in sorted order.
func Summaries(p types.StudyProgress) []types.CategorySummary {
	out := make([]types.CategorySummary, 0, len(p))
	for _, key := range OrderedKeys(p) {
		topics := p[key]
		title := key
		if c, ok := catalog.LookupCategory(key); ok {
			title = c.Title
		}
		out = append(out, types.CategorySummary{
			Key:         key,
			Title:       title,
			DisplayName: catalog.DisplayName(key),
			Completed:   CompletedCount(topics),
			Total:       len(topics),
			Percent:     CategoryProgress(topics),
		})
	}
	return out
}

package progress

import (
	"testing"

	"github.com/jonathan/placement-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topics(total, done int) []types.Topic {
	out := make([]types.Topic, total)
	for i := range out {
		out[i] = types.Topic{ID: i + 1, Name: "t", Completed: i < done}
	}
	return out
}

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{0, 12, 0},
		{3, 12, 25},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{7, 8, 88}, // 87.5 rounds up
		{9, 12, 75},
		{12, 12, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.done, tt.total), "%d/%d", tt.done, tt.total)
	}
}

func TestCategoryProgress_Monotonic(t *testing.T) {
	prev := -1
	for done := 0; done <= 10; done++ {
		got := CategoryProgress(topics(10, done))
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
	assert.Equal(t, 0, CategoryProgress(topics(10, 0)))
	assert.Equal(t, 100, CategoryProgress(topics(10, 10)))
	assert.Equal(t, 0, CategoryProgress(nil))
}

func TestOverallProgress(t *testing.T) {
	assert.Equal(t, 0, OverallProgress(nil))
	assert.Equal(t, 0, OverallProgress(types.StudyProgress{}))

	p := types.StudyProgress{
		"dsa": topics(12, 12), // 100
		"os":  topics(10, 5),  // 50
		"cn":  nil,            // 0
	}
	assert.Equal(t, 50, OverallProgress(p))

	p = types.StudyProgress{
		"dsa": topics(12, 3), // 25
		"os":  topics(10, 0), // 0
	}
	assert.Equal(t, 13, OverallProgress(p)) // 12.5 rounds up
}

func TestPlanCompletion(t *testing.T) {
	tasks := []types.DailyTask{{Completed: true}, {}, {}, {Completed: true}}
	assert.Equal(t, 50, PlanCompletion(tasks))
	assert.Equal(t, 0, PlanCompletion(nil))
}

func TestSummaries_Order(t *testing.T) {
	p := types.StudyProgress{
		"zeta":  topics(2, 1),
		"cloud": topics(10, 10),
		"dsa":   topics(12, 6),
		"alpha": nil,
	}
	got := Summaries(p)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"dsa", "cloud", "alpha", "zeta"},
		[]string{got[0].Key, got[1].Key, got[2].Key, got[3].Key})
	assert.Equal(t, "Data Structures & Algorithms", got[0].Title)
	assert.Equal(t, 50, got[0].Percent)
	assert.Equal(t, "Cloud", got[1].DisplayName)
	assert.Equal(t, "zeta", got[3].Title)
}

func TestApplicationStatsAndFilter(t *testing.T) {
	apps := []types.Application{
		{ID: 1, Status: types.StatusApplied},
		{ID: 2, Status: types.StatusInterview},
		{ID: 3, Status: types.StatusInterview},
		{ID: 4, Status: types.StatusOnlineAssessment},
		{ID: 5, Status: types.StatusOffer},
		{ID: 6, Status: types.StatusRejected},
	}

	stats := ApplicationStats(apps)
	assert.Equal(t, types.ApplicationStats{
		Total: 6, Applied: 1, OnlineAssessment: 1, Interview: 2, Rejected: 1, Offer: 1,
	}, stats)

	assert.Len(t, FilterByStatus(apps, FilterAll), 6)
	assert.Len(t, FilterByStatus(apps, ""), 6)
	interviews := FilterByStatus(apps, "Interview")
	require.Len(t, interviews, 2)
	assert.Equal(t, int64(2), interviews[0].ID)
	assert.Empty(t, FilterByStatus(apps, "Ghosted"))
}

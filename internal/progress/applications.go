package progress

import "github.com/jonathan/placement-tracker/internal/types"

// FilterAll selects every application in FilterByStatus.
const FilterAll = "All"

// ApplicationStats counts applications per status.
func ApplicationStats(apps []types.Application) types.ApplicationStats {
	stats := types.ApplicationStats{Total: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case types.StatusApplied:
			stats.Applied++
		case types.StatusOnlineAssessment:
			stats.OnlineAssessment++
		case types.StatusInterview:
			stats.Interview++
		case types.StatusRejected:
			stats.Rejected++
		case types.StatusOffer:
			stats.Offer++
		}
	}
	return stats
}

// FilterByStatus returns the applications in the given status, or all of them for FilterAll / "".
func FilterByStatus(apps []types.Application, status string) []types.Application {
	if status == "" || status == FilterAll {
		return apps
	}
	out := make([]types.Application, 0, len(apps))
	for _, app := range apps {
		if string(app.Status) == status {
			out = append(out, app)
		}
	}
	return out
}

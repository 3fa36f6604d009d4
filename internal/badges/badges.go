// Package badges derives the monotonic set of study achievements.
package badges

import (
	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/progress"
	"github.com/jonathan/placement-tracker/internal/types"
)

// MasterName is the badge awarded when no category with topics is incomplete.
const MasterName = "All Subjects Master"

// tieredCategory earns Bronze/Silver/Gold tiers on top of its completion badge.
const tieredCategory = "dsa"

var tiers = []struct {
	kind      types.BadgeType
	threshold int
}{
	{types.BadgeBronze, 25},
	{types.BadgeSilver, 50},
	{types.BadgeGold, 75},
}

// Derive returns existing plus every badge the current progress qualifies for.
// Existing badges are kept in order and never removed; no name appears twice.
// Categories without topics are skipped, including for the master badge.
func Derive(p types.StudyProgress, existing []types.Badge) []types.Badge {
	out := make([]types.Badge, 0, len(existing)+4)
	have := make(map[string]bool, len(existing))
	add := func(b types.Badge) {
		if have[b.Name] {
			return
		}
		have[b.Name] = true
		out = append(out, b)
	}
	for _, b := range existing {
		add(b)
	}

	allComplete := true
	for _, key := range progress.OrderedKeys(p) {
		topics := p[key]
		if len(topics) == 0 {
			continue
		}
		pct := progress.CategoryProgress(topics)
		if pct < 100 {
			allComplete = false
		}

		display := catalog.DisplayName(key)
		if key == tieredCategory {
			for _, tier := range tiers {
				if pct >= tier.threshold {
					add(types.Badge{Type: tier.kind, Category: display, Name: display + " " + string(tier.kind)})
				}
			}
		}
		if pct == 100 {
			add(types.Badge{Type: types.BadgeCompletion, Category: display, Name: display + " Completion"})
		}
	}

	if allComplete {
		add(types.Badge{Type: types.BadgeMaster, Category: types.OverallCategory, Name: MasterName})
	}
	return out
}

// NewlyEarned returns the badges of after whose names are missing from before.
func NewlyEarned(before, after []types.Badge) []types.Badge {
	known := make(map[string]bool, len(before))
	for _, b := range before {
		known[b.Name] = true
	}
	var fresh []types.Badge
	for _, b := range after {
		if !known[b.Name] {
			fresh = append(fresh, b)
		}
	}
	return fresh
}

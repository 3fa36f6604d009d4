//nolint:revive // types is a standard Go package name pattern
package types

// BadgeType is the tier of an earned badge.
type BadgeType string

// Badge tiers.
const (
	BadgeBronze     BadgeType = "Bronze"
	BadgeSilver     BadgeType = "Silver"
	BadgeGold       BadgeType = "Gold"
	BadgeCompletion BadgeType = "Completion"
	BadgeMaster     BadgeType = "Master"
)

// OverallCategory is the badge category of cross-cutting achievements.
const OverallCategory = "Overall"

// Badge is an achievement. Badges are keyed by Name and never removed once earned.
type Badge struct {
	Type     BadgeType `json:"type"`
	Category string    `json:"category"`
	Name     string    `json:"name"`
}

// Dashboard aggregates everything shown on the overview page.
type Dashboard struct {
	UserName        string            `json:"userName"`
	Applications    ApplicationStats  `json:"applications"`
	Categories      []CategorySummary `json:"categories"`
	OverallProgress int               `json:"overallProgress"`
	Badges          []Badge           `json:"badges"`
	NewBadges       []Badge           `json:"newBadges"`
}

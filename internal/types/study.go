//nolint:revive // types is a standard Go package name pattern
package types

// Topic is one entry of a study category. Only Completed changes after seeding.
type Topic struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// StudyProgress maps a category key to its ordered topics.
// It is persisted verbatim under the "studyProgress" key and is also the export format.
type StudyProgress map[string][]Topic

// TopicUpdateRequest marks a topic done or not done.
type TopicUpdateRequest struct {
	Completed bool `json:"completed"`
}

// CategorySummary is the per-category progress line of the study page and dashboard.
type CategorySummary struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	DisplayName string `json:"displayName"`
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	Percent     int    `json:"percent"`
}

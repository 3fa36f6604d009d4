// Package catalog holds the static study curriculum, plan templates and application option lists.
package catalog

// Category describes one fixed study curriculum.
type Category struct {
	Key         string // storage key, e.g. "dsa"
	Title       string // long title shown on the study page
	DisplayName string // short name used in badge names
}

// SeedTopic is a catalog entry copied into study progress on first use.
type SeedTopic struct {
	ID   int
	Name string
}

// DefaultCategory is the category shown when none was selected before.
const DefaultCategory = "dsa"

var categories = []Category{
	{Key: "dsa", Title: "Data Structures & Algorithms", DisplayName: "DSA"},
	{Key: "fullstack", Title: "Full Stack Development", DisplayName: "Full Stack"},
	{Key: "os", Title: "Operating Systems", DisplayName: "OS"},
	{Key: "cn", Title: "Computer Networks", DisplayName: "Networking"},
	{Key: "cloud", Title: "Cloud Computing", DisplayName: "Cloud"},
}

var seedTopics = map[string][]string{
	"dsa": {
		"Arrays", "Strings", "Linked Lists", "Stacks & Queues", "Trees", "Graphs",
		"Hash Tables", "Recursion", "Sorting Algorithms", "Searching Algorithms",
		"Dynamic Programming", "Greedy Algorithms",
	},
	"fullstack": {
		"HTML & CSS", "JavaScript Fundamentals", "React.js", "Node.js", "Express.js",
		"RESTful APIs", "Database Design", "SQL", "NoSQL", "Authentication & Authorization",
		"Web Security", "Deployment",
	},
	"os": {
		"Process Management", "Threads & Concurrency", "CPU Scheduling", "Memory Management",
		"Virtual Memory", "File Systems", "I/O Systems", "Deadlocks",
		"Inter-process Communication", "OS Security",
	},
	"cn": {
		"Network Models", "TCP/IP Protocol", "HTTP/HTTPS", "DNS", "Routing Algorithms",
		"Network Security", "Socket Programming", "Wireless Networks",
		"Network Troubleshooting", "Cloud Networking",
	},
	"cloud": {
		"Cloud Service Models", "AWS Fundamentals", "Azure Fundamentals", "GCP Fundamentals",
		"Containerization", "Docker", "Kubernetes", "Serverless Architecture",
		"Cloud Security", "Cloud Deployment",
	},
}

// Categories returns the study categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryKeys returns the category keys in display order.
func CategoryKeys() []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.Key
	}
	return keys
}

// LookupCategory finds a category by key.
func LookupCategory(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// DisplayName returns the short badge name for a category key.
// Unknown keys are returned unchanged.
func DisplayName(key string) string {
	if c, ok := LookupCategory(key); ok {
		return c.DisplayName
	}
	return key
}

// SeedTopics returns the ordered topic list for a category, with 1-based ids.
func SeedTopics(key string) []SeedTopic {
	names := seedTopics[key]
	out := make([]SeedTopic, len(names))
	for i, name := range names {
		out[i] = SeedTopic{ID: i + 1, Name: name}
	}
	return out
}

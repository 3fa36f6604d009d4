package catalog

// PlanTemplate is the rotating task-line template for one plan topic.
type PlanTemplate struct {
	Key   string
	Name  string
	Lines []string
}

const (
	// MockDayText is the fixed task text of every mock day.
	MockDayText = "📊 Mock Day: Coding test + Communication practice + Mini project work"

	// CommunicationBullet closes every regular study day.
	CommunicationBullet = "• Communication Practice (30min): Read tech article + explain concepts"
)

var planTemplates = []PlanTemplate{
	{
		Key:  "dsa",
		Name: "DSA",
		Lines: []string{
			"Revise concept + solve ~10 problems",
			"LeetCode practice problems",
			"Algorithm implementation",
			"Problem solving techniques",
			"Data structure implementation",
		},
	},
	{
		Key:  "web",
		Name: "Web Development",
		Lines: []string{
			"Revise topic + implement small task/project",
			"Frontend framework practice",
			"Backend API development",
			"Database integration",
			"Project building",
		},
	},
	{
		Key:  "sd",
		Name: "System Design",
		Lines: []string{
			"Design pattern study",
			"System architecture design",
			"Scalability concepts",
			"Database design",
			"Case studies",
		},
	},
	{
		Key:  "os",
		Name: "Operating Systems",
		Lines: []string{
			"OS concepts revision",
			"Process management",
			"Memory management",
			"File systems",
			"Scheduling algorithms",
		},
	},
	{
		Key:  "oops",
		Name: "OOPS",
		Lines: []string{
			"OOP principles practice",
			"Design patterns",
			"Class design",
			"Inheritance & polymorphism",
			"Real-world examples",
		},
	},
}

var sideTopics = []string{"Git", "Testing", "Networking", "Security", "DevOps"}

// PlanTemplates returns every plan template in selection order.
func PlanTemplates() []PlanTemplate {
	out := make([]PlanTemplate, len(planTemplates))
	copy(out, planTemplates)
	return out
}

// LookupPlanTemplate finds a plan template by key.
func LookupPlanTemplate(key string) (PlanTemplate, bool) {
	for _, t := range planTemplates {
		if t.Key == key {
			return t, true
		}
	}
	return PlanTemplate{}, false
}

// PlanTemplateName returns the display name of a plan topic, or the key when unknown.
func PlanTemplateName(key string) string {
	if t, ok := LookupPlanTemplate(key); ok {
		return t.Name
	}
	return key
}

// SideTopics returns the rotating side topics.
func SideTopics() []string {
	out := make([]string, len(sideTopics))
	copy(out, sideTopics)
	return out
}

//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// DateLayout is the calendar-date format used for plan and task dates.
const DateLayout = "2006-01-02"

// DailyTask is one calendar day of a study plan.
type DailyTask struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
	IsMockDay bool   `json:"isMockDay"`
}

// StudyPlan is a generated day-by-day plan, persisted inside the "studyPlans" list.
type StudyPlan struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Topics     []string    `json:"topics"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	DailyTasks []DailyTask `json:"dailyTasks"`
	Duration   int         `json:"duration"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewPlanRequest is the input for creating (or previewing) a study plan.
type NewPlanRequest struct {
	Title     string   `json:"title" validate:"required,notblank,max=200"`
	Topics    []string `json:"topics" validate:"required,min=1,unique,dive,plan_topic"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// Validate validates the NewPlanRequest using the validator.
// Date ordering and span limits are checked by the planning package.
func (r *NewPlanRequest) Validate() error {
	return validate.Struct(r)
}

// EditDayRequest replaces the task text of a single day.
type EditDayRequest struct {
	Task string `json:"task" validate:"required,notblank"`
}

// Validate validates the EditDayRequest using the validator.
func (r *EditDayRequest) Validate() error {
	return validate.Struct(r)
}

// EditWeekRequest replaces the task texts of one week; empty entries keep the current text.
type EditWeekRequest struct {
	Tasks []string `json:"tasks" validate:"required,min=1,max=7"`
}

// Validate validates the EditWeekRequest using the validator.
func (r *EditWeekRequest) Validate() error {
	return validate.Struct(r)
}

// Reminder flags an upcoming plan week that still has days without task text.
type Reminder struct {
	PlanID    int64  `json:"planId"`
	PlanTitle string `json:"planTitle"`
	Week      int    `json:"week"`
	DaysUntil int    `json:"daysUntil"`
}

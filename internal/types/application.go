// Package types provides the persisted records and request types of the placement tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ApplicationStatus is the hiring stage of a job application.
type ApplicationStatus string

// Application statuses. Any status may move to any other; Applied is only the initial one.
const (
	StatusApplied          ApplicationStatus = "Applied"
	StatusOnlineAssessment ApplicationStatus = "Online Assessment"
	StatusInterview        ApplicationStatus = "Interview"
	StatusRejected         ApplicationStatus = "Rejected"
	StatusOffer            ApplicationStatus = "Offer"
)

// ApplicationStatuses lists every status in pipeline order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusApplied,
		StatusOnlineAssessment,
		StatusInterview,
		StatusRejected,
		StatusOffer,
	}
}

// Valid reports whether s is one of the fixed statuses.
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the short label used in compact listings.
func (s ApplicationStatus) Label() string {
	if s == StatusOnlineAssessment {
		return "OA"
	}
	return string(s)
}

// Application is one tracked job application, persisted under the "companies" key.
type Application struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	Location     string            `json:"location"`
	PackageRange string            `json:"packageRange"`
	Status       ApplicationStatus `json:"status"`
	AppliedDate  time.Time         `json:"appliedDate"`
	LastUpdated  time.Time         `json:"lastUpdated"`
}

// NewApplicationRequest is the input for recording a new application.
// Empty role, location and package fall back to the catalog defaults.
type NewApplicationRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=200"`
	Role         string `json:"role,omitempty" validate:"omitempty,role_option"`
	Location     string `json:"location,omitempty" validate:"omitempty,location_option"`
	PackageRange string `json:"packageRange,omitempty" validate:"omitempty,package_option"`
}

// Validate validates the NewApplicationRequest using the validator.
func (r *NewApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// StatusUpdateRequest moves an application to another status.
type StatusUpdateRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,application_status"`
}

// Validate validates the StatusUpdateRequest using the validator.
func (r *StatusUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// ApplicationStats counts applications per status.
type ApplicationStats struct {
	Total            int `json:"total"`
	Applied          int `json:"applied"`
	OnlineAssessment int `json:"onlineAssessment"`
	Interview        int `json:"interview"`
	Rejected         int `json:"rejected"`
	Offer            int `json:"offer"`
}

// Count returns the number of applications in the given status.
func (s ApplicationStats) Count(status ApplicationStatus) int {
	switch status {
	case StatusApplied:
		return s.Applied
	case StatusOnlineAssessment:
		return s.OnlineAssessment
	case StatusInterview:
		return s.Interview
	case StatusRejected:
		return s.Rejected
	case StatusOffer:
		return s.Offer
	default:
		return 0
	}
}

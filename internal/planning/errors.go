// Package planning generates day-by-day study plans and operates on their task lists.
package planning

import (
	"errors"
	"fmt"
)

// MaxSpanDays is the largest allowed distance in days between a plan's start and end date.
const MaxSpanDays = 40

// ErrNoTopics is returned when a plan is generated without any topic.
var ErrNoTopics = errors.New("at least one topic must be selected")

// InvalidRangeError reports a start/end pair outside 0..MaxSpanDays days.
type InvalidRangeError struct {
	Start string
	End   string
	Span  int
}

func (e *InvalidRangeError) Error() string {
	if e.Span < 0 {
		return fmt.Sprintf("invalid plan range %s..%s: end date is before start date", e.Start, e.End)
	}
	return fmt.Sprintf("invalid plan range %s..%s: plan duration cannot exceed %d days (got %d)",
		e.Start, e.End, MaxSpanDays, e.Span)
}

// IndexError reports a day, week or task index outside the plan.
type IndexError struct {
	Kind  string
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d out of range (1..%d)", e.Kind, e.Index, e.Max)
}

package planning

import (
	"fmt"
	"time"

	"github.com/jonathan/placement-tracker/internal/types"
)

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(types.DateLayout)
}

// Day strips the clock from t, keeping its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SpanDays returns the number of calendar days from start to end (negative when end is earlier).
func SpanDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// ValidateRange checks that end is on or after start and at most MaxSpanDays later.
func ValidateRange(start, end time.Time) error {
	span := SpanDays(start, end)
	if span < 0 || span > MaxSpanDays {
		return &InvalidRangeError{Start: FormatDate(start), End: FormatDate(end), Span: span}
	}
	return nil
}

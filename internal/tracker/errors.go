package tracker

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/planning"
)

// ValidationError indicates rejected input. Nothing was written.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates that no record with the given id exists.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ImportError indicates an import document that was not accepted. The store is unchanged.
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("import failed: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

func notFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: strconv.FormatInt(id, 10)}
}

// invalid converts validator, range and index errors into tracker errors.
func invalid(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: fieldMessage(fe), Cause: err}
	}

	var rangeErr *planning.InvalidRangeError
	if errors.As(err, &rangeErr) {
		return &ValidationError{Field: "endDate", Message: rangeMessage(rangeErr), Cause: err}
	}

	var indexErr *planning.IndexError
	if errors.As(err, &indexErr) {
		return &NotFoundError{Kind: indexErr.Kind, ID: strconv.Itoa(indexErr.Index)}
	}

	if errors.Is(err, planning.ErrNoTopics) {
		return &ValidationError{Field: "topics", Message: err.Error(), Cause: err}
	}

	return &ValidationError{Message: err.Error(), Cause: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		return "must have at most " + fe.Param() + " " + unit(fe)
	case "min":
		return "must have at least " + fe.Param() + " " + unit(fe)
	case "unique":
		return "must not contain duplicates"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "application_status":
		return "must be one of Applied, Online Assessment, Interview, Rejected, Offer"
	case "role_option":
		return "must be one of " + strings.Join(catalog.RoleOptions(), ", ")
	case "location_option":
		return "must be one of " + strings.Join(catalog.LocationOptions(), ", ")
	case "package_option":
		return "must be one of " + strings.Join(catalog.PackageOptions(), ", ")
	case "study_category":
		return "must be one of " + strings.Join(catalog.CategoryKeys(), ", ")
	case "plan_topic":
		return fmt.Sprintf("unknown topic %q", fe.Value())
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func unit(fe validator.FieldError) string {
	if fe.Kind() == reflect.Slice {
		return "entries"
	}
	return "characters"
}

func rangeMessage(e *planning.InvalidRangeError) string {
	if e.Span < 0 {
		return "end date must be on or after the start date"
	}
	return fmt.Sprintf("plan duration cannot exceed %d days", planning.MaxSpanDays)
}

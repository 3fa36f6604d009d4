package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/placement-tracker/internal/tracker"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *tracker.ValidationError
	var importErr *tracker.ImportError
	var notFoundErr *tracker.NotFoundError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &importErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Package apperror defines the error taxonomy shared by all domain
// services. Services wrap these sentinels with context via fmt.Errorf
// and %w; handlers translate them to HTTP statuses in one place.
package apperror

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks caller input that fails a domain rule
	// (out-of-range ACT answer, empty phone digits, non-positive
	// personal best). Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing record. Login failures use it too,
	// surfaced as one generic invalid-credentials message so the
	// response never reveals which field was wrong.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation, e.g. registering an
	// email that is already on file.
	ErrConflict = errors.New("conflict")

	// ErrBackend marks a failed call to the persistence service.
	// History reads degrade to an empty dataset instead of returning
	// it; writes propagate it so the caller knows nothing was saved.
	ErrBackend = errors.New("backend unavailable")
)

// HTTPStatus maps a service error to the response status code.
// Unrecognized errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

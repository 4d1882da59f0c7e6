package tracker

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates the issue, label or repository does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the token was missing, invalid or lacked scope.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx tracker response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker returned status %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return nil
	}
}

func errorCode(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP_%d", apiErr.Status)
	default:
		return "UNKNOWN"
	}
}

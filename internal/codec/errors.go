package codec

import (
	"errors"
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// ErrMalformedBody indicates an issue body does not follow its template.
var ErrMalformedBody = errors.New("malformed issue body")

// MalformedBodyError identifies the issue whose body failed to parse.
type MalformedBodyError struct {
	Kind   domain.Category
	Number int
	URL    string
	Reason string
}

func (e *MalformedBodyError) Error() string {
	msg := fmt.Sprintf("%s issue #%d (%s): %s", e.Kind, e.Number, e.URL, ErrMalformedBody)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *MalformedBodyError) Unwrap() error { return ErrMalformedBody }

func malformed(kind domain.Category, issue *domain.Issue, reason string) error {
	return &MalformedBodyError{Kind: kind, Number: issue.Number, URL: issue.URL, Reason: reason}
}

package document

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidationError lists every problem found in a document.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("document validation failed (%d errors):", len(e.Problems))
	for _, p := range e.Problems {
		msg += "\n  - " + p.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

// Check runs Validate and folds the problems into one error, or nil.
func Check(f *File, locales []string) error {
	if errs := Validate(f, locales); len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// Validate checks the document against the schema rules. locales lists the
// locale codes that can be loaded; an empty list skips the locale check.
func Validate(f *File, locales []string) []error {
	var errs []error

	if f.Schema != "" && f.Schema != SchemaURL {
		errs = append(errs, fmt.Errorf("$schema: unexpected value %q", f.Schema))
	}
	p := &f.PLD
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if p.Locale == "" {
		errs = append(errs, fmt.Errorf("locale is required"))
	} else if len(locales) > 0 && !slices.Contains(locales, p.Locale) {
		errs = append(errs, fmt.Errorf("locale: unknown locale %q (known: %s)", p.Locale, strings.Join(locales, ", ")))
	}

	for i, v := range p.Versions {
		errs = append(errs, validateVersion(fmt.Sprintf("versions[%d]", i), &v)...)
	}
	for i := range p.Deliverables {
		errs = append(errs, validateDeliverable(fmt.Sprintf("deliverables[%d]", i), &p.Deliverables[i])...)
	}
	return errs
}

func validateVersion(prefix string, v *domain.Version) []error {
	var errs []error
	if err := checkDate(v.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: %w", prefix, err))
	}
	if !versionPattern.MatchString(v.Version) {
		errs = append(errs, fmt.Errorf("%s.version: invalid version %q (expected MAJOR.MINOR.PATCH)", prefix, v.Version))
	}
	return errs
}

func validateDeliverable(prefix string, d *domain.Deliverable) []error {
	var errs []error
	if err := checkName(d.Name); err != nil {
		errs = append(errs, fmt.Errorf("%s.name: %w", prefix, err))
	}
	for i := range d.Subsets {
		s := &d.Subsets[i]
		sp := fmt.Sprintf("%s.subsets[%d]", prefix, i)
		if err := checkName(s.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s.name: %w", sp, err))
		}
		for j := range s.UserStories {
			errs = append(errs, validateUserStory(fmt.Sprintf("%s.user_stories[%d]", sp, j), &s.UserStories[j])...)
		}
	}
	return errs
}

func validateUserStory(prefix string, u *domain.UserStory) []error {
	var errs []error
	if err := checkName(u.Name); err != nil {
		errs = append(errs, fmt.Errorf("%s.name: %w", prefix, err))
	}
	if u.EstimatedDuration <= 0 || math.Mod(u.EstimatedDuration*2, 1) != 0 {
		errs = append(errs, fmt.Errorf("%s.estimated_duration: %v must be a positive multiple of 0.5", prefix, u.EstimatedDuration))
	} else if u.EstimatedDuration > domain.MaxEstimatedDuration {
		errs = append(errs, fmt.Errorf("%s.estimated_duration: %v exceeds %d man-days", prefix, u.EstimatedDuration, domain.MaxEstimatedDuration))
	}
	if !u.Status.Valid() {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, u.Status))
	}
	if u.DueDate != "" {
		if err := checkDate(u.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.due_date: %w", prefix, err))
		}
	}
	if u.EndDate != "" {
		if err := checkDate(u.EndDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.end_date: %w", prefix, err))
		}
	}
	return errs
}

func checkDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format %q (expected YYYY-MM-DD)", s)
	}
	return nil
}

// Names become issue titles. A leading space or an empty name would not
// survive the title split on parse.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("is required")
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%q has leading or trailing whitespace", name)
	}
	return nil
}

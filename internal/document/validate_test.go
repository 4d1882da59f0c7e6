package document

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

var knownLocales = []string{"en_US", "fr_FR"}

func validFile(t *testing.T) *File {
	t.Helper()
	f, err := Load(filepath.Join("testdata", "plan.json"))
	require.NoError(t, err)
	return f
}

func storyOf(f *File) *domain.UserStory {
	return &f.Deliverables[0].Subsets[0].UserStories[0]
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate(validFile(t), knownLocales))
	assert.NoError(t, Check(validFile(t), knownLocales))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
		want   string
	}{
		{"missing title", func(f *File) { f.Title = "" }, "title is required"},
		{"missing locale", func(f *File) { f.Locale = "" }, "locale is required"},
		{"unknown locale", func(f *File) { f.Locale = "de_DE" }, `unknown locale "de_DE"`},
		{"bad schema", func(f *File) { f.Schema = "https://example.test/other.json" }, "$schema"},
		{"bad version", func(f *File) { f.Versions[0].Version = "1.0" }, "versions[0].version"},
		{"bad version date", func(f *File) { f.Versions[0].Date = "10/01/2024" }, "versions[0].date"},
		{"empty deliverable name", func(f *File) { f.Deliverables[0].Name = "" }, "deliverables[0].name: is required"},
		{"padded subset name", func(f *File) { f.Deliverables[0].Subsets[0].Name = " Sessions" }, "deliverables[0].subsets[0].name"},
		{"zero duration", func(f *File) { storyOf(f).EstimatedDuration = 0 }, "user_stories[0].estimated_duration"},
		{"quarter day", func(f *File) { storyOf(f).EstimatedDuration = 1.25 }, "positive multiple of 0.5"},
		{"huge duration", func(f *File) { storyOf(f).EstimatedDuration = 2e18 }, "exceeds 100000 man-days"},
		{"infinite duration", func(f *File) { storyOf(f).EstimatedDuration = math.Inf(1) }, "user_stories[0].estimated_duration"},
		{"bad status", func(f *File) { storyOf(f).Status = "Blocked" }, `status: invalid value "Blocked"`},
		{"bad due date", func(f *File) { storyOf(f).DueDate = "tomorrow" }, "user_stories[0].due_date"},
		{"bad end date", func(f *File) { storyOf(f).EndDate = "2024-13-01" }, "user_stories[0].end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile(t)
			tt.mutate(f)

			errs := Validate(f, knownLocales)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), tt.want)
		})
	}
}

func TestValidate_SkipsLocaleCheckWithoutRegistry(t *testing.T) {
	f := validFile(t)
	f.Locale = "de_DE"
	assert.Empty(t, Validate(f, nil))
}

func TestCheck_CollectsAllProblems(t *testing.T) {
	f := validFile(t)
	f.Title = ""
	storyOf(f).EstimatedDuration = -1

	err := Check(f, knownLocales)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Problems, 2)
	assert.Contains(t, err.Error(), "(2 errors)")
}

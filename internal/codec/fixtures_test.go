package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
)

func newCodec(t *testing.T, code string) *Codec {
	t.Helper()
	dict, err := locale.Load(code)
	require.NoError(t, err)
	c, err := New(dict)
	require.NoError(t, err)
	return c
}

func ptr(s string) *string { return &s }

func fullPLD() *domain.PLD {
	return &domain.PLD{
		Title:       "Project Log Document",
		Subtitle:    ptr("Issues linker"),
		Description: ptr("Plan & track <work>"),
		Locale:      "en_US",
		Authors:     []string{"Alice Martin", "Bob Stone"},
		Versions: []domain.Version{
			{Date: "2024-01-10", Version: "1.0.0", Authors: []string{"Alice Martin"}, Sections: "All", Comment: "Initial draft"},
			{Date: "2024-02-01", Version: "1.1.0", Authors: []string{"Alice Martin", "Bob Stone"}, Sections: "2.1", Comment: "Added login"},
		},
	}
}

func minimalPLD() *domain.PLD {
	return &domain.PLD{Title: "Bare", Locale: "en_US"}
}

func fullStory() *domain.UserStory {
	return &domain.UserStory{
		Name:              "Login",
		User:              "registered user",
		Action:            "sign in with my email",
		Description:       "Form with email and password",
		DefinitionsOfDone: []string{"Form validates input", "Errors are shown"},
		Assignments:       []string{"Alice Martin", "Bob Stone"},
		EstimatedDuration: 1.5,
		Status:            domain.StatusWIP,
		DueDate:           "2024-03-01",
		EndDate:           "2024-03-04",
		Comments:          domain.InlineComment("ok"),
	}
}

func listCommentStory() *domain.UserStory {
	u := fullStory()
	u.Name = "Reset password"
	u.Status = domain.StatusDone
	u.Comments = domain.CommentList("a", "b")
	return u
}

func minimalStory() *domain.UserStory {
	return &domain.UserStory{Name: "Logout", EstimatedDuration: 0.5}
}

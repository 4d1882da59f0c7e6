package testutil

import (
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// Story options
type StoryOption func(*domain.UserStory)

func WithStatus(s domain.Status) StoryOption {
	return func(u *domain.UserStory) { u.Status = s }
}

func WithDuration(days float64) StoryOption {
	return func(u *domain.UserStory) { u.EstimatedDuration = days }
}

func WithAssignments(names ...string) StoryOption {
	return func(u *domain.UserStory) { u.Assignments = names }
}

func WithComments(c domain.Comments) StoryOption {
	return func(u *domain.UserStory) { u.Comments = c }
}

func NewTestStory(name string, opts ...StoryOption) domain.UserStory {
	u := domain.UserStory{
		Name:              name,
		User:              "registered user",
		Action:            "use " + name,
		DefinitionsOfDone: []string{name + " works"},
		EstimatedDuration: 1,
		Status:            domain.StatusToDo,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func NewTestSubset(name string, stories ...domain.UserStory) domain.Subset {
	return domain.Subset{Name: name, UserStories: stories}
}

func NewTestDeliverable(name string, subsets ...domain.Subset) domain.Deliverable {
	desc := name + " deliverable"
	return domain.Deliverable{Name: name, Description: &desc, Subsets: subsets}
}

// NewTestPLD returns a small two-deliverable plan in en_US:
//
//	1 Accounts
//	  1.1 Sessions: Login, Logout
//	  1.2 Profile: Edit profile
//	2 Billing
//	  2.1 Invoices: Export PDF
func NewTestPLD() *domain.PLD {
	subtitle := "Issues linker"
	return &domain.PLD{
		Title:    "Project Log Document",
		Subtitle: &subtitle,
		Locale:   "en_US",
		Authors:  []string{"Alice Martin", "Bob Stone"},
		Versions: []domain.Version{
			{Date: "2024-01-10", Version: "1.0.0", Authors: []string{"Alice Martin"}, Sections: "All", Comment: "Initial draft"},
		},
		Deliverables: []domain.Deliverable{
			NewTestDeliverable("Accounts",
				NewTestSubset("Sessions",
					NewTestStory("Login", WithStatus(domain.StatusWIP), WithDuration(1.5), WithAssignments("Alice")),
					NewTestStory("Logout", WithStatus(domain.StatusDone), WithDuration(0.5), WithAssignments("Bob")),
				),
				NewTestSubset("Profile",
					NewTestStory("Edit profile", WithAssignments("Alice", "Bob"), WithComments(domain.CommentList("a", "b"))),
				),
			),
			NewTestDeliverable("Billing",
				NewTestSubset("Invoices",
					NewTestStory("Export PDF", WithStatus(domain.StatusAbandoned), WithComments(domain.InlineComment("later"))),
				),
			),
		},
	}
}

// CountIssues is the number of issues a plan maps to, root included.
func CountIssues(p *domain.PLD) int {
	n := 1
	for _, d := range p.Deliverables {
		n++
		for _, s := range d.Subsets {
			n += 1 + len(s.UserStories)
		}
	}
	return n
}

// Title formats a numbered issue title the way the importer does.
func Title(name string, coord ...int) string {
	return fmt.Sprintf("%s %s", domain.Coordinate(coord), name)
}

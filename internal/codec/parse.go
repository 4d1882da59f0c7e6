package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// ParsePLD recovers the root document fields from the root issue body.
// Deliverables are not part of the body and are left empty.
func (c *Codec) ParsePLD(issue *domain.Issue) (*domain.PLD, error) {
	m, ok := c.pld.match(issue.Body)
	if !ok {
		return nil, malformed(domain.CategoryPLD, issue, "document table not found")
	}

	p := &domain.PLD{
		Title:       m.text("title"),
		Subtitle:    optional(m.text("subtitle")),
		Description: optional(m.text("description")),
		Locale:      m.text("locale"),
		Authors:     splitList(m.text("authors")),
	}

	rows, _ := m.group("versions")
	for i, cells := range fragmentRows(rows) {
		if len(cells) != 5 {
			return nil, malformed(domain.CategoryPLD, issue,
				fmt.Sprintf("revision row %d has %d cells, want 5", i+1, len(cells)))
		}
		p.Versions = append(p.Versions, domain.Version{
			Date:     cells[0],
			Version:  cells[1],
			Authors:  splitList(cells[2]),
			Sections: cells[3],
			Comment:  cells[4],
		})
	}
	return p, nil
}

// ParseDeliverable recovers a deliverable from its issue. The name comes from
// the title; subsets are filled in by the caller.
func (c *Codec) ParseDeliverable(issue *domain.Issue) (*domain.Deliverable, error) {
	desc, err := c.parseDescription(domain.CategoryDeliverable, issue)
	if err != nil {
		return nil, err
	}
	_, name := domain.SplitTitle(issue.Title)
	return &domain.Deliverable{Name: name, Description: desc}, nil
}

// ParseSubset recovers a subset from its issue. The name comes from the
// title; user stories are filled in by the caller.
func (c *Codec) ParseSubset(issue *domain.Issue) (*domain.Subset, error) {
	desc, err := c.parseDescription(domain.CategorySubset, issue)
	if err != nil {
		return nil, err
	}
	_, name := domain.SplitTitle(issue.Title)
	return &domain.Subset{Name: name, Description: desc}, nil
}

// An empty body, or one holding only a checklist, has no description.
func (c *Codec) parseDescription(kind domain.Category, issue *domain.Issue) (*string, error) {
	body := strings.ReplaceAll(issue.Body, "\r\n", "\n")
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || trimmed == descriptionHeading || strings.HasPrefix(trimmed, linkedIssuesHeading) {
		return nil, nil
	}
	m, ok := c.container.match(body)
	if !ok {
		return nil, malformed(kind, issue, "missing "+descriptionHeading+" section")
	}
	return optional(m.text("description")), nil
}

// ParseUserStory recovers a user story from its issue body.
func (c *Codec) ParseUserStory(issue *domain.Issue) (*domain.UserStory, error) {
	m, ok := c.userStory.match(issue.Body)
	if !ok {
		return nil, malformed(domain.CategoryUserStory, issue, "user story table not found")
	}

	days, err := strconv.ParseFloat(m.text("estimated_duration"), 64)
	if err != nil {
		return nil, malformed(domain.CategoryUserStory, issue, "estimated duration is not a number")
	}

	dod, _ := m.group("definitions_of_done")
	u := &domain.UserStory{
		Name:              m.text("name"),
		User:              m.text("user"),
		Action:            m.text("action"),
		Description:       m.text("description"),
		DefinitionsOfDone: fragmentItems(dod),
		Assignments:       splitList(m.text("assignments")),
		EstimatedDuration: days,
		DueDate:           m.text("due_date"),
		EndDate:           m.text("end_date"),
	}

	if label := m.text("status"); label != "" {
		u.Status = c.dict.StatusFromLabel(label)
		if u.Status == domain.StatusUnknown {
			c.warn(issue, "unrecognized status %q", label)
		}
	}

	if text, ok := m.group("comments_text"); ok {
		u.Comments = domain.InlineComment(unescape(text))
	} else if items, ok := m.group("comments_items"); ok {
		u.Comments = domain.CommentList(fragmentItems(items)...)
	}
	return u, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Package report derives workload statistics from a plan.
package report

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// AuthorDays is the estimate assigned to one document author.
type AuthorDays struct {
	Author  string
	ManDays float64
}

// Stats summarizes the estimates of a plan.
type Stats struct {
	TotalManDays float64
	// Distribution has one entry per document author, in document order.
	Distribution []AuthorDays
	Stories      int
}

// StoryRef locates a user story in the plan.
type StoryRef struct {
	Coordinate domain.Coordinate
	Name       string
	Status     domain.Status
}

// AuthorReport is the advancement of one author's stories, most advanced
// first.
type AuthorReport struct {
	Author  string
	Stories []StoryRef
}

// matchAuthor returns the index of the first document author containing the
// assignment, so that "Alice" matches "Alice Martin".
func matchAuthor(authors []string, assignment string) int {
	if assignment == "" {
		return -1
	}
	return slices.IndexFunc(authors, func(a string) bool { return strings.Contains(a, assignment) })
}

// Compute totals the estimated man-days. Each assignment credits the full
// estimate to the first author it matches; assignments matching no author
// only count toward the total.
func Compute(p *domain.PLD) *Stats {
	s := &Stats{Distribution: make([]AuthorDays, len(p.Authors))}
	for i, a := range p.Authors {
		s.Distribution[i].Author = a
	}
	walk(p, func(_ domain.Coordinate, u *domain.UserStory) {
		s.Stories++
		s.TotalManDays += u.EstimatedDuration
		for _, assignment := range u.Assignments {
			if i := matchAuthor(p.Authors, assignment); i >= 0 {
				s.Distribution[i].ManDays += u.EstimatedDuration
			}
		}
	})
	return s
}

// Advancement lists, per document author with at least one story, every
// story assigned to them sorted by status priority. An assignment counts for
// every author it matches.
func Advancement(p *domain.PLD) []AuthorReport {
	byAuthor := make([][]StoryRef, len(p.Authors))
	walk(p, func(coord domain.Coordinate, u *domain.UserStory) {
		ref := StoryRef{Coordinate: coord, Name: u.Name, Status: u.Status}
		for i, author := range p.Authors {
			if slices.ContainsFunc(u.Assignments, func(a string) bool { return a != "" && strings.Contains(author, a) }) {
				byAuthor[i] = append(byAuthor[i], ref)
			}
		}
	})

	var out []AuthorReport
	for i, stories := range byAuthor {
		if len(stories) == 0 {
			continue
		}
		slices.SortStableFunc(stories, func(a, b StoryRef) int {
			return cmp.Compare(b.Status.Priority(), a.Status.Priority())
		})
		out = append(out, AuthorReport{Author: p.Authors[i], Stories: stories})
	}
	return out
}

// FormatDays prints a man-day figure without trailing zeros.
func FormatDays(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

func walk(p *domain.PLD, visit func(domain.Coordinate, *domain.UserStory)) {
	for di := range p.Deliverables {
		d := &p.Deliverables[di]
		for si := range d.Subsets {
			s := &d.Subsets[si]
			for ui := range s.UserStories {
				visit(domain.Coordinate{di + 1, si + 1, ui + 1}, &s.UserStories[ui])
			}
		}
	}
}

package domain

import "math"

// Status is the work status of a user story. The zero value is StatusUnknown,
// used both for stories without a status and for display strings no locale maps.
type Status string

const (
	StatusUnknown   Status = ""
	StatusToDo      Status = "To do"
	StatusWIP       Status = "WIP"
	StatusDone      Status = "Done"
	StatusAbandoned Status = "Abandoned"
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusToDo, StatusWIP, StatusDone, StatusAbandoned}

// Valid reports whether s is one of the known statuses or unknown.
func (s Status) Valid() bool {
	switch s {
	case StatusUnknown, StatusToDo, StatusWIP, StatusDone, StatusAbandoned:
		return true
	}
	return false
}

// Priority orders statuses for the advancement report, highest first.
func (s Status) Priority() int {
	switch s {
	case StatusDone:
		return 4
	case StatusWIP:
		return 3
	case StatusToDo:
		return 2
	case StatusAbandoned:
		return 1
	default:
		return 0
	}
}

// Category is one of the four hierarchy labels carried by tracker issues.
type Category string

const (
	CategoryPLD         Category = "pld"
	CategoryDeliverable Category = "deliverable"
	CategorySubset      Category = "subset"
	CategoryUserStory   Category = "user-story"
)

// Categories is the closed label taxonomy, root first.
var Categories = []Category{CategoryPLD, CategoryDeliverable, CategorySubset, CategoryUserStory}

// Depth is the coordinate arity expected for issues of this category.
func (c Category) Depth() int {
	switch c {
	case CategoryDeliverable:
		return 1
	case CategorySubset:
		return 2
	case CategoryUserStory:
		return 3
	default:
		return 0
	}
}

// CategoryOf returns the single category label among labels. It reports false
// when none or more than one category label is present.
func CategoryOf(labels []string) (Category, bool) {
	var found Category
	n := 0
	for _, l := range labels {
		for _, c := range Categories {
			if l == string(c) && c != found {
				found = c
				n++
			}
		}
	}
	return found, n == 1
}

// MaxEstimatedDuration bounds a story estimate in man-days so the hour
// figure rendered next to it stays representable.
const MaxEstimatedDuration = 100_000

func ceilHours(days float64) int {
	return int(math.Ceil(days * 8))
}

// Package tree rebuilds the document hierarchy from a flat issue listing.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

var (
	// ErrNoRoot indicates the listing held no issue labeled as the document root.
	ErrNoRoot = errors.New("no pld issue found")

	// ErrMalformedIssue indicates a labeled issue whose title cannot be placed.
	ErrMalformedIssue = errors.New("malformed issue")
)

// MalformedIssueError reports a labeled issue whose title coordinate does not
// fit its category.
type MalformedIssueError struct {
	Issue    *domain.Issue
	Category domain.Category
	Reason   string
}

func (e *MalformedIssueError) Error() string {
	return fmt.Sprintf("%s issue #%d (%s): %s", e.Category, e.Issue.Number, e.Issue.URL, e.Reason)
}

func (e *MalformedIssueError) Unwrap() error { return ErrMalformedIssue }

// Node is one position in the hierarchy. Issue is nil for a placeholder
// container whose own issue has not been seen. Children are keyed by their
// 1-based sibling index.
type Node struct {
	Issue    *domain.Issue
	Children map[int]*Node
}

// Child returns the child at index, or nil.
func (n *Node) Child(index int) *Node {
	if n == nil {
		return nil
	}
	return n.Children[index]
}

// At returns the node at path below n, or nil.
func (n *Node) At(path domain.Coordinate) *Node {
	for _, i := range path {
		n = n.Child(i)
		if n == nil {
			return nil
		}
	}
	return n
}

// Indices returns the child indices in ascending order.
func (n *Node) Indices() []int {
	if n == nil {
		return nil
	}
	out := make([]int, 0, len(n.Children))
	for i := range n.Children {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (n *Node) ensure(path domain.Coordinate) *Node {
	for _, i := range path {
		if n.Children == nil {
			n.Children = make(map[int]*Node)
		}
		child, ok := n.Children[i]
		if !ok {
			child = &Node{}
			n.Children[i] = child
		}
		n = child
	}
	return n
}

// Tree is the reconstructed hierarchy plus what could not be placed in it.
type Tree struct {
	Root *Node

	// Skipped holds issues with no category label or several.
	Skipped []*domain.Issue
	// Duplicates holds issues that lost a coordinate to a lower-numbered one.
	Duplicates []*domain.Issue
	Malformed  []*MalformedIssueError
}

// Lookup returns the issue at path, or nil. The empty path is the root.
func (t *Tree) Lookup(path domain.Coordinate) *domain.Issue {
	if n := t.Root.At(path); n != nil {
		return n.Issue
	}
	return nil
}

// Err reports every malformed issue, or ErrNoRoot when no root was seen.
func (t *Tree) Err() error {
	if len(t.Malformed) > 0 {
		errs := make([]error, len(t.Malformed))
		for i, m := range t.Malformed {
			errs[i] = m
		}
		return errors.Join(errs...)
	}
	if t.Root.Issue == nil {
		return ErrNoRoot
	}
	return nil
}

// Builder accumulates issues in any order. Containers that are referenced by
// a descendant before their own issue arrives are created as placeholders.
type Builder struct {
	tree *Tree
}

func NewBuilder() *Builder {
	return &Builder{tree: &Tree{Root: &Node{}}}
}

// Add places one issue.
func (b *Builder) Add(issue domain.Issue) {
	category, ok := domain.CategoryOf(issue.Labels)
	if !ok {
		b.tree.Skipped = append(b.tree.Skipped, &issue)
		return
	}

	var path domain.Coordinate
	if category != domain.CategoryPLD {
		coord, _, err := domain.ParseTitle(issue.Title)
		if err != nil {
			b.malformed(&issue, category, err.Error())
			return
		}
		if len(coord) != category.Depth() {
			b.malformed(&issue, category, fmt.Sprintf("coordinate %s has %d components, want %d", coord, len(coord), category.Depth()))
			return
		}
		path = coord
	}

	node := b.tree.Root.ensure(path)
	switch {
	case node.Issue == nil:
		node.Issue = &issue
	case issue.Number < node.Issue.Number:
		b.tree.Duplicates = append(b.tree.Duplicates, node.Issue)
		node.Issue = &issue
	default:
		b.tree.Duplicates = append(b.tree.Duplicates, &issue)
	}
}

// AddPage places every issue of one listing page.
func (b *Builder) AddPage(issues []domain.Issue) {
	for _, issue := range issues {
		b.Add(issue)
	}
}

func (b *Builder) malformed(issue *domain.Issue, category domain.Category, reason string) {
	b.tree.Malformed = append(b.tree.Malformed, &MalformedIssueError{Issue: issue, Category: category, Reason: reason})
}

// Tree returns the hierarchy built so far.
func (b *Builder) Tree() *Tree { return b.tree }

// Build drains every page of a listing into a tree. A page error aborts.
func Build(pages iter.Seq2[[]domain.Issue, error]) (*Tree, error) {
	b := NewBuilder()
	for page, err := range pages {
		if err != nil {
			return nil, fmt.Errorf("listing issues: %w", err)
		}
		b.AddPage(page)
	}
	return b.Tree(), nil
}

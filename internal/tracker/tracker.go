// Package tracker talks to the issue tracker holding the rendered plan.
package tracker

import (
	"context"
	"iter"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// IssueInput is the writable part of an issue.
type IssueInput struct {
	Title  string
	Body   string
	Labels []string
}

// Tracker lists, creates and updates issues and labels in one repository.
type Tracker interface {
	// Issues yields every issue one page at a time, in no guaranteed order.
	// Pull requests are excluded. Iteration stops at the first error.
	Issues(ctx context.Context) iter.Seq2[[]domain.Issue, error]
	CreateIssue(ctx context.Context, in IssueInput) (*domain.Issue, error)
	UpdateIssue(ctx context.Context, number int, in IssueInput) (*domain.Issue, error)
	// GetLabel returns ErrNotFound when the label does not exist.
	GetLabel(ctx context.Context, name string) (*domain.Label, error)
	CreateLabel(ctx context.Context, l domain.Label) (*domain.Label, error)
}

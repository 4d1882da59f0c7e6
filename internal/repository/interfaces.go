package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a row with the same key is already stored.
	ErrAlreadyExists = errors.New("already exists")
)

// Project is one owner/name pair hosting issues in the local tracker.
type Project struct {
	ID        string
	Owner     string
	Name      string
	CreatedAt time.Time
}

type ProjectRepo interface {
	// Ensure returns the project for owner/name, creating it when absent.
	Ensure(ctx context.Context, owner, name string) (*Project, error)
	GetByName(ctx context.Context, owner, name string) (*Project, error)
}

type ProjectSequenceRepo interface {
	NextIssueNumber(ctx context.Context, projectID string) (int, error)
}

type IssueRepo interface {
	Create(ctx context.Context, projectID string, issue *domain.Issue) error
	Update(ctx context.Context, projectID string, issue *domain.Issue) error
	GetByNumber(ctx context.Context, projectID string, number int) (*domain.Issue, error)
	// List returns issues newest first.
	List(ctx context.Context, projectID string, offset, limit int) ([]domain.Issue, error)
	Count(ctx context.Context, projectID string) (int, error)
}

type LabelRepo interface {
	Create(ctx context.Context, projectID string, l *domain.Label) error
	Get(ctx context.Context, projectID, name string) (*domain.Label, error)
	List(ctx context.Context, projectID string) ([]domain.Label, error)
}

package tracker

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/ThalusA/PLDGenerator/internal/db"
	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/repository"
)

// Local implements Tracker over the sqlite repositories, one project per
// owner/repo pair. It lets a plan be imported and exported offline.
type Local struct {
	db       db.DBTX
	uow      db.UnitOfWork
	project  *repository.Project
	pageSize int
	observer Observer
}

// NewLocal opens the owner/repo project, creating it when absent.
func NewLocal(ctx context.Context, database db.DBTX, uow db.UnitOfWork, owner, repo string, pageSize int, observer Observer) (*Local, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	project, err := repository.NewSQLiteProjectRepo(database).Ensure(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return &Local{db: database, uow: uow, project: project, pageSize: pageSize, observer: observer}, nil
}

func (l *Local) url(number int) string {
	return fmt.Sprintf("local://%s/%s/issues/%d", l.project.Owner, l.project.Name, number)
}

func (l *Local) Issues(ctx context.Context) iter.Seq2[[]domain.Issue, error] {
	return func(yield func([]domain.Issue, error) bool) {
		repo := repository.NewSQLiteIssueRepo(l.db)
		for offset := 0; ; offset += l.pageSize {
			start := time.Now()
			page, err := repo.List(ctx, l.project.ID, offset, l.pageSize)
			observe(l.observer, "list_issues", start, err)
			if err != nil {
				yield(nil, fmt.Errorf("listing issues: %w", err))
				return
			}
			for i := range page {
				page[i].URL = l.url(page[i].Number)
			}
			if len(page) > 0 && !yield(page, nil) {
				return
			}
			if len(page) < l.pageSize {
				return
			}
		}
	}
}

func (l *Local) CreateIssue(ctx context.Context, in IssueInput) (issue *domain.Issue, err error) {
	start := time.Now()
	defer func() { observe(l.observer, "create_issue", start, err) }()

	err = l.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		number, err := repository.NewSQLiteProjectSequenceRepo(tx).NextIssueNumber(ctx, l.project.ID)
		if err != nil {
			return err
		}
		issue = &domain.Issue{Number: number, Title: in.Title, Body: in.Body, Labels: in.Labels}
		return repository.NewSQLiteIssueRepo(tx).Create(ctx, l.project.ID, issue)
	})
	if err != nil {
		return nil, fmt.Errorf("creating issue %q: %w", in.Title, err)
	}
	issue.URL = l.url(issue.Number)
	return issue, nil
}

func (l *Local) UpdateIssue(ctx context.Context, number int, in IssueInput) (issue *domain.Issue, err error) {
	start := time.Now()
	defer func() { observe(l.observer, "update_issue", start, err) }()

	err = l.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteIssueRepo(tx)
		update := &domain.Issue{Number: number, Title: in.Title, Body: in.Body, Labels: in.Labels}
		if err := repo.Update(ctx, l.project.ID, update); err != nil {
			return err
		}
		issue, err = repo.GetByNumber(ctx, l.project.ID, number)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating issue #%d: %w", number, mapRepoErr(err))
	}
	issue.URL = l.url(number)
	return issue, nil
}

func (l *Local) GetLabel(ctx context.Context, name string) (label *domain.Label, err error) {
	start := time.Now()
	defer func() { observe(l.observer, "get_label", start, err) }()

	label, err = repository.NewSQLiteLabelRepo(l.db).Get(ctx, l.project.ID, name)
	if err != nil {
		return nil, fmt.Errorf("getting label %q: %w", name, mapRepoErr(err))
	}
	return label, nil
}

func (l *Local) CreateLabel(ctx context.Context, label domain.Label) (out *domain.Label, err error) {
	start := time.Now()
	defer func() { observe(l.observer, "create_label", start, err) }()

	if err = repository.NewSQLiteLabelRepo(l.db).Create(ctx, l.project.ID, &label); err != nil {
		return nil, fmt.Errorf("creating label %q: %w", label.Name, err)
	}
	return &label, nil
}

// mapRepoErr keeps the repository message but exposes tracker.ErrNotFound.
func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

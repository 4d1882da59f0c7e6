package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ThalusA/PLDGenerator/internal/codec"
	"github.com/ThalusA/PLDGenerator/internal/document"
	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/tracker"
	"github.com/ThalusA/PLDGenerator/internal/tree"
)

type importService struct {
	tracker  tracker.Tracker
	locales  locale.Registry
	labels   LabelService
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewImportService(
	tr tracker.Tracker,
	locales locale.Registry,
	labels LabelService,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		tracker:  tr,
		locales:  locales,
		labels:   labels,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := document.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return s.Import(ctx, f)
}

// Import pushes the document to the tracker. Issues already present at a
// node's coordinate are reused; writes happen depth first so that every
// container is rewritten only once the numbers of its children are known.
// A failed call aborts the run and leaves earlier writes in place.
func (s *importService) Import(ctx context.Context, f *document.File) (result *ImportResult, err error) {
	uc := startUseCase(s.observer, "import")
	defer uc.finish(ctx, &err)
	uc.set("title", f.Title)

	if err = document.Check(f, s.locales.Codes()); err != nil {
		return nil, err
	}

	var dict *locale.Dictionary
	if dict, err = s.locales.Load(f.Locale); err != nil {
		return nil, err
	}
	var c *codec.Codec
	if c, err = codec.New(dict); err != nil {
		return nil, err
	}

	var labels []LabelStatus
	if labels, err = s.labels.Ensure(ctx); err != nil {
		return nil, err
	}

	var existing *tree.Tree
	if existing, err = tree.Build(s.tracker.Issues(ctx)); err != nil {
		return nil, err
	}
	for _, m := range existing.Malformed {
		s.logger.WarnContext(ctx, "ignoring issue with unusable title", "issue", m.Issue.Number, "url", m.Issue.URL, "reason", m.Reason)
	}

	run := &importRun{
		tracker:  s.tracker,
		codec:    c,
		existing: existing,
		logger:   s.logger,
		result:   &ImportResult{Labels: labels},
	}
	root, err := run.pld(ctx, &f.PLD)
	if err != nil {
		return nil, err
	}
	run.result.Root = root

	uc.set("created", run.result.Created)
	uc.set("updated", run.result.Updated)
	uc.set("unchanged", run.result.Unchanged)
	return run.result, nil
}

// importRun is the state of one import pass.
type importRun struct {
	tracker  tracker.Tracker
	codec    *codec.Codec
	existing *tree.Tree
	logger   *slog.Logger
	result   *ImportResult
}

func (r *importRun) pld(ctx context.Context, p *domain.PLD) (*domain.Issue, error) {
	render := func(cl *codec.Checklist) string { return r.codec.RenderPLD(p, cl) }
	return r.container(ctx, domain.CategoryPLD, nil, p.Title, r.findRoot(ctx, p.Title), render,
		func() ([]int, error) {
			numbers := make([]int, 0, len(p.Deliverables))
			for i := range p.Deliverables {
				issue, err := r.deliverable(ctx, domain.Coordinate{i + 1}, &p.Deliverables[i])
				if err != nil {
					return nil, err
				}
				numbers = append(numbers, issue.Number)
			}
			return numbers, nil
		})
}

func (r *importRun) deliverable(ctx context.Context, coord domain.Coordinate, d *domain.Deliverable) (*domain.Issue, error) {
	render := func(cl *codec.Checklist) string { return r.codec.RenderDeliverable(d, cl) }
	return r.container(ctx, domain.CategoryDeliverable, coord, d.Name, r.existing.Lookup(coord), render,
		func() ([]int, error) {
			numbers := make([]int, 0, len(d.Subsets))
			for i := range d.Subsets {
				issue, err := r.subset(ctx, coord.Child(i+1), &d.Subsets[i])
				if err != nil {
					return nil, err
				}
				numbers = append(numbers, issue.Number)
			}
			return numbers, nil
		})
}

func (r *importRun) subset(ctx context.Context, coord domain.Coordinate, s *domain.Subset) (*domain.Issue, error) {
	render := func(cl *codec.Checklist) string { return r.codec.RenderSubset(s, cl) }
	return r.container(ctx, domain.CategorySubset, coord, s.Name, r.existing.Lookup(coord), render,
		func() ([]int, error) {
			numbers := make([]int, 0, len(s.UserStories))
			for i := range s.UserStories {
				issue, err := r.userStory(ctx, coord.Child(i+1), &s.UserStories[i])
				if err != nil {
					return nil, err
				}
				numbers = append(numbers, issue.Number)
			}
			return numbers, nil
		})
}

// container creates the issue when found is nil, resolves the children and
// then always rewrites the issue with its checklist.
func (r *importRun) container(
	ctx context.Context,
	category domain.Category,
	coord domain.Coordinate,
	name string,
	found *domain.Issue,
	render func(*codec.Checklist) string,
	children func() ([]int, error),
) (*domain.Issue, error) {
	title := coord.Title(name)
	issue := found
	if issue == nil {
		var err error
		if issue, err = r.create(ctx, category, title, render(nil)); err != nil {
			return nil, err
		}
	}

	numbers, err := children()
	if err != nil {
		return nil, err
	}
	return r.update(ctx, category, issue, title, render(&codec.Checklist{Previous: issue.Body, Children: numbers}))
}

// userStory is only rewritten when its title or body changed.
func (r *importRun) userStory(ctx context.Context, coord domain.Coordinate, u *domain.UserStory) (*domain.Issue, error) {
	title := coord.Title(u.Name)
	body := r.codec.RenderUserStory(u)

	found := r.existing.Lookup(coord)
	switch {
	case found == nil:
		return r.create(ctx, domain.CategoryUserStory, title, body)
	case found.Title == title && found.Body == body:
		r.result.Unchanged++
		return found, nil
	default:
		return r.update(ctx, domain.CategoryUserStory, found, title, body)
	}
}

// findRoot returns the lowest-numbered root issue titled title.
func (r *importRun) findRoot(ctx context.Context, title string) *domain.Issue {
	candidates := make([]*domain.Issue, 0, 1+len(r.existing.Duplicates))
	if r.existing.Root.Issue != nil {
		candidates = append(candidates, r.existing.Root.Issue)
	}
	for _, d := range r.existing.Duplicates {
		if c, ok := domain.CategoryOf(d.Labels); ok && c == domain.CategoryPLD {
			candidates = append(candidates, d)
		}
	}

	var best *domain.Issue
	for _, c := range candidates {
		if c.Title != title {
			r.logger.WarnContext(ctx, "root issue has another title, not reusing it", "issue", c.Number, "title", c.Title)
			continue
		}
		if best == nil || c.Number < best.Number {
			best = c
		}
	}
	return best
}

func (r *importRun) create(ctx context.Context, category domain.Category, title, body string) (*domain.Issue, error) {
	issue, err := r.tracker.CreateIssue(ctx, tracker.IssueInput{
		Title:  title,
		Body:   body,
		Labels: []string{string(category)},
	})
	if err != nil {
		return nil, err
	}
	r.result.Created++
	return issue, nil
}

func (r *importRun) update(ctx context.Context, category domain.Category, issue *domain.Issue, title, body string) (*domain.Issue, error) {
	updated, err := r.tracker.UpdateIssue(ctx, issue.Number, tracker.IssueInput{
		Title:  title,
		Body:   body,
		Labels: withLabel(issue.Labels, string(category)),
	})
	if err != nil {
		return nil, err
	}
	r.result.Updated++
	return updated, nil
}

// withLabel keeps labels set by hand on reused issues.
func withLabel(labels []string, label string) []string {
	if slices.Contains(labels, label) {
		return slices.Clone(labels)
	}
	return append(slices.Clone(labels), label)
}

// Package trackertest provides an in-memory Tracker for tests.
package trackertest

import (
	"context"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/tracker"
)

// Call is one recorded tracker operation.
type Call struct {
	Op     string
	Number int
	Title  string
}

// FakeTracker keeps issues and labels in memory. Issues are listed in pages
// of PageSize, in shuffled order when Shuffle is set, mimicking a tracker
// that guarantees no ordering.
type FakeTracker struct {
	PageSize int
	Shuffle  *rand.Rand
	// FailOn makes the named op ("create_issue", "update_issue", ...) return
	// the error every time it is called.
	FailOn map[string]error

	mu     sync.Mutex
	next   int
	issues map[int]*domain.Issue
	labels map[string]domain.Label
	calls  []Call
}

var _ tracker.Tracker = (*FakeTracker)(nil)

func New() *FakeTracker {
	return &FakeTracker{
		PageSize: 100,
		next:     1,
		issues:   make(map[int]*domain.Issue),
		labels:   make(map[string]domain.Label),
	}
}

// Seed stores an issue as is, keeping its number. Later creations get
// numbers above every seeded one.
func (f *FakeTracker) Seed(issues ...domain.Issue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, issue := range issues {
		issue := issue
		if issue.URL == "" {
			issue.URL = url(issue.Number)
		}
		f.issues[issue.Number] = &issue
		if issue.Number >= f.next {
			f.next = issue.Number + 1
		}
	}
}

// SeedLabels stores labels as if they already existed.
func (f *FakeTracker) SeedLabels(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.labels[n] = domain.Label{Name: n}
	}
}

// Calls returns the recorded operations in call order.
func (f *FakeTracker) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallsTo returns the recorded operations named op.
func (f *FakeTracker) CallsTo(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Issue returns a copy of the stored issue.
func (f *FakeTracker) Issue(number int) (domain.Issue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[number]
	if !ok {
		return domain.Issue{}, false
	}
	return clone(issue), true
}

// ByTitle returns the stored issue with exactly this title.
func (f *FakeTracker) ByTitle(title string) (domain.Issue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, issue := range f.issues {
		if issue.Title == title {
			return clone(issue), true
		}
	}
	return domain.Issue{}, false
}

// Len is the number of stored issues.
func (f *FakeTracker) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.issues)
}

// Labels returns the stored label names, sorted.
func (f *FakeTracker) Labels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.labels))
	for n := range f.labels {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func (f *FakeTracker) record(c Call) error {
	f.calls = append(f.calls, c)
	if err, ok := f.FailOn[c.Op]; ok {
		return err
	}
	return nil
}

func (f *FakeTracker) Issues(ctx context.Context) iter.Seq2[[]domain.Issue, error] {
	return func(yield func([]domain.Issue, error) bool) {
		f.mu.Lock()
		err := f.record(Call{Op: "list_issues"})
		all := make([]domain.Issue, 0, len(f.issues))
		for _, issue := range f.issues {
			all = append(all, clone(issue))
		}
		f.mu.Unlock()
		if err != nil {
			yield(nil, err)
			return
		}

		slices.SortFunc(all, func(a, b domain.Issue) int { return b.Number - a.Number })
		if f.Shuffle != nil {
			f.Shuffle.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
		}
		size := max(f.PageSize, 1)
		for start := 0; start < len(all); start += size {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(all[start:min(start+size, len(all))], nil) {
				return
			}
		}
	}
}

func (f *FakeTracker) CreateIssue(_ context.Context, in tracker.IssueInput) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "create_issue", Number: f.next, Title: in.Title}); err != nil {
		return nil, err
	}
	issue := &domain.Issue{
		Number: f.next,
		Title:  in.Title,
		Body:   in.Body,
		Labels: slices.Clone(in.Labels),
		URL:    url(f.next),
	}
	f.issues[issue.Number] = issue
	f.next++
	out := clone(issue)
	return &out, nil
}

func (f *FakeTracker) UpdateIssue(_ context.Context, number int, in tracker.IssueInput) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "update_issue", Number: number, Title: in.Title}); err != nil {
		return nil, err
	}
	issue, ok := f.issues[number]
	if !ok {
		return nil, fmt.Errorf("issue #%d: %w", number, tracker.ErrNotFound)
	}
	issue.Title = in.Title
	issue.Body = in.Body
	issue.Labels = slices.Clone(in.Labels)
	out := clone(issue)
	return &out, nil
}

func (f *FakeTracker) GetLabel(_ context.Context, name string) (*domain.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "get_label", Title: name}); err != nil {
		return nil, err
	}
	l, ok := f.labels[name]
	if !ok {
		return nil, fmt.Errorf("label %q: %w", name, tracker.ErrNotFound)
	}
	return &l, nil
}

func (f *FakeTracker) CreateLabel(_ context.Context, l domain.Label) (*domain.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(Call{Op: "create_label", Title: l.Name}); err != nil {
		return nil, err
	}
	if _, ok := f.labels[l.Name]; ok {
		return nil, &tracker.APIError{Status: 422, Body: "already_exists"}
	}
	f.labels[l.Name] = l
	return &l, nil
}

func url(number int) string {
	return fmt.Sprintf("https://tracker.test/issues/%d", number)
}

func clone(issue *domain.Issue) domain.Issue {
	out := *issue
	out.Labels = slices.Clone(issue.Labels)
	return out
}

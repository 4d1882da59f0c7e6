package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/testutil"
)

func newTestLocal(t *testing.T, pageSize int) (*Local, *recordingObserver) {
	t.Helper()
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	l, err := NewLocal(context.Background(), database, testutil.NewTestUoW(database), "acme", "plan", pageSize, obs)
	require.NoError(t, err)
	return l, obs
}

func TestLocal_CreateAndList(t *testing.T) {
	l, _ := newTestLocal(t, 2)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		issue, err := l.CreateIssue(ctx, IssueInput{
			Title:  fmt.Sprintf("1.1.%d Story", i),
			Body:   "body",
			Labels: []string{"user-story"},
		})
		require.NoError(t, err)
		assert.Equal(t, i, issue.Number, "numbers are allocated sequentially")
		assert.Equal(t, fmt.Sprintf("local://acme/plan/issues/%d", i), issue.URL)
	}

	issues, pages, err := collect(t, l)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	require.Len(t, issues, 5)
	for _, issue := range issues {
		assert.Equal(t, []string{"user-story"}, issue.Labels)
		assert.NotEmpty(t, issue.URL)
	}
}

func TestLocal_ExactPageMultiple(t *testing.T) {
	l, _ := newTestLocal(t, 2)
	ctx := context.Background()
	for range 2 {
		_, err := l.CreateIssue(ctx, IssueInput{Title: "x"})
		require.NoError(t, err)
	}

	issues, pages, err := collect(t, l)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
	assert.Equal(t, 1, pages, "empty trailing page is not yielded")
}

func TestLocal_EmptyProject(t *testing.T) {
	l, obs := newTestLocal(t, 10)
	issues, pages, err := collect(t, l)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 0, pages)
	assert.Equal(t, []string{"list_issues"}, obs.ops())
}

func TestLocal_UpdateIssue(t *testing.T) {
	l, obs := newTestLocal(t, 10)
	ctx := context.Background()

	created, err := l.CreateIssue(ctx, IssueInput{Title: "1 Accounts", Labels: []string{"deliverable"}})
	require.NoError(t, err)

	updated, err := l.UpdateIssue(ctx, created.Number, IssueInput{
		Title:  "1 Accounts",
		Body:   "# Description\n\nnew",
		Labels: []string{"deliverable", "extra"},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Description\n\nnew", updated.Body)
	assert.Equal(t, []string{"deliverable", "extra"}, updated.Labels)

	_, err = l.UpdateIssue(ctx, 42, IssueInput{Title: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"create_issue", "update_issue", "update_issue"}, obs.ops())
	assert.Equal(t, "NOT_FOUND", obs.events[2].ErrorCode)
}

func TestLocal_Labels(t *testing.T) {
	l, _ := newTestLocal(t, 10)
	ctx := context.Background()

	_, err := l.GetLabel(ctx, "pld")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.CreateLabel(ctx, domain.Label{Name: "pld", Color: "0e8a16"})
	require.NoError(t, err)

	got, err := l.GetLabel(ctx, "pld")
	require.NoError(t, err)
	assert.Equal(t, "0e8a16", got.Color)
}

func TestLocal_ProjectsAreIsolated(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	a, err := NewLocal(ctx, database, uow, "acme", "a", 10, nil)
	require.NoError(t, err)
	b, err := NewLocal(ctx, database, uow, "acme", "b", 10, nil)
	require.NoError(t, err)

	_, err = a.CreateIssue(ctx, IssueInput{Title: "in a"})
	require.NoError(t, err)
	issue, err := b.CreateIssue(ctx, IssueInput{Title: "in b"})
	require.NoError(t, err)
	assert.Equal(t, 1, issue.Number, "each project has its own sequence")

	issues, _, err := collect(t, b)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "in b", issues[0].Title)
}

func TestLocal_CreateIssue_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("disk full")

	// Exec 1 seeds the sequence, 2 inserts the issue, 3 labels it.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	l, err := NewLocal(ctx, database, uow, "acme", "plan", 10, nil)
	require.NoError(t, err)

	_, err = l.CreateIssue(ctx, IssueInput{Title: "1 Accounts", Labels: []string{"deliverable"}})
	require.ErrorIs(t, err, boom)

	issues, _, err := collect(t, l)
	require.NoError(t, err)
	assert.Empty(t, issues, "issue row is rolled back with its labels")
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/testutil"
)

func TestProjectRepo_EnsureIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	first, err := repo.Ensure(ctx, "acme", "plan")
	require.NoError(t, err)
	second, err := repo.Ensure(ctx, "acme", "plan")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "acme", second.Owner)
	assert.False(t, second.CreatedAt.IsZero())
}

func TestProjectRepo_GetByName_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := NewSQLiteProjectRepo(database).GetByName(context.Background(), "acme", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectSequenceRepo_StartsAtOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := newProject(t, database)
	seq := NewSQLiteProjectSequenceRepo(database)

	n1, err := seq.NextIssueNumber(ctx, proj.ID)
	require.NoError(t, err)
	n2, err := seq.NextIssueNumber(ctx, proj.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, n1)
	assert.Equal(t, 2, n2)
}

func TestProjectSequenceRepo_SeedsFromExistingIssues(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := newProject(t, database)

	require.NoError(t, NewSQLiteIssueRepo(database).Create(ctx, proj.ID, &domain.Issue{Number: 7, Title: "Plan"}))

	n, err := NewSQLiteProjectSequenceRepo(database).NextIssueNumber(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

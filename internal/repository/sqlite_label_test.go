package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/testutil"
)

func TestLabelRepo_CreateGetList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLabelRepo(database)
	ctx := context.Background()
	proj := newProject(t, database)

	require.NoError(t, repo.Create(ctx, proj.ID, &domain.Label{Name: "subset", Color: "0e8a16"}))
	require.NoError(t, repo.Create(ctx, proj.ID, &domain.Label{Name: "pld", Color: "5319e7", Description: "Root document"}))

	got, err := repo.Get(ctx, proj.ID, "pld")
	require.NoError(t, err)
	assert.Equal(t, "Root document", got.Description)

	all, err := repo.List(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "pld", all[0].Name)

	_, err = repo.Get(ctx, proj.ID, "deliverable")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Create(ctx, proj.ID, &domain.Label{Name: "pld"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

package repository

import (
	"context"
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/db"
)

// SQLiteProjectSequenceRepo allocates project-scoped issue numbers
// atomically using the project_sequences table.
type SQLiteProjectSequenceRepo struct {
	db db.DBTX
}

func NewSQLiteProjectSequenceRepo(conn db.DBTX) *SQLiteProjectSequenceRepo {
	return &SQLiteProjectSequenceRepo{db: conn}
}

// NextIssueNumber returns the next unused issue number for a project,
// starting at 1. Numbers are never reused.
func (r *SQLiteProjectSequenceRepo) NextIssueNumber(ctx context.Context, projectID string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO project_sequences (project_id, next_number)
		SELECT ?, COALESCE(MAX(number), 0) + 1 FROM issues WHERE project_id = ?`
	if _, err := r.db.ExecContext(ctx, seedQuery, projectID, projectID); err != nil {
		return 0, fmt.Errorf("seeding issue sequence for %s: %w", projectID, err)
	}

	var next int
	allocQuery := `UPDATE project_sequences
		SET next_number = next_number + 1
		WHERE project_id = ?
		RETURNING next_number - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, projectID).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating issue number for %s: %w", projectID, err)
	}
	return next, nil
}

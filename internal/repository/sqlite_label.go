package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/db"
	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// SQLiteLabelRepo implements LabelRepo using a SQLite database.
type SQLiteLabelRepo struct {
	db db.DBTX
}

func NewSQLiteLabelRepo(conn db.DBTX) *SQLiteLabelRepo {
	return &SQLiteLabelRepo{db: conn}
}

func (r *SQLiteLabelRepo) Create(ctx context.Context, projectID string, l *domain.Label) error {
	query := `INSERT INTO labels (project_id, name, color, description) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, projectID, l.Name, l.Color, l.Description); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("label %q: %w", l.Name, ErrAlreadyExists)
		}
		return fmt.Errorf("inserting label: %w", err)
	}
	return nil
}

func (r *SQLiteLabelRepo) Get(ctx context.Context, projectID, name string) (*domain.Label, error) {
	query := `SELECT name, color, description FROM labels WHERE project_id = ? AND name = ?`
	var l domain.Label
	err := r.db.QueryRowContext(ctx, query, projectID, name).Scan(&l.Name, &l.Color, &l.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("label %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning label: %w", err)
	}
	return &l, nil
}

func (r *SQLiteLabelRepo) List(ctx context.Context, projectID string) ([]domain.Label, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, color, description FROM labels WHERE project_id = ? ORDER BY name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.Name, &l.Color, &l.Description); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return labels, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ThalusA/PLDGenerator/internal/db"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Ensure(ctx context.Context, owner, name string) (*Project, error) {
	query := `INSERT OR IGNORE INTO projects (id, owner, name, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), owner, name, nowUTC()); err != nil {
		return nil, fmt.Errorf("inserting project %s/%s: %w", owner, name, err)
	}
	return r.GetByName(ctx, owner, name)
}

func (r *SQLiteProjectRepo) GetByName(ctx context.Context, owner, name string) (*Project, error) {
	query := `SELECT id, owner, name, created_at FROM projects WHERE owner = ? AND name = ?`
	var p Project
	var created string
	err := r.db.QueryRowContext(ctx, query, owner, name).Scan(&p.ID, &p.Owner, &p.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s/%s: %w", owner, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.CreatedAt = parseTime(created)
	return &p, nil
}

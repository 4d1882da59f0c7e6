package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/db"
	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// SQLiteIssueRepo implements IssueRepo using a SQLite database. Create and
// Update touch two tables; run them inside a unit of work.
type SQLiteIssueRepo struct {
	db db.DBTX
}

func NewSQLiteIssueRepo(conn db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: conn}
}

func (r *SQLiteIssueRepo) Create(ctx context.Context, projectID string, issue *domain.Issue) error {
	now := nowUTC()
	query := `INSERT INTO issues (project_id, number, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, projectID, issue.Number, issue.Title, issue.Body, now, now); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("issue #%d: %w", issue.Number, ErrAlreadyExists)
		}
		return fmt.Errorf("inserting issue: %w", err)
	}
	return r.insertLabels(ctx, projectID, issue.Number, issue.Labels)
}

func (r *SQLiteIssueRepo) Update(ctx context.Context, projectID string, issue *domain.Issue) error {
	query := `UPDATE issues SET title = ?, body = ?, updated_at = ? WHERE project_id = ? AND number = ?`
	res, err := r.db.ExecContext(ctx, query, issue.Title, issue.Body, nowUTC(), projectID, issue.Number)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("issue #%d: %w", issue.Number, ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM issue_labels WHERE project_id = ? AND number = ?`, projectID, issue.Number); err != nil {
		return fmt.Errorf("clearing issue labels: %w", err)
	}
	return r.insertLabels(ctx, projectID, issue.Number, issue.Labels)
}

func (r *SQLiteIssueRepo) insertLabels(ctx context.Context, projectID string, number int, labels []string) error {
	query := `INSERT OR IGNORE INTO issue_labels (project_id, number, label) VALUES (?, ?, ?)`
	for _, l := range labels {
		if _, err := r.db.ExecContext(ctx, query, projectID, number, l); err != nil {
			return fmt.Errorf("labeling issue #%d with %q: %w", number, l, err)
		}
	}
	return nil
}

func (r *SQLiteIssueRepo) GetByNumber(ctx context.Context, projectID string, number int) (*domain.Issue, error) {
	issue := domain.Issue{Number: number}
	query := `SELECT title, body FROM issues WHERE project_id = ? AND number = ?`
	err := r.db.QueryRowContext(ctx, query, projectID, number).Scan(&issue.Title, &issue.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("issue #%d: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning issue: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT label FROM issue_labels WHERE project_id = ? AND number = ? ORDER BY label`, projectID, number)
	if err != nil {
		return nil, fmt.Errorf("listing issue labels: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("scanning issue label: %w", err)
		}
		issue.Labels = append(issue.Labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issue labels: %w", err)
	}
	return &issue, nil
}

func (r *SQLiteIssueRepo) List(ctx context.Context, projectID string, offset, limit int) ([]domain.Issue, error) {
	query := `SELECT i.number, i.title, i.body, l.label
		FROM (SELECT number, title, body FROM issues WHERE project_id = ?
		      ORDER BY number DESC LIMIT ? OFFSET ?) i
		LEFT JOIN issue_labels l ON l.project_id = ? AND l.number = i.number
		ORDER BY i.number DESC, l.label`
	rows, err := r.db.QueryContext(ctx, query, projectID, limit, offset, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var (
			number      int
			title, body string
			label       sql.NullString
		)
		if err := rows.Scan(&number, &title, &body, &label); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		if len(issues) == 0 || issues[len(issues)-1].Number != number {
			issues = append(issues, domain.Issue{Number: number, Title: title, Body: body})
		}
		if label.Valid {
			last := &issues[len(issues)-1]
			last.Labels = append(last.Labels, label.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

func (r *SQLiteIssueRepo) Count(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues WHERE project_id = ?`, projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting issues: %w", err)
	}
	return n, nil
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// A project is one owner/repo pair hosting issues.
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		owner       TEXT NOT NULL,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE (owner, name)
	)`,

	`CREATE TABLE IF NOT EXISTS project_sequences (
		project_id  TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		next_number INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS issues (
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		number      INTEGER NOT NULL,
		title       TEXT NOT NULL,
		body        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (project_id, number)
	)`,

	`CREATE TABLE IF NOT EXISTS labels (
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (project_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS issue_labels (
		project_id  TEXT NOT NULL,
		number      INTEGER NOT NULL,
		label       TEXT NOT NULL,
		PRIMARY KEY (project_id, number, label),
		FOREIGN KEY (project_id, number) REFERENCES issues(project_id, number) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issue_labels_label ON issue_labels(project_id, label)`,

	// Issues carry a state so closed issues survive in listings.
	`ALTER TABLE issues ADD COLUMN state TEXT NOT NULL DEFAULT 'open'`,
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Budgets are stored as integer cents. Timestamps are UTC text in a
// fixed-width layout so that lexical order is chronological order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT,
		phone       TEXT,
		website     TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','inactive')),
		notes       TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_created ON clients(created_at)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		budget      INTEGER CHECK(budget IS NULL OR budget >= 0),
		status      TEXT NOT NULL DEFAULT 'not_completed'
		            CHECK(status IN ('completed','not_completed')),
		start_date  TEXT,
		end_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		status      TEXT NOT NULL DEFAULT 'open'
		            CHECK(status IN ('open','in_progress','on_hold','completed')),
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('high','medium','low')),
		start_date  TEXT,
		end_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE VIEW IF NOT EXISTS client_overview AS
		SELECT
			c.id, c.name, c.email, c.phone, c.website, c.status, c.notes,
			c.created_at, c.updated_at,
			COALESCE(p.project_count, 0) AS project_count,
			COALESCE(p.total_budget, 0)  AS total_budget
		FROM clients c
		LEFT JOIN (
			SELECT client_id,
			       COUNT(*)                  AS project_count,
			       SUM(COALESCE(budget, 0))  AS total_budget
			FROM projects
			GROUP BY client_id
		) p ON p.client_id = c.id`,
}

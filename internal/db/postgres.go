package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenPostgres connects to a hosted PostgreSQL database through GORM and
// applies the schema. The DSN is either a URL or a key=value string.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := MigratePostgres(gdb); err != nil {
		return nil, fmt.Errorf("running postgres migrations: %w", err)
	}
	return gdb, nil
}

// MigratePostgres applies the PostgreSQL flavour of the schema. Every
// statement is idempotent.
func MigratePostgres(gdb *gorm.DB) error {
	for i, stmt := range pgMigrations {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var pgMigrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT,
		phone       TEXT,
		website     TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK (status IN ('active','inactive')),
		notes       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          UUID PRIMARY KEY,
		client_id   UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		budget      BIGINT CHECK (budget IS NULL OR budget >= 0),
		status      TEXT NOT NULL DEFAULT 'not_completed'
		            CHECK (status IN ('completed','not_completed')),
		start_date  DATE,
		end_date    DATE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          UUID PRIMARY KEY,
		project_id  UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT,
		status      TEXT NOT NULL DEFAULT 'open'
		            CHECK (status IN ('open','in_progress','on_hold','completed')),
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK (priority IN ('high','medium','low')),
		start_date  DATE,
		end_date    DATE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE OR REPLACE VIEW client_overview AS
		SELECT
			c.id, c.name, c.email, c.phone, c.website, c.status, c.notes,
			c.created_at, c.updated_at,
			COUNT(p.id)::INT                     AS project_count,
			COALESCE(SUM(p.budget), 0)::BIGINT   AS total_budget
		FROM clients c
		LEFT JOIN projects p ON p.client_id = c.id
		GROUP BY c.id`,
}

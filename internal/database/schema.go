package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createApplicationsTable = `
CREATE TABLE IF NOT EXISTS applications (
	id               BIGSERIAL PRIMARY KEY,
	company          VARCHAR(200) NOT NULL,
	role             VARCHAR(200) NOT NULL,
	location         VARCHAR(200),
	source           VARCHAR(200),
	link             VARCHAR(500),
	salary_min       INTEGER,
	salary_max       INTEGER,
	employment_type  VARCHAR(50),
	stage            VARCHAR(50),
	status           VARCHAR(50),
	next_action_date DATE,
	notes            TEXT,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
)`

var createIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_applications_company_role ON applications (company, role)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_stage ON applications (stage)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (status)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_next_action_date ON applications (next_action_date)`,
}

const (
	schemaRetryAttempts = 5
	schemaRetryDelay    = 2 * time.Second
)

// EnsureSchema creates the applications table and its secondary indexes if
// missing, retrying while the database comes up.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= schemaRetryAttempts; attempt++ {
		if err = createSchema(ctx, pool); err == nil {
			log.Info("database schema ensured")
			return nil
		}
		log.Warn("schema creation failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(schemaRetryDelay):
		}
	}
	return fmt.Errorf("failed to create schema after %d attempts: %w", schemaRetryAttempts, err)
}

func createSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createApplicationsTable); err != nil {
		return fmt.Errorf("failed to create applications table: %w", err)
	}
	for _, stmt := range createIndexes {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema bootstraps the tables at startup. The schema is small enough
// that idempotent DDL beats carrying a migration tool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scenarios (
			scenario_id UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			payload     JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS pinned_participants (
			scenario_id UUID PRIMARY KEY,
			payload     JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scenarios_updated_at ON scenarios (updated_at DESC);`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

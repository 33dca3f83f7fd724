package postgres

import (
	"context"
	"fmt"
)

// Um registro por conta; snapshot e last_derived em JSONB
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS metric_snapshots (
		id               VARCHAR(32) PRIMARY KEY,
		entity_id        VARCHAR(64) NOT NULL UNIQUE,
		follower_count   BIGINT NOT NULL CHECK (follower_count >= 0),
		snapshot         JSONB NOT NULL,
		last_derived     JSONB NOT NULL,
		fetched_at       TIMESTAMPTZ NOT NULL,
		expires_at       TIMESTAMPTZ NOT NULL,
		last_accessed_at TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_metric_snapshots_refresh
		ON metric_snapshots (expires_at, last_accessed_at)`,
}

// Migrate cria as tabelas usadas pelo cache de snapshots. É idempotente.
func Migrate(ctx context.Context, conn Queryer) error {
	for i, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar statement %d do schema: %w", i, err)
		}
	}
	return nil
}

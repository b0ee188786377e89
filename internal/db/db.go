// Package db stores résumé workspaces and parse results in PostgreSQL.
// Documents are kept as JSONB and re-validated by the strict validators on
// every load, so rows written by older code cannot leak invalid documents.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-contract/internal/contract"
)

// ErrWorkspaceNotFound is returned when no workspace row has the given id.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ErrPayloadNotFound is returned when no payload row has the given id.
var ErrPayloadNotFound = errors.New("parsed payload not found")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool      *pgxpool.Pool
	validator *contract.Validator
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, validator: contract.Default}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// schemaSQL creates the tables this package reads and writes.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS resume_workspaces (
	id          UUID PRIMARY KEY,
	resume_id   TEXT NOT NULL,
	input_type  TEXT NOT NULL,
	parser      TEXT NOT NULL DEFAULT '',
	content     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS parsed_payloads (
	id            UUID PRIMARY KEY,
	workspace_id  UUID REFERENCES resume_workspaces(id) ON DELETE SET NULL,
	parser        TEXT NOT NULL DEFAULT '',
	attempts      INTEGER NOT NULL DEFAULT 1,
	text_hash     TEXT NOT NULL DEFAULT '',
	content       JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_parsed_payloads_workspace ON parsed_payloads(workspace_id);
CREATE INDEX IF NOT EXISTS idx_parsed_payloads_text_hash ON parsed_payloads(text_hash);
`

// Migrate creates missing tables and indexes.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

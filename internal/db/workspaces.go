package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/types"
)

// SaveWorkspace validates ws and inserts it under a new id.
func (db *DB) SaveWorkspace(ctx context.Context, ws types.Workspace) (*WorkspaceRecord, error) {
	canonical, content, err := encodeWorkspace(db.validator, ws)
	if err != nil {
		return nil, err
	}

	rec := &WorkspaceRecord{ID: uuid.New(), Workspace: canonical}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_workspaces (id, resume_id, input_type, parser, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		rec.ID, canonical.ResumeData.ID, string(canonical.Source.InputType), canonical.Source.Parser, content,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}
	return rec, nil
}

// GetWorkspace loads a workspace and re-validates it.
func (db *DB) GetWorkspace(ctx context.Context, id uuid.UUID) (*WorkspaceRecord, error) {
	var content []byte
	rec := &WorkspaceRecord{ID: id}
	err := db.pool.QueryRow(ctx,
		`SELECT content, created_at, updated_at FROM resume_workspaces WHERE id = $1`,
		id,
	).Scan(&content, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	ws, err := decodeWorkspace(db.validator, content)
	if err != nil {
		return nil, err
	}
	rec.Workspace = ws
	return rec, nil
}

// UpdateWorkspace replaces the stored document. The workspace's updatedAt
// timestamp is set to the current time.
func (db *DB) UpdateWorkspace(ctx context.Context, id uuid.UUID, ws types.Workspace) (*WorkspaceRecord, error) {
	ws.Timestamps.UpdatedAt = contract.FormatTimestamp(time.Now())
	canonical, content, err := encodeWorkspace(db.validator, ws)
	if err != nil {
		return nil, err
	}

	rec := &WorkspaceRecord{ID: id, Workspace: canonical}
	err = db.pool.QueryRow(ctx,
		`UPDATE resume_workspaces
		 SET resume_id = $2, input_type = $3, parser = $4, content = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		id, canonical.ResumeData.ID, string(canonical.Source.InputType), canonical.Source.Parser, content,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return rec, nil
}

// DeleteWorkspace removes a workspace. Payloads that referenced it are kept.
func (db *DB) DeleteWorkspace(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resume_workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

// ListWorkspaces returns the most recently updated workspaces first.
func (db *DB) ListWorkspaces(ctx context.Context, limit int) ([]WorkspaceSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, input_type, parser, created_at, updated_at
		 FROM resume_workspaces ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	summaries := []WorkspaceSummary{}
	for rows.Next() {
		var s WorkspaceSummary
		if err := rows.Scan(&s.ID, &s.ResumeID, &s.InputType, &s.Parser, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

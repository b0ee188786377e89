package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-contract/internal/types"
)

// SavePayload records a parse result. workspaceID may be nil.
func (db *DB) SavePayload(ctx context.Context, workspaceID *uuid.UUID, p types.ParsedResumePayload, attempts int) (*PayloadRecord, error) {
	canonical, content, err := encodePayload(db.validator, p)
	if err != nil {
		return nil, err
	}

	rec := &PayloadRecord{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Parser:      canonical.Source.Parser,
		Attempts:    attempts,
		TextHash:    TextHash(canonical.Source.RawText),
		Payload:     canonical,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO parsed_payloads (id, workspace_id, parser, attempts, text_hash, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		rec.ID, rec.WorkspaceID, rec.Parser, rec.Attempts, rec.TextHash, content,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save payload: %w", err)
	}
	return rec, nil
}

// GetPayload loads one stored parse result.
func (db *DB) GetPayload(ctx context.Context, id uuid.UUID) (*PayloadRecord, error) {
	var content []byte
	rec := &PayloadRecord{ID: id}
	err := db.pool.QueryRow(ctx,
		`SELECT workspace_id, parser, attempts, text_hash, content, created_at
		 FROM parsed_payloads WHERE id = $1`,
		id,
	).Scan(&rec.WorkspaceID, &rec.Parser, &rec.Attempts, &rec.TextHash, &content, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPayloadNotFound
		}
		return nil, fmt.Errorf("failed to get payload: %w", err)
	}

	payload, err := decodePayload(db.validator, content)
	if err != nil {
		return nil, err
	}
	rec.Payload = payload
	return rec, nil
}

// FindPayloadByText returns the newest payload parsed from the same raw
// text, or nil when none exists.
func (db *DB) FindPayloadByText(ctx context.Context, rawText string) (*PayloadRecord, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM parsed_payloads WHERE text_hash = $1 ORDER BY created_at DESC LIMIT 1`,
		TextHash(rawText),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payload: %w", err)
	}
	return db.GetPayload(ctx, id)
}

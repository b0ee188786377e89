package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-contract/internal/types"
)

// WorkspaceRecord is a stored workspace together with its row metadata.
type WorkspaceRecord struct {
	ID        uuid.UUID       `json:"id"`
	Workspace types.Workspace `json:"workspace"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WorkspaceSummary is the list view of a workspace row
type WorkspaceSummary struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  string    `json:"resume_id"`
	InputType string    `json:"input_type"`
	Parser    string    `json:"parser"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PayloadRecord is one stored parse result.
type PayloadRecord struct {
	ID          uuid.UUID                 `json:"id"`
	WorkspaceID *uuid.UUID                `json:"workspace_id,omitempty"`
	Parser      string                    `json:"parser"`
	Attempts    int                       `json:"attempts"`
	TextHash    string                    `json:"text_hash"`
	Payload     types.ParsedResumePayload `json:"payload"`
	CreatedAt   time.Time                 `json:"created_at"`
}

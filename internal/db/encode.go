package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/schemas"
	"github.com/jonathan/resume-contract/internal/types"
)

// encodeWorkspace validates ws with both gates and returns its JSONB form.
func encodeWorkspace(v *contract.Validator, ws types.Workspace) (types.Workspace, []byte, error) {
	canonical, err := v.Workspace().Validate(ws)
	if err != nil {
		return types.Workspace{}, nil, fmt.Errorf("invalid workspace: %w", err)
	}
	content, err := json.Marshal(canonical)
	if err != nil {
		return types.Workspace{}, nil, fmt.Errorf("failed to marshal workspace: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.DocumentWorkspace, content); err != nil {
		return types.Workspace{}, nil, err
	}
	return canonical, content, nil
}

// decodeWorkspace re-validates a stored JSONB document.
func decodeWorkspace(v *contract.Validator, content []byte) (types.Workspace, error) {
	value, err := jsonx.Decode(content)
	if err != nil {
		return types.Workspace{}, fmt.Errorf("failed to decode workspace: %w", err)
	}
	res := v.Workspace().SafeParse(value)
	if !res.Success {
		return types.Workspace{}, fmt.Errorf("stored workspace is invalid: %w", res.Error)
	}
	return res.Data, nil
}

func encodePayload(v *contract.Validator, p types.ParsedResumePayload) (types.ParsedResumePayload, []byte, error) {
	canonical, err := v.ParsedPayload().Validate(p)
	if err != nil {
		return types.ParsedResumePayload{}, nil, fmt.Errorf("invalid payload: %w", err)
	}
	content, err := json.Marshal(canonical)
	if err != nil {
		return types.ParsedResumePayload{}, nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.DocumentParsedPayload, content); err != nil {
		return types.ParsedResumePayload{}, nil, err
	}
	return canonical, content, nil
}

func decodePayload(v *contract.Validator, content []byte) (types.ParsedResumePayload, error) {
	p, err := v.ParsedPayload().ParseJSON(content)
	if err != nil {
		return types.ParsedResumePayload{}, fmt.Errorf("stored payload is invalid: %w", err)
	}
	return p, nil
}

// TextHash fingerprints raw résumé text so repeated parses can be found.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

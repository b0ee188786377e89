package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-contract/internal/types"
)

// Metadata describes one ingested résumé source.
type Metadata struct {
	URL       string          `json:"url,omitempty"`
	FileName  string          `json:"fileName,omitempty"`
	InputType types.InputType `json:"inputType"`
	Timestamp string          `json:"timestamp"`          // RFC3339 format
	Hash      string          `json:"hash"`               // SHA256 hex digest of the cleaned text
	Platform  string          `json:"platform,omitempty"` // Detected profile host
	Rendered  bool            `json:"rendered,omitempty"` // Text came from a headless browser
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, inputType types.InputType) *Metadata {
	return &Metadata{
		InputType: inputType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

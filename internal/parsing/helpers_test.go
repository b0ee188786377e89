package parsing

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/normalize"
)

const sampleResume = `
Jane Doe
Summary
Senior engineer
Experience
Engineer at Acme
- Built APIs
`

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.WithIDs(ids.Positional()), normalize.WithClock(func() time.Time { return fixedNow }))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

// scriptedModel replays canned responses and records every prompt.
type scriptedModel struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
}

func (m *scriptedModel) generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.prompts)
	m.prompts = append(m.prompts, prompt)

	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	if err != nil {
		return "", err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	if i >= len(m.responses) {
		return m.responses[len(m.responses)-1], nil
	}
	return m.responses[i], nil
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func validModelOutput(t *testing.T) string {
	return mustJSON(t, map[string]any{
		"sections": []any{
			map[string]any{"id": "section-1", "title": "Header", "kind": "header", "canonicalTarget": "none", "lines": []any{"Jane Doe"}},
			map[string]any{"id": "section-2", "title": "Summary", "kind": "summary", "canonicalTarget": "summary", "lines": []any{"Senior engineer"}},
			map[string]any{"id": "section-3", "title": "Experience", "kind": "work", "canonicalTarget": "work", "lines": []any{"Engineer at Acme", "- Built APIs"}},
		},
		"resumeData": map[string]any{
			"basics":    map[string]any{"name": "Jane Doe"},
			"work":      []any{map[string]any{"position": "Engineer", "company": "Acme", "highlights": []any{"Built APIs"}}},
			"education": []any{},
			"projects":  []any{},
			"awards":    []any{},
			"skills":    map[string]any{"technical": []any{"JavaScript"}},
			"languages": []any{},
		},
		"notes": []any{},
	})
}

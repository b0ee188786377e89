package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/db"
	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/server/ratelimit"
	"github.com/jonathan/resume-contract/internal/types"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const modelOutput = `{
	"resumeData": {
		"basics": {"name": "Jane Doe", "email": "jane@example.com"},
		"work": [{"company": "Acme", "position": "Engineer", "highlights": ["Built APIs"]}],
		"skills": {"technical": ["Go"]}
	},
	"sections": [{"title": "Experience", "content": "Acme\nBuilt APIs"}],
	"notes": []
}`

func testNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.WithIDs(ids.Positional()), normalize.WithClock(func() time.Time { return fixedNow }))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingModel returns the same response for every prompt.
type countingModel struct {
	mu       sync.Mutex
	response string
	calls    int
}

func (m *countingModel) generate(context.Context, string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.response, nil
}

func (m *countingModel) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// memStore keeps workspaces in memory.
type memStore struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]*db.WorkspaceRecord
	payloads   []types.ParsedResumePayload
}

func newMemStore() *memStore {
	return &memStore{workspaces: make(map[uuid.UUID]*db.WorkspaceRecord)}
}

func (m *memStore) SaveWorkspace(_ context.Context, ws types.Workspace) (*db.WorkspaceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := &db.WorkspaceRecord{ID: uuid.New(), Workspace: ws, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	m.workspaces[rec.ID] = rec
	return rec, nil
}

func (m *memStore) GetWorkspace(_ context.Context, id uuid.UUID) (*db.WorkspaceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.workspaces[id]
	if !ok {
		return nil, db.ErrWorkspaceNotFound
	}
	return rec, nil
}

func (m *memStore) UpdateWorkspace(_ context.Context, id uuid.UUID, ws types.Workspace) (*db.WorkspaceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.workspaces[id]
	if !ok {
		return nil, db.ErrWorkspaceNotFound
	}
	rec.Workspace = ws
	return rec, nil
}

func (m *memStore) DeleteWorkspace(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workspaces[id]; !ok {
		return db.ErrWorkspaceNotFound
	}
	delete(m.workspaces, id)
	return nil
}

func (m *memStore) ListWorkspaces(_ context.Context, limit int) ([]db.WorkspaceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.WorkspaceSummary{}
	for id, rec := range m.workspaces {
		if len(out) == limit {
			break
		}
		out = append(out, db.WorkspaceSummary{ID: id, ResumeID: rec.Workspace.ResumeData.ID})
	}
	return out, nil
}

func (m *memStore) SavePayload(_ context.Context, workspaceID *uuid.UUID, p types.ParsedResumePayload, attempts int) (*db.PayloadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, p)
	return &db.PayloadRecord{ID: uuid.New(), WorkspaceID: workspaceID, Attempts: attempts, Payload: p}, nil
}

func (m *memStore) payloadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

func newTestServer(t *testing.T, cfg Config, opts ...Option) *Server {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	opts = append([]Option{WithNormalizer(testNormalizer()), WithLogger(quietLogger())}, opts...)
	s := New(cfg, opts...)
	t.Cleanup(s.Close)
	return s
}

func newTestParser(model *countingModel) *parsing.Parser {
	return parsing.NewParser(model.generate,
		parsing.WithNormalizer(testNormalizer()),
		parsing.WithLogger(quietLogger()),
	)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// envelope is the union of the success and error bodies.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func samplePayloadJSON(t *testing.T) string {
	t.Helper()
	model := &countingModel{response: modelOutput}
	result, err := newTestParser(model).ParseResume(context.Background(), types.ParseRequest{ResumeText: "Jane Doe\nAcme"})
	require.NoError(t, err)
	raw, err := json.Marshal(result.Payload)
	require.NoError(t, err)
	return string(raw)
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}


package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/config"
	"github.com/jonathan/resume-contract/internal/db"
	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/types"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const modelOutput = "```json\n" + `{
	"resumeData": {
		"basics": {"name": "Jane Doe", "email": "jane@example.com"},
		"work": [{"company": "Acme", "position": "Engineer", "highlights": ["Built APIs"]}],
		"skills": {"technical": ["Go", "SQL"]}
	},
	"sections": [{"title": "Experience", "content": "Acme\nBuilt APIs"}],
	"notes": ["dates missing"]
}` + "\n```"

const resumeText = "Jane Doe\njane@example.com\n\nExperience\nAcme, Engineer\nBuilt APIs"

func testNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.WithIDs(ids.Positional()), normalize.WithClock(func() time.Time { return fixedNow }))
}

type fakeModel struct {
	mu       sync.Mutex
	response string
	prompts  []string
}

func (m *fakeModel) generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.response, nil
}

func (m *fakeModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// memStore keeps workspaces and payloads in memory.
type memStore struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]*db.WorkspaceRecord
	payloads   []db.PayloadRecord
	closed     int
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
	for _, rec := range m.workspaces {
		out = append(out, db.WorkspaceSummary{
			ID:        rec.ID,
			ResumeID:  rec.Workspace.ResumeData.ID,
			InputType: string(rec.Workspace.Source.InputType),
			Parser:    rec.Workspace.Source.Parser,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) SavePayload(_ context.Context, workspaceID *uuid.UUID, p types.ParsedResumePayload, attempts int) (*db.PayloadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := db.PayloadRecord{ID: uuid.New(), WorkspaceID: workspaceID, Parser: p.Source.Parser, Attempts: attempts, Payload: p, CreatedAt: fixedNow}
	m.payloads = append(m.payloads, rec)
	return &rec, nil
}

func (m *memStore) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

type testEnv struct {
	app   *app
	model *fakeModel
	store *memStore
	env   map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		model: &fakeModel{response: modelOutput},
		store: newMemStore(),
		env:   map[string]string{},
	}
	a := newApp()
	a.normalizer = testNormalizer()
	a.getenv = func(key string) string { return te.env[key] }
	a.newGenerate = func(_ context.Context, cfg config.Config) (parsing.GenerateFunc, func() error, error) {
		require.NotEmpty(t, cfg.ParserName)
		return te.model.generate, func() error { return nil }, nil
	}
	a.openStore = func(_ context.Context, url string) (store, error) {
		require.NotEmpty(t, url)
		return te.store, nil
	}
	te.app = a
	return te
}

// run executes the CLI in-process and returns stdout and stderr.
func (te *testEnv) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(te.app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writePayloadFile stores a valid parsed payload and returns its path.
func writePayloadFile(t *testing.T, dir string) string {
	t.Helper()
	payload, err := parsing.MapModelOutput(testNormalizer(), modelOutput, parsing.MapInput{
		InputType:  types.InputTypeText,
		ParserName: parsing.ParserName,
	})
	require.NoError(t, err)
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return writeFile(t, dir, "payload.json", string(data))
}

func decodeObject(t *testing.T, data string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &out))
	return out
}

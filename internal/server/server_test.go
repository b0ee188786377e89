package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/server/ratelimit"
	"github.com/jonathan/resume-contract/internal/types"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/health", "")
	assertStatus(t, w, http.StatusOK)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/nope", "")
	assertStatus(t, w, http.StatusNotFound)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeNotFound, env.Error.Code)
	assert.Equal(t, "Route not found.", env.Error.Message)
}

func TestParse_Success(t *testing.T) {
	model := &countingModel{response: modelOutput}
	store := newMemStore()
	s := newTestServer(t, Config{}, WithParser(newTestParser(model)), WithStore(store))

	w := do(t, s, http.MethodPost, "/parse", `{"resumeText":"Jane Doe\nAcme\nBuilt APIs","inputType":"text"}`)
	assertStatus(t, w, http.StatusOK)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	var payload types.ParsedResumePayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "2", payload.Version)
	assert.Equal(t, "Jane Doe", payload.ResumeData.Basics.Name)
	assert.Equal(t, "gemini-section-parser-v2", payload.Source.Parser)
	assert.Equal(t, 1, model.count())
	assert.Equal(t, 1, store.payloadCount())
}

func TestParse_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing resume text", body: `{"inputType":"text"}`, wantField: "resumeText"},
		{name: "bad input type", body: `{"resumeText":"x","inputType":"pdf"}`, wantField: "inputType"},
		{name: "blank file name", body: `{"resumeText":"x","fileName":"  "}`, wantField: "fileName"},
		{name: "wrong type", body: `{"resumeText":42}`, wantField: "body"},
		{name: "malformed json", body: `{"resumeText":`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &countingModel{response: modelOutput}
			s := newTestServer(t, Config{}, WithParser(newTestParser(model)))

			w := do(t, s, http.MethodPost, "/parse", tt.body)
			assertStatus(t, w, http.StatusBadRequest)

			env := decodeEnvelope(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, CodeInvalidInput, env.Error.Code)
			assert.Equal(t, "Invalid parse request payload.", env.Error.Message)

			var violations []types.FieldViolation
			require.NoError(t, json.Unmarshal(env.Error.Details, &violations))
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantField, violations[0].Field)
			assert.Zero(t, model.count())
		})
	}
}

func TestParse_Failure(t *testing.T) {
	model := &countingModel{response: "I cannot help with that."}
	store := newMemStore()
	s := newTestServer(t, Config{}, WithParser(newTestParser(model)), WithStore(store))

	w := do(t, s, http.MethodPost, "/parse", `{"resumeText":"Jane Doe"}`)
	assertStatus(t, w, http.StatusInternalServerError)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeParseFailed, env.Error.Code)
	assert.Equal(t, "Failed to parse resume with Gemini.", env.Error.Message)

	var details map[string]any
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Equal(t, float64(2), details["attempts"])
	assert.Contains(t, details, "geminiError")
	assert.Equal(t, 2, model.count())
	assert.Zero(t, store.payloadCount())
}

func TestParse_NotConfigured(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/parse", `{"resumeText":"Jane"}`)
	assertStatus(t, w, http.StatusServiceUnavailable)
	assert.Equal(t, CodeUnavailable, decodeEnvelope(t, w).Error.Code)
}

func TestNormalize(t *testing.T) {
	s := newTestServer(t, Config{})

	body := `{
		"candidate": {"name": "Jane Doe", "skills": {"languages": ["Go", "go"]}, "languages": ["French (Fluent)"]},
		"rawText": "Jane Doe",
		"notes": [" kept ", ""]
	}`
	w := do(t, s, http.MethodPost, "/normalize", body)
	assertStatus(t, w, http.StatusOK)

	var payload types.ParsedResumePayload
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &payload))
	assert.Equal(t, "2", payload.Version)
	assert.Equal(t, types.InputTypeText, payload.Source.InputType)
	assert.Equal(t, "gemini-section-parser-v2", payload.Source.Parser)
	assert.Equal(t, []string{"kept"}, payload.Notes)
	require.Len(t, payload.ResumeData.Skills, 1)
	require.Len(t, payload.ResumeData.Languages, 1)
	assert.Equal(t, "French", payload.ResumeData.Languages[0].Language)
	assert.Nil(t, payload.Sections)
}

func TestNormalize_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing candidate", body: `{"rawText":"x"}`, wantField: "candidate"},
		{name: "null candidate", body: `{"candidate":null}`, wantField: "candidate"},
		{name: "bad input type", body: `{"candidate":{},"inputType":"pdf"}`, wantField: "inputType"},
		{name: "malformed", body: `[`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			w := do(t, s, http.MethodPost, "/normalize", tt.body)
			assertStatus(t, w, http.StatusBadRequest)

			env := decodeEnvelope(t, w)
			assert.Equal(t, CodeInvalidInput, env.Error.Code)
			var violations []types.FieldViolation
			require.NoError(t, json.Unmarshal(env.Error.Details, &violations))
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantField, violations[0].Field)
		})
	}
}

func TestValidatePayload(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/validate/payload", samplePayloadJSON(t))
	assertStatus(t, w, http.StatusOK)
	assert.True(t, decodeEnvelope(t, w).Success)

	w = do(t, s, http.MethodPost, "/validate/payload", `{"version":"1"}`)
	assertStatus(t, w, http.StatusUnprocessableEntity)
	env := decodeEnvelope(t, w)
	assert.Equal(t, CodeInvalidDocument, env.Error.Code)

	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.True(t, strings.HasPrefix(details["path"], "parsedPayload"), details["path"])

	w = do(t, s, http.MethodPost, "/validate/payload", `not json`)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestValidateWorkspace(t *testing.T) {
	s := newTestServer(t, Config{})
	ws, err := testNormalizer().Factory().CreateEmptyWorkspace(types.Workspace{})
	require.NoError(t, err)
	raw, err := json.Marshal(ws)
	require.NoError(t, err)

	w := do(t, s, http.MethodPost, "/validate/workspace", string(raw))
	assertStatus(t, w, http.StatusOK)

	w = do(t, s, http.MethodPost, "/validate/workspace", `{"version":"1"}`)
	assertStatus(t, w, http.StatusUnprocessableEntity)
	assert.Contains(t, decodeEnvelope(t, w).Error.Message, "resumeWorkspace")
}

func TestWorkspaceLifecycle(t *testing.T) {
	store := newMemStore()
	s := newTestServer(t, Config{}, WithStore(store))

	w := do(t, s, http.MethodPost, "/workspaces", `{"payload":`+samplePayloadJSON(t)+`}`)
	assertStatus(t, w, http.StatusCreated)

	var created struct {
		ID        string          `json:"id"`
		Workspace types.Workspace `json:"workspace"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "2", created.Workspace.Version)
	require.NotNil(t, created.Workspace.Analysis.AI.Parsed)
	assert.Equal(t, "gemini-section-parser-v2", created.Workspace.Analysis.AI.Parsed.Parser)

	w = do(t, s, http.MethodGet, "/workspaces/"+created.ID, "")
	assertStatus(t, w, http.StatusOK)

	ws := created.Workspace
	ws.ResumeData.Summary = "Updated"
	raw, err := json.Marshal(map[string]any{"workspace": ws})
	require.NoError(t, err)
	w = do(t, s, http.MethodPut, "/workspaces/"+created.ID, string(raw))
	assertStatus(t, w, http.StatusOK)

	w = do(t, s, http.MethodGet, "/workspaces", "")
	assertStatus(t, w, http.StatusOK)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &list))
	assert.Len(t, list, 1)

	w = do(t, s, http.MethodDelete, "/workspaces/"+created.ID, "")
	assertStatus(t, w, http.StatusOK)

	w = do(t, s, http.MethodGet, "/workspaces/"+created.ID, "")
	assertStatus(t, w, http.StatusNotFound)
	assert.Equal(t, CodeNotFound, decodeEnvelope(t, w).Error.Code)
}

func TestWorkspace_Errors(t *testing.T) {
	s := newTestServer(t, Config{}, WithStore(newMemStore()))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "bad id", method: http.MethodGet, path: "/workspaces/not-a-uuid", wantStatus: http.StatusBadRequest, wantCode: CodeInvalidInput},
		{name: "unknown id", method: http.MethodDelete, path: "/workspaces/6f1c2b1e-8f6a-4a8e-9a57-3b1f4c1f0e2a", wantStatus: http.StatusNotFound, wantCode: CodeNotFound},
		{name: "legacy workspace", method: http.MethodPost, path: "/workspaces", body: `{"version":"1"}`, wantStatus: http.StatusUnprocessableEntity, wantCode: CodeInvalidDocument},
		{name: "invalid payload", method: http.MethodPost, path: "/workspaces", body: `{"payload":{"version":"2"}}`, wantStatus: http.StatusUnprocessableEntity, wantCode: CodeInvalidDocument},
		{name: "array body", method: http.MethodPost, path: "/workspaces", body: `[]`, wantStatus: http.StatusBadRequest, wantCode: CodeInvalidInput},
		{name: "bad limit", method: http.MethodGet, path: "/workspaces?limit=0", wantStatus: http.StatusBadRequest, wantCode: CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body)
			assertStatus(t, w, tt.wantStatus)
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, w).Error.Code)
		})
	}
}

func TestWorkspace_NotConfigured(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/workspaces", "")
	assertStatus(t, w, http.StatusServiceUnavailable)
	assert.Equal(t, CodeUnavailable, decodeEnvelope(t, w).Error.Code)
}

func TestBodyTooLarge(t *testing.T) {
	s := newTestServer(t, Config{MaxBodyBytes: 16})

	w := do(t, s, http.MethodPost, "/validate/payload", `{"version":"2","padding":"xxxxxxxxxxxxxxxx"}`)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Request body too large.", decodeEnvelope(t, w).Error.Message)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/normalize", Method: "POST", Limit: 1, Window: time.Hour},
		},
	}})

	body := `{"candidate":{"name":"Jane"}}`
	w := do(t, s, http.MethodPost, "/normalize", body)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, s, http.MethodPost, "/normalize", body)
	assertStatus(t, w, http.StatusTooManyRequests)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	env := decodeEnvelope(t, w)
	assert.Equal(t, CodeRateLimited, env.Error.Code)

	w = do(t, s, http.MethodGet, "/health", "")
	assertStatus(t, w, http.StatusOK)
}

func TestToAPIError(t *testing.T) {
	err := toAPIError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, CodeInternal, err.Code)
	assert.NotContains(t, err.Message, assert.AnError.Error())
}

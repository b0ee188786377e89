package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/types"
)

const maxListLimit = 200

// workspaceID parses the {id} path value.
func workspaceID(r *http.Request) (uuid.UUID, *APIError) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, invalidInput("Invalid workspace id.", []types.FieldViolation{{Field: "id", Message: "id must be a UUID."}})
	}
	return id, nil
}

// workspaceFromBody accepts {"payload": ...} to start a workspace from a
// parse result, {"workspace": ...} for a full document, or a bare
// workspace document.
func (s *Server) workspaceFromBody(value any) (types.Workspace, *APIError) {
	obj, ok := jsonx.AsObject(value)
	if !ok {
		return types.Workspace{}, invalidInput("Request body must be a JSON object.", nil)
	}

	if obj.Has("payload") {
		payload, err := s.validator().ParsedPayload().Parse(obj.Value("payload"))
		if err != nil {
			return types.Workspace{}, documentError(err)
		}
		ws, err := s.normalizer.Factory().WorkspaceFromPayload(payload)
		if err != nil {
			return types.Workspace{}, documentError(err)
		}
		return ws, nil
	}

	doc := value
	if obj.Has("workspace") {
		doc = obj.Value("workspace")
	}
	ws, err := s.validator().Workspace().Parse(doc)
	if err != nil {
		return types.Workspace{}, documentError(err)
	}
	return ws, nil
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, unavailable("Workspace storage"))
		return
	}
	value, err := s.decodeBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ws, apiErr := s.workspaceFromBody(value)
	if apiErr != nil {
		s.writeError(w, apiErr)
		return
	}

	rec, err := s.store.SaveWorkspace(r.Context(), ws)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusCreated, rec)
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, unavailable("Workspace storage"))
		return
	}
	id, apiErr := workspaceID(r)
	if apiErr != nil {
		s.writeError(w, apiErr)
		return
	}
	rec, err := s.store.GetWorkspace(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, unavailable("Workspace storage"))
		return
	}
	id, apiErr := workspaceID(r)
	if apiErr != nil {
		s.writeError(w, apiErr)
		return
	}
	value, err := s.decodeBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ws, apiErr := s.workspaceFromBody(value)
	if apiErr != nil {
		s.writeError(w, apiErr)
		return
	}

	rec, err := s.store.UpdateWorkspace(r.Context(), id, ws)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, unavailable("Workspace storage"))
		return
	}
	id, apiErr := workspaceID(r)
	if apiErr != nil {
		s.writeError(w, apiErr)
		return
	}
	if err := s.store.DeleteWorkspace(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, unavailable("Workspace storage"))
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			s.writeError(w, invalidInput("Invalid limit.", []types.FieldViolation{{Field: "limit", Message: "limit must be between 1 and 200."}}))
			return
		}
		limit = n
	}

	summaries, err := s.store.ListWorkspaces(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusOK, summaries)
}

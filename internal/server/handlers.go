package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/schemas"
	"github.com/jonathan/resume-contract/internal/types"
)

// NormalizeRequest is the body of POST /normalize: model-shaped output to
// be mapped onto a canonical payload without calling the model.
type NormalizeRequest struct {
	Candidate  json.RawMessage `json:"candidate"`
	Sections   json.RawMessage `json:"sections,omitempty"`
	RawText    string          `json:"rawText"`
	InputType  types.InputType `json:"inputType,omitempty" validate:"omitempty,oneof=file text linkedin"`
	FileName   string          `json:"fileName,omitempty" validate:"max=255"`
	ParserName string          `json:"parserName,omitempty" validate:"max=100"`
	Notes      []string        `json:"notes,omitempty" validate:"max=50"`
}

var requestValidator = newRequestValidator()

// newRequestValidator reports fields by their JSON names.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// readBody reads at most maxBodyBytes of the request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, invalidInput("Request body too large.", map[string]int64{"maxBytes": tooLarge.Limit})
		}
		return nil, invalidInput("Could not read request body.", nil)
	}
	return data, nil
}

// decodeBody reads the body as key-ordered generic JSON.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (any, error) {
	data, err := s.readBody(w, r)
	if err != nil {
		return nil, err
	}
	value, err := jsonx.Decode(data)
	if err != nil {
		return nil, invalidInput("Request body must be valid JSON.", []types.FieldViolation{{Field: "body", Message: err.Error()}})
	}
	return value, nil
}

// handleParse runs the model-backed parse and returns the payload.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if s.parser == nil {
		s.writeError(w, unavailable("Resume parsing"))
		return
	}
	started := time.Now()

	data, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.ParseRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.writeError(w, invalidInput(invalidParseRequestMessage, []types.FieldViolation{{Field: "body", Message: err.Error()}}))
		return
	}

	result, err := s.parser.ParseResume(r.Context(), req)
	if err != nil {
		s.writeError(w, parseFailure(err))
		return
	}

	if s.store != nil {
		if _, err := s.store.SavePayload(r.Context(), nil, result.Payload, result.Attempts); err != nil {
			s.logger.Warn("failed to record parse result", slog.Any("error", err))
		}
	}

	s.logger.Info("parse request",
		slog.String("scope", "parse-route"),
		slog.Int("statusCode", http.StatusOK),
		slog.String("source", result.Source),
		slog.Int("attempts", result.Attempts),
		slog.Int64("latencyMs", time.Since(started).Milliseconds()),
	)
	s.success(w, http.StatusOK, result.Payload)
}

// parseFailure maps every parser error other than a request violation onto
// PARSE_FAILED.
func parseFailure(err error) *APIError {
	var reqErr *types.RequestError
	var failed *parsing.ParseFailedError
	switch {
	case errors.As(err, &reqErr), errors.As(err, &failed):
		return toAPIError(err)
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: CodeParseFailed, Message: err.Error()}
	}
}

// handleNormalize maps a candidate onto a payload with the loose normalizers.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req NormalizeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.writeError(w, invalidInput("Invalid normalize request payload.", []types.FieldViolation{{Field: "body", Message: err.Error()}}))
		return
	}
	if violations := validateNormalizeRequest(req); len(violations) > 0 {
		s.writeError(w, invalidInput("Invalid normalize request payload.", violations))
		return
	}

	candidate, err := jsonx.Decode(req.Candidate)
	if err != nil {
		s.writeError(w, invalidInput("Invalid normalize request payload.", []types.FieldViolation{{Field: "candidate", Message: err.Error()}}))
		return
	}
	var sections any
	if len(req.Sections) > 0 {
		if sections, err = jsonx.Decode(req.Sections); err != nil {
			s.writeError(w, invalidInput("Invalid normalize request payload.", []types.FieldViolation{{Field: "sections", Message: err.Error()}}))
			return
		}
	}

	parserName := req.ParserName
	if parserName == "" {
		parserName = parsing.ParserName
	}
	payload, err := s.normalizer.BuildParsedPayload(normalize.PayloadInput{
		Candidate:     candidate,
		SectionBlocks: sections,
		RawText:       req.RawText,
		InputType:     req.InputType,
		FileName:      req.FileName,
		ParserName:    parserName,
		Notes:         normalize.NormalizeStrings(req.Notes),
	})
	if err != nil {
		s.writeError(w, documentError(err))
		return
	}
	s.success(w, http.StatusOK, payload)
}

func validateNormalizeRequest(req NormalizeRequest) []types.FieldViolation {
	var violations []types.FieldViolation
	if len(req.Candidate) == 0 || string(req.Candidate) == "null" {
		violations = append(violations, types.FieldViolation{Field: "candidate", Message: "candidate is required."})
	}
	if err := requestValidator.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				violations = append(violations, types.FieldViolation{
					Field:   fe.Field(),
					Message: "failed " + fe.Tag() + " validation",
				})
			}
		}
	}
	return violations
}

// handleValidatePayload runs a payload through both validation gates and
// returns its canonical form.
func (s *Server) handleValidatePayload(w http.ResponseWriter, r *http.Request) {
	value, err := s.decodeBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res := s.validator().ParsedPayload().SafeParse(value)
	if !res.Success {
		s.writeError(w, documentError(res.Error))
		return
	}
	if err := schemas.ValidateValue(schemas.DocumentParsedPayload, res.Data); err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusOK, res.Data)
}

// handleValidateWorkspace is handleValidatePayload for workspaces.
func (s *Server) handleValidateWorkspace(w http.ResponseWriter, r *http.Request) {
	value, err := s.decodeBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res := s.validator().Workspace().SafeParse(value)
	if !res.Success {
		s.writeError(w, documentError(res.Error))
		return
	}
	if err := schemas.ValidateValue(schemas.DocumentWorkspace, res.Data); err != nil {
		s.fail(w, r, err)
		return
	}
	s.success(w, http.StatusOK, res.Data)
}

func (s *Server) validator() *contract.Validator {
	return s.normalizer.Factory().Validator()
}

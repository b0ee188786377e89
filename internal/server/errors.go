package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/db"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/schemas"
	"github.com/jonathan/resume-contract/internal/types"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeParseFailed     = "PARSE_FAILED"
	CodeInvalidDocument = "INVALID_DOCUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternal        = "INTERNAL"
)

const invalidParseRequestMessage = "Invalid parse request payload."

// APIError is an error with its HTTP status and envelope fields.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the inner error object.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func invalidInput(message string, details any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: message, Details: details}
}

func notFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// documentError reports a document rejected by either validation gate.
func documentError(err error) *APIError {
	apiErr := &APIError{Status: http.StatusUnprocessableEntity, Code: CodeInvalidDocument, Message: err.Error()}

	var se *contract.SchemaError
	var ve *schemas.ValidationError
	switch {
	case errors.As(err, &se):
		apiErr.Details = map[string]string{"path": se.Path}
	case errors.As(err, &ve):
		apiErr.Details = ve.Errors
	}
	return apiErr
}

// toAPIError maps domain errors onto the envelope. Unknown errors become
// INTERNAL so their text is not leaked.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	var reqErr *types.RequestError
	var parseErr *parsing.ParseFailedError
	var se *contract.SchemaError
	var ve *schemas.ValidationError

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &reqErr):
		return invalidInput(invalidParseRequestMessage, reqErr.Violations)
	case errors.As(err, &parseErr):
		return &APIError{
			Status:  http.StatusInternalServerError,
			Code:    parseErr.Code(),
			Message: parseErr.Error(),
			Details: parseErr.Details(),
		}
	case errors.Is(err, db.ErrWorkspaceNotFound):
		return notFound("Workspace not found.")
	case errors.Is(err, db.ErrPayloadNotFound):
		return notFound("Parsed payload not found.")
	case errors.As(err, &se), errors.As(err, &ve):
		return documentError(err)
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error."}
	}
}

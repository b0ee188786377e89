package parsing

import (
	"errors"
	"fmt"
)

// CodeParseFailed is the error code reported when every attempt failed.
const CodeParseFailed = "PARSE_FAILED"

// APICallError is a failure calling the model.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ExtractionError means the model response holds no JSON object.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// ParseError is a JSON decoding failure of the model response.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError is a strict-schema failure of the assembled payload.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ParseFailedError is returned after the last attempt fails. Cause is the
// error of that attempt.
type ParseFailedError struct {
	Attempts int
	Cause    error
}

func (e *ParseFailedError) Error() string {
	return "Failed to parse resume with Gemini."
}

func (e *ParseFailedError) Unwrap() error {
	return e.Cause
}

// Code returns CodeParseFailed.
func (e *ParseFailedError) Code() string {
	return CodeParseFailed
}

// Details returns the client-facing error details.
func (e *ParseFailedError) Details() map[string]any {
	details := map[string]any{"attempts": e.Attempts}
	if e.Cause != nil {
		details["geminiError"] = e.Cause.Error()
	}
	return details
}

// IsRepairable reports whether another attempt with a repair note may
// succeed. Model call failures are retried too.
func IsRepairable(err error) bool {
	var (
		extraction *ExtractionError
		parse      *ParseError
		validation *ValidationError
		apiCall    *APICallError
	)
	return errors.As(err, &extraction) || errors.As(err, &parse) ||
		errors.As(err, &validation) || errors.As(err, &apiCall)
}

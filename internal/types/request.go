package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxResumeTextLength caps the size of a parse request body's resume text.
const MaxResumeTextLength = 120000

// ParseRequest is the body of a parse call.
type ParseRequest struct {
	ResumeText string    `json:"resumeText" validate:"required,max=120000"`
	InputType  InputType `json:"inputType,omitempty" validate:"omitempty,oneof=file text linkedin"`
	FileName   *string   `json:"fileName,omitempty"`
}

// FieldViolation is one rejected request field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequestError lists every violation found in a request.
type RequestError struct {
	Violations []FieldViolation
}

func (e *RequestError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

var requestValidator = newRequestValidator()

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

// Validate checks the request and returns a *RequestError describing every
// violation.
func (r *ParseRequest) Validate() error {
	var violations []FieldViolation

	if strings.TrimSpace(r.ResumeText) == "" {
		violations = append(violations, FieldViolation{Field: "resumeText", Message: "resumeText is required."})
	}

	if err := requestValidator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range fieldErrs {
			switch {
			case fe.Field() == "resumeText" && fe.Tag() == "required":
				// reported by the blank check above
			case fe.Field() == "resumeText" && fe.Tag() == "max":
				violations = append(violations, FieldViolation{
					Field:   "resumeText",
					Message: fmt.Sprintf("resumeText exceeds maximum length (%d chars).", MaxResumeTextLength),
				})
			case fe.Field() == "inputType":
				violations = append(violations, FieldViolation{
					Field:   "inputType",
					Message: "inputType must be one of: file, text, linkedin.",
				})
			default:
				violations = append(violations, FieldViolation{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed %s validation", fe.Tag()),
				})
			}
		}
	}

	if r.FileName != nil && strings.TrimSpace(*r.FileName) == "" {
		violations = append(violations, FieldViolation{
			Field:   "fileName",
			Message: "fileName must be a non-empty string when provided.",
		})
	}

	if len(violations) > 0 {
		return &RequestError{Violations: violations}
	}
	return nil
}

// Normalized returns a trimmed copy with the input type defaulted to text.
// Call it only after Validate succeeds.
func (r ParseRequest) Normalized() ParseRequest {
	out := ParseRequest{
		ResumeText: strings.TrimSpace(r.ResumeText),
		InputType:  r.InputType,
	}
	if out.InputType == "" {
		out.InputType = InputTypeText
	}
	if r.FileName != nil {
		name := strings.TrimSpace(*r.FileName)
		out.FileName = &name
	}
	return out
}

// FileNameValue returns the file name or "" when none was given.
func (r ParseRequest) FileNameValue() string {
	if r.FileName == nil {
		return ""
	}
	return *r.FileName
}

// Package schemas validates canonical documents against the embedded JSON
// Schemas. It is a second gate after the strict validators in package
// contract: documents are checked in their marshalled, canonical form.
package schemas

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	jsonschemas "github.com/jonathan/resume-contract/schemas"
)

// Document names one embedded root schema.
type Document string

const (
	DocumentResumeData    Document = "resume_data"
	DocumentParsedPayload Document = "parsed_payload"
	DocumentWorkspace     Document = "workspace"
)

// Documents lists every root schema.
var Documents = []Document{DocumentResumeData, DocumentParsedPayload, DocumentWorkspace}

// FileName returns the embedded file holding the document schema.
func (d Document) FileName() string {
	return string(d) + ".schema.json"
}

const commonFile = "common.schema.json"

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Document Document
	Errors   []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaLoadError represents errors loading or compiling the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Document != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Document))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	compileMu sync.Mutex
	compiled  = map[Document]*gojsonschema.Schema{}
)

// Compile returns the compiled schema for doc. Results are cached.
func Compile(doc Document) (*gojsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	if schema, ok := compiled[doc]; ok {
		return schema, nil
	}

	common, err := fs.ReadFile(jsonschemas.FS, commonFile)
	if err != nil {
		return nil, &SchemaLoadError{Path: commonFile, Message: "read embedded schema", Cause: err}
	}
	root, err := fs.ReadFile(jsonschemas.FS, doc.FileName())
	if err != nil {
		return nil, &SchemaLoadError{Path: doc.FileName(), Message: "read embedded schema", Cause: err}
	}

	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft7
	if err := loader.AddSchemas(gojsonschema.NewBytesLoader(common)); err != nil {
		return nil, &SchemaLoadError{Path: commonFile, Message: "register schema", Cause: err}
	}
	schema, err := loader.Compile(gojsonschema.NewBytesLoader(root))
	if err != nil {
		return nil, &SchemaLoadError{Path: doc.FileName(), Message: "compile schema", Cause: err}
	}

	compiled[doc] = schema
	return schema, nil
}

// ValidateDocument validates raw JSON against the schema of doc.
func ValidateDocument(doc Document, data []byte) error {
	schema, err := Compile(doc)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", doc, err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := collectErrors(result)
	validationErr.Document = doc
	return validationErr
}

// ValidateValue marshals v and validates it against the schema of doc.
func ValidateValue(doc Document, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", doc, err)
	}
	return ValidateDocument(doc, data)
}

// ValidateFile validates a JSON file against the schema of doc.
func ValidateFile(doc Document, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateDocument(doc, data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}
	return collectErrors(result)
}

func collectErrors(result *gojsonschema.Result) *ValidationError {
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

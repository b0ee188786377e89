package contract

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-contract/internal/jsonx"
)

// Schema is a strict validator for one canonical document type.
type Schema[T any] struct {
	root  string
	parse func(value any, path string) (T, error)
}

// Result is the outcome of SafeParse.
type Result[T any] struct {
	Success bool
	Data    T
	Error   *SchemaError
}

func newSchema[T any](root string, parse func(any, string) (T, error)) Schema[T] {
	return Schema[T]{root: root, parse: parse}
}

// Root is the path prefix used in error messages.
func (s Schema[T]) Root() string {
	return s.root
}

// Parse validates a generic JSON value and returns the canonical document or
// the first *SchemaError found.
func (s Schema[T]) Parse(value any) (T, error) {
	return s.parse(value, s.root)
}

// SafeParse is Parse wrapped into a Result. It never panics.
func (s Schema[T]) SafeParse(value any) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Error: schemaErr(s.root, fmt.Sprintf("validator panic: %v", r))}
		}
	}()

	data, err := s.Parse(value)
	if err != nil {
		return Result[T]{Error: asSchemaError(err, s.root)}
	}
	return Result[T]{Success: true, Data: data}
}

// ParseJSON decodes raw JSON (keeping key order) and validates it.
func (s Schema[T]) ParseJSON(data []byte) (T, error) {
	value, err := jsonx.Decode(data)
	if err != nil {
		var zero T
		return zero, schemaErr(s.root, "Invalid JSON: "+err.Error())
	}
	return s.Parse(value)
}

// Validate re-walks an already typed document through the strict parser.
// The returned value has every default applied.
func (s Schema[T]) Validate(doc T) (T, error) {
	value, err := jsonx.FromValue(doc)
	if err != nil {
		var zero T
		return zero, schemaErr(s.root, err.Error())
	}
	return s.Parse(value)
}

func asSchemaError(err error, root string) *SchemaError {
	var se *SchemaError
	if errors.As(err, &se) {
		return se
	}
	return schemaErr(root, err.Error())
}

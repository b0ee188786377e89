// Package contract implements the strict resume contract: primitive
// coercers, runtime schema validators for every canonical document, and the
// factories that build valid empty documents.
//
// Validators walk generic JSON values (as produced by jsonx.Decode or
// encoding/json) and never coerce silently: any wrong primitive type,
// unknown enum value or missing required field is reported as a
// *SchemaError carrying the offending field path.
package contract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-contract/internal/jsonx"
)

// Options tune the primitive coercers.
type Options struct {
	// Optional allows an absent (nil) value, which coerces to the zero value.
	Optional bool
	// MinLength is the minimum string length accepted by AsString.
	MinLength int
}

// Optional is shorthand for Options{Optional: true}.
var Optional = Options{Optional: true}

// AsString requires value to be a string.
func AsString(value any, path string, opts Options) (string, error) {
	if value == nil {
		if opts.Optional {
			return "", nil
		}
		return "", schemaErr(path, "Expected string")
	}
	s, ok := value.(string)
	if !ok {
		return "", schemaErr(path, "Expected string")
	}
	if len([]rune(s)) < opts.MinLength {
		return "", schemaErr(path, fmt.Sprintf("Expected string length >= %d", opts.MinLength))
	}
	return s, nil
}

// AsBool requires value to be a boolean.
func AsBool(value any, path string, opts Options) (bool, error) {
	if value == nil {
		if opts.Optional {
			return false, nil
		}
		return false, schemaErr(path, "Expected boolean")
	}
	b, ok := value.(bool)
	if !ok {
		return false, schemaErr(path, "Expected boolean")
	}
	return b, nil
}

// AsNumber requires value to be a finite number. An absent optional number
// yields nil.
func AsNumber(value any, path string, opts Options) (*float64, error) {
	if value == nil {
		if opts.Optional {
			return nil, nil
		}
		return nil, schemaErr(path, "Expected number")
	}

	var n float64
	switch t := value.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, schemaErr(path, "Expected number")
		}
		n = f
	default:
		return nil, schemaErr(path, "Expected number")
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, schemaErr(path, "Expected number")
	}
	return &n, nil
}

// AsEnum requires value to be one of allowed.
func AsEnum[T ~string](value any, allowed []T, path string, opts Options) (T, error) {
	var zero T
	if value == nil && opts.Optional {
		return zero, nil
	}
	if s, ok := value.(string); ok {
		for _, candidate := range allowed {
			if string(candidate) == s {
				return candidate, nil
			}
		}
	}
	return zero, schemaErr(path, "Expected one of: "+joinValues(allowed))
}

// ItemParser parses one array element found at path.
type ItemParser[T any] func(value any, path string, index int) (T, error)

// AsArray requires value to be an array and parses every element with
// parse. An absent array yields an empty, non-nil slice.
func AsArray[T any](value any, path string, parse ItemParser[T]) ([]T, error) {
	if value == nil {
		return []T{}, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, schemaErr(path, "Expected array")
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		parsed, err := parse(item, indexPath(path, i), i)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// AsObject requires value to be a JSON object.
func AsObject(value any, path string) (*jsonx.Object, error) {
	obj, ok := jsonx.AsObject(value)
	if !ok {
		return nil, schemaErr(path, "Expected object")
	}
	return obj, nil
}

// StringItem is an ItemParser for required string elements.
func StringItem(value any, path string, _ int) (string, error) {
	return AsString(value, path, Options{})
}

// Truthy reports whether value would count as set in a loosely typed
// document: non-empty strings, non-zero numbers, true, and any object or
// array.
func Truthy(value any) bool {
	switch t := value.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case bool:
		return t
	}
	return true
}

// FirstTruthy returns the first truthy value among keys of obj. When none is
// truthy it returns the value of the last key, mirroring a chain of
// "a || b || c" lookups.
func FirstTruthy(obj *jsonx.Object, keys ...string) any {
	var last any
	for _, key := range keys {
		last = obj.Value(key)
		if Truthy(last) {
			return last
		}
	}
	return last
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

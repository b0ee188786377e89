package contract

import (
	"github.com/jonathan/resume-contract/internal/jsonx"
)

// fields reads typed values out of one object, remembering the first
// failure so parsers can read every field before checking err once.
type fields struct {
	obj  *jsonx.Object
	path string
	err  error
}

func readObject(value any, path string) (*fields, error) {
	obj, err := AsObject(value, path)
	if err != nil {
		return nil, err
	}
	return &fields{obj: obj, path: path}, nil
}

func (f *fields) at(key string) string {
	return f.path + "." + key
}

func (f *fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// value looks up keys in order with "a || b" semantics.
func (f *fields) value(keys ...string) any {
	return FirstTruthy(f.obj, keys...)
}

// str reads an optional string from the first truthy key. The error path
// names the first key.
func (f *fields) str(keys ...string) string {
	if f.err != nil {
		return ""
	}
	s, err := AsString(f.value(keys...), f.at(keys[0]), Optional)
	if err != nil {
		f.fail(err)
	}
	return s
}

// required reads a required string of at least minLength characters.
func (f *fields) required(key string, minLength int) string {
	if f.err != nil {
		return ""
	}
	s, err := AsString(f.obj.Value(key), f.at(key), Options{MinLength: minLength})
	if err != nil {
		f.fail(err)
	}
	return s
}

func (f *fields) boolean(key string, opts Options) bool {
	if f.err != nil {
		return false
	}
	b, err := AsBool(f.obj.Value(key), f.at(key), opts)
	if err != nil {
		f.fail(err)
	}
	return b
}

func (f *fields) number(key string, opts Options) *float64 {
	if f.err != nil {
		return nil
	}
	n, err := AsNumber(f.obj.Value(key), f.at(key), opts)
	if err != nil {
		f.fail(err)
	}
	return n
}

func (f *fields) stringList(key string) []string {
	if f.err != nil {
		return nil
	}
	list, err := parseStringList(f.obj.Value(key), f.at(key))
	if err != nil {
		f.fail(err)
	}
	return list
}

func enumField[T ~string](f *fields, key string, allowed []T, opts Options) T {
	var zero T
	if f.err != nil {
		return zero
	}
	v, err := AsEnum(f.obj.Value(key), allowed, f.at(key), opts)
	if err != nil {
		f.fail(err)
	}
	return v
}

// listField parses an array found under the first truthy key; the error
// path names the first key.
func listField[T any](f *fields, parse ItemParser[T], keys ...string) []T {
	if f.err != nil {
		return nil
	}
	list, err := AsArray(f.value(keys...), f.at(keys[0]), parse)
	if err != nil {
		f.fail(err)
	}
	return list
}

// parseStringList accepts an array of strings or numbers, or a delimited
// string. Blank entries are dropped.
func parseStringList(value any, path string) ([]string, error) {
	switch t := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		return SplitInlineList(t), nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			var s string
			switch v := item.(type) {
			case string:
				s = v
			case float64:
				s = FormatNumber(v)
			default:
				return nil, schemaErr(indexPath(path, i), "Expected string")
			}
			if s = NormalizeString(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}
	return nil, schemaErr(path, "Expected array")
}

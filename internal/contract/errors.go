package contract

import "fmt"

// SchemaError is a structural violation found by a strict validator. Path is
// the dotted field path ("resumeData.work[0].company").
type SchemaError struct {
	Message string
	Path    string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func schemaErr(path, message string) *SchemaError {
	return &SchemaError{Message: message, Path: path}
}

func indexPath(path string, index int) string {
	return fmt.Sprintf("%s[%d]", path, index)
}

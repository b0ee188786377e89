// Package ingestion reads résumé text from files, raw input and profile
// URLs, and packages it as a parse request.
package ingestion

import (
	"errors"

	"github.com/jonathan/resume-contract/internal/types"
)

// ErrEmptySource is returned when a source yields no text.
var ErrEmptySource = errors.New("source contains no text")

// Source is cleaned résumé text ready to be parsed.
type Source struct {
	Text      string
	InputType types.InputType
	FileName  string
	Metadata  *Metadata
}

// Request builds the parse request for the source.
func (s *Source) Request() types.ParseRequest {
	req := types.ParseRequest{
		ResumeText: s.Text,
		InputType:  s.InputType,
	}
	if s.FileName != "" {
		name := s.FileName
		req.FileName = &name
	}
	return req
}

func newSource(text string, inputType types.InputType, fileName string) (*Source, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptySource
	}
	meta := NewMetadata(cleaned, inputType)
	meta.FileName = fileName
	return &Source{
		Text:      cleaned,
		InputType: inputType,
		FileName:  fileName,
		Metadata:  meta,
	}, nil
}

// FromText wraps pasted résumé text.
func FromText(text string) (*Source, error) {
	return newSource(text, types.InputTypeText, "")
}

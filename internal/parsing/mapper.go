package parsing

import (
	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/types"
)

// ParserName identifies payloads produced by this package.
const ParserName = "gemini-section-parser-v2"

// MapInput is the request context a model response is mapped with.
type MapInput struct {
	NormalizedText string
	InputType      types.InputType
	FileName       string
	ParserName     string
	ServiceNotes   []string
}

// ModelOutput is a decoded model response split into the parts the
// payload assembler consumes.
type ModelOutput struct {
	Candidate any
	Sections  []any
	Notes     []string
}

// DecodeModelOutput extracts and decodes the JSON object of a raw model
// response. The resume candidate is "resumeData", else "resume", else the
// root object; sections are "sections" followed by "customSections".
func DecodeModelOutput(raw string) (ModelOutput, error) {
	text, err := ExtractJSONText(raw)
	if err != nil {
		return ModelOutput{}, err
	}
	value, err := jsonx.Decode([]byte(text))
	if err != nil {
		return ModelOutput{}, &ParseError{Message: "invalid JSON in model response", Cause: err}
	}

	root, ok := jsonx.AsObject(value)
	if !ok {
		return ModelOutput{Candidate: value, Sections: []any{}, Notes: []string{}}, nil
	}

	out := ModelOutput{Candidate: root, Sections: []any{}}
	for _, key := range []string{"resumeData", "resume"} {
		if candidate, ok := jsonx.AsObject(root.Value(key)); ok {
			out.Candidate = candidate
			break
		}
	}
	for _, key := range []string{"sections", "customSections"} {
		if list, ok := root.Value(key).([]any); ok {
			out.Sections = append(out.Sections, list...)
		}
	}
	out.Notes = modelNotes(root.Value("notes"))
	return out, nil
}

func modelNotes(v any) []string {
	notes := []string{}
	list, _ := v.([]any)
	for _, item := range list {
		if s, ok := item.(string); ok {
			notes = append(notes, s)
		}
	}
	return normalize.NormalizeStrings(notes)
}

// MapModelOutput turns a raw model response into a parsed payload.
func MapModelOutput(n *normalize.Normalizer, raw string, in MapInput) (types.ParsedResumePayload, error) {
	out, err := DecodeModelOutput(raw)
	if err != nil {
		return types.ParsedResumePayload{}, err
	}

	parser := in.ParserName
	if parser == "" {
		parser = ParserName
	}
	notes := append(append([]string{}, out.Notes...), in.ServiceNotes...)

	return n.BuildParsedPayload(normalize.PayloadInput{
		Candidate:     out.Candidate,
		SectionBlocks: out.Sections,
		RawText:       in.NormalizedText,
		InputType:     in.InputType,
		FileName:      in.FileName,
		ParserName:    parser,
		Notes:         notes,
	})
}

package contract

import (
	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/types"
)

// Root paths used in schema error messages.
const (
	RootResumeData       = "resumeData"
	RootSourceMeta       = "resumeSource"
	RootAnalysisSnapshot = "analysisSnapshot"
	RootParsedPayload    = "parsedPayload"
	RootParsedMeta       = "parsedMeta"
	RootReasoningPayload = "reasoningPayload"
	RootWorkspace        = "resumeWorkspace"
)

// Validator builds strict schemas. Its id generator fills in identifiers
// that a document omits (highlight ids, skill ids and so on).
type Validator struct {
	ids ids.Generator
}

// NewValidator returns a validator minting missing ids with gen. A nil gen
// uses random UUID-suffixed ids.
func NewValidator(gen ids.Generator) *Validator {
	if gen == nil {
		gen = ids.UUID()
	}
	return &Validator{ids: gen}
}

// Default mints random ids.
var Default = NewValidator(nil)

// ResumeData validates a canonical resume document.
func (v *Validator) ResumeData() Schema[types.ResumeData] {
	return newSchema(RootResumeData, v.parseResumeData)
}

// SourceMeta validates resume source metadata.
func (v *Validator) SourceMeta() Schema[types.SourceMeta] {
	return newSchema(RootSourceMeta, v.parseSourceMeta)
}

// AnalysisSnapshot validates a stored analysis result.
func (v *Validator) AnalysisSnapshot() Schema[types.AnalysisSnapshot] {
	return newSchema(RootAnalysisSnapshot, v.parseAnalysisSnapshot)
}

// ParsedPayload validates a version "2" parsed resume payload.
func (v *Validator) ParsedPayload() Schema[types.ParsedResumePayload] {
	return newSchema(RootParsedPayload, v.parsePayload)
}

// ParsedMeta validates workspace parse metadata.
func (v *Validator) ParsedMeta() Schema[types.ParsedMeta] {
	return newSchema(RootParsedMeta, v.parseParsedMeta)
}

// ReasoningPayload validates a version "1" reasoning payload.
func (v *Validator) ReasoningPayload() Schema[types.ReasoningPayload] {
	return newSchema(RootReasoningPayload, v.parseReasoning)
}

// Workspace validates a version "2" resume workspace.
func (v *Validator) Workspace() Schema[types.Workspace] {
	return newSchema(RootWorkspace, v.parseWorkspace)
}

// SafeParseWorkspace validates an externally supplied workspace with the
// default validator.
func SafeParseWorkspace(value any) Result[types.Workspace] {
	return Default.Workspace().SafeParse(value)
}

// SafeParsePayload validates a parsed payload with the default validator.
func SafeParsePayload(value any) Result[types.ParsedResumePayload] {
	return Default.ParsedPayload().SafeParse(value)
}

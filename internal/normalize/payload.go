package normalize

import (
	"fmt"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/types"
)

// PayloadInput is everything BuildParsedPayload needs from one parse.
type PayloadInput struct {
	// Candidate is the model's resume-shaped object, in any shape.
	Candidate any
	// SectionBlocks are candidate section blocks. When nil, the
	// candidate's own "sections" key is used.
	SectionBlocks any
	RawText       string
	InputType     types.InputType
	FileName      string
	ParserName    string
	Notes         []string
}

// BuildParsedPayload normalizes a candidate into a version "2" payload.
// Sections, presence and custom sections are left out entirely when no
// section block survives. The assembled payload is re-walked by the strict
// validator, which is the only source of errors.
func (n *Normalizer) BuildParsedPayload(in PayloadInput) (types.ParsedResumePayload, error) {
	resume := NormalizeResumeCandidate(in.Candidate)

	rawBlocks := in.SectionBlocks
	if rawBlocks == nil {
		if obj, ok := object(in.Candidate); ok {
			rawBlocks = obj.Value("sections")
		}
	}
	blocks := NormalizeSectionBlocks(rawBlocks)

	inputType := in.InputType
	if !inputType.Valid() {
		inputType = types.InputTypeText
	}
	now := n.factory.Now()

	source, err := n.factory.CreateEmptySourceMeta(types.SourceMeta{
		InputType:  inputType,
		RawText:    in.RawText,
		FileName:   contract.NormalizeString(in.FileName),
		ImportedAt: now,
		ParsedAt:   now,
		Parser:     in.ParserName,
	})
	if err != nil {
		return types.ParsedResumePayload{}, fmt.Errorf("build source: %w", err)
	}

	resumeData, err := n.factory.CreateEmptyResumeData(resume)
	if err != nil {
		return types.ParsedResumePayload{}, fmt.Errorf("build resume data: %w", err)
	}

	payload := types.ParsedResumePayload{
		Version:    types.ContractVersion,
		ResumeData: resumeData,
		Source:     source,
		Notes:      NormalizeStrings(in.Notes),
	}
	if len(blocks) > 0 {
		presence := DeriveSectionPresence(blocks, resume)
		payload.Sections = blocks
		payload.SectionPresence = &presence
		payload.CustomSections = DeriveCustomSections(blocks)
	}

	return n.factory.Validator().ParsedPayload().Validate(payload)
}

// BuildParsedPayload assembles a payload with the Default normalizer.
func BuildParsedPayload(in PayloadInput) (types.ParsedResumePayload, error) {
	return Default.BuildParsedPayload(in)
}

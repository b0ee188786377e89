package types

import "encoding/json"

// ContractVersion is the only accepted version of payloads and workspaces.
const ContractVersion = "2"

// ReasoningVersion is the only accepted version of reasoning payloads.
const ReasoningVersion = "1"

// ParsedResumePayload is the one-shot output of the ingestion path.
//
// Sections, SectionPresence and CustomSections are emitted only when
// Sections is non-nil. A non-nil Sections always carries CustomSections,
// even when it is empty.
type ParsedResumePayload struct {
	Version         string           `json:"version"`
	ResumeData      ResumeData       `json:"resumeData"`
	Source          SourceMeta       `json:"source"`
	Notes           []string         `json:"notes"`
	Sections        []SectionBlock   `json:"sections,omitempty"`
	SectionPresence *SectionPresence `json:"sectionPresence,omitempty"`
	CustomSections  []SectionBlock   `json:"customSections,omitempty"`
}

// HasSections reports whether the payload carries detected section blocks.
func (p ParsedResumePayload) HasSections() bool {
	return p.Sections != nil
}

// MarshalJSON keeps nil-vs-empty distinctions that omitempty would lose.
func (p ParsedResumePayload) MarshalJSON() ([]byte, error) {
	type wire struct {
		Version         string           `json:"version"`
		ResumeData      ResumeData       `json:"resumeData"`
		Source          SourceMeta       `json:"source"`
		Notes           []string         `json:"notes"`
		Sections        *[]SectionBlock  `json:"sections,omitempty"`
		SectionPresence *SectionPresence `json:"sectionPresence,omitempty"`
		CustomSections  *[]SectionBlock  `json:"customSections,omitempty"`
	}

	w := wire{
		Version:         p.Version,
		ResumeData:      p.ResumeData,
		Source:          p.Source,
		Notes:           nonNilStrings(p.Notes),
		SectionPresence: p.SectionPresence,
	}
	w.Sections, w.CustomSections = sectionPointers(p.Sections, p.CustomSections)
	return json.Marshal(w)
}

// ParsedMeta is the parse bookkeeping stored on a workspace. It mirrors the
// payload envelope without the resume data and source.
type ParsedMeta struct {
	Version         string           `json:"version"`
	Parser          string           `json:"parser,omitempty"`
	ParsedAt        string           `json:"parsedAt,omitempty"`
	Notes           []string         `json:"notes"`
	Sections        []SectionBlock   `json:"sections,omitempty"`
	SectionPresence *SectionPresence `json:"sectionPresence,omitempty"`
	CustomSections  []SectionBlock   `json:"customSections,omitempty"`
}

// MarshalJSON applies the same section rules as ParsedResumePayload.
func (m ParsedMeta) MarshalJSON() ([]byte, error) {
	type wire struct {
		Version         string           `json:"version"`
		Parser          string           `json:"parser,omitempty"`
		ParsedAt        string           `json:"parsedAt,omitempty"`
		Notes           []string         `json:"notes"`
		Sections        *[]SectionBlock  `json:"sections,omitempty"`
		SectionPresence *SectionPresence `json:"sectionPresence,omitempty"`
		CustomSections  *[]SectionBlock  `json:"customSections,omitempty"`
	}

	w := wire{
		Version:         m.Version,
		Parser:          m.Parser,
		ParsedAt:        m.ParsedAt,
		Notes:           nonNilStrings(m.Notes),
		SectionPresence: m.SectionPresence,
	}
	w.Sections, w.CustomSections = sectionPointers(m.Sections, m.CustomSections)
	return json.Marshal(w)
}

// Meta extracts the workspace-side parse metadata from a payload.
func (p ParsedResumePayload) Meta() ParsedMeta {
	return ParsedMeta{
		Version:         p.Version,
		Parser:          p.Source.Parser,
		ParsedAt:        p.Source.ParsedAt,
		Notes:           nonNilStrings(p.Notes),
		Sections:        p.Sections,
		SectionPresence: p.SectionPresence,
		CustomSections:  p.CustomSections,
	}
}

// ReasoningPayload is model commentary attached to a workspace.
type ReasoningPayload struct {
	Version    string   `json:"version"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights"`
	Warnings   []string `json:"warnings"`
}

func sectionPointers(sections, custom []SectionBlock) (*[]SectionBlock, *[]SectionBlock) {
	var s, c *[]SectionBlock
	if sections != nil {
		s = &sections
		if custom == nil {
			custom = []SectionBlock{}
		}
	}
	if custom != nil {
		c = &custom
	}
	return s, c
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

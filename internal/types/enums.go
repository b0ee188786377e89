package types

import "strings"

// InputType is how the resume text reached the system.
type InputType string

const (
	InputTypeFile     InputType = "file"
	InputTypeText     InputType = "text"
	InputTypeLinkedIn InputType = "linkedin"
)

// InputTypes lists every valid input type.
var InputTypes = []InputType{InputTypeFile, InputTypeText, InputTypeLinkedIn}

// Valid reports whether t is a known input type.
func (t InputType) Valid() bool {
	switch t {
	case InputTypeFile, InputTypeText, InputTypeLinkedIn:
		return true
	}
	return false
}

// SectionKind is the semantic kind of a detected section block.
type SectionKind string

const (
	SectionKindHeader    SectionKind = "header"
	SectionKindSummary   SectionKind = "summary"
	SectionKindWork      SectionKind = "work"
	SectionKindProjects  SectionKind = "projects"
	SectionKindSkills    SectionKind = "skills"
	SectionKindEducation SectionKind = "education"
	SectionKindAwards    SectionKind = "awards"
	SectionKindLanguages SectionKind = "languages"
	SectionKindCustom    SectionKind = "custom"
)

// SectionKinds lists every section kind in canonical order.
var SectionKinds = []SectionKind{
	SectionKindHeader,
	SectionKindSummary,
	SectionKindWork,
	SectionKindProjects,
	SectionKindSkills,
	SectionKindEducation,
	SectionKindAwards,
	SectionKindLanguages,
	SectionKindCustom,
}

// Valid reports whether k is one of the nine section kinds.
func (k SectionKind) Valid() bool {
	switch k {
	case SectionKindHeader, SectionKindSummary, SectionKindWork, SectionKindProjects,
		SectionKindSkills, SectionKindEducation, SectionKindAwards, SectionKindLanguages,
		SectionKindCustom:
		return true
	}
	return false
}

// CanonicalTarget maps a kind to the structured field it feeds. Header and
// custom blocks map to CanonicalTargetNone.
func (k SectionKind) CanonicalTarget() CanonicalTarget {
	switch k {
	case SectionKindSummary:
		return CanonicalTargetSummary
	case SectionKindWork:
		return CanonicalTargetWork
	case SectionKindProjects:
		return CanonicalTargetProjects
	case SectionKindSkills:
		return CanonicalTargetSkills
	case SectionKindEducation:
		return CanonicalTargetEducation
	case SectionKindAwards:
		return CanonicalTargetAwards
	case SectionKindLanguages:
		return CanonicalTargetLanguages
	default:
		return CanonicalTargetNone
	}
}

// ParseSectionKind resolves a loosely written kind. "experience" is accepted
// as an alias for work.
func ParseSectionKind(s string) (SectionKind, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "experience" {
		return SectionKindWork, true
	}
	k := SectionKind(normalized)
	return k, k.Valid()
}

// CanonicalTarget is the structured resume field a section block maps to.
type CanonicalTarget string

const (
	CanonicalTargetSummary   CanonicalTarget = "summary"
	CanonicalTargetWork      CanonicalTarget = "work"
	CanonicalTargetProjects  CanonicalTarget = "projects"
	CanonicalTargetSkills    CanonicalTarget = "skills"
	CanonicalTargetEducation CanonicalTarget = "education"
	CanonicalTargetAwards    CanonicalTarget = "awards"
	CanonicalTargetLanguages CanonicalTarget = "languages"
	CanonicalTargetNone      CanonicalTarget = "none"
)

// CanonicalTargets lists every canonical target.
var CanonicalTargets = []CanonicalTarget{
	CanonicalTargetSummary,
	CanonicalTargetWork,
	CanonicalTargetProjects,
	CanonicalTargetSkills,
	CanonicalTargetEducation,
	CanonicalTargetAwards,
	CanonicalTargetLanguages,
	CanonicalTargetNone,
}

// Valid reports whether t is a known canonical target.
func (t CanonicalTarget) Valid() bool {
	switch t {
	case CanonicalTargetSummary, CanonicalTargetWork, CanonicalTargetProjects,
		CanonicalTargetSkills, CanonicalTargetEducation, CanonicalTargetAwards,
		CanonicalTargetLanguages, CanonicalTargetNone:
		return true
	}
	return false
}

// ParseCanonicalTarget resolves a loosely written target. "experience" is
// accepted as an alias for work.
func ParseCanonicalTarget(s string) (CanonicalTarget, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "experience" {
		return CanonicalTargetWork, true
	}
	t := CanonicalTarget(normalized)
	return t, t.Valid()
}

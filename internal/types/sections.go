package types

// SectionBlock is a detected region of the source document, independent of
// whether its content was mapped to a structured field.
type SectionBlock struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Kind            SectionKind     `json:"kind"`
	Lines           []string        `json:"lines"`
	CanonicalTarget CanonicalTarget `json:"canonicalTarget"`
}

// SectionPresence records, per canonical section, whether the resume has
// content for it.
type SectionPresence struct {
	Summary   bool `json:"summary"`
	Work      bool `json:"work"`
	Projects  bool `json:"projects"`
	Skills    bool `json:"skills"`
	Education bool `json:"education"`
	Awards    bool `json:"awards"`
	Languages bool `json:"languages"`
}

// Get returns the flag for target. CanonicalTargetNone is always false.
func (p SectionPresence) Get(target CanonicalTarget) bool {
	switch target {
	case CanonicalTargetSummary:
		return p.Summary
	case CanonicalTargetWork:
		return p.Work
	case CanonicalTargetProjects:
		return p.Projects
	case CanonicalTargetSkills:
		return p.Skills
	case CanonicalTargetEducation:
		return p.Education
	case CanonicalTargetAwards:
		return p.Awards
	case CanonicalTargetLanguages:
		return p.Languages
	}
	return false
}

// Set updates the flag for target. CanonicalTargetNone is ignored.
func (p *SectionPresence) Set(target CanonicalTarget, present bool) {
	switch target {
	case CanonicalTargetSummary:
		p.Summary = present
	case CanonicalTargetWork:
		p.Work = present
	case CanonicalTargetProjects:
		p.Projects = present
	case CanonicalTargetSkills:
		p.Skills = present
	case CanonicalTargetEducation:
		p.Education = present
	case CanonicalTargetAwards:
		p.Awards = present
	case CanonicalTargetLanguages:
		p.Languages = present
	}
}

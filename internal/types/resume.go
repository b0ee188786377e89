// Package types provides the canonical resume contract shared by the
// normalizers, validators, storage and transport layers.
package types

// ResumeData is the canonical resume document. List fields are never nil in
// validated output.
type ResumeData struct {
	ID             string          `json:"id"`
	Metadata       *Metadata       `json:"metadata,omitempty"`
	Basics         *Basics         `json:"basics,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Education      []EducationItem `json:"education"`
	Work           []WorkItem      `json:"work"`
	Projects       []ProjectItem   `json:"projects"`
	Awards         []AwardItem     `json:"awards"`
	Skills         []SkillItem     `json:"skills"`
	Languages      []LanguageItem  `json:"languages"`
	CustomSections []CustomSection `json:"customSections"`
	SectionOrder   []string        `json:"sectionOrder"`
	Versions       []VersionEntry  `json:"versions"`
}

// Metadata carries import bookkeeping for a resume.
type Metadata struct {
	ImportedAt   string   `json:"importedAt,omitempty"`
	LastModified string   `json:"lastModified,omitempty"`
	LastAnalyzed string   `json:"lastAnalyzed,omitempty"`
	TemplateUsed string   `json:"templateUsed,omitempty"`
	ATSScore     *float64 `json:"atsScore,omitempty"`
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m.ImportedAt == "" && m.LastModified == "" && m.LastAnalyzed == "" &&
		m.TemplateUsed == "" && m.ATSScore == nil
}

// Basics is the contact header. Title and Label always carry the same value.
type Basics struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Title    string    `json:"title,omitempty"`
	Label    string    `json:"label,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	URL      string    `json:"url,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

// Profile is a social or portfolio link.
type Profile struct {
	ID       string `json:"id,omitempty"`
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Location is a postal-style location. A kept location has at least one field.
type Location struct {
	Address     string `json:"address,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// IsZero reports whether every location field is empty.
func (l Location) IsZero() bool {
	return l == Location{}
}

// Highlight is a single bullet point.
type Highlight struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	OriginalText   string   `json:"originalText"`
	Source         string   `json:"source"`
	Locked         bool     `json:"locked"`
	AITags         []string `json:"aiTags"`
	KeywordMatches []string `json:"keywordMatches"`
}

// HighlightSourceUser marks a bullet written by the resume owner.
const HighlightSourceUser = "user"

// WorkItem is one employment entry.
type WorkItem struct {
	ID         string      `json:"id"`
	Company    string      `json:"company,omitempty"`
	Position   string      `json:"position,omitempty"`
	StartDate  string      `json:"startDate,omitempty"`
	EndDate    string      `json:"endDate,omitempty"`
	IsCurrent  bool        `json:"isCurrent"`
	Location   *Location   `json:"location,omitempty"`
	Highlights []Highlight `json:"highlights"`
}

// EducationItem is one education entry. Degree and StudyType are synonyms
// and always carry the same value.
type EducationItem struct {
	ID          string    `json:"id"`
	Institution string    `json:"institution,omitempty"`
	Area        string    `json:"area,omitempty"`
	Degree      string    `json:"degree,omitempty"`
	StudyType   string    `json:"studyType,omitempty"`
	StartDate   string    `json:"startDate,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	Location    *Location `json:"location,omitempty"`
	GPA         string    `json:"gpa,omitempty"`
	Honors      []string  `json:"honors"`
}

// Technology references a skill used by a project.
type Technology struct {
	SkillRefID string `json:"skillRefId"`
	Name       string `json:"name"`
}

// ProjectItem is one project entry.
type ProjectItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name,omitempty"`
	Role         string       `json:"role,omitempty"`
	Description  string       `json:"description,omitempty"`
	Technologies []Technology `json:"technologies"`
	StartDate    string       `json:"startDate,omitempty"`
	EndDate      string       `json:"endDate,omitempty"`
	Repository   string       `json:"repository,omitempty"`
	URL          string       `json:"url,omitempty"`
	Highlights   []Highlight  `json:"highlights"`
}

// AwardItem is one award or achievement.
type AwardItem struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Issuer  string `json:"issuer,omitempty"`
	Date    string `json:"date,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// LanguageItem is a spoken language and its fluency.
type LanguageItem struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Fluency  string `json:"fluency,omitempty"`
}

// DefaultSkillCategory is used when a skill carries no category.
const DefaultSkillCategory = "General"

// SkillItem is a single categorized skill. No two kept skills share the same
// case-insensitive (category, name) pair.
type SkillItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// CustomSection is a titled list of free-form items.
type CustomSection struct {
	ID    string              `json:"id"`
	Title string              `json:"title"`
	Items []CustomSectionItem `json:"items"`
}

// CustomSectionItem is a single line of a custom section.
type CustomSectionItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// VersionEntry is a historical snapshot of the editable resume lists.
type VersionEntry struct {
	ID        string          `json:"id"`
	Timestamp string          `json:"timestamp,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Snapshot  VersionSnapshot `json:"snapshot"`
}

// VersionSnapshot holds the lists captured by a version entry.
type VersionSnapshot struct {
	Work      []WorkItem      `json:"work"`
	Projects  []ProjectItem   `json:"projects"`
	Education []EducationItem `json:"education"`
	Skills    []SkillItem     `json:"skills"`
}

package contract

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-contract/internal/types"
)

func (v *Validator) parseResumeData(value any, path string) (types.ResumeData, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.ResumeData{}, err
	}

	out := types.ResumeData{
		ID:      f.str("id"),
		Summary: f.str("summary"),
	}
	if f.err == nil {
		out.Metadata, f.err = parseMetadata(f.obj.Value("metadata"), f.at("metadata"))
	}
	if f.err == nil {
		out.Basics, f.err = v.parseBasics(f.obj.Value("basics"), f.at("basics"))
	}
	out.Education = listField(f, v.parseEducation, "education")
	out.Work = listField(f, v.parseWork, "work")
	out.Projects = listField(f, v.parseProject, "projects")
	out.Awards = listField(f, v.parseAward, "awards")
	if f.err == nil {
		out.Skills, f.err = v.parseSkills(f.obj.Value("skills"), f.at("skills"))
	}
	out.Languages = listField(f, v.parseLanguage, "languages")
	out.CustomSections = listField(f, v.parseCustomSection, "customSections")
	out.SectionOrder = listField(f, StringItem, "sectionOrder")
	out.Versions = listField(f, v.parseVersion, "versions")
	if f.err != nil {
		return types.ResumeData{}, f.err
	}

	if out.ID == "" {
		out.ID = v.ids.New("resume")
	}
	return out, nil
}

func parseMetadata(value any, path string) (*types.Metadata, error) {
	if value == nil {
		return nil, nil
	}
	f, err := readObject(value, path)
	if err != nil {
		return nil, err
	}

	m := types.Metadata{
		ImportedAt:   f.str("importedAt"),
		LastModified: f.str("lastModified"),
		LastAnalyzed: f.str("lastAnalyzed"),
		TemplateUsed: f.str("templateUsed"),
		ATSScore:     f.number("atsScore", Optional),
	}
	if f.err != nil {
		return nil, f.err
	}
	if m.IsZero() {
		return nil, nil
	}
	return &m, nil
}

func parseLocation(value any, path string) (*types.Location, error) {
	if value == nil {
		return nil, nil
	}

	if s, ok := value.(string); ok {
		return locationFromString(s), nil
	}

	f, err := readObject(value, path)
	if err != nil {
		return nil, err
	}
	loc := types.Location{
		Address:     f.str("address"),
		PostalCode:  f.str("postalCode"),
		City:        f.str("city"),
		Region:      f.str("region", "state"),
		Country:     f.str("country"),
		CountryCode: f.str("countryCode"),
	}
	if f.err != nil {
		return nil, f.err
	}
	if loc.IsZero() {
		return nil, nil
	}
	return &loc, nil
}

// locationFromString splits "City, Region, Country" into a city and the
// remainder as country. A single token is the city.
func locationFromString(s string) *types.Location {
	text := NormalizeString(s)
	if text == "" {
		return nil
	}

	var parts []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return &types.Location{City: parts[0], Country: strings.Join(parts[1:], ", ")}
	}
	return &types.Location{City: text}
}

// LocationFromString exposes the plain-string location rule.
func LocationFromString(s string) *types.Location {
	return locationFromString(s)
}

func (v *Validator) parseProfile(value any, path string, _ int) (types.Profile, error) {
	if s, ok := value.(string); ok {
		url := NormalizeString(s)
		if url == "" {
			return types.Profile{}, schemaErr(path, "Expected non-empty string")
		}
		return types.Profile{ID: v.ids.New("profile"), URL: url}, nil
	}

	f, err := readObject(value, path)
	if err != nil {
		return types.Profile{}, err
	}
	p := types.Profile{
		ID:       f.str("id"),
		Network:  f.str("network"),
		Username: f.str("username"),
		URL:      f.str("url"),
	}
	if f.err != nil {
		return types.Profile{}, f.err
	}
	if p.Network == "" && p.Username == "" && p.URL == "" {
		return types.Profile{}, schemaErr(path, "Expected profile with at least one field")
	}
	return p, nil
}

func (v *Validator) parseBasics(value any, path string) (*types.Basics, error) {
	if value == nil {
		return nil, nil
	}
	f, err := readObject(value, path)
	if err != nil {
		return nil, err
	}

	profiles := listField(f, v.parseProfile, "profiles", "links")
	title := f.str("title", "label")
	b := types.Basics{
		ID:    f.str("id"),
		Name:  f.str("name"),
		Title: title,
		Label: title,
		Email: f.str("email"),
		Phone: f.str("phone"),
		URL:   f.str("url", "website"),
	}
	if f.err == nil {
		b.Location, f.err = parseLocation(f.obj.Value("location"), f.at("location"))
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(profiles) > 0 {
		b.Profiles = profiles
	}

	if b.Name == "" && b.Title == "" && b.Email == "" && b.Phone == "" && b.URL == "" &&
		b.Location == nil && len(b.Profiles) == 0 {
		return nil, nil
	}
	return &b, nil
}

func (v *Validator) highlightParser(idPrefix string) ItemParser[types.Highlight] {
	return func(value any, path string, _ int) (types.Highlight, error) {
		return v.parseHighlight(value, path, idPrefix)
	}
}

func (v *Validator) parseHighlight(value any, path, idPrefix string) (types.Highlight, error) {
	if s, ok := value.(string); ok {
		text := StripListPrefix(s)
		if text == "" {
			return types.Highlight{}, schemaErr(path, "Expected non-empty highlight text")
		}
		return newHighlight(v.ids.New(idPrefix), text, text), nil
	}

	f, err := readObject(value, path)
	if err != nil {
		return types.Highlight{}, err
	}

	raw := f.str("text")
	if raw == "" {
		raw = f.str("improved")
	}
	if raw == "" {
		raw = f.str("original")
	}
	if f.err != nil {
		return types.Highlight{}, f.err
	}
	text := StripListPrefix(raw)
	if text == "" {
		return types.Highlight{}, schemaErr(f.at("text"), "Expected non-empty highlight text")
	}

	h := newHighlight(f.str("id"), text, StripListPrefix(f.str("originalText")))
	if src := f.str("source"); src != "" {
		h.Source = src
	}
	h.Locked = f.boolean("locked", Optional)
	h.AITags = f.stringList("aiTags")
	h.KeywordMatches = f.stringList("keywordMatches")
	if f.err != nil {
		return types.Highlight{}, f.err
	}
	if h.ID == "" {
		h.ID = v.ids.New(idPrefix)
	}
	return h, nil
}

// newHighlight builds a user-sourced highlight. An empty originalText
// defaults to text.
func newHighlight(id, text, originalText string) types.Highlight {
	if originalText == "" {
		originalText = text
	}
	return types.Highlight{
		ID:             id,
		Text:           text,
		OriginalText:   originalText,
		Source:         types.HighlightSourceUser,
		AITags:         []string{},
		KeywordMatches: []string{},
	}
}

// NewHighlight builds a default user highlight with the given id and text.
func NewHighlight(id, text string) types.Highlight {
	return newHighlight(id, text, text)
}

func (v *Validator) parseEducation(value any, path string, _ int) (types.EducationItem, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.EducationItem{}, err
	}

	honors := f.stringList("honors")
	degree := f.str("degree", "studyType")
	e := types.EducationItem{
		ID:          f.str("id"),
		Institution: f.str("institution"),
		Area:        f.str("area"),
		Degree:      degree,
		StudyType:   degree,
		StartDate:   f.str("startDate"),
		EndDate:     f.str("endDate"),
		GPA:         f.str("gpa"),
		Honors:      honors,
	}
	if f.err == nil {
		e.Location, f.err = parseLocation(f.obj.Value("location"), f.at("location"))
	}
	if f.err != nil {
		return types.EducationItem{}, f.err
	}

	if !EducationHasContent(e) {
		return types.EducationItem{}, schemaErr(path, "Expected education item with at least one field")
	}
	if e.ID == "" {
		e.ID = v.ids.New("education")
	}
	return e, nil
}

func (v *Validator) parseWork(value any, path string, _ int) (types.WorkItem, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.WorkItem{}, err
	}

	w := types.WorkItem{
		ID:         f.str("id"),
		Highlights: listField(f, v.highlightParser("work-highlight"), "highlights"),
		Company:    f.str("company"),
		Position:   f.str("position"),
		StartDate:  f.str("startDate"),
		EndDate:    f.str("endDate"),
	}
	isCurrent := f.boolean("isCurrent", Optional)
	current := f.boolean("current", Optional)
	w.IsCurrent = isCurrent || current
	if f.err == nil {
		w.Location, f.err = parseLocation(f.obj.Value("location"), f.at("location"))
	}
	if f.err != nil {
		return types.WorkItem{}, f.err
	}

	if !WorkHasContent(w) {
		return types.WorkItem{}, schemaErr(path, "Expected work item with at least one field")
	}
	if w.ID == "" {
		w.ID = v.ids.New("work")
	}
	return w, nil
}

func (v *Validator) parseTechnology(value any, path string, index int) (types.Technology, error) {
	fallback := fmt.Sprintf("skill-ref-%d", index+1)

	if s, ok := value.(string); ok {
		name := NormalizeString(s)
		if name == "" {
			return types.Technology{}, schemaErr(path, "Expected non-empty technology name")
		}
		return types.Technology{SkillRefID: v.ids.New(fallback), Name: name}, nil
	}

	f, err := readObject(value, path)
	if err != nil {
		return types.Technology{}, err
	}
	name := NormalizeString(f.str("name"))
	ref := f.str("skillRefId")
	if f.err != nil {
		return types.Technology{}, f.err
	}
	if name == "" {
		return types.Technology{}, schemaErr(f.at("name"), "Expected non-empty technology name")
	}
	if ref == "" {
		ref = v.ids.New(fallback)
	}
	return types.Technology{SkillRefID: ref, Name: name}, nil
}

func (v *Validator) parseProject(value any, path string, _ int) (types.ProjectItem, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.ProjectItem{}, err
	}

	techPath := f.at("technologies")
	var techRaw any
	switch t := f.obj.Value("technologies").(type) {
	case nil:
		techRaw = nil
	case string:
		items := make([]any, 0)
		for _, s := range SplitInlineList(t) {
			items = append(items, s)
		}
		techRaw = items
	default:
		techRaw = t
	}

	p := types.ProjectItem{ID: f.str("id")}
	if f.err == nil {
		p.Technologies, f.err = AsArray(techRaw, techPath, v.parseTechnology)
	}
	p.Highlights = listField(f, v.highlightParser("project-highlight"), "highlights")
	p.Name = f.str("name")
	p.Role = f.str("role")
	p.Description = f.str("description")
	p.StartDate = f.str("startDate")
	p.EndDate = f.str("endDate")
	p.Repository = f.str("repository")
	p.URL = f.str("url")
	if f.err != nil {
		return types.ProjectItem{}, f.err
	}

	if !ProjectHasContent(p) {
		return types.ProjectItem{}, schemaErr(path, "Expected project item with at least one field")
	}
	if p.ID == "" {
		p.ID = v.ids.New("project")
	}
	return p, nil
}

func (v *Validator) parseAward(value any, path string, _ int) (types.AwardItem, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.AwardItem{}, err
	}

	a := types.AwardItem{
		ID:      f.str("id"),
		Title:   f.str("title"),
		Issuer:  f.str("issuer"),
		Date:    f.str("date"),
		Summary: f.str("summary"),
	}
	if f.err != nil {
		return types.AwardItem{}, f.err
	}
	if !AwardHasContent(a) {
		return types.AwardItem{}, schemaErr(path, "Expected award item with at least one field")
	}
	if a.ID == "" {
		a.ID = v.ids.New("award")
	}
	return a, nil
}

func (v *Validator) parseLanguage(value any, path string, _ int) (types.LanguageItem, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.LanguageItem{}, err
	}

	l := types.LanguageItem{
		ID:       f.str("id"),
		Language: f.str("language"),
		Fluency:  f.str("fluency"),
	}
	if f.err != nil {
		return types.LanguageItem{}, f.err
	}
	if !LanguageHasContent(l) {
		return types.LanguageItem{}, schemaErr(path, "Expected language item with at least one field")
	}
	if l.ID == "" {
		l.ID = v.ids.New("language")
	}
	return l, nil
}

func (v *Validator) parseCustomItem(value any, path string, index int) (types.CustomSectionItem, error) {
	fallback := fmt.Sprintf("custom-item-%d", index+1)

	if s, ok := value.(string); ok {
		text := StripListPrefix(s)
		if text == "" {
			return types.CustomSectionItem{}, schemaErr(path, "Expected non-empty custom section item")
		}
		return types.CustomSectionItem{ID: v.ids.New(fallback), Text: text}, nil
	}

	f, err := readObject(value, path)
	if err != nil {
		return types.CustomSectionItem{}, err
	}
	text := StripListPrefix(f.str("text"))
	id := f.str("id")
	if f.err != nil {
		return types.CustomSectionItem{}, f.err
	}
	if text == "" {
		return types.CustomSectionItem{}, schemaErr(f.at("text"), "Expected non-empty custom section item")
	}
	if id == "" {
		id = v.ids.New(fallback)
	}
	return types.CustomSectionItem{ID: id, Text: text}, nil
}

func (v *Validator) parseCustomSection(value any, path string, index int) (types.CustomSection, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.CustomSection{}, err
	}

	cs := types.CustomSection{
		ID:    f.str("id"),
		Title: f.str("title"),
		Items: listField(f, v.parseCustomItem, "items", "lines"),
	}
	if f.err != nil {
		return types.CustomSection{}, f.err
	}
	if cs.Title == "" && len(cs.Items) == 0 {
		return types.CustomSection{}, schemaErr(path, "Expected custom section with content")
	}
	if cs.ID == "" {
		cs.ID = v.ids.New(fmt.Sprintf("custom-section-%d", index+1))
	}
	if cs.Title == "" {
		cs.Title = fmt.Sprintf("Custom Section %d", index+1)
	}
	return cs, nil
}

func (v *Validator) parseVersion(value any, path string, index int) (types.VersionEntry, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.VersionEntry{}, err
	}

	entry := types.VersionEntry{
		ID:        f.str("id"),
		Timestamp: f.str("timestamp"),
		Reason:    f.str("reason"),
	}
	if f.err == nil {
		entry.Snapshot, f.err = v.parseSnapshot(f.obj.Value("snapshot"), f.at("snapshot"))
	}
	if f.err != nil {
		return types.VersionEntry{}, f.err
	}
	if entry.ID == "" {
		entry.ID = v.ids.New(fmt.Sprintf("version-%d", index+1))
	}
	return entry, nil
}

// parseSnapshot treats a missing or non-object snapshot as empty.
func (v *Validator) parseSnapshot(value any, path string) (types.VersionSnapshot, error) {
	empty := types.VersionSnapshot{
		Work:      []types.WorkItem{},
		Projects:  []types.ProjectItem{},
		Education: []types.EducationItem{},
		Skills:    []types.SkillItem{},
	}

	f, err := readObject(value, path)
	if err != nil {
		return empty, nil
	}

	snap := types.VersionSnapshot{
		Work:      listField(f, v.parseWork, "work"),
		Projects:  listField(f, v.parseProject, "projects"),
		Education: listField(f, v.parseEducation, "education"),
	}
	if f.err == nil {
		snap.Skills, f.err = v.parseSkills(f.obj.Value("skills"), f.at("skills"))
	}
	if f.err != nil {
		return types.VersionSnapshot{}, f.err
	}
	return snap, nil
}

// WorkHasContent reports whether a work item carries any usable field.
func WorkHasContent(w types.WorkItem) bool {
	return w.Company != "" || w.Position != "" || w.StartDate != "" || w.EndDate != "" ||
		w.IsCurrent || w.Location != nil || len(w.Highlights) > 0
}

// EducationHasContent reports whether an education item carries any usable
// field.
func EducationHasContent(e types.EducationItem) bool {
	return e.Institution != "" || e.Degree != "" || e.Area != "" || e.StartDate != "" ||
		e.EndDate != "" || e.Location != nil || e.GPA != "" || len(e.Honors) > 0
}

// ProjectHasContent reports whether a project carries any usable field.
func ProjectHasContent(p types.ProjectItem) bool {
	return p.Name != "" || p.Role != "" || p.Description != "" || len(p.Technologies) > 0 ||
		p.StartDate != "" || p.EndDate != "" || p.Repository != "" || p.URL != "" ||
		len(p.Highlights) > 0
}

// AwardHasContent reports whether an award carries any usable field.
func AwardHasContent(a types.AwardItem) bool {
	return a.Title != "" || a.Issuer != "" || a.Date != "" || a.Summary != ""
}

// LanguageHasContent reports whether a language entry names a language or
// fluency.
func LanguageHasContent(l types.LanguageItem) bool {
	return l.Language != "" || l.Fluency != ""
}

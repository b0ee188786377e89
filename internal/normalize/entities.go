package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/types"
)

// languageRE splits "French (Fluent)" into language and fluency.
var languageRE = regexp.MustCompile(`^([^()]+?)\s*\(([^()]+)\)$`)

// NormalizeLocation accepts a "City, Region, Country" string or a location
// object. It returns nil when nothing usable is left.
func NormalizeLocation(v any) *types.Location {
	if s, ok := v.(string); ok {
		return contract.LocationFromString(s)
	}
	obj, ok := object(v)
	if !ok {
		return nil
	}

	loc := types.Location{
		Address:     sanitize(obj.Value("address")),
		PostalCode:  sanitize(obj.Value("postalCode")),
		City:        sanitize(obj.Value("city")),
		Region:      pick(obj, locationRegionKeys),
		Country:     sanitize(obj.Value("country")),
		CountryCode: sanitize(obj.Value("countryCode")),
	}
	if loc.IsZero() {
		return nil
	}
	return &loc
}

func normalizeProfile(v any) (types.Profile, bool) {
	if s, ok := v.(string); ok {
		url := contract.NormalizeString(s)
		return types.Profile{URL: url}, url != ""
	}
	obj, ok := object(v)
	if !ok {
		return types.Profile{}, false
	}
	p := types.Profile{
		Network:  pick(obj, profileNetworkKeys),
		Username: sanitize(obj.Value("username")),
		URL:      pick(obj, profileURLKeys),
	}
	return p, p.Network != "" || p.Username != "" || p.URL != ""
}

// NormalizeBasics maps a contact/header block. It returns nil when no field
// survives.
func NormalizeBasics(v any) *types.Basics {
	obj, ok := object(v)
	if !ok {
		return nil
	}

	var profiles []types.Profile
	for _, raw := range array(pickValue(obj, profileListKeys)) {
		if p, ok := normalizeProfile(raw); ok {
			profiles = append(profiles, p)
		}
	}

	title := pick(obj, basicsTitleKeys)
	b := types.Basics{
		ID:       sanitize(obj.Value("id")),
		Name:     pick(obj, basicsNameKeys),
		Title:    title,
		Label:    title,
		Email:    pick(obj, basicsEmailKeys),
		Phone:    pick(obj, basicsPhoneKeys),
		URL:      pick(obj, basicsURLKeys),
		Location: NormalizeLocation(obj.Value("location")),
		Profiles: profiles,
	}
	if b.Name == "" && b.Title == "" && b.Email == "" && b.Phone == "" &&
		b.URL == "" && b.Location == nil && len(b.Profiles) == 0 {
		return nil
	}
	return &b
}

// NormalizeHighlights turns bullet strings or bullet objects into
// user-sourced highlights with ids "<prefix>-<n>".
func NormalizeHighlights(v any, prefix string) []types.Highlight {
	lines := bulletArray(v)
	out := make([]types.Highlight, 0, len(lines))
	for i, text := range lines {
		out = append(out, contract.NewHighlight(fmt.Sprintf("%s-%d", prefix, i+1), text))
	}
	return out
}

// NormalizeTechnologies accepts an array of names or objects, or a
// delimited string. Missing skill references become "skill-ref-<n>".
func NormalizeTechnologies(v any) []types.Technology {
	var items []any
	if s, ok := v.(string); ok {
		for _, name := range contract.SplitInlineList(s) {
			items = append(items, name)
		}
	} else {
		items = array(v)
	}

	out := []types.Technology{}
	for i, item := range items {
		ref := fmt.Sprintf("skill-ref-%d", i+1)
		if obj, ok := object(item); ok {
			name := extractText(obj, technologyNameKeys)
			if name == "" {
				continue
			}
			if explicit := sanitize(obj.Value("skillRefId")); explicit != "" {
				ref = explicit
			}
			out = append(out, types.Technology{SkillRefID: ref, Name: name})
			continue
		}
		if name := sanitizeScalar(item); name != "" {
			out = append(out, types.Technology{SkillRefID: ref, Name: name})
		}
	}
	return out
}

// NormalizeWork maps work entries. A current role with no end date ends
// "Present". Entries whose every field is empty are dropped; isCurrent
// alone does not keep an entry.
func NormalizeWork(v any) []types.WorkItem {
	out := []types.WorkItem{}
	for i, raw := range array(v) {
		obj, ok := object(raw)
		if !ok {
			continue
		}

		current := obj.Value("current") == true
		w := types.WorkItem{
			ID:         orDefault(sanitize(obj.Value("id")), fmt.Sprintf("work-%d", i+1)),
			Company:    pick(obj, workCompanyKeys),
			Position:   pick(obj, workPositionKeys),
			StartDate:  pick(obj, startDateKeys),
			EndDate:    pick(obj, endDateKeys),
			IsCurrent:  current || obj.Value("isCurrent") == true,
			Location:   NormalizeLocation(obj.Value("location")),
			Highlights: NormalizeHighlights(pickValue(obj, workHighlightKeys), fmt.Sprintf("work-%d-highlight", i+1)),
		}
		if w.EndDate == "" && current {
			w.EndDate = "Present"
		}

		if w.Company == "" && w.Position == "" && w.StartDate == "" && w.EndDate == "" &&
			w.Location == nil && len(w.Highlights) == 0 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// NormalizeEducation maps education entries, dropping empty ones.
func NormalizeEducation(v any) []types.EducationItem {
	out := []types.EducationItem{}
	for i, raw := range array(v) {
		obj, ok := object(raw)
		if !ok {
			continue
		}

		degree := pick(obj, educationDegreeKey)
		e := types.EducationItem{
			ID:          orDefault(sanitize(obj.Value("id")), fmt.Sprintf("education-%d", i+1)),
			Institution: pick(obj, educationSchoolKey),
			Area:        pick(obj, educationAreaKeys),
			Degree:      degree,
			StudyType:   degree,
			StartDate:   pick(obj, startDateKeys),
			EndDate:     pick(obj, endDateKeys),
			Location:    NormalizeLocation(obj.Value("location")),
			GPA:         sanitizeScalar(obj.Value("gpa")),
			Honors:      listOrSplit(obj.Value("honors")),
		}
		if !contract.EducationHasContent(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NormalizeProjects maps project entries, dropping empty ones.
func NormalizeProjects(v any) []types.ProjectItem {
	out := []types.ProjectItem{}
	for i, raw := range array(v) {
		obj, ok := object(raw)
		if !ok {
			continue
		}

		p := types.ProjectItem{
			ID:           orDefault(sanitize(obj.Value("id")), fmt.Sprintf("project-%d", i+1)),
			Name:         pick(obj, projectNameKeys),
			Role:         sanitize(obj.Value("role")),
			Description:  pick(obj, projectDescriptionKeys),
			Technologies: NormalizeTechnologies(pickValue(obj, projectTechKeys)),
			StartDate:    pick(obj, startDateKeys),
			EndDate:      pick(obj, endDateKeys),
			Repository:   sanitize(obj.Value("repository")),
			URL:          pick(obj, projectURLKeys),
			Highlights:   NormalizeHighlights(pickValue(obj, projectHighlightKeys), fmt.Sprintf("project-%d-highlight", i+1)),
		}
		if !contract.ProjectHasContent(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NormalizeAwards maps award strings and objects, dropping empty ones.
func NormalizeAwards(v any) []types.AwardItem {
	out := []types.AwardItem{}
	for i, raw := range array(v) {
		id := fmt.Sprintf("award-%d", i+1)

		if s, ok := raw.(string); ok {
			if title := contract.StripListPrefix(s); title != "" {
				out = append(out, types.AwardItem{ID: id, Title: title})
			}
			continue
		}
		obj, ok := object(raw)
		if !ok {
			continue
		}

		a := types.AwardItem{
			ID:      orDefault(sanitize(obj.Value("id")), id),
			Title:   pick(obj, awardTitleKeys),
			Issuer:  sanitize(obj.Value("issuer")),
			Date:    sanitizeScalar(obj.Value("date")),
			Summary: pick(obj, awardSummaryKeys),
		}
		if !contract.AwardHasContent(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ParseLanguage reads "French (Fluent)" as a language with a fluency; any
// other text is just the language.
func ParseLanguage(s string) (types.LanguageItem, bool) {
	line := contract.NormalizeString(s)
	if line == "" {
		return types.LanguageItem{}, false
	}
	if m := languageRE.FindStringSubmatch(line); m != nil {
		return types.LanguageItem{
			Language: contract.NormalizeString(m[1]),
			Fluency:  contract.NormalizeString(m[2]),
		}, true
	}
	return types.LanguageItem{Language: line}, true
}

// NormalizeLanguages maps language strings and objects. Entries naming
// neither a language nor a fluency are dropped.
func NormalizeLanguages(v any) []types.LanguageItem {
	out := []types.LanguageItem{}
	for i, raw := range array(v) {
		id := fmt.Sprintf("language-%d", i+1)

		if s, ok := raw.(string); ok {
			if l, ok := ParseLanguage(s); ok {
				l.ID = id
				out = append(out, l)
			}
			continue
		}
		obj, ok := object(raw)
		if !ok {
			continue
		}

		l := types.LanguageItem{
			ID:       orDefault(sanitize(obj.Value("id")), id),
			Language: pick(obj, languageNameKeys),
			Fluency:  pick(obj, languageFluencyKeys),
		}
		if !contract.LanguageHasContent(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// NormalizeCustomSections maps the resume's own custom sections. Untitled
// sections with items become "Custom Section <n>".
func NormalizeCustomSections(v any) []types.CustomSection {
	out := []types.CustomSection{}
	for i, raw := range array(v) {
		obj, ok := object(raw)
		if !ok {
			continue
		}

		sectionID := orDefault(sanitize(obj.Value("id")), fmt.Sprintf("custom-section-%d", i+1))
		items := []types.CustomSectionItem{}
		for j, text := range bulletArray(pickValue(obj, customItemKeys)) {
			items = append(items, types.CustomSectionItem{
				ID:   fmt.Sprintf("%s-item-%d", sectionID, j+1),
				Text: text,
			})
		}

		title := pick(obj, customTitleKeys)
		if title == "" && len(items) == 0 {
			continue
		}
		out = append(out, types.CustomSection{
			ID:    sectionID,
			Title: orDefault(title, fmt.Sprintf("Custom Section %d", i+1)),
			Items: items,
		})
	}
	return out
}

// NormalizeVersions maps version history entries; snapshots reuse the
// entity normalizers.
func NormalizeVersions(v any) []types.VersionEntry {
	out := []types.VersionEntry{}
	for i, raw := range array(v) {
		obj, ok := object(raw)
		if !ok {
			continue
		}

		snapshot := types.VersionSnapshot{
			Work:      []types.WorkItem{},
			Projects:  []types.ProjectItem{},
			Education: []types.EducationItem{},
			Skills:    []types.SkillItem{},
		}
		if snap, ok := object(obj.Value("snapshot")); ok {
			snapshot = types.VersionSnapshot{
				Work:      NormalizeWork(pickValue(snap, resumeWorkKeys)),
				Projects:  NormalizeProjects(snap.Value("projects")),
				Education: NormalizeEducation(snap.Value("education")),
				Skills:    NormalizeSkills(snap.Value("skills")),
			}
		}

		out = append(out, types.VersionEntry{
			ID:        orDefault(sanitize(obj.Value("id")), fmt.Sprintf("version-%d", i+1)),
			Timestamp: sanitize(obj.Value("timestamp")),
			Reason:    sanitize(obj.Value("reason")),
			Snapshot:  snapshot,
		})
	}
	return out
}

// NormalizeMetadata keeps the recognized metadata strings. atsScore may be
// a number or a numeric string.
func NormalizeMetadata(v any) *types.Metadata {
	obj, ok := object(v)
	if !ok {
		return nil
	}

	m := types.Metadata{
		ImportedAt:   sanitize(obj.Value("importedAt")),
		LastModified: sanitize(obj.Value("lastModified")),
		LastAnalyzed: sanitize(obj.Value("lastAnalyzed")),
		TemplateUsed: sanitize(obj.Value("templateUsed")),
		ATSScore:     atsScore(obj.Value("atsScore")),
	}
	if m.IsZero() {
		return nil
	}
	return &m
}

func atsScore(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// NormalizeResumeCandidate maps an arbitrary candidate onto ResumeData. A
// non-object candidate yields empty lists. The id is left blank when the
// candidate has none.
func NormalizeResumeCandidate(v any) types.ResumeData {
	obj, ok := object(v)
	if !ok {
		obj = jsonx.NewObject()
	}

	return types.ResumeData{
		ID:             sanitize(obj.Value("id")),
		Metadata:       NormalizeMetadata(obj.Value("metadata")),
		Basics:         NormalizeBasics(pickValue(obj, resumeBasicsKeys)),
		Summary:        sanitize(obj.Value("summary")),
		Education:      NormalizeEducation(obj.Value("education")),
		Work:           NormalizeWork(pickValue(obj, resumeWorkKeys)),
		Projects:       NormalizeProjects(obj.Value("projects")),
		Awards:         NormalizeAwards(pickValue(obj, resumeAwardKeys)),
		Skills:         NormalizeSkills(obj.Value("skills")),
		Languages:      NormalizeLanguages(obj.Value("languages")),
		CustomSections: NormalizeCustomSections(obj.Value("customSections")),
		SectionOrder:   stringArray(obj.Value("sectionOrder")),
		Versions:       NormalizeVersions(obj.Value("versions")),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

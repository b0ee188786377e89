package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/types"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	v, err := jsonx.Decode([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *types.Location
	}{
		{"city and country", `"Berlin, Germany"`, &types.Location{City: "Berlin", Country: "Germany"}},
		{"three parts", `"Austin, TX, USA"`, &types.Location{City: "Austin", Country: "TX, USA"}},
		{"single token", `"Remote"`, &types.Location{City: "Remote"}},
		{"blank", `"  "`, nil},
		{"object with state", `{"city": "Boston", "state": "MA"}`, &types.Location{City: "Boston", Region: "MA"}},
		{"empty object", `{"city": " "}`, nil},
		{"array", `["Berlin"]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocation(decode(t, tt.input)))
		})
	}
}

func TestNormalizeBasics(t *testing.T) {
	got := NormalizeBasics(decode(t, `{
		"fullName": "Jane Doe",
		"label": "Staff Engineer",
		"emailAddress": "jane@example.com",
		"mobile": "+1 555 0100",
		"website": "https://jane.dev",
		"location": "Seattle, WA",
		"links": ["https://github.com/jane", {"label": "LinkedIn", "link": "https://linkedin.com/in/jane"}, {}, " "]
	}`))
	require.NotNil(t, got)

	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "Staff Engineer", got.Title)
	assert.Equal(t, "Staff Engineer", got.Label)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "+1 555 0100", got.Phone)
	assert.Equal(t, "https://jane.dev", got.URL)
	assert.Equal(t, &types.Location{City: "Seattle", Country: "WA"}, got.Location)
	assert.Equal(t, []types.Profile{
		{URL: "https://github.com/jane"},
		{Network: "LinkedIn", URL: "https://linkedin.com/in/jane"},
	}, got.Profiles)

	assert.Nil(t, NormalizeBasics(decode(t, `{"name": "  ", "profiles": []}`)))
	assert.Nil(t, NormalizeBasics("Jane"))
}

func TestNormalizeWork(t *testing.T) {
	got := NormalizeWork(decode(t, `[
		{"employer": "Acme", "jobTitle": "Engineer", "start": "2020", "current": true,
		 "bullets": ["- Built backend APIs", {"improved": "• Cut latency 30%"}, "  "]},
		{"company": "Globex", "endDate": "2019", "isCurrent": false},
		"not an object"
	]`))
	require.Len(t, got, 2)

	acme := got[0]
	assert.Equal(t, "work-1", acme.ID)
	assert.Equal(t, "Acme", acme.Company)
	assert.Equal(t, "Engineer", acme.Position)
	assert.Equal(t, "2020", acme.StartDate)
	assert.Equal(t, "Present", acme.EndDate)
	assert.True(t, acme.IsCurrent)
	require.Len(t, acme.Highlights, 2)
	assert.Equal(t, types.Highlight{
		ID:             "work-1-highlight-1",
		Text:           "Built backend APIs",
		OriginalText:   "Built backend APIs",
		Source:         "user",
		Locked:         false,
		AITags:         []string{},
		KeywordMatches: []string{},
	}, acme.Highlights[0])
	assert.Equal(t, "Cut latency 30%", acme.Highlights[1].Text)

	assert.Equal(t, "work-2", got[1].ID)
	assert.Equal(t, "2019", got[1].EndDate)
	assert.False(t, got[1].IsCurrent)
	assert.NotNil(t, got[1].Highlights)
}

func TestDropEmptyEntries(t *testing.T) {
	assert.Empty(t, NormalizeWork(decode(t, `[{}, {"company": " "}, {"isCurrent": true}, {"highlights": [" ", {}]}]`)))
	assert.Empty(t, NormalizeEducation(decode(t, `[{}, {"school": ""}, {"honors": []}]`)))
	assert.Empty(t, NormalizeProjects(decode(t, `[{}, {"technologies": ""}, {"tools": [{"name": " "}]}]`)))
	assert.Empty(t, NormalizeAwards(decode(t, `[{}, " ", {"issuer": ""}, 3]`)))
	assert.Empty(t, NormalizeLanguages(decode(t, `[{}, "", {"id": "language-x"}]`)))
}

func TestNormalizeEducation(t *testing.T) {
	got := NormalizeEducation(decode(t, `[
		{"school": "MIT", "major": "Computer Science", "level": "BSc", "gpa": 3.9, "honors": "Cum laude; Dean's list"},
		{"id": "edu-x", "university": "ETH", "honors": ["Medal", {"text": "Scholarship"}]}
	]`))
	require.Len(t, got, 2)

	assert.Equal(t, types.EducationItem{
		ID:          "education-1",
		Institution: "MIT",
		Area:        "Computer Science",
		Degree:      "BSc",
		StudyType:   "BSc",
		GPA:         "3.9",
		Honors:      []string{"Cum laude", "Dean's list"},
	}, got[0])
	assert.Equal(t, "edu-x", got[1].ID)
	assert.Equal(t, []string{"Medal", "Scholarship"}, got[1].Honors)
}

func TestNormalizeProjects(t *testing.T) {
	got := NormalizeProjects(decode(t, `[
		{"title": "Scanner", "summary": "Resume scanner", "stack": "Go, Postgres | Redis", "link": "https://x.dev"},
		{"project": "CLI", "tech": ["Cobra", {"tool": "Viper", "skillRefId": "skill-9"}, {"label": "ignored"}],
		 "achievements": ["1) Shipped v1"]}
	]`))
	require.Len(t, got, 2)

	assert.Equal(t, "project-1", got[0].ID)
	assert.Equal(t, "Scanner", got[0].Name)
	assert.Equal(t, "Resume scanner", got[0].Description)
	assert.Equal(t, "https://x.dev", got[0].URL)
	assert.Equal(t, []types.Technology{
		{SkillRefID: "skill-ref-1", Name: "Go"},
		{SkillRefID: "skill-ref-2", Name: "Postgres"},
		{SkillRefID: "skill-ref-3", Name: "Redis"},
	}, got[0].Technologies)

	assert.Equal(t, []types.Technology{
		{SkillRefID: "skill-ref-1", Name: "Cobra"},
		{SkillRefID: "skill-9", Name: "Viper"},
	}, got[1].Technologies)
	require.Len(t, got[1].Highlights, 1)
	assert.Equal(t, "project-2-highlight-1", got[1].Highlights[0].ID)
	assert.Equal(t, "Shipped v1", got[1].Highlights[0].Text)
}

func TestNormalizeAwards(t *testing.T) {
	got := NormalizeAwards(decode(t, `["Hackathon winner", {"name": "Best paper", "description": "ICSE"}]`))
	assert.Equal(t, []types.AwardItem{
		{ID: "award-1", Title: "Hackathon winner"},
		{ID: "award-2", Title: "Best paper", Summary: "ICSE"},
	}, got)
}

func TestNormalizeLanguages(t *testing.T) {
	got := NormalizeLanguages(decode(t, `["French (Fluent)", "German", {"name": "Spanish", "proficiency": "B2"}]`))
	assert.Equal(t, []types.LanguageItem{
		{ID: "language-1", Language: "French", Fluency: "Fluent"},
		{ID: "language-2", Language: "German"},
		{ID: "language-3", Language: "Spanish", Fluency: "B2"},
	}, got)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  types.LanguageItem
		ok    bool
	}{
		{"French (Fluent)", types.LanguageItem{Language: "French", Fluency: "Fluent"}, true},
		{"  Japanese(N2) ", types.LanguageItem{Language: "Japanese", Fluency: "N2"}, true},
		{"English (native) (US)", types.LanguageItem{Language: "English (native) (US)"}, true},
		{"Portuguese", types.LanguageItem{Language: "Portuguese"}, true},
		{" ", types.LanguageItem{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLanguage(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCustomSections(t *testing.T) {
	got := NormalizeCustomSections(decode(t, `[
		{"name": "Volunteering", "lines": ["- Food bank", {"text": "Mentor"}]},
		{"items": ["Chess"]},
		{"title": " "}
	]`))
	require.Len(t, got, 2)

	assert.Equal(t, types.CustomSection{
		ID:    "custom-section-1",
		Title: "Volunteering",
		Items: []types.CustomSectionItem{
			{ID: "custom-section-1-item-1", Text: "Food bank"},
			{ID: "custom-section-1-item-2", Text: "Mentor"},
		},
	}, got[0])
	assert.Equal(t, "Custom Section 2", got[1].Title)
}

func TestNormalizeVersions(t *testing.T) {
	got := NormalizeVersions(decode(t, `[
		{"reason": "before tailoring", "snapshot": {"experience": [{"company": "Acme"}], "skills": "Go"}},
		{"id": "v-2", "snapshot": "broken"}
	]`))
	require.Len(t, got, 2)

	assert.Equal(t, "version-1", got[0].ID)
	assert.Equal(t, "before tailoring", got[0].Reason)
	assert.Len(t, got[0].Snapshot.Work, 1)
	assert.Len(t, got[0].Snapshot.Skills, 1)
	assert.NotNil(t, got[0].Snapshot.Projects)

	assert.Equal(t, "v-2", got[1].ID)
	assert.Empty(t, got[1].Snapshot.Work)
	assert.NotNil(t, got[1].Snapshot.Work)
}

func TestNormalizeMetadata(t *testing.T) {
	got := NormalizeMetadata(decode(t, `{"templateUsed": "modern", "atsScore": "88.5", "junk": true}`))
	require.NotNil(t, got)
	assert.Equal(t, "modern", got.TemplateUsed)
	require.NotNil(t, got.ATSScore)
	assert.Equal(t, 88.5, *got.ATSScore)

	got = NormalizeMetadata(decode(t, `{"atsScore": 70}`))
	require.NotNil(t, got)
	assert.Equal(t, 70.0, *got.ATSScore)

	assert.Nil(t, NormalizeMetadata(decode(t, `{"atsScore": "high"}`)))
	assert.Nil(t, NormalizeMetadata("x"))
}

func TestNormalizeResumeCandidate(t *testing.T) {
	t.Run("non-object", func(t *testing.T) {
		for _, input := range []any{nil, "resume", []any{}, 3.0} {
			got := NormalizeResumeCandidate(input)
			assert.Empty(t, got.ID)
			assert.Nil(t, got.Basics)
			assert.NotNil(t, got.Work)
			assert.NotNil(t, got.Education)
			assert.NotNil(t, got.Projects)
			assert.NotNil(t, got.Awards)
			assert.NotNil(t, got.Skills)
			assert.NotNil(t, got.Languages)
			assert.NotNil(t, got.CustomSections)
			assert.NotNil(t, got.SectionOrder)
			assert.NotNil(t, got.Versions)
		}
	})

	t.Run("synonyms", func(t *testing.T) {
		got := NormalizeResumeCandidate(decode(t, `{
			"id": "resume-7",
			"contact": {"name": "Jane"},
			"summary": "  Backend engineer  ",
			"experience": [{"company": "Acme"}],
			"achievements": ["Top performer"],
			"skills": ["Go"],
			"languages": ["French (Fluent)"],
			"sectionOrder": ["work", {"label": "skills"}, 4]
		}`))

		assert.Equal(t, "resume-7", got.ID)
		require.NotNil(t, got.Basics)
		assert.Equal(t, "Jane", got.Basics.Name)
		assert.Equal(t, "Backend engineer", got.Summary)
		assert.Len(t, got.Work, 1)
		assert.Len(t, got.Awards, 1)
		assert.Len(t, got.Skills, 1)
		assert.Equal(t, "French", got.Languages[0].Language)
		assert.Equal(t, []string{"work", "skills", "4"}, got.SectionOrder)
	})
}

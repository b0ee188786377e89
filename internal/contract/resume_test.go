package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/types"
)

func TestResumeData_MinimalDocument(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "resume", got.ID)
	assert.Nil(t, got.Metadata)
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

func TestResumeData_WorkHighlightShorthand(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{
		"work": [{"company": "Acme", "current": true, "highlights": ["- Built backend APIs"]}]
	}`))
	require.NoError(t, err)
	require.Len(t, got.Work, 1)

	work := got.Work[0]
	assert.Equal(t, "work", work.ID)
	assert.True(t, work.IsCurrent)
	require.Len(t, work.Highlights, 1)
	assert.Equal(t, types.Highlight{
		ID:             "work-highlight",
		Text:           "Built backend APIs",
		OriginalText:   "Built backend APIs",
		Source:         "user",
		Locked:         false,
		AITags:         []string{},
		KeywordMatches: []string{},
	}, work.Highlights[0])
}

func TestResumeData_HighlightObject(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{
		"projects": [{"name": "CLI", "highlights": [
			{"improved": "1. Cut build time by 40%", "originalText": "Made builds faster", "source": "ai", "locked": true, "aiTags": "impact, speed"}
		]}]
	}`))
	require.NoError(t, err)

	h := got.Projects[0].Highlights[0]
	assert.Equal(t, "project-highlight", h.ID)
	assert.Equal(t, "Cut build time by 40%", h.Text)
	assert.Equal(t, "Made builds faster", h.OriginalText)
	assert.Equal(t, "ai", h.Source)
	assert.True(t, h.Locked)
	assert.Equal(t, []string{"impact", "speed"}, h.AITags)
}

func TestResumeData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"not an object", `[]`, "resumeData: Expected object"},
		{"empty work item", `{"work": [{}]}`, "resumeData.work[0]: Expected work item with at least one field"},
		{"wrong company type", `{"work": [{"company": 7}]}`, "resumeData.work[0].company: Expected string"},
		{"work not array", `{"work": "Acme"}`, "resumeData.work: Expected array"},
		{"blank highlight", `{"work": [{"highlights": ["   "]}]}`, "resumeData.work[0].highlights[0]: Expected non-empty highlight text"},
		{"empty education", `{"education": [{"honors": []}]}`, "resumeData.education[0]: Expected education item with at least one field"},
		{"empty project", `{"projects": [{"technologies": []}]}`, "resumeData.projects[0]: Expected project item with at least one field"},
		{"empty award", `{"awards": [{}]}`, "resumeData.awards[0]: Expected award item with at least one field"},
		{"empty language", `{"languages": [{"id": "l1"}]}`, "resumeData.languages[0]: Expected language item with at least one field"},
		{"string ats score", `{"metadata": {"atsScore": "90"}}`, "resumeData.metadata.atsScore: Expected number"},
		{"empty profile", `{"basics": {"profiles": [{}]}}`, "resumeData.basics.profiles[0]: Expected profile with at least one field"},
		{"blank technology", `{"projects": [{"technologies": [{"name": " "}]}]}`, "resumeData.projects[0].technologies[0].name: Expected non-empty technology name"},
		{"empty custom section", `{"customSections": [{"items": []}]}`, "resumeData.customSections[0]: Expected custom section with content"},
		{"section order item", `{"sectionOrder": ["work", 3]}`, "resumeData.sectionOrder[1]: Expected string"},
		{"honor type", `{"education": [{"honors": [true]}]}`, "resumeData.education[0].honors[0]: Expected string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := positional().ResumeData().Parse(decode(t, tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var se *SchemaError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestResumeData_Location(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{
		"basics": {"label": "Engineer", "website": "https://x.dev", "location": "San Francisco, CA, USA"},
		"work": [{"company": "A", "location": {"city": "Austin", "state": "TX"}}],
		"education": [{"institution": "MIT", "location": "Cambridge"}]
	}`))
	require.NoError(t, err)

	require.NotNil(t, got.Basics)
	assert.Equal(t, "Engineer", got.Basics.Title)
	assert.Equal(t, "Engineer", got.Basics.Label)
	assert.Equal(t, "https://x.dev", got.Basics.URL)
	assert.Equal(t, &types.Location{City: "San Francisco", Country: "CA, USA"}, got.Basics.Location)
	assert.Equal(t, &types.Location{City: "Austin", Region: "TX"}, got.Work[0].Location)
	assert.Equal(t, &types.Location{City: "Cambridge"}, got.Education[0].Location)
}

func TestResumeData_EmptyBasicsDropped(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{"basics": {"location": "  "}, "metadata": {}}`))
	require.NoError(t, err)
	assert.Nil(t, got.Basics)
	assert.Nil(t, got.Metadata)
}

func TestResumeData_ProjectTechnologies(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{
		"projects": [
			{"name": "A", "technologies": "Go, Postgres"},
			{"name": "B", "technologies": ["Docker", {"name": "Redis", "skillRefId": "skill-9"}]}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []types.Technology{
		{SkillRefID: "skill-ref-1", Name: "Go"},
		{SkillRefID: "skill-ref-2", Name: "Postgres"},
	}, got.Projects[0].Technologies)
	assert.Equal(t, []types.Technology{
		{SkillRefID: "skill-ref-1", Name: "Docker"},
		{SkillRefID: "skill-9", Name: "Redis"},
	}, got.Projects[1].Technologies)
}

func TestResumeData_EducationDegreeSynonym(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{"education": [{"studyType": "BSc", "honors": "Cum laude; Dean's list"}]}`))
	require.NoError(t, err)

	edu := got.Education[0]
	assert.Equal(t, "BSc", edu.Degree)
	assert.Equal(t, "BSc", edu.StudyType)
	assert.Equal(t, []string{"Cum laude", "Dean's list"}, edu.Honors)
	assert.Equal(t, "education", edu.ID)
}

func TestResumeData_CustomSections(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{
		"customSections": [
			{"lines": ["- Chess", {"text": "2) Climbing"}]},
			{"title": "Volunteering"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, got.CustomSections, 2)

	assert.Equal(t, types.CustomSection{
		ID:    "custom-section-1",
		Title: "Custom Section 1",
		Items: []types.CustomSectionItem{
			{ID: "custom-item-1", Text: "Chess"},
			{ID: "custom-item-2", Text: "Climbing"},
		},
	}, got.CustomSections[0])
	assert.Equal(t, "Volunteering", got.CustomSections[1].Title)
	assert.Empty(t, got.CustomSections[1].Items)
}

func TestResumeData_Versions(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{
		"versions": [
			{"reason": "before rewrite", "snapshot": null},
			{"id": "v-2", "snapshot": {"work": [{"company": "A"}], "skills": "Go"}}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, got.Versions, 2)

	assert.Equal(t, "version-1", got.Versions[0].ID)
	assert.Empty(t, got.Versions[0].Snapshot.Work)
	assert.NotNil(t, got.Versions[0].Snapshot.Skills)

	assert.Equal(t, "v-2", got.Versions[1].ID)
	assert.Len(t, got.Versions[1].Snapshot.Work, 1)
	assert.Equal(t, "Go", got.Versions[1].Snapshot.Skills[0].Name)
}

func TestResumeData_Metadata(t *testing.T) {
	got, err := positional().ResumeData().Parse(decode(t, `{"id": "r-1", "metadata": {"templateUsed": "modern", "atsScore": 87}}`))
	require.NoError(t, err)

	assert.Equal(t, "r-1", got.ID)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "modern", got.Metadata.TemplateUsed)
	require.NotNil(t, got.Metadata.ATSScore)
	assert.Equal(t, 87.0, *got.Metadata.ATSScore)
}

func TestResumeData_AcceptsPlainMaps(t *testing.T) {
	input := map[string]any{
		"summary": "Backend engineer",
		"awards":  []any{map[string]any{"title": "Hackathon winner"}},
	}

	got, err := positional().ResumeData().Parse(input)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", got.Summary)
	assert.Equal(t, "award", got.Awards[0].ID)
}

func TestContentPredicates(t *testing.T) {
	assert.False(t, WorkHasContent(types.WorkItem{ID: "w"}))
	assert.True(t, WorkHasContent(types.WorkItem{IsCurrent: true}))
	assert.False(t, EducationHasContent(types.EducationItem{Honors: []string{}}))
	assert.True(t, EducationHasContent(types.EducationItem{GPA: "3.9"}))
	assert.False(t, ProjectHasContent(types.ProjectItem{Technologies: []types.Technology{}}))
	assert.True(t, ProjectHasContent(types.ProjectItem{Repository: "gh"}))
	assert.False(t, AwardHasContent(types.AwardItem{ID: "a"}))
	assert.False(t, LanguageHasContent(types.LanguageItem{ID: "l"}))
	assert.True(t, LanguageHasContent(types.LanguageItem{Fluency: "Native"}))
}

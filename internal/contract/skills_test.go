package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/types"
)

func parseSkillsJSON(t *testing.T, raw string) ([]types.SkillItem, error) {
	t.Helper()
	got, err := positional().ResumeData().Parse(decode(t, `{"skills": `+raw+`}`))
	return got.Skills, err
}

func TestSkills_CategoryMap(t *testing.T) {
	got, err := parseSkillsJSON(t, `{"softSkills": ["Leadership", "Mentoring"], "tools": "Docker; Terraform"}`)
	require.NoError(t, err)

	assert.Equal(t, []types.SkillItem{
		{ID: "skill-softSkills-1", Name: "Leadership", Category: "Soft Skills"},
		{ID: "skill-softSkills-2", Name: "Mentoring", Category: "Soft Skills"},
		{ID: "skill-tools-1", Name: "Docker", Category: "Tools"},
		{ID: "skill-tools-2", Name: "Terraform", Category: "Tools"},
	}, got)
}

func TestSkills_MixedArray(t *testing.T) {
	got, err := parseSkillsJSON(t, `[
		"Go",
		{"category": "Languages", "items": ["Python"]},
		{"id": "s-1", "name": "Docker", "category": "Tools"},
		{"skill": "Kubernetes", "category": "Tools"},
		"go"
	]`)
	require.NoError(t, err)

	assert.Equal(t, []types.SkillItem{
		{ID: "skill-general-1", Name: "Go", Category: "General"},
		{ID: "skill-languages-1", Name: "Python", Category: "Languages"},
		{ID: "s-1", Name: "Docker", Category: "Tools"},
		{ID: "skill-tools-2", Name: "Kubernetes", Category: "Tools"},
	}, got)
}

func TestSkills_DelimitedString(t *testing.T) {
	got, err := parseSkillsJSON(t, `"Go, SQL | Go"`)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Go", got[0].Name)
	assert.Equal(t, "SQL", got[1].Name)
	assert.Equal(t, "General", got[1].Category)
}

func TestSkills_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"map value not a list", `{"tools": 3}`, "resumeData.skills.tools: Expected string[] map value"},
		{"map item not a string", `{"tools": ["Docker", 2]}`, "resumeData.skills.tools[1]: Expected string"},
		{"blank array skill", `["Go", " "]`, "resumeData.skills[1]: Expected non-empty skill"},
		{"object without name", `[{"category": "Tools"}]`, "resumeData.skills[0].name: Expected non-empty skill name"},
		{"number", `7`, "resumeData.skills: Expected object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSkillsJSON(t, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestDedupeSkills(t *testing.T) {
	got := DedupeSkills([]types.SkillItem{
		{Name: "Go", Category: "Backend"},
		{Name: "GO", Category: "backend"},
		{Name: "Go", Category: "Frontend"},
		{Name: ""},
		{Name: "Rust"},
	}, ids.Positional())

	assert.Equal(t, []types.SkillItem{
		{ID: "skill-backend-1", Name: "Go", Category: "Backend"},
		{ID: "skill-frontend-1", Name: "Go", Category: "Frontend"},
		{ID: "skill-general-1", Name: "Rust", Category: "General"},
	}, got)
}

func TestDedupeSkills_Idempotent(t *testing.T) {
	first := DedupeSkills([]types.SkillItem{
		{Name: "Go", Category: "Backend"},
		{Name: "go", Category: "Backend"},
		{Name: "SQL", Category: "Data"},
	}, ids.Positional())
	second := DedupeSkills(first, ids.Positional())

	assert.Equal(t, first, second)
}

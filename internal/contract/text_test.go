package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripListPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"- Built backend APIs", "Built backend APIs"},
		{"• Led a team of five", "Led a team of five"},
		{"* Shipped v2", "Shipped v2"},
		{"1. First", "First"},
		{"(2) Second", "Second"},
		{"3) Third", "Third"},
		{"  —  Dash prefixed", "Dash prefixed"},
		{"- - nested markers", "nested markers"},
		{"-NoSpace", "-NoSpace"},
		{"2024 was a good year", "2024 was a good year"},
		{"1000. Too many digits", "1000. Too many digits"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := StripListPrefix(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripListPrefix(got), "stripping must be idempotent")
		})
	}
}

func TestSplitInlineList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Python", "Rust", "SQL"}, SplitInlineList("Go, Python; Rust | ,SQL"))
	assert.Equal(t, []string{}, SplitInlineList(" , ; "))
}

func TestTitleCaseWords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"softSkills", "Soft Skills"},
		{"soft_skills", "Soft Skills"},
		{"soft-skills", "Soft Skills"},
		{"soft skills", "Soft Skills"},
		{"Soft Skills", "Soft Skills"},
		{"TOOLS", "Tools"},
		{"JavaScript Frameworks", "Javascript Frameworks"},
		{"__", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCaseWords(tt.input))
		})
	}
}

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "softSkills", CategoryKey("Soft Skills", 0))
	assert.Equal(t, "general", CategoryKey("General", 0))
	assert.Equal(t, "cloudDevops", CategoryKey("Cloud & DevOps", 0))
	assert.Equal(t, "category3", CategoryKey("++", 2))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "3.75", FormatNumber(3.75))
}

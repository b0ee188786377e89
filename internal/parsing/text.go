package parsing

import (
	"regexp"
	"strings"
)

var (
	openingFenceRE  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closingFenceRE  = regexp.MustCompile("```$")
	lineBreakRE     = regexp.MustCompile(`\r\n?`)
	trailingSpaceRE = regexp.MustCompile(`[ \t]+\n`)
)

const noJSONObjectMessage = "Model response does not contain JSON object boundaries."

// NormalizeInputText canonicalizes line endings, removes trailing blanks
// before newlines, turns non-breaking spaces into spaces and trims.
func NormalizeInputText(text string) string {
	text = lineBreakRE.ReplaceAllString(text, "\n")
	text = trailingSpaceRE.ReplaceAllString(text, "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(text)
}

// StripMarkdownFences removes a ```json ... ``` wrapper. Text that does not
// start with a fence is only trimmed.
func StripMarkdownFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = openingFenceRE.ReplaceAllString(trimmed, "")
	trimmed = closingFenceRE.ReplaceAllString(trimmed, "")
	return strings.TrimSpace(trimmed)
}

// ExtractJSONText returns the span from the first "{" to the last "}" of
// the unfenced response.
func ExtractJSONText(text string) (string, error) {
	cleaned := StripMarkdownFences(text)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", &ExtractionError{Message: noJSONObjectMessage}
	}
	return cleaned[start : end+1], nil
}

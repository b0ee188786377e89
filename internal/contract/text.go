package contract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// listPrefixRE matches a leading run of bullet glyphs or short numerals
// ("1.", "(2)", "3)") each followed by whitespace.
var listPrefixRE = regexp.MustCompile(`^[\s\p{Zs}]*(?:(?:[-*•●▪◦–—−]|\(?\d{1,3}[.)])[\s\p{Zs}]+)+`)

var inlineListSep = regexp.MustCompile(`[,;|]`)

// NormalizeString trims s. Blank input yields "".
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// StripListPrefix trims s and removes any leading list markers. It is
// idempotent.
func StripListPrefix(s string) string {
	text := NormalizeString(s)
	if text == "" {
		return ""
	}
	return NormalizeString(listPrefixRE.ReplaceAllString(text, ""))
}

// SplitInlineList splits a delimited string on commas, semicolons and pipes,
// dropping blank entries.
func SplitInlineList(s string) []string {
	out := []string{}
	for _, part := range inlineListSep.Split(s, -1) {
		if item := NormalizeString(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// TitleCaseWords turns an identifier-like key ("softSkills", "soft_skills",
// "soft-skills") into "Soft Skills".
func TitleCaseWords(s string) string {
	if isCamelIdentifier(s) {
		s = splitCamel(s)
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// CategoryKey turns a category label into a camel-cased id fragment
// ("Soft Skills" becomes "softSkills"). Labels with no letters or digits
// fall back to "category<index+1>".
func CategoryKey(label string, index int) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "category" + strconv.Itoa(index+1)
	}

	var sb strings.Builder
	sb.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}

// FormatNumber renders a JSON number the way it would appear in text:
// integers without a decimal point.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// isCamelIdentifier reports whether s looks like a lowerCamelCase key such
// as "softSkills". Keys written as words ("JavaScript Frameworks") are left
// alone.
func isCamelIdentifier(s string) bool {
	if s == "" || !unicode.IsLower([]rune(s)[0]) {
		return false
	}
	for _, r := range s {
		if !isASCIIAlnum(r) {
			return false
		}
	}
	return true
}

// splitCamel inserts a space at lower-to-upper boundaries so camelCase keys
// split into words.
func splitCamel(s string) string {
	var sb strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

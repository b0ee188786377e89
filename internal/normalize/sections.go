package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-contract/internal/types"
)

// kindRules infer a section kind from its lowercased title. Order matters:
// "Project Experience" is work, "Technical Skills and Tools" is skills.
var kindRules = []struct {
	re   *regexp.Regexp
	kind types.SectionKind
}{
	{regexp.MustCompile(`^header$`), types.SectionKindHeader},
	{regexp.MustCompile(`summary|profile|about|objective`), types.SectionKindSummary},
	{regexp.MustCompile(`experience|employment|work history|professional background`), types.SectionKindWork},
	{regexp.MustCompile(`skills|competenc|tool`), types.SectionKindSkills},
	{regexp.MustCompile(`education|academic|qualification`), types.SectionKindEducation},
	{regexp.MustCompile(`project`), types.SectionKindProjects},
	{regexp.MustCompile(`award|achievement|honor`), types.SectionKindAwards},
	{regexp.MustCompile(`language`), types.SectionKindLanguages},
}

var lineBreakRE = regexp.MustCompile(`\r?\n`)

// InferSectionKind returns the explicit kind when it names a known kind
// ("experience" meaning work), otherwise the first rule matching the title.
// Unmatched titles are custom.
func InferSectionKind(explicit any, title string) types.SectionKind {
	if kind, ok := types.ParseSectionKind(sanitize(explicit)); ok {
		return kind
	}

	normalized := strings.ToLower(title)
	for _, rule := range kindRules {
		if rule.re.MatchString(normalized) {
			return rule.kind
		}
	}
	return types.SectionKindCustom
}

// InferCanonicalTarget returns the explicit target when valid, otherwise
// the target derived from kind.
func InferCanonicalTarget(explicit any, kind types.SectionKind) types.CanonicalTarget {
	if target, ok := types.ParseCanonicalTarget(sanitize(explicit)); ok {
		return target
	}
	return kind.CanonicalTarget()
}

// NormalizeSectionBlocks maps candidate section blocks in input order.
// Lines come from an explicit list or from splitting a content string on
// newlines; blocks without lines are dropped.
func NormalizeSectionBlocks(v any) []types.SectionBlock {
	out := []types.SectionBlock{}
	for i, raw := range array(v) {
		obj, ok := object(raw)
		if !ok {
			continue
		}

		title := orDefault(sanitize(obj.Value("title")), fmt.Sprintf("Section %d", i+1))
		kind := InferSectionKind(obj.Value("kind"), title)

		var lines []string
		if explicit, ok := obj.Value("lines").([]any); ok {
			lines = stringArray(explicit)
		} else if content, ok := obj.Value("content").(string); ok {
			lines = NormalizeStrings(lineBreakRE.Split(content, -1))
		}
		if len(lines) == 0 {
			continue
		}

		out = append(out, types.SectionBlock{
			ID:              orDefault(sanitize(obj.Value("id")), fmt.Sprintf("section-%d", i+1)),
			Title:           title,
			Kind:            kind,
			Lines:           lines,
			CanonicalTarget: InferCanonicalTarget(obj.Value("canonicalTarget"), kind),
		})
	}
	return out
}

// DeriveSectionPresence marks a canonical section present when the resume
// has data for it or a block targeting it has at least one line.
func DeriveSectionPresence(blocks []types.SectionBlock, resume types.ResumeData) types.SectionPresence {
	presence := types.SectionPresence{
		Summary:   resume.Summary != "",
		Work:      len(resume.Work) > 0,
		Projects:  len(resume.Projects) > 0,
		Skills:    len(resume.Skills) > 0,
		Education: len(resume.Education) > 0,
		Awards:    len(resume.Awards) > 0,
		Languages: len(resume.Languages) > 0,
	}
	for _, block := range blocks {
		if len(block.Lines) > 0 && block.CanonicalTarget != types.CanonicalTargetNone {
			presence.Set(block.CanonicalTarget, true)
		}
	}
	return presence
}

// DeriveCustomSections lists the blocks that map to no canonical section,
// headers excluded, in source order.
func DeriveCustomSections(blocks []types.SectionBlock) []types.SectionBlock {
	out := []types.SectionBlock{}
	for _, block := range blocks {
		if block.CanonicalTarget == types.CanonicalTargetNone &&
			block.Kind != types.SectionKindHeader && len(block.Lines) > 0 {
			out = append(out, block)
		}
	}
	return out
}

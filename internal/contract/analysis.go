package contract

import (
	"github.com/jonathan/resume-contract/internal/types"
)

func (v *Validator) parseAnalysisSnapshot(value any, path string) (types.AnalysisSnapshot, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.AnalysisSnapshot{}, err
	}

	snap := types.AnalysisSnapshot{
		ID:            f.required("id", 0),
		CreatedAt:     f.required("createdAt", 0),
		RoleSeniority: enumField(f, "roleSeniority", types.Seniorities, Options{}),
		OverallFit:    enumField(f, "overallFit", types.Fits, Options{}),
		TargetRole:    f.required("targetRole", 0),
		Company:       f.str("company"),
		Status:        enumField(f, "status", types.AnalysisStatuses, Options{}),
	}
	if score := f.number("matchScore", Options{}); score != nil {
		snap.MatchScore = *score
	}
	snap.KeywordGaps = listField(f, parseKeywordGap, "keywordGaps")
	snap.BulletChanges = listField(f, parseBulletChange, "bulletChanges")
	snap.RewriteSuggestions = listField(f, parseRewriteSuggestion, "rewriteSuggestions")
	snap.ATSChecks = listField(f, parseATSCheck, "atsChecks")
	snap.RiskFlags = listField(f, parseRiskFlag, "riskFlags")
	snap.RecommendedEdits = listField(f, parseRecommendedEdit, "recommendedEdits")
	if f.err != nil {
		return types.AnalysisSnapshot{}, f.err
	}
	return snap, nil
}

func parseKeywordGap(value any, path string, _ int) (types.KeywordGap, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.KeywordGap{}, err
	}
	gap := types.KeywordGap{
		Keyword:          f.required("keyword", 0),
		Importance:       enumField(f, "importance", types.Priorities, Options{}),
		SuggestedPhrases: listField(f, StringItem, "suggestedPhrases"),
		Category:         f.required("category", 0),
	}
	return gap, f.err
}

func parseBulletChange(value any, path string, _ int) (types.BulletChange, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.BulletChange{}, err
	}
	change := types.BulletChange{
		Section:  f.required("section", 0),
		Original: f.required("original", 0),
		Improved: f.required("improved", 0),
		Type:     enumField(f, "type", types.BulletChangeTypes, Options{}),
	}
	return change, f.err
}

func parseRewriteSuggestion(value any, path string, _ int) (types.RewriteSuggestion, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.RewriteSuggestion{}, err
	}
	s := types.RewriteSuggestion{
		ID:           f.required("id", 0),
		Section:      enumField(f, "section", types.SuggestionSections, Options{}),
		OriginalText: f.required("originalText", 0),
		ImprovedText: f.required("improvedText", 0),
		Rationale:    f.required("rationale", 0),
		ATSNotes:     f.required("atsNotes", 0),
	}
	return s, f.err
}

func parseATSCheck(value any, path string, _ int) (types.ATSCheck, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.ATSCheck{}, err
	}
	check := types.ATSCheck{
		ID:      f.required("id", 0),
		Name:    f.required("name", 0),
		Status:  enumField(f, "status", types.CheckStatuses, Options{}),
		Message: f.required("message", 0),
		Tip:     f.str("tip"),
	}
	return check, f.err
}

func parseRiskFlag(value any, path string, _ int) (types.RiskFlag, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.RiskFlag{}, err
	}
	flag := types.RiskFlag{
		ID:          f.required("id", 0),
		Title:       f.required("title", 0),
		Description: f.required("description", 0),
		Severity:    enumField(f, "severity", types.Priorities, Options{}),
	}
	return flag, f.err
}

func parseRecommendedEdit(value any, path string, _ int) (types.RecommendedEdit, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.RecommendedEdit{}, err
	}
	edit := types.RecommendedEdit{
		ID:        f.required("id", 0),
		Text:      f.required("text", 0),
		Completed: f.boolean("completed", Options{}),
	}
	return edit, f.err
}

package normalize

import (
	"fmt"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/types"
)

// skillIDs mints "skill-<categoryKey>-<n>" ids verbatim so that normalized
// output is deterministic.
var skillIDs = ids.Positional()

// NormalizeSkills flattens every accepted skills shape into deduplicated
// skill items:
//
//   - a delimited string becomes General skills
//   - an array holds strings, grouped objects ({category, items}) or single
//     objects ({name, category})
//   - an object maps category keys ("softSkills", "soft_skills") to a
//     string, an array or a grouped/single object
//
// The first occurrence of a (category, name) pair wins, compared without
// case.
func NormalizeSkills(v any) []types.SkillItem {
	var flat []types.SkillItem

	switch t := v.(type) {
	case nil:
	case string:
		flat = generalSkills(contract.SplitInlineList(t))
	case []any:
		for _, entry := range t {
			flat = append(flat, skillsFromEntry(entry)...)
		}
	default:
		if obj, ok := object(v); ok {
			flat = skillsFromMap(obj)
		}
	}
	return contract.DedupeSkills(flat, skillIDs)
}

func generalSkills(names []string) []types.SkillItem {
	return categorized(names, types.DefaultSkillCategory)
}

func skillsFromEntry(entry any) []types.SkillItem {
	if s, ok := entry.(string); ok {
		return generalSkills(contract.SplitInlineList(s))
	}
	obj, ok := object(entry)
	if !ok {
		return nil
	}

	if grouped := groupedSkillNames(obj); len(grouped) > 0 {
		category := orDefault(pick(obj, skillCategoryKeys), types.DefaultSkillCategory)
		return categorized(grouped, category)
	}

	name := pick(obj, skillNameKeys)
	if name == "" {
		return nil
	}
	return []types.SkillItem{{
		ID:       sanitize(obj.Value("id")),
		Name:     name,
		Category: orDefault(sanitize(obj.Value("category")), types.DefaultSkillCategory),
	}}
}

func skillsFromMap(obj *jsonx.Object) []types.SkillItem {
	var out []types.SkillItem
	for i, key := range obj.Keys() {
		category := orDefault(contract.TitleCaseWords(key), fmt.Sprintf("Category %d", i+1))

		switch value := obj.Value(key).(type) {
		case string:
			out = append(out, categorized(contract.SplitInlineList(value), category)...)
		case []any:
			out = append(out, categorized(stringArray(value), category)...)
		default:
			inner, ok := object(value)
			if !ok {
				continue
			}
			if grouped := groupedSkillNames(inner); len(grouped) > 0 {
				out = append(out, categorized(grouped, category)...)
				continue
			}
			if name := pick(inner, skillNameKeys); name != "" {
				out = append(out, types.SkillItem{
					ID:       sanitize(inner.Value("id")),
					Name:     name,
					Category: category,
				})
			}
		}
	}
	return out
}

// groupedSkillNames reads the first truthy of items/skills/keywords as an
// array or a delimited string.
func groupedSkillNames(obj *jsonx.Object) []string {
	return listOrSplit(pickValue(obj, skillGroupKeys))
}

func categorized(names []string, category string) []types.SkillItem {
	out := make([]types.SkillItem, 0, len(names))
	for _, name := range names {
		out = append(out, types.SkillItem{Name: name, Category: category})
	}
	return out
}

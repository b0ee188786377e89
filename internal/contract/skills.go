package contract

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/jsonx"
	"github.com/jonathan/resume-contract/internal/types"
)

// parseSkills accepts a delimited string, an array of skill items, or a map
// of category name to skills.
func (v *Validator) parseSkills(value any, path string) ([]types.SkillItem, error) {
	switch t := value.(type) {
	case nil:
		return []types.SkillItem{}, nil
	case string:
		var out []types.SkillItem
		for _, name := range SplitInlineList(t) {
			out = append(out, types.SkillItem{Name: name, Category: types.DefaultSkillCategory})
		}
		return DedupeSkills(out, v.ids), nil
	case []any:
		var out []types.SkillItem
		for i, item := range t {
			parsed, err := parseSkillItem(item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, parsed...)
		}
		return DedupeSkills(out, v.ids), nil
	}

	obj, err := AsObject(value, path)
	if err != nil {
		return nil, err
	}
	out, err := parseSkillMap(obj, path)
	if err != nil {
		return nil, err
	}
	return DedupeSkills(out, v.ids), nil
}

func parseSkillItem(value any, path string) ([]types.SkillItem, error) {
	if s, ok := value.(string); ok {
		name := NormalizeString(s)
		if name == "" {
			return nil, schemaErr(path, "Expected non-empty skill")
		}
		return []types.SkillItem{{Name: name, Category: types.DefaultSkillCategory}}, nil
	}

	f, err := readObject(value, path)
	if err != nil {
		return nil, err
	}

	grouped, err := parseStringList(f.value("items", "skills", "keywords"), f.at("items"))
	if err != nil {
		return nil, err
	}
	if len(grouped) > 0 {
		category := orDefault(f.str("category", "name", "label"), types.DefaultSkillCategory)
		if f.err != nil {
			return nil, f.err
		}
		out := make([]types.SkillItem, 0, len(grouped))
		for _, name := range grouped {
			out = append(out, types.SkillItem{Name: name, Category: category})
		}
		return out, nil
	}

	item := types.SkillItem{
		ID:       f.str("id"),
		Name:     NormalizeString(f.str("name", "skill", "keyword", "value")),
		Category: orDefault(f.str("category"), types.DefaultSkillCategory),
	}
	if f.err != nil {
		return nil, f.err
	}
	if item.Name == "" {
		return nil, schemaErr(f.at("name"), "Expected non-empty skill name")
	}
	return []types.SkillItem{item}, nil
}

// parseSkillMap flattens {"softSkills": ["Leadership"], ...} into skills
// whose category is the title-cased key.
func parseSkillMap(obj *jsonx.Object, path string) ([]types.SkillItem, error) {
	var out []types.SkillItem
	for i, key := range obj.Keys() {
		category := orDefault(TitleCaseWords(key), fmt.Sprintf("Category %d", i+1))
		keyPath := path + "." + key

		var names []string
		switch raw := obj.Value(key).(type) {
		case []any:
			for j, item := range raw {
				s, err := AsString(item, indexPath(keyPath, j), Options{})
				if err != nil {
					return nil, err
				}
				if s = NormalizeString(s); s != "" {
					names = append(names, s)
				}
			}
		case string:
			names = SplitInlineList(raw)
		default:
			return nil, schemaErr(keyPath, "Expected string[] map value")
		}

		for _, name := range names {
			out = append(out, types.SkillItem{Name: name, Category: category})
		}
	}
	return out, nil
}

// DedupeSkills drops skills whose case-insensitive (category, name) pair was
// already seen; the first occurrence wins. Blank categories become
// "General". Skills without an id get "skill-<categoryKey>-<n>", n being the
// skill's 1-based position within its category.
func DedupeSkills(skills []types.SkillItem, gen ids.Generator) []types.SkillItem {
	seen := make(map[string]bool, len(skills))
	positions := make(map[string]int)
	out := make([]types.SkillItem, 0, len(skills))

	for _, item := range skills {
		if item.Name == "" {
			continue
		}
		if item.Category == "" {
			item.Category = types.DefaultSkillCategory
		}

		key := strings.ToLower(item.Category + "::" + item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		categoryKey := CategoryKey(item.Category, 0)
		positions[categoryKey]++
		if item.ID == "" {
			item.ID = gen.New(fmt.Sprintf("skill-%s-%d", categoryKey, positions[categoryKey]))
		}
		out = append(out, item)
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package contract

import (
	"github.com/jonathan/resume-contract/internal/types"
)

var (
	contractVersions  = []string{types.ContractVersion}
	reasoningVersions = []string{types.ReasoningVersion}
)

func (v *Validator) parseSourceMeta(value any, path string) (types.SourceMeta, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.SourceMeta{}, err
	}

	src := types.SourceMeta{
		InputType:  enumField(f, "inputType", types.InputTypes, Options{}),
		RawText:    f.required("rawText", 0),
		FileName:   f.str("fileName"),
		ImportedAt: f.required("importedAt", 0),
		ParsedAt:   f.str("parsedAt"),
		Parser:     f.str("parser"),
	}
	if f.err != nil {
		return types.SourceMeta{}, f.err
	}
	return src, nil
}

func parseSectionBlock(value any, path string, _ int) (types.SectionBlock, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.SectionBlock{}, err
	}

	rawKind, _ := f.obj.Value("kind").(string)
	kind, ok := types.ParseSectionKind(rawKind)
	if !ok {
		return types.SectionBlock{}, schemaErr(f.at("kind"), "Expected one of: "+joinValues(types.SectionKinds))
	}

	target := kind.CanonicalTarget()
	if raw := f.obj.Value("canonicalTarget"); raw != nil {
		s, _ := raw.(string)
		parsed, ok := types.ParseCanonicalTarget(s)
		if !ok {
			return types.SectionBlock{}, schemaErr(f.at("canonicalTarget"), "Expected one of: "+joinValues(types.CanonicalTargets))
		}
		target = parsed
	}

	block := types.SectionBlock{
		ID:              f.required("id", 1),
		Title:           f.required("title", 1),
		Kind:            kind,
		Lines:           listField(f, StringItem, "lines"),
		CanonicalTarget: target,
	}
	if f.err != nil {
		return types.SectionBlock{}, f.err
	}
	return block, nil
}

// parseSectionPresence requires all seven flags when the object is present.
func parseSectionPresence(value any, path string) (*types.SectionPresence, error) {
	if value == nil {
		return nil, nil
	}
	f, err := readObject(value, path)
	if err != nil {
		return nil, err
	}

	p := types.SectionPresence{
		Summary:   f.boolean("summary", Options{}),
		Work:      f.boolean("work", Options{}),
		Projects:  f.boolean("projects", Options{}),
		Skills:    f.boolean("skills", Options{}),
		Education: f.boolean("education", Options{}),
		Awards:    f.boolean("awards", Options{}),
		Languages: f.boolean("languages", Options{}),
	}
	if f.err != nil {
		return nil, f.err
	}
	return &p, nil
}

// sectionsField returns nil when key is absent, so absent and empty stay
// distinguishable.
func sectionsField(f *fields, key string) []types.SectionBlock {
	if f.err != nil || !f.obj.Has(key) {
		return nil
	}
	return listField(f, parseSectionBlock, key)
}

func (v *Validator) parsePayload(value any, path string) (types.ParsedResumePayload, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.ParsedResumePayload{}, err
	}

	p := types.ParsedResumePayload{
		Version: enumField(f, "version", contractVersions, Options{}),
	}
	if f.err == nil {
		p.ResumeData, f.err = v.parseResumeData(f.obj.Value("resumeData"), f.at("resumeData"))
	}
	if f.err == nil {
		p.Source, f.err = v.parseSourceMeta(f.obj.Value("source"), f.at("source"))
	}
	p.Notes = listField(f, StringItem, "notes")
	p.Sections = sectionsField(f, "sections")
	if f.err == nil {
		p.SectionPresence, f.err = parseSectionPresence(f.obj.Value("sectionPresence"), f.at("sectionPresence"))
	}
	p.CustomSections = sectionsField(f, "customSections")
	if f.err != nil {
		return types.ParsedResumePayload{}, f.err
	}
	return p, nil
}

func (v *Validator) parseParsedMeta(value any, path string) (types.ParsedMeta, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.ParsedMeta{}, err
	}
	if f.obj.Has("resumeData") || f.obj.Has("source") {
		return types.ParsedMeta{}, schemaErr(path, "Expected parsed metadata only")
	}

	m := types.ParsedMeta{
		Version:  enumField(f, "version", contractVersions, Options{}),
		Parser:   f.str("parser"),
		ParsedAt: f.str("parsedAt"),
		Notes:    listField(f, StringItem, "notes"),
		Sections: sectionsField(f, "sections"),
	}
	if f.err == nil {
		m.SectionPresence, f.err = parseSectionPresence(f.obj.Value("sectionPresence"), f.at("sectionPresence"))
	}
	m.CustomSections = sectionsField(f, "customSections")
	if f.err != nil {
		return types.ParsedMeta{}, f.err
	}
	return m, nil
}

func (v *Validator) parseReasoning(value any, path string) (types.ReasoningPayload, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.ReasoningPayload{}, err
	}

	r := types.ReasoningPayload{
		Version:    enumField(f, "version", reasoningVersions, Options{}),
		Summary:    f.str("summary"),
		Highlights: listField(f, StringItem, "highlights"),
		Warnings:   listField(f, StringItem, "warnings"),
	}
	if f.err != nil {
		return types.ReasoningPayload{}, f.err
	}
	return r, nil
}

func (v *Validator) parseWorkspace(value any, path string) (types.Workspace, error) {
	f, err := readObject(value, path)
	if err != nil {
		return types.Workspace{}, err
	}

	ws := types.Workspace{
		Version: enumField(f, "version", contractVersions, Options{}),
	}
	if f.err != nil {
		return types.Workspace{}, f.err
	}

	analysis, err := readObject(f.obj.Value("analysis"), f.at("analysis"))
	if err != nil {
		return types.Workspace{}, err
	}
	ai, err := readObject(analysis.obj.Value("ai"), analysis.at("ai"))
	if err != nil {
		return types.Workspace{}, err
	}
	timestamps, err := readObject(f.obj.Value("timestamps"), f.at("timestamps"))
	if err != nil {
		return types.Workspace{}, err
	}

	if ws.Source, err = v.parseSourceMeta(f.obj.Value("source"), f.at("source")); err != nil {
		return types.Workspace{}, err
	}
	if ws.ResumeData, err = v.parseResumeData(f.obj.Value("resumeData"), f.at("resumeData")); err != nil {
		return types.Workspace{}, err
	}

	if raw, present := analysis.obj.Get("resultId"); !present || raw != nil {
		id := analysis.required("resultId", 0)
		if analysis.err != nil {
			return types.Workspace{}, analysis.err
		}
		ws.Analysis.ResultID = &id
	}

	if raw := analysis.obj.Value("lastAnalysisResult"); raw != nil {
		snap, err := v.parseAnalysisSnapshot(raw, analysis.at("lastAnalysisResult"))
		if err != nil {
			return types.Workspace{}, err
		}
		ws.Analysis.LastAnalysisResult = &snap
	}

	ws.Analysis.BulletChanges = listField(analysis, parseBulletChange, "bulletChanges")
	if analysis.err != nil {
		return types.Workspace{}, analysis.err
	}

	if raw := ai.obj.Value("parsed"); raw != nil {
		meta, err := v.parseParsedMeta(raw, ai.at("parsed"))
		if err != nil {
			return types.Workspace{}, err
		}
		ws.Analysis.AI.Parsed = &meta
	}
	if raw := ai.obj.Value("reasoning"); raw != nil {
		reasoning, err := v.parseReasoning(raw, ai.at("reasoning"))
		if err != nil {
			return types.Workspace{}, err
		}
		ws.Analysis.AI.Reasoning = &reasoning
	}

	ws.Timestamps = types.WorkspaceTimestamps{
		CreatedAt: timestamps.required("createdAt", 0),
		UpdatedAt: timestamps.required("updatedAt", 0),
	}
	if timestamps.err != nil {
		return types.Workspace{}, timestamps.err
	}
	return ws, nil
}

package contract

import (
	"time"

	"github.com/jonathan/resume-contract/internal/ids"
	"github.com/jonathan/resume-contract/internal/types"
)

// TimestampLayout formats timestamps as UTC ISO-8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DefaultTemplate is the template tag stamped on new resumes.
const DefaultTemplate = "classic"

// DefaultParser names documents built by hand rather than by a model.
const DefaultParser = "manual"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Factory builds valid empty documents and merges caller overrides onto
// them. Zero-valued override fields keep the default; nil slices keep the
// default empty list. Every result is re-walked by the strict validator.
type Factory struct {
	ids       ids.Generator
	now       func() time.Time
	validator *Validator
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithIDs sets the id generator used for defaults and by the validator.
func WithIDs(gen ids.Generator) FactoryOption {
	return func(f *Factory) {
		f.ids = gen
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

// NewFactory returns a factory using random ids and the wall clock unless
// overridden.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{ids: ids.UUID(), now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	f.validator = NewValidator(f.ids)
	return f
}

// DefaultFactory uses random ids and the wall clock.
var DefaultFactory = NewFactory()

// Validator returns the strict validator the factory checks its output with.
func (f *Factory) Validator() *Validator {
	return f.validator
}

// Now returns the factory clock's current time formatted as a timestamp.
func (f *Factory) Now() string {
	return FormatTimestamp(f.now())
}

// CreateEmptyResumeData builds an empty resume merged with overrides.
func (f *Factory) CreateEmptyResumeData(overrides types.ResumeData) (types.ResumeData, error) {
	return f.validator.ResumeData().Validate(f.mergeResumeData(overrides))
}

// CreateEmptySourceMeta builds text source metadata merged with overrides.
func (f *Factory) CreateEmptySourceMeta(overrides types.SourceMeta) (types.SourceMeta, error) {
	return f.validator.SourceMeta().Validate(f.mergeSourceMeta(overrides))
}

// CreateEmptyWorkspace builds an empty version "2" workspace merged with
// overrides. Source, resume data, analysis and timestamps merge field by
// field.
func (f *Factory) CreateEmptyWorkspace(overrides types.Workspace) (types.Workspace, error) {
	timestamp := f.Now()

	ws := types.Workspace{
		Version:    orDefault(overrides.Version, types.ContractVersion),
		Source:     f.mergeSourceMeta(overrides.Source),
		ResumeData: f.mergeResumeData(overrides.ResumeData),
		Analysis: types.WorkspaceAnalysis{
			ResultID:           overrides.Analysis.ResultID,
			LastAnalysisResult: overrides.Analysis.LastAnalysisResult,
			BulletChanges:      overrides.Analysis.BulletChanges,
			AI:                 overrides.Analysis.AI,
		},
		Timestamps: types.WorkspaceTimestamps{
			CreatedAt: orDefault(overrides.Timestamps.CreatedAt, timestamp),
			UpdatedAt: orDefault(overrides.Timestamps.UpdatedAt, timestamp),
		},
	}
	if ws.Analysis.BulletChanges == nil {
		ws.Analysis.BulletChanges = []types.BulletChange{}
	}

	return f.validator.Workspace().Validate(ws)
}

// WorkspaceFromPayload starts a workspace from a parse result. The payload's
// source and resume become the workspace's; its envelope is kept as the
// parsed AI metadata.
func (f *Factory) WorkspaceFromPayload(p types.ParsedResumePayload) (types.Workspace, error) {
	parsed := types.ParsedMeta{
		Version:         types.ContractVersion,
		Parser:          p.Source.Parser,
		ParsedAt:        p.Source.ParsedAt,
		Notes:           p.Notes,
		Sections:        p.Sections,
		SectionPresence: p.SectionPresence,
		CustomSections:  p.CustomSections,
	}
	return f.CreateEmptyWorkspace(types.Workspace{
		Source:     p.Source,
		ResumeData: p.ResumeData,
		Analysis: types.WorkspaceAnalysis{
			AI: types.WorkspaceAI{Parsed: &parsed},
		},
	})
}

func (f *Factory) mergeResumeData(o types.ResumeData) types.ResumeData {
	timestamp := f.Now()

	metadata := types.Metadata{
		ImportedAt:   timestamp,
		LastModified: timestamp,
		TemplateUsed: DefaultTemplate,
	}
	if o.Metadata != nil {
		metadata.ImportedAt = orDefault(o.Metadata.ImportedAt, metadata.ImportedAt)
		metadata.LastModified = orDefault(o.Metadata.LastModified, metadata.LastModified)
		metadata.TemplateUsed = orDefault(o.Metadata.TemplateUsed, metadata.TemplateUsed)
		metadata.LastAnalyzed = o.Metadata.LastAnalyzed
		metadata.ATSScore = o.Metadata.ATSScore
	}

	out := types.ResumeData{
		ID:             o.ID,
		Metadata:       &metadata,
		Basics:         o.Basics,
		Summary:        o.Summary,
		Education:      o.Education,
		Work:           o.Work,
		Projects:       o.Projects,
		Awards:         o.Awards,
		Skills:         o.Skills,
		Languages:      o.Languages,
		CustomSections: o.CustomSections,
		SectionOrder:   o.SectionOrder,
		Versions:       o.Versions,
	}
	if out.ID == "" {
		out.ID = f.ids.New("resume")
	}
	return out
}

func (f *Factory) mergeSourceMeta(o types.SourceMeta) types.SourceMeta {
	timestamp := f.Now()
	return types.SourceMeta{
		InputType:  types.InputType(orDefault(string(o.InputType), string(types.InputTypeText))),
		RawText:    o.RawText,
		FileName:   o.FileName,
		ImportedAt: orDefault(o.ImportedAt, timestamp),
		ParsedAt:   orDefault(o.ParsedAt, timestamp),
		Parser:     orDefault(o.Parser, DefaultParser),
	}
}

// CreateEmptyResumeData builds an empty resume with DefaultFactory.
func CreateEmptyResumeData(overrides types.ResumeData) (types.ResumeData, error) {
	return DefaultFactory.CreateEmptyResumeData(overrides)
}

// CreateEmptySourceMeta builds source metadata with DefaultFactory.
func CreateEmptySourceMeta(overrides types.SourceMeta) (types.SourceMeta, error) {
	return DefaultFactory.CreateEmptySourceMeta(overrides)
}

// CreateEmptyWorkspace builds an empty workspace with DefaultFactory.
func CreateEmptyWorkspace(overrides types.Workspace) (types.Workspace, error) {
	return DefaultFactory.CreateEmptyWorkspace(overrides)
}

// WorkspaceFromPayload builds a workspace with DefaultFactory.
func WorkspaceFromPayload(p types.ParsedResumePayload) (types.Workspace, error) {
	return DefaultFactory.WorkspaceFromPayload(p)
}

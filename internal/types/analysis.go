package types

// Seniority is the inferred seniority of the target role.
type Seniority string

const (
	SeniorityJunior    Seniority = "junior"
	SeniorityMid       Seniority = "mid"
	SenioritySenior    Seniority = "senior"
	SeniorityLead      Seniority = "lead"
	SeniorityExecutive Seniority = "executive"
)

// Seniorities lists every seniority level.
var Seniorities = []Seniority{SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead, SeniorityExecutive}

// Fit grades how well a resume matches the target role.
type Fit string

const (
	FitPoor  Fit = "poor"
	FitFair  Fit = "fair"
	FitGood  Fit = "good"
	FitGreat Fit = "great"
)

// Fits lists every fit grade.
var Fits = []Fit{FitPoor, FitFair, FitGood, FitGreat}

// AnalysisStatus is the lifecycle state of an analysis run.
type AnalysisStatus string

const (
	AnalysisStatusCompleted  AnalysisStatus = "completed"
	AnalysisStatusProcessing AnalysisStatus = "processing"
	AnalysisStatusFailed     AnalysisStatus = "failed"
)

// AnalysisStatuses lists every analysis status.
var AnalysisStatuses = []AnalysisStatus{AnalysisStatusCompleted, AnalysisStatusProcessing, AnalysisStatusFailed}

// Priority ranks keyword gaps and risk flags.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// BulletChangeType describes how a bullet was edited.
type BulletChangeType string

const (
	BulletChangeAdded    BulletChangeType = "added"
	BulletChangeRemoved  BulletChangeType = "removed"
	BulletChangeModified BulletChangeType = "modified"
)

// BulletChangeTypes lists every bullet change type.
var BulletChangeTypes = []BulletChangeType{BulletChangeAdded, BulletChangeRemoved, BulletChangeModified}

// SuggestionSection is the resume area a rewrite suggestion applies to.
type SuggestionSection string

const (
	SuggestionSectionExperience SuggestionSection = "experience"
	SuggestionSectionProjects   SuggestionSection = "projects"
	SuggestionSectionSkills     SuggestionSection = "skills"
	SuggestionSectionSummary    SuggestionSection = "summary"
)

// SuggestionSections lists every suggestion section.
var SuggestionSections = []SuggestionSection{
	SuggestionSectionExperience,
	SuggestionSectionProjects,
	SuggestionSectionSkills,
	SuggestionSectionSummary,
}

// CheckStatus is the outcome of an ATS check.
type CheckStatus string

const (
	CheckStatusPass    CheckStatus = "pass"
	CheckStatusWarning CheckStatus = "warning"
	CheckStatusFail    CheckStatus = "fail"
)

// CheckStatuses lists every ATS check status.
var CheckStatuses = []CheckStatus{CheckStatusPass, CheckStatusWarning, CheckStatusFail}

// AnalysisSnapshot is the stored result of matching a resume to a role.
type AnalysisSnapshot struct {
	ID                 string              `json:"id"`
	CreatedAt          string              `json:"createdAt"`
	MatchScore         float64             `json:"matchScore"`
	RoleSeniority      Seniority           `json:"roleSeniority"`
	OverallFit         Fit                 `json:"overallFit"`
	TargetRole         string              `json:"targetRole"`
	Company            string              `json:"company,omitempty"`
	Status             AnalysisStatus      `json:"status"`
	KeywordGaps        []KeywordGap        `json:"keywordGaps"`
	BulletChanges      []BulletChange      `json:"bulletChanges"`
	RewriteSuggestions []RewriteSuggestion `json:"rewriteSuggestions"`
	ATSChecks          []ATSCheck          `json:"atsChecks"`
	RiskFlags          []RiskFlag          `json:"riskFlags"`
	RecommendedEdits   []RecommendedEdit   `json:"recommendedEdits"`
}

// KeywordGap is a job keyword missing from the resume.
type KeywordGap struct {
	Keyword          string   `json:"keyword"`
	Importance       Priority `json:"importance"`
	SuggestedPhrases []string `json:"suggestedPhrases"`
	Category         string   `json:"category"`
}

// BulletChange records one bullet edit.
type BulletChange struct {
	Section  string           `json:"section"`
	Original string           `json:"original"`
	Improved string           `json:"improved"`
	Type     BulletChangeType `json:"type"`
}

// RewriteSuggestion proposes replacement text for part of the resume.
type RewriteSuggestion struct {
	ID           string            `json:"id"`
	Section      SuggestionSection `json:"section"`
	OriginalText string            `json:"originalText"`
	ImprovedText string            `json:"improvedText"`
	Rationale    string            `json:"rationale"`
	ATSNotes     string            `json:"atsNotes"`
}

// ATSCheck is a single applicant-tracking-system compatibility check.
type ATSCheck struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
	Tip     string      `json:"tip,omitempty"`
}

// RiskFlag is a potential concern a reviewer may raise.
type RiskFlag struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Priority `json:"severity"`
}

// RecommendedEdit is a checklist item for the resume owner.
type RecommendedEdit struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

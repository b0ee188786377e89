package types

// Workspace is the persisted envelope around a resume and its analysis
// history.
type Workspace struct {
	Version    string              `json:"version"`
	Source     SourceMeta          `json:"source"`
	ResumeData ResumeData          `json:"resumeData"`
	Analysis   WorkspaceAnalysis   `json:"analysis"`
	Timestamps WorkspaceTimestamps `json:"timestamps"`
}

// WorkspaceAnalysis holds the latest analysis and AI metadata. Nil pointers
// serialize as null.
type WorkspaceAnalysis struct {
	ResultID           *string           `json:"resultId"`
	LastAnalysisResult *AnalysisSnapshot `json:"lastAnalysisResult"`
	BulletChanges      []BulletChange    `json:"bulletChanges"`
	AI                 WorkspaceAI       `json:"ai"`
}

// WorkspaceAI holds model-produced metadata.
type WorkspaceAI struct {
	Parsed    *ParsedMeta       `json:"parsed"`
	Reasoning *ReasoningPayload `json:"reasoning"`
}

// WorkspaceTimestamps records workspace lifecycle times.
type WorkspaceTimestamps struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

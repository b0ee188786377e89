package types

// SourceMeta describes where a resume came from and how it was parsed.
type SourceMeta struct {
	InputType  InputType `json:"inputType"`
	RawText    string    `json:"rawText"`
	FileName   string    `json:"fileName,omitempty"`
	ImportedAt string    `json:"importedAt"`
	ParsedAt   string    `json:"parsedAt,omitempty"`
	Parser     string    `json:"parser,omitempty"`
}

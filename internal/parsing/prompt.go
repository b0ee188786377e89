package parsing

import (
	"github.com/jonathan/resume-contract/internal/prompts"
	"github.com/jonathan/resume-contract/internal/types"
)

// PromptInput carries the values substituted into the parse prompt.
type PromptInput struct {
	ResumeText   string
	InputType    types.InputType
	FileName     string
	RepairReason string
}

// BuildPrompt renders the parse prompt. A non-empty RepairReason appends a
// repair note quoting the previous failure.
func BuildPrompt(in PromptInput) string {
	repairNote := ""
	if in.RepairReason != "" {
		repairNote = prompts.Format(prompts.MustGet(prompts.ParsingFile, prompts.KeyRepairNote), map[string]string{
			"Reason": in.RepairReason,
		})
	}

	return prompts.Format(prompts.MustGet(prompts.ParsingFile, prompts.KeyParseResume), map[string]string{
		"InputType":  string(in.InputType),
		"FileName":   in.FileName,
		"RepairNote": repairNote,
		"ResumeText": in.ResumeText,
	})
}

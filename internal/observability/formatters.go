// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-contract/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes. fmt's %-*s counts bytes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// moreLine reports how many items were left out of a list.
func moreLine(sb *strings.Builder, total int, noun string) {
	if total > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more %s\n", total-maxItemsToShow, noun)
	}
}

// PrintPayload outputs a human-readable summary of a parsed payload.
func (p *Printer) PrintPayload(payload *types.ParsedResumePayload) {
	if payload == nil {
		return
	}

	var sb strings.Builder
	src := payload.Source
	fmt.Fprintf(&sb, "Input:    %s", src.InputType)
	if src.FileName != "" {
		fmt.Fprintf(&sb, " (%s)", src.FileName)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Parser:   %s\n", src.Parser)
	fmt.Fprintf(&sb, "Parsed:   %s\n", src.ParsedAt)
	fmt.Fprintf(&sb, "Text:     %d chars\n", utf8.RuneCountInString(src.RawText))

	if len(payload.Notes) > 0 {
		sb.WriteString("\nNotes:\n")
		for _, note := range payload.Notes {
			fmt.Fprintf(&sb, "  • %s\n", note)
		}
	}

	p.printBox("PARSED RESUME PAYLOAD", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintResumeData(&payload.ResumeData)
	if payload.HasSections() {
		p.PrintSections(payload.Sections, payload.SectionPresence)
	}
}

// PrintResumeData outputs the structured résumé content.
func (p *Printer) PrintResumeData(resume *types.ResumeData) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	if b := resume.Basics; b != nil {
		if b.Name != "" {
			fmt.Fprintf(&sb, "Name:     %s\n", b.Name)
		}
		if b.Label != "" {
			fmt.Fprintf(&sb, "Label:    %s\n", b.Label)
		}
		if b.Email != "" {
			fmt.Fprintf(&sb, "Email:    %s\n", b.Email)
		}
	}
	if resume.Summary != "" {
		fmt.Fprintf(&sb, "Summary:  %s\n", resume.Summary)
	}

	if len(resume.Work) > 0 {
		sb.WriteString("\nWork:\n")
		for i, w := range resume.Work {
			if i == maxItemsToShow {
				break
			}
			fmt.Fprintf(&sb, "  • %s", w.Position)
			if w.Company != "" {
				fmt.Fprintf(&sb, " @ %s", w.Company)
			}
			fmt.Fprintf(&sb, " (%d highlights)\n", len(w.Highlights))
		}
		moreLine(&sb, len(resume.Work), "positions")
	}

	if len(resume.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		byCategory := map[string][]string{}
		var categories []string
		for _, s := range resume.Skills {
			if _, ok := byCategory[s.Category]; !ok {
				categories = append(categories, s.Category)
			}
			byCategory[s.Category] = append(byCategory[s.Category], s.Name)
		}
		for _, c := range categories {
			fmt.Fprintf(&sb, "  %s: %s\n", c, strings.Join(byCategory[c], ", "))
		}
	}

	fmt.Fprintf(&sb, "\nEducation: %d  Projects: %d  Awards: %d  Languages: %d  Custom: %d",
		len(resume.Education), len(resume.Projects), len(resume.Awards),
		len(resume.Languages), len(resume.CustomSections))

	p.printBox("RESUME DATA", sb.String())
}

// PrintSections outputs detected section blocks and the presence flags.
func (p *Printer) PrintSections(sections []types.SectionBlock, presence *types.SectionPresence) {
	if len(sections) == 0 && presence == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Detected %d sections:\n", len(sections))
	for i, s := range sections {
		if i == maxItemsToShow {
			break
		}
		fmt.Fprintf(&sb, "  • %s [%s → %s] %d lines\n", s.Title, s.Kind, s.CanonicalTarget, len(s.Lines))
	}
	moreLine(&sb, len(sections), "sections")

	if presence != nil {
		var present []string
		for _, target := range types.CanonicalTargets {
			if presence.Get(target) {
				present = append(present, string(target))
			}
		}
		if len(present) == 0 {
			present = []string{"none"}
		}
		fmt.Fprintf(&sb, "\nPresent: %s", strings.Join(present, ", "))
	}

	p.printBox("SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the result of validating one document.
func (p *Printer) PrintValidation(document string, err error) {
	if err == nil {
		p.printBox("VALIDATION", fmt.Sprintf("✓ %s is valid", document))
		return
	}
	content := fmt.Sprintf("✗ %s is invalid\n\n%s", document, strings.TrimSpace(err.Error()))
	p.printBox("VALIDATION", content)
}

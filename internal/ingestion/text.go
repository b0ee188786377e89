package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-contract/internal/fetch"
	"github.com/jonathan/resume-contract/internal/types"
)

var (
	innerSpaceRE  = regexp.MustCompile(`[ \t]+`)
	blankRunRE    = regexp.MustCompile(`\n\n\n+`)
	htmlExtension = map[string]bool{".html": true, ".htm": true, ".xhtml": true}
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankRunRE.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims trailing blanks and collapses inner runs of spaces.
// Leading indentation is kept.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	leading := len(line) - len(trimmed)
	content := innerSpaceRE.ReplaceAllString(trimmed, " ")
	if leading > 0 {
		return strings.Repeat(" ", leading) + content
	}
	return content
}

// IsHTMLFile reports whether path names an HTML document.
func IsHTMLFile(path string) bool {
	return htmlExtension[strings.ToLower(filepath.Ext(path))]
}

// IngestFromFile reads a résumé file. HTML files are reduced to their main
// text and PDF files to their page text first. The file's base name is
// recorded as the source file name.
func IngestFromFile(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	switch {
	case IsHTMLFile(path):
		text, err = fetch.ExtractMainText(text, fetch.DefaultTextSelectors())
		if err != nil {
			return nil, fmt.Errorf("failed to extract HTML text: %w", err)
		}
	case IsPDFFile(path):
		text, err = ExtractPDFText(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	src, err := newSource(text, types.InputTypeFile, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Output file names written by WriteOutput.
const (
	PayloadFileName  = "resume.payload.json"
	MetadataFileName = "resume.meta.json"
)

// WriteOutput writes a parsed payload and the source metadata to outDir.
func WriteOutput(outDir string, payload any, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, PayloadFileName), payloadJSON, 0644); err != nil {
		return fmt.Errorf("failed to write payload file: %w", err)
	}

	if metadata == nil {
		return nil
	}
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, MetadataFileName), metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}

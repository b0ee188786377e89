package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-contract/internal/observability"
	"github.com/jonathan/resume-contract/internal/schemas"
)

func newValidateCmd(a *app) *cobra.Command {
	var docType string
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate payload, workspace or resume data JSON files",
		Long:  "Check documents with the strict contract validators and then against the embedded JSON Schemas. Exits non-zero when any file is invalid.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := schemas.Document(docType)
			printer := observability.NewPrinter(cmd.OutOrStdout())

			invalid := 0
			for _, path := range args {
				err := a.validateFile(doc, path)
				printer.PrintValidation(filepath.Base(path), err)
				if err != nil {
					invalid++
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d documents are invalid", invalid, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", string(schemas.DocumentParsedPayload), "Document type: parsed_payload, workspace or resume_data")
	return cmd
}

// validateFile runs both gates: the strict validator first, then the JSON
// Schema over its canonical output.
func (a *app) validateFile(doc schemas.Document, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	v := a.normalizer.Factory().Validator()
	var canonical any
	switch doc {
	case schemas.DocumentParsedPayload:
		canonical, err = v.ParsedPayload().ParseJSON(data)
	case schemas.DocumentWorkspace:
		canonical, err = v.Workspace().ParseJSON(data)
	case schemas.DocumentResumeData:
		canonical, err = v.ResumeData().ParseJSON(data)
	default:
		return fmt.Errorf("unknown document type %q", doc)
	}
	if err != nil {
		return err
	}

	out, err := json.Marshal(canonical)
	if err != nil {
		return fmt.Errorf("failed to marshal canonical document: %w", err)
	}
	return schemas.ValidateDocument(doc, out)
}


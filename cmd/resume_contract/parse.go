package main

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-contract/internal/fetch"
	"github.com/jonathan/resume-contract/internal/ingestion"
	"github.com/jonathan/resume-contract/internal/observability"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/types"
)

type parseOptions struct {
	file      string
	text      string
	url       string
	inputType string
	browser   bool
	out       string
	save      bool
	summary   bool
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a résumé into a version 2 payload",
		Long:  "Parse résumé text from a file, a string or a profile URL with Gemini, repairing invalid model output, and print or write the validated payload.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runParse(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to a résumé text, HTML or PDF file")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Résumé text")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Profile or résumé page URL")
	cmd.Flags().StringVar(&opts.inputType, "input-type", "", "Override the input type (file, text, linkedin)")
	cmd.Flags().BoolVar(&opts.browser, "browser", false, "Render short pages with a headless browser (with --url)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Directory for resume.payload.json and resume.meta.json (default: stdout)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store the payload and a new workspace in the database")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a human-readable summary to stderr")
	cmd.MarkFlagsMutuallyExclusive("file", "text", "url")
	cmd.MarkFlagsOneRequired("file", "text", "url")

	return cmd
}

func (a *app) ingest(ctx context.Context, opts parseOptions) (*ingestion.Source, error) {
	var (
		src *ingestion.Source
		err error
	)
	switch {
	case opts.file != "":
		src, err = ingestion.IngestFromFile(opts.file)
	case opts.url != "":
		urlOpts := ingestion.URLOptions{Logger: a.logger}
		if opts.browser || a.cfg.UseBrowser {
			urlOpts.Render = fetch.BrowserRenderer(fetch.DefaultBrowserTimeout, a.logger)
		}
		src, err = ingestion.IngestFromURL(ctx, opts.url, urlOpts)
	default:
		src, err = ingestion.FromText(opts.text)
	}
	if err != nil {
		return nil, err
	}

	if opts.inputType != "" {
		src.InputType = types.InputType(opts.inputType)
		src.Metadata.InputType = src.InputType
	}
	if n := utf8.RuneCountInString(src.Text); n > a.cfg.MaxResumeChars {
		return nil, fmt.Errorf("résumé text has %d chars, more than max_resume_chars (%d)", n, a.cfg.MaxResumeChars)
	}
	return src, nil
}

func (a *app) runParse(cmd *cobra.Command, opts parseOptions) error {
	ctx := cmd.Context()

	src, err := a.ingest(ctx, opts)
	if err != nil {
		return err
	}

	generate, closeModel, err := a.newGenerate(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeModel() }()

	parser := parsing.NewParser(generate,
		parsing.WithMaxAttempts(a.cfg.MaxAttempts),
		parsing.WithParserName(a.cfg.ParserName),
		parsing.WithNormalizer(a.normalizer),
		parsing.WithLogger(a.logger),
	)
	result, err := parser.ParseResume(ctx, src.Request())
	if err != nil {
		var failed *parsing.ParseFailedError
		if errors.As(err, &failed) {
			return fmt.Errorf("parse failed after %d attempts: %w", failed.Attempts, failed.Cause)
		}
		return err
	}

	if opts.out != "" {
		if err := ingestion.WriteOutput(opts.out, result.Payload, src.Metadata); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d attempts)\n", opts.out, result.Attempts)
	} else if err := writeJSON(cmd.OutOrStdout(), result.Payload); err != nil {
		return err
	}

	if opts.summary || a.cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintPayload(&result.Payload)
	}

	if opts.save {
		return a.savePayload(ctx, cmd, result)
	}
	return nil
}

// savePayload stores a workspace built from the payload and records the
// payload against it.
func (a *app) savePayload(ctx context.Context, cmd *cobra.Command, result *parsing.Result) error {
	st, err := a.store(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	ws, err := a.normalizer.Factory().WorkspaceFromPayload(result.Payload)
	if err != nil {
		return fmt.Errorf("failed to build workspace: %w", err)
	}
	rec, err := st.SaveWorkspace(ctx, ws)
	if err != nil {
		return err
	}
	if _, err := st.SavePayload(ctx, &rec.ID, result.Payload, result.Attempts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved workspace %s\n", rec.ID)
	return nil
}

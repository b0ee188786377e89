package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/types"
)

// payloadSuffix names files written by normalize --out.
const payloadSuffix = ".payload.json"

func newNormalizeCmd(a *app) *cobra.Command {
	var (
		out         string
		inputType   string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "normalize FILE...",
		Short: "Map saved model output onto version 2 payloads",
		Long:  "Normalize model responses saved to files (fenced or bare JSON) into validated payloads without calling the model. Files are processed concurrently.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			payloads, err := a.normalizeFiles(cmd, args, types.InputType(inputType), concurrency)
			if err != nil {
				return err
			}
			if out == "" {
				return writeJSON(cmd.OutOrStdout(), payloads)
			}
			return writePayloads(cmd, out, args, payloads)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Directory for <name>.payload.json files (default: JSON array on stdout)")
	cmd.Flags().StringVar(&inputType, "input-type", string(types.InputTypeText), "Input type recorded in source metadata")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Files normalized in parallel")
	return cmd
}

// normalizeFiles returns payloads in argument order. The first failure
// cancels the remaining files.
func (a *app) normalizeFiles(cmd *cobra.Command, paths []string, inputType types.InputType, concurrency int) ([]types.ParsedResumePayload, error) {
	payloads := make([]types.ParsedResumePayload, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			payload, err := parsing.MapModelOutput(a.normalizer, string(raw), parsing.MapInput{
				InputType:  inputType,
				FileName:   filepath.Base(path),
				ParserName: a.cfg.ParserName,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			payloads[i] = payload
			a.logger.Debug("normalized file", "file", path, "sections", len(payload.Sections))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return payloads, nil
}

func writePayloads(cmd *cobra.Command, outDir string, paths []string, payloads []types.ParsedResumePayload) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + payloadSuffix
		target := filepath.Join(outDir, name)

		f, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}
		err = writeJSON(f, payloads[i])
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", target)
	}
	return nil
}

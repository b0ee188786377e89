package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-contract/internal/config"
	"github.com/jonathan/resume-contract/internal/db"
	"github.com/jonathan/resume-contract/internal/llm"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/server"
)

// store is the persistence the CLI needs. *db.DB implements it.
type store interface {
	server.WorkspaceStore
	Close()
}

// app holds state shared by every command. The factory fields are replaced
// in tests.
type app struct {
	configPath string
	apiKey     string
	dbURL      string
	verbose    bool

	cfg        config.Config
	logger     *slog.Logger
	normalizer *normalize.Normalizer

	getenv      func(string) string
	newGenerate func(ctx context.Context, cfg config.Config) (parsing.GenerateFunc, func() error, error)
	openStore   func(ctx context.Context, databaseURL string) (store, error)
}

func newApp() *app {
	return &app{
		logger:      slog.Default(),
		normalizer:  normalize.Default,
		getenv:      os.Getenv,
		newGenerate: geminiGenerate,
		openStore:   postgresStore,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "resume_contract",
		Short:         "Parse, normalize and validate résumé documents",
		Long:          "resume_contract turns résumé text into validated version 2 payloads with Gemini, checks payloads and workspaces against the canonical contract, and stores workspaces in PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to JSON or YAML config file")
	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	root.PersistentFlags().StringVar(&a.dbURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging and payload summaries")

	root.AddCommand(
		newParseCmd(a),
		newNormalizeCmd(a),
		newValidateCmd(a),
		newWorkspaceCmd(a),
		newServeCmd(a),
	)
	return root
}

// loadConfig resolves settings: config file, then environment, then flags,
// then built-in defaults.
func (a *app) loadConfig(stderr io.Writer) error {
	var cfg config.Config
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv(a.getenv)

	if a.apiKey != "" {
		cfg.APIKey = a.apiKey
	}
	if a.dbURL != "" {
		cfg.DatabaseURL = a.dbURL
	}
	if a.verbose {
		cfg.Verbose = true
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	return nil
}

// store opens the configured database.
func (a *app) store(ctx context.Context) (store, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}
	return a.openStore(ctx, a.cfg.DatabaseURL)
}

func geminiGenerate(ctx context.Context, cfg config.Config) (parsing.GenerateFunc, func() error, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	llmCfg := llm.ConfigFromEnv()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.ParseTier, cfg.Model)
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.APIKey, llm.ParseTier)
	if err != nil {
		return nil, nil, err
	}
	return parsing.FromClient(client), client.Close, nil
}

func postgresStore(ctx context.Context, databaseURL string) (store, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

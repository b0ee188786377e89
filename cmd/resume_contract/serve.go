package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/server"
	"github.com/jonathan/resume-contract/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Serve the parse, normalize, validate and workspace routes. /parse needs a Gemini API key and the workspace routes need a database; without them those routes answer 503.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			opts := []server.Option{
				server.WithNormalizer(a.normalizer),
				server.WithLogger(a.logger),
			}

			if a.cfg.APIKey != "" {
				generate, closeModel, err := a.newGenerate(ctx, a.cfg)
				if err != nil {
					return err
				}
				defer func() { _ = closeModel() }()
				opts = append(opts, server.WithParser(parsing.NewParser(generate,
					parsing.WithMaxAttempts(a.cfg.MaxAttempts),
					parsing.WithParserName(a.cfg.ParserName),
					parsing.WithNormalizer(a.normalizer),
					parsing.WithLogger(a.logger),
				)))
			} else {
				a.logger.Warn("no Gemini API key configured, /parse is disabled")
			}

			if a.cfg.DatabaseURL != "" {
				st, err := a.store(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
				opts = append(opts, server.WithStore(st))
			} else {
				a.logger.Warn("no database configured, workspace routes are disabled")
			}

			srv := server.New(server.Config{
				Port:      a.cfg.Port,
				RateLimit: ratelimit.LoadConfig(),
			}, opts...)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: config or PORT, else 8080)")
	return cmd
}

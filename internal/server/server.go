// Package server provides the HTTP API for parsing, normalizing, validating
// and storing résumé documents.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-contract/internal/db"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/server/middleware"
	"github.com/jonathan/resume-contract/internal/server/ratelimit"
	"github.com/jonathan/resume-contract/internal/types"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 1 << 20

// ResumeParser turns résumé text into a validated payload.
type ResumeParser interface {
	ParseResume(ctx context.Context, req types.ParseRequest) (*parsing.Result, error)
}

// WorkspaceStore persists workspaces and parse results. *db.DB implements
// it.
type WorkspaceStore interface {
	SaveWorkspace(ctx context.Context, ws types.Workspace) (*db.WorkspaceRecord, error)
	GetWorkspace(ctx context.Context, id uuid.UUID) (*db.WorkspaceRecord, error)
	UpdateWorkspace(ctx context.Context, id uuid.UUID, ws types.Workspace) (*db.WorkspaceRecord, error)
	DeleteWorkspace(ctx context.Context, id uuid.UUID) error
	ListWorkspaces(ctx context.Context, limit int) ([]db.WorkspaceSummary, error)
	SavePayload(ctx context.Context, workspaceID *uuid.UUID, p types.ParsedResumePayload, attempts int) (*db.PayloadRecord, error)
}

// Config holds server configuration
type Config struct {
	Port         int
	MaxBodyBytes int64
	RateLimit    *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	parser       ResumeParser
	store        WorkspaceStore
	normalizer   *normalize.Normalizer
	rateLimiter  *ratelimit.Limiter
	logger       *slog.Logger
	maxBodyBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithParser enables POST /parse.
func WithParser(p ResumeParser) Option {
	return func(s *Server) { s.parser = p }
}

// WithStore enables the workspace routes and parse history.
func WithStore(store WorkspaceStore) Option {
	return func(s *Server) { s.store = store }
}

// WithNormalizer sets the normalizer behind /normalize and workspace
// creation.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Server) { s.normalizer = n }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a server. Routes whose dependency is not configured answer
// 503.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		normalizer:   normalize.Default,
		logger:       slog.Default(),
		maxBodyBytes: cfg.MaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /normalize", s.handleNormalize)
	mux.HandleFunc("POST /validate/payload", s.handleValidatePayload)
	mux.HandleFunc("POST /validate/workspace", s.handleValidateWorkspace)

	mux.HandleFunc("GET /workspaces", s.handleListWorkspaces)
	mux.HandleFunc("POST /workspaces", s.handleCreateWorkspace)
	mux.HandleFunc("GET /workspaces/{id}", s.handleGetWorkspace)
	mux.HandleFunc("PUT /workspaces/{id}", s.handleUpdateWorkspace)
	mux.HandleFunc("DELETE /workspaces/{id}", s.handleDeleteWorkspace)

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, notFound("Route not found."))
	})

	var h http.Handler = mux
	h = s.withRateLimit(h)
	h = middleware.CORS(h)
	h = middleware.Recover(s.logger, func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, toAPIError(errors.New("panic")))
	})(h)
	h = middleware.Logging(s.logger)(h)
	s.handler = middleware.RequestID(h)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // model calls with repair attempts
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withRateLimit rejects requests over the client's limit with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP without port.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	details := map[string]any{"limit": info.Limit, "remaining": info.Remaining}
	if !info.ResetTime.IsZero() {
		details["resetAt"] = info.ResetTime.UTC().Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		details["retryAfter"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded", slog.Int("limit", info.Limit), slog.Int("remaining", info.Remaining))
	s.writeError(w, &APIError{
		Status:  http.StatusTooManyRequests,
		Code:    CodeRateLimited,
		Message: "Rate limit exceeded. Please try again later.",
		Details: details,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// success writes the {success: true, data} envelope.
func (s *Server) success(w http.ResponseWriter, status int, data any) {
	s.jsonResponse(w, status, map[string]any{"success": true, "data": data})
}

func (s *Server) writeError(w http.ResponseWriter, apiErr *APIError) {
	s.jsonResponse(w, apiErr.Status, ErrorBody{Error: ErrorDetail{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}})
}

// fail logs unexpected errors and writes their envelope.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("requestId", middleware.RequestIDFromContext(r.Context())),
			slog.Any("error", err),
		)
	}
	s.writeError(w, apiErr)
}

func unavailable(what string) *APIError {
	return &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    CodeUnavailable,
		Message: what + " is not configured.",
	}
}

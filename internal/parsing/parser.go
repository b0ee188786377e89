package parsing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/llm"
	"github.com/jonathan/resume-contract/internal/normalize"
	"github.com/jonathan/resume-contract/internal/types"
)

const (
	// DefaultMaxAttempts bounds model calls per parse, the repair attempt
	// included.
	DefaultMaxAttempts = 2
	// SourceGemini labels results and log lines produced by the model.
	SourceGemini = "gemini"
)

// GenerateFunc sends a prompt to a model and returns its raw text.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

// FromClient adapts an llm.Client to a GenerateFunc.
func FromClient(c llm.Client) GenerateFunc {
	return c.Generate
}

// ValidateFunc is the final gate a mapped payload must pass.
type ValidateFunc func(types.ParsedResumePayload) (types.ParsedResumePayload, error)

// Result is a successfully parsed resume.
type Result struct {
	Payload  types.ParsedResumePayload `json:"payload"`
	Source   string                    `json:"source"`
	Attempts int                       `json:"attempts"`
}

// Parser turns resume text into a validated payload by prompting a model,
// mapping its answer and asking it once more with a repair note when the
// answer cannot be used.
type Parser struct {
	generate    GenerateFunc
	validate    ValidateFunc
	maxAttempts int
	parserName  string
	normalizer  *normalize.Normalizer
	logger      *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxAttempts sets how many model calls a parse may make. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(p *Parser) {
		if n >= 1 {
			p.maxAttempts = n
		}
	}
}

// WithParserName overrides the parser name stamped on payload sources.
func WithParserName(name string) Option {
	return func(p *Parser) {
		if name != "" {
			p.parserName = name
		}
	}
}

// WithNormalizer sets the normalizer used to assemble payloads.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Parser) {
		if n != nil {
			p.normalizer = n
		}
	}
}

// WithValidate replaces the final payload gate.
func WithValidate(fn ValidateFunc) Option {
	return func(p *Parser) {
		p.validate = fn
	}
}

// WithLogger sets the logger attempts are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser returns a Parser calling generate.
func NewParser(generate GenerateFunc, opts ...Option) *Parser {
	p := &Parser{
		generate:    generate,
		maxAttempts: DefaultMaxAttempts,
		parserName:  ParserName,
		normalizer:  normalize.Default,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.validate == nil {
		p.validate = p.normalizer.Factory().Validator().ParsedPayload().Validate
	}
	return p
}

// ParseResume validates req and runs the attempt loop. An invalid request
// returns *types.RequestError without calling the model. When every attempt
// fails the error is a *ParseFailedError wrapping the last attempt's error.
func (p *Parser) ParseResume(ctx context.Context, req types.ParseRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if p.generate == nil {
		return nil, &APICallError{Message: "no model configured"}
	}
	req = req.Normalized()

	text := NormalizeInputText(req.ResumeText)
	fileName := req.FileNameValue()

	var lastErr error
	attempt := 0
	for attempt = 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse aborted after %d attempts: %w", attempt-1, err)
		}

		repairReason := ""
		if lastErr != nil {
			repairReason = lastErr.Error()
		}

		result, err := p.attempt(ctx, attemptInput{
			prompt: BuildPrompt(PromptInput{
				ResumeText:   text,
				InputType:    req.InputType,
				FileName:     fileName,
				RepairReason: repairReason,
			}),
			mapInput: MapInput{
				NormalizedText: text,
				InputType:      req.InputType,
				FileName:       fileName,
				ParserName:     p.parserName,
			},
			attempt: attempt,
		})
		if err == nil {
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("parse aborted after %d attempts: %w", attempt, ctxErr)
		}

		lastErr = err
		p.logger.Warn("parse attempt failed",
			slog.String("scope", "parse"),
			slog.String("source", SourceGemini),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		if !IsRepairable(err) {
			break
		}
	}

	return nil, &ParseFailedError{Attempts: min(attempt, p.maxAttempts), Cause: lastErr}
}

type attemptInput struct {
	prompt   string
	mapInput MapInput
	attempt  int
}

func (p *Parser) attempt(ctx context.Context, in attemptInput) (*Result, error) {
	started := time.Now()
	output, err := p.generate(ctx, in.prompt)
	elapsed := time.Since(started)
	if err != nil {
		return nil, &APICallError{Message: "generate content", Cause: err}
	}

	payload, err := MapModelOutput(p.normalizer, output, in.mapInput)
	if err != nil {
		return nil, asValidationError(err)
	}

	validated, err := p.validate(payload)
	if err != nil {
		return nil, asValidationError(err)
	}

	p.logger.Info("parse succeeded",
		slog.String("scope", "parse"),
		slog.String("source", SourceGemini),
		slog.Int("attempts", in.attempt),
		slog.Int64("latencyMs", elapsed.Milliseconds()),
		slog.Int("responseChars", len(output)),
	)

	return &Result{Payload: validated, Source: SourceGemini, Attempts: in.attempt}, nil
}

// asValidationError turns strict-schema failures into *ValidationError and
// leaves every other error unchanged.
func asValidationError(err error) error {
	var schemaErr *contract.SchemaError
	if errors.As(err, &schemaErr) {
		return &ValidationError{Message: schemaErr.Message, Field: schemaErr.Path}
	}
	var extraction *ExtractionError
	var parse *ParseError
	if errors.As(err, &extraction) || errors.As(err, &parse) {
		return err
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return err
	}
	return &ValidationError{Message: err.Error()}
}

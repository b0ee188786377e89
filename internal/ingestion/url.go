package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-contract/internal/fetch"
	"github.com/jonathan/resume-contract/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// Fetch configures the HTTP request. Nil uses fetch.DefaultOptions.
	Fetch *fetch.Options
	// Render re-renders pages whose text is too short. Nil disables the
	// browser fallback.
	Render fetch.Renderer
	Logger *slog.Logger
}

// InputTypeFor maps a profile host to the parse input type.
func InputTypeFor(platform fetch.Platform) types.InputType {
	if platform == fetch.PlatformLinkedIn {
		return types.InputTypeLinkedIn
	}
	return types.InputTypeText
}

// IngestFromURL fetches a profile or résumé page and extracts its text using
// selectors for the detected host. When the text is too short and a
// renderer is configured, the page is rendered in a browser and extracted
// again; a failed render keeps the HTTP text.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (*Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("ingesting URL", slog.String("url", urlStr), slog.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.Debug("extracted text", slog.Int("chars", len(text)))

	rendered := false
	if opts.Render != nil && fetch.ShouldUseBrowser(text) {
		logger.Debug("content too short, rendering in browser",
			slog.Int("chars", len(text)), slog.Int("min", fetch.MinContentLength))

		html, renderErr := opts.Render(ctx, urlStr)
		switch {
		case renderErr != nil:
			logger.Warn("browser rendering failed, using HTTP content", slog.String("error", renderErr.Error()))
		default:
			renderedText, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				logger.Warn("browser content extraction failed", slog.String("error", extractErr.Error()))
			} else {
				text = renderedText
				rendered = true
			}
		}
	}

	src, err := newSource(text, InputTypeFor(platform), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrContentExtractionFailed, urlStr, err)
	}
	src.Metadata.URL = urlStr
	src.Metadata.Platform = string(platform)
	src.Metadata.Rendered = rendered
	return src, nil
}

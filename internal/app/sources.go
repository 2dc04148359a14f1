package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chriscorrea/humanize/internal/classify"
	"github.com/chriscorrea/humanize/internal/extract"
	"github.com/chriscorrea/humanize/internal/segment"
)

// loadCombined reads every source and joins their text with blank lines.
// Failing sources are reported and skipped; it errors only if none produced text.
func (r *Runner) loadCombined(ctx context.Context, cfg Config) (string, error) {
	var combined strings.Builder

	for _, source := range cfg.Sources {
		text, err := r.loadSource(ctx, source, cfg)
		if err != nil {
			r.warn(cfg, "Warning: failed to process source %q: %v\n", source, err)
			continue
		}

		if combined.Len() > 0 {
			combined.WriteString("\n\n")
		}
		combined.WriteString(text)
	}

	if combined.Len() == 0 {
		return "", fmt.Errorf("no content extracted from any source")
	}
	return combined.String(), nil
}

// loadSource fetches one source and returns its prose.
// HTML pages pass through boilerplate filtering unless IncludeAll is set.
func (r *Runner) loadSource(ctx context.Context, source string, cfg Config) (string, error) {
	doc, err := r.Fetcher.Fetch(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}

	var baseURL *url.URL
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		baseURL, _ = url.Parse(source) // nil on error is fine
	}

	opts := extract.Options{Selector: cfg.Selector, IncludeAll: cfg.IncludeAll, BaseURL: baseURL}
	text, err := extract.Text(doc.Body, doc.ContentType, opts)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	isHTML := doc.IsHTML() || (doc.ContentType == "" && extract.IsHTML(doc.Body))
	if isHTML && !cfg.IncludeAll && cfg.Selector == "" {
		kept := classify.NewClassifier().Filter(segment.Paragraphs(text))
		text = strings.Join(kept, "\n\n")
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content extracted")
	}
	return text, nil
}

func (r *Runner) warn(cfg Config, format string, args ...any) {
	if cfg.Quiet {
		return
	}
	fmt.Fprintf(r.Stderr, format, args...)
}

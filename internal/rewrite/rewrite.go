// Package rewrite generates several LLM rewrites of a text and keeps the best one.
//
// Generate issues one completion per candidate at an increasing temperature schedule,
// runs them concurrently, cleans each result with the phrase denoiser, and ranks the
// survivors with the heuristic scorer. Failed completions are logged and skipped; only
// when every completion fails does Generate return ErrAllCompletionsFailed (or, with
// LocalFallback, the local heuristic rewrite instead).
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/chriscorrea/humanize/internal/counter"
	"github.com/chriscorrea/humanize/internal/denoise"
	"github.com/chriscorrea/humanize/internal/humanize"
	"github.com/chriscorrea/humanize/internal/prompt"
	"github.com/chriscorrea/humanize/internal/score"
)

// Defaults for Config fields left at zero.
const (
	DefaultCandidates  = 3
	DefaultConcurrency = 4
	MaxCandidates      = 8
)

// ErrAllCompletionsFailed is returned when no completion produced usable text.
var ErrAllCompletionsFailed = errors.New("all completions failed")

// Request is a single chat completion request.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer produces one completion for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config controls candidate generation.
type Config struct {
	Candidates  int
	Concurrency int
	Style       humanize.Options

	// Denoiser cleans completion output; nil uses the embedded rules.
	Denoiser *denoise.Denoiser

	// Tokens sizes the completion budget; nil estimates from word count.
	Tokens counter.Counter

	// LocalFallback returns the local heuristic rewrite when every completion fails.
	LocalFallback bool

	// Progress, when set, is called after each completion finishes.
	Progress func(done, total int)
}

// Outcome is the selected rewrite and how it was chosen.
type Outcome struct {
	Output    string       `json:"output"`
	Ranked    score.Ranked `json:"ranked"`
	Attempted int          `json:"attempted"`
	Failed    int          `json:"failed"`
	Fallback  bool         `json:"fallback"`
}

// Generate rewrites input with c and returns the lowest-scoring candidate.
func Generate(ctx context.Context, c Completer, input string, cfg Config) (*Outcome, error) {
	cfg = withDefaults(cfg)

	if strings.TrimSpace(input) == "" {
		return &Outcome{}, nil
	}

	requests := buildRequests(input, cfg)
	results := make([]string, len(requests))

	var (
		mu     sync.Mutex
		done   int
		failed int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Concurrency)

	for i, req := range requests {
		i, req := i, req
		eg.Go(func() error {
			text, err := c.Complete(egCtx, req)
			if err == nil {
				text = cfg.Denoiser.Clean(text)
				if text == "" {
					err = errors.New("completion was empty after cleaning")
				}
			}

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				failed++
				slog.Warn("Completion failed, skipping candidate", "candidate", i, "temperature", req.Temperature, "error", err)
			} else {
				results[i] = text
				slog.Debug("Completion finished", "candidate", i, "temperature", req.Temperature, "length", len(text))
			}
			if cfg.Progress != nil {
				cfg.Progress(done, len(requests))
			}
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("candidate generation interrupted: %w", err)
	}

	candidates := make([]string, 0, len(results))
	for _, r := range results {
		if r != "" {
			candidates = append(candidates, r)
		}
	}

	outcome := &Outcome{Attempted: len(requests), Failed: failed}

	if len(candidates) == 0 {
		if !cfg.LocalFallback {
			return nil, fmt.Errorf("%w (%d attempted)", ErrAllCompletionsFailed, len(requests))
		}
		slog.Warn("Every completion failed, using the local humanizer", "attempted", len(requests))
		candidates = []string{humanize.Humanize(input, &cfg.Style).Output}
		outcome.Fallback = true
	}

	ranked, err := score.Select(candidates, input)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidate: %w", err)
	}
	outcome.Ranked = ranked
	outcome.Output = ranked.Best.Text
	return outcome, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Candidates <= 0 {
		cfg.Candidates = DefaultCandidates
	}
	if cfg.Candidates > MaxCandidates {
		cfg.Candidates = MaxCandidates
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Denoiser == nil {
		cfg.Denoiser = denoise.Default()
	}
	cfg.Style = humanize.ValidateOptions(&cfg.Style)
	return cfg
}

func buildRequests(input string, cfg Config) []Request {
	var inputTokens int
	if cfg.Tokens != nil {
		inputTokens = cfg.Tokens.Count(input)
	} else {
		// roughly four tokens per three words of English
		inputTokens = counter.NewWordCounter().Count(input) * 4 / 3
	}

	system := prompt.System()
	user := prompt.User(input, cfg.Style)
	maxTokens := prompt.MaxOutputTokens(inputTokens)

	temps := prompt.Temperatures(cfg.Candidates, cfg.Style.Creativity)
	requests := make([]Request, len(temps))
	for i, temp := range temps {
		requests[i] = Request{System: system, User: user, Temperature: temp, MaxTokens: maxTokens}
	}
	return requests
}


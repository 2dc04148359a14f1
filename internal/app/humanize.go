// Package app contains the application logic behind the humanize CLI.
// It loads sources, dispatches to the local humanizer, the multi-candidate LLM rewrite,
// the phrase cleaner or the candidate scorer, and renders the result.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chriscorrea/humanize/internal/completion"
	"github.com/chriscorrea/humanize/internal/config"
	"github.com/chriscorrea/humanize/internal/counter"
	"github.com/chriscorrea/humanize/internal/denoise"
	"github.com/chriscorrea/humanize/internal/fetch"
	"github.com/chriscorrea/humanize/internal/humanize"
	"github.com/chriscorrea/humanize/internal/rewrite"
	"github.com/chriscorrea/humanize/internal/score"
	"github.com/chriscorrea/humanize/internal/spinner"
)

// Mode selects what Run does with the input.
type Mode int

const (
	// Local runs the deterministic heuristic humanizer (default)
	Local Mode = iota
	// Deep generates several LLM rewrites and keeps the best-scoring one
	Deep
	// Clean runs the phrase denoiser over existing text
	Clean
	// Score ranks candidate sources against the first source
	Score
)

// String returns the mode's command name.
func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case Deep:
		return "deep"
	case Clean:
		return "clean"
	case Score:
		return "score"
	default:
		return "unknown"
	}
}

// OutputFormat defines how results are written.
type OutputFormat int

const (
	// Text writes the rewritten text only (default)
	Text OutputFormat = iota
	// JSON writes the text with its score and stats
	JSON
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Config holds all options for one run.
type Config struct {
	Mode    Mode
	Sources []string // URLs, file paths, or "-" for stdin

	Selector   string // CSS selector for HTML sources
	IncludeAll bool   // skip readability and boilerplate filtering

	Style         humanize.Options
	Completion    config.CompletionConfig
	RulesPath     string // YAML denoise rules replacing the embedded list
	LocalFallback bool   // deep mode: use the local humanizer when every completion fails

	OutputFormat OutputFormat
	Stats        bool // report token/word/character counts
	Quiet        bool // suppress warnings and the spinner
	Debug        bool
}

// Runner executes runs. Fields left nil get production defaults.
type Runner struct {
	Fetcher   *fetch.Fetcher
	Completer rewrite.Completer
	Tokens    counter.Counter // cl100k_base tokenizer when nil
	Stderr    io.Writer
}

// Run executes cfg with default dependencies and returns the rendered output.
func Run(ctx context.Context, cfg Config) (string, error) {
	return (&Runner{}).Run(ctx, cfg)
}

// Run executes cfg and returns the rendered output.
func (r *Runner) Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}
	r.defaults()
	cfg.Style = humanize.ValidateOptions(&cfg.Style)

	slog.Debug("Starting run", "mode", cfg.Mode, "sources", len(cfg.Sources), "format", cfg.OutputFormat)

	if cfg.Mode == Score {
		return r.runScore(ctx, cfg)
	}

	input, err := r.loadCombined(ctx, cfg)
	if err != nil {
		return "", err
	}

	var res Result
	switch cfg.Mode {
	case Local:
		res.Output = humanize.Humanize(input, &cfg.Style).Output
	case Deep:
		res, err = r.runDeep(ctx, cfg, input)
		if err != nil {
			return "", err
		}
	case Clean:
		d, err := loadDenoiser(cfg.RulesPath)
		if err != nil {
			return "", err
		}
		res.Output = d.Clean(input)
	default:
		return "", fmt.Errorf("unknown mode %v", cfg.Mode)
	}

	if res.Score == nil && res.Output != "" {
		s := score.ScoreCandidate(res.Output, input)
		res.Score = &s
	}
	if cfg.Stats {
		res.Stats = r.measure(input, res.Output)
		if cfg.OutputFormat == Text {
			fmt.Fprintf(r.Stderr, "input:  %s\noutput: %s\n", res.Stats.Input, res.Stats.Output)
		}
	}

	return render(res, cfg.OutputFormat)
}

func (r *Runner) defaults() {
	if r.Fetcher == nil {
		r.Fetcher = fetch.New()
	}
	if r.Stderr == nil {
		r.Stderr = os.Stderr
	}
}

func (r *Runner) runDeep(ctx context.Context, cfg Config, input string) (Result, error) {
	completer := r.Completer
	if completer == nil {
		if err := cfg.Completion.Validate(); err != nil {
			return Result{}, err
		}
		client := completion.NewOpenAI(cfg.Completion.Client())
		slog.Debug("Using completion endpoint", "model", client.Model(), "base_url", cfg.Completion.BaseURL)
		completer = client
	}

	d, err := loadDenoiser(cfg.RulesPath)
	if err != nil {
		return Result{}, err
	}

	rc := rewrite.Config{
		Candidates:    cfg.Completion.Candidates,
		Concurrency:   cfg.Completion.Concurrency,
		Style:         cfg.Style,
		Denoiser:      d,
		LocalFallback: cfg.LocalFallback,
	}
	rc.Tokens = r.tokenCounter()

	var sp *spinner.Spinner
	if !cfg.Quiet && spinner.IsTerminal(r.Stderr) {
		sp = spinner.New(r.Stderr, "Generating candidates")
		rc.Progress = trackProgress(sp)
		sp.Start(ctx)
		defer stopSpinner(sp)
	}

	outcome, err := rewrite.Generate(ctx, completer, input, rc)
	// clear the spinner line before any warning is printed
	stopSpinner(sp)
	if err != nil {
		if errors.Is(err, rewrite.ErrAllCompletionsFailed) {
			return Result{}, fmt.Errorf("%w; rerun with --local-fallback to use the local humanizer", err)
		}
		return Result{}, err
	}
	if outcome.Failed > 0 && !cfg.Quiet {
		fmt.Fprintf(r.Stderr, "Warning: %d of %d completions failed\n", outcome.Failed, outcome.Attempted)
	}
	if outcome.Fallback && !cfg.Quiet {
		fmt.Fprintln(r.Stderr, "Warning: every completion failed, output is from the local humanizer")
	}

	best := outcome.Ranked.Best.Score
	return Result{
		Output:     outcome.Output,
		Score:      &best,
		Candidates: outcome.Ranked.Candidates,
		Fallback:   outcome.Fallback,
	}, nil
}

// trackProgress forwards completion progress to sp and relabels it once every completion is in.
func trackProgress(sp *spinner.Spinner) func(done, total int) {
	return func(done, total int) {
		sp.Update(done, total)
		if done == total {
			sp.SetLabel("Scoring candidates")
		}
	}
}

func stopSpinner(sp *spinner.Spinner) {
	if sp != nil && sp.IsActive() {
		sp.Stop()
	}
}

func (r *Runner) measure(input, output string) *Stats {
	tokens := r.tokenCounter()
	return &Stats{
		Input:  counter.Measure(input, tokens),
		Output: counter.Measure(output, tokens),
	}
}

// tokenCounter returns the injected counter or loads the tokenizer once.
// It returns nil when the encoding cannot be loaded; callers fall back to word estimates.
func (r *Runner) tokenCounter() counter.Counter {
	if r.Tokens != nil {
		return r.Tokens
	}
	tc, err := counter.NewTokenCounter()
	if err != nil {
		slog.Debug("Token counter unavailable", "error", err)
		return nil
	}
	r.Tokens = tc
	return tc
}

func loadDenoiser(path string) (*denoise.Denoiser, error) {
	if path == "" {
		return denoise.Default(), nil
	}
	rules, err := denoise.LoadRules(path)
	if err != nil {
		return nil, err
	}
	d, err := denoise.New(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid denoise rules: %w", err)
	}
	return d, nil
}

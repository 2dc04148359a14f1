package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/chriscorrea/humanize/internal/counter"
	"github.com/chriscorrea/humanize/internal/score"
)

// Result is the JSON shape of a local, deep or clean run.
type Result struct {
	Output     string            `json:"output"`
	Score      *score.Score      `json:"score,omitempty"`
	Candidates []score.Candidate `json:"candidates,omitempty"`
	Fallback   bool              `json:"fallback,omitempty"`
	Stats      *Stats            `json:"stats,omitempty"`
}

// Stats compares the size of input and output.
type Stats struct {
	Input  counter.Stats `json:"input"`
	Output counter.Stats `json:"output"`
}

func render(res Result, format OutputFormat) (string, error) {
	if format != JSON {
		return res.Output, nil
	}
	return marshal(res)
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return string(data), nil
}

// runScore treats the first source as the original and ranks the rest as rewrites of it.
func (r *Runner) runScore(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) < 2 {
		return "", fmt.Errorf("score needs the original and at least one candidate, got %d source(s)", len(cfg.Sources))
	}

	original, err := r.loadSource(ctx, cfg.Sources[0], cfg)
	if err != nil {
		return "", fmt.Errorf("original %q: %w", cfg.Sources[0], err)
	}

	candidates := make([]string, 0, len(cfg.Sources)-1)
	for _, source := range cfg.Sources[1:] {
		text, err := r.loadSource(ctx, source, cfg)
		if err != nil {
			return "", fmt.Errorf("candidate %q: %w", source, err)
		}
		candidates = append(candidates, text)
	}

	ranked, err := score.Select(candidates, original)
	if err != nil {
		return "", err
	}

	if cfg.OutputFormat == JSON {
		return marshal(ranked)
	}
	return rankingTable(ranked, cfg.Sources[1:]), nil
}

// rankingTable lists candidates best first, one row each.
func rankingTable(ranked score.Ranked, names []string) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSCORE\tPHRASES\tLOW VARIANCE\tSIMILARITY\tSOURCE")
	for i, c := range ranked.Candidates {
		fmt.Fprintf(w, "%d\t%.2f\t%d\t%.2f\t%.2f\t%s\n",
			i+1, c.Score.Value, c.Score.Components.Phrases,
			c.Score.Components.LowVariancePenalty, c.Score.Components.SimilarityPenalty,
			names[c.Index])
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

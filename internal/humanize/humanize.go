// Package humanize rewrites machine-sounding prose into something closer to how people write.
//
// The pipeline is a pure function of its inputs:
//
//	input + Options → sanitize → paragraphs → sentences → soft shuffle
//	                → per-sentence transform → rejoin → sanitize → output
//
// Every random decision draws from a Mulberry32 stream seeded by hashing the input
// together with the validated options, so the same (input, options) pair always yields
// byte-identical output. There is no global mutable state and no clock dependency.
//
// Usage Example:
//
//	opts := humanize.DefaultOptions()
//	opts.Tone = humanize.Casual
//	result := humanize.Humanize(draft, &opts)
//	fmt.Println(result.Output)
package humanize

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/chriscorrea/humanize/internal/rng"
	"github.com/chriscorrea/humanize/internal/sanitize"
	"github.com/chriscorrea/humanize/internal/segment"
)

// Result holds the rewritten text.
type Result struct {
	Output string `json:"output"`
}

// Humanize rewrites input according to o (nil means DefaultOptions).
// Empty or whitespace-only input yields an empty output.
func Humanize(input string, o *Options) Result {
	opts := ValidateOptions(o)
	if strings.TrimSpace(input) == "" {
		return Result{Output: ""}
	}

	src := rng.New(seedFor(input, opts))

	text := sanitize.Text(input)
	if !opts.PreserveFormatting {
		text = strings.Join(strings.Fields(text), " ")
	}
	paragraphs := segment.Paragraphs(text)

	transformer := newSentenceTransformer(opts, src)
	rewritten := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		sentences := softShuffle(segment.Sentences(paragraph), src, opts.Creativity)

		var out []string
		for _, sentence := range sentences {
			out = append(out, transformer.transform(sentence)...)
		}
		rewritten = append(rewritten, strings.Join(out, " "))
	}

	output := sanitize.Text(strings.Join(rewritten, "\n\n"))

	slog.Debug("Humanized text",
		"inputLength", len(input),
		"outputLength", len(output),
		"paragraphs", len(paragraphs),
		"creativity", opts.Creativity,
		"tone", opts.Tone,
		"draws", src.Draws())

	return Result{Output: output}
}

// seedFor derives the stream seed from the input and the validated options.
func seedFor(input string, opts Options) uint32 {
	// Options holds only scalars, so marshaling cannot fail
	key, _ := json.Marshal(opts)
	return rng.Seed(input, string(key))
}

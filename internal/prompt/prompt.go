// Package prompt builds the completion prompts used in deep mode.
//
// The system prompt fixes the rewriting rules; the user prompt carries the text plus a
// plain-language description of the requested style. Temperatures spreads candidate
// requests across an increasing schedule so sibling candidates differ.
package prompt

import (
	"fmt"
	"strings"

	"github.com/chriscorrea/humanize/internal/humanize"
)

// Temperature schedule bounds.
const (
	MinTemperature  = 0.5
	MaxTemperature  = 1.3
	TemperatureStep = 0.15
)

// Output token budget bounds.
const (
	OutputTokenFloor   = 256
	OutputTokenCeiling = 4096
)

const systemPrompt = `You rewrite text so it reads like a careful human wrote it.

Rules:
- Keep the meaning, facts, names, and numbers exactly as given.
- Vary sentence length. Mix short sentences with longer ones.
- Never use em dashes, en dashes, or semicolons.
- Avoid stock phrases such as "moreover", "furthermore", "additionally", "in conclusion", "it is worth noting", "delve into", and "in today's world".
- Do not add headings, lists, or commentary.
- Reply with the rewritten text only.`

// System returns the system prompt.
func System() string {
	return systemPrompt
}

// User returns the user prompt for text rewritten in the given style.
func User(text string, style humanize.Options) string {
	style = humanize.ValidateOptions(&style)

	var b strings.Builder
	b.WriteString("Rewrite the text below.\n\nStyle:\n")
	fmt.Fprintf(&b, "- Tone: %s.\n", toneDescription(style.Tone))
	fmt.Fprintf(&b, "- Amount of change: %s.\n", creativityBand(style.Creativity))

	if style.Tone == humanize.Formal {
		b.WriteString("- Avoid contractions.\n")
	} else {
		b.WriteString("- Use contractions where they sound natural.\n")
	}
	if style.AddPersonalTouches {
		b.WriteString("- Add a brief first-person aside where it fits.\n")
	}
	if style.PreserveFormatting {
		b.WriteString("- Keep the paragraph breaks exactly where they are.\n")
	} else {
		b.WriteString("- Return a single paragraph.\n")
	}

	b.WriteString("\nText:\n")
	b.WriteString(strings.TrimSpace(text))
	return b.String()
}

// Temperatures returns n sampling temperatures in increasing order, starting higher
// for higher creativity.
func Temperatures(n int, creativity float64) []float64 {
	if n <= 0 {
		return nil
	}
	style := humanize.ValidateOptions(&humanize.Options{Creativity: creativity})

	temps := make([]float64, n)
	base := MinTemperature + 0.3*style.Creativity
	for i := range temps {
		t := base + float64(i)*TemperatureStep
		if t > MaxTemperature {
			t = MaxTemperature
		}
		temps[i] = t
	}
	return temps
}

// MaxOutputTokens returns the completion budget for an input of inputTokens tokens.
func MaxOutputTokens(inputTokens int) int {
	if inputTokens < 0 {
		inputTokens = 0
	}
	budget := inputTokens*2 + OutputTokenFloor
	if budget > OutputTokenCeiling {
		return OutputTokenCeiling
	}
	return budget
}

func toneDescription(t humanize.Tone) string {
	switch t {
	case humanize.Casual:
		return "casual and relaxed, like talking to a colleague"
	case humanize.Formal:
		return "formal and precise, without stiffness"
	case humanize.Friendly:
		return "warm and friendly"
	default:
		return "neutral and clear"
	}
}

func creativityBand(c float64) string {
	switch {
	case c < 0.34:
		return "light, mostly word choice"
	case c < 0.67:
		return "moderate, reshape some sentences"
	default:
		return "substantial, restructure freely while keeping the meaning"
	}
}

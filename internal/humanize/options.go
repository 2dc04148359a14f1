package humanize

import (
	"fmt"
	"math"
	"strings"
)

// Tone biases contraction usage and tone-specific word choice.
type Tone string

const (
	Neutral  Tone = "neutral"
	Casual   Tone = "casual"
	Formal   Tone = "formal"
	Friendly Tone = "friendly"
)

// Tones lists every supported tone in display order.
var Tones = []Tone{Neutral, Casual, Formal, Friendly}

// ToneNames lists the supported tone names, comma separated, in display order.
func ToneNames() string {
	names := make([]string, len(Tones))
	for i, t := range Tones {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// String returns the tone name.
func (t Tone) String() string {
	return string(t)
}

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case Neutral, Casual, Formal, Friendly:
		return true
	default:
		return false
	}
}

// ParseTone parses a tone name case-insensitively. An empty name is neutral.
func ParseTone(name string) (Tone, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Neutral, nil
	}
	if t := Tone(name); t.Valid() {
		return t, nil
	}
	return Neutral, fmt.Errorf("unknown tone %q (want one of %s)", name, ToneNames())
}

// Options configures a single humanize call. Start from DefaultOptions and override
// fields; the zero value is a valid but very conservative configuration.
type Options struct {
	Creativity         float64 `json:"creativity" yaml:"creativity"`                   // [0,1]; higher rewrites more
	Tone               Tone    `json:"tone" yaml:"tone"`                               // neutral | casual | formal | friendly
	AddPersonalTouches bool    `json:"addPersonalTouches" yaml:"add_personal_touches"` // occasionally prefix first-person framing
	PreserveFormatting bool    `json:"preserveFormatting" yaml:"preserve_formatting"`  // keep paragraph breaks
}

// Default option values.
const (
	DefaultCreativity = 0.7
	DefaultTone       = Neutral
)

// DefaultOptions returns the options used when a caller supplies none.
func DefaultOptions() Options {
	return Options{
		Creativity:         DefaultCreativity,
		Tone:               DefaultTone,
		AddPersonalTouches: false,
		PreserveFormatting: true,
	}
}

// ValidateOptions fills defaults for a nil o, clamps Creativity into [0,1] (NaN becomes 0)
// and replaces an unknown tone with neutral. It never fails.
func ValidateOptions(o *Options) Options {
	if o == nil {
		return DefaultOptions()
	}

	v := *o
	v.Creativity = clamp01(v.Creativity)
	if t, err := ParseTone(string(v.Tone)); err == nil {
		v.Tone = t
	} else {
		v.Tone = Neutral
	}
	return v
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

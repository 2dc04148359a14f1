// Package counter measures text in tokens, words, and characters.
//
// Word counts drive the sentence-length statistics used when scoring candidates.
// Token counts (tiktoken, cl100k_base) size completion requests in deep mode and feed
// the --stats report, alongside words and characters.
//
// Usage Example:
//
//	tokens, err := counter.NewTokenCounter()
//	if err != nil {
//		return err
//	}
//	n := tokens.Count(draft)
package counter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Counter counts units of text.
type Counter interface {
	// Count returns the number of units in text.
	Count(text string) int

	// Name returns a human-readable name for logging.
	Name() string
}

// Stats summarizes a text in every unit we report.
type Stats struct {
	Tokens     int `json:"tokens"`
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

// String formats stats for the terminal.
func (s Stats) String() string {
	return fmt.Sprintf("%d tokens, %d words, %d characters", s.Tokens, s.Words, s.Characters)
}

// Measure counts text in tokens, words, and characters. tokens may be nil, in which
// case the token count is left at zero.
func Measure(text string, tokens Counter) Stats {
	stats := Stats{
		Words:      NewWordCounter().Count(text),
		Characters: NewCharCounter().Count(text),
	}
	if tokens != nil {
		stats.Tokens = tokens.Count(text)
	}
	return stats
}

// WordCounter counts whitespace-separated words.
type WordCounter struct{}

// NewWordCounter creates a WordCounter.
func NewWordCounter() Counter {
	return WordCounter{}
}

// Count returns the number of whitespace-separated fields in text.
func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// Name returns "words".
func (WordCounter) Name() string {
	return "words"
}

// CharCounter counts Unicode code points, not bytes.
type CharCounter struct{}

// NewCharCounter creates a CharCounter.
func NewCharCounter() Counter {
	return CharCounter{}
}

// Count returns the number of runes in text.
func (CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// Name returns "characters".
func (CharCounter) Name() string {
	return "characters"
}

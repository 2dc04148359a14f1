// Package segment splits prose into paragraphs and sentences.
//
// Segmentation is the structural half of the humanize pipeline: the transformer works
// sentence by sentence, and paragraphs define where blank lines are restored on output.
//
//  1. Paragraph boundaries: two or more consecutive line breaks
//  2. Sentence boundaries: terminal punctuation, whitespace, then a capital letter,
//     digit, or an opening quote or parenthesis
//
// Usage Example:
//
//	for _, p := range segment.Paragraphs(text) {
//		sentences := segment.Sentences(p)
//		// ...
//	}
package segment

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// paragraphBreak matches a blank line, tolerating stray horizontal whitespace on it.
var paragraphBreak = regexp.MustCompile(`\n[^\S\n]*\n\s*`)

// sentenceEnd matches terminal punctuation, optional closing quotes/brackets, and the
// whitespace that follows. Whether it is a real boundary depends on the next rune.
var sentenceEnd = regexp.MustCompile(`[.!?…]+["'”’)\]]*\s+`)

// Paragraphs splits text on blank lines, trimming each paragraph and dropping empty ones.
// A paragraph of nothing but colons counts as empty, matching what sanitize.Text leaves
// of it. Empty or whitespace-only text yields an empty slice.
func Paragraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	parts := paragraphBreak.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); strings.Trim(trimmed, ": \t\n") != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	slog.Debug("Split paragraphs", "textLength", len(text), "paragraphs", len(paragraphs))
	return paragraphs
}

// Sentences splits a paragraph into sentences. A paragraph with no recognizable
// boundary is returned whole, so the result is never empty.
func Sentences(paragraph string) []string {
	paragraph = strings.TrimSpace(paragraph)

	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(paragraph, -1) {
		if loc[1] >= len(paragraph) {
			break
		}
		next, _ := utf8.DecodeRuneInString(paragraph[loc[1]:])
		if !opensSentence(next) {
			continue
		}
		if s := strings.TrimSpace(paragraph[start:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}

	if rest := strings.TrimSpace(paragraph[start:]); rest != "" || len(sentences) == 0 {
		sentences = append(sentences, rest)
	}

	return sentences
}

// opensSentence reports whether r can begin a new sentence.
func opensSentence(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘', '(', '[':
		return true
	}
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

// Package sanitize normalizes whitespace and punctuation in prose.
//
// The sanitizer runs twice in the humanize pipeline: once on raw input before any
// linguistic transformation, and again on the rewritten text to clean up artifacts
// left behind by substitutions. It is a total function over strings and is idempotent:
// running it on its own output changes nothing.
//
// Rules, in order:
//  1. Unicode NFC composition and CRLF/CR line endings to LF
//  2. numeric en dash ranges ("6–8") become hyphen ranges ("6-8")
//  3. em dash, en dash and semicolon become a comma
//  4. runs of colons, even with spaces between them, collapse to one colon
//  5. horizontal whitespace runs collapse to a single space
//  6. a line holding only a colon is removed with its line break; any other colon
//     directly before a line break is dropped
//  7. spaces around line breaks are trimmed; three or more line breaks collapse to a
//     blank line (paragraph breaks survive)
//  8. no space before , . ! ? …; repeated commas collapse
//  9. a comma directly followed by a letter gets a space
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// hspace is horizontal whitespace, including no-break and other Unicode spaces.
const hspace = `[\t\v\f \p{Zs}]`

var (
	numericRangeDash = regexp.MustCompile(`(\d)\s*–\s*(\d)`)
	dashOrSemicolon  = regexp.MustCompile(`[—–;]`)
	colonRun         = regexp.MustCompile(`:(?:` + hspace + `*:)+`)
	horizontalSpace  = regexp.MustCompile(hspace + `+`)
	colonOnlyLine    = regexp.MustCompile(`(?m)^ ?: ?\n`)
	colonLineBreak   = regexp.MustCompile(`: ?\n`)
	spacedLineBreak  = regexp.MustCompile(` ?\n ?`)
	lineBreakRun     = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunct = regexp.MustCompile(` +([,.!?…])`)
	commaRun         = regexp.MustCompile(`,{2,}`)
	commaBeforeWord  = regexp.MustCompile(`,(\pL)`)
)

// Text returns s with whitespace and punctuation normalized.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// keep numeric ranges intact before dashes are turned into commas
	s = numericRangeDash.ReplaceAllString(s, "$1-$2")
	s = dashOrSemicolon.ReplaceAllString(s, ",")

	s = colonRun.ReplaceAllString(s, ":")
	s = horizontalSpace.ReplaceAllString(s, " ")

	// colon-only lines go with their break so they cannot leave a blank line behind
	s = colonOnlyLine.ReplaceAllString(s, "")
	s = colonLineBreak.ReplaceAllString(s, "\n")
	s = spacedLineBreak.ReplaceAllString(s, "\n")
	s = lineBreakRun.ReplaceAllString(s, "\n\n")

	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = commaRun.ReplaceAllString(s, ",")
	s = commaBeforeWord.ReplaceAllString(s, ", $1")

	return strings.TrimSpace(s)
}

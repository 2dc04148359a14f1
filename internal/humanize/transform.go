package humanize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriscorrea/humanize/internal/rng"
)

// Gate probabilities and thresholds. Each rate is multiplied by Creativity unless noted.
const (
	synonymRate           = 0.8  // per matching token
	formalContractionRate = 0.2  // contraction gate multiplier for the formal tone
	discourseThreshold    = 0.15 // creativity above which Additionally/Moreover/Furthermore openers go
	discourseStripRate    = 0.5  // flat; otherwise the opener is softened to "Also,"
	openerThreshold       = 0.25 // creativity above which "In the X," / "With a X," openers may move
	connectiveThreshold   = 0.35 // creativity above which formal connectives are simplified
	numericRangeRate      = 0.5
	hedgeThreshold        = 0.45 // minimum creativity for hedge insertion
	hedgeRate             = 0.15 // flat
	splitRate             = 0.5
	splitMinWords         = 10
	splitEdgeWords        = 3
	personalTouchRate     = 0.25 // flat
	shuffleRate           = 0.45
	swapRate              = 0.2
)

const personalPrefix = "From my experience, "

var (
	nonSpace           = regexp.MustCompile(`\S+`)
	pronounI           = regexp.MustCompile(`\bi\b`)
	wordToken          = regexp.MustCompile(`^([^\pL]*)(\pL+(?:'\pL+)?)([^\pL]*)$`)
	discourseOpener    = regexp.MustCompile(`(?i)^(?:additionally|moreover|furthermore)\b,?\s*`)
	consequentlyOpener = regexp.MustCompile(`(?i)^consequently\b,?\s*`)
	inTheOpener        = regexp.MustCompile(`(?s)^In the ([^,]{1,40}),\s+(.+?)([.!?…]*)$`)
	withOpener         = regexp.MustCompile(`(?s)^With (a|an|the) ([^,]{1,40}),\s+(.+?)([.!?…]*)$`)
	numericRange       = regexp.MustCompile(`(?i)\b(?:about |approximately |around )?(\d{1,3})\s*-\s*(\d{1,3})\b`)
	extraSpace         = regexp.MustCompile(`\s{2,}`)
	spaceBeforeMark    = regexp.MustCompile(`\s+([,.!?…])`)
	doubledComma       = regexp.MustCompile(`,\s*,`)
	commaBeforeStop    = regexp.MustCompile(`,([.!?…])`)
)

// sentenceTransformer rewrites one sentence at a time, drawing every probability gate
// from a stream shared across the whole document. The draw order is fixed, which is what
// makes a humanize call replayable.
type sentenceTransformer struct {
	opts Options
	src  *rng.Source
}

func newSentenceTransformer(opts Options, src *rng.Source) *sentenceTransformer {
	return &sentenceTransformer{opts: opts, src: src}
}

// transform runs the fixed stage order and returns one or two sentences.
// A stage that would empty the sentence is discarded.
func (t *sentenceTransformer) transform(sentence string) []string {
	s := sentence
	s = t.swapSynonyms(s)
	s = t.applyContractions(s)
	s = t.rewriteHeuristics(s)
	s = t.insertHedge(s)
	s = normalizePunctuation(s)
	if strings.TrimSpace(s) == "" {
		s = sentence
	}

	parts := t.adjustLength(s)
	parts[0] = t.personalize(parts[0])
	for i := range parts {
		parts[i] = t.tuneTone(parts[i])
	}
	return parts
}

// swapSynonyms replaces table words with a randomly chosen alternative.
// Tokens are split on any whitespace, and the separators are kept as they were.
func (t *sentenceTransformer) swapSynonyms(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range nonSpace.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:loc[0]])
		b.WriteString(t.swapToken(s[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func (t *sentenceTransformer) swapToken(tok string) string {
	m := wordToken.FindStringSubmatch(tok)
	if m == nil {
		return tok
	}
	alternatives, ok := synonyms[strings.ToLower(m[2])]
	if !ok || !t.src.Chance(t.opts.Creativity*synonymRate) {
		return tok
	}
	choice := alternatives[t.src.Intn(len(alternatives))]
	return m[1] + matchCase(m[2], choice) + m[3]
}

// applyContractions contracts every table phrase when the tone-scaled gate passes.
func (t *sentenceTransformer) applyContractions(s string) string {
	p := t.opts.Creativity
	if t.opts.Tone == Formal {
		p *= formalContractionRate
	}
	if !t.src.Chance(p) {
		return s
	}
	for _, rule := range contractions {
		s = rule.apply(s)
	}
	return s
}

// rewriteHeuristics applies the threshold-gated regex rewrites.
func (t *sentenceTransformer) rewriteHeuristics(s string) string {
	c := t.opts.Creativity

	if c > discourseThreshold {
		if loc := discourseOpener.FindStringIndex(s); loc != nil && loc[1] < len(s) {
			rest := s[loc[1]:]
			if t.src.Chance(discourseStripRate) {
				s = upperFirst(rest)
			} else {
				s = "Also, " + lowerFirst(rest)
			}
		}
		if loc := consequentlyOpener.FindStringIndex(s); loc != nil && loc[1] < len(s) {
			s = "So " + lowerFirst(s[loc[1]:])
		}
	}

	if c > openerThreshold {
		if m := inTheOpener.FindStringSubmatch(s); m != nil && t.src.Chance(c) {
			s = upperFirst(m[2]) + " in the " + m[1] + terminal(m[3])
		} else if m := withOpener.FindStringSubmatch(s); m != nil && t.src.Chance(c) {
			s = upperFirst(m[3]) + " with " + m[1] + " " + m[2] + terminal(m[4])
		}
	}

	if c > connectiveThreshold {
		for _, rule := range formalConnectives {
			s = rule.apply(s)
		}
	}

	if numericRange.MatchString(s) && t.src.Chance(c*numericRangeRate) {
		s = numericRange.ReplaceAllString(s, "around $1 to $2")
	}

	return s
}

// insertHedge places a hedge word right after the first inner comma.
func (t *sentenceTransformer) insertHedge(s string) string {
	if t.opts.Creativity < hedgeThreshold || !t.src.Chance(hedgeRate) {
		return s
	}
	idx := strings.Index(s, ",")
	if idx <= 0 || idx >= len(strings.TrimRight(s, " "))-1 {
		return s
	}
	hedge := hedges[t.src.Intn(len(hedges))]
	return s[:idx+1] + " " + hedge + " " + strings.TrimLeft(s[idx+1:], " ")
}

// normalizePunctuation tidies spacing left behind by earlier stages.
func normalizePunctuation(s string) string {
	s = extraSpace.ReplaceAllString(s, " ")
	s = spaceBeforeMark.ReplaceAllString(s, "$1")
	s = doubledComma.ReplaceAllString(s, ",")
	s = commaBeforeStop.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// adjustLength splits a long sentence at the first comma or conjunction that is not
// among its first or last few words.
func (t *sentenceTransformer) adjustLength(s string) []string {
	words := strings.Fields(s)
	if len(words) < splitMinWords || !t.src.Chance(t.opts.Creativity*splitRate) {
		return []string{s}
	}

	for i := splitEdgeWords; i < len(words)-splitEdgeWords; i++ {
		w := words[i]
		if _, ok := conjunctions[strings.ToLower(strings.TrimRight(w, ","))]; ok {
			return []string{
				endSentence(strings.Join(words[:i], " ")),
				upperFirst(strings.Join(words[i:], " ")),
			}
		}
		if strings.Contains(w, ",") {
			return []string{
				endSentence(strings.Join(words[:i+1], " ")),
				upperFirst(strings.Join(words[i+1:], " ")),
			}
		}
	}
	return []string{s}
}

// personalize occasionally frames the sentence as first-hand experience.
func (t *sentenceTransformer) personalize(s string) string {
	if !t.opts.AddPersonalTouches || !t.src.Chance(personalTouchRate) {
		return s
	}
	if strings.HasPrefix(s, personalPrefix) {
		return s
	}
	return personalPrefix + lowerFirst(s)
}

// tuneTone applies the tone's lexical substitutions.
func (t *sentenceTransformer) tuneTone(s string) string {
	for _, rule := range toneRules[t.opts.Tone] {
		s = rule.apply(s)
	}
	return s
}

// softShuffle gives a paragraph a low-amplitude reorder: one left-to-right pass of
// adjacent swaps, and only when the paragraph-level gate passes.
func softShuffle(sentences []string, src *rng.Source, creativity float64) []string {
	if !src.Chance(creativity*shuffleRate) || len(sentences) < 2 {
		return sentences
	}
	out := append([]string(nil), sentences...)
	for i := 0; i+1 < len(out); i++ {
		if src.Chance(creativity * swapRate) {
			out[i], out[i+1] = out[i+1], out[i]
		}
	}
	return out
}

// matchCase carries original's capitalization pattern over to replacement:
// ALL CAPS stays all caps, Capitalized stays capitalized, otherwise lowercase.
// The pronoun "I" stays capitalized.
func matchCase(original, replacement string) string {
	switch {
	case isAllCaps(original):
		return strings.ToUpper(replacement)
	case startsUpper(original):
		return upperFirst(replacement)
	default:
		return pronounI.ReplaceAllString(strings.ToLower(replacement), "I")
	}
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerFirst lowercases the first letter unless the first word looks like "I", an
// acronym, or a contraction of "I".
func lowerFirst(s string) string {
	first := s
	if i := strings.IndexAny(s, " ,"); i >= 0 {
		first = s[:i]
	}
	if first == "I" || strings.HasPrefix(first, "I'") || isAllCaps(first) {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// endSentence closes a fragment with a period unless it already ends a sentence.
func endSentence(s string) string {
	s = strings.TrimRight(s, " ,:")
	r, _ := utf8.DecodeLastRuneInString(s)
	switch r {
	case '.', '!', '?', '…':
		return s
	}
	return s + "."
}

func terminal(punct string) string {
	if punct == "" {
		return "."
	}
	return punct
}

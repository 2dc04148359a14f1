// Package score ranks rewrite candidates by how likely they are to read as machine-written.
//
// A candidate's score is a weighted sum of three heuristic penalties (lower is better):
//
//   - phrase flags: matches of discourse markers typical of generated prose
//   - low variance: sentence lengths that are too uniform (no burstiness)
//   - similarity: token overlap with the source text that suggests a near-copy
//
// Select scores every candidate and returns them in ascending order; ties keep the
// original candidate order.
package score

import (
	"errors"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/chriscorrea/humanize/internal/counter"
	"github.com/chriscorrea/humanize/internal/segment"
)

// Component weights and thresholds.
const (
	PhraseWeight        = 2.0
	LowVarianceWeight   = 1.5
	VarianceFloor       = 5.0 // sentence-length stddev at or above this is not penalized
	SimilarityThreshold = 0.7 // Jaccard similarity above this is penalized
	SimilarityScale     = 10.0
)

// ErrNoCandidates is returned by Select when given nothing to choose from.
var ErrNoCandidates = errors.New("no candidates to score")

// flaggedPhrases match discourse markers that generated prose overuses.
var flaggedPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmoreover\b`),
	regexp.MustCompile(`(?i)\bfurthermore\b`),
	regexp.MustCompile(`(?i)\badditionally\b`),
	regexp.MustCompile(`(?i)\bin conclusion\b`),
	regexp.MustCompile(`(?i)\bin summary\b`),
	regexp.MustCompile(`(?i)\bas a result\b`),
	regexp.MustCompile(`(?i)\bconsequently\b`),
	regexp.MustCompile(`(?i)\bit is (?:important|worth) (?:to note|noting)\b`),
	regexp.MustCompile(`(?i)\bit'?s worth noting\b`),
	regexp.MustCompile(`(?i)\bin today'?s (?:fast-paced |digital |modern )?(?:world|landscape|age)\b`),
	regexp.MustCompile(`(?i)\bdelve(?:s|d)? into\b`),
	regexp.MustCompile(`(?i)\bplays? an? (?:crucial|vital|pivotal|key) role\b`),
	regexp.MustCompile(`(?i)\ba testament to\b`),
	regexp.MustCompile(`(?i)\b(?:rich |intricate )?tapestry\b`),
	regexp.MustCompile(`(?i)\bever-(?:evolving|changing)\b`),
	regexp.MustCompile(`(?i)\bnavigat(?:e|ing) the (?:complexities|landscape)\b`),
	regexp.MustCompile(`(?i)\bunlock(?:s|ing)? the (?:full )?potential\b`),
	regexp.MustCompile(`(?i)\bultimately\b`),
	regexp.MustCompile(`(?i)\bnotably\b`),
	regexp.MustCompile(`(?i)\boverall\b`),
}

var alnumToken = regexp.MustCompile(`[a-z0-9]+`)

// Components holds the individual penalties behind a Score.
type Components struct {
	Phrases            int     `json:"phrases"`
	LowVariancePenalty float64 `json:"lowVariancePenalty"`
	SimilarityPenalty  float64 `json:"similarityPenalty"`
}

// Score is a candidate's total penalty and its parts.
type Score struct {
	Value      float64    `json:"score"`
	Components Components `json:"components"`
}

// Candidate pairs a candidate text with its score and its position in the input list.
type Candidate struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
	Score Score  `json:"score"`
}

// Ranked is the outcome of Select: the winner plus every candidate in rank order.
type Ranked struct {
	Best       Candidate   `json:"best"`
	Candidates []Candidate `json:"candidates"`
}

// ScoreCandidate scores output as a rewrite of input.
func ScoreCandidate(output, input string) Score {
	c := Components{
		Phrases:            CountPhrases(output),
		LowVariancePenalty: lowVariancePenalty(SentenceLengthStdDev(output)),
		SimilarityPenalty:  similarityPenalty(Jaccard(output, input)),
	}
	value := float64(c.Phrases)*PhraseWeight + c.LowVariancePenalty*LowVarianceWeight + c.SimilarityPenalty

	slog.Debug("Scored candidate", "length", len(output), "phrases", c.Phrases,
		"lowVariance", c.LowVariancePenalty, "similarity", c.SimilarityPenalty, "score", value)
	return Score{Value: value, Components: c}
}

// Select scores candidates against input and returns them ranked, lowest score first.
func Select(candidates []string, input string) (Ranked, error) {
	if len(candidates) == 0 {
		return Ranked{}, ErrNoCandidates
	}

	ranked := make([]Candidate, len(candidates))
	for i, text := range candidates {
		ranked[i] = Candidate{Text: text, Index: i, Score: ScoreCandidate(text, input)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Value < ranked[j].Score.Value
	})

	slog.Debug("Selected candidate", "candidates", len(candidates), "bestIndex", ranked[0].Index, "bestScore", ranked[0].Score.Value)
	return Ranked{Best: ranked[0], Candidates: ranked}, nil
}

// CountPhrases counts flagged phrase matches across text.
func CountPhrases(text string) int {
	total := 0
	for _, re := range flaggedPhrases {
		total += len(re.FindAllStringIndex(text, -1))
	}
	return total
}

// SentenceLengthStdDev returns the population standard deviation of per-sentence
// word counts. Text with fewer than two sentences has a deviation of zero.
func SentenceLengthStdDev(text string) float64 {
	words := counter.NewWordCounter()

	var lengths []float64
	for _, s := range sentences(text) {
		if n := words.Count(s); n > 0 {
			lengths = append(lengths, float64(n))
		}
	}
	if len(lengths) < 2 {
		return 0
	}

	var mean float64
	for _, l := range lengths {
		mean += l
	}
	mean /= float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		d := l - mean
		variance += d * d
	}
	variance /= float64(len(lengths))
	return math.Sqrt(variance)
}

// Jaccard returns the Jaccard similarity of the lowercase alphanumeric token sets of a and b.
// Two texts without tokens have similarity zero.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func lowVariancePenalty(stddev float64) float64 {
	if stddev < VarianceFloor {
		return VarianceFloor - stddev
	}
	return 0
}

func similarityPenalty(similarity float64) float64 {
	if similarity > SimilarityThreshold {
		return (similarity - SimilarityThreshold) * SimilarityScale
	}
	return 0
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range alnumToken.FindAllString(strings.ToLower(text), -1) {
		set[tok] = struct{}{}
	}
	return set
}

// sentences segments text with prose's sentence boundary detector, paragraph by
// paragraph. If prose cannot build a document the rule-based segmenter is used instead.
func sentences(text string) []string {
	var out []string
	for _, paragraph := range segment.Paragraphs(text) {
		doc, err := prose.NewDocument(paragraph,
			prose.WithTagging(false),
			prose.WithExtraction(false))
		if err != nil {
			slog.Debug("prose segmentation failed, falling back", "error", err)
			out = append(out, segment.Sentences(paragraph)...)
			continue
		}
		for _, s := range doc.Sentences() {
			out = append(out, s.Text)
		}
	}
	return out
}

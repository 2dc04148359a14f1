// Package classify filters page boilerplate out of extracted web text.
//
// Readability extraction still leaves bylines, share prompts, cookie notices and
// footer lines around an article. The classifier scores each paragraph by the share of
// its (stemmed) words that belong to a boilerplate vocabulary and drops paragraphs
// whose share exceeds a position-dependent threshold: strict at the start and end of a
// page, where boilerplate lives, and lenient in the middle.
package classify

import (
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// boilerplateStems contains stemmed words typical of page chrome rather than prose
var boilerplateStems = map[string]struct{}{
	// --- bylines & publishing ---
	"author":  {},
	"byline":  {},
	"edit":    {},
	"min":     {}, // "5 min read"
	"post":    {},
	"publish": {},
	"updat":   {},

	// --- navigation & interaction ---
	"about":    {},
	"archiv":   {},
	"categori": {},
	"click":    {},
	"comment":  {},
	"contact":  {},
	"follow":   {},
	"home":     {},
	"login":    {},
	"menu":     {},
	"navig":    {},
	"profil":   {},
	"relat":    {},
	"search":   {},
	"share":    {},
	"sign":     {},
	"skip":     {},
	"tag":      {},

	// --- marketing ---
	"advertis": {},
	"email":    {},
	"inbox":    {},
	"newslett": {},
	"sponsor":  {},
	"subscrib": {},

	// --- social ---
	"facebook":  {},
	"instagram": {},
	"linkedin":  {},
	"twitter":   {},

	// --- legal & footer ---
	"cooki":     {},
	"copyright": {},
	"footer":    {},
	"permiss":   {},
	"polici":    {},
	"privaci":   {},
	"reproduc":  {},
	"reserv":    {},
	"right":     {},
	"term":      {},

	// --- references ---
	"https": {},
	"isbn":  {},
	"www":   {},
}

// Thresholds on the boilerplate share of a paragraph's words.
const (
	EdgeThreshold   = 0.1
	MiddleThreshold = 0.33
	SmallThreshold  = 0.5 // documents of three paragraphs or fewer
)

// Classifier identifies boilerplate paragraphs.
type Classifier struct {
	tokenRegex *regexp.Regexp
}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		tokenRegex: regexp.MustCompile(`\b[a-zA-Z]+\b`),
	}
}

// Filter returns paragraphs with boilerplate removed, keeping order.
func (c *Classifier) Filter(paragraphs []string) []string {
	kept := make([]string, 0, len(paragraphs))
	for i, p := range paragraphs {
		if c.IsBoilerplate(p, i, len(paragraphs)) {
			slog.Debug("Dropping boilerplate paragraph", "index", i, "text", truncate(p, 60))
			continue
		}
		kept = append(kept, p)
	}
	slog.Debug("Filtered boilerplate", "total", len(paragraphs), "kept", len(kept))
	return kept
}

// IsBoilerplate reports whether the paragraph at index of total is page chrome.
// Paragraphs without any words count as boilerplate; invalid positions never do.
func (c *Classifier) IsBoilerplate(text string, index, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}

	tokens := c.tokenRegex.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return true
	}

	hits := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			stemmed = token
		}
		if _, ok := boilerplateStems[stemmed]; ok {
			hits++
		}
	}

	return float64(hits)/float64(len(tokens)) > threshold(index, total)
}

// threshold follows an inverted V over the document: EdgeThreshold at the first and
// last paragraph, MiddleThreshold at the center.
func threshold(index, total int) float64 {
	if total <= 3 {
		return SmallThreshold
	}
	relative := float64(index) / float64(total-1)
	factor := 1.0 - math.Abs(2.0*relative-1.0)
	return EdgeThreshold + (MiddleThreshold-EdgeThreshold)*factor
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

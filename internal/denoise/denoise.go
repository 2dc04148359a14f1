// Package denoise rewrites machine-sounding phrasing in generated text.
//
// Denoise applies an ordered list of regular-expression rules (embedded from rules.yaml
// or loaded from a user file) to swap stock phrases for plainer ones. Clean is the full
// post-processing pass for completion output: it removes assistant preambles, denoises,
// strips sentence-initial connectors, capitalizes sentence starts, and sanitizes.
//
// Rule order matters: every rule runs over the output of the rules before it.
package denoise

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/humanize/internal/sanitize"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule is one ordered pattern/replacement pair.
type Rule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Replace string `yaml:"replace" json:"replace"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

type compiledRule struct {
	re      *regexp.Regexp
	replace string
}

// Denoiser applies a compiled rule list. It is safe for concurrent use.
type Denoiser struct {
	rules []compiledRule
}

var (
	// connectors opening a sentence that read as filler once removed
	leadingConnector = regexp.MustCompile(`(?m)(^|[.!?]["')\]”’]*\s+)(?:Moreover|Furthermore|Additionally|In addition|In conclusion|In summary|To summarize|To sum up|Overall|Ultimately|Consequently|Notably|Importantly|Indeed|Thus|Hence|Therefore),\s*`)

	preamble = regexp.MustCompile(`(?i)^\s*(?:(?:sure|certainly|of course|absolutely)[!,.]?\s*)?here(?:'s| is| are) (?:the|a|an|your|my) [^\n]{0,60}?(?:version|rewrite|text|draft|edit)[^\n]{0,40}?:\s*`)
	closing  = regexp.MustCompile(`(?i)\n+\s*(?:let me know if|i hope this helps|feel free to)[^\n]*\s*$`)

	sentenceStart = regexp.MustCompile(`(?m)(?:^|[.!?]["')\]”’]*\s+)\p{Ll}`)
)

var defaultDenoiser = mustDefault()

func mustDefault() *Denoiser {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded denoise rules: %v", err))
	}
	d, err := New(rules)
	if err != nil {
		panic(fmt.Sprintf("embedded denoise rules: %v", err))
	}
	return d
}

// Default returns the shared Denoiser built from the embedded rules. A Denoiser is
// read-only after New, so it is safe for concurrent use.
func Default() *Denoiser {
	return defaultDenoiser
}

// DefaultRules returns a copy of the embedded rule list.
func DefaultRules() []Rule {
	rules, _ := ParseRules(defaultRulesYAML)
	return rules
}

// ParseRules decodes a YAML rule document.
func ParseRules(data []byte) ([]Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return f.Rules, nil
}

// LoadRules reads a YAML rule document from path.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	return rules, nil
}

// New compiles rules in order. A rule with an empty or invalid pattern is an error.
func New(rules []Rule) (*Denoiser, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i+1)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: invalid pattern %q: %w", i+1, r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, replace: r.Replace})
	}
	slog.Debug("Compiled denoise rules", "count", len(compiled))
	return &Denoiser{rules: compiled}, nil
}

// Len returns the number of rules.
func (d *Denoiser) Len() int {
	return len(d.rules)
}

// Denoise applies every rule in order.
func (d *Denoiser) Denoise(text string) string {
	for _, r := range d.rules {
		text = r.apply(text)
	}
	return text
}

// Clean prepares completion output for display.
func (d *Denoiser) Clean(text string) string {
	text = stripWrapping(text)
	text = d.Denoise(text)
	text = leadingConnector.ReplaceAllString(text, "$1")
	text = capitalizeSentences(text)
	return sanitize.Text(text)
}

// Denoise applies the embedded rules.
func Denoise(text string) string {
	return defaultDenoiser.Denoise(text)
}

// Clean runs the full post-processing pass with the embedded rules.
func Clean(text string) string {
	return defaultDenoiser.Clean(text)
}

func (r compiledRule) apply(text string) string {
	matches := r.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		replacement := string(r.re.ExpandString(nil, r.replace, text, m))
		b.WriteString(matchLeadingCase(text[m[0]:m[1]], replacement))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// matchLeadingCase capitalizes replacement when the matched text starts with a capital.
func matchLeadingCase(matched, replacement string) string {
	m, _ := utf8.DecodeRuneInString(matched)
	r, size := utf8.DecodeRuneInString(replacement)
	if size == 0 || !unicode.IsUpper(m) || unicode.IsUpper(r) {
		return replacement
	}
	return string(unicode.ToUpper(r)) + replacement[size:]
}

// stripWrapping removes assistant chatter around the rewritten text and a pair of
// quotes enclosing all of it.
func stripWrapping(text string) string {
	text = preamble.ReplaceAllString(text, "")
	text = closing.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		inner := strings.TrimSuffix(strings.TrimPrefix(text, q[0]), q[1])
		if len(inner)+len(q[0])+len(q[1]) == len(text) && !strings.ContainsAny(inner, q[0]+q[1]) {
			return strings.TrimSpace(inner)
		}
	}
	return text
}

func capitalizeSentences(text string) string {
	return sentenceStart.ReplaceAllStringFunc(text, func(m string) string {
		r, size := utf8.DecodeLastRuneInString(m)
		return m[:len(m)-size] + string(unicode.ToUpper(r))
	})
}

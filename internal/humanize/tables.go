package humanize

import (
	"regexp"
	"sort"
)

// phraseRule replaces every case-insensitive whole-word match of a phrase,
// carrying the matched text's capitalization over to the replacement.
type phraseRule struct {
	from    string
	to      string
	pattern *regexp.Regexp
}

func newPhraseRule(from, to string) phraseRule {
	return phraseRule{
		from:    from,
		to:      to,
		pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`),
	}
}

func (r phraseRule) apply(s string) string {
	return r.pattern.ReplaceAllStringFunc(s, func(m string) string {
		return matchCase(m, r.to)
	})
}

func newPhraseRules(pairs [][2]string) []phraseRule {
	rules := make([]phraseRule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, newPhraseRule(p[0], p[1]))
	}
	return rules
}

// synonyms maps a lowercase formal word to plainer alternatives.
// Alternatives are chosen by index from the seeded stream, so their order is part of
// the output contract.
var synonyms = map[string][]string{
	"utilize":       {"use"},
	"utilizes":      {"uses"},
	"utilized":      {"used"},
	"leverage":      {"use", "tap into"},
	"facilitate":    {"help", "make easier"},
	"demonstrate":   {"show"},
	"demonstrates":  {"shows"},
	"numerous":      {"many", "lots of"},
	"commence":      {"start", "begin"},
	"endeavor":      {"try", "effort"},
	"obtain":        {"get"},
	"purchase":      {"buy"},
	"assist":        {"help"},
	"sufficient":    {"enough"},
	"additional":    {"extra", "more"},
	"various":       {"different", "several"},
	"significant":   {"big", "major", "real"},
	"significantly": {"a lot", "noticeably"},
	"enhance":       {"improve", "boost"},
	"enhanced":      {"improved", "better"},
	"optimal":       {"best", "ideal"},
	"crucial":       {"key", "important"},
	"essential":     {"key", "necessary"},
	"robust":        {"solid", "strong"},
	"seamless":      {"smooth"},
	"seamlessly":    {"smoothly"},
	"comprehensive": {"full", "complete", "thorough"},
	"individuals":   {"people"},
	"beneficial":    {"helpful", "useful"},
	"primarily":     {"mainly", "mostly"},
	"regarding":     {"about"},
	"commonly":      {"often"},
	"initially":     {"at first"},
	"ultimately":    {"in the end"},
}

// contractions are applied longest phrase first so that "is not" wins over "it is"
// inside "it is not".
var contractions = sortedLongestFirst(newPhraseRules([][2]string{
	{"do not", "don't"},
	{"does not", "doesn't"},
	{"did not", "didn't"},
	{"is not", "isn't"},
	{"are not", "aren't"},
	{"was not", "wasn't"},
	{"were not", "weren't"},
	{"cannot", "can't"},
	{"can not", "can't"},
	{"will not", "won't"},
	{"would not", "wouldn't"},
	{"should not", "shouldn't"},
	{"could not", "couldn't"},
	{"have not", "haven't"},
	{"has not", "hasn't"},
	{"it is", "it's"},
	{"that is", "that's"},
	{"there is", "there's"},
	{"what is", "what's"},
	{"we are", "we're"},
	{"they are", "they're"},
	{"you are", "you're"},
	{"I am", "I'm"},
	{"we will", "we'll"},
	{"you will", "you'll"},
	{"they will", "they'll"},
	{"I will", "I'll"},
	{"let us", "let's"},
	{"we have", "we've"},
	{"they have", "they've"},
	{"you have", "you've"},
	{"I have", "I've"},
}))

func sortedLongestFirst(rules []phraseRule) []phraseRule {
	sort.SliceStable(rules, func(i, j int) bool {
		if len(rules[i].from) != len(rules[j].from) {
			return len(rules[i].from) > len(rules[j].from)
		}
		return rules[i].from < rules[j].from
	})
	return rules
}

// formalConnectives are simplified unconditionally above connectiveThreshold.
var formalConnectives = newPhraseRules([][2]string{
	{"in order to", "to"},
	{"prior to", "before"},
	{"subsequently", "after"},
	{"approximately", "about"},
})

// hedges soften absolute-sounding claims.
var hedges = []string{
	"usually",
	"often",
	"generally",
	"typically",
	"in most cases",
	"for the most part",
}

// conjunctions are the words a long sentence may be split before.
var conjunctions = map[string]struct{}{
	"and": {},
	"but": {},
	"so":  {},
}

// toneRules hold tone-specific lexical substitutions, applied in order.
var toneRules = map[Tone][]phraseRule{
	Neutral: nil,
	Casual: newPhraseRules([][2]string{
		{"for example", "like"},
		{"for instance", "say"},
		{"in addition", "plus"},
		{"nevertheless", "still"},
		{"a great deal of", "a lot of"},
		{"children", "kids"},
	}),
	Formal: newPhraseRules([][2]string{
		{"kids", "children"},
		{"okay", "acceptable"},
		{"ok", "acceptable"},
		{"a lot of", "many"},
		{"lots of", "many"},
		{"get rid of", "remove"},
		{"figure out", "determine"},
		{"stuff", "material"},
	}),
	Friendly: newPhraseRules([][2]string{
		{"hello", "hi"},
		{"thank you", "thanks"},
		{"please note", "just a heads-up"},
		{"we regret", "we're sorry"},
		{"purchase", "pick up"},
	}),
}

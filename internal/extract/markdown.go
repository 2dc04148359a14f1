package extract

import (
	"regexp"
	"strings"
	"sync"
)

// markdownPatterns holds compiled patterns for stripping Markdown syntax
type markdownPatterns struct {
	header     *regexp.Regexp
	bulletList *regexp.Regexp
	numberList *regexp.Regexp
	blockquote *regexp.Regexp
	codeFence  *regexp.Regexp
	rule       *regexp.Regexp
	inlineCode *regexp.Regexp
	image      *regexp.Regexp
	link       *regexp.Regexp
	bold       *regexp.Regexp
	italic     *regexp.Regexp
	tableRow   *regexp.Regexp
}

var (
	patterns     *markdownPatterns
	patternsOnce sync.Once
)

func getMarkdownPatterns() *markdownPatterns {
	patternsOnce.Do(func() {
		patterns = &markdownPatterns{
			header:     regexp.MustCompile(`^\s*#{1,6}\s+`),
			bulletList: regexp.MustCompile(`^\s*[-*+]\s+`),
			numberList: regexp.MustCompile(`^\s*\d+[.)]\s+`),
			blockquote: regexp.MustCompile(`^\s*(?:>\s?)+`),
			codeFence:  regexp.MustCompile("^\\s*(?:\x60{3}|~{3})"),
			rule:       regexp.MustCompile(`^\s*(?:[-*_]\s*){3,}$`),
			inlineCode: regexp.MustCompile("\x60([^\x60]+)\x60"),
			image:      regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`),
			link:       regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`),
			bold:       regexp.MustCompile(`(\*\*|__)([^*_\s](?:[^*_]*[^*_\s])?)(\*\*|__)`),
			italic:     regexp.MustCompile(`(^|[^\w*])[*_]([^*_\s](?:[^*_]*[^*_\s])?)[*_]([^\w*]|$)`),
			tableRow:   regexp.MustCompile(`^\s*\|.*\|\s*$`),
		}
	})
	return patterns
}

// MarkdownToText strips Markdown syntax and returns prose paragraphs separated by
// blank lines. Code blocks, tables, images and horizontal rules are dropped; headings
// and list items each become their own paragraph; wrapped lines are joined.
func MarkdownToText(markdown string) string {
	p := getMarkdownPatterns()

	var (
		paragraphs []string
		current    []string
		inCode     bool
	)
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		if p.codeFence.MatchString(line) {
			inCode = !inCode
			flush()
			continue
		}
		if inCode || p.tableRow.MatchString(line) || p.rule.MatchString(line) {
			continue
		}

		line = p.blockquote.ReplaceAllString(line, "")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		standalone := false
		for _, re := range []*regexp.Regexp{p.header, p.bulletList, p.numberList} {
			if re.MatchString(line) {
				line = re.ReplaceAllString(line, "")
				standalone = true
				break
			}
		}

		line = stripInline(p, strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if standalone {
			flush()
			paragraphs = append(paragraphs, line)
			continue
		}
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

func stripInline(p *markdownPatterns, line string) string {
	line = p.image.ReplaceAllString(line, "")
	line = p.link.ReplaceAllString(line, "$1")
	line = p.inlineCode.ReplaceAllString(line, "$1")
	line = p.bold.ReplaceAllString(line, "$2")
	line = p.italic.ReplaceAllString(line, "$1$2$3")
	return strings.TrimSpace(line)
}

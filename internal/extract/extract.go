// Package extract turns fetched documents into plain prose ready for rewriting.
//
// HTML is reduced to its main content (go-readability, or a CSS selector), converted to
// Markdown, and then stripped of Markdown syntax. Markdown sources are stripped directly;
// anything else passes through unchanged.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Options control HTML extraction.
type Options struct {
	// Selector restricts extraction to elements matching a CSS selector.
	Selector string
	// IncludeAll converts the whole page instead of the readability main content.
	IncludeAll bool
	// BaseURL resolves relative links during readability extraction; may be nil.
	BaseURL *url.URL
}

// Text returns the prose in body. contentType may be empty, in which case HTML is
// detected by sniffing.
func Text(body []byte, contentType string, opts Options) (string, error) {
	switch {
	case isHTMLType(contentType) || (contentType == "" && IsHTML(body)):
		markdown, err := ToMarkdown(bytes.NewReader(body), opts)
		if err != nil {
			return "", err
		}
		return MarkdownToText(markdown), nil
	case contentType == "text/markdown" || contentType == "text/x-markdown":
		return MarkdownToText(string(body)), nil
	default:
		return string(body), nil
	}
}

// IsHTML reports whether body looks like an HTML document.
func IsHTML(body []byte) bool {
	return strings.HasPrefix(http.DetectContentType(body), "text/html")
}

func isHTMLType(contentType string) bool {
	return contentType == "text/html" || contentType == "application/xhtml+xml"
}

// ToMarkdown extracts content from HTML and converts it to Markdown.
// A selector takes precedence over IncludeAll.
func ToMarkdown(content io.Reader, opts Options) (string, error) {
	if opts.Selector != "" {
		return extractWithSelector(content, opts.Selector)
	}
	if opts.IncludeAll {
		return convertAllHTML(content)
	}
	return extractMainContent(content, opts.BaseURL)
}

// extractMainContent uses go-readability to find the article body
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return convertToMarkdown(article.Content)
}

func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		if html, err := goquery.OuterHtml(s); err == nil {
			parts = append(parts, html)
		}
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}
	return convertToMarkdown(strings.Join(parts, "\n"))
}

func convertAllHTML(content io.Reader) (string, error) {
	html, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}
	return convertToMarkdown(string(html))
}

func convertToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	// scripts, styles and embedded media carry no prose
	converter.Remove("script", "style", "noscript", "iframe", "svg", "form")

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

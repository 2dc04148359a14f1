package extract_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/humanize/internal/extract"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Test Article</title>
    <style>p { color: red; }</style>
</head>
<body>
    <header>
        <h1>Site Header</h1>
        <nav><a href="/">Home</a> <a href="/about">About</a></nav>
    </header>
    <main>
        <article class="post">
            <h1>Main Article Title</h1>
            <p>This is the main content of the article. It contains important information about the
            quarterly results and how the team reached them over several long months of work.</p>
            <p>This is a second paragraph with <strong>bold text</strong> and <em>italic text</em>,
            plus a <a href="https://example.com">helpful link</a> for further reading on the subject.</p>
            <p>A third paragraph adds enough body text for the readability scorer to treat this
            block as the article, describing the hiring plan, the budget review, and the new office
            that opens next spring once the lease is signed and the movers are booked.</p>
            <ul>
                <li>First list item</li>
                <li>Second list item</li>
            </ul>
        </article>
    </main>
    <aside>
        <p class="sidebar">This is sidebar content that should be filtered out.</p>
    </aside>
    <script>console.log("tracking");</script>
    <footer>
        <p>Footer content</p>
    </footer>
</body>
</html>`

func TestTextFromHTML(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		opts        extract.Options
		contains    []string
		excludes    []string
		expectError bool
	}{
		{
			name:        "main content",
			contentType: "text/html",
			contains:    []string{"This is the main content of the article.", "bold text", "helpful link"},
			excludes:    []string{"**", "](", "console.log", "color: red"},
		},
		{
			name:     "sniffed without content type",
			contains: []string{"This is the main content of the article."},
		},
		{
			name:        "selector",
			contentType: "text/html",
			opts:        extract.Options{Selector: "article"},
			contains:    []string{"Main Article Title", "First list item\n\nSecond list item"},
			excludes:    []string{"Site Header", "sidebar content", "Footer content"},
		},
		{
			name:        "include all",
			contentType: "text/html",
			opts:        extract.Options{IncludeAll: true},
			contains:    []string{"Site Header", "Footer content", "sidebar content"},
			excludes:    []string{"console.log"},
		},
		{
			name:        "missing selector",
			contentType: "text/html",
			opts:        extract.Options{Selector: ".does-not-exist"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract.Text([]byte(articleHTML), tt.contentType, tt.opts)
			if tt.expectError {
				if err == nil {
					t.Fatal("Text() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Text() missing %q in:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Text() unexpectedly contains %q in:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestTextPassesPlainThrough(t *testing.T) {
	plain := "Just a note.\n\n**Not** stripped when plain."
	got, err := extract.Text([]byte(plain), "text/plain", extract.Options{})
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != plain {
		t.Errorf("Text() = %q, want input unchanged", got)
	}

	got, err = extract.Text([]byte(plain), "text/markdown", extract.Options{})
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Just a note.\n\nNot stripped when plain."; got != want {
		t.Errorf("Text() markdown = %q, want %q", got, want)
	}
}

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "heading and wrapped paragraph",
			input:    "# Title\n\nFirst line\nwraps here.",
			expected: "Title\n\nFirst line wraps here.",
		},
		{
			name:     "list items become paragraphs",
			input:    "Intro text.\n- one\n* two\n3. three",
			expected: "Intro text.\n\none\n\ntwo\n\nthree",
		},
		{
			name:     "inline syntax",
			input:    "Use `go test` with **care** and *focus*, see [docs](https://go.dev). ![logo](x.png)",
			expected: "Use go test with care and focus, see docs.",
		},
		{
			name:     "code and tables dropped",
			input:    "Before.\n\n```go\nfmt.Println(1)\n```\n\n| a | b |\n|---|---|\n\nAfter.",
			expected: "Before.\n\nAfter.",
		},
		{
			name:     "blockquote and rule",
			input:    "> Quoted words.\n\n---\n\nEnd.",
			expected: "Quoted words.\n\nEnd.",
		},
		{
			name:     "snake case survives",
			input:    "Set max_retries to two.",
			expected: "Set max_retries to two.",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.MarkdownToText(tt.input); got != tt.expected {
				t.Errorf("MarkdownToText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"<!DOCTYPE html><html></html>", true},
		{"  <html><body>x</body></html>", true},
		{"<p>paragraph</p>", true},
		{"Plain prose with a < sign.", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := extract.IsHTML([]byte(tt.input)); got != tt.expected {
			t.Errorf("IsHTML(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

package classify_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chriscorrea/humanize/internal/classify"
)

func TestNewClassifier(t *testing.T) {
	if classify.NewClassifier() == nil {
		t.Fatal("NewClassifier() returned nil")
	}
}

func TestClassifier_IsBoilerplate(t *testing.T) {
	classifier := classify.NewClassifier()

	tests := []struct {
		name        string
		text        string
		index       int
		total       int
		expected    bool
		description string
	}{
		{
			name:        "empty paragraph",
			text:        "",
			index:       0,
			total:       1,
			expected:    true,
			description: "paragraphs without words are boilerplate",
		},
		{
			name:        "punctuation only",
			text:        "  * * *  ",
			index:       2,
			total:       5,
			expected:    true,
			description: "separators are boilerplate",
		},
		{
			name:        "newsletter prompt at start",
			text:        "Subscribe to our newsletter for updates",
			index:       0,
			total:       10,
			expected:    true,
			description: "marketing prompts at the top are dropped",
		},
		{
			name:        "share bar at start",
			text:        "Share this article on Twitter Facebook LinkedIn",
			index:       0,
			total:       10,
			expected:    true,
			description: "social share bars are dropped",
		},
		{
			name:        "copyright footer at end",
			text:        "Copyright 2026. All rights reserved.",
			index:       9,
			total:       10,
			expected:    true,
			description: "legal footers are dropped",
		},
		{
			name:        "prose in middle",
			text:        "The carrot cake recipe requires sifting flour through a fine mesh sieve to achieve the perfect texture.",
			index:       5,
			total:       10,
			expected:    false,
			description: "article prose is kept",
		},
		{
			name:        "prose at the edge",
			text:        "The bakery opened at dawn and sold warm bread to the whole neighborhood.",
			index:       0,
			total:       10,
			expected:    false,
			description: "prose without boilerplate words survives the strict edge threshold",
		},
		{
			name:        "short document is lenient",
			text:        "Please share the results with the whole team.",
			index:       0,
			total:       2,
			expected:    false,
			description: "small documents use the lenient threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsBoilerplate(tt.text, tt.index, tt.total); got != tt.expected {
				t.Errorf("IsBoilerplate() = %v, expected %v\nText: %q\nPosition: %d/%d\nDescription: %s",
					got, tt.expected, tt.text, tt.index+1, tt.total, tt.description)
			}
		})
	}
}

func TestClassifier_PositionThreshold(t *testing.T) {
	classifier := classify.NewClassifier()

	// one boilerplate word in eight sits between the edge and middle thresholds
	text := "Please share the results with the whole team."

	if !classifier.IsBoilerplate(text, 0, 10) {
		t.Error("expected the first paragraph to be classified as boilerplate")
	}
	if !classifier.IsBoilerplate(text, 9, 10) {
		t.Error("expected the last paragraph to be classified as boilerplate")
	}
	if classifier.IsBoilerplate(text, 5, 10) {
		t.Error("expected a middle paragraph to be kept")
	}
}

func TestClassifier_InvalidPositions(t *testing.T) {
	classifier := classify.NewClassifier()

	tests := []struct {
		name  string
		index int
		total int
	}{
		{"zero total", 0, 0},
		{"negative index", -1, 5},
		{"index beyond total", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if classifier.IsBoilerplate("Copyright all rights reserved", tt.index, tt.total) {
				t.Error("invalid positions should never be classified as boilerplate")
			}
		})
	}
}

func TestClassifier_Filter(t *testing.T) {
	classifier := classify.NewClassifier()

	paragraphs := []string{
		"Home About Contact",
		"The bakery opened at dawn and sold warm bread to the whole neighborhood.",
		"By noon the shelves were empty and the line reached the corner.",
		"The owner plans to hire two more bakers before the winter holidays.",
		"Copyright 2026. All rights reserved.",
	}

	want := paragraphs[1:4]
	if diff := cmp.Diff(want, classifier.Filter(paragraphs)); diff != "" {
		t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
	}

	if got := classifier.Filter(nil); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}

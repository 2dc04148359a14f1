package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/humanize/internal/app"
	"github.com/chriscorrea/humanize/internal/humanize"
)

// isolate keeps the user's config file and API keys out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"OPENAI_API_KEY", "HUMANIZE_API_KEY", "HUMANIZE_BASE_URL", "HUMANIZE_MODEL", "HUMANIZE_CANDIDATES"} {
		t.Setenv(key, "")
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	isolate(t)

	root := newRootCmd()
	if err := root.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	cfg, err := buildConfig(root, nil, app.Local)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if len(cfg.Sources) != 1 || cfg.Sources[0] != "-" {
		t.Errorf("Sources = %v, want stdin", cfg.Sources)
	}
	if cfg.Style != humanize.DefaultOptions() {
		t.Errorf("Style = %+v, want defaults", cfg.Style)
	}
	if cfg.OutputFormat != app.Text {
		t.Errorf("OutputFormat = %v, want Text", cfg.OutputFormat)
	}
	if cfg.Completion.Candidates != 3 {
		t.Errorf("Candidates = %d, want 3", cfg.Completion.Candidates)
	}
}

func TestBuildConfigFlags(t *testing.T) {
	isolate(t)

	root := newRootCmd()
	deep, _, err := root.Find([]string{"deep"})
	if err != nil {
		t.Fatalf("Find(deep) error = %v", err)
	}
	args := []string{
		"--creativity", "0.4", "--tone", "Casual", "--personal", "--flatten",
		"--candidates", "5", "--model", "local-model", "--base-url", "http://localhost:8080/v1",
		"--local-fallback", "--json", "--stats", "-q",
	}
	if err := deep.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	cfg, err := buildConfig(deep, []string{"a.txt", "b.txt"}, app.Deep)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	want := humanize.Options{Creativity: 0.4, Tone: humanize.Casual, AddPersonalTouches: true, PreserveFormatting: false}
	if cfg.Style != want {
		t.Errorf("Style = %+v, want %+v", cfg.Style, want)
	}
	if cfg.Completion.Candidates != 5 || cfg.Completion.Model != "local-model" || cfg.Completion.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("Completion = %+v", cfg.Completion)
	}
	if !cfg.LocalFallback || !cfg.Stats || !cfg.Quiet {
		t.Errorf("LocalFallback=%v Stats=%v Quiet=%v, want all true", cfg.LocalFallback, cfg.Stats, cfg.Quiet)
	}
	if cfg.OutputFormat != app.JSON {
		t.Errorf("OutputFormat = %v, want JSON", cfg.OutputFormat)
	}
	if cfg.Mode != app.Deep || len(cfg.Sources) != 2 {
		t.Errorf("Mode = %v, Sources = %v", cfg.Mode, cfg.Sources)
	}
}

func TestBuildConfigFileAndOverride(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "style:\n  creativity: 0.2\n  tone: formal\n  preserve_formatting: true\nrules: /tmp/rules.yaml\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--config", path, "--tone", "friendly"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	cfg, err := buildConfig(root, []string{"draft.txt"}, app.Local)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.Style.Creativity != 0.2 {
		t.Errorf("Creativity = %v, want 0.2 from file", cfg.Style.Creativity)
	}
	if cfg.Style.Tone != humanize.Friendly {
		t.Errorf("Tone = %v, want friendly from flag", cfg.Style.Tone)
	}
	if cfg.RulesPath != "/tmp/rules.yaml" {
		t.Errorf("RulesPath = %q", cfg.RulesPath)
	}
}

func TestBuildConfigRejectsUnknownTone(t *testing.T) {
	isolate(t)

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--tone", "sarcastic"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if _, err := buildConfig(root, nil, app.Local); err == nil {
		t.Error("buildConfig() expected error for unknown tone")
	}
}

func TestScoreRequiresTwoArgs(t *testing.T) {
	isolate(t)

	root := newRootCmd()
	root.SetArgs([]string{"score", "only.txt"})
	if err := root.Execute(); err == nil {
		t.Error("Execute() expected error for a single score argument")
	}
}

func TestToneFlagHelpListsTones(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"", "deep"} {
		cmd := root
		if name != "" {
			var err error
			if cmd, _, err = root.Find([]string{name}); err != nil {
				t.Fatalf("Find(%s) error = %v", name, err)
			}
		}
		usage := cmd.Flags().Lookup("tone").Usage
		for _, tone := range humanize.Tones {
			if !strings.Contains(usage, string(tone)) {
				t.Errorf("%q --tone help %q does not mention %q", cmd.Name(), usage, tone)
			}
		}
	}
}

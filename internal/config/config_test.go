package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chriscorrea/humanize/internal/humanize"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "HUMANIZE_API_KEY", "HUMANIZE_BASE_URL", "HUMANIZE_MODEL", "HUMANIZE_CANDIDATES"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty path should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
style:
  tone: casual
  creativity: 3
completion:
  model: local-model
  base_url: http://localhost:8080/v1/
  candidates: 5
  timeout: 30s
rules: /tmp/rules.yaml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Style.Tone = humanize.Casual
	want.Style.Creativity = 1 // clamped
	want.Completion.Model = "local-model"
	want.Completion.BaseURL = "http://localhost:8080/v1/"
	want.Completion.Candidates = 5
	want.Completion.Timeout = 30 * time.Second
	want.Rules = "/tmp/rules.yaml"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "style: [unclosed\n")); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("OPENAI_API_KEY sets the key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "oa-key")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Completion.APIKey != "oa-key" {
			t.Errorf("APIKey = %q, want oa-key", cfg.Completion.APIKey)
		}
	})

	t.Run("HUMANIZE_API_KEY wins over OPENAI_API_KEY", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "oa-key")
		t.Setenv("HUMANIZE_API_KEY", "hz-key")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Completion.APIKey != "hz-key" {
			t.Errorf("APIKey = %q, want hz-key", cfg.Completion.APIKey)
		}
	})

	t.Run("environment wins over file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HUMANIZE_MODEL", "env-model")
		t.Setenv("HUMANIZE_BASE_URL", "http://env/")
		t.Setenv("HUMANIZE_CANDIDATES", "7")

		cfg, err := Load(writeConfig(t, "completion:\n  model: file-model\n  candidates: 2\n"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Completion.Model != "env-model" || cfg.Completion.BaseURL != "http://env/" || cfg.Completion.Candidates != 7 {
			t.Errorf("Completion = %+v", cfg.Completion)
		}
	})

	t.Run("invalid candidate count", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HUMANIZE_CANDIDATES", "many")
		if _, err := Load(""); err == nil {
			t.Error("Load() should reject a non-numeric HUMANIZE_CANDIDATES")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *CompletionConfig)
		wantErr error
		fails   bool
	}{
		{"api key", func(c *CompletionConfig) { c.APIKey = "k" }, nil, false},
		{"local server without key", func(c *CompletionConfig) { c.BaseURL = "http://localhost:11434/v1/" }, nil, false},
		{"no credentials", func(c *CompletionConfig) {}, ErrMissingAPIKey, true},
		{"zero candidates", func(c *CompletionConfig) { c.APIKey = "k"; c.Candidates = 0 }, nil, true},
		{"too many candidates", func(c *CompletionConfig) { c.APIKey = "k"; c.Candidates = 99 }, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default().Completion
			tt.modify(&c)
			err := c.Validate()
			if (err != nil) != tt.fails {
				t.Fatalf("Validate() error = %v, fails %v", err, tt.fails)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient(t *testing.T) {
	c := Default().Completion
	c.APIKey = "k"
	client := c.Client()
	if client.APIKey != "k" || client.Model != c.Model || client.Timeout != c.Timeout || client.MaxRetries != c.MaxRetries {
		t.Errorf("Client() = %+v, does not mirror %+v", client, c)
	}
}

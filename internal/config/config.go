// Package config loads persistent settings for humanize.
//
// Settings come from three layers, lowest precedence first: built-in defaults, a YAML
// file, and environment variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/humanize/internal/completion"
	"github.com/chriscorrea/humanize/internal/humanize"
	"github.com/chriscorrea/humanize/internal/rewrite"
)

// ErrMissingAPIKey is returned by Validate when deep mode has no credentials.
var ErrMissingAPIKey = errors.New("no API key configured (set HUMANIZE_API_KEY or OPENAI_API_KEY, or api_key in the config file)")

// Config holds every persisted setting.
type Config struct {
	Style      humanize.Options `yaml:"style"`
	Completion CompletionConfig `yaml:"completion"`

	// Rules is an optional path to a YAML denoise rule file replacing the embedded rules.
	Rules string `yaml:"rules"`
}

// CompletionConfig configures the completion endpoint used in deep mode.
type CompletionConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Candidates  int           `yaml:"candidates"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Style: humanize.DefaultOptions(),
		Completion: CompletionConfig{
			Model:       completion.DefaultModel,
			Candidates:  rewrite.DefaultCandidates,
			Concurrency: rewrite.DefaultConcurrency,
			Timeout:     completion.DefaultTimeout,
			MaxRetries:  completion.DefaultMaxRetries,
		},
	}
}

// DefaultPath returns $HOME/.config/humanize/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "humanize", "config.yaml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.Style = humanize.ValidateOptions(&cfg.Style)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Completion.APIKey = key
	}
	// the tool-specific key wins over the generic one
	if key := os.Getenv("HUMANIZE_API_KEY"); key != "" {
		c.Completion.APIKey = key
	}
	if url := os.Getenv("HUMANIZE_BASE_URL"); url != "" {
		c.Completion.BaseURL = url
	}
	if model := os.Getenv("HUMANIZE_MODEL"); model != "" {
		c.Completion.Model = model
	}
	if raw := strings.TrimSpace(os.Getenv("HUMANIZE_CANDIDATES")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid HUMANIZE_CANDIDATES %q: want a positive integer", raw)
		}
		c.Completion.Candidates = n
	}
	return nil
}

// Validate checks the settings deep mode needs.
func (c *CompletionConfig) Validate() error {
	if c.APIKey == "" && c.BaseURL == "" {
		return ErrMissingAPIKey
	}
	if c.Candidates <= 0 {
		return fmt.Errorf("candidates must be positive, got %d", c.Candidates)
	}
	if c.Candidates > rewrite.MaxCandidates {
		return fmt.Errorf("candidates must be at most %d, got %d", rewrite.MaxCandidates, c.Candidates)
	}
	return nil
}

// Client returns the completion client settings.
func (c *CompletionConfig) Client() completion.Config {
	return completion.Config{
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Model:      c.Model,
		Timeout:    c.Timeout,
		MaxRetries: c.MaxRetries,
	}
}

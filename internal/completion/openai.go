// Package completion adapts OpenAI-compatible chat completion APIs to rewrite.Completer.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/chriscorrea/humanize/internal/rewrite"
)

// Defaults for Config fields left empty.
const (
	DefaultModel      = "gpt-4o-mini"
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 2
)

// Config describes how to reach a completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// MaxRetries is the number of retries after a failed request; zero disables them.
	MaxRetries int
	HTTPClient *http.Client
}

// OpenAI issues chat completions through the openai-go client.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a client for cfg. BaseURL may point at any OpenAI-compatible server.
func NewOpenAI(cfg Config) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []openaiopt.RequestOption{
		openaiopt.WithHTTPClient(httpClient),
		openaiopt.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.APIKey != "" {
		opts = append(opts, openaiopt.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{client: openai.NewClient(opts...), model: cfg.Model}
}

// Model returns the model name sent with each request.
func (o *OpenAI) Model() string {
	return o.model
}

// Complete sends req as a system + user chat and returns the first choice's content.
func (o *OpenAI) Complete(ctx context.Context, req rewrite.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{OfString: openai.String(req.System)},
			}},
			{OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{OfString: openai.String(req.User)},
			}},
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("completion request failed with status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("Completion received", "model", o.model, "temperature", req.Temperature,
		"finishReason", resp.Choices[0].FinishReason, "length", len(content), "elapsed", time.Since(start))
	if content == "" {
		return "", errors.New("completion response is empty")
	}
	return content, nil
}

var _ rewrite.Completer = (*OpenAI)(nil)

package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// TokenCounter counts tiktoken tokens with the cl100k_base encoding.
// It is safe for concurrent use.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

// NewTokenCounter loads the cl100k_base encoding.
func NewTokenCounter() (*TokenCounter, error) {
	encoding, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s encoding: %w", tokenEncoding, err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	n := len(tc.encoding.Encode(text, nil, nil))
	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", n)
	return n
}

// Name returns the counting method with its encoding.
func (tc *TokenCounter) Name() string {
	return "tokens (" + tokenEncoding + ")"
}

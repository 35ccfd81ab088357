// Package llm provides the model client used for impact analysis and
// artifact generation. Every caller treats the model as best-effort: any
// error routes the caller to its deterministic fallback path.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aligntrack/internal/config"
)

// Client is the completion contract the pipeline consumes.
type Client interface {
	// Complete sends a prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Model returns the configured model identifier.
	Model() string
}

// ErrNotConfigured is returned by New when no provider or API key is set.
// Callers use fallback generation exclusively in that case.
var ErrNotConfigured = errors.New("llm: no provider configured")

// JSONGuard is appended to every prompt sent to the model. Generators
// depend on parseable output and on the model not inventing numbers.
const JSONGuard = "\n\nIMPORTANT: Respond with valid JSON only, no surrounding prose or markdown fences. Do not fabricate statistics, metrics, or customer quotes; omit numbers you were not given."

// WithJSONGuard appends the JSON-only instruction to a prompt.
func WithJSONGuard(prompt string) string {
	return strings.TrimRight(prompt, "\n") + JSONGuard
}

// New builds a client from config: the provider selects the implementation,
// and a small LRU cache wraps it when cache_size is positive.
func New(cfg config.LLMConfig) (Client, error) {
	var (
		client Client
		err    error
	)
	switch cfg.Provider {
	case "anthropic":
		if cfg.APIKey == "" {
			return nil, ErrNotConfigured
		}
		client = NewAnthropic(cfg)
	case "gemini":
		if cfg.APIKey == "" {
			return nil, ErrNotConfigured
		}
		client, err = NewGemini(cfg)
		if err != nil {
			return nil, err
		}
	case "", "none":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}

	if cfg.CacheSize > 0 {
		client, err = NewCaching(client, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	return client, nil
}

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"aligntrack/internal/config"
	"aligntrack/internal/logging"
)

// Gemini calls the Gemini API through the official genai SDK.
type Gemini struct {
	client     *genai.Client
	model      string
	maxRetries int
	timeout    time.Duration
}

// NewGemini creates a client from config.
func NewGemini(cfg config.LLMConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Gemini{
		client:     client,
		model:      model,
		maxRetries: maxRetries,
		timeout:    cfg.ParsedTimeout(),
	}, nil
}

// Model returns the configured model identifier.
func (c *Gemini) Model() string { return c.model }

// Complete sends a prompt and returns the completion text, retrying
// transient failures with exponential backoff.
func (c *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.LLMDebug("[Gemini] Complete: model=%s prompt_len=%d", c.model, len(prompt))

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			time.Sleep(time.Duration(1<<uint(i-1)) * time.Second)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			lastErr = fmt.Errorf("generate content failed: %w", err)
			continue
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			lastErr = fmt.Errorf("no completion returned")
			continue
		}
		logging.LLM("[Gemini] Complete: completed in %v response_len=%d", time.Since(startTime), len(text))
		return text, nil
	}

	logging.LLMError("[Gemini] Complete: max retries exceeded after %v: %v", time.Since(startTime), lastErr)
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

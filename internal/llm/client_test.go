package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aligntrack/internal/config"
)

func TestNewUnconfigured(t *testing.T) {
	tests := []config.LLMConfig{
		{},
		{Provider: "none"},
		{Provider: "anthropic"}, // no key
		{Provider: "gemini"},    // no key
	}
	for _, cfg := range tests {
		if _, err := New(cfg); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("New(%+v) err = %v, want ErrNotConfigured", cfg, err)
		}
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(config.LLMConfig{Provider: "watson", APIKey: "k"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestWithJSONGuard(t *testing.T) {
	got := WithJSONGuard("Analyze this.\n")
	if !strings.HasPrefix(got, "Analyze this.") {
		t.Errorf("prompt prefix lost: %q", got)
	}
	if !strings.Contains(got, "valid JSON only") {
		t.Errorf("guard missing: %q", got)
	}
}

func TestAnthropicComplete(t *testing.T) {
	var gotReq anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "  hello  "}},
		})
	}))
	defer server.Close()

	client := NewAnthropic(config.LLMConfig{
		Provider: "anthropic",
		APIKey:   "test-key",
		Model:    "claude-test",
		BaseURL:  server.URL,
		Timeout:  "5s",
	})

	got, err := client.Complete(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello" {
		t.Errorf("response = %q, want trimmed hello", got)
	}
	if gotReq.Model != "claude-test" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "ping" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestAnthropicNonRetryableStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewAnthropic(config.LLMConfig{APIKey: "bad", Model: "m", BaseURL: server.URL, Timeout: "5s"})
	if _, err := client.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("401 should not be retried, got %d calls", calls)
	}
}

func TestAnthropicRetriesTransient(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "ok"}},
		})
	}))
	defer server.Close()

	client := NewAnthropic(config.LLMConfig{APIKey: "k", Model: "m", BaseURL: server.URL, Timeout: "5s", MaxRetries: 2})
	got, err := client.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Errorf("got %q after %d calls", got, calls)
	}
}

func TestCachingComplete(t *testing.T) {
	fake := NewFake(`{"a": 1}`)
	cached, err := NewCaching(fake, 8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		got, err := cached.Complete(context.Background(), "same prompt")
		if err != nil || got != `{"a": 1}` {
			t.Fatalf("Complete #%d = %q, %v", i, got, err)
		}
	}
	if fake.CallCount() != 1 {
		t.Errorf("inner calls = %d, want 1", fake.CallCount())
	}

	if _, err := cached.Complete(context.Background(), "different prompt"); err != nil {
		t.Fatal(err)
	}
	if fake.CallCount() != 2 {
		t.Errorf("inner calls = %d, want 2", fake.CallCount())
	}
}

func TestCachingDoesNotCacheErrors(t *testing.T) {
	fake := &Fake{Err: errors.New("down")}
	cached, err := NewCaching(fake, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := cached.Complete(context.Background(), "p"); err == nil {
			t.Fatal("expected error")
		}
	}
	if fake.CallCount() != 2 {
		t.Errorf("errors must not be cached, inner calls = %d", fake.CallCount())
	}
}

func TestFakeSequence(t *testing.T) {
	fake := &Fake{Responses: []string{"one", "two"}}
	ctx := context.Background()
	for _, want := range []string{"one", "two", "two"} {
		got, _ := fake.Complete(ctx, "p")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

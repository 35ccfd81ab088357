package llm

import (
	"context"
	"sync"
)

// Fake is an in-memory Client for tests. Responses are returned in order;
// the last one repeats once the queue is exhausted. A non-nil Err wins over
// any queued response.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Prompts   []string
	next      int
}

// NewFake returns a Fake that always answers with response.
func NewFake(response string) *Fake {
	return &Fake{Responses: []string{response}}
}

// Model identifies the fake in logs and cache keys.
func (f *Fake) Model() string { return "fake" }

// Complete records the prompt and returns the next queued response.
func (f *Fake) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	i := f.next
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	} else {
		f.next++
	}
	return f.Responses[i], nil
}

// CallCount returns how many completions were requested.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts)
}

package sources

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"aligntrack/internal/snapshot"
)

// tracker is the shared shape of the Jira and Linear integrations: a mutable
// ticket list seeded with demo fixtures.
type tracker struct {
	name    string
	mu      sync.Mutex
	tickets []snapshot.Ticket
}

func (t *tracker) Name() string { return t.name }

func (t *tracker) Collect(_ context.Context) (Payload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]snapshot.Ticket, len(t.tickets))
	copy(out, t.tickets)
	return Payload{Tickets: out}, nil
}

// Ticket returns a ticket by id.
func (t *tracker) Ticket(id string) (snapshot.Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tk := range t.tickets {
		if tk.ID == id {
			return tk, true
		}
	}
	return snapshot.Ticket{}, false
}

// Upsert replaces a ticket in place or appends it.
func (t *tracker) Upsert(ticket snapshot.Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, tk := range t.tickets {
		if tk.ID == ticket.ID {
			t.tickets[i] = ticket
			return
		}
	}
	t.tickets = append(t.tickets, ticket)
}

// Remove deletes a ticket by id.
func (t *tracker) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, tk := range t.tickets {
		if tk.ID == id {
			t.tickets = append(t.tickets[:i], t.tickets[i+1:]...)
			return true
		}
	}
	return false
}

// Create adds a new ticket with a generated id and returns it.
func (t *tracker) Create(title, description, priority string) snapshot.Ticket {
	ticket := snapshot.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      "To Do",
		Priority:    priority,
	}
	t.Upsert(ticket)
	return ticket
}

// Jira is the Jira integration, seeded with demo tickets.
type Jira struct{ tracker }

func NewJira() *Jira {
	return &Jira{tracker{
		name: "jira",
		tickets: []snapshot.Ticket{
			{ID: "PROJ-1", Title: "Implement document change detection", Description: "Create a system that detects changes in connected documents.", Status: "In Progress", Priority: "High", Assignee: "John Doe"},
			{ID: "PROJ-2", Title: "Build artifact generation engine", Description: "Create a system that generates project descriptions and messaging.", Status: "To Do", Priority: "Medium", Assignee: "Jane Smith"},
			{ID: "PROJ-3", Title: "Design minimalist UI", Description: "Create a clean, text-focused interface for the application.", Status: "Done", Priority: "Low", Assignee: "Alex Johnson"},
		},
	}}
}

// Linear is the Linear integration, seeded with demo tickets.
type Linear struct{ tracker }

func NewLinear() *Linear {
	return &Linear{tracker{
		name: "linear",
		tickets: []snapshot.Ticket{
			{ID: "LIN-1", Title: "Implement document sync mechanism", Description: "Create a bidirectional sync system that keeps documents in sync.", Status: "In Progress", Priority: "High", Assignee: "Jamie Wong"},
			{ID: "LIN-2", Title: "Create objection generation system", Description: "Build a system that generates thoughtful objections to challenge user thinking.", Status: "To Do", Priority: "High", Assignee: "Alex Johnson"},
			{ID: "LIN-3", Title: "Design improved UI for objections", Description: "Create a clean interface for displaying objections in a constructive manner.", Status: "To Do", Priority: "Medium", Assignee: "Taylor Swift"},
		},
	}}
}

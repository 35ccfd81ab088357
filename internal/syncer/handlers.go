package syncer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"aligntrack/internal/extraction"
	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

// ErrSourceNotRegistered is returned when a webhook arrives for an
// integration the syncer doesn't have.
var ErrSourceNotRegistered = errors.New("source not registered")

// JiraEvent is the webhook payload shape Jira sends for issue changes.
type JiraEvent struct {
	WebhookEvent string `json:"webhookEvent"`
	Issue        struct {
		Key string `json:"key"`
	} `json:"issue"`
}

// LinearEvent is the webhook payload shape Linear sends for issue changes.
type LinearEvent struct {
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// DocsEvent is the webhook payload shape for Google Docs change pings.
type DocsEvent struct {
	DocumentID string `json:"documentId"`
}

// ConfluenceEvent is the webhook payload shape Confluence sends for page
// changes.
type ConfluenceEvent struct {
	Page struct {
		ID string `json:"id"`
	} `json:"page"`
}

// clone deep-copies a snapshot through its stored form.
func clone(snap *snapshot.ProjectSnapshot) (*snapshot.ProjectSnapshot, error) {
	data, err := snap.Marshal()
	if err != nil {
		return nil, err
	}
	return snapshot.Unmarshal(data)
}

// latestForHandler loads the previous snapshot a webhook applies to. No
// history means nothing to update against.
func (s *Syncer) latestForHandler() (*snapshot.ProjectSnapshot, error) {
	prev, err := s.store.LatestSnapshot()
	if err != nil {
		return nil, err
	}
	if prev == nil {
		logging.SyncDebug("webhook before first sync, ignoring")
		return nil, nil
	}
	return prev, nil
}

// HandleJira applies a Jira issue event. Returns nil when the event carries
// no meaningful change.
func (s *Syncer) HandleJira(ctx context.Context, ev JiraEvent) (*UpdateResult, error) {
	if s.jira == nil {
		return nil, ErrSourceNotRegistered
	}
	if ev.Issue.Key == "" {
		return nil, nil
	}
	prev, err := s.latestForHandler()
	if err != nil || prev == nil {
		return nil, err
	}

	next, err := clone(prev)
	if err != nil {
		return nil, err
	}

	if ev.WebhookEvent == "jira:issue_deleted" {
		if !removeTicket(next, ev.Issue.Key) {
			return nil, nil
		}
		return s.process(ctx, next)
	}

	updated, ok := s.jira.Ticket(ev.Issue.Key)
	if !ok {
		return nil, fmt.Errorf("jira ticket %s not found", ev.Issue.Key)
	}
	if !applyTicket(next, prev, updated) {
		return nil, nil
	}
	return s.process(ctx, next)
}

// HandleLinear applies a Linear issue event.
func (s *Syncer) HandleLinear(ctx context.Context, ev LinearEvent) (*UpdateResult, error) {
	if s.linear == nil {
		return nil, ErrSourceNotRegistered
	}
	if ev.Data.ID == "" || ev.Action == "" {
		return nil, nil
	}
	prev, err := s.latestForHandler()
	if err != nil || prev == nil {
		return nil, err
	}

	next, err := clone(prev)
	if err != nil {
		return nil, err
	}

	switch ev.Action {
	case "remove":
		if !removeTicket(next, ev.Data.ID) {
			return nil, nil
		}
	case "create", "update":
		updated, ok := s.linear.Ticket(ev.Data.ID)
		if !ok {
			return nil, fmt.Errorf("linear ticket %s not found", ev.Data.ID)
		}
		if !applyTicket(next, prev, updated) {
			return nil, nil
		}
	default:
		return nil, nil
	}
	return s.process(ctx, next)
}

// HandleDocs applies a Google Docs change ping by re-extracting the
// document and replacing its snapshot section.
func (s *Syncer) HandleDocs(ctx context.Context, ev DocsEvent) (*UpdateResult, error) {
	if s.googleDocs == nil {
		return nil, ErrSourceNotRegistered
	}
	if ev.DocumentID == "" {
		return nil, nil
	}
	prev, err := s.latestForHandler()
	if err != nil || prev == nil {
		return nil, err
	}

	kind, ok := s.googleDocs.DocumentKind(ev.DocumentID)
	if !ok {
		return nil, nil
	}
	raw := s.googleDocs.Raw(kind)
	if raw == "" {
		return nil, nil
	}

	next, err := clone(prev)
	if err != nil {
		return nil, err
	}
	extracted := extraction.Extract(raw, kind)
	*next.Doc(kind) = extracted
	if next.Doc(kind).Equal(prev.Doc(kind)) {
		return nil, nil
	}
	return s.process(ctx, next)
}

// HandleConfluence applies a Confluence page event. Unlabeled pages are
// ignored; labeled content merges into its routed document.
func (s *Syncer) HandleConfluence(ctx context.Context, ev ConfluenceEvent) (*UpdateResult, error) {
	if s.confluence == nil {
		return nil, ErrSourceNotRegistered
	}
	if ev.Page.ID == "" {
		return nil, nil
	}
	prev, err := s.latestForHandler()
	if err != nil || prev == nil {
		return nil, err
	}

	page, ok := s.confluence.Page(ev.Page.ID)
	if !ok {
		return nil, nil
	}
	kind, ok := page.Kind()
	if !ok {
		return nil, nil
	}

	next, err := clone(prev)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(page.Content))
	for key := range page.Content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		next.Doc(kind).SetText(key, page.Content[key])
	}
	if next.Doc(kind).Equal(prev.Doc(kind)) {
		return nil, nil
	}
	return s.process(ctx, next)
}

// removeTicket drops a ticket by id, reporting whether it was present.
func removeTicket(snap *snapshot.ProjectSnapshot, id string) bool {
	for i, t := range snap.Tickets {
		if t.ID == id {
			snap.Tickets = append(snap.Tickets[:i], snap.Tickets[i+1:]...)
			return true
		}
	}
	return false
}

// applyTicket upserts a ticket into next, reporting whether anything
// meaningful changed relative to prev.
func applyTicket(next, prev *snapshot.ProjectSnapshot, ticket snapshot.Ticket) bool {
	old, existed := prev.Ticket(ticket.ID)
	if existed && !old.Differs(ticket) {
		return false
	}
	for i, t := range next.Tickets {
		if t.ID == ticket.ID {
			next.Tickets[i] = ticket
			return true
		}
	}
	next.Tickets = append(next.Tickets, ticket)
	return true
}

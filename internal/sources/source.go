// Package sources provides the content integrations a project pulls from:
// document platforms, ticket trackers, and a local directory. The hosted
// integrations ship with demo fixtures so the pipeline runs without
// credentials.
package sources

import (
	"context"

	"aligntrack/internal/snapshot"
)

// Payload is what one source contributes to a collection run. Raw documents
// go through extraction; structured documents are merged into the extracted
// result afterwards, section by section.
type Payload struct {
	Raw        map[snapshot.DocKind]string
	Structured map[snapshot.DocKind]*snapshot.Document
	Tickets    []snapshot.Ticket
}

// Empty reports whether the payload contributes nothing.
func (p Payload) Empty() bool {
	return len(p.Raw) == 0 && len(p.Structured) == 0 && len(p.Tickets) == 0
}

// Source is one connected content integration.
type Source interface {
	Name() string
	Collect(ctx context.Context) (Payload, error)
}

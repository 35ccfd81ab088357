package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

// File names the local source reads from its directory.
const (
	LocalPRDFile      = "prd.md"
	LocalPRFAQFile    = "prfaq.md"
	LocalStrategyFile = "strategy.md"
	LocalTicketsFile  = "tickets.json"
)

var localDocFiles = map[snapshot.DocKind]string{
	snapshot.KindPRD:      LocalPRDFile,
	snapshot.KindPRFAQ:    LocalPRFAQFile,
	snapshot.KindStrategy: LocalStrategyFile,
}

// LocalDir reads project documents from a directory on disk. Missing files
// are skipped, a missing directory is an error.
type LocalDir struct {
	dir string
}

func NewLocalDir(dir string) *LocalDir {
	return &LocalDir{dir: dir}
}

func (l *LocalDir) Name() string { return "local" }

// Dir returns the watched directory.
func (l *LocalDir) Dir() string { return l.dir }

func (l *LocalDir) Collect(_ context.Context) (Payload, error) {
	if _, err := os.Stat(l.dir); err != nil {
		return Payload{}, fmt.Errorf("local source directory: %w", err)
	}

	raw := make(map[snapshot.DocKind]string)
	for kind, name := range localDocFiles {
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Payload{}, fmt.Errorf("failed to read %s: %w", name, err)
		}
		raw[kind] = string(data)
	}

	tickets, err := l.readTickets()
	if err != nil {
		return Payload{}, err
	}

	logging.SourcesDebug("local source collected %d documents and %d tickets from %s", len(raw), len(tickets), l.dir)
	return Payload{Raw: raw, Tickets: tickets}, nil
}

func (l *LocalDir) readTickets() ([]snapshot.Ticket, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, LocalTicketsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LocalTicketsFile, err)
	}

	var tickets []snapshot.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", LocalTicketsFile, err)
	}
	return tickets, nil
}

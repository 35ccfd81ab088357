package sources

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aligntrack/internal/snapshot"
)

func TestGoogleDocsConnectRouting(t *testing.T) {
	g := NewGoogleDocs()

	assert.Equal(t, snapshot.KindPRD, g.Connect("doc-main"))
	assert.Equal(t, snapshot.KindPRFAQ, g.Connect("doc-PRFAQ-launch"))
	assert.Equal(t, snapshot.KindStrategy, g.Connect("strategy-2026"))

	kind, ok := g.DocumentKind("doc-main")
	require.True(t, ok)
	assert.Equal(t, snapshot.KindPRD, kind)

	_, ok = g.DocumentKind("unknown")
	assert.False(t, ok)
}

func TestGoogleDocsCollect(t *testing.T) {
	g := NewGoogleDocs()
	g.Connect("doc-main")
	g.Connect("doc-strategy")

	payload, err := g.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.Raw, 2)
	assert.Contains(t, payload.Raw[snapshot.KindPRD], "# Project Alignment Tool")
	assert.Contains(t, payload.Raw[snapshot.KindStrategy], "## Vision")
	assert.Empty(t, payload.Tickets)
}

func TestGoogleDocsNothingConnected(t *testing.T) {
	payload, err := NewGoogleDocs().Collect(context.Background())
	require.NoError(t, err)
	assert.True(t, payload.Empty())
}

func TestTrackerFixtures(t *testing.T) {
	jira, err := NewJira().Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, jira.Tickets, 3)
	assert.Equal(t, "PROJ-1", jira.Tickets[0].ID)

	linear, err := NewLinear().Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, linear.Tickets, 3)
	assert.Equal(t, "LIN-1", linear.Tickets[0].ID)
}

func TestTrackerMutation(t *testing.T) {
	j := NewJira()

	tk, ok := j.Ticket("PROJ-2")
	require.True(t, ok)
	tk.Status = "Done"
	j.Upsert(tk)

	got, _ := j.Ticket("PROJ-2")
	assert.Equal(t, "Done", got.Status)

	assert.True(t, j.Remove("PROJ-3"))
	assert.False(t, j.Remove("PROJ-3"))

	created := j.Create("New work", "Details", "High")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "To Do", created.Status)

	payload, _ := j.Collect(context.Background())
	assert.Len(t, payload.Tickets, 3)
}

func TestTrackerCollectCopies(t *testing.T) {
	j := NewJira()
	payload, _ := j.Collect(context.Background())
	payload.Tickets[0].Status = "mutated"

	fresh, _ := j.Collect(context.Background())
	assert.Equal(t, "In Progress", fresh.Tickets[0].Status)
}

func TestConfluenceLabelRouting(t *testing.T) {
	c := NewConfluence()
	c.AddPage(Page{
		ID:      "page2",
		Title:   "Scope Notes",
		Labels:  []string{"prd"},
		Content: map[string]string{"scope": "Phase one only."},
	})
	c.AddPage(Page{
		ID:      "page3",
		Title:   "Random Notes",
		Labels:  []string{"meeting-notes"},
		Content: map[string]string{"notes": "ignored"},
	})

	payload, err := c.Collect(context.Background())
	require.NoError(t, err)

	strategy := payload.Structured[snapshot.KindStrategy]
	require.NotNil(t, strategy)
	assert.Equal(t, "Create the best tool for project alignment", strategy.Text(snapshot.KeyVision))

	prd := payload.Structured[snapshot.KindPRD]
	require.NotNil(t, prd)
	assert.Equal(t, "Phase one only.", prd.Text("scope"))

	// Unlabeled pages contribute nothing.
	assert.Len(t, payload.Structured, 2)
}

func TestConfluencePRDLabelWins(t *testing.T) {
	p := Page{Labels: []string{"strategy", "prd"}}
	kind, ok := p.Kind()
	require.True(t, ok)
	assert.Equal(t, snapshot.KindPRD, kind)
}

func TestLocalDirCollect(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalPRDFile), []byte("# My PRD\n\n## Overview\nText.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalTicketsFile), []byte(`[{"id":"T-1","title":"Work","status":"open"}]`), 0644))

	payload, err := NewLocalDir(dir).Collect(context.Background())
	require.NoError(t, err)

	assert.Contains(t, payload.Raw[snapshot.KindPRD], "# My PRD")
	assert.NotContains(t, payload.Raw, snapshot.KindStrategy)
	require.Len(t, payload.Tickets, 1)
	assert.Equal(t, "T-1", payload.Tickets[0].ID)
}

func TestLocalDirMissingDirectory(t *testing.T) {
	_, err := NewLocalDir(filepath.Join(t.TempDir(), "absent")).Collect(context.Background())
	assert.Error(t, err)
}

func TestLocalDirBadTickets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalTicketsFile), []byte("not json"), 0644))

	_, err := NewLocalDir(dir).Collect(context.Background())
	assert.Error(t, err)
}

func TestWatcherTriggersOnSettledWrite(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var got []string
	w, err := NewWatcher(dir, func(_ context.Context, changed []string) {
		mu.Lock()
		got = append(got, changed...)
		mu.Unlock()
	})
	require.NoError(t, err)
	w.debounceDur = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalPRDFile), []byte("# PRD"), 0644))
	// An unwatched file never triggers.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1 && got[0] == LocalPRDFile
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherStopIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), func(context.Context, []string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}

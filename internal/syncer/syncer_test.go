package syncer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"aligntrack/internal/alignment"
	"aligntrack/internal/artifacts"
	"aligntrack/internal/impact"
	"aligntrack/internal/snapshot"
	"aligntrack/internal/sources"
	"aligntrack/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestSyncer wires a syncer with no model client; every stage takes its
// deterministic path.
func newTestSyncer(t *testing.T) *Syncer {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "aligntrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, impact.NewClassifier(nil), alignment.NewAdvisor(nil), artifacts.NewGenerator(nil))
}

func registerDemoSources(s *Syncer) (*sources.GoogleDocs, *sources.Jira, *sources.Linear, *sources.Confluence) {
	docs := sources.NewGoogleDocs()
	docs.Connect("doc-prd")
	docs.Connect("doc-prfaq")
	docs.Connect("doc-strategy")
	jira := sources.NewJira()
	linear := sources.NewLinear()
	confluence := sources.NewConfluence()
	s.Register(docs)
	s.Register(jira)
	s.Register(linear)
	s.Register(confluence)
	return docs, jira, linear, confluence
}

func TestCollectAll(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)

	snap, err := s.CollectAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Project Alignment Tool", snap.PRD.Text(snapshot.KeyName))
	assert.NotEmpty(t, snap.PRD.Text(snapshot.KeyProblemStatement))

	// The confluence strategy page merges on top of the extracted strategy
	// document, so its vision wins.
	assert.Equal(t, "Create the best tool for project alignment", snap.Strategy.Text(snapshot.KeyVision))

	// Three jira plus three linear fixtures.
	assert.Len(t, snap.Tickets, 6)
	assert.Equal(t, "PROJ-1", snap.Tickets[0].ID)
	assert.Equal(t, "LIN-1", snap.Tickets[3].ID)

	faqs, ok := snap.PRFAQ.Get(snapshot.KeyFAQ)
	require.True(t, ok)
	assert.Len(t, faqs.FAQs, 3)
}

func TestCollectAllSourceError(t *testing.T) {
	s := newTestSyncer(t)
	s.Register(failingSource{})

	_, err := s.CollectAll(context.Background())
	assert.Error(t, err)
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }
func (failingSource) Collect(context.Context) (sources.Payload, error) {
	return sources.Payload{}, errors.New("unreachable")
}

func TestUpdateFirstRun(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)

	res, err := s.Update(context.Background())
	require.NoError(t, err)

	// First snapshot: every section counts as added and tickets collapse
	// to the catch-all marker.
	assert.Equal(t, []string{"all"}, res.Changes.Tickets.Added)
	assert.NotEmpty(t, res.Changes.PRD.Added)
	assert.Equal(t, impact.LevelMajor, res.Impact.ImpactLevel)

	// Project-framed messaging on the first run.
	assert.Contains(t, res.Artifacts.Internal.Subject, "Internal Brief:")
	assert.NotEmpty(t, res.Artifacts.Description.ThreeSentences)
	assert.NotEmpty(t, res.Suggestions)
	assert.NotEmpty(t, res.Improvements)
}

func TestUpdateNoChanges(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)

	_, err := s.Update(context.Background())
	require.NoError(t, err)

	res, err := s.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Changes.Total())
	assert.Equal(t, impact.LevelNone, res.Impact.ImpactLevel)
	assert.Empty(t, res.Suggestions)
	// No changes means project-framed messaging again, not a changes brief.
	assert.Contains(t, res.Artifacts.Internal.Subject, "Internal Brief:")
}

func TestUpdateDetectsTicketChange(t *testing.T) {
	s := newTestSyncer(t)
	_, jira, _, _ := registerDemoSources(s)

	_, err := s.Update(context.Background())
	require.NoError(t, err)

	tk, _ := jira.Ticket("PROJ-1")
	tk.Status = "Done"
	jira.Upsert(tk)

	res, err := s.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"PROJ-1"}, res.Changes.Tickets.Modified)
	assert.Contains(t, res.Artifacts.Internal.Subject, "Implementation Update")
}

func TestHandleJiraUpdate(t *testing.T) {
	s := newTestSyncer(t)
	_, jira, _, _ := registerDemoSources(s)
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	tk, _ := jira.Ticket("PROJ-2")
	tk.Status = "In Progress"
	jira.Upsert(tk)

	var ev JiraEvent
	ev.Issue.Key = "PROJ-2"
	res, err := s.HandleJira(context.Background(), ev)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"PROJ-2"}, res.Changes.Tickets.Modified)
}

func TestHandleJiraNoMeaningfulChange(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	var ev JiraEvent
	ev.Issue.Key = "PROJ-1"
	res, err := s.HandleJira(context.Background(), ev)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHandleJiraDelete(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	var ev JiraEvent
	ev.WebhookEvent = "jira:issue_deleted"
	ev.Issue.Key = "PROJ-3"
	res, err := s.HandleJira(context.Background(), ev)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"PROJ-3"}, res.Changes.Tickets.Removed)
}

func TestHandleLinearCreate(t *testing.T) {
	s := newTestSyncer(t)
	_, _, linear, _ := registerDemoSources(s)
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	created := linear.Create("Ship beta", "Roll out to early users.", "High")

	var ev LinearEvent
	ev.Action = "create"
	ev.Data.ID = created.ID
	res, err := s.HandleLinear(context.Background(), ev)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{created.ID}, res.Changes.Tickets.Added)
}

func TestHandleConfluencePageChange(t *testing.T) {
	s := newTestSyncer(t)
	_, _, _, confluence := registerDemoSources(s)
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	page, _ := confluence.Page("page1")
	page.Content[snapshot.KeyVision] = "A sharper vision"
	confluence.AddPage(page)

	var ev ConfluenceEvent
	ev.Page.ID = "page1"
	res, err := s.HandleConfluence(context.Background(), ev)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Contains(t, res.Changes.Strategy.Modified, snapshot.KeyVision)
	assert.False(t, res.Impact.FocusMaintained)
}

func TestHandlersBeforeFirstSync(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)

	var jev JiraEvent
	jev.Issue.Key = "PROJ-1"
	res, err := s.HandleJira(context.Background(), jev)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHandlerUnregisteredSource(t *testing.T) {
	s := newTestSyncer(t)

	var ev JiraEvent
	ev.Issue.Key = "PROJ-1"
	_, err := s.HandleJira(context.Background(), ev)
	assert.ErrorIs(t, err, ErrSourceNotRegistered)
}

func TestHandleDocsUnknownDocument(t *testing.T) {
	s := newTestSyncer(t)
	registerDemoSources(s)
	_, err := s.Update(context.Background())
	require.NoError(t, err)

	res, err := s.HandleDocs(context.Background(), DocsEvent{DocumentID: "never-connected"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

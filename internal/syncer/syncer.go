// Package syncer runs the update pipeline: collect content from every
// connected source, extract structure, diff against the stored snapshot,
// classify impact, generate artifacts and alignment suggestions, and append
// the new version to the store.
package syncer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"aligntrack/internal/alignment"
	"aligntrack/internal/artifacts"
	"aligntrack/internal/diff"
	"aligntrack/internal/extraction"
	"aligntrack/internal/impact"
	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
	"aligntrack/internal/sources"
	"aligntrack/internal/store"
)

// Syncer coordinates sources, the pipeline stages, and the store.
type Syncer struct {
	mu      sync.Mutex
	sources []sources.Source

	store      *store.Store
	classifier *impact.Classifier
	advisor    *alignment.Advisor
	generator  *artifacts.Generator

	// Typed handles for webhook handling; nil when not registered.
	jira       *sources.Jira
	linear     *sources.Linear
	googleDocs *sources.GoogleDocs
	confluence *sources.Confluence
}

// New creates a syncer over a store. Pipeline stages take the same client
// wiring the caller gave them; sources are registered afterwards.
func New(st *store.Store, classifier *impact.Classifier, advisor *alignment.Advisor, generator *artifacts.Generator) *Syncer {
	return &Syncer{
		store:      st,
		classifier: classifier,
		advisor:    advisor,
		generator:  generator,
	}
}

// Register adds a source to collection runs. Jira, Linear, Google Docs, and
// Confluence sources are additionally remembered for webhook handling.
func (s *Syncer) Register(src sources.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = append(s.sources, src)
	switch t := src.(type) {
	case *sources.Jira:
		s.jira = t
	case *sources.Linear:
		s.linear = t
	case *sources.GoogleDocs:
		s.googleDocs = t
	case *sources.Confluence:
		s.confluence = t
	}
	logging.Sync("registered source %s", src.Name())
}

// CollectAll gathers content from every source concurrently and assembles a
// snapshot. Raw documents go through extraction; structured contributions
// merge in on top in registration order; tickets concatenate in
// registration order.
func (s *Syncer) CollectAll(ctx context.Context) (*snapshot.ProjectSnapshot, error) {
	s.mu.Lock()
	srcs := make([]sources.Source, len(s.sources))
	copy(srcs, s.sources)
	s.mu.Unlock()

	payloads := make([]sources.Payload, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			p, err := src.Collect(gctx)
			if err != nil {
				logging.Sync("source %s failed: %v", src.Name(), err)
				return err
			}
			payloads[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot.ProjectSnapshot{}
	for _, p := range payloads {
		for _, kind := range snapshot.DocKinds {
			if raw, ok := p.Raw[kind]; ok {
				extracted := extraction.Extract(raw, kind)
				snap.Doc(kind).Merge(&extracted)
			}
		}
	}
	for _, p := range payloads {
		for _, kind := range snapshot.DocKinds {
			if doc, ok := p.Structured[kind]; ok {
				snap.Doc(kind).Merge(doc)
			}
		}
		snap.Tickets = append(snap.Tickets, p.Tickets...)
	}

	logging.SyncDebug("collected snapshot: prd=%d prfaq=%d strategy=%d tickets=%d",
		snap.PRD.Len(), snap.PRFAQ.Len(), snap.Strategy.Len(), len(snap.Tickets))
	return snap, nil
}

// UpdateResult is everything one pipeline run produced.
type UpdateResult struct {
	VersionID    int64
	Snapshot     *snapshot.ProjectSnapshot
	Changes      *diff.ChangeSet
	Impact       *impact.Report
	Suggestions  []alignment.Suggestion
	Artifacts    store.ArtifactSet
	Improvements []artifacts.Improvement
}

// Update runs the full pipeline once and appends the result to the store.
func (s *Syncer) Update(ctx context.Context) (*UpdateResult, error) {
	snap, err := s.CollectAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.process(ctx, snap)
}

// process diffs a collected snapshot against stored history, runs the
// downstream stages, and persists everything.
func (s *Syncer) process(ctx context.Context, snap *snapshot.ProjectSnapshot) (*UpdateResult, error) {
	prev, err := s.store.LatestSnapshot()
	if err != nil {
		return nil, err
	}

	cs := diff.Snapshots(prev, snap)
	report := s.classifier.Classify(ctx, cs)
	suggestions := s.advisor.Suggest(ctx, &cs)

	// The first stored version gets project-framed messaging; later runs
	// frame messaging around what changed.
	var msgChanges *diff.ChangeSet
	if prev != nil && cs.Total() > 0 {
		msgChanges = &cs
	}

	desc := s.generator.Description(ctx, snap)
	internal := s.generator.Internal(ctx, snap, msgChanges)
	external := s.generator.External(ctx, snap, msgChanges)
	improvements := s.generator.Improvements(ctx, snap, desc.Artifact, artifacts.KindDescription)

	set := store.ArtifactSet{
		Description: desc.Artifact,
		Internal:    internal.Artifact,
		External:    external.Artifact,
	}
	id, err := s.store.AppendProject(snap, set, improvements)
	if err != nil {
		return nil, err
	}
	if err := s.store.AppendAlignment(suggestions, &report); err != nil {
		return nil, err
	}

	logging.Sync("update complete: version=%d impact=%s changes=%d suggestions=%d",
		id, report.ImpactLevel, cs.Total(), len(suggestions))
	return &UpdateResult{
		VersionID:    id,
		Snapshot:     snap,
		Changes:      &cs,
		Impact:       &report,
		Suggestions:  suggestions,
		Artifacts:    set,
		Improvements: improvements,
	}, nil
}

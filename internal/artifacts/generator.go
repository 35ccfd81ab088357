package artifacts

import (
	"context"

	"aligntrack/internal/diff"
	"aligntrack/internal/jsonutil"
	"aligntrack/internal/llm"
	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

// Result wraps a generated artifact with the path that produced it.
type Result[T any] struct {
	Artifact T
	Source   Source
}

// Generator produces the three artifact families from a project snapshot.
// A nil client disables the model path and every artifact comes from the
// deterministic fallback templates.
type Generator struct {
	client llm.Client
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Description generates the project description artifact.
func (g *Generator) Description(ctx context.Context, snap *snapshot.ProjectSnapshot) Result[Description] {
	var desc Description
	src := SourceFallback
	if g.tryModel(ctx, descriptionPrompt(snap), &desc) && desc.complete() {
		src = SourceModel
	} else {
		desc = fallbackDescription(snap)
	}
	desc.Objections = g.objections(ctx, snap, desc, KindDescription)
	return Result[Description]{Artifact: desc, Source: src}
}

// Internal generates internal messaging. A non-nil change set produces the
// changes variant instead of the project brief.
func (g *Generator) Internal(ctx context.Context, snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) Result[InternalMessaging] {
	prompt := internalProjectPrompt(snap)
	if cs != nil {
		prompt = internalChangesPrompt(snap, cs)
	}
	var msg InternalMessaging
	src := SourceFallback
	if g.tryModel(ctx, prompt, &msg) && msg.complete(cs != nil) {
		src = SourceModel
	} else {
		msg = fallbackInternal(snap, cs)
	}
	msg.Objections = g.objections(ctx, snap, msg, KindInternal)
	return Result[InternalMessaging]{Artifact: msg, Source: src}
}

// External generates external messaging, with the same changes-variant
// selection as Internal.
func (g *Generator) External(ctx context.Context, snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) Result[ExternalMessaging] {
	prompt := externalProjectPrompt(snap)
	if cs != nil {
		prompt = externalChangesPrompt(snap, cs)
	}
	var msg ExternalMessaging
	src := SourceFallback
	if g.tryModel(ctx, prompt, &msg) && msg.complete(cs != nil) {
		src = SourceModel
	} else {
		msg = fallbackExternal(snap, cs)
	}
	msg.Objections = g.objections(ctx, snap, msg, KindExternal)
	return Result[ExternalMessaging]{Artifact: msg, Source: src}
}

// Improvements suggests edits for an already generated artifact.
func (g *Generator) Improvements(ctx context.Context, snap *snapshot.ProjectSnapshot, artifact any, kind Kind) []Improvement {
	var out []Improvement
	if g.tryModel(ctx, improvementsPrompt(snap, artifact, kind), &out) && len(out) > 0 {
		return out
	}
	return fallbackImprovements(kind)
}

func (g *Generator) objections(ctx context.Context, snap *snapshot.ProjectSnapshot, artifact any, kind Kind) []Objection {
	var out []Objection
	if g.tryModel(ctx, objectionsPrompt(snap, artifact, kind), &out) && len(out) > 0 {
		return out
	}
	return fallbackObjections(kind)
}

// tryModel runs one prompt through the model and decodes the response into
// dst. False means the caller should take the fallback path.
func (g *Generator) tryModel(ctx context.Context, prompt string, dst any) bool {
	if g.client == nil {
		return false
	}
	resp, err := g.client.Complete(ctx, prompt)
	if err != nil {
		logging.Artifacts("model generation failed, using fallback: %v", err)
		return false
	}
	if !jsonutil.RecoverInto(resp, dst) {
		logging.Artifacts("model response contained no usable JSON, using fallback")
		return false
	}
	return true
}

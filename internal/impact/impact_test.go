package impact

import (
	"context"
	"errors"
	"testing"

	"aligntrack/internal/diff"
	"aligntrack/internal/llm"
)

func changeOf(added, modified, removed int) diff.Change {
	c := diff.Change{Added: []string{}, Modified: []string{}, Removed: []string{}}
	for i := 0; i < added; i++ {
		c.Added = append(c.Added, "a")
	}
	for i := 0; i < modified; i++ {
		c.Modified = append(c.Modified, "m")
	}
	for i := 0; i < removed; i++ {
		c.Removed = append(c.Removed, "r")
	}
	return c
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name string
		cs   diff.ChangeSet
		want Level
	}{
		{"no changes", diff.ChangeSet{}, LevelNone},
		{"three changes one doc", diff.ChangeSet{PRD: changeOf(2, 1, 0)}, LevelMinor},
		{"four changes one doc", diff.ChangeSet{PRD: changeOf(2, 2, 0)}, LevelModerate},
		{"three changes two docs", diff.ChangeSet{PRD: changeOf(1, 1, 0), Tickets: changeOf(1, 0, 0)}, LevelModerate},
		{"ten changes two docs", diff.ChangeSet{PRD: changeOf(5, 0, 0), Tickets: changeOf(5, 0, 0)}, LevelModerate},
		{"eleven changes", diff.ChangeSet{PRD: changeOf(6, 0, 0), Tickets: changeOf(5, 0, 0)}, LevelMajor},
		{"ten changes three docs", diff.ChangeSet{PRD: changeOf(4, 0, 0), PRFAQ: changeOf(3, 0, 0), Tickets: changeOf(3, 0, 0)}, LevelMajor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.cs)
			if got.ImpactLevel != tt.want {
				t.Errorf("level = %s, want %s (metrics %+v)", got.ImpactLevel, tt.want, got.Metrics)
			}
		})
	}
}

func TestClassifyEmptyKeepsFocus(t *testing.T) {
	got := Classify(diff.ChangeSet{})
	if got.ImpactLevel != LevelNone || !got.FocusMaintained {
		t.Errorf("empty change set: %+v", got)
	}
}

func TestClassifyStrategyBreaksFocus(t *testing.T) {
	// Any strategy change breaks focus, regardless of everything else.
	cs := diff.ChangeSet{Strategy: changeOf(0, 1, 0)}
	got := Classify(cs)
	if got.FocusMaintained {
		t.Error("strategy change must break focus")
	}

	cs = diff.ChangeSet{Strategy: changeOf(0, 0, 1), PRD: changeOf(1, 0, 0)}
	if got := Classify(cs); got.FocusMaintained {
		t.Error("strategy removal must break focus")
	}
}

func TestClassifyPRDScopeRule(t *testing.T) {
	if got := Classify(diff.ChangeSet{PRD: changeOf(3, 0, 0)}); got.FocusMaintained {
		t.Error("more than two PRD additions must break focus")
	}
	if got := Classify(diff.ChangeSet{PRD: changeOf(0, 0, 3)}); got.FocusMaintained {
		t.Error("more than two PRD removals must break focus")
	}
	if got := Classify(diff.ChangeSet{PRD: changeOf(2, 0, 2)}); !got.FocusMaintained {
		t.Error("two additions and two removals keep focus")
	}
	if got := Classify(diff.ChangeSet{PRD: changeOf(0, 5, 0)}); !got.FocusMaintained {
		t.Error("modifications alone never break focus")
	}
}

func TestComputeMetrics(t *testing.T) {
	cs := diff.ChangeSet{
		PRD:     changeOf(1, 1, 0),
		Tickets: changeOf(2, 1, 1),
	}
	m := ComputeMetrics(cs)
	if m.TotalChanges != 6 || m.DocsChanged != 2 || m.TicketsChanged != 4 {
		t.Errorf("metrics = %+v", m)
	}
	if m.ChangeDistribution["prd"] != 2 || m.ChangeDistribution["tickets"] != 4 {
		t.Errorf("distribution = %v", m.ChangeDistribution)
	}
}

func TestClassifierModelAccepted(t *testing.T) {
	fake := llm.NewFake(`Here is my judgment:
{"impact_level": "major", "focus_maintained": false, "analysis": "Sweeping scope change."}`)
	c := NewClassifier(fake)

	cs := diff.ChangeSet{PRD: changeOf(2, 0, 0)}
	got := c.Classify(context.Background(), cs)

	if got.ImpactLevel != LevelMajor || got.FocusMaintained || got.Analysis != "Sweeping scope change." {
		t.Errorf("report = %+v", got)
	}
	// Metrics always come from the rules, never the model.
	if got.Metrics.TotalChanges != 2 {
		t.Errorf("metrics overridden: %+v", got.Metrics)
	}
}

func TestClassifierSkipsModelForTrivialChanges(t *testing.T) {
	fake := llm.NewFake(`{"impact_level": "major", "focus_maintained": false, "analysis": "x"}`)
	c := NewClassifier(fake)

	got := c.Classify(context.Background(), diff.ChangeSet{PRD: changeOf(1, 0, 0)})
	if fake.CallCount() != 0 {
		t.Error("model must not be called for a single change")
	}
	if got.ImpactLevel != LevelMinor {
		t.Errorf("level = %s", got.ImpactLevel)
	}
}

func TestClassifierFallsBack(t *testing.T) {
	cs := diff.ChangeSet{PRD: changeOf(2, 0, 0)}
	want := Classify(cs)

	tests := []struct {
		name string
		fake *llm.Fake
	}{
		{"client error", &llm.Fake{Err: errors.New("down")}},
		{"no json", llm.NewFake("sorry, I cannot help with that")},
		{"invalid level", llm.NewFake(`{"impact_level": "catastrophic", "focus_maintained": true, "analysis": "x"}`)},
		{"missing focus", llm.NewFake(`{"impact_level": "minor", "analysis": "x"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClassifier(tt.fake).Classify(context.Background(), cs)
			if got.ImpactLevel != want.ImpactLevel || got.FocusMaintained != want.FocusMaintained {
				t.Errorf("report = %+v, want rule-based %+v", got, want)
			}
			if got.Analysis != want.Analysis {
				t.Errorf("analysis = %q, want rule-based", got.Analysis)
			}
		})
	}
}

func TestClassifierNilClient(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Classify(context.Background(), diff.ChangeSet{PRD: changeOf(2, 0, 0)})
	if got.ImpactLevel != LevelMinor {
		t.Errorf("level = %s", got.ImpactLevel)
	}
}

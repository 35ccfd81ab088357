// Package impact turns a change set into a qualitative impact report. The
// rule-based classifier is the source of truth; a model-backed path may
// refine the qualitative fields but always keeps the computed metrics and
// always degrades back to the rules on failure.
package impact

import (
	"aligntrack/internal/diff"
	"aligntrack/internal/logging"
)

// Level is the qualitative impact of a change set.
type Level string

const (
	LevelNone     Level = "none"
	LevelMinor    Level = "minor"
	LevelModerate Level = "moderate"
	LevelMajor    Level = "major"
)

func validLevel(l Level) bool {
	switch l {
	case LevelNone, LevelMinor, LevelModerate, LevelMajor:
		return true
	}
	return false
}

// Metrics are the quantitative counts behind a report. They are computed
// from the change set alone and never overridden by the model.
type Metrics struct {
	TotalChanges       int            `json:"total_changes"`
	DocsChanged        int            `json:"docs_changed"`
	TicketsChanged     int            `json:"tickets_changed"`
	ChangeDistribution map[string]int `json:"change_distribution"`
}

// Report is the classification result stored with each version.
type Report struct {
	ImpactLevel     Level   `json:"impact_level"`
	FocusMaintained bool    `json:"focus_maintained"`
	Analysis        string  `json:"analysis"`
	Metrics         Metrics `json:"metrics"`
}

// ComputeMetrics derives the quantitative block from a change set.
func ComputeMetrics(cs diff.ChangeSet) Metrics {
	return Metrics{
		TotalChanges:       cs.Total(),
		DocsChanged:        cs.DocsChanged(),
		TicketsChanged:     cs.Tickets.Count(),
		ChangeDistribution: cs.Distribution(),
	}
}

// Classify applies the deterministic rules to a change set.
//
// Thresholds: 0 changes is none; up to 3 changes touching at most one key is
// minor; up to 10 changes touching at most two keys is moderate; everything
// else is major. Focus: any strategy change breaks focus, then more than two
// PRD additions or removals breaks focus, otherwise focus holds.
func Classify(cs diff.ChangeSet) Report {
	m := ComputeMetrics(cs)

	var level Level
	switch {
	case m.TotalChanges == 0:
		level = LevelNone
	case m.TotalChanges <= 3 && m.DocsChanged <= 1:
		level = LevelMinor
	case m.TotalChanges <= 10 && m.DocsChanged <= 2:
		level = LevelModerate
	default:
		level = LevelMajor
	}

	focus := true
	var analysis string
	switch {
	case !cs.Strategy.Empty():
		focus = false
		analysis = "Strategic direction has changed - this may impact project focus"
	case len(cs.PRD.Added) > 2 || len(cs.PRD.Removed) > 2:
		focus = false
		analysis = "Significant PRD changes detected - project scope may have shifted"
	case level == LevelMajor:
		analysis = "Major changes detected but focus appears maintained"
	default:
		analysis = "Changes are consistent with current project focus"
	}

	logging.Impact("classified: level=%s focus=%v total=%d", level, focus, m.TotalChanges)
	return Report{
		ImpactLevel:     level,
		FocusMaintained: focus,
		Analysis:        analysis,
		Metrics:         m,
	}
}

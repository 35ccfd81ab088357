package impact

import (
	"context"
	"encoding/json"
	"fmt"

	"aligntrack/internal/diff"
	"aligntrack/internal/jsonutil"
	"aligntrack/internal/llm"
	"aligntrack/internal/logging"
)

// Classifier optionally refines the rule-based report with a model's
// qualitative judgment. The metrics block is always the computed one, and
// any model failure yields the rule-based report unchanged.
type Classifier struct {
	client llm.Client
}

// NewClassifier wraps an optional model client. A nil client disables the
// model path entirely.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// modelJudgment is the shape the model is asked to return.
type modelJudgment struct {
	ImpactLevel     Level  `json:"impact_level"`
	FocusMaintained *bool  `json:"focus_maintained"`
	Analysis        string `json:"analysis"`
}

// Classify produces a report for the change set. Trivial change sets (one
// change or fewer) never reach the model; they are not worth a round trip.
func (c *Classifier) Classify(ctx context.Context, cs diff.ChangeSet) Report {
	report := Classify(cs)
	if c.client == nil || cs.Total() <= 1 {
		return report
	}

	resp, err := c.client.Complete(ctx, c.buildPrompt(cs, report.Metrics))
	if err != nil {
		logging.Impact("model classification failed, keeping rule-based result: %v", err)
		return report
	}

	var judgment modelJudgment
	if !jsonutil.RecoverInto(resp, &judgment) {
		logging.Impact("model returned no parseable JSON, keeping rule-based result")
		return report
	}
	if !validLevel(judgment.ImpactLevel) || judgment.FocusMaintained == nil || judgment.Analysis == "" {
		logging.Impact("model judgment incomplete, keeping rule-based result")
		return report
	}

	report.ImpactLevel = judgment.ImpactLevel
	report.FocusMaintained = *judgment.FocusMaintained
	report.Analysis = judgment.Analysis
	logging.Impact("model classification accepted: level=%s focus=%v", report.ImpactLevel, report.FocusMaintained)
	return report
}

func (c *Classifier) buildPrompt(cs diff.ChangeSet, m Metrics) string {
	changes, _ := json.MarshalIndent(cs, "", "  ")
	prompt := fmt.Sprintf(`You are analyzing changes to a project's tracked documents (PRD, PRFAQ, strategy) and tickets.

Change set:
%s

Computed metrics: %d total changes across %d areas (%d ticket changes).

Judge the qualitative impact of these changes and whether the project's focus is maintained. Respond with a JSON object:
{"impact_level": "none|minor|moderate|major", "focus_maintained": true|false, "analysis": "one or two sentences"}`,
		changes, m.TotalChanges, m.DocsChanged, m.TicketsChanged)
	return llm.WithJSONGuard(prompt)
}

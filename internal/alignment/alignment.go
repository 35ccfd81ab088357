// Package alignment turns detected change sets into cross-document
// suggestions: what to update elsewhere so the PRD, PRFAQ, strategy doc,
// and tickets keep telling the same story.
package alignment

import (
	"context"
	"encoding/json"
	"fmt"

	"aligntrack/internal/diff"
	"aligntrack/internal/jsonutil"
	"aligntrack/internal/llm"
	"aligntrack/internal/logging"
)

// Action is what a suggestion asks the reader to do.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionReview = "review"
	ActionRemove = "remove"
)

// Suggestion is one actionable alignment item. Type names the direction,
// like "prd_to_tickets"; Target may be "all".
type Suggestion struct {
	Type        string `json:"type"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Target      string `json:"target"`
}

// Advisor generates alignment suggestions. A nil client restricts output to
// the rule-based generator.
type Advisor struct {
	client llm.Client
}

func NewAdvisor(client llm.Client) *Advisor {
	return &Advisor{client: client}
}

// Suggest produces suggestions for a change set. An empty change set yields
// no suggestions and never reaches the model.
func (a *Advisor) Suggest(ctx context.Context, cs *diff.ChangeSet) []Suggestion {
	if cs == nil || cs.Total() == 0 {
		return []Suggestion{}
	}
	if a.client != nil {
		if got := a.fromModel(ctx, cs); got != nil {
			return got
		}
	}
	return RuleBased(cs)
}

func (a *Advisor) fromModel(ctx context.Context, cs *diff.ChangeSet) []Suggestion {
	resp, err := a.client.Complete(ctx, suggestionPrompt(cs))
	if err != nil {
		logging.Sync("suggestion generation failed, using rules: %v", err)
		return nil
	}
	var got []Suggestion
	if !jsonutil.RecoverInto(resp, &got) {
		logging.Sync("suggestion response contained no usable JSON, using rules")
		return nil
	}
	out := got[:0]
	for _, s := range got {
		if s.Type != "" && s.Description != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func suggestionPrompt(cs *diff.ChangeSet) string {
	detail, _ := json.MarshalIndent(cs, "", "  ")
	return fmt.Sprintf(`The following changes were detected across a project's documents:

%s

Generate actionable suggestions for what needs updating elsewhere to keep all
documents aligned. If the PRD changed, suggest ticket updates. If tickets
changed, suggest PRD updates.

Respond with a JSON array of suggestion objects:
[
  {
    "type": "prd_to_tickets",
    "action": "create|update|review|remove",
    "description": "Clear description of what needs to be done",
    "source": "prd",
    "target": "tickets"
  }
]

Focus on the most important alignments, with specific and actionable descriptions.

%s`, detail, llm.JSONGuard)
}

// RuleBased derives suggestions directly from the change set without a
// model. PRD section changes map to ticket work item by item; ticket churn
// maps back to the PRD in aggregate; PRFAQ and strategy changes each yield
// a single review item.
func RuleBased(cs *diff.ChangeSet) []Suggestion {
	suggestions := []Suggestion{}
	if cs == nil {
		return suggestions
	}

	for _, section := range cs.PRD.Added {
		suggestions = append(suggestions, Suggestion{
			Type:        "prd_to_tickets",
			Action:      ActionCreate,
			Description: fmt.Sprintf("Consider creating tickets for new PRD section: '%s'", section),
			Source:      "prd",
			Target:      "tickets",
		})
	}
	for _, section := range cs.PRD.Modified {
		suggestions = append(suggestions, Suggestion{
			Type:        "prd_to_tickets",
			Action:      ActionUpdate,
			Description: fmt.Sprintf("Review tickets related to modified PRD section: '%s'", section),
			Source:      "prd",
			Target:      "tickets",
		})
	}
	for _, section := range cs.PRD.Removed {
		suggestions = append(suggestions, Suggestion{
			Type:        "prd_to_tickets",
			Action:      ActionRemove,
			Description: fmt.Sprintf("Consider closing tickets related to removed PRD section: '%s'", section),
			Source:      "prd",
			Target:      "tickets",
		})
	}

	if n := len(cs.Tickets.Added); n > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:        "tickets_to_prd",
			Action:      ActionUpdate,
			Description: fmt.Sprintf("Update PRD to include %d new tickets", n),
			Source:      "tickets",
			Target:      "prd",
		})
	}
	if n := len(cs.Tickets.Modified); n > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:        "tickets_to_prd",
			Action:      ActionUpdate,
			Description: fmt.Sprintf("Review PRD sections related to %d modified tickets", n),
			Source:      "tickets",
			Target:      "prd",
		})
	}

	if !cs.PRFAQ.Empty() {
		suggestions = append(suggestions, Suggestion{
			Type:        "prfaq_alignment",
			Action:      ActionReview,
			Description: "Ensure PRD and PRFAQ remain aligned after recent changes",
			Source:      "prfaq",
			Target:      "prd",
		})
	}

	if !cs.Strategy.Empty() {
		suggestions = append(suggestions, Suggestion{
			Type:        "strategy_alignment",
			Action:      ActionReview,
			Description: "Review PRD and tickets to ensure alignment with updated strategy",
			Source:      "strategy",
			Target:      "all",
		})
	}

	return suggestions
}

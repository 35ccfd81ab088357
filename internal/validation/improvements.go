package validation

import (
	"fmt"
	"strings"

	"aligntrack/internal/snapshot"
)

// Improvement is one concrete content suggestion, optionally with example
// text for the section it targets.
type Improvement struct {
	Type       string   `json:"type"`
	Section    string   `json:"section"`
	Suggestion string   `json:"suggestion"`
	Examples   []string `json:"examples,omitempty"`
}

// minFAQCount below which more FAQs are suggested.
const minFAQCount = 5

var metricHints = []string{"%", "percent", "hour", "day", "week", "month", "increase", "decrease"}

// SuggestImprovements expands a validation result into concrete content
// suggestions, adding per-type checks on top of the structural ones.
func SuggestImprovements(result Result, doc *snapshot.Document, kind snapshot.DocKind) []Improvement {
	var out []Improvement

	for _, section := range result.SuggestedAdditions {
		out = append(out, Improvement{
			Type:       "suggested_section",
			Section:    section,
			Suggestion: fmt.Sprintf("Consider adding a %s section", strings.ReplaceAll(section, "_", " ")),
			Examples:   sectionExamples(section, kind),
		})
	}

	for _, ls := range result.LengthSuggestions {
		imp := Improvement{
			Type:       ls.Suggestion,
			Section:    ls.Section,
			Suggestion: ls.Recommendation,
		}
		if ls.Suggestion == "consider_expanding" || ls.Suggestion == "consider_adding_items" {
			imp.Examples = sectionExamples(ls.Section, kind)
		}
		out = append(out, imp)
	}

	switch kind {
	case snapshot.KindPRD:
		if problem := doc.Text(snapshot.KeyProblemStatement); problem != "" && !mentionsMetric(problem) {
			out = append(out, Improvement{
				Type:       "add_metrics",
				Section:    snapshot.KeyProblemStatement,
				Suggestion: "Consider adding quantifiable metrics to strengthen the business case",
				Examples: []string{
					"Teams waste 4+ hours weekly reconciling inconsistent documentation",
					"This process leads to a 28% increase in implementation errors",
					"Project timelines are extended by 2-3 weeks on average",
				},
			})
		}
	case snapshot.KindPRFAQ:
		if sc, ok := doc.Get(snapshot.KeyFAQ); ok && sc.IsFAQ() && len(sc.FAQs) < minFAQCount {
			out = append(out, Improvement{
				Type:       "add_faqs",
				Section:    snapshot.KeyFAQ,
				Suggestion: "Consider adding more FAQs to address common customer questions",
				Examples: []string{
					"What problem does this solve?",
					"How much time/money will this save?",
					"How does this compare to alternatives?",
					"What resources are required to implement this?",
					"When will this be available?",
				},
			})
		}
	}

	return out
}

func mentionsMetric(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range metricHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// sectionExamples returns canned example content shown alongside a
// suggestion, when one exists for the section and document type.
func sectionExamples(section string, kind snapshot.DocKind) []string {
	switch kind {
	case snapshot.KindPRD:
		switch section {
		case snapshot.KeyOverview:
			return []string{"The Document Sync Tool is a system that automatically synchronizes documentation across different platforms to ensure consistency and save teams time."}
		case snapshot.KeyProblemStatement:
			return []string{"Teams waste 4+ hours weekly reconciling inconsistent documentation, leading to a 28% increase in implementation errors and 2-3 week project delays."}
		case snapshot.KeySolution:
			return []string{"Our system monitors connected documents for changes and automatically suggests updates to maintain alignment across the entire documentation ecosystem."}
		case "requirements":
			return []string{"The system must: 1) Connect to major documentation platforms (Jira, Confluence, Google Docs), 2) Monitor documents for changes, 3) Suggest specific updates to maintain alignment, and 4) Provide a simple interface for approving changes."}
		}
	case snapshot.KindPRFAQ:
		switch section {
		case snapshot.KeyPressRelease:
			return []string{"FOR IMMEDIATE RELEASE: Introducing Document Sync Tool, the first documentation synchronization system that automatically keeps your PRDs, tickets, and strategy documents perfectly aligned."}
		case snapshot.KeyFAQ:
			return []string{
				"Q: What problem does this solve?\nA: Teams waste hours weekly reconciling inconsistent documentation.",
				"Q: How does it work?\nA: We connect to your documentation systems and monitor changes, then suggest updates.",
			}
		}
	case snapshot.KindStrategy:
		switch section {
		case snapshot.KeyVision:
			return []string{"Create a world where documentation is always accurate and teams never waste time on reconciliation."}
		case snapshot.KeyApproach:
			return []string{"Build connectors to popular documentation systems and use NLP to identify inconsistencies."}
		case snapshot.KeyBusinessValue:
			return []string{"Save teams 4+ hours per week and reduce implementation errors by 45%."}
		}
	}
	return nil
}

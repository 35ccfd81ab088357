package artifacts

import (
	"fmt"
	"strings"

	"aligntrack/internal/diff"
	"aligntrack/internal/snapshot"
)

// Character budgets for shortened field values.
const (
	sentenceBudget  = 100
	messagingBudget = 150
)

// Field extraction helpers. Each prefers the explicit structured field and
// falls back to scanning FAQ questions for a keyword match.

func projectName(snap *snapshot.ProjectSnapshot) string {
	if snap != nil {
		if name := snap.PRD.Text(snapshot.KeyName); name != "" {
			return CleanMarkdown(name)
		}
	}
	return "Project"
}

func fieldOrFAQ(snap *snapshot.ProjectSnapshot, doc snapshot.DocKind, key string, keywords ...string) string {
	if snap == nil {
		return ""
	}
	if text := snap.Doc(doc).Text(key); text != "" {
		return CleanMarkdown(text)
	}
	faqs, ok := snap.PRFAQ.Get(snapshot.KeyFAQ)
	if !ok || !faqs.IsFAQ() {
		return ""
	}
	for _, qa := range faqs.FAQs {
		q := strings.ToLower(qa.Question)
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return CleanMarkdown(qa.Answer)
			}
		}
	}
	return ""
}

func painPoint(snap *snapshot.ProjectSnapshot) string {
	return fieldOrFAQ(snap, snapshot.KindPRD, snapshot.KeyProblemStatement, "problem")
}

func solutionApproach(snap *snapshot.ProjectSnapshot) string {
	if s := fieldOrFAQ(snap, snapshot.KindPRD, snapshot.KeySolution); s != "" {
		return s
	}
	return fieldOrFAQ(snap, snapshot.KindStrategy, snapshot.KeyApproach)
}

func businessValue(snap *snapshot.ProjectSnapshot) string {
	return fieldOrFAQ(snap, snapshot.KindStrategy, snapshot.KeyBusinessValue, "benefit", "value", "help")
}

func overview(snap *snapshot.ProjectSnapshot) string {
	return fieldOrFAQ(snap, snapshot.KindPRD, snapshot.KeyOverview)
}

// fallbackDescription builds the description artifact from templates. The
// output is complete even for an empty snapshot.
func fallbackDescription(snap *snapshot.ProjectSnapshot) Description {
	name := projectName(snap)

	what := fmt.Sprintf("%s is a solution designed to %s", name, orDefault(Shorten(overview(snap), sentenceBudget), "streamline how teams work"))
	pain := "It addresses the customer pain point of " + orDefault(Shorten(painPoint(snap), sentenceBudget), "improving user experience and workflow efficiency.")
	how := "The solution works by " + orDefault(Shorten(solutionApproach(snap), sentenceBudget), "providing an intuitive interface and streamlined process flow.")

	whatPara := fmt.Sprintf("%s is a comprehensive solution designed to %s It provides users with a seamless experience for managing their workflows and keeps every stakeholder working from the same information.",
		name, orDefault(Shorten(overview(snap), messagingBudget), "streamline how teams work."))

	painPara := "Currently, users face significant challenges when attempting to " +
		orDefault(Shorten(painPoint(snap), messagingBudget), "complete their tasks efficiently and accurately.") +
		" These pain points lead to reduced productivity, user frustration, and increased error rates."

	howPara := fmt.Sprintf("%s addresses these challenges by %s", name,
		orDefault(Shorten(solutionApproach(snap), messagingBudget), "providing an intuitive user interface and streamlined workflow."))
	if features := ticketFeatures(snap, 3); len(features) > 0 {
		howPara += " The implementation includes " + strings.Join(features, ", ") + "."
	} else {
		howPara += " The implementation includes key features and improvements to the current system."
	}

	return Description{
		ThreeSentences:  []string{ensureSentence(what), ensureSentence(pain), ensureSentence(how)},
		ThreeParagraphs: []string{whatPara, painPara, howPara},
	}
}

// ticketFeatures extracts up to n feature names from ticket titles. A title
// like "Epic: do the thing" contributes its trailing segment.
func ticketFeatures(snap *snapshot.ProjectSnapshot, n int) []string {
	if snap == nil {
		return nil
	}
	var out []string
	for _, t := range snap.Tickets {
		if len(out) == n {
			break
		}
		title := CleanMarkdown(t.Title)
		if i := strings.LastIndex(title, ":"); i >= 0 {
			title = strings.TrimSpace(title[i+1:])
		}
		if title != "" {
			out = append(out, title)
		}
	}
	return out
}

// fallbackInternal builds internal messaging; a non-nil change set selects
// the changes variant.
func fallbackInternal(snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) InternalMessaging {
	if cs != nil {
		return fallbackInternalChanges(snap, cs)
	}
	name := projectName(snap)
	return InternalMessaging{
		Subject:        "Internal Brief: " + name,
		WhatItIs:       fmt.Sprintf("%s is our initiative to %s", name, orDefault(Shorten(overview(snap), messagingBudget), "keep project documentation aligned across teams.")),
		CustomerPain:   "Our customers are struggling with " + orDefault(Shorten(painPoint(snap), messagingBudget), "fragmented tooling and inconsistent information."),
		OurSolution:    "We're addressing this by " + orDefault(Shorten(solutionApproach(snap), messagingBudget), "delivering a focused, integrated workflow."),
		BusinessImpact: "This initiative will " + orDefault(Shorten(businessValue(snap), messagingBudget), "improve our customer experience and drive business growth."),
	}
}

func fallbackInternalChanges(snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) InternalMessaging {
	name := projectName(snap)

	subject := "Internal Update: " + name + " "
	switch {
	case !cs.Strategy.Empty():
		subject += "Strategy Changes"
	case !cs.PRD.Empty():
		subject += "Scope Update"
	case !cs.Tickets.Empty():
		subject += "Implementation Update"
	default:
		subject += "Minor Update"
	}

	return InternalMessaging{
		Subject:        subject,
		WhatChanged:    describeChanges(cs),
		CustomerImpact: describeCustomerImpact(snap, cs),
		BusinessImpact: describeBusinessImpact(snap),
	}
}

func describeChanges(cs *diff.ChangeSet) string {
	var parts []string
	if n := len(cs.PRD.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("Added %d new sections to the PRD", n))
	}
	if n := len(cs.PRD.Modified); n > 0 {
		parts = append(parts, fmt.Sprintf("Updated %d sections in the PRD", n))
	}
	if n := len(cs.PRD.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("Removed %d sections from the PRD", n))
	}
	if n := len(cs.Tickets.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("Added %d new tickets", n))
	}
	if n := len(cs.Tickets.Modified); n > 0 {
		parts = append(parts, fmt.Sprintf("Updated %d existing tickets", n))
	}
	if n := len(cs.Tickets.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("Closed %d tickets", n))
	}
	if len(cs.Strategy.Added) > 0 || len(cs.Strategy.Modified) > 0 {
		parts = append(parts, "Updated project strategy")
	}
	if len(parts) == 0 {
		parts = append(parts, "Made minor updates to project documentation")
	}
	return strings.Join(parts, ". ")
}

func describeCustomerImpact(snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) string {
	pain := Shorten(painPoint(snap), sentenceBudget)
	switch {
	case !cs.Strategy.Empty() && pain != "":
		return "These changes refine our approach to solving the customer pain point of " + pain
	case !cs.PRD.Empty() && pain != "":
		return "These updates improve our solution to the customer pain point of " + pain
	default:
		return "These changes maintain our focus on addressing key customer pain points."
	}
}

func describeBusinessImpact(snap *snapshot.ProjectSnapshot) string {
	if value := Shorten(businessValue(snap), messagingBudget); value != "" {
		return "These changes help us achieve " + value
	}
	return "These changes support our business objectives and customer satisfaction goals."
}

// fallbackExternal builds external messaging; a non-nil change set selects
// the changes variant, which additionally distinguishes a new feature (any
// PRD addition) from a general update.
func fallbackExternal(snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) ExternalMessaging {
	name := projectName(snap)

	if cs == nil {
		return ExternalMessaging{
			Headline:     "Keep every project document in sync",
			PainPoint:    orDefault(Shorten(painPoint(snap), messagingBudget), "Your team wastes hours reconciling inconsistent documentation across systems, leading to implementation errors and delays."),
			Solution:     fmt.Sprintf("%s monitors all connected documents for changes and automatically flags inconsistencies, suggesting specific updates to maintain alignment.", name),
			Benefits:     orDefault(Shorten(businessValue(snap), messagingBudget), "Less documentation busywork, fewer implementation errors, and better cross-team alignment."),
			CallToAction: "Start a trial with your actual documents to measure the time savings.",
		}
	}

	if len(cs.PRD.Added) > 0 {
		feature := strings.ReplaceAll(cs.PRD.Added[0], "_", " ")
		return ExternalMessaging{
			Headline:     fmt.Sprintf("New: %s", feature),
			PainPoint:    "Teams waste time manually tracking document changes and propagating updates.",
			Solution:     fmt.Sprintf("The new %s capability automatically detects changes and suggests specific updates, cutting manual reconciliation work.", feature),
			CallToAction: fmt.Sprintf("Enable %s in your project settings today.", feature),
		}
	}

	return ExternalMessaging{
		Headline:     fmt.Sprintf("%s just got better", name),
		PainPoint:    "Keeping large document sets aligned previously took too much manual effort.",
		Solution:     "We've refined the core workflow so updates propagate faster and more accurately across your documents.",
		CallToAction: "Update to the latest version to access these improvements.",
	}
}

// Per-kind canned objections used when the model path is unavailable.
func fallbackObjections(kind Kind) []Objection {
	switch kind {
	case KindDescription:
		return []Objection{
			{Title: "No Success Metrics", Explanation: "The description lacks measurable KPIs to evaluate success.", Impact: "Success cannot be demonstrated to stakeholders."},
			{Title: "Alternatives Not Compared", Explanation: "No explanation of why this approach beats alternatives.", Impact: "Weak alternative analysis invites repeated re-litigation of the approach."},
			{Title: "Integration Requirements Missing", Explanation: "No mention of how this integrates with existing systems.", Impact: "Integration planning gaps are a common source of implementation delays."},
		}
	case KindInternal:
		return []Objection{
			{Title: "Resource Requirements Unspecified", Explanation: "Message doesn't detail the team resources needed.", Impact: "Resource planning gaps routinely delay delivery."},
			{Title: "No Timeline Provided", Explanation: "No mention of key milestones or deadlines.", Impact: "Teams cannot sequence dependent work."},
			{Title: "Success Metrics Undefined", Explanation: "No specific KPIs for measuring project success.", Impact: "Undefined metrics invite scope creep."},
		}
	case KindExternal:
		return []Objection{
			{Title: "Value Not Quantified", Explanation: "Mentions benefits without quantifying customer impact.", Impact: "Unquantified value propositions convert worse than specific ones."},
			{Title: "No Differentiation", Explanation: "Doesn't explain advantages over competitor solutions.", Impact: "Undifferentiated messaging weakens conversion."},
			{Title: "Implementation Effort Unstated", Explanation: "Doesn't address the customer effort required to adopt.", Impact: "Unstated adoption costs lengthen the sales cycle."},
		}
	}
	return nil
}

// Per-kind canned improvement suggestions for the fallback path.
func fallbackImprovements(kind Kind) []Improvement {
	switch kind {
	case KindDescription:
		return []Improvement{
			{Title: "Add Success Metrics", Suggestion: "Define 3-5 specific KPIs that will measure project success.", Benefit: "Defined metrics make delivered value demonstrable."},
			{Title: "Sharpen Scope Boundaries", Suggestion: "Explicitly list what's NOT included in the project to prevent scope creep.", Benefit: "Clear boundaries reduce feature creep and schedule slip."},
			{Title: "Specify Implementation Phases", Suggestion: "Break implementation into concrete phases with specific deliverables per milestone.", Benefit: "Phased plans reduce risk and improve stakeholder alignment."},
		}
	case KindInternal:
		return []Improvement{
			{Title: "Add RACI Matrix", Suggestion: "Include a simple RACI chart showing team responsibilities for key deliverables.", Benefit: "Clear responsibility assignment eliminates redundant work."},
			{Title: "Prioritize Implementation Tasks", Suggestion: "Categorize implementation tasks as P0, P1, and P2.", Benefit: "Prioritized task lists improve team focus and on-time delivery."},
			{Title: "Add Dependency Timeline", Suggestion: "Create a timeline showing cross-team dependencies and delivery dates.", Benefit: "Dependency timelines surface blocking issues early."},
		}
	case KindExternal:
		return []Improvement{
			{Title: "Add Customer Testimonial", Suggestion: "Include a brief quote from a beta customer with the specific result achieved.", Benefit: "Testimonials build credibility with prospects."},
			{Title: "Create Comparison Table", Suggestion: "Add a simple table comparing your solution vs. alternatives vs. doing nothing.", Benefit: "Direct comparisons address alternative evaluation head-on."},
			{Title: "Add ROI Calculator Link", Suggestion: "Link a simple calculator where prospects estimate their specific ROI.", Benefit: "Interactive ROI tools qualify leads earlier."},
		}
	}
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func ensureSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

package artifacts

import (
	"encoding/json"
	"fmt"
	"strings"

	"aligntrack/internal/diff"
	"aligntrack/internal/snapshot"
)

// masterPrompt is the ten-part structure every generation prompt follows.
// The last three sections are optional.
type masterPrompt struct {
	Role        string
	Context     string
	Task        string
	Format      string
	Process     string
	ContentReq  string
	Constraints string
	Examples    string
	Interaction string
	Quality     string
}

func (p masterPrompt) build() string {
	parts := []string{
		"# 1. Role & Identity Definition\n" + p.Role,
		"# 2. Context & Background\n" + p.Context,
		"# 3. Task Definition & Objectives\n" + p.Task,
		"# 4. Format & Structure Guidelines\n" + p.Format,
		"# 5. Process Instructions\n" + p.Process,
		"# 6. Content Requirements\n" + p.ContentReq,
		"# 7. Constraints & Limitations\n" + p.Constraints,
	}
	if p.Examples != "" {
		parts = append(parts, "# 8. Examples & References\n"+p.Examples)
	}
	if p.Interaction != "" {
		parts = append(parts, "# 9. Interaction Guidelines\n"+p.Interaction)
	}
	if p.Quality != "" {
		parts = append(parts, "# 10. Quality Assurance\n"+p.Quality)
	}
	return strings.Join(parts, "\n\n")
}

func descriptionPrompt(snap *snapshot.ProjectSnapshot) string {
	return masterPrompt{
		Role: "You are a Project Communications Specialist with expertise in distilling complex initiatives into clear, concise descriptions for both technical and non-technical stakeholders.",
		Context: fmt.Sprintf(`I need standardized descriptions for a project based on the following information:

%s

These descriptions ensure all stakeholders share a consistent understanding of what the project is, what problem it solves, and how the solution works.`, formatContext(snap)),
		Task: `Generate two versions of the project description:
1. A three-sentence description covering what the project is, the customer pain point it solves, and how it is addressed
2. A three-paragraph description elaborating on the same three points`,
		Format: `Structure your response as JSON:
{
    "three_sentences": ["what the project is", "the customer pain point", "how the solution addresses it"],
    "three_paragraphs": ["paragraph on what it is", "paragraph on the pain point", "paragraph on the solution approach"]
}
Each sentence covers a single aspect (what, why, how); each paragraph expands one aspect with supporting detail.`,
		Process: `1. Identify the project's core purpose
2. Identify the specific customer pain point
3. Extract the key elements of the solution approach
4. Draft three focused sentences, then expand each into a paragraph
5. Review for clarity and consistency between the versions`,
		ContentReq: `Include the project's primary function and scope, the specific problems being solved, the core approach, and concrete expected outcomes. Language must be clear, specific, and active.`,
		Constraints: `Avoid marketing hyperbole, unnecessary implementation detail, generic descriptions that could apply to any project, and any scope not supported by the provided information.`,
		Quality: `Verify both versions reflect the same core information, all three aspects are addressed, and the descriptions are specific to this project.`,
	}.build()
}

func internalProjectPrompt(snap *snapshot.ProjectSnapshot) string {
	return masterPrompt{
		Role: "You are an Internal Communications Strategist who translates complex initiatives into concise, actionable communications for organizational stakeholders.",
		Context: fmt.Sprintf(`I need internal messaging about a project based on the following information:

%s

This messaging communicates the project's purpose, value, and impact to internal teams.`, formatContext(snap)),
		Task: `Generate internal messaging that explains what the project is, the customer pain point it addresses, how we are solving it, and the business impact.`,
		Format: `Structure your response as JSON:
{
    "subject": "Internal Brief: [Project Name]",
    "what_it_is": "2-3 sentences",
    "customer_pain": "2-3 sentences",
    "our_solution": "2-3 sentences",
    "business_impact": "2-3 sentences"
}`,
		Process: `1. Understand the project's purpose and scope
2. Identify the key customer pain points
3. Extract the core solution elements
4. Determine the primary business value drivers
5. Draft each section and review for clarity and balance`,
		ContentReq: `Cover scope and purpose, specific customer problems, the core approach, and concrete business benefits, in language accessible to non-technical stakeholders.`,
		Constraints: `Avoid marketing hype, unnecessary technical detail, generic statements, absolute promises, and downplaying implementation challenges.`,
		Interaction: `Readers should be able to explain the project's purpose and value to others without further context.`,
	}.build()
}

func internalChangesPrompt(snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) string {
	changes, _ := json.MarshalIndent(cs, "", "  ")
	return masterPrompt{
		Role: "You are an Internal Change Communications Specialist who explains project updates: what changed, why it matters, and how it impacts the business.",
		Context: fmt.Sprintf(`I need internal messaging about changes to a project based on the following information:

%s

The following changes have been made to the project:
%s`, formatContext(snap), changes),
		Task: `Generate internal update messaging that explains what changed, how the changes affect the customer pain point being addressed, and their business impact.`,
		Format: `Structure your response as JSON:
{
    "subject": "Internal Update: [Project Name with appropriate update type]",
    "what_changed": "2-4 sentences",
    "customer_impact": "2-3 sentences",
    "business_impact": "2-3 sentences"
}`,
		Process: `1. Review the changes and their scope
2. Assess how they affect the project's purpose or approach
3. Determine the customer and business implications
4. Draft messaging focused on meaningful shifts, not minor adjustments`,
		ContentReq: `Be specific about what changed, its effect on the customer pain point, and the business outcome. Include rationale when the context makes it apparent.`,
		Constraints: `Avoid speculation about motives, alarmist framing, and restating the raw change list without interpretation.`,
	}.build()
}

func externalProjectPrompt(snap *snapshot.ProjectSnapshot) string {
	return masterPrompt{
		Role: "You are a Product Marketing Specialist who crafts customer-facing messaging that is direct, concrete, and benefit-led.",
		Context: fmt.Sprintf(`I need external messaging for a product based on the following information:

%s`, formatContext(snap)),
		Task: `Generate customer-facing messaging with a compelling headline, the customer pain point, how the product solves it, specific benefits, and a clear call to action.`,
		Format: `Structure your response as JSON:
{
    "headline": "Benefit-led headline under 10 words",
    "pain_point": "1-2 sentences",
    "solution": "1-2 sentences",
    "benefits": "3 specific benefits, 1-2 sentences",
    "call_to_action": "1 sentence"
}`,
		Process: `1. Identify the single most compelling customer benefit
2. State the pain point in the customer's own terms
3. Connect the solution directly to that pain
4. Close with a concrete next step`,
		ContentReq: `Keep sentences under 20 words, lead with benefits, and stay specific to this product.`,
		Constraints: `Avoid jargon, superlatives without evidence, and any statistic not present in the provided information.`,
	}.build()
}

func externalChangesPrompt(snap *snapshot.ProjectSnapshot, cs *diff.ChangeSet) string {
	changes, _ := json.MarshalIndent(cs, "", "  ")
	return masterPrompt{
		Role: "You are a Product Marketing Specialist announcing a product update to customers.",
		Context: fmt.Sprintf(`I need external messaging about a product update based on the following information:

%s

The following changes have been made:
%s`, formatContext(snap), changes),
		Task: `Generate customer-facing update messaging: a headline for the change, a brief reminder of the problem, what is new or improved, and a call to action.`,
		Format: `Structure your response as JSON:
{
    "headline": "Update headline under 10 words",
    "pain_point": "1 sentence",
    "solution": "1-2 sentences on what is new",
    "call_to_action": "1 sentence"
}`,
		Process: `1. Decide whether this is a new capability or an improvement
2. Lead with the customer value of the change
3. Close with the action a customer should take`,
		ContentReq: `Keep sentences under 20 words and stay specific to the actual changes.`,
		Constraints: `Avoid overselling minor changes and inventing metrics.`,
	}.build()
}

func objectionsPrompt(snap *snapshot.ProjectSnapshot, artifact any, kind Kind) string {
	artifactJSON, _ := json.MarshalIndent(artifact, "", "  ")
	return masterPrompt{
		Role: "You are a Critical Project Evaluator who identifies concrete flaws in project communications.",
		Context: fmt.Sprintf(`Artifact to evaluate (%s):
%s

Project context:
%s`, kind, artifactJSON, formatContext(snap)),
		Task: `Generate 3-5 factual, concrete objections to this artifact. Focus on flaws that would prevent project success.`,
		Format: `Format as a JSON array of objection objects:
[
    {"title": "3-6 word summary", "explanation": "1-2 sentence factual explanation", "impact": "business impact when quantifiable"}
]`,
		Process: `1. Identify missing critical information
2. Spot logical inconsistencies and unrealistic assumptions
3. Rank by business impact and keep the strongest`,
		ContentReq: `Objections must be factual, specific to this project, and concise.`,
		Constraints: `Avoid stylistic critiques, minor issues, and subjective opinions about approach.`,
	}.build()
}

func improvementsPrompt(snap *snapshot.ProjectSnapshot, artifact any, kind Kind) string {
	artifactJSON, _ := json.MarshalIndent(artifact, "", "  ")
	return masterPrompt{
		Role: "You are a Product Focus Specialist who helps teams sharpen project communications and prevent scope creep.",
		Context: fmt.Sprintf(`Artifact to improve (%s):
%s

Project context:
%s`, kind, artifactJSON, formatContext(snap)),
		Task: `Generate 3 specific, actionable improvements: one to strengthen the core value proposition, one to prevent scope creep, and one to improve clarity or specificity.`,
		Format: `Format as a JSON array of improvement objects:
[
    {"title": "3-6 word summary", "suggestion": "1-2 sentence actionable recommendation", "benefit": "the outcome this produces"}
]`,
		Process: `1. Find the weakest claim and strengthen it
2. Find the vaguest boundary and tighten it
3. Find the least clear passage and simplify it`,
		ContentReq: `Suggestions must be actionable as written, without further discussion.`,
		Constraints: `Avoid generic advice that applies to any project.`,
	}.build()
}

package artifacts

import (
	"fmt"
	"strings"

	"aligntrack/internal/snapshot"
)

const contextValueClamp = 200

// maxTicketSummary bounds how many tickets the prompt context lists.
const maxTicketSummary = 5

func clamp(s string, n int) string {
	s = CleanMarkdown(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatContext renders a snapshot as prompt context: each document's text
// sections with readable labels, FAQ entries as Q/A pairs, and a bounded
// ticket summary.
func formatContext(snap *snapshot.ProjectSnapshot) string {
	if snap == nil {
		return "No project content is available yet."
	}
	var parts []string

	if !snap.PRD.IsEmpty() {
		parts = append(parts, "== Product Requirements Document (PRD) ==")
		parts = append(parts, formatDoc(snap.PRD)...)
	}

	if !snap.PRFAQ.IsEmpty() {
		parts = append(parts, "\n== Press Release / FAQ ==")
		for _, key := range snap.PRFAQ.Keys() {
			sc, _ := snap.PRFAQ.Get(key)
			if sc.IsFAQ() {
				parts = append(parts, "FAQs:")
				for _, qa := range sc.FAQs {
					parts = append(parts, fmt.Sprintf("Q: %s", clamp(qa.Question, contextValueClamp)))
					parts = append(parts, fmt.Sprintf("A: %s", clamp(qa.Answer, contextValueClamp)))
				}
				continue
			}
			if sc.Text != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", titleCase(key), clamp(sc.Text, contextValueClamp)))
			}
		}
	}

	if !snap.Strategy.IsEmpty() {
		parts = append(parts, "\n== Strategy Document ==")
		parts = append(parts, formatDoc(snap.Strategy)...)
	}

	if len(snap.Tickets) > 0 {
		parts = append(parts, "\n== Tickets Summary ==")
		parts = append(parts, fmt.Sprintf("Total tickets: %d", len(snap.Tickets)))
		for i, t := range snap.Tickets {
			if i == maxTicketSummary {
				parts = append(parts, fmt.Sprintf("... and %d more tickets", len(snap.Tickets)-maxTicketSummary))
				break
			}
			parts = append(parts, fmt.Sprintf("Ticket %d: %s - %s", i+1, t.Title, t.Status))
		}
	}

	if len(parts) == 0 {
		return "No project content is available yet."
	}
	return strings.Join(parts, "\n")
}

func formatDoc(doc snapshot.Document) []string {
	var parts []string
	for _, key := range doc.Keys() {
		text := doc.Text(key)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", titleCase(key), clamp(text, contextValueClamp)))
	}
	return parts
}

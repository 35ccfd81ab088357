package extraction

import (
	"testing"

	"aligntrack/internal/snapshot"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"h1 heading", "# Project Phoenix\n\nSome body text.", "Project Phoenix"},
		{"h1 trims whitespace", "#   Project Phoenix   \nbody", "Project Phoenix"},
		{"underlined title", "Project Phoenix\n===============\n\nbody", "Project Phoenix"},
		{"dash underline", "Project Phoenix\n---------------\n\nbody", "Project Phoenix"},
		{"title field", "title: Project Phoenix\nmore text", "Project Phoenix"},
		{"project field case insensitive", "PROJECT: Phoenix\ntext", "Phoenix"},
		{"numbered heading", "1. Kickoff Notes\nsome content", "Kickoff Notes"},
		{"first short line", "Weekly sync notes\nattendees: everyone", "Weekly sync notes"},
		{"h1 wins over field", "# Real Title\ntitle: Decoy", "Real Title"},
		{"empty input", "", untitledDocument},
		{"only blank lines", "\n\n\n", untitledDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.raw); got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTitleLongFirstLine(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "padding "
	}
	if got := extractTitle(long + "\nmore"); got != untitledDocument {
		t.Errorf("long first line should not become title, got %q", got)
	}
}

func TestExtractSections(t *testing.T) {
	raw := `# PRD

## Overview
The overview text.

## Problem Statement
Users lose track of documents.

### Details
Nested details here.

2.1. Solution
Build a tracker.

**Risks**
Might be hard.
`
	doc := Extract(raw, "")

	wantKeys := map[string]string{
		"overview":          "The overview text.",
		"problem_statement": "Users lose track of documents.",
		"details":           "Nested details here.",
		"solution":          "Build a tracker.",
		"risks":             "Might be hard.",
	}
	for key, want := range wantKeys {
		if !doc.Has(key) {
			t.Fatalf("missing section %q, have keys %v", key, doc.Keys())
		}
		if got := doc.Text(key); got != want {
			t.Errorf("section %q = %q, want %q", key, got, want)
		}
	}
	if name := doc.Text(snapshot.KeyName); name != "PRD" {
		t.Errorf("name = %q, want PRD", name)
	}
}

func TestExtractUnderlinedSections(t *testing.T) {
	raw := "Doc Title\n=========\n\nApproach\n--------\nDo the thing.\n"
	doc := Extract(raw, "")
	if got := doc.Text("approach"); got != "Do the thing." {
		t.Fatalf("approach = %q, want %q", got, "Do the thing.")
	}
}

func TestExtractEmptySectionsDropped(t *testing.T) {
	raw := "# T\n\n## Empty\n\n## Full\ncontent\n"
	doc := Extract(raw, "")
	if doc.Has("empty") {
		t.Error("empty section should be dropped")
	}
	if !doc.Has("full") {
		t.Error("full section should be kept")
	}
}

func TestExtractDuplicateHeadingLastWins(t *testing.T) {
	raw := "# T\n## Notes\nfirst\n## Notes\nsecond\n"
	doc := Extract(raw, "")
	if got := doc.Text("notes"); got != "second" {
		t.Errorf("notes = %q, want second", got)
	}
}

func TestExtractBulletFallback(t *testing.T) {
	raw := `Plan for the week
- **Goal:** ship the tracker
- **Owner:** platform team
- **Timeline:** two weeks
`
	doc := Extract(raw, "")
	tests := map[string]string{
		"goal":     "ship the tracker",
		"owner":    "platform team",
		"timeline": "two weeks",
	}
	for key, want := range tests {
		if got := doc.Text(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestExtractNoStructure(t *testing.T) {
	doc := Extract("just a sentence with no structure at all", "")
	if doc.Len() != 1 {
		t.Fatalf("expected name-only document, got keys %v", doc.Keys())
	}
	if name := doc.Text(snapshot.KeyName); name != "just a sentence with no structure at all" {
		t.Errorf("name = %q", name)
	}
}

func TestEnrichPRD(t *testing.T) {
	raw := `# Tracker PRD

Overview: keep everything aligned.

## The Challenge We Face
Docs drift out of sync.

## Proposed Solution
A sync pipeline.
`
	doc := Extract(raw, snapshot.KindPRD)

	if got := doc.Text(snapshot.KeyProblemStatement); got != "Docs drift out of sync." {
		t.Errorf("problem_statement = %q", got)
	}
	if got := doc.Text(snapshot.KeySolution); got != "A sync pipeline." {
		t.Errorf("solution = %q", got)
	}
	if got := doc.Text(snapshot.KeyOverview); got != "keep everything aligned." {
		t.Errorf("overview = %q", got)
	}
}

func TestEnrichKeepsExistingCanonical(t *testing.T) {
	raw := "# T\n## Problem Statement\ncanonical text\n## Other Problem\ndecoy\n"
	doc := Extract(raw, snapshot.KindPRD)
	if got := doc.Text(snapshot.KeyProblemStatement); got != "canonical text" {
		t.Errorf("problem_statement = %q, want canonical text", got)
	}
}

func TestEnrichStrategy(t *testing.T) {
	raw := `# Strategy

How we win: relentless focus.

## Our Mission
Be the sync layer.

## Expected Impact
Less drift.
`
	doc := Extract(raw, snapshot.KindStrategy)
	if got := doc.Text(snapshot.KeyVision); got != "Be the sync layer." {
		t.Errorf("vision = %q", got)
	}
	if got := doc.Text(snapshot.KeyApproach); got != "relentless focus." {
		t.Errorf("approach = %q", got)
	}
	if got := doc.Text(snapshot.KeyBusinessValue); got != "Less drift." {
		t.Errorf("business_value = %q", got)
	}
}

func TestEnrichPRFAQ(t *testing.T) {
	raw := `# Launch PRFAQ

## Press Release
Today we announce the tracker.

## FAQ
Q: Who is it for?
A: Product teams.

Q: When does it ship?
A: This quarter.
`
	doc := Extract(raw, snapshot.KindPRFAQ)

	if got := doc.Text(snapshot.KeyPressRelease); got != "Today we announce the tracker." {
		t.Errorf("press_release = %q", got)
	}
	sc, ok := doc.Get(snapshot.KeyFAQ)
	if !ok || !sc.IsFAQ() {
		t.Fatalf("expected FAQ section, got %+v (ok=%v)", sc, ok)
	}
	if len(sc.FAQs) != 2 {
		t.Fatalf("faqs = %d, want 2", len(sc.FAQs))
	}
	if sc.FAQs[0].Question != "Who is it for?" || sc.FAQs[0].Answer != "Product teams." {
		t.Errorf("first faq = %+v", sc.FAQs[0])
	}
}

func TestExtractFAQsSkipsUnanswered(t *testing.T) {
	faqs := ExtractFAQs("Q: orphan question\n\nQ: real one?\nA: yes.\n")
	if len(faqs) != 1 {
		t.Fatalf("faqs = %d, want 1", len(faqs))
	}
	if faqs[0].Question != "real one?" {
		t.Errorf("question = %q", faqs[0].Question)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Problem Statement", "problem_statement"},
		{"2.1. Solution", "solution"},
		{"  FAQs & Answers  ", "faqs_answers"},
		{"Risks/Mitigations", "risksmitigations"},
		{"A   B", "a_b"},
		{"3.", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package extraction

import (
	"regexp"
	"strings"

	"aligntrack/internal/snapshot"
)

// fieldSpec describes how to locate one well-known section when the generic
// heading pass missed it: first by synonym match against already-extracted
// keys, then by labeled-line patterns against the raw text.
type fieldSpec struct {
	key      string
	synonyms []string
	patterns []*regexp.Regexp
}

func labeled(names ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?mi)^(?:` + strings.Join(names, "|") + `)\s*:\s*(.+?)\s*$`)
}

var prdFields = []fieldSpec{
	{
		key:      snapshot.KeyProblemStatement,
		synonyms: []string{"problem", "challenge", "pain"},
		patterns: []*regexp.Regexp{labeled("problem", "the problem", "problem statement", "challenge")},
	},
	{
		key:      snapshot.KeySolution,
		synonyms: []string{"solution", "proposal", "approach"},
		patterns: []*regexp.Regexp{labeled("solution", "proposed solution", "our solution")},
	},
	{
		key:      snapshot.KeyOverview,
		synonyms: []string{"overview", "summary", "introduction", "background"},
		patterns: []*regexp.Regexp{labeled("overview", "summary")},
	},
}

var strategyFields = []fieldSpec{
	{
		key:      snapshot.KeyVision,
		synonyms: []string{"vision", "mission", "north_star"},
		patterns: []*regexp.Regexp{labeled("vision", "our vision", "mission")},
	},
	{
		key:      snapshot.KeyApproach,
		synonyms: []string{"approach", "strategy", "plan", "how"},
		patterns: []*regexp.Regexp{labeled("approach", "strategic approach", "how we win")},
	},
	{
		key:      snapshot.KeyBusinessValue,
		synonyms: []string{"business_value", "value", "impact", "outcome"},
		patterns: []*regexp.Regexp{labeled("business value", "value", "expected impact")},
	},
}

// enrich runs the type-hinted second pass, filling well-known sections the
// generic segmentation missed. Already-populated canonical keys are left
// untouched.
func enrich(doc *snapshot.Document, raw string, kind snapshot.DocKind) {
	switch kind {
	case snapshot.KindPRD:
		fillFields(doc, raw, prdFields)
	case snapshot.KindStrategy:
		fillFields(doc, raw, strategyFields)
	case snapshot.KindPRFAQ:
		enrichPRFAQ(doc, raw)
	}
}

func fillFields(doc *snapshot.Document, raw string, fields []fieldSpec) {
	for _, f := range fields {
		if doc.Has(f.key) {
			continue
		}
		if v, ok := sectionBySynonym(doc, f.key, f.synonyms); ok {
			doc.SetText(f.key, v)
			continue
		}
		for _, p := range f.patterns {
			if m := p.FindStringSubmatch(raw); m != nil {
				doc.SetText(f.key, m[1])
				break
			}
		}
	}
}

// sectionBySynonym promotes an existing section whose key contains one of the
// synonyms. The canonical key itself is excluded so a section is never its
// own source.
func sectionBySynonym(doc *snapshot.Document, canonical string, synonyms []string) (string, bool) {
	for _, key := range doc.Keys() {
		if key == canonical || key == snapshot.KeyName {
			continue
		}
		for _, syn := range synonyms {
			if strings.Contains(key, syn) {
				if v := doc.Text(key); v != "" {
					return v, true
				}
			}
		}
	}
	return "", false
}

var (
	pressReleaseHeading = regexp.MustCompile(`(?i)press\s*release`)
	faqHeading          = regexp.MustCompile(`(?i)\b(?:faq|frequently\s*asked)\b`)
	qaPair              = regexp.MustCompile(`(?m)^\*{0,2}Q\*{0,2}[:.][ \t]*(.+?)[ \t]*\n\s*\*{0,2}A\*{0,2}[:.][ \t]*(.+?)[ \t]*$`)
)

func enrichPRFAQ(doc *snapshot.Document, raw string) {
	if !doc.Has(snapshot.KeyPressRelease) {
		for _, key := range doc.Keys() {
			if pressReleaseHeading.MatchString(key) {
				if v := doc.Text(key); v != "" {
					doc.SetText(snapshot.KeyPressRelease, v)
				}
				break
			}
		}
	}
	if !doc.Has(snapshot.KeyFAQ) {
		if faqs := ExtractFAQs(raw); len(faqs) > 0 {
			doc.Set(snapshot.KeyFAQ, snapshot.FAQContent(faqs))
		}
	}
	if !doc.Has(snapshot.KeyFAQ) {
		for _, key := range doc.Keys() {
			if faqHeading.MatchString(key) {
				if v := doc.Text(key); v != "" {
					if faqs := ExtractFAQs(v); len(faqs) > 0 {
						doc.Set(snapshot.KeyFAQ, snapshot.FAQContent(faqs))
					}
				}
				break
			}
		}
	}
}

// ExtractFAQs parses consecutive "Q:" / "A:" line pairs into FAQ entries.
// Questions with no matching answer are skipped.
func ExtractFAQs(text string) []snapshot.FAQ {
	var out []snapshot.FAQ
	for _, m := range qaPair.FindAllStringSubmatch(text, -1) {
		q := strings.TrimSpace(m[1])
		a := strings.TrimSpace(m[2])
		if q == "" || a == "" {
			continue
		}
		out = append(out, snapshot.FAQ{Question: q, Answer: a})
	}
	return out
}

// Package validation checks extracted documents against flexible per-type
// templates. Validation never fails a document; it grades structure and
// offers improvement suggestions.
package validation

import (
	"fmt"
	"strings"

	"aligntrack/internal/snapshot"
)

// lengthRange bounds a section's size: characters for text sections, item
// count for FAQ sections.
type lengthRange struct {
	Min, Max int
}

type template struct {
	Suggested        []string
	MinimumSuggested int
	Lengths          map[string]lengthRange
}

// genericType is the fallback for unknown document kinds.
const genericType = "generic"

// maxSuggestedAdditions caps how many missing sections a result names.
const maxSuggestedAdditions = 3

var templates = map[string]template{
	string(snapshot.KindPRD): {
		Suggested: []string{
			snapshot.KeyName, snapshot.KeyOverview, snapshot.KeyProblemStatement,
			snapshot.KeySolution, "requirements", "timeline", "success_metrics", "scope",
		},
		MinimumSuggested: 3,
		Lengths: map[string]lengthRange{
			snapshot.KeyOverview:         {50, 2000},
			snapshot.KeyProblemStatement: {20, 1000},
			snapshot.KeySolution:         {50, 2000},
			"requirements":               {50, 5000},
		},
	},
	string(snapshot.KindPRFAQ): {
		Suggested:        []string{snapshot.KeyName, snapshot.KeyPressRelease, snapshot.KeyFAQ},
		MinimumSuggested: 2,
		Lengths: map[string]lengthRange{
			snapshot.KeyPressRelease: {100, 2000},
			snapshot.KeyFAQ:          {2, 30},
		},
	},
	string(snapshot.KindStrategy): {
		Suggested: []string{
			snapshot.KeyName, snapshot.KeyVision, snapshot.KeyApproach,
			snapshot.KeyBusinessValue, "goals", "timeline",
		},
		MinimumSuggested: 2,
		Lengths: map[string]lengthRange{
			snapshot.KeyVision:        {20, 500},
			snapshot.KeyApproach:      {50, 1000},
			snapshot.KeyBusinessValue: {20, 1000},
		},
	},
	genericType: {
		Suggested:        []string{snapshot.KeyName, "content"},
		MinimumSuggested: 1,
	},
}

// LengthSuggestion flags a section outside its suggested size range.
type LengthSuggestion struct {
	Section        string `json:"section"`
	Suggestion     string `json:"suggestion"`
	Value          int    `json:"value"`
	Recommendation string `json:"recommendation"`
}

// Result is a structural assessment. Valid is always true: structure issues
// produce suggestions, never rejection.
type Result struct {
	Valid              bool               `json:"valid"`
	IdentifiedType     string             `json:"identified_type"`
	PresentSections    []string           `json:"present_sections"`
	SuggestedAdditions []string           `json:"suggested_additions"`
	LengthSuggestions  []LengthSuggestion `json:"length_suggestions"`
	OverallSuggestion  string             `json:"overall_suggestion"`
}

// Validate grades doc against the template for kind. Unknown kinds use the
// generic template.
func Validate(doc *snapshot.Document, kind snapshot.DocKind) Result {
	docType := string(kind)
	tmpl, ok := templates[docType]
	if !ok {
		docType = genericType
		tmpl = templates[genericType]
	}

	var present, missing []string
	for _, section := range tmpl.Suggested {
		if sectionPopulated(doc, section) {
			present = append(present, section)
		} else {
			missing = append(missing, section)
		}
	}

	var lengths []LengthSuggestion
	for _, section := range tmpl.Suggested {
		rng, ok := tmpl.Lengths[section]
		if !ok || !doc.Has(section) {
			continue
		}
		if ls, flagged := checkLength(doc, section, rng); flagged {
			lengths = append(lengths, ls)
		}
	}

	additions := missing
	if len(additions) > maxSuggestedAdditions {
		additions = additions[:maxSuggestedAdditions]
	}

	var overall string
	switch {
	case len(present) < tmpl.MinimumSuggested:
		overall = fmt.Sprintf("Document appears to be missing key sections for a %s. Consider adding some of the following: %s",
			strings.ToUpper(docType), strings.Join(additions, ", "))
	case len(lengths) > 0:
		overall = "Document structure looks good, but some sections could be improved for better readability."
	default:
		overall = fmt.Sprintf("Document structure appears to be a good fit for a %s.", strings.ToUpper(docType))
	}

	return Result{
		Valid:              true,
		IdentifiedType:     docType,
		PresentSections:    present,
		SuggestedAdditions: additions,
		LengthSuggestions:  lengths,
		OverallSuggestion:  overall,
	}
}

func sectionPopulated(doc *snapshot.Document, section string) bool {
	sc, ok := doc.Get(section)
	if !ok {
		return false
	}
	if sc.IsFAQ() {
		return len(sc.FAQs) > 0
	}
	return strings.TrimSpace(sc.Text) != ""
}

func checkLength(doc *snapshot.Document, section string, rng lengthRange) (LengthSuggestion, bool) {
	sc, _ := doc.Get(section)

	if sc.IsFAQ() {
		n := len(sc.FAQs)
		switch {
		case n < rng.Min:
			return LengthSuggestion{
				Section:        section,
				Suggestion:     "consider_adding_items",
				Value:          n,
				Recommendation: fmt.Sprintf("Consider adding more items (suggested minimum: %d)", rng.Min),
			}, true
		case n > rng.Max:
			return LengthSuggestion{
				Section:        section,
				Suggestion:     "consider_reducing_items",
				Value:          n,
				Recommendation: fmt.Sprintf("Consider reducing the number of items for better focus (suggested maximum: %d)", rng.Max),
			}, true
		}
		return LengthSuggestion{}, false
	}

	n := len(sc.Text)
	switch {
	case n < rng.Min:
		return LengthSuggestion{
			Section:        section,
			Suggestion:     "consider_expanding",
			Value:          n,
			Recommendation: fmt.Sprintf("Consider expanding to at least %d characters for better clarity", rng.Min),
		}, true
	case n > rng.Max:
		return LengthSuggestion{
			Section:        section,
			Suggestion:     "consider_condensing",
			Value:          n,
			Recommendation: fmt.Sprintf("Consider condensing to around %d characters for better readability", rng.Max),
		}, true
	}
	return LengthSuggestion{}, false
}

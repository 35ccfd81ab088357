// Package artifacts generates the derived communication artifacts for a
// project snapshot: a project description, internal messaging, external
// messaging, plus objections and improvement suggestions for each. Every
// generator has a model-backed path and a deterministic fallback producing
// the identical shape, so a caller always receives a complete artifact.
package artifacts

import "encoding/json"

// Kind names one artifact family.
type Kind string

const (
	KindDescription Kind = "description"
	KindInternal    Kind = "internal_messaging"
	KindExternal    Kind = "external_messaging"
)

// Source records which path produced an artifact.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Objection challenges an artifact's framing. Models sometimes answer with
// objection/response keys instead of title/explanation; both spellings
// unmarshal into the same struct.
type Objection struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Impact      string `json:"impact,omitempty"`
}

func (o *Objection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title       string `json:"title"`
		Objection   string `json:"objection"`
		Explanation string `json:"explanation"`
		Response    string `json:"response"`
		Impact      string `json:"impact"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Title = raw.Title
	if o.Title == "" {
		o.Title = raw.Objection
	}
	o.Explanation = raw.Explanation
	if o.Explanation == "" {
		o.Explanation = raw.Response
	}
	o.Impact = raw.Impact
	return nil
}

// Improvement is an actionable suggestion for sharpening an artifact.
type Improvement struct {
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
	Benefit    string `json:"benefit,omitempty"`
}

// Description is the project description artifact: the same three aspects
// (what, why, how) in sentence and paragraph form.
type Description struct {
	ThreeSentences  []string    `json:"three_sentences"`
	ThreeParagraphs []string    `json:"three_paragraphs"`
	Objections      []Objection `json:"objections,omitempty"`
}

func (d Description) complete() bool {
	return len(d.ThreeSentences) == 3 && len(d.ThreeParagraphs) == 3
}

// InternalMessaging is the stakeholder-facing brief. The project variant
// fills what_it_is/customer_pain/our_solution; the changes variant fills
// what_changed/customer_impact instead.
type InternalMessaging struct {
	Subject        string      `json:"subject"`
	WhatItIs       string      `json:"what_it_is,omitempty"`
	CustomerPain   string      `json:"customer_pain,omitempty"`
	OurSolution    string      `json:"our_solution,omitempty"`
	WhatChanged    string      `json:"what_changed,omitempty"`
	CustomerImpact string      `json:"customer_impact,omitempty"`
	BusinessImpact string      `json:"business_impact"`
	Objections     []Objection `json:"objections,omitempty"`
}

func (m InternalMessaging) complete(changes bool) bool {
	if m.Subject == "" || m.BusinessImpact == "" {
		return false
	}
	if changes {
		return m.WhatChanged != "" && m.CustomerImpact != ""
	}
	return m.WhatItIs != "" && m.CustomerPain != "" && m.OurSolution != ""
}

// ExternalMessaging is the customer-facing pitch. The changes variant drops
// the benefits field.
type ExternalMessaging struct {
	Headline     string      `json:"headline"`
	PainPoint    string      `json:"pain_point"`
	Solution     string      `json:"solution"`
	Benefits     string      `json:"benefits,omitempty"`
	CallToAction string      `json:"call_to_action"`
	Objections   []Objection `json:"objections,omitempty"`
}

func (m ExternalMessaging) complete(changes bool) bool {
	if m.Headline == "" || m.PainPoint == "" || m.Solution == "" || m.CallToAction == "" {
		return false
	}
	if !changes && m.Benefits == "" {
		return false
	}
	return true
}

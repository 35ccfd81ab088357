// Package snapshot defines the structured content model: documents broken
// into named sections, tickets, and the point-in-time project snapshot that
// the differ and generators consume.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Well-known section keys produced by extraction.
const (
	KeyName             = "name"
	KeyOverview         = "overview"
	KeyProblemStatement = "problem_statement"
	KeySolution         = "solution"
	KeyVision           = "vision"
	KeyApproach         = "approach"
	KeyBusinessValue    = "business_value"
	KeyPressRelease     = "press_release"
	KeyFAQ              = "frequently_asked_questions"
)

// FAQ is a single question/answer entry.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SectionContent is the value of one document section: either free text or a
// list of FAQ entries. Exactly one of the two is populated.
type SectionContent struct {
	Text string
	FAQs []FAQ
}

// TextContent wraps a string as section content.
func TextContent(s string) SectionContent { return SectionContent{Text: s} }

// FAQContent wraps FAQ entries as section content.
func FAQContent(faqs []FAQ) SectionContent { return SectionContent{FAQs: faqs} }

// IsFAQ reports whether the content holds FAQ entries.
func (c SectionContent) IsFAQ() bool { return c.FAQs != nil }

// Equal reports structural equality.
func (c SectionContent) Equal(other SectionContent) bool {
	if c.Text != other.Text {
		return false
	}
	if len(c.FAQs) != len(other.FAQs) {
		return false
	}
	for i := range c.FAQs {
		if c.FAQs[i] != other.FAQs[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes text content as a JSON string and FAQ content as a
// JSON array, matching the stored snapshot format.
func (c SectionContent) MarshalJSON() ([]byte, error) {
	if c.IsFAQ() {
		return json.Marshal(c.FAQs)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a string or an array of FAQ entries.
func (c *SectionContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = SectionContent{Text: s}
		return nil
	}
	var faqs []FAQ
	if err := json.Unmarshal(data, &faqs); err == nil {
		*c = SectionContent{FAQs: faqs}
		return nil
	}
	return fmt.Errorf("section content must be a string or an FAQ list")
}

// Document is an insertion-ordered mapping of normalized section name to
// section content. Ordering matters: diff output follows it, so the zero
// value plus Set calls reproduces extraction order deterministically.
type Document struct {
	keys     []string
	sections map[string]SectionContent
}

// Set stores content under key. An existing key keeps its position
// (last-write-wins on content), a new key appends.
func (d *Document) Set(key string, content SectionContent) {
	if d.sections == nil {
		d.sections = make(map[string]SectionContent)
	}
	if _, exists := d.sections[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.sections[key] = content
}

// SetText stores free text under key.
func (d *Document) SetText(key, text string) { d.Set(key, TextContent(text)) }

// Get returns the content stored under key.
func (d *Document) Get(key string) (SectionContent, bool) {
	c, ok := d.sections[key]
	return c, ok
}

// Text returns the text stored under key, or "" for absent or FAQ content.
func (d *Document) Text(key string) string {
	c, ok := d.sections[key]
	if !ok || c.IsFAQ() {
		return ""
	}
	return c.Text
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.sections[key]
	return ok
}

// Keys returns the section keys in insertion order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.keys) }

// IsEmpty reports whether the document has no sections.
func (d *Document) IsEmpty() bool { return len(d.keys) == 0 }

// Merge copies every section of src into d; src wins on conflicting keys.
func (d *Document) Merge(src *Document) {
	for _, k := range src.keys {
		d.Set(k, src.sections[k])
	}
}

// Equal reports structural equality including section order.
func (d *Document) Equal(other *Document) bool {
	if len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !d.sections[k].Equal(other.sections[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the document as a JSON object preserving section order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.sections[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("document must be a JSON object")
	}

	*d = Document{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("document key must be a string")
		}
		var content SectionContent
		if err := dec.Decode(&content); err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		d.Set(key, content)
	}

	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

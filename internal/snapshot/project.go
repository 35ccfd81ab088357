package snapshot

import "encoding/json"

// DocKind identifies one of the tracked document types.
type DocKind string

const (
	KindPRD      DocKind = "prd"
	KindPRFAQ    DocKind = "prfaq"
	KindStrategy DocKind = "strategy"
)

// DocKinds lists the tracked document kinds in their canonical order.
var DocKinds = []DocKind{KindPRD, KindPRFAQ, KindStrategy}

// Ticket is one issue-tracker item. Identity is ID; diffing compares only
// the fields below (anything else an integration attaches is noise).
type Ticket struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
}

// Differs reports whether two tickets differ in any meaningful field.
func (t Ticket) Differs(other Ticket) bool {
	return t.Title != other.Title ||
		t.Description != other.Description ||
		t.Status != other.Status ||
		t.Priority != other.Priority ||
		t.Assignee != other.Assignee
}

// ProjectSnapshot is a point-in-time capture of all tracked content.
// Immutable once stored: a new collection produces a new snapshot.
type ProjectSnapshot struct {
	PRD      Document `json:"prd"`
	PRFAQ    Document `json:"prfaq"`
	Strategy Document `json:"strategy"`
	Tickets  []Ticket `json:"tickets"`
}

// Doc returns the document for kind.
func (s *ProjectSnapshot) Doc(kind DocKind) *Document {
	switch kind {
	case KindPRD:
		return &s.PRD
	case KindPRFAQ:
		return &s.PRFAQ
	case KindStrategy:
		return &s.Strategy
	}
	return nil
}

// Ticket returns the ticket with the given id, if present.
func (s *ProjectSnapshot) Ticket(id string) (Ticket, bool) {
	for _, t := range s.Tickets {
		if t.ID == id {
			return t, true
		}
	}
	return Ticket{}, false
}

// Marshal serializes the snapshot to its stored JSON form.
func (s *ProjectSnapshot) Marshal() ([]byte, error) {
	if s.Tickets == nil {
		s.Tickets = []Ticket{}
	}
	return json.Marshal(s)
}

// Unmarshal parses a stored snapshot.
func Unmarshal(data []byte) (*ProjectSnapshot, error) {
	var s ProjectSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// PRDView exposes the well-known PRD fields. Sections outside the view stay
// reachable through the underlying ordered document.
type PRDView struct {
	Name             string
	Overview         string
	ProblemStatement string
	Solution         string
}

// PRFAQView exposes the well-known PRFAQ fields.
type PRFAQView struct {
	Name         string
	PressRelease string
	FAQs         []FAQ
}

// StrategyView exposes the well-known strategy fields.
type StrategyView struct {
	Name          string
	Vision        string
	Approach      string
	BusinessValue string
}

// PRDView builds the typed view of the PRD document.
func (s *ProjectSnapshot) PRDView() PRDView {
	return PRDView{
		Name:             s.PRD.Text(KeyName),
		Overview:         s.PRD.Text(KeyOverview),
		ProblemStatement: s.PRD.Text(KeyProblemStatement),
		Solution:         s.PRD.Text(KeySolution),
	}
}

// PRFAQView builds the typed view of the PRFAQ document.
func (s *ProjectSnapshot) PRFAQView() PRFAQView {
	view := PRFAQView{
		Name:         s.PRFAQ.Text(KeyName),
		PressRelease: s.PRFAQ.Text(KeyPressRelease),
	}
	if c, ok := s.PRFAQ.Get(KeyFAQ); ok && c.IsFAQ() {
		view.FAQs = c.FAQs
	}
	return view
}

// StrategyView builds the typed view of the strategy document.
func (s *ProjectSnapshot) StrategyView() StrategyView {
	return StrategyView{
		Name:          s.Strategy.Text(KeyName),
		Vision:        s.Strategy.Text(KeyVision),
		Approach:      s.Strategy.Text(KeyApproach),
		BusinessValue: s.Strategy.Text(KeyBusinessValue),
	}
}

package sources

import (
	"context"
	"sort"
	"sync"

	"aligntrack/internal/snapshot"
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Page is one Confluence page. Labels decide where its content lands: a
// "prd" label routes to the PRD, "strategy" to the strategy document,
// anything else is ignored.
type Page struct {
	ID      string
	Title   string
	Labels  []string
	Content map[string]string
}

// Kind returns the document the page's labels route to.
func (p Page) Kind() (snapshot.DocKind, bool) {
	for _, label := range p.Labels {
		if label == "prd" {
			return snapshot.KindPRD, true
		}
	}
	for _, label := range p.Labels {
		if label == "strategy" {
			return snapshot.KindStrategy, true
		}
	}
	return "", false
}

// Confluence is the Confluence integration, seeded with a demo page.
type Confluence struct {
	mu    sync.Mutex
	pages []Page
}

func NewConfluence() *Confluence {
	return &Confluence{pages: []Page{{
		ID:     "page1",
		Title:  "Project Strategy",
		Labels: []string{"strategy"},
		Content: map[string]string{
			snapshot.KeyVision:   "Create the best tool for project alignment",
			snapshot.KeyApproach: "Focus on simplicity",
		},
	}}}
}

func (c *Confluence) Name() string { return "confluence" }

// Page returns a page by id.
func (c *Confluence) Page(id string) (Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// AddPage registers or replaces a page.
func (c *Confluence) AddPage(p Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.pages {
		if existing.ID == p.ID {
			c.pages[i] = p
			return
		}
	}
	c.pages = append(c.pages, p)
}

// Collect routes each labeled page's structured content to its document.
// Pages sharing a target merge in registration order.
func (c *Confluence) Collect(_ context.Context) (Payload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	structured := make(map[snapshot.DocKind]*snapshot.Document)
	for _, p := range c.pages {
		kind, ok := p.Kind()
		if !ok {
			continue
		}
		doc := structured[kind]
		if doc == nil {
			doc = &snapshot.Document{}
			structured[kind] = doc
		}
		for _, key := range sortedKeys(p.Content) {
			doc.SetText(key, p.Content[key])
		}
	}
	return Payload{Structured: structured}, nil
}

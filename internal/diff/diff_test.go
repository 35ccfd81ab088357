package diff

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"aligntrack/internal/snapshot"
)

func textDoc(pairs ...string) snapshot.Document {
	var doc snapshot.Document
	for i := 0; i+1 < len(pairs); i += 2 {
		doc.SetText(pairs[i], pairs[i+1])
	}
	return doc
}

func TestDocumentsAddedModifiedRemoved(t *testing.T) {
	prev := textDoc("name", "P", "overview", "old text", "risks", "some")
	curr := textDoc("name", "P", "overview", "new text", "solution", "build it")

	got := Documents(prev, curr)

	want := Change{
		Added:    []string{"solution"},
		Modified: []string{"overview"},
		Removed:  []string{"risks"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Documents() mismatch (-want +got):\n%s", diff)
	}
}

// Every key of prev and curr lands in exactly one of added, modified,
// removed, or unchanged.
func TestDocumentsPartition(t *testing.T) {
	prev := textDoc("a", "1", "b", "2", "c", "3")
	curr := textDoc("b", "2", "c", "changed", "d", "4")

	got := Documents(prev, curr)

	seen := map[string]int{}
	for _, k := range got.Added {
		seen[k]++
	}
	for _, k := range got.Modified {
		seen[k]++
	}
	for _, k := range got.Removed {
		seen[k]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("key %q appears in %d categories", k, n)
		}
	}
	if _, ok := seen["b"]; ok {
		t.Error("unchanged key b should not appear at all")
	}
}

func TestDocumentsIdempotent(t *testing.T) {
	doc := textDoc("name", "P", "overview", "same")
	if got := Documents(doc, doc); !got.Empty() {
		t.Errorf("diff of identical documents = %+v", got)
	}
}

func TestDocumentsOrdering(t *testing.T) {
	prev := textDoc("z_first", "1", "a_second", "2")
	curr := textDoc("m_new", "x", "a_new", "y")

	got := Documents(prev, curr)

	// Additions follow curr insertion order, removals follow prev.
	if !reflect.DeepEqual(got.Added, []string{"m_new", "a_new"}) {
		t.Errorf("added = %v", got.Added)
	}
	if !reflect.DeepEqual(got.Removed, []string{"z_first", "a_second"}) {
		t.Errorf("removed = %v", got.Removed)
	}
}

func TestDocumentsFAQChange(t *testing.T) {
	var prev, curr snapshot.Document
	prev.Set("frequently_asked_questions", snapshot.FAQContent([]snapshot.FAQ{{Question: "q", Answer: "a"}}))
	curr.Set("frequently_asked_questions", snapshot.FAQContent([]snapshot.FAQ{{Question: "q", Answer: "b"}}))

	got := Documents(prev, curr)
	if !reflect.DeepEqual(got.Modified, []string{"frequently_asked_questions"}) {
		t.Errorf("modified = %v", got.Modified)
	}
}

func TestTickets(t *testing.T) {
	prev := []snapshot.Ticket{
		{ID: "T-1", Title: "a", Status: "To Do"},
		{ID: "T-2", Title: "b"},
	}
	curr := []snapshot.Ticket{
		{ID: "T-1", Title: "a", Status: "Done"},
		{ID: "T-3", Title: "c"},
	}

	got := Tickets(prev, curr)

	if !reflect.DeepEqual(got.Modified, []string{"T-1"}) {
		t.Errorf("modified = %v", got.Modified)
	}
	if !reflect.DeepEqual(got.Added, []string{"T-3"}) {
		t.Errorf("added = %v", got.Added)
	}
	if !reflect.DeepEqual(got.Removed, []string{"T-2"}) {
		t.Errorf("removed = %v", got.Removed)
	}
}

func TestTicketsIgnoresNoiseFields(t *testing.T) {
	// Only title, description, status, priority, assignee count.
	prev := []snapshot.Ticket{{ID: "T-1", Title: "a", Status: "To Do"}}
	curr := []snapshot.Ticket{{ID: "T-1", Title: "a", Status: "To Do"}}

	if got := Tickets(prev, curr); !got.Empty() {
		t.Errorf("identical meaningful fields registered as change: %+v", got)
	}
}

func TestSnapshotsFirstEver(t *testing.T) {
	curr := &snapshot.ProjectSnapshot{
		PRD:     textDoc("name", "P", "overview", "x"),
		Tickets: []snapshot.Ticket{{ID: "T-1"}},
	}

	got := Snapshots(nil, curr)

	if !reflect.DeepEqual(got.PRD.Added, []string{"name", "overview"}) {
		t.Errorf("prd.added = %v", got.PRD.Added)
	}
	if !reflect.DeepEqual(got.Tickets.Added, []string{"all"}) {
		t.Errorf("tickets.added = %v", got.Tickets.Added)
	}
	if len(got.PRFAQ.Added) != 0 || len(got.Strategy.Added) != 0 {
		t.Errorf("empty docs should contribute nothing: %+v", got)
	}
}

func TestSnapshotsEmptyPrevious(t *testing.T) {
	prev := &snapshot.ProjectSnapshot{}
	curr := &snapshot.ProjectSnapshot{PRD: textDoc("overview", "x")}

	got := Snapshots(prev, curr)

	if !reflect.DeepEqual(got.PRD.Added, []string{"overview"}) {
		t.Errorf("prd.added = %v", got.PRD.Added)
	}
	if got.Total() != 1 {
		t.Errorf("total = %d, want 1", got.Total())
	}
}

func TestChangeSetAccounting(t *testing.T) {
	cs := ChangeSet{
		PRD:      Change{Added: []string{"a", "b"}, Modified: []string{}, Removed: []string{}},
		Strategy: Change{Added: []string{}, Modified: []string{"vision"}, Removed: []string{}},
	}
	if cs.Total() != 3 {
		t.Errorf("total = %d, want 3", cs.Total())
	}
	if cs.DocsChanged() != 2 {
		t.Errorf("docs changed = %d, want 2", cs.DocsChanged())
	}
	dist := cs.Distribution()
	if dist["prd"] != 2 || dist["strategy"] != 1 || dist["tickets"] != 0 {
		t.Errorf("distribution = %v", dist)
	}
}

func TestSectionDeltas(t *testing.T) {
	prev := textDoc("overview", "line one\nline two\nline three")
	curr := textDoc("overview", "line one\nline 2\nline three\nline four")

	change := Documents(prev, curr)
	deltas := SectionDeltas(prev, curr, change)

	if len(deltas) != 1 {
		t.Fatalf("deltas = %+v", deltas)
	}
	d := deltas[0]
	if d.Key != "overview" {
		t.Errorf("key = %q", d.Key)
	}
	if d.LinesAdded == 0 || d.LinesRemoved == 0 {
		t.Errorf("expected both added and removed lines, got %+v", d)
	}
}

func TestSectionDeltasSkipsFAQ(t *testing.T) {
	var prev, curr snapshot.Document
	prev.Set("frequently_asked_questions", snapshot.FAQContent([]snapshot.FAQ{{Question: "q", Answer: "a"}}))
	curr.Set("frequently_asked_questions", snapshot.FAQContent([]snapshot.FAQ{{Question: "q", Answer: "b"}}))

	change := Documents(prev, curr)
	if deltas := SectionDeltas(prev, curr, change); len(deltas) != 0 {
		t.Errorf("faq sections should be skipped, got %+v", deltas)
	}
}

// Package diff compares two project snapshots and reports, per top-level
// key, which section names and ticket ids were added, modified, or removed.
// The result feeds impact classification and change-driven artifact
// generation, and is stored alongside each version as a historical record.
package diff

import (
	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

// Change lists the keys that differ under one top-level snapshot key.
// Ordering is deterministic: additions and modifications follow the current
// snapshot's iteration order, removals follow the previous snapshot's.
type Change struct {
	Added    []string `json:"added"`
	Modified []string `json:"modified"`
	Removed  []string `json:"removed"`
}

func emptyChange() Change {
	return Change{Added: []string{}, Modified: []string{}, Removed: []string{}}
}

// Count returns the number of changed keys across all three categories.
func (c Change) Count() int {
	return len(c.Added) + len(c.Modified) + len(c.Removed)
}

// Empty reports whether nothing changed under this key.
func (c Change) Empty() bool { return c.Count() == 0 }

// ChangeSet holds one Change per top-level snapshot key.
type ChangeSet struct {
	PRD      Change `json:"prd"`
	PRFAQ    Change `json:"prfaq"`
	Strategy Change `json:"strategy"`
	Tickets  Change `json:"tickets"`
}

// Doc returns the change entry for a document kind.
func (cs *ChangeSet) Doc(kind snapshot.DocKind) Change {
	switch kind {
	case snapshot.KindPRD:
		return cs.PRD
	case snapshot.KindPRFAQ:
		return cs.PRFAQ
	case snapshot.KindStrategy:
		return cs.Strategy
	}
	return emptyChange()
}

// Total returns the change count summed across all four keys.
func (cs *ChangeSet) Total() int {
	return cs.PRD.Count() + cs.PRFAQ.Count() + cs.Strategy.Count() + cs.Tickets.Count()
}

// Empty reports whether the whole set is free of changes.
func (cs *ChangeSet) Empty() bool { return cs.Total() == 0 }

// DocsChanged counts top-level keys with at least one change.
func (cs *ChangeSet) DocsChanged() int {
	n := 0
	for _, c := range []Change{cs.PRD, cs.PRFAQ, cs.Strategy, cs.Tickets} {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// Distribution returns per-key change counts, keyed by snapshot key name.
func (cs *ChangeSet) Distribution() map[string]int {
	return map[string]int{
		"prd":      cs.PRD.Count(),
		"prfaq":    cs.PRFAQ.Count(),
		"strategy": cs.Strategy.Count(),
		"tickets":  cs.Tickets.Count(),
	}
}

// Documents diffs two section maps. A key only in curr is added, a key in
// both with unequal content is modified, a key only in prev is removed.
// Equality is structural, not semantic.
func Documents(prev, curr snapshot.Document) Change {
	out := emptyChange()
	for _, key := range curr.Keys() {
		currVal, _ := curr.Get(key)
		prevVal, ok := prev.Get(key)
		if !ok {
			out.Added = append(out.Added, key)
			continue
		}
		if !prevVal.Equal(currVal) {
			out.Modified = append(out.Modified, key)
		}
	}
	for _, key := range prev.Keys() {
		if !curr.Has(key) {
			out.Removed = append(out.Removed, key)
		}
	}
	return out
}

// Tickets diffs two ticket lists keyed by id. Modification considers only
// the meaningful ticket fields; other differences do not register.
func Tickets(prev, curr []snapshot.Ticket) Change {
	out := emptyChange()
	prevByID := make(map[string]snapshot.Ticket, len(prev))
	for _, t := range prev {
		prevByID[t.ID] = t
	}
	currIDs := make(map[string]struct{}, len(curr))
	for _, t := range curr {
		currIDs[t.ID] = struct{}{}
		old, ok := prevByID[t.ID]
		if !ok {
			out.Added = append(out.Added, t.ID)
			continue
		}
		if t.Differs(old) {
			out.Modified = append(out.Modified, t.ID)
		}
	}
	for _, t := range prev {
		if _, ok := currIDs[t.ID]; !ok {
			out.Removed = append(out.Removed, t.ID)
		}
	}
	return out
}

// Snapshots diffs a full project snapshot against its predecessor. A nil
// prev means no version has ever been stored: every document section counts
// as added, and the tickets entry records the sentinel "all" instead of
// individual ids. That sentinel is long-standing behavior that downstream
// consumers and stored history rely on, so it is kept as is.
func Snapshots(prev, curr *snapshot.ProjectSnapshot) ChangeSet {
	if curr == nil {
		curr = &snapshot.ProjectSnapshot{}
	}
	if prev == nil {
		cs := ChangeSet{
			PRD:      firstSnapshotChange(curr.PRD),
			PRFAQ:    firstSnapshotChange(curr.PRFAQ),
			Strategy: firstSnapshotChange(curr.Strategy),
			Tickets:  Change{Added: []string{"all"}, Modified: []string{}, Removed: []string{}},
		}
		logging.Diff("first snapshot: %d changes", cs.Total())
		return cs
	}
	cs := ChangeSet{
		PRD:      Documents(prev.PRD, curr.PRD),
		PRFAQ:    Documents(prev.PRFAQ, curr.PRFAQ),
		Strategy: Documents(prev.Strategy, curr.Strategy),
		Tickets:  Tickets(prev.Tickets, curr.Tickets),
	}
	logging.DiffDebug("snapshot diff: total=%d distribution=%v", cs.Total(), cs.Distribution())
	return cs
}

func firstSnapshotChange(doc snapshot.Document) Change {
	c := emptyChange()
	c.Added = append(c.Added, doc.Keys()...)
	return c
}

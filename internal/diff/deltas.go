package diff

import (
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"

	"aligntrack/internal/snapshot"
)

// SectionDelta summarizes the line-level churn inside one modified section.
// It is advisory detail for reports and logs; classification only looks at
// the ChangeSet.
type SectionDelta struct {
	Key          string `json:"key"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
}

// engine wraps diffmatchpatch with settings tuned for prose sections and a
// cache for repeated input pairs.
type engine struct {
	dmp   *diffmatchpatch.DiffMatchPatch
	cache sync.Map
}

func newEngine() *engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &engine{dmp: dmp}
}

var defaultEngine = newEngine()

type deltaKey struct {
	oldHash uint64
	newHash uint64
}

// lineCounts returns the number of lines inserted and deleted between two
// texts. A line-level reduction avoids newline boundary artifacts.
func (e *engine) lineCounts(oldText, newText string) (added, removed int) {
	key := deltaKey{fnv1a(oldText), fnv1a(newText)}
	if cached, ok := e.cache.Load(key); ok {
		d := cached.(SectionDelta)
		return d.LinesAdded, d.LinesRemoved
	}

	a, b, lineArray := e.dmp.DiffLinesToChars(oldText, newText)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	e.cache.Store(key, SectionDelta{LinesAdded: added, LinesRemoved: removed})
	return added, removed
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	if s[len(s)-1] != '\n' {
		n++
	}
	return n
}

// SectionDeltas computes line-diff stats for each section the change marked
// as modified. FAQ-valued sections are skipped; the ChangeSet already covers
// them and line counts over serialized entries would be noise.
func SectionDeltas(prev, curr snapshot.Document, change Change) []SectionDelta {
	var out []SectionDelta
	for _, key := range change.Modified {
		oldVal, okOld := prev.Get(key)
		newVal, okNew := curr.Get(key)
		if !okOld || !okNew || oldVal.IsFAQ() || newVal.IsFAQ() {
			continue
		}
		added, removed := defaultEngine.lineCounts(oldVal.Text, newVal.Text)
		if added == 0 && removed == 0 {
			continue
		}
		out = append(out, SectionDelta{Key: key, LinesAdded: added, LinesRemoved: removed})
	}
	return out
}

// SnapshotDeltas collects section deltas for every document kind, keyed by
// snapshot key name. Kinds without deltas are omitted.
func SnapshotDeltas(prev, curr *snapshot.ProjectSnapshot, cs ChangeSet) map[string][]SectionDelta {
	if prev == nil || curr == nil {
		return nil
	}
	out := make(map[string][]SectionDelta)
	for _, kind := range snapshot.DocKinds {
		deltas := SectionDeltas(*prev.Doc(kind), *curr.Doc(kind), cs.Doc(kind))
		if len(deltas) > 0 {
			out[string(kind)] = deltas
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// fnv1a computes a 64-bit FNV-1a hash for cache keys.
func fnv1a(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

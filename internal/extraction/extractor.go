// Package extraction turns raw document text into a structured snapshot
// document. Extraction is heuristic and best-effort: a cascade of heading
// patterns is tried in fixed priority order, and when nothing matches the
// result degrades to a name-only document rather than an error.
package extraction

import (
	"regexp"
	"strings"

	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

const untitledDocument = "Untitled Document"

// maxTitleLen is the longest line that can be promoted to a title.
const maxTitleLen = 100

// Extract parses raw text into a structured document. typeHint ("prd",
// "prfaq", "strategy" or empty) enables a second pass that fills well-known
// sections for that document kind. Extract never fails: with no detectable
// structure the result is just the best-effort title.
func Extract(raw string, typeHint snapshot.DocKind) snapshot.Document {
	var doc snapshot.Document

	title := extractTitle(raw)
	doc.SetText(snapshot.KeyName, title)

	sections := extractSections(raw)
	if len(sections) == 0 {
		sections = extractBullets(raw)
	}
	for _, s := range sections {
		doc.SetText(s.key, s.content)
	}

	if typeHint != "" {
		enrich(&doc, raw, typeHint)
	}

	logging.ExtractionDebug("extracted %d sections (hint=%s, title=%q)", doc.Len()-1, typeHint, title)
	return doc
}

// Title detection strategies, tried in fixed priority order. First match wins.
var (
	h1Pattern         = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)
	titleFieldPattern = regexp.MustCompile(`(?mi)^(?:title|document|project)\s*:\s*(.+?)\s*$`)
	numberedHeading   = regexp.MustCompile(`(?m)^\s*\d+(?:\.\d+)*\.\s+(.+?)\s*$`)
	bareNumberedLine  = regexp.MustCompile(`(?m)^\s*\d+\s+(.+?)\s*$`)
)

type titleStrategy func(string) (string, bool)

var titleStrategies = []titleStrategy{
	titleFromH1,
	titleFromUnderline,
	titleFromField,
	titleFromNumbered,
	titleFromBareNumber,
	titleFromFirstLine,
}

func extractTitle(raw string) string {
	for _, strategy := range titleStrategies {
		if title, ok := strategy(raw); ok {
			return title
		}
	}
	return untitledDocument
}

func titleFromH1(raw string) (string, bool) {
	if m := h1Pattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

func titleFromUnderline(raw string) (string, bool) {
	lines := strings.Split(raw, "\n")
	for i := 0; i+1 < len(lines); i++ {
		text := strings.TrimSpace(lines[i])
		if text == "" {
			continue
		}
		if isUnderline(lines[i+1]) {
			return text, true
		}
		// Only the first non-empty line is a title candidate.
		break
	}
	return "", false
}

func titleFromField(raw string) (string, bool) {
	if m := titleFieldPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

func titleFromNumbered(raw string) (string, bool) {
	if m := numberedHeading.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

func titleFromBareNumber(raw string) (string, bool) {
	if m := bareNumberedLine.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

func titleFromFirstLine(raw string) (string, bool) {
	for _, line := range strings.Split(raw, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		if len(clean) < maxTitleLen {
			return strings.TrimSpace(strings.TrimLeft(clean, "# ")), true
		}
		return "", false
	}
	return "", false
}

// isUnderline reports whether a line is a setext-style underline (=== or ---).
func isUnderline(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 3 {
		return false
	}
	return strings.Count(line, "=") == len(line) || strings.Count(line, "-") == len(line)
}

// Section segmentation.

type section struct {
	key     string
	content string
}

var (
	hashHeading = regexp.MustCompile(`^##+\s*(.+?)\s*$`)
	numHeading  = regexp.MustCompile(`^\s*\d+(?:\.\d+)*\.?\s+(\S.*?)\s*$`)
	boldHeading = regexp.MustCompile(`^\*\*(.+?)\*\*\s*$`)
)

// headingText returns the heading text if line (with optional underline
// successor) looks like a section heading.
func headingText(line, next string) (string, bool) {
	if m := hashHeading.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := numHeading.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := boldHeading.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if strings.TrimSpace(line) != "" && isUnderline(next) {
		return strings.TrimSpace(line), true
	}
	return "", false
}

// extractSections splits raw text at heading-like lines. Each section's
// content runs to the next heading or end of text; sections whose trimmed
// content is empty are dropped. Duplicate normalized keys are last-write-wins.
func extractSections(raw string) []section {
	lines := strings.Split(raw, "\n")

	type mark struct {
		key       string
		bodyStart int
	}
	var marks []mark
	for i := 0; i < len(lines); i++ {
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		heading, ok := headingText(lines[i], next)
		if !ok {
			continue
		}
		bodyStart := i + 1
		if strings.TrimSpace(lines[i]) == heading && isUnderline(next) {
			bodyStart = i + 2 // skip the underline itself
		}
		marks = append(marks, mark{key: NormalizeKey(heading), bodyStart: bodyStart})
	}

	var out []section
	for idx, m := range marks {
		end := len(lines)
		if idx+1 < len(marks) {
			end = marks[idx+1].bodyStart - 1
			// The next mark's heading line sits just before its body.
			if end > 0 && marks[idx+1].bodyStart-2 >= 0 && isUnderline(lines[marks[idx+1].bodyStart-1]) {
				end = marks[idx+1].bodyStart - 2
			}
		}
		if m.bodyStart > end {
			continue
		}
		content := strings.TrimSpace(strings.Join(lines[m.bodyStart:end], "\n"))
		if m.key == "" || content == "" {
			continue
		}
		out = append(out, section{key: m.key, content: content})
	}
	return out
}

var bulletSection = regexp.MustCompile(`(?m)^-\s+\*\*(.+?):?\*\*:?\s*(.*)$`)

// extractBullets handles documents with no headings at all, where lines of
// the form "- **Label:** content" delimit sections.
func extractBullets(raw string) []section {
	matches := bulletSection.FindAllStringSubmatchIndex(raw, -1)
	var out []section
	for i, m := range matches {
		label := raw[m[2]:m[3]]
		start := m[4]
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(raw[start:end])
		key := NormalizeKey(label)
		if key == "" || content == "" {
			continue
		}
		out = append(out, section{key: key, content: content})
	}
	return out
}

var (
	enumPrefix   = regexp.MustCompile(`^\s*\d+(?:\.\d+)*\.?\s*`)
	nonKeyChars  = regexp.MustCompile(`[^a-z0-9_\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// NormalizeKey turns raw heading text into a section key: the enumeration
// prefix is stripped, the rest is lowercased, non-alphanumerics are removed,
// and whitespace runs collapse to single underscores. Deterministic for
// identical input.
func NormalizeKey(heading string) string {
	s := enumPrefix.ReplaceAllString(heading, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonKeyChars.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "_")
	s = underscoreRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

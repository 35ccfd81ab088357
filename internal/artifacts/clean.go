package artifacts

import (
	"regexp"
	"strings"
)

// Markdown noise that must not leak into generated prose.
var (
	codeFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\n?|```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	headerRe     = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	listMarkerRe = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	emphasisRe   = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
)

// CleanMarkdown strips markdown and HTML markup from a string, leaving plain
// prose. Every field value passes through here before extraction or
// templating.
func CleanMarkdown(s string) string {
	s = codeFenceRe.ReplaceAllString(s, "")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headerRe.ReplaceAllString(s, "")
	s = listMarkerRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1$2")
	s = emphasisRe.ReplaceAllString(s, "$1$2")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]`)

// FirstSentence returns the first sentence of s, or "" when s contains no
// sentence terminator.
func FirstSentence(s string) string {
	return strings.TrimSpace(sentenceRe.FindString(s))
}

// Shorten cleans a field value and reduces it to its first sentence when one
// exists, otherwise hard-truncates at budget runes with an ellipsis.
func Shorten(s string, budget int) string {
	s = CleanMarkdown(s)
	if sentence := FirstSentence(s); sentence != "" {
		return sentence
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return strings.TrimSpace(string(runes[:budget])) + "..."
}

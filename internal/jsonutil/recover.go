// Package jsonutil recovers JSON payloads embedded in noisy model output.
// Model responses frequently wrap the requested JSON in prose, markdown
// fences, or trailing commentary; Recover digs the first syntactically valid
// JSON value out of such text.
package jsonutil

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// An array literal that contains at least one object.
	arrayPattern = regexp.MustCompile(`\[[\s\S]*\{[\s\S]*\}[\s\S]*\]`)
	// An object literal with at least one quoted key.
	objectPattern = regexp.MustCompile(`\{\s*"[\s\S]*"\s*:[\s\S]*\}`)
	// A fenced code block, optionally tagged json.
	fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")
)

// Recover extracts the first syntactically valid JSON value from text.
// Candidates are tried in a fixed priority order: the whole text, an array
// literal, an object literal, a fenced code block, and finally a full
// bracket-matching scan. Returns false if nothing parses. Never panics;
// parse failures just advance the cascade.
func Recover(text string) (json.RawMessage, bool) {
	// 1. The whole response is already JSON.
	if raw, ok := tryParse(text); ok {
		return raw, true
	}

	// 2. An array of objects embedded in prose.
	if m := arrayPattern.FindString(text); m != "" {
		if raw, ok := tryParse(m); ok {
			return raw, true
		}
	}

	// 3. An object embedded in prose.
	if m := objectPattern.FindString(text); m != "" {
		if raw, ok := tryParse(m); ok {
			return raw, true
		}
	}

	// 4. A markdown code fence.
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		if raw, ok := tryParse(m[1]); ok {
			return raw, true
		}
	}

	// 5. Exhaustive bracket-matching scan: every { or [ opens a candidate
	// span; the first one that parses wins.
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		end, balanced := matchSpan(text, i)
		if !balanced {
			continue
		}
		if raw, ok := tryParse(text[i:end]); ok {
			return raw, true
		}
	}

	return nil, false
}

// RecoverInto recovers a JSON value from text and unmarshals it into v.
func RecoverInto(text string, v any) bool {
	raw, ok := Recover(text)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func tryParse(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}

// matchSpan scans forward from an opening { or [ at start and returns the
// index one past the matching close. The scan tracks a delimiter stack that
// is string-and-escape aware: a quote toggles in-string state unless
// preceded by an unescaped backslash, and brackets inside strings are
// ignored. A mismatched close or running off the end reports balanced=false.
//
// Iterating bytes is safe for the ASCII delimiters involved because UTF-8
// guarantees ASCII bytes never appear inside a multi-byte sequence.
func matchSpan(s string, start int) (end int, balanced bool) {
	var stack []byte
	var inString, escape bool

	for i := start; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, b)
		case '}', ']':
			if len(stack) == 0 {
				return 0, false
			}
			open := stack[len(stack)-1]
			if (b == '}' && open != '{') || (b == ']' && open != '[') {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}

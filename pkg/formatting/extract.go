// Package formatting provides parsing utilities for model output, most
// notably best-effort recovery of structured JSON from free-form text.
package formatting

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonFenceRegex = regexp.MustCompile(`(?si)` + "```" + `json\s*\n?(.*?)\n?` + "```")

// ExtractJSON recovers a JSON value from free-form model output.
//
// The fallback order is a contract, not an implementation detail; callers
// depend on which candidate wins when multiple exist:
//
//  1. The first fenced code block tagged json; its interior is the candidate.
//  2. Otherwise, the first balanced top-level object or array literal
//     appearing anywhere in the text.
//  3. Otherwise, the entire text.
//
// Once a candidate is chosen, a parse failure is terminal for the call:
// ExtractJSON returns (nil, false) rather than trying later candidates.
// It never returns an error; model output is free-form and an absent
// result is an expected outcome.
func ExtractJSON(text string) (any, bool) {
	candidate, ok := fencedCandidate(text)
	if !ok {
		candidate, ok = balancedCandidate(text)
	}
	if !ok {
		candidate = strings.TrimSpace(text)
	}

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, false
	}
	return value, true
}

func fencedCandidate(text string) (string, bool) {
	matches := jsonFenceRegex.FindStringSubmatch(text)
	if len(matches) < 2 {
		return "", false
	}
	return strings.TrimSpace(matches[1]), true
}

// balancedCandidate scans for the first '{' or '[' and returns the substring
// through its matching close delimiter, tracking string literals and escapes
// so braces inside strings do not affect nesting depth.
func balancedCandidate(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", false
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

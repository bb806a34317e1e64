// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock normalizes an LLM reply down to its JSON payload. LLMs wrap
// JSON in markdown fences and conversational framing even when instructed
// not to: fences are stripped first, then the first balanced JSON object or
// array is extracted so preamble and trailing chatter fall away.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		if extracted := extractJSONObject(text[objIdx:]); extracted != "" {
			return extracted
		}
	case arrIdx >= 0:
		if extracted := extractJSONArray(text[arrIdx:]); extracted != "" {
			return extracted
		}
	}
	return text
}

// extractJSONObject returns the balanced JSON object at the start of text,
// or "" when text does not begin with one. Brace depth is tracked outside
// string literals, with escape handling inside them.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced JSON array at the start of text, or
// "" when text does not begin with one.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case open:
			if !inString {
				depth++
			}
		case closing:
			if !inString {
				depth--
				if depth == 0 {
					return text[:i+1]
				}
			}
		}
	}
	return ""
}

package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reasoningBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)
	// A reasoning block the model never closed swallows the rest of the answer.
	openReasoning = regexp.MustCompile(`(?is)<think>.*$`)
)

// Clean strips reasoning markup and markdown code fences from a model answer.
func Clean(raw string) string {
	cleaned := reasoningBlock.ReplaceAllString(raw, "")
	cleaned = openReasoning.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```JSON")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}

	return strings.TrimSpace(cleaned)
}

// FirstObject returns the first balanced span of s that starts with '{' and is
// valid JSON. Braces inside string literals are ignored while balancing.
func FirstObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start != -1; {
		if end := balancedEnd(s, start); end != -1 {
			candidate := s[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}

		next := strings.IndexByte(s[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}

	return "", false
}

// balancedEnd returns the index of the brace closing the one at start, or -1.
func balancedEnd(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

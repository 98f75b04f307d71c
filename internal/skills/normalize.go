// Package skills turns free-text skill names into comparable tokens.
//
// Matching between a job and a resume is plain token equality, so both sides
// must go through exactly the same Normalize and Canonicalize steps.
package skills

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// canonical maps normalized synonyms to the form used for matching.
// No value may appear as a key, otherwise Canonicalize stops being idempotent.
var canonical = map[string]string{
	"ml":       "machine learning",
	"ai":       "artificial intelligence",
	"react js": "react",
	"reactjs":  "react",
	"node js":  "nodejs",
	"js":       "javascript",
	"py":       "python",
}

// Normalize lowercases and cleans up a raw skill name.
//
// Steps run in a fixed order: lowercase, trim, drop periods and commas,
// hyphens to spaces, collapse whitespace, then repair "c + +" and "c #".
func Normalize(raw string) string {
	s := cases.Lower(language.Und).String(raw)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " + +", "++")
	s = strings.ReplaceAll(s, " #", "#")
	return s
}

// Canonicalize rewrites known synonyms. Unknown tokens are returned as is.
func Canonicalize(token string) string {
	if c, ok := canonical[token]; ok {
		return c
	}
	return token
}

// Token is Canonicalize(Normalize(raw)).
func Token(raw string) string {
	return Canonicalize(Normalize(raw))
}

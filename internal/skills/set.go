package skills

import (
	"encoding/json"
	"sort"
	"strings"
)

// Set is an unordered collection of skill tokens.
// Iteration helpers always return tokens sorted so output is reproducible.
type Set map[string]struct{}

// NewSet builds a set from already normalized tokens.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// FromRaw tokenizes raw skill names, dropping the ones that normalize to "".
func FromRaw(raw []string) Set {
	s := make(Set, len(raw))
	for _, r := range raw {
		if t := Token(r); t != "" {
			s.Add(t)
		}
	}
	return s
}

func (s Set) Add(token string) { s[token] = struct{}{} }

func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

func (s Set) Len() int { return len(s) }

// Intersect returns tokens present in both s and other.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for t := range s {
		if other.Has(t) {
			out.Add(t)
		}
	}
	return out
}

// Difference returns tokens of s missing from other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for t := range s {
		if !other.Has(t) {
			out.Add(t)
		}
	}
	return out
}

// Union returns tokens present in either set.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for t := range s {
		out.Add(t)
	}
	for t := range other {
		out.Add(t)
	}
	return out
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return s.Union(nil)
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (s Set) String() string {
	return "[" + strings.Join(s.Sorted(), ", ") + "]"
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

package skills

import (
	"sort"
	"strings"
)

// Normalize maps raw skill text to its canonical form. Unknown skills come
// back trimmed and lower-cased; blank input yields "" and must be dropped by
// the caller.
func Normalize(raw string) string {
	clean := strings.ToLower(strings.TrimSpace(raw))
	if clean == "" {
		return ""
	}
	if _, ok := canonicalIndex[clean]; ok {
		return clean
	}
	if canonical, ok := keywordIndex[clean]; ok {
		return canonical
	}
	return clean
}

// NormalizeAll normalizes every entry, drops blanks and duplicates and
// returns the result sorted.
func NormalizeAll(raw []string) []string {
	set := make(Set, len(raw))
	for _, r := range raw {
		if n := Normalize(r); n != "" {
			set.Add(n)
		}
	}
	return set.Sorted()
}

// SearchTerms expands a raw query into the canonical name plus every alias
// registered for it.
func SearchTerms(raw string) []string {
	canonical := Normalize(raw)
	if canonical == "" {
		return nil
	}
	terms := Set{}
	terms.Add(canonical)
	for _, kw := range Aliases(canonical) {
		terms.Add(kw)
	}
	return terms.Sorted()
}

// Set is a set of canonical skill names.
type Set map[string]struct{}

func (s Set) Add(name string) {
	s[name] = struct{}{}
}

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union adds every member of other to s.
func (s Set) Union(other Set) {
	for name := range other {
		s[name] = struct{}{}
	}
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

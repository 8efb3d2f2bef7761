package listing

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher checks that every search term occurs in at least one field.
// A nil or empty Matcher matches everything.
type Matcher struct {
	terms []string
	ac    ahocorasick.AhoCorasick
}

func NewMatcher(query string) *Matcher {
	seen := make(map[string]struct{})
	var terms []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil
	}

	// Overlapping iteration needs StandardMatch; it reports a term nested
	// inside a longer one ("ali" in "alibek").
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
	})
	return &Matcher{terms: terms, ac: builder.Build(terms)}
}

func (m *Matcher) Empty() bool {
	return m == nil || len(m.terms) == 0
}

func (m *Matcher) Match(fields ...string) bool {
	if m.Empty() {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, "\n"))

	found := make([]bool, len(m.terms))
	missing := len(m.terms)
	iter := m.ac.IterOverlapping(haystack)
	for match := iter.Next(); match != nil; match = iter.Next() {
		if !found[match.Pattern()] {
			found[match.Pattern()] = true
			missing--
			if missing == 0 {
				return true
			}
		}
	}
	return false
}

// Filter keeps the items whose fields match the query.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	m := NewMatcher(query)
	if m.Empty() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.Match(fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}

package lexicon

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// separatorClass is the set of characters a phrase may be flanked by, in
// addition to the start and end of the query.
const separatorClass = `\s.,!?;:'"()\[\]{}\-/，。、！？：；（）「」《》㐀-䶿一-鿿`

// Match is the verdict of the phrase matcher for one query.
type Match struct {
	// Valid reports whether every non-separator character of the query was
	// consumed by a dictionary phrase.
	Valid bool
	// Leftover is what remained after stripping, for diagnostics.
	Leftover string
}

type phrasePattern struct {
	phrase string
	re     *regexp2.Regexp
}

// Matcher strips known phrases from a query, longest first.
type Matcher struct {
	patterns []phrasePattern
}

// NewMatcher compiles a boundary-aware pattern for every valid phrase of
// dict. Phrases are normalized the same way queries are, so "small_bank" and
// "small bank" collapse to one entry.
func NewMatcher(dict Dictionary) (*Matcher, error) {
	seen := make(map[string]bool, len(dict))
	var phrases []string
	for phrase, ok := range dict {
		if !ok {
			continue
		}
		p := Normalize(phrase)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		phrases = append(phrases, p)
	}

	sort.Slice(phrases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(phrases[i]), utf8.RuneCountInString(phrases[j])
		if li != lj {
			return li > lj
		}
		return phrases[i] < phrases[j]
	})

	m := &Matcher{patterns: make([]phrasePattern, 0, len(phrases))}
	for _, p := range phrases {
		expr := `(?<=^|[` + separatorClass + `])` + regexp2.Escape(p) + `(?=$|[` + separatorClass + `])`
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile phrase %q: %w", p, err)
		}
		m.patterns = append(m.patterns, phrasePattern{phrase: p, re: re})
	}
	return m, nil
}

// Len returns the number of distinct phrases the matcher knows.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Match runs every phrase over normalized, replacing each hit with a single
// space, and reports whether anything other than separators is left.
func (m *Matcher) Match(normalized string) Match {
	rest := normalized
	for _, p := range m.patterns {
		if !strings.Contains(rest, p.phrase) {
			continue
		}
		replaced, err := p.re.Replace(rest, " ", -1, -1)
		if err != nil {
			// Only a match timeout can fail here and none is configured.
			continue
		}
		rest = replaced
	}

	leftover := strings.Map(dropSeparator, rest)
	return Match{Valid: leftover == "", Leftover: leftover}
}

func dropSeparator(r rune) rune {
	if unicode.IsSpace(r) || unicode.IsPunct(r) {
		return -1
	}
	return r
}

// Package dialogue answers queries that no trigger rule claimed: flavor
// responses keyed on keywords, a repeated-keyword easter egg, and noise.
package dialogue

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/tatianab/memory-dive/internal/lexicon"
)

// Rule maps a set of keywords to a flavor response.
type Rule struct {
	Keywords   []string `yaml:"keywords"`
	Response   string   `yaml:"response"`
	Priority   int      `yaml:"priority"`
	FuzzyMatch bool     `yaml:"fuzzy_match,omitempty"`
	IsReveal   bool     `yaml:"is_reveal,omitempty"`
}

// ReplyKind says where a reply came from.
type ReplyKind string

const (
	ReplySentinel ReplyKind = "sentinel"
	ReplyRule     ReplyKind = "rule"
	ReplyStrain   ReplyKind = "strain"
	ReplyNoise    ReplyKind = "noise"
)

// Reply is the dialogue answer to one query.
type Reply struct {
	Kind     ReplyKind
	Response string
	IsReveal bool
}

// StrainAfter is the number of consecutive misses that produce the strain
// line instead of noise.
const StrainAfter = 3

// Session holds the per-conversation miss counter. The host owns its
// lifetime.
type Session struct {
	ConsecutiveMisses int
}

// Config is the authored dialogue table.
type Config struct {
	Rules     []Rule     `yaml:"rules"`
	Sentinels []Sentinel `yaml:"sentinels"`
	Noise     []string   `yaml:"noise"`
	Strain    string     `yaml:"strain"`
}

// Matcher resolves queries against the dialogue table.
type Matcher struct {
	rules     []Rule
	sentinels map[string]Sentinel
	noise     []string
	strain    string
	rng       *rand.Rand
}

// NewMatcher sorts the rules by descending priority, keeping authored order
// between equal priorities. rng drives the noise pick.
func NewMatcher(cfg Config, rng *rand.Rand) *Matcher {
	rules := make([]Rule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = lexicon.Normalize(kw)
		}
		r.Keywords = kws
		rules[i] = r
	}
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority > rules[j].Priority })

	m := &Matcher{
		rules:     rules,
		sentinels: make(map[string]Sentinel, len(cfg.Sentinels)),
		noise:     cfg.Noise,
		strain:    cfg.Strain,
		rng:       rng,
	}
	for _, s := range cfg.Sentinels {
		m.sentinels[s.Query] = s
	}
	return m
}

// Resolve answers a normalized query. Sentinel queries win outright; then the
// highest-priority matching rule; then the strain line on the StrainAfter-th
// consecutive miss; then a random noise line.
func (m *Matcher) Resolve(query string, sess *Session) Reply {
	if s, ok := m.sentinels[query]; ok {
		sess.ConsecutiveMisses = 0
		return Reply{Kind: ReplySentinel, Response: s.Response, IsReveal: true}
	}

	if query != "" {
		for _, r := range m.rules {
			if r.matches(query) {
				sess.ConsecutiveMisses = 0
				return Reply{Kind: ReplyRule, Response: r.Response, IsReveal: r.IsReveal}
			}
		}
	}

	sess.ConsecutiveMisses++
	if sess.ConsecutiveMisses >= StrainAfter {
		sess.ConsecutiveMisses = 0
		return Reply{Kind: ReplyStrain, Response: m.strain}
	}
	return Reply{Kind: ReplyNoise, Response: m.Noise()}
}

// Noise returns a uniformly random noise line.
func (m *Matcher) Noise() string {
	if len(m.noise) == 0 {
		return ""
	}
	return m.noise[m.rng.Intn(len(m.noise))]
}

func (r Rule) matches(query string) bool {
	for _, kw := range r.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(query, kw) {
			return true
		}
		if !r.FuzzyMatch {
			continue
		}
		if strings.Contains(kw, query) || tokensOverlap(kw, query) {
			return true
		}
	}
	return false
}

func tokensOverlap(kw, query string) bool {
	qt := strings.Fields(query)
	for _, k := range strings.Fields(kw) {
		for _, q := range qt {
			if strings.Contains(q, k) || strings.Contains(k, q) {
				return true
			}
		}
	}
	return false
}

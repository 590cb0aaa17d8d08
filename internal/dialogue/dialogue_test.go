package dialogue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/memory-dive/internal/models"
)

var testConfig = Config{
	Rules: []Rule{
		{Keywords: []string{"hello"}, Response: "low", Priority: 1},
		{Keywords: []string{"hello there"}, Response: "high", Priority: 10},
		{Keywords: []string{"snow globe"}, Response: "fuzzy", Priority: 5, FuzzyMatch: true},
		{Keywords: []string{"Red_Coat"}, Response: "coat", Priority: 5, IsReveal: true},
	},
	Sentinels: []Sentinel{{Keyword: "vanessa", Threshold: 3, Query: "__vanessa_x3__", Response: "she was never there"}},
	Noise:     []string{"static", "hiss", "silence"},
	Strain:    "the system strains",
}

func newTestMatcher(seed int64) *Matcher {
	return NewMatcher(testConfig, rand.New(rand.NewSource(seed)))
}

func TestResolvePriority(t *testing.T) {
	m := newTestMatcher(1)
	sess := &Session{}

	assert.Equal(t, Reply{Kind: ReplyRule, Response: "high"}, m.Resolve("hello there", sess))
	assert.Equal(t, Reply{Kind: ReplyRule, Response: "low"}, m.Resolve("hello", sess))
	assert.Equal(t, Reply{Kind: ReplyRule, Response: "coat", IsReveal: true}, m.Resolve("a red coat", sess))
}

func TestResolveFuzzyModes(t *testing.T) {
	m := newTestMatcher(1)
	sess := &Session{}

	// Token-level containment only counts in fuzzy mode.
	assert.Equal(t, "fuzzy", m.Resolve("globes", sess).Response)
	assert.Equal(t, "fuzzy", m.Resolve("snow", sess).Response)
	// Strict rules need the whole keyword inside the query.
	assert.Equal(t, ReplyNoise, m.Resolve("red", sess).Kind)
}

func TestResolveStrainAfterThreeMisses(t *testing.T) {
	m := newTestMatcher(7)
	sess := &Session{}

	r1 := m.Resolve("xyz", sess)
	r2 := m.Resolve("", sess)
	assert.Equal(t, ReplyNoise, r1.Kind)
	assert.Equal(t, ReplyNoise, r2.Kind)
	assert.Contains(t, testConfig.Noise, r1.Response)
	assert.Equal(t, 2, sess.ConsecutiveMisses)

	r3 := m.Resolve("qqq", sess)
	assert.Equal(t, Reply{Kind: ReplyStrain, Response: "the system strains"}, r3)
	assert.Equal(t, 0, sess.ConsecutiveMisses)
}

func TestResolveHitResetsMisses(t *testing.T) {
	m := newTestMatcher(7)
	sess := &Session{}
	m.Resolve("xyz", sess)
	m.Resolve("xyz", sess)
	m.Resolve("hello", sess)
	assert.Equal(t, 0, sess.ConsecutiveMisses)
	assert.Equal(t, ReplyNoise, m.Resolve("xyz", sess).Kind)
}

func TestNoiseIsDeterministicForASeed(t *testing.T) {
	a, b := newTestMatcher(99), newTestMatcher(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Noise(), b.Noise())
	}
	assert.Empty(t, NewMatcher(Config{}, rand.New(rand.NewSource(1))).Noise())
}

func TestTrackerSentinel(t *testing.T) {
	tr := NewTracker(testConfig.Sentinels)

	var state *models.ConsecutiveSearch
	var q string
	state, q = tr.Observe(state, "vanessa")
	require.Empty(t, q)
	assert.Equal(t, &models.ConsecutiveSearch{Keyword: "vanessa", Count: 1}, state)

	state, q = tr.Observe(state, "vanessa")
	require.Empty(t, q)
	assert.Equal(t, 2, state.Count)

	state, q = tr.Observe(state, "vanessa")
	assert.Equal(t, "__vanessa_x3__", q)
	assert.Nil(t, state)

	m := newTestMatcher(1)
	sess := &Session{ConsecutiveMisses: 2}
	assert.Equal(t, Reply{Kind: ReplySentinel, Response: "she was never there", IsReveal: true}, m.Resolve(q, sess))
	assert.Equal(t, 0, sess.ConsecutiveMisses)
}

func TestTrackerResetsOnOtherQuery(t *testing.T) {
	tr := NewTracker(testConfig.Sentinels)

	state, _ := tr.Observe(nil, "vanessa")
	state, _ = tr.Observe(state, "something else")
	assert.Nil(t, state)
	state, q := tr.Observe(state, "vanessa")
	assert.Empty(t, q)
	assert.Equal(t, 1, state.Count)
}

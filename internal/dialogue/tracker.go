package dialogue

import "github.com/tatianab/memory-dive/internal/models"

// Sentinel maps a keyword repeated Threshold times in a row to a synthetic
// query.
type Sentinel struct {
	Keyword   string `yaml:"keyword"`
	Threshold int    `yaml:"threshold"`
	Query     string `yaml:"query"`
	Response  string `yaml:"response"`
}

// Tracker watches for sentinel keywords queried several times in a row.
type Tracker struct {
	sentinels map[string]Sentinel
}

// NewTracker indexes sentinels by keyword.
func NewTracker(sentinels []Sentinel) *Tracker {
	t := &Tracker{sentinels: make(map[string]Sentinel, len(sentinels))}
	for _, s := range sentinels {
		t.sentinels[s.Keyword] = s
	}
	return t
}

// Observe folds the normalized keyword into prev. When the keyword's streak
// reaches its threshold the sentinel query is returned and the streak is
// cleared. Any keyword that is not a sentinel clears the streak.
func (t *Tracker) Observe(prev *models.ConsecutiveSearch, keyword string) (*models.ConsecutiveSearch, string) {
	s, ok := t.sentinels[keyword]
	if !ok {
		return nil, ""
	}

	next := &models.ConsecutiveSearch{Keyword: keyword, Count: 1}
	if prev != nil && prev.Keyword == keyword {
		next.Count = prev.Count + 1
	}
	if next.Count >= s.Threshold {
		return nil, s.Query
	}
	return next, ""
}

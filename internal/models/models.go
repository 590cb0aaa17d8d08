package models

import (
	"slices"
	"time"
)

// HistoryType classifies a history entry.
type HistoryType string

const (
	HistorySearch     HistoryType = "search"
	HistoryInfo       HistoryType = "info"
	HistoryShatter    HistoryType = "shatter"
	HistoryCheckpoint HistoryType = "checkpoint"
	HistorySystem     HistoryType = "system"
)

// HistoryEntry is one line of the append-only history feed.
type HistoryEntry struct {
	Type      HistoryType `yaml:"type"`
	Content   string      `yaml:"content"`
	Timestamp time.Time   `yaml:"timestamp"`
}

// ConsecutiveSearch counts how many times in a row the same keyword was
// queried.
type ConsecutiveSearch struct {
	Keyword string `yaml:"keyword"`
	Count   int    `yaml:"count"`
}

const (
	// MaxStability is the authored ceiling of the stability resource.
	MaxStability = 84
	// StabilityReward is granted the first time a node is unlocked.
	StabilityReward = 20
	// RetraceCost is spent by every successful retrace.
	RetraceCost = 20
)

// GameState is the single authoritative progression state. Collections are
// ordered slices; all but CollectedYears hold unique entries.
type GameState struct {
	UnlockedNodeIDs     []string `yaml:"unlocked_node_ids"`
	UnlockedArchiveIDs  []string `yaml:"unlocked_archive_ids"`
	CollectedClues      []string `yaml:"collected_clues"`
	CollectedDossierIDs []string `yaml:"collected_dossier_ids"`
	// CollectedYears is a multiset: the same year may appear several times.
	CollectedYears       []string `yaml:"collected_years"`
	UnlockedPeople       []string `yaml:"unlocked_people"`
	CollectedAttachments []string `yaml:"collected_attachments"`

	SystemStability  int                `yaml:"system_stability"`
	CurrentStoryNode int                `yaml:"current_story_node"`
	ActiveNodeID     string             `yaml:"active_node_id,omitempty"`
	History          []HistoryEntry     `yaml:"history"`
	Consecutive      *ConsecutiveSearch `yaml:"consecutive_search,omitempty"`
}

// NewGameState returns the state a new dive starts from.
func NewGameState(startNodes ...string) GameState {
	return GameState{
		UnlockedNodeIDs: slices.Clone(startNodes),
		SystemStability: MaxStability,
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s GameState) Clone() GameState {
	out := s
	out.UnlockedNodeIDs = slices.Clone(s.UnlockedNodeIDs)
	out.UnlockedArchiveIDs = slices.Clone(s.UnlockedArchiveIDs)
	out.CollectedClues = slices.Clone(s.CollectedClues)
	out.CollectedDossierIDs = slices.Clone(s.CollectedDossierIDs)
	out.CollectedYears = slices.Clone(s.CollectedYears)
	out.UnlockedPeople = slices.Clone(s.UnlockedPeople)
	out.CollectedAttachments = slices.Clone(s.CollectedAttachments)
	out.History = slices.Clone(s.History)
	if s.Consecutive != nil {
		c := *s.Consecutive
		out.Consecutive = &c
	}
	return out
}

// HasNode reports whether id is unlocked.
func (s GameState) HasNode(id string) bool {
	return slices.Contains(s.UnlockedNodeIDs, id)
}

// HasArchive reports whether id is unlocked.
func (s GameState) HasArchive(id string) bool {
	return slices.Contains(s.UnlockedArchiveIDs, id)
}

// Collected returns the union of every collected keyword: clues, dossier
// entries, years and people.
func (s GameState) Collected() map[string]bool {
	out := make(map[string]bool)
	for _, set := range [][]string{s.CollectedClues, s.CollectedDossierIDs, s.CollectedYears, s.UnlockedPeople} {
		for _, id := range set {
			out[id] = true
		}
	}
	return out
}

// LastHistory returns the most recent n entries, oldest first.
func (s GameState) LastHistory(n int) []HistoryEntry {
	if n >= len(s.History) {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

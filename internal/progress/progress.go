// Package progress holds the state transitions of a dive. Every function
// takes a models.GameState by value and returns a new one; the input is never
// modified.
package progress

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tatianab/memory-dive/internal/models"
)

// CorePeople survive SweepUnusedKeywords.
var CorePeople = []string{"capone", "father", "dr_reggie", "robert", "robert_capone"}

// Append adds one history entry.
func Append(s models.GameState, typ models.HistoryType, content string, at time.Time) models.GameState {
	out := s.Clone()
	out.History = append(out.History, models.HistoryEntry{Type: typ, Content: content, Timestamp: at})
	return out
}

// Cap keeps only the most recent limit history entries. A limit of zero or
// less keeps everything.
func Cap(s models.GameState, limit int) models.GameState {
	if limit <= 0 || len(s.History) <= limit {
		return s
	}
	out := s.Clone()
	out.History = slices.Clone(s.History[len(s.History)-limit:])
	return out
}

// UnlockNode unlocks id and focuses it. Only the first unlock appends a
// discovery line and grants the stability reward; the returned bool reports
// whether this call was that first unlock.
func UnlockNode(s models.GameState, id, title string, at time.Time) (models.GameState, bool) {
	out := s.Clone()
	out.ActiveNodeID = id
	if slices.Contains(out.UnlockedNodeIDs, id) {
		return out, false
	}
	out.UnlockedNodeIDs = append(out.UnlockedNodeIDs, id)
	out.SystemStability = min(out.SystemStability+models.StabilityReward, models.MaxStability)
	out.History = append(out.History, models.HistoryEntry{
		Type:      models.HistoryInfo,
		Content:   DiscoveryLine(title),
		Timestamp: at,
	})
	return out, true
}

// UnlockArchives unlocks every id not yet unlocked and appends a single
// line naming the newly restored records. Archives never touch stability.
func UnlockArchives(s models.GameState, ids, titles []string, at time.Time) (models.GameState, []string) {
	out := s.Clone()
	var added, names []string
	for i, id := range ids {
		if slices.Contains(out.UnlockedArchiveIDs, id) {
			continue
		}
		out.UnlockedArchiveIDs = append(out.UnlockedArchiveIDs, id)
		added = append(added, id)
		names = append(names, titles[i])
	}
	if len(added) > 0 {
		out.History = append(out.History, models.HistoryEntry{
			Type:      models.HistoryInfo,
			Content:   ArchiveLine(names),
			Timestamp: at,
		})
	}
	return out, added
}

// UnlockArchive is UnlockArchives for a single record.
func UnlockArchive(s models.GameState, id, title string, at time.Time) (models.GameState, bool) {
	out, added := UnlockArchives(s, []string{id}, []string{title}, at)
	return out, len(added) == 1
}

// DiscoveryLine is the history text for a newly unlocked node.
func DiscoveryLine(title string) string {
	return "Confirmed index association — " + title
}

// ArchiveLine is the history text for newly restored archive records.
func ArchiveLine(titles []string) string {
	return "Archive record restored — " + strings.Join(titles, " / ")
}

func addUnique(set []string, id string) ([]string, bool) {
	if slices.Contains(set, id) {
		return set, false
	}
	return append(set, id), true
}

// CollectClue adds a clue keyword; duplicates are ignored.
func CollectClue(s models.GameState, id string) (models.GameState, bool) {
	out := s.Clone()
	var ok bool
	out.CollectedClues, ok = addUnique(out.CollectedClues, id)
	return out, ok
}

// CollectPerson adds a person; duplicates are ignored.
func CollectPerson(s models.GameState, id string) (models.GameState, bool) {
	out := s.Clone()
	var ok bool
	out.UnlockedPeople, ok = addUnique(out.UnlockedPeople, id)
	return out, ok
}

// CollectDossier adds a dossier entry; duplicates are ignored.
func CollectDossier(s models.GameState, id string) (models.GameState, bool) {
	out := s.Clone()
	var ok bool
	out.CollectedDossierIDs, ok = addUnique(out.CollectedDossierIDs, id)
	return out, ok
}

// CollectAttachment adds an attachment; duplicates are ignored.
func CollectAttachment(s models.GameState, id string) (models.GameState, bool) {
	out := s.Clone()
	var ok bool
	out.CollectedAttachments, ok = addUnique(out.CollectedAttachments, id)
	return out, ok
}

// CollectYear always appends: each copy of a year can be spent on a
// different evidence combination.
func CollectYear(s models.GameState, id string) models.GameState {
	out := s.Clone()
	out.CollectedYears = append(out.CollectedYears, id)
	return out
}

// AdvanceCheckpoint sets the checkpoint index to n. Callers keep it
// monotonic.
func AdvanceCheckpoint(s models.GameState, n int, at time.Time) models.GameState {
	out := s.Clone()
	out.CurrentStoryNode = n
	out.History = append(out.History, models.HistoryEntry{
		Type:      models.HistoryCheckpoint,
		Content:   fmt.Sprintf("Checkpoint %d reached", n),
		Timestamp: at,
	})
	return out
}

// SweepUnusedKeywords empties the clue and year collections and drops every
// person outside CorePeople.
func SweepUnusedKeywords(s models.GameState) models.GameState {
	out := s.Clone()
	out.CollectedClues = nil
	out.CollectedYears = nil
	var kept []string
	for _, p := range out.UnlockedPeople {
		if slices.Contains(CorePeople, strings.ToLower(p)) {
			kept = append(kept, p)
		}
	}
	out.UnlockedPeople = kept
	return out
}

// Focus moves the UI focus pointer.
func Focus(s models.GameState, id string) models.GameState {
	out := s.Clone()
	out.ActiveNodeID = id
	return out
}

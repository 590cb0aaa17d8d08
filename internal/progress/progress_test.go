package progress

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/memory-dive/internal/models"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestUnlockNodeIsIdempotent(t *testing.T) {
	s := models.NewGameState()
	s.SystemStability = 30

	once, first := UnlockNode(s, "confession_1", "The Small Bank in Maine", now)
	require.True(t, first)
	twice, again := UnlockNode(once, "confession_1", "The Small Bank in Maine", now)
	require.False(t, again)

	assert.Equal(t, once.UnlockedNodeIDs, twice.UnlockedNodeIDs)
	assert.Equal(t, 50, once.SystemStability)
	assert.Equal(t, once.SystemStability, twice.SystemStability)
	assert.Len(t, twice.History, 1)
	assert.Equal(t, "confession_1", twice.ActiveNodeID)
	assert.Equal(t, "Confirmed index association — The Small Bank in Maine", twice.History[0].Content)

	// The input is never modified.
	assert.Empty(t, s.UnlockedNodeIDs)
	assert.Equal(t, 30, s.SystemStability)
}

func TestUnlockNodeCapsStability(t *testing.T) {
	s := models.NewGameState()
	out, _ := UnlockNode(s, "confession_1", "x", now)
	assert.Equal(t, models.MaxStability, out.SystemStability)

	s.SystemStability = 70
	out, _ = UnlockNode(s, "confession_2", "x", now)
	assert.Equal(t, models.MaxStability, out.SystemStability)
}

func TestUnlockArchives(t *testing.T) {
	s := models.NewGameState()
	s.SystemStability = 10

	out, added := UnlockArchives(s, []string{"a1", "a2"}, []string{"One", "Two"}, now)
	assert.Equal(t, []string{"a1", "a2"}, added)
	assert.Equal(t, 10, out.SystemStability)
	require.Len(t, out.History, 1)
	assert.Equal(t, "Archive record restored — One / Two", out.History[0].Content)

	again, added := UnlockArchives(out, []string{"a1"}, []string{"One"}, now)
	assert.Empty(t, added)
	assert.Len(t, again.History, 1)

	single, ok := UnlockArchive(again, "a3", "Three", now)
	assert.True(t, ok)
	assert.Equal(t, []string{"a1", "a2", "a3"}, single.UnlockedArchiveIDs)
}

func TestCollectDedup(t *testing.T) {
	s := models.NewGameState()
	s, ok := CollectClue(s, "ledger")
	require.True(t, ok)
	s, ok = CollectClue(s, "ledger")
	assert.False(t, ok)
	s, _ = CollectPerson(s, "capone")
	s, ok = CollectPerson(s, "capone")
	assert.False(t, ok)
	s, _ = CollectDossier(s, "dossier_capone")
	s, ok = CollectDossier(s, "dossier_capone")
	assert.False(t, ok)
	s, _ = CollectAttachment(s, "photo_lighthouse")
	s, ok = CollectAttachment(s, "photo_lighthouse")
	assert.False(t, ok)

	assert.Equal(t, []string{"ledger"}, s.CollectedClues)
	assert.Equal(t, []string{"capone"}, s.UnlockedPeople)
	assert.Equal(t, []string{"dossier_capone"}, s.CollectedDossierIDs)
	assert.Equal(t, []string{"photo_lighthouse"}, s.CollectedAttachments)
}

func TestYearsAreAMultiset(t *testing.T) {
	combos := []Combo{
		{Year: "year_1973", Person: "capone", Archive: "archive_1973_capone", Title: "Capone, 1973"},
		{Year: "year_1973", Person: "father", Archive: "archive_1973_father", Title: "Father, 1973"},
	}

	s := models.NewGameState()
	s = CollectYear(s, "year_1973")
	s = CollectYear(s, "year_1973")
	s, _ = CollectPerson(s, "capone")
	s, _ = CollectPerson(s, "father")
	require.Equal(t, []string{"year_1973", "year_1973"}, s.CollectedYears)

	s, res := FileEvidence(s, "year_1973", "capone", combos, now)
	require.True(t, res.Success)
	assert.Equal(t, []string{"year_1973"}, s.CollectedYears)

	s, res = FileEvidence(s, "year_1973", "father", combos, now)
	require.True(t, res.Success)
	assert.Empty(t, s.CollectedYears)
	assert.Equal(t, []string{"archive_1973_capone", "archive_1973_father"}, s.UnlockedArchiveIDs)

	_, res = FileEvidence(s, "year_1973", "capone", combos, now)
	assert.Equal(t, ReasonMissingYear, res.Reason)
}

func TestFileEvidenceFailuresLeaveStateAlone(t *testing.T) {
	combos := []Combo{{Year: "year_1973", Person: "capone", Archive: "archive_1973_capone", Title: "t"}}

	s := models.NewGameState()
	s = CollectYear(s, "year_1973")
	s = CollectYear(s, "year_1979")

	_, res := FileEvidence(s, "year_1973", "capone", combos, now)
	assert.Equal(t, ReasonMissingPerson, res.Reason)

	s, _ = CollectPerson(s, "capone")
	out, res := FileEvidence(s, "year_1979", "capone", combos, now)
	assert.Equal(t, ReasonNoCombination, res.Reason)
	assert.Equal(t, s, out)

	s, _ = UnlockArchive(s, "archive_1973_capone", "t", now)
	out, res = FileEvidence(s, "year_1973", "capone", combos, now)
	assert.Equal(t, ReasonAlreadyFiled, res.Reason)
	assert.Equal(t, []string{"year_1973", "year_1979"}, out.CollectedYears)
}

func TestAdvanceCheckpoint(t *testing.T) {
	s := AdvanceCheckpoint(models.NewGameState(), 3, now)
	assert.Equal(t, 3, s.CurrentStoryNode)
	require.Len(t, s.History, 1)
	assert.Equal(t, models.HistoryCheckpoint, s.History[0].Type)

	// The caller owns monotonicity.
	s = AdvanceCheckpoint(s, 1, now)
	assert.Equal(t, 1, s.CurrentStoryNode)
}

func TestSweepUnusedKeywords(t *testing.T) {
	s := models.NewGameState()
	s.CollectedClues = []string{"ledger", "tape"}
	s.CollectedYears = []string{"year_1973", "year_1973"}
	s.CollectedDossierIDs = []string{"dossier_capone"}
	s.UnlockedPeople = []string{"Capone", "vanessa", "father", "little_derek", "DR_REGGIE", "robert_capone"}

	out := SweepUnusedKeywords(s)
	assert.Empty(t, out.CollectedClues)
	assert.Empty(t, out.CollectedYears)
	assert.Equal(t, []string{"Capone", "father", "DR_REGGIE", "robert_capone"}, out.UnlockedPeople)
	assert.Equal(t, []string{"dossier_capone"}, out.CollectedDossierIDs)
	assert.Len(t, s.CollectedClues, 2)
}

func TestCap(t *testing.T) {
	s := models.NewGameState()
	for i := 0; i < 5; i++ {
		s = Append(s, models.HistorySearch, fmt.Sprint(i), now)
	}
	assert.Len(t, Cap(s, 0).History, 5)
	capped := Cap(s, 2)
	require.Len(t, capped.History, 2)
	assert.Equal(t, "3", capped.History[0].Content)
	assert.Equal(t, "4", capped.History[1].Content)
}

func TestFocus(t *testing.T) {
	s := Focus(models.NewGameState(), "confession_2")
	assert.Equal(t, "confession_2", s.ActiveNodeID)
}

func revealedFrom(table map[string][]string) func(string) []string {
	return func(id string) []string { return table[id] }
}

func TestRetrace(t *testing.T) {
	revealed := revealedFrom(map[string][]string{
		"confession_0": {"maine", "small_bank", "year_1973"},
		"confession_1": {"capone", "small_bank", "ledger"},
		"confession_9": {"never"},
	})

	s := models.NewGameState("confession_0", "confession_1")
	s, _ = CollectClue(s, "maine")
	s, _ = CollectPerson(s, "capone")

	out, res := Retrace(s, revealed)
	require.True(t, res.Success)
	assert.Equal(t, []string{"small_bank", "year_1973", "ledger"}, res.Keywords)
	assert.Equal(t, models.MaxStability-models.RetraceCost, out.SystemStability)
	assert.Equal(t, models.MaxStability, s.SystemStability)
}

func TestRetraceExhaustion(t *testing.T) {
	s := models.NewGameState("confession_0")
	s.SystemStability = 15
	revealed := revealedFrom(nil)

	s, res := Retrace(s, revealed)
	require.True(t, res.Success)
	assert.Equal(t, 0, s.SystemStability)

	out, res := Retrace(s, revealed)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonStabilityCritical, res.Reason)
	assert.Equal(t, s, out)
}

func TestStabilityStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := models.NewGameState()
	revealed := revealedFrom(nil)

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			s, _ = UnlockNode(s, fmt.Sprintf("n%d", rng.Intn(40)), "t", now)
		} else {
			s, _ = Retrace(s, revealed)
		}
		require.GreaterOrEqual(t, s.SystemStability, 0, "step %d", i)
		require.LessOrEqual(t, s.SystemStability, models.MaxStability, "step %d", i)
	}
}

package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneSharesNothing(t *testing.T) {
	s := NewGameState("confession_0")
	s.CollectedYears = []string{"year_1973"}
	s.Consecutive = &ConsecutiveSearch{Keyword: "vanessa", Count: 2}

	c := s.Clone()
	c.UnlockedNodeIDs[0] = "changed"
	c.CollectedYears = append(c.CollectedYears, "year_1973")
	c.Consecutive.Count = 3

	assert.Equal(t, []string{"confession_0"}, s.UnlockedNodeIDs)
	assert.Equal(t, []string{"year_1973"}, s.CollectedYears)
	assert.Equal(t, 2, s.Consecutive.Count)
	assert.Equal(t, MaxStability, s.SystemStability)
}

func TestCollectedUnion(t *testing.T) {
	s := GameState{
		CollectedClues:      []string{"ledger"},
		CollectedDossierIDs: []string{"dossier_capone"},
		CollectedYears:      []string{"year_1973", "year_1973"},
		UnlockedPeople:      []string{"capone"},
	}
	got := s.Collected()
	assert.Len(t, got, 4)
	assert.True(t, got["year_1973"])
	assert.False(t, got["tape"])
}

func TestLastHistory(t *testing.T) {
	s := GameState{History: []HistoryEntry{{Content: "a"}, {Content: "b"}, {Content: "c"}}}
	assert.Equal(t, []HistoryEntry{{Content: "b"}, {Content: "c"}}, s.LastHistory(2))
	assert.Len(t, s.LastHistory(10), 3)
}

func TestTranscriptFiles(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	state := NewGameState("confession_0", "confession_1")
	state.History = []HistoryEntry{
		{Type: HistorySearch, Content: "缅因州 小银行", Timestamp: ts},
		{Type: HistoryInfo, Content: "Confirmed index association — The Small Bank in Maine", Timestamp: ts},
	}

	path, err := WriteTranscript(dir, Transcript{Name: "run-1", Seed: 7, Final: state, History: state.History})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run-1", "transcript.yaml"), path)

	got, err := ReadTranscript(dir, "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Seed)
	assert.Equal(t, state.UnlockedNodeIDs, got.Final.UnlockedNodeIDs)
	require.Len(t, got.History, 2)
	assert.Equal(t, HistoryInfo, got.History[1].Type)
	assert.True(t, ts.Equal(got.History[0].Timestamp))

	names, err := ListTranscripts(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1"}, names)

	names, err = ListTranscripts(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("seed: 3\nsteps:\n  - query: maine small_bank\n  - command: /retrace\n"), 0644))
	s, err := ReadScript(good)
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.Seed)
	assert.Equal(t, []Step{{Query: "maine small_bank"}, {Command: "/retrace"}}, s.Steps)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("steps:\n  - query: maine\n    command: /sweep\n"), 0644))
	_, err = ReadScript(bad)
	assert.ErrorContains(t, err, "step 0 needs exactly one of query or command")
}

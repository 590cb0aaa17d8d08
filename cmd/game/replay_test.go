package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tatianab/memory-dive/internal/config"
	"github.com/tatianab/memory-dive/internal/models"
)

func TestReplayWalkthrough(t *testing.T) {
	cfg := &config.Config{TranscriptDir: t.TempDir()}
	var out bytes.Buffer

	path, err := replay(context.Background(), "testdata/walkthrough.yaml", "walk", cfg, zap.NewNop(), &out)
	require.NoError(t, err)
	assert.FileExists(t, path)

	got, err := models.ReadTranscript(cfg.TranscriptDir, "walk")
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.Seed)
	assert.Equal(t, []string{"confession_0", "confession_1", "confession_2"}, got.Final.UnlockedNodeIDs)
	assert.Equal(t, []string{"archive_1973_capone"}, got.Final.UnlockedArchiveIDs)
	assert.Equal(t, 1, got.Final.CurrentStoryNode)
	assert.Equal(t, []string{"capone"}, got.Final.UnlockedPeople)
	assert.Equal(t, models.MaxStability-models.RetraceCost, got.Final.SystemStability)

	text := out.String()
	assert.Contains(t, text, "[reveal] Confirmed index association — The Small Bank in Maine")
	assert.Contains(t, text, "[rejected]")
	assert.Contains(t, text, "Vanessa was never in the house")
}

func TestReplayMissingScript(t *testing.T) {
	cfg := &config.Config{TranscriptDir: t.TempDir()}
	_, err := replay(context.Background(), "testdata/nope.yaml", "x", cfg, zap.NewNop(), &bytes.Buffer{})
	assert.Error(t, err)
}

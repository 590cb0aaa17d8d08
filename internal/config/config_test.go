package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetenv(t, "GEMINI_API_KEY", "MEMORYDIVE_MODEL", "MEMORYDIVE_SEED", "MEMORYDIVE_TRANSCRIPT_DIR", "MEMORYDIVE_HISTORY_LIMIT")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, ".transcripts", cfg.TranscriptDir)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.False(t, cfg.OracleEnabled())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("MEMORYDIVE_SEED", "42")
	t.Setenv("MEMORYDIVE_HISTORY_LIMIT", "100")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.OracleEnabled())
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.HistoryLimit)
}

func TestLoadConfigDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MEMORYDIVE_MODEL=gemini-test\n"), 0644))
	unsetenv(t, "MEMORYDIVE_MODEL")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", cfg.Model)
}

func TestLoadConfigRejectsNegativeLimit(t *testing.T) {
	t.Setenv("MEMORYDIVE_HISTORY_LIMIT", "-1")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "must not be negative")
}

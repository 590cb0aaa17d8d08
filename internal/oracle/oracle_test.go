package oracle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p, err := BuildPrompt("xyz", []string{"Static.", "检索无结果。"})
	require.NoError(t, err)
	assert.Contains(t, p, "Search: xyz")
	assert.Contains(t, p, "- Static.")
	assert.Contains(t, p, "- 检索无结果。")
}

func TestCleanLine(t *testing.T) {
	got, err := CleanLine("  \"The index hums.\"\nsecond line")
	require.NoError(t, err)
	assert.Equal(t, "The index hums.", got)

	got, err = CleanLine("```\n信号丢失\n```")
	require.NoError(t, err)
	assert.Equal(t, "信号丢失", got)

	_, err = CleanLine("   ")
	assert.Error(t, err)

	_, err = CleanLine(strings.Repeat("x", maxLineLen+1))
	assert.ErrorContains(t, err, "too long")
}

package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.utf8")

	h := NewHistory(path)
	require.NoError(t, h.Load())
	assert.Zero(t, h.Len())

	require.NoError(t, h.Add("width * 2", modeEval))
	require.NoError(t, h.Add("list", modeCtrl))
	require.NoError(t, h.Add("  ", modeEval))
	require.NoError(t, h.Add("list", modeCtrl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "E:width * 2\nC:list\n", string(data))

	reloaded := NewHistory(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, h.Entries(), reloaded.Entries())
}

func TestHistory_MovesDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.utf8")

	h := NewHistory(path)
	require.NoError(t, h.Add("a", modeEval))
	require.NoError(t, h.Add("b", modeEval))
	require.NoError(t, h.Add("a", modeCtrl))
	require.NoError(t, h.Add("a", modeEval))

	assert.Equal(t, []HistoryEntry{
		{Line: "b", Mode: modeEval},
		{Line: "a", Mode: modeCtrl},
		{Line: "a", Mode: modeEval},
	}, h.Entries())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "E:b\nC:a\nE:a\n", string(data))
}

func TestHistory_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.utf8")
	require.NoError(t, os.WriteFile(path, []byte("E:x + 1\n\nC:order\nlegacy\n"), 0o600))

	h := NewHistory(path)
	require.NoError(t, h.Load())

	assert.Equal(t, []HistoryEntry{
		{Line: "x + 1", Mode: modeEval},
		{Line: "order", Mode: modeCtrl},
		{Line: "legacy", Mode: modeEval},
	}, h.Entries())

	_, err := h.Entry(3)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")
	require.NoError(t, h.Load())
	require.NoError(t, h.Add("a", modeEval))

	e, err := h.Entry(0)
	require.NoError(t, err)
	assert.Equal(t, HistoryEntry{Line: "a", Mode: modeEval}, e)
}

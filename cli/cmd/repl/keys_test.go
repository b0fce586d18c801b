package repl

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/log"
)

func typeRunes(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func TestModel_CompleteAndExecute(t *testing.T) {
	ctx := context.Background()
	m := newModel(ctx, testSession(t), NewHistory(""), log.Make(io.Discard))

	m = typeRunes(m, "wid")
	require.Len(t, m.matches, 1)
	assert.Equal(t, "width", m.matches[0].Str)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "width", m.input.Value())
	assert.Empty(t, m.matches)

	e, arg, ok := m.declarationAtCursor()
	require.True(t, ok)
	assert.Equal(t, "width", e.Name)
	assert.Equal(t, -1, arg)

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 1, m.history.Len())
}

func TestModel_TabCycle(t *testing.T) {
	ctx := context.Background()
	m := newModel(ctx, testSession(t), NewHistory(""), log.Make(io.Discard))

	m = typeRunes(m, "h")
	require.Len(t, m.matches, 2, "height and width")

	first := m.matches[0].Str

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.tabActive)
	assert.Equal(t, first, m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, m.matches[1].Str, m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.tabActive)
	assert.Equal(t, "h", m.input.Value())
	assert.Equal(t, modeEval, m.mode)
}

func TestModel_ModesAndHistory(t *testing.T) {
	ctx := context.Background()
	h := NewHistory("")
	require.NoError(t, h.Add("width + 1", modeEval))
	require.NoError(t, h.Add("order", modeCtrl))

	m := newModel(ctx, testSession(t), h, log.Make(io.Discard))

	m = typeRunes(m, "draft")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeCtrl, m.mode)
	assert.Empty(t, m.input.Value())

	m = typeRunes(m, "li")
	require.NotEmpty(t, m.matches)
	assert.Equal(t, "list", m.matches[0].Str)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeEval, m.mode)
	assert.Equal(t, "draft", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, modeCtrl, m.mode, "mode follows the entry")
	assert.Equal(t, "order", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyShiftUp})
	assert.Equal(t, "order", m.input.Value(), "no older command entry")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, modeEval, m.mode)
	assert.Equal(t, "width + 1", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, h.Len(), m.historyIdx)
	assert.Empty(t, m.input.Value())
}

func TestModel_Commands(t *testing.T) {
	ctx := context.Background()
	m := newModel(ctx, testSession(t), NewHistory(""), log.Make(io.Discard))

	assert.Contains(t, m.listDeclarations(), "scale")
	assert.Contains(t, m.orderDeclarations(), "height")

	require.NoError(t, m.session.load(ctx, nil))
	assert.Contains(t, m.listDeclarations(), ErrNoDocument.Error())

	m, cmd := m.executeCommand("bogus")
	assert.NotNil(t, cmd)
	assert.False(t, m.quitting)

	m, _ = m.executeCommand("quit")
	assert.True(t, m.quitting)
}

func TestModel_HelpCommand(t *testing.T) {
	m := newModel(context.Background(), testSession(t), NewHistory(""), log.Make(io.Discard))

	m, cmd := m.executeCommand("help")
	assert.NotNil(t, cmd)
	assert.False(t, m.quitting)

	assert.False(t, strings.HasSuffix(helpMessage, "\n"), "Println adds the newline")
	assert.Contains(t, helpMessage, "edit")
}

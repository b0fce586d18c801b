package repl

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil

	case tea.KeyRunes:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected completion by step, wrapping at either end. A
// single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n
	case step < 0:
		m.tabActive = true
		m.preTabText, m.preTabCursor = m.input.Value(), m.input.Position()
		m.suggIdx = n - 1
	default:
		m.tabActive = true
		m.preTabText, m.preTabCursor = m.input.Value(), m.input.Position()
		m.suggIdx = 0
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word with replacement and moves
// the cursor to its end.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes completions for the current input. With
// autoConfirm, a typed word equal to the sole candidate is accepted.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// historyStep moves through history by dir. When sameMode is set, entries
// of the other mode are skipped; otherwise the mode follows the entry.
// Stepping past the newest entry clears the input.
func (m model) historyStep(dir int, sameMode bool) model {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to mode, saving the input of the current mode and
// restoring the saved input of the new one.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not write history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	r := m.session.inspect(m.ctxFunc(), input)

	m.logger.TraceContext(m.ctxFunc(), "repl inspect",
		slog.String("input", input),
		slog.Int("deps", len(r.deps)),
		slog.Int("diagnostics", len(r.diags)),
		slog.Bool("evaluated", r.evaluated))

	return m, tea.Sequence(
		tea.Println(promptStyle.Render(evalPrompt)+inputStyle.Render(input)),
		tea.Println(formatReport(r)),
	)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]))

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listDeclarations()))

	case "o", "order":
		return m, tea.Sequence(echo, tea.Println(m.orderDeclarations()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		if m.path != "" {
			m.editing = true
		}

		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"))
	}
}

func (m model) listDeclarations() string {
	if m.session.graph == nil {
		return errorStyle.Render(ErrNoDocument.Error())
	}

	var b strings.Builder

	for _, e := range m.session.graph.Entries() {
		fmt.Fprintf(&b, "  %s %s\n", e.Name, hintStyle.Render(formatPreview(e)))
	}

	return b.String()
}

func (m model) orderDeclarations() string {
	if m.session.graph == nil {
		return errorStyle.Render(ErrNoDocument.Error())
	}

	var b strings.Builder

	for i, e := range m.session.graph.Order(m.ctxFunc()) {
		value, ok := m.session.env[e.Name]

		fmt.Fprintf(&b, "  %3d. %s", i+1, e.Name)

		if ok {
			b.WriteString(resultStyle.Render(" = " + formatResult(value)))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m model) edit() tea.Cmd {
	if m.path == "" {
		return tea.Println(errorStyle.Render(ErrNoDocument.Error()))
	}

	cmd := &editFlowCommand{
		path:    m.path,
		load:    m.load,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return loadErrorMsg{err: err}
		}

		return loadedMsg{graph: cmd.graph}
	})
}

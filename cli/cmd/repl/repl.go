package repl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help     Print this help
  list     List the declarations of the flow document
  order    Print the declarations in dependency order
  edit     Edit the flow document in $EDITOR and reload it
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type an expression to see its canonical form, its dependencies,
  and its value when every dependency is a declaration that evaluated
  Declaration names complete automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between expression and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit`

// inputMode is the interpretation of the input line.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// prefix marks entries of mode in the history file.
func (mode inputMode) prefix() string {
	if mode == modeCtrl {
		return "C:"
	}

	return "E:"
}

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Messages delivered when the flow document is edited or reloaded.
type (
	loadedMsg       struct{ graph *flow.Graph }
	editDeclinedMsg struct{}
	loadErrorMsg    struct{ err error }
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	path         string
	load         Loader
	watcher      *watcher
	editing      bool
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // ranked completions of the current word
	candidates   []string
	wordStart    int
	wordEnd      int
	suggIdx      int
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL. When path is not empty the flow document at path is
// loaded with load and its declarations are available for completion,
// dependency resolution and evaluation. With watch, the document is
// reloaded whenever it changes on disk. Input history is kept in the file
// at historyPath; an empty historyPath keeps it in memory.
func Run(
	ctx context.Context,
	path string,
	load Loader,
	watch bool,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("path", path),
		slog.String("history", historyPath))

	var g *flow.Graph

	if path != "" {
		if g, err = load(ctx, path); err != nil {
			return err
		}
	}

	s, err := newSession(ctx, g, logger)
	if err != nil {
		return err
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err))
	}

	m := newModel(ctx, s, history, logger)
	m.path, m.load = path, load

	if watch && path != "" {
		w, err := newWatcher(path)
		if err != nil {
			logger.WarnContext(ctx, "could not watch flow document",
				slog.String("path", path),
				slog.Any("error", err))
		} else {
			defer w.Close()

			m.watcher = w
		}
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	s *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watcher.wait())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case loadedMsg:
		m.editing = false

		if err := m.session.load(m.ctxFunc(), msg.graph); err != nil {
			return m, tea.Println(errorStyle.Render("error: " + err.Error()))
		}

		return m, tea.Println(resultStyle.Render(fmt.Sprintf(
			"reloaded %d declarations", len(msg.graph.Entries()))))

	case editDeclinedMsg:
		m.editing = false

		return m, tea.Println(hintStyle.Render("edit abandoned; keeping the previous document"))

	case loadErrorMsg:
		m.editing = false

		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))

	case fileChangedMsg:
		if m.editing {
			return m, m.watcher.wait()
		}

		return m, tea.Batch(m.reload(), m.watcher.wait())

	case watchErrorMsg:
		m.logger.WarnContext(m.ctxFunc(), "watch flow document", slog.Any("error", msg.err))

		return m, m.watcher.wait()
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine returns the line rendered below the input.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
	}

	if m.mode == modeEval && !m.tabActive {
		if e, arg, ok := m.declarationAtCursor(); ok {
			return renderSignatureHint(e, arg)
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width, m.isFunction)
}

// declarationAtCursor returns the declaration whose name is the word at the
// cursor, or the function whose argument list contains the cursor.
func (m model) declarationAtCursor() (*flow.Entry, int, bool) {
	input, cursor := m.input.Value(), m.input.Position()

	if word, start, _ := wordBounds(input, cursor); word != "" && !isMember(input, start) {
		if e, ok := m.session.entry(word); ok {
			return e, -1, true
		}
	}

	for _, name := range m.session.names() {
		e, _ := m.session.entry(name)
		if e.Type != flow.TypeFunction {
			continue
		}

		if arg := argumentIndex(input, cursor, name); arg >= 0 {
			return e, arg, true
		}
	}

	return nil, -1, false
}

// reload returns a command that loads the flow document again. A document
// that fails to load leaves the current one in place.
func (m model) reload() tea.Cmd {
	ctx, path, load := m.ctxFunc(), m.path, m.load

	return func() tea.Msg {
		g, err := load(ctx, path)
		if err != nil {
			return loadErrorMsg{err: err}
		}

		return loadedMsg{graph: g}
	}
}

func (m model) isFunction(name string) bool {
	e, ok := m.session.entry(name)

	return ok && e.Type == flow.TypeFunction
}

// formatReport renders the inspection of one expression.
func formatReport(r report) string {
	var lines []string

	if r.rendering != "" {
		lines = append(lines, hintStyle.Render("≡ ")+r.rendering)
	}

	for _, d := range r.diags {
		lines = append(lines, errorStyle.Render(d.Error()))
	}

	if len(r.deps) > 0 {
		parts := make([]string, len(r.deps))

		for i, name := range r.deps {
			if slices.Contains(r.unresolved, name) {
				parts[i] = errorStyle.Render(name + "?")
			} else {
				parts[i] = suggestionStyle.Render(name)
			}
		}

		lines = append(lines, hintStyle.Render("deps: ")+strings.Join(parts, " "))
	}

	switch {
	case r.evaluated:
		lines = append(lines, resultStyle.Render("= "+formatResult(r.value)))
	case r.evalErr != nil:
		lines = append(lines, hintStyle.Render("not evaluated: "+r.evalErr.Error()))
	}

	return strings.Join(lines, "\n")
}

func formatResult(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

package repl

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/flowc/flow"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "order", "edit", "clear", "quit"}

// isWordBoundary returns true if the rune delimits identifiers of the
// expression language.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', ';',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!', ',':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// isMember reports whether the word starting at wordStart follows a dot.
// Members of declarations are unknown, so they are never completed.
func isMember(input string, wordStart int) bool {
	return strings.HasSuffix(strings.TrimRight(input[:wordStart], " \t"), ".")
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best first, along with the word boundaries.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		if isMember(input, wordStart) {
			return nil, nil, wordStart, wordEnd
		}

		candidates = m.session.names()
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	isFunction func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx, isFunction(match.Str))

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Functions are shown with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected, function bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if function {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

// formatPreview summarizes a declaration for the list command.
func formatPreview(e *flow.Entry) string {
	var sb strings.Builder

	sb.WriteString(e.Type)

	if len(e.Arguments) > 0 {
		sb.WriteString(" (" + strings.Join(e.Arguments, ", ") + ")")
	}

	switch len(e.Sources) {
	case 0:
	case 1:
		sb.WriteString(" = " + ellipsize(e.Sources[0], 40)) //nolint:mnd
	default:
		sb.WriteString(fmt.Sprintf(" = { %d sources }", len(e.Sources)))
	}

	return sb.String()
}

func ellipsize(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	return string([]rune(s)[:limit-3]) + "..."
}

package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/flowc/flow"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// argumentIndex returns the index of the argument the cursor is in when the
// word immediately before an unclosed '(' left of the cursor is name. It
// returns -1 otherwise.
func argumentIndex(input string, cursor int, name string) int {
	if cursor > len(input) {
		cursor = len(input)
	}

	depth, commas := 0, 0

	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case ',':
			if depth == 0 {
				commas++
			}
		case '(':
			if depth > 0 {
				depth--

				continue
			}

			word, _, _ := wordBounds(input, strings.LastIndexFunc(input[:i], func(r rune) bool {
				return r != ' ' && r != '\t'
			})+1)
			if word == name {
				return commas
			}

			return -1
		}
	}

	return -1
}

// renderSignatureHint describes the declaration e on the hint line. When e
// is a function and arg is non-negative, the argument at index arg is
// highlighted.
func renderSignatureHint(e *flow.Entry, arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(e.Name))

	if e.Type == flow.TypeFunction || len(e.Arguments) > 0 {
		b.WriteString(signatureStyle.Render("("))

		for i, param := range e.Arguments {
			if i > 0 {
				b.WriteString(signatureStyle.Render(", "))
			}

			if i == arg {
				b.WriteString(currentParamStyle.Render(param))
			} else {
				b.WriteString(signatureStyle.Render(param))
			}
		}

		b.WriteString(signatureStyle.Render(")"))
	}

	b.WriteString(signatureStyle.Render(" : " + e.Type))

	if len(e.Sources) > 0 {
		b.WriteString(signatureStyle.Render(" = " + ellipsize(strings.Join(e.Sources, "; "), 48))) //nolint:mnd
	}

	return b.String()
}

// Package token defines the lexical tokens consumed by the expression parser.
package token

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"strconv"
	"strings"
)

// Kind identifies the lexical class of a token.
//
// The numbering is stable: diagnostic codes below [NumKinds] are the Kind of
// the token the parser expected.
type Kind int

const (
	EOF     Kind = iota // EOF
	Ident               // ident
	Int                 // int
	Float               // float
	Char                // char
	String              // string
	Less                // <
	Greater             // >
	Comma               // ,
	Dot                 // .
	LParen              // (
	RParen              // )
	Plus                // +
	Minus               // -
	Star                // *
	Slash               // /
	Percent             // %
	Equal               // ==
	NotEqual            // !=
	Invalid             // invalid
)

// NumKinds is the number of defined token kinds.
const NumKinds = int(Invalid) + 1

// IsPunct reports whether k is a fixed punctuation or operator symbol.
func (k Kind) IsPunct() bool { return k >= Less && k <= NotEqual }

// Quote returns the name of k as it appears in diagnostics. Symbols are
// quoted so that `"<" expected` cannot be misread.
func (k Kind) Quote() string {
	if k.IsPunct() {
		return strconv.Quote(k.String())
	}

	return k.String()
}

// Lookup returns the Kind of the fixed symbol s.
func Lookup(s string) (Kind, bool) {
	k, ok := symbols[s]

	return k, ok
}

var symbols = func() map[string]Kind {
	m := make(map[string]Kind, NotEqual-Less+1)
	for k := Less; k <= NotEqual; k++ {
		m[k.String()] = k
	}

	return m
}()

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + " col " + strconv.Itoa(p.Column)
}

// Token is a single lexeme.
type Token struct {
	Text   string
	Kind   Kind
	Line   int
	Column int
}

// New returns a token of kind k with text s and no position.
// Fixed symbols may omit s.
func New(k Kind, s string) Token {
	if s == "" && k.IsPunct() {
		s = k.String()
	}

	return Token{Kind: k, Text: s}
}

// Pos returns the position of t.
func (t Token) Pos() Position { return Position{Line: t.Line, Column: t.Column} }

func (t Token) String() string {
	var sb strings.Builder

	sb.WriteString(t.Kind.String())

	if t.Kind != EOF && t.Text != t.Kind.String() {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(t.Text))
	}

	return sb.String()
}

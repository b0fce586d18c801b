// Package lexer converts expression source text into a [token.Stream].
package lexer

import (
	"log/slog"

	plex "github.com/alecthomas/participle/v2/lexer"

	"github.com/ardnew/flowc/lang/token"
	"github.com/ardnew/flowc/log"
)

// Rules is the lexical grammar. Order matters: the first matching rule wins.
var Rules = plex.MustSimple([]plex.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Float", Pattern: `\d+\.\d*([eE][-+]?\d+)?|\.\d+([eE][-+]?\d+)?|\d+[eE][-+]?\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])'`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[_a-zA-Z]\w*`},
	{Name: "Punct", Pattern: `==|!=|[<>,.()+\-*/%]`},
	{Name: "Invalid", Pattern: `.`},
})

var kindOf = func() map[plex.TokenType]token.Kind {
	sym := Rules.Symbols()

	return map[plex.TokenType]token.Kind{
		sym["Float"]:   token.Float,
		sym["Int"]:     token.Int,
		sym["Char"]:    token.Char,
		sym["String"]:  token.String,
		sym["Ident"]:   token.Ident,
		sym["Invalid"]: token.Invalid,
	}
}()

var (
	whitespace = Rules.Symbols()["Whitespace"]
	punct      = Rules.Symbols()["Punct"]
)

// Option configures a [Lexer].
type Option func(*Lexer)

// WithLogger sets the logger used to trace emitted tokens.
func WithLogger(logger log.Logger) Option {
	return func(l *Lexer) { l.logger = logger }
}

// WithFilename sets the file name attached to lexing failures.
func WithFilename(name string) Option {
	return func(l *Lexer) { l.filename = name }
}

// Lexer is a [token.Stream] over source text.
type Lexer struct {
	src      plex.Lexer
	logger   log.Logger
	filename string
	eof      token.Token
	done     bool
}

// New returns a token stream over source.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{
		eof: token.Token{Kind: token.EOF, Line: 1, Column: 1},
	}

	for _, opt := range opts {
		opt(l)
	}

	src, err := Rules.LexString(l.filename, source)
	if err != nil {
		l.done = true
		l.logger.Debug("lexer init failed", slog.Any("error", err))
	}

	l.src = src

	return l
}

// Next implements [token.Stream].
func (l *Lexer) Next() token.Token {
	for !l.done {
		pt, err := l.src.Next()
		if err != nil {
			// A lexing failure yields one Invalid token, then EOF.
			l.done = true
			t := token.Token{
				Kind:   token.Invalid,
				Line:   l.eof.Line,
				Column: l.eof.Column,
			}

			l.logger.Debug("lexing failed",
				slog.String("file", l.filename),
				slog.Any("error", err))

			return t
		}

		if pt.EOF() {
			l.done = true
			l.eof.Line, l.eof.Column = pt.Pos.Line, pt.Pos.Column

			break
		}

		if pt.Type == whitespace {
			continue
		}

		t := token.Token{
			Text:   pt.Value,
			Line:   pt.Pos.Line,
			Column: pt.Pos.Column,
		}

		if pt.Type == punct {
			t.Kind, _ = token.Lookup(pt.Value)
		} else {
			t.Kind = kindOf[pt.Type]
		}

		// end-of-input position follows the last real token
		l.eof.Line, l.eof.Column = t.Line, t.Column+len(t.Text)

		l.logger.Trace("token",
			slog.String("kind", t.Kind.String()),
			slog.String("text", t.Text),
			slog.Int("line", t.Line),
			slog.Int("col", t.Column))

		return t
	}

	return l.eof
}

// Tokens lexes source in full and returns its tokens, excluding EOF.
func Tokens(source string, opts ...Option) []token.Token {
	var out []token.Token
	for t := range token.All(New(source, opts...)) {
		out = append(out, t)
	}

	return out
}

package lang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/ardnew/flowc/lang/token"
)

// Code identifies a syntax diagnostic.
//
// Codes below [token.NumKinds] mean a token of that [token.Kind] was
// expected. Semantic diagnostics use [CodeSemantic].
type Code int

const (
	CodeInvalidExpression Code = Code(token.NumKinds) + iota
	CodeInvalidLiteral
	CodeInvalidPrimary

	CodeSemantic Code = -1
)

// Expected returns the code reported when a token of kind k is missing.
func Expected(k token.Kind) Code { return Code(k) }

func (c Code) String() string {
	switch {
	case c >= 0 && c < Code(token.NumKinds):
		return token.Kind(c).Quote() + " expected"
	case c == CodeInvalidExpression:
		return "invalid expression"
	case c == CodeInvalidLiteral:
		return "invalid literal"
	case c == CodeInvalidPrimary:
		return "invalid primary"
	case c == CodeSemantic:
		return "semantic error"
	default:
		return "error " + strconv.Itoa(int(c))
	}
}

// Diagnostic is one location-tagged parse message.
type Diagnostic struct {
	Msg  string
	Pos  token.Position
	Code Code
}

// Error implements error using the conventional diagnostic line format.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("-- line %d col %d: %s", d.Pos.Line, d.Pos.Column, d.Msg)
}

// Semantic reports whether d is a semantic rather than syntax diagnostic.
func (d Diagnostic) Semantic() bool { return d.Code == CodeSemantic }

// LogValue implements slog.LogValuer.
func (d Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", d.Pos.Line),
		slog.Int("col", d.Pos.Column),
		slog.String("msg", d.Msg),
	)
}

// Diagnostics is the ordered list of messages produced by one parse.
//
// A tree returned alongside a non-empty Diagnostics must be treated as
// unreliable.
type Diagnostics []Diagnostic

// Count returns the number of diagnostics.
func (ds Diagnostics) Count() int { return len(ds) }

// Err returns nil when ds is empty. Otherwise it returns an error matching
// [ErrParse] that wraps every diagnostic.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}

	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}

	return ErrParse.
		With(slog.Int("count", len(ds))).
		Wrap(errors.Join(errs...))
}

// LogValue implements slog.LogValuer.
func (ds Diagnostics) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(ds)+1)
	attrs = append(attrs, slog.Int("count", len(ds)))

	for i, d := range ds {
		attrs = append(attrs, slog.Any(strconv.Itoa(i), d))
	}

	return slog.GroupValue(attrs...)
}

// WriteTo writes one diagnostic per line to w.
func (ds Diagnostics) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, d := range ds {
		n, err := fmt.Fprintln(w, d.Error())
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

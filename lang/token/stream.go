package token

import "iter"

// Stream yields tokens in source order.
//
// After the last token a Stream returns an [EOF] token on every call.
type Stream interface {
	Next() Token
}

// Slice is a [Stream] over a fixed sequence of tokens.
type Slice struct {
	toks []Token
	next int
	eof  Token
}

// NewSlice returns a Stream yielding toks followed by EOF.
//
// Tokens without a position are placed on line 1, one column past the end of
// the preceding token, so diagnostics against hand-built input stay readable.
func NewSlice(toks ...Token) *Slice {
	s := &Slice{toks: make([]Token, len(toks))}

	line, col := 1, 1
	for i, t := range toks {
		if t.Line == 0 {
			t.Line, t.Column = line, col
		}

		line, col = t.Line, t.Column+len(t.Text)+1
		s.toks[i] = t
	}

	s.eof = Token{Kind: EOF, Line: line, Column: col}

	return s
}

// Next implements [Stream].
func (s *Slice) Next() Token {
	if s.next >= len(s.toks) {
		return s.eof
	}

	t := s.toks[s.next]
	s.next++

	return t
}

// All returns an iterator over the tokens of s up to, but not including, EOF.
func All(s Stream) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t := s.Next(); t.Kind != EOF; t = s.Next() {
			if !yield(t) {
				return
			}
		}
	}
}

package lang

import (
	"errors"
	"log/slog"
	"slices"
)

// Sentinels matched with errors.Is.
var (
	ErrParse       = NewError("parse failed")
	ErrReadInput   = NewError("failed to read input")
	ErrUnsupported = NewError("unsupported declaration")
	ErrCompile     = NewError("expression compilation failed")
	ErrEvaluate    = NewError("expression evaluation failed")
	ErrCache       = NewError("parse cache unavailable")
	ErrLoad        = NewError("invalid declaration graph")
)

// Error is a sentinel message with an optional cause and log attributes.
// It is rendered in log records through [Error.LogValue].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a sentinel with message msg.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error, wrapping it only if it is not one
// already.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error returns "msg: cause", omitting whichever part is empty.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is matches target when it is a bare sentinel with the same message, so
// wrapped and attributed copies still match their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// LogValue groups the message, cause and attributes of e.
func (e *Error) LogValue() slog.Value {
	var attrs []slog.Attr

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns the log attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended. e is unchanged.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append(slices.Clip(e.attrs), attrs...),
	}
}

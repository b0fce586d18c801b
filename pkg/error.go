package pkg

import (
	"fmt"
	"slices"
	"strings"
)

// Error is a chain of errors, innermost first. A single-element chain is a
// sentinel; wrapping it appends causes without touching the original.
type Error []error

// Sentinels shared by the flowc commands.
var (
	ErrReadInput      = MakeErrorf("failed to read input")
	ErrInvalidFormat  = MakeErrorf("invalid format")
	ErrDiagnostics    = MakeErrorf("input has diagnostics")
	ErrInvalidVersion = MakeErrorf("invalid version")
	ErrYAMLMarshal    = MakeErrorf("YAML marshal error")
	ErrJSONMarshal    = MakeErrorf("JSON marshal error")
)

// MakeError flattens errs into one chain, skipping nils. It returns nil when
// nothing is left.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the chain with ": ".
func (e Error) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, ": ")
}

// Wrap returns e followed by err.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf returns e followed by a formatted error.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is matches target when it is a non-empty prefix of e.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	return slices.EqualFunc(t, e[:len(t)], func(a, b error) bool { return a == b })
}

func (e Error) Unwrap() []error { return e }

// UnwrapErrors flattens the tree rooted at err, innermost first, with err
// itself last.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	var chain Error

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	case interface{ Unwrap() error }:
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}

package lang

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

// DefaultExcluded lists the keyword literals that are never dependencies.
// Matching is case-insensitive.
var DefaultExcluded = []string{"true", "false", "null"}

// Extract returns the free names read by d, unique and in first-seen order.
//
// Only the root of each qualified reference counts: a.b.c depends on a.
// Call arguments are searched; generic arguments are not. Names equal to an
// entry of excluded, ignoring case, are skipped. With no excluded names
// [DefaultExcluded] is used.
func Extract(d Declaration, excluded ...string) []string {
	if len(excluded) == 0 {
		excluded = DefaultExcluded
	}

	x := extractor{excluded: excluded, seen: make(map[string]struct{})}
	x.walk(d)

	return x.names
}

type extractor struct {
	seen     map[string]struct{}
	excluded []string
	names    []string
}

func (x *extractor) walk(d Declaration) {
	Match(d,
		func(*Literal) struct{} { return struct{}{} },
		func(b *BinaryOp) struct{} {
			x.walk(b.Left)
			x.walk(b.Right)

			return struct{}{}
		},
		func(r *Reference) struct{} {
			x.add(r.Root().Name)

			if r.IsCall {
				for _, arg := range r.Args {
					x.walk(arg)
				}
			}

			return struct{}{}
		},
	)
}

func (x *extractor) add(name string) {
	// an empty name is left behind by a failed parse
	if name == "" || x.isExcluded(name) {
		return
	}

	if _, ok := x.seen[name]; ok {
		return
	}

	x.seen[name] = struct{}{}
	x.names = append(x.names, name)
}

func (x *extractor) isExcluded(name string) bool {
	return slices.ContainsFunc(x.excluded, func(e string) bool {
		return strings.EqualFold(e, name)
	})
}

var (
	nameListPattern = regexp.MustCompile(`^\s*\[(\s*\w+\s*;)*\s*\w+\s*;?\s*\]\s*$`)
	nameWordPattern = regexp.MustCompile(`\w+`)
)

// ParseNameList recognizes a bracketed list of names such as [a; b; c] and
// returns its unique names in order. It reports false if src is not such a
// list. The list is not an expression and never reaches the parser.
func ParseNameList(src string) ([]string, bool) {
	if !nameListPattern.MatchString(src) {
		return nil, false
	}

	var names []string
	for _, name := range nameWordPattern.FindAllString(src, -1) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names, true
}

// Dependencies returns the names src depends on.
//
// A bracketed name list is returned as written. Anything else is parsed as
// an expression and passed to [Extract]. If the parse reports diagnostics
// the names are discarded and the error wraps them.
func Dependencies(ctx context.Context, src string, opts ...Option) ([]string, error) {
	return dependencies(src, func(s string) (Declaration, Diagnostics) {
		return ParseString(ctx, s, opts...)
	})
}

// dependencies implements [Dependencies] with expressions parsed by parse.
func dependencies(
	src string,
	parse func(string) (Declaration, Diagnostics),
) ([]string, error) {
	if names, ok := ParseNameList(src); ok {
		return names, nil
	}

	d, diags := parse(src)
	if err := diags.Err(); err != nil {
		return nil, WrapError(err).With(slog.String("source", src))
	}

	return Extract(d), nil
}

package flow

import (
	"context"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/flowc/order"
)

// maxSuggestions bounds the names offered for an unresolved dependency.
const maxSuggestions = 3

// Dependencies returns the entries that e reads, in first-seen order.
//
// Each source of e is parsed and its free names are resolved to entries by
// exact name. A source that fails to parse contributes no dependencies.
// Names with no matching entry are skipped and logged together with the
// closest entry names.
func (g *Graph) Dependencies(ctx context.Context, e *Entry) []*Entry {
	var (
		deps []*Entry
		seen = make(map[*Entry]bool)
	)

	for _, src := range e.Sources {
		names, err := g.cache.Dependencies(ctx, src)
		if err != nil {
			g.logger.DebugContext(ctx, "ignoring dependencies of invalid source",
				slog.Any("entry", e),
				slog.Any("error", err))

			continue
		}

		for _, name := range names {
			dep, ok := g.byName[name]
			if !ok {
				g.logUnresolved(ctx, e, name)

				continue
			}

			if !seen[dep] {
				seen[dep] = true
				deps = append(deps, dep)
			}
		}
	}

	g.logger.TraceContext(ctx, "dependencies",
		slog.Any("entry", e),
		slog.Int("count", len(deps)))

	return deps
}

// Suggest returns up to three entry names that fuzzily match name, best
// match first.
func (g *Graph) Suggest(name string) []string {
	matches := fuzzy.Find(name, g.names)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}

func (g *Graph) logUnresolved(ctx context.Context, e *Entry, name string) {
	attrs := []slog.Attr{
		slog.Any("entry", e),
		slog.String("name", name),
	}

	if suggest := g.Suggest(name); len(suggest) > 0 {
		attrs = append(attrs, slog.Any("suggestions", suggest))
	}

	g.logger.WarnContext(ctx, "unresolved dependency", attrs...)
}

// Order returns every entry once, each after the entries it depends on.
// Dependency cycles are broken silently.
func (g *Graph) Order(ctx context.Context) []*Entry {
	return order.Sequence(g.entries, func(e *Entry) []*Entry {
		return g.Dependencies(ctx, e)
	})
}

// OrderStrict is [Graph.Order] that fails with an [*order.CycleError] when
// the entries depend on each other cyclically.
func (g *Graph) OrderStrict(ctx context.Context) ([]*Entry, error) {
	ordered, err := order.Strict(g.entries, func(e *Entry) []*Entry {
		return g.Dependencies(ctx, e)
	})
	if err != nil {
		g.logger.WarnContext(ctx, "dependency cycle", slog.Any("error", err))

		return nil, err
	}

	return ordered, nil
}

package repl

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/lang"
	"github.com/ardnew/flowc/log"
)

// session holds the loaded flow document and the values of its evaluated
// declarations.
type session struct {
	graph  *flow.Graph
	cache  *lang.Cache
	env    map[string]any
	logger log.Logger
}

func newSession(ctx context.Context, g *flow.Graph, logger log.Logger) (*session, error) {
	cache, err := lang.NewCache(lang.DefaultCacheSize, lang.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	s := &session{
		cache:  cache,
		env:    make(map[string]any),
		logger: logger,
	}

	return s, s.load(ctx, g)
}

// load replaces the session's document with g, which may be nil.
func (s *session) load(ctx context.Context, g *flow.Graph) error {
	s.graph = g
	s.env = make(map[string]any)

	if g == nil {
		return nil
	}

	results, err := g.Evaluate(ctx, nil)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err == nil {
			s.env[r.Entry.Name] = r.Value
		}
	}

	s.logger.TraceContext(ctx, "repl document loaded",
		slog.Int("entries", len(g.Entries())),
		slog.Int("evaluated", len(s.env)))

	return nil
}

// names returns the declaration names available for completion.
func (s *session) names() []string {
	if s.graph == nil {
		return nil
	}

	return s.graph.Names()
}

// entry returns the declaration named name.
func (s *session) entry(name string) (*flow.Entry, bool) {
	if s.graph == nil {
		return nil, false
	}

	return s.graph.Lookup(name)
}

// report describes one inspected input line.
type report struct {
	rendering  string
	deps       []string
	unresolved []string
	diags      lang.Diagnostics
	value      any
	evalErr    error
	evaluated  bool
}

// inspect parses input and reports its rendering, dependencies and
// diagnostics. A valid expression is also evaluated against the values of
// the loaded declarations.
func (s *session) inspect(ctx context.Context, input string) report {
	var r report

	if names, ok := lang.ParseNameList(input); ok {
		r.deps = names
	} else {
		d, diags := s.cache.Parse(ctx, input)

		r.rendering = d.String()
		r.diags = diags
		r.deps = lang.Extract(d)

		if len(diags) == 0 {
			r.value, r.evalErr = lang.Evaluate(ctx, d, s.env)
			r.evaluated = r.evalErr == nil
		}
	}

	if s.graph != nil {
		for _, name := range r.deps {
			if _, ok := s.graph.Lookup(name); !ok && !slices.Contains(r.unresolved, name) {
				r.unresolved = append(r.unresolved, name)
			}
		}
	}

	return r
}

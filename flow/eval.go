package flow

import (
	"context"
	"log/slog"
	"maps"

	"github.com/ardnew/flowc/lang"
)

// Result is the outcome of evaluating one entry.
type Result struct {
	Entry *Entry
	Value any
	Err   error
}

// Evaluate evaluates the entries of g in dependency order.
//
// Each entry's sources are evaluated with env plus the values of every entry
// evaluated successfully before it, bound by name. An entry with one source
// yields that source's value; an entry with several yields a []any. Entries
// of type [TypeFunction] and entries without sources are not evaluated.
//
// A failing entry is reported in its Result and leaves its name unbound.
// Evaluate returns an error only when ctx is done.
func (g *Graph) Evaluate(ctx context.Context, env map[string]any) ([]Result, error) {
	scope := maps.Clone(env)
	if scope == nil {
		scope = make(map[string]any)
	}

	var results []Result

	for _, e := range g.Order(ctx) {
		if err := ctx.Err(); err != nil {
			return results, lang.ErrEvaluate.Wrap(err)
		}

		if e.Type == TypeFunction || len(e.Sources) == 0 {
			g.logger.TraceContext(ctx, "not evaluated", slog.Any("entry", e))

			continue
		}

		r := g.evaluate(ctx, e, scope)
		if r.Err == nil {
			scope[e.Name] = r.Value
		} else {
			g.logger.DebugContext(ctx, "evaluation failed",
				slog.Any("entry", e),
				slog.Any("error", r.Err))
		}

		results = append(results, r)
	}

	return results, nil
}

func (g *Graph) evaluate(ctx context.Context, e *Entry, scope map[string]any) Result {
	values := make([]any, 0, len(e.Sources))

	for _, src := range e.Sources {
		d, diags := g.cache.Parse(ctx, src)
		if err := diags.Err(); err != nil {
			return Result{Entry: e, Err: err}
		}

		v, err := lang.Evaluate(ctx, d, scope)
		if err != nil {
			return Result{Entry: e, Err: err}
		}

		values = append(values, v)
	}

	if len(values) == 1 {
		return Result{Entry: e, Value: values[0]}
	}

	return Result{Entry: e, Value: values}
}

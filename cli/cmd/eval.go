package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/fatih/color"

	"github.com/ardnew/flowc/lang"
	"github.com/ardnew/flowc/log"
)

var (
	nameColor  = color.New(color.FgCyan)
	valueColor = color.New(color.FgGreen)
)

// Eval evaluates the declarations of a flow document in dependency order.
type Eval struct {
	Set map[string]string `help:"Bind NAME to the value of an expression before evaluation." mapsep:";" placeholder:"NAME=EXPR" short:"D"`

	File string `arg:"" help:"Flow XML document or YAML manifest." name:"file" type:"existingfile"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	env, err := e.env(ctx)
	if err != nil {
		return err
	}

	g, err := loadFlow(ctx, e.File)
	if err != nil {
		return err
	}

	results, err := g.Evaluate(ctx, env)
	if err != nil {
		return err
	}

	out, errOut := stdout(ctx), stderr(ctx)
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++

			_, _ = diagColor.Fprintf(errOut, "%s: %v\n", r.Entry.Name, r.Err)

			continue
		}

		if _, err := fmt.Fprintf(out, "%s = %s\n",
			nameColor.Sprint(r.Entry.Name),
			valueColor.Sprint(formatValue(r.Value)),
		); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if failed > 0 {
		return ErrEvaluation.With(
			slog.Int("failed", failed),
			slog.Int("total", len(results)),
		)
	}

	return nil
}

// env evaluates each --set expression with no bindings.
func (e *Eval) env(ctx context.Context) (map[string]any, error) {
	env := make(map[string]any, len(e.Set))

	for _, name := range slices.Sorted(maps.Keys(e.Set)) {
		src := e.Set[name]

		d, diags := lang.ParseString(ctx, src, lang.WithLogger(log.Default()))
		if err := diags.Err(); err != nil {
			return nil, lang.WrapError(err).With(slog.String("set", name))
		}

		v, err := lang.Evaluate(ctx, d, map[string]any{})
		if err != nil {
			return nil, lang.WrapError(err).With(slog.String("set", name))
		}

		env[name] = v
	}

	return env, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}

		return fmt.Sprintf("%v", parts)
	default:
		return fmt.Sprint(v)
	}
}

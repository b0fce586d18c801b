package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprSource renders d as expr-lang source text.
//
// Units are dropped, qualified references become member access, and binary
// operations are fully parenthesized. Generic arguments and placeholder
// literals have no expr-lang form and yield [ErrUnsupported].
func ExprSource(d Declaration) (string, error) {
	var sb strings.Builder

	if err := writeExpr(&sb, d); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func writeExpr(sb *strings.Builder, d Declaration) error {
	if d == nil {
		return ErrUnsupported.With(slog.String("reason", "missing operand"))
	}

	return Match(d,
		func(l *Literal) error {
			switch l.Kind {
			case LiteralInteger, LiteralString, LiteralChar:
				sb.WriteString(l.Raw)
			case LiteralFloat:
				sb.WriteString(exprFloat(l.Raw))
			default:
				return ErrUnsupported.With(slog.String("reason", "invalid operand"))
			}

			return nil
		},
		func(b *BinaryOp) error {
			sb.WriteByte('(')

			if err := writeExpr(sb, b.Left); err != nil {
				return err
			}

			sb.WriteString(" " + string(b.Op) + " ")

			if err := writeExpr(sb, b.Right); err != nil {
				return err
			}

			sb.WriteByte(')')

			return nil
		},
		func(r *Reference) error {
			return writeExprRef(sb, r)
		},
	)
}

func writeExprRef(sb *strings.Builder, r *Reference) error {
	if r.Generic != nil {
		return ErrUnsupported.With(
			slog.String("reason", "generic argument"),
			slog.String("reference", r.String()),
		)
	}

	if r.Name == "" {
		return ErrUnsupported.With(slog.String("reason", "missing name"))
	}

	if r.Qualifier != nil {
		if err := writeExprRef(sb, r.Qualifier); err != nil {
			return err
		}

		sb.WriteByte('.')
	}

	sb.WriteString(r.Name)

	if !r.IsCall {
		return nil
	}

	sb.WriteByte('(')

	for i, arg := range r.Args {
		if i > 0 {
			sb.WriteString(", ")
		}

		if err := writeExpr(sb, arg); err != nil {
			return err
		}
	}

	sb.WriteByte(')')

	return nil
}

// exprFloat normalizes float text such as "1." or ".5" that expr-lang does
// not accept.
func exprFloat(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}

	return s
}

// Compile compiles d for evaluation against environments shaped like env.
func Compile(d Declaration, env map[string]any) (*vm.Program, error) {
	src, err := ExprSource(d)
	if err != nil {
		return nil, err
	}

	return compile(src, env)
}

// Evaluate compiles and runs d with env supplying the value of every free
// name.
func Evaluate(ctx context.Context, d Declaration, env map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrEvaluate.Wrap(err)
	}

	src, err := ExprSource(d)
	if err != nil {
		return nil, err
	}

	program, err := compile(src, env)
	if err != nil {
		return nil, err
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("expr", src))
	}

	return result, nil
}

func compile(src string, env map[string]any) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("expr", src))
	}

	return program, nil
}

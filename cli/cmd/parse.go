package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/ardnew/flowc/lang"
	"github.com/ardnew/flowc/log"
	"github.com/ardnew/flowc/pkg"
)

// Output formats of the parse command.
const (
	FormatCanonical = "canonical"
	FormatYAML      = "yaml"
	FormatJSON      = "json"
	FormatAST       = "ast"
)

var (
	sourceColor = color.New(color.FgYellow, color.Bold)
	diagColor   = color.New(color.FgRed)
)

// Parse parses expressions and prints their syntax trees.
type Parse struct {
	Format string `default:"canonical" enum:"canonical,yaml,json,ast" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                                        help:"Indent width for yaml and json output." short:"i"`

	Exprs []string `arg:"" help:"Expressions to parse. Read from --source or stdin when omitted." name:"expr" optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	exprs, err := expressions(ctx, p.Exprs)
	if err != nil {
		return err
	}

	out, errOut := stdout(ctx), stderr(ctx)
	failed := 0

	for i, src := range exprs {
		d, diags := lang.ParseString(ctx, src, lang.WithLogger(log.Default()))

		if len(diags) > 0 {
			failed++

			writeDiagnostics(errOut, src, diags)
		}

		if err := p.write(ctx, out, d, i); err != nil {
			return err
		}
	}

	if failed > 0 {
		return pkg.ErrDiagnostics.Wrapf("%d of %d expressions", failed, len(exprs))
	}

	return nil
}

func (p *Parse) write(ctx context.Context, w io.Writer, d lang.Declaration, index int) error {
	var err error

	switch p.Format {
	case FormatCanonical:
		_, err = fmt.Fprintln(w, d)

	case FormatYAML:
		if index > 0 {
			if _, err = io.WriteString(w, "---\n"); err != nil {
				break
			}
		}

		if err = lang.FormatYAML(ctx, w, d, p.Indent); err != nil {
			return pkg.ErrYAMLMarshal.Wrap(err)
		}

	case FormatJSON:
		if err = lang.FormatJSON(ctx, w, d, p.Indent); err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

	case FormatAST:
		err = lang.FormatTree(ctx, w, d)

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q (valid: %s, %s, %s, %s)",
			p.Format, FormatCanonical, FormatYAML, FormatJSON, FormatAST)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", p.Format))
	}

	return nil
}

func writeDiagnostics(w io.Writer, src string, diags lang.Diagnostics) {
	_, _ = sourceColor.Fprintln(w, src)

	for _, d := range diags {
		_, _ = diagColor.Fprintln(w, d.Error())
	}
}

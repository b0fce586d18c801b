package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/flowc/lang"
	"github.com/ardnew/flowc/log"
	"github.com/ardnew/flowc/pkg"
)

// Deps prints the names each expression depends on.
type Deps struct {
	Exclude []string `help:"Names never reported as dependencies, ignoring case (default: true,false,null)." placeholder:"NAME" short:"x"`

	Exprs []string `arg:"" help:"Expressions or bracketed name lists such as '[a; b]'. Read from --source or stdin when omitted." name:"expr" optional:""`
}

// Run executes the deps command. Each expression yields one output line of
// space-separated names. An expression without dependencies, or one that
// fails to parse, yields an empty line.
func (d *Deps) Run(ctx context.Context) error {
	exprs, err := expressions(ctx, d.Exprs)
	if err != nil {
		return err
	}

	out, errOut := stdout(ctx), stderr(ctx)
	failed := 0

	for _, src := range exprs {
		names, ok := lang.ParseNameList(src)
		if !ok {
			decl, diags := lang.ParseString(ctx, src, lang.WithLogger(log.Default()))
			if len(diags) > 0 {
				failed++

				writeDiagnostics(errOut, src, diags)
			} else {
				names = lang.Extract(decl, d.Exclude...)
			}
		}

		if _, err := fmt.Fprintln(out, strings.Join(names, " ")); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if failed > 0 {
		return pkg.ErrDiagnostics.Wrapf("%d of %d expressions", failed, len(exprs))
	}

	return nil
}

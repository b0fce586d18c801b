package cmd

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/flowc/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	outputKey struct{}
	output    struct{ stdout, stderr io.Writer }
)

// WithOutput returns a new context.Context whose commands write results to
// stdout and diagnostics to stderr.
func WithOutput(ctx context.Context, stdout, stderr io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, output{stdout, stderr})
}

// stdout returns the result writer stored in ctx, the kong application's
// writer, or os.Stdout, in that order of preference.
func stdout(ctx context.Context) io.Writer {
	if o, ok := ctx.Value(outputKey{}).(output); ok && o.stdout != nil {
		return o.stdout
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr is [stdout] for diagnostic output.
func stderr(ctx context.Context) io.Writer {
	if o, ok := ctx.Value(outputKey{}).(output); ok && o.stderr != nil {
		return o.stderr
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// expressions returns the expressions a command operates on: args when
// given, otherwise one expression per non-blank line of the source files in
// ctx, otherwise of os.Stdin.
func expressions(ctx context.Context, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var r io.Reader = os.Stdin
	if src := sourceFilesFrom(ctx); src != nil {
		r = src
	}

	var exprs []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			exprs = append(exprs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return exprs, nil
}

package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
	"github.com/ardnew/flowc/pkg"
)

// Output formats of the order command.
const (
	FormatNames = "names"
	FormatXML   = "xml"
)

// Order prints the declarations of a flow document in dependency order.
type Order struct {
	Strict bool   `help:"Fail when declarations depend on each other cyclically."`
	Format string `default:"names" enum:"names,xml,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                           help:"Indent width for xml and yaml output." short:"i"`

	File string `arg:"" help:"Flow XML document or YAML manifest." name:"file" type:"existingfile"`
}

// Run executes the order command.
func (o *Order) Run(ctx context.Context) error {
	g, err := loadFlow(ctx, o.File)
	if err != nil {
		return err
	}

	var ordered []*flow.Entry

	if o.Strict {
		if ordered, err = g.OrderStrict(ctx); err != nil {
			return err
		}
	} else {
		ordered = g.Order(ctx)
	}

	out := stdout(ctx)

	switch o.Format {
	case FormatNames:
		for _, e := range ordered {
			if _, err = fmt.Fprintln(out, e.Name); err != nil {
				break
			}
		}

	case FormatXML:
		err = flow.WriteXML(out, ordered, o.Indent)

	case FormatYAML:
		err = flow.WriteYAML(ctx, out, ordered, o.Indent)

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q (valid: %s, %s, %s)",
			o.Format, FormatNames, FormatXML, FormatYAML)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", o.Format))
	}

	return nil
}

// loadFlow reads the flow document at path. Files ending in .yaml or .yml
// are manifests and files ending in .xml or .flow are Flow XML; any other
// file is treated as XML when its first non-blank byte is '<'.
func loadFlow(ctx context.Context, path string, opts ...flow.Option) (*flow.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenFlow.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	base := []flow.Option{flow.WithLogger(log.Default())}
	if v, err := pkg.SemVer(); err == nil {
		base = append(base, flow.WithVersion(v))
	}

	opts = append(base, opts...)
	r := bufio.NewReader(f)

	var g *flow.Graph

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		g, err = flow.LoadYAML(ctx, r, opts...)
	case ".xml", ".flow":
		g, err = flow.LoadXML(ctx, r, opts...)
	default:
		if looksLikeXML(r) {
			g, err = flow.LoadXML(ctx, r, opts...)
		} else {
			g, err = flow.LoadYAML(ctx, r, opts...)
		}
	}

	if err != nil {
		return nil, ErrOpenFlow.Wrap(err).With(slog.String("path", path))
	}

	return g, nil
}

func looksLikeXML(r *bufio.Reader) bool {
	const sniff = 512

	head, err := r.Peek(sniff)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return false
	}

	return bytes.HasPrefix(bytes.TrimSpace(head), []byte("<"))
}

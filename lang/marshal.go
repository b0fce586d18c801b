package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToMap converts d to nested maps of native Go values, keyed by variant:
//
//	literal:   {kind, raw, unit?}
//	binary:    {op, left, right}
//	reference: {name, qualifier?, generic?, call?, args?}
func ToMap(d Declaration) map[string]any {
	return Match(d,
		func(l *Literal) map[string]any {
			m := map[string]any{
				"kind": l.Kind.String(),
				"raw":  l.Raw,
			}
			if l.Unit != "" {
				m["unit"] = l.Unit
			}

			return map[string]any{"literal": m}
		},
		func(b *BinaryOp) map[string]any {
			return map[string]any{"binary": map[string]any{
				"op":    string(b.Op),
				"left":  ToMap(b.Left),
				"right": ToMap(b.Right),
			}}
		},
		func(r *Reference) map[string]any {
			return map[string]any{"reference": refMap(r)}
		},
	)
}

func refMap(r *Reference) map[string]any {
	m := map[string]any{"name": r.Name}

	if r.Qualifier != nil {
		m["qualifier"] = refMap(r.Qualifier)
	}

	if r.Generic != nil {
		m["generic"] = refMap(r.Generic)
	}

	if r.IsCall {
		args := make([]any, len(r.Args))
		for i, arg := range r.Args {
			args[i] = ToMap(arg)
		}

		m["call"] = true
		m["args"] = args
	}

	return m
}

// FormatJSON writes d as JSON to w.
func FormatJSON(_ context.Context, w io.Writer, d Declaration, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToMap(d), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToMap(d))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes d as YAML to w. A non-positive indent selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, d Declaration, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToMap(d), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// FormatTree writes an indented outline of d to w, one node per line.
func FormatTree(_ context.Context, w io.Writer, d Declaration) error {
	var sb strings.Builder

	writeTree(&sb, d, "", "")

	_, err := io.WriteString(w, sb.String())

	return err
}

func writeTree(sb *strings.Builder, d Declaration, label, indent string) {
	sb.WriteString(indent)

	if label != "" {
		sb.WriteString(label)
		sb.WriteString(": ")
	}

	next := indent + "  "

	Match(d,
		func(l *Literal) struct{} {
			fmt.Fprintf(sb, "Literal %s %s", l.Kind, l.Raw)

			if l.Unit != "" {
				fmt.Fprintf(sb, " unit=%s", l.Unit)
			}

			sb.WriteByte('\n')

			return struct{}{}
		},
		func(b *BinaryOp) struct{} {
			fmt.Fprintf(sb, "BinaryOp %s\n", b.Op)
			writeTree(sb, b.Left, "left", next)
			writeTree(sb, b.Right, "right", next)

			return struct{}{}
		},
		func(r *Reference) struct{} {
			fmt.Fprintf(sb, "Reference %s", r.Name)

			if r.IsCall {
				fmt.Fprintf(sb, " call/%d", len(r.Args))
			}

			sb.WriteByte('\n')

			if r.Qualifier != nil {
				writeTree(sb, r.Qualifier, "qualifier", next)
			}

			if r.Generic != nil {
				writeTree(sb, r.Generic, "generic", next)
			}

			for i, arg := range r.Args {
				writeTree(sb, arg, fmt.Sprintf("arg[%d]", i), next)
			}

			return struct{}{}
		},
	)
}

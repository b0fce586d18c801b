package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to colorize pretty log output.
//
// Styles are bound to a renderer created for the output writer, so color
// is dropped automatically when the writer is not a terminal.
type palette struct {
	key, str, num, dur, tim, null lipgloss.Style
	yes, no                       lipgloss.Style
	trace, debug, info, warn, err lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		dur:   fg("5"),
		tim:   fg("4"),
		null:  fg("8"),
		yes:   fg("2"),
		no:    fg("1"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyBase holds the state shared by both pretty handlers.
type prettyBase struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  *palette
	attrs  []slog.Attr
	groups []string
}

func newPrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	return prettyBase{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newPalette(w),
	}
}

func (b prettyBase) enabled(level slog.Level) bool {
	minLevel := slog.LevelInfo
	if b.opts.Level != nil {
		minLevel = b.opts.Level.Level()
	}

	return level >= minLevel
}

func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	if len(attrs) == 0 {
		return b
	}

	prefix := b.prefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		b.attrs = append(b.attrs[:len(b.attrs):len(b.attrs)], a)
	}

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name == "" {
		return b
	}

	b.groups = append(b.groups[:len(b.groups):len(b.groups)], name)

	return b
}

func (b prettyBase) prefix() string {
	var p string
	for _, g := range b.groups {
		p += g + "."
	}

	return p
}

// builtins returns the standard record fields after ReplaceAttr.
func (b prettyBase) builtins(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, 4) //nolint:mnd

	add := func(a slog.Attr) {
		if b.opts.ReplaceAttr != nil {
			a = b.opts.ReplaceAttr(nil, a)
		}

		if !a.Equal(slog.Attr{}) {
			out = append(out, a)
		}
	}

	if !r.Time.IsZero() {
		add(slog.Time(slog.TimeKey, r.Time))
	}

	add(slog.Any(slog.LevelKey, r.Level))

	if b.opts.AddSource {
		if src := r.Source(); src != nil {
			add(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	add(slog.String(slog.MessageKey, r.Message))

	return out
}

// recordAttrs returns the handler attributes followed by those of r.
func (b prettyBase) recordAttrs(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, len(b.attrs)+r.NumAttrs())
	out = append(out, b.attrs...)

	prefix := b.prefix()

	r.Attrs(func(a slog.Attr) bool {
		a.Key = prefix + a.Key
		out = append(out, a)

		return true
	})

	return out
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

func (b prettyBase) value(v slog.Value, levelKey bool) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		if levelKey {
			return b.style.level(slog.Level(ParseLevel(v.String()))).Render(v.String())
		}

		return b.style.str.Render(v.String())

	case slog.KindInt64:
		return b.style.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return b.style.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return b.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return b.style.yes.Render("true")
		}

		return b.style.no.Render("false")

	case slog.KindDuration:
		return b.style.dur.Render(v.Duration().String())

	case slog.KindTime:
		return b.style.tim.Render(v.Time().Format(time.RFC3339))

	case slog.KindGroup:
		var buf bytes.Buffer

		buf.WriteByte('{')

		for i, a := range v.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(b.style.key.Render(a.Key))
			buf.WriteByte('=')
			buf.WriteString(b.value(a.Value, false))
		}

		buf.WriteByte('}')

		return buf.String()

	default:
		if level, ok := v.Any().(slog.Level); ok {
			return b.style.level(level).Render(Level(level).String())
		}

		if v.Any() == nil {
			return b.style.null.Render("null")
		}

		return b.style.str.Render(fmt.Sprint(v.Any()))
	}
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct {
	prettyBase
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range append(h.builtins(r), h.recordAttrs(r)...) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(a.Value, a.Key == slog.LevelKey))
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
// Its output is meant for people; use [FormatJSON] without pretty printing
// for machine consumption.
type prettyJSONHandler struct {
	prettyBase
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{")

	for i, a := range append(h.builtins(r), h.recordAttrs(r)...) {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.value(a.Value, a.Key == slog.LevelKey))
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

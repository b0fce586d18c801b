package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"
)

// Level is a record severity. It extends [slog.Level] with [LevelTrace].
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels yields the level names from most to least verbose.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range levels {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel accepts any name [slog.Level.UnmarshalText] does, plus
// "trace", ignoring case and surrounding space. Anything else yields
// [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects the record encoding.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

const DefaultFormat = FormatJSON

// Formats yields the format names.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatJSON, FormatText} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat maps "json" or "text" to a Format, ignoring case. Anything
// else yields [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

// FormatTime renders a record timestamp. An empty result drops the time
// attribute.
type FormatTime func(time.Time) string

const (
	DefaultTimeLayout = time.RFC3339
	DefaultCaller     = false
	DefaultPretty     = true
)

type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	return apply(apply(config{}, WithDefaults(w)), opts...)
}

// handler builds the handler for c. A config without output discards.
func (c config) handler() slog.Handler {
	if c.output == nil {
		return slog.DiscardHandler
	}

	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.pretty && c.format == FormatJSON:
		return newPrettyJSONHandler(c.output, opts)

	case c.pretty && c.format == FormatText:
		return newPrettyTextHandler(c.output, opts)

	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)

	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)

	default:
		return slog.DiscardHandler
	}
}

// replaceAttr applies formatTime and spells levels by name, so trace is
// "TRACE" rather than "DEBUG-4".
func (c config) replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		t, ok := a.Value.Any().(time.Time)
		if !ok || c.formatTime == nil {
			return a
		}

		formatted := c.formatTime(t)
		if formatted == "" {
			return slog.Attr{}
		}

		a.Value = slog.StringValue(formatted)

	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(level).String()))
		}
	}

	return a
}

// Option adjusts a Logger configuration.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithDefaults resets every setting and directs output to w.
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		c := WithOutput(w)(config{})
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level, c.format = DefaultLevel, DefaultFormat
		c.caller, c.pretty = DefaultCaller, DefaultPretty

		return c
	}
}

// WithOutput directs records to w, or discards them if w is nil.
func WithOutput(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return func(c config) config {
		c.output = w

		return c
	}
}

// WithLevel drops records below level.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the timestamp layout. Names of the [time] layout
// constants are matched ignoring case and punctuation, so "rfc3339-nano"
// selects [time.RFC3339Nano]; "none" or a blank layout omits timestamps.
// Any other string is used as a [time.Time.Format] layout.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTimeFunc(layout)

		return c
	}
}

// WithCaller adds the source location of each call.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty colorizes records when the output is a terminal.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// timeLayout is keyed by lowercase alphanumerics only.
var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,

	"stamp": time.Stamp,
	"none":  "",

	"stampmilli": time.StampMilli,
	"milli":      time.StampMilli,
	"ms":         time.StampMilli,

	"stampmicro": time.StampMicro,
	"micro":      time.StampMicro,
	"us":         time.StampMicro,

	"stampnano": time.StampNano,
	"nano":      time.StampNano,
	"ns":        time.StampNano,
}

func makeFormatTimeFunc(layout string) FormatTime {
	key := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if key == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := timeLayout[key]; ok {
		if std == "" {
			return func(time.Time) string { return "" }
		}

		layout = std
	}

	return func(t time.Time) string { return t.Format(layout) }
}

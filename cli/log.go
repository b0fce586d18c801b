package cli

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/flowc/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// that errors reported during parsing already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                               help:"Set timestamp format."`
	Caller     bool      `default:"false"                                 help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                  help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  join(log.Levels()),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": join(log.Formats()),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging option to the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logging flags found in args before kong parses them, so the
// logger is configured regardless of flag position. Boolean flags do not
// pass through encoding.TextUnmarshaler and are only applied here and in
// start. Scanning stops at "--".
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		negated := false

		if s, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = s, true
		} else if s, ok := strings.CutPrefix(name, "--log-"); ok {
			name = s
		} else {
			continue
		}

		switch name {
		case "level", "format":
			if negated {
				continue
			}

			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				value = args[i+1]
				i++
			}

			if name == "level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "pretty", "caller":
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			enable = enable != negated

			if name == "pretty" {
				f.Pretty = enable
				log.Config(log.WithPretty(enable))
			} else {
				f.Caller = enable
				log.Config(log.WithCaller(enable))
			}
		}
	}
}

func join(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}

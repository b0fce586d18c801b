package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes leveled records through a [slog.Handler] chosen by its
// configuration. It is safe for concurrent use. Copies share one handler,
// and the zero Logger drops everything.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a Logger writing to w. Without options it writes pretty JSON
// at [DefaultLevel] with [DefaultTimeLayout] timestamps and no caller.
func Make(w io.Writer, opts ...Option) Logger {
	return fromConfig(makeConfig(w, opts...))
}

// Wrap derives a Logger from l's configuration with opts applied. Attributes
// bound by [Logger.With] are dropped.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := l.config
	if cfg.output == nil {
		cfg = makeConfig(nil)
	}

	return fromConfig(apply(cfg, opts...))
}

func fromConfig(cfg config) Logger {
	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// With binds attrs to every record written through the returned Logger.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{Logger: slog.New(l.Handler().WithAttrs(attrs)), config: l.config}
}

func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether a record at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.Logger != nil && l.Logger.Enabled(ctx, slog.Level(level))
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelTrace, msg, attrs...)
}

func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelDebug, msg, attrs...)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelInfo, msg, attrs...)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelWarn, msg, attrs...)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelError, msg, attrs...)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelError, msg, attrs...)
}

// logContext must be called directly by an exported method or package
// function, since the reported caller is the third frame up.
func (l Logger) logContext(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.Logger == nil {
		return
	}

	if ctx == nil {
		ctx = DefaultContextProvider()
	}

	if !l.Logger.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	runtime.Callers(3, pcs[:]) //nolint:mnd

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}

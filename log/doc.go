// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parse complete", slog.Int("diagnostics", 0))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The zero value of [Logger] discards everything, so library packages can
// hold a Logger field without requiring callers to configure one.
//
// # Package-level Logger
//
// The package-level functions ([Info], [Debug], [Error], ...) write through a
// default logger that is reconfigured with [Config]. The CLI configures it
// once from command-line flags before running a command.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Trace is used by the parser and sequencer for per-token and per-visit
// detail.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and [FormatText].
// Both have a pretty variant, enabled by default, which is colorized with
// lipgloss when the output is a terminal.
package log

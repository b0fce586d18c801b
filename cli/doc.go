// Package cli contains the command line interface for flowc.
//
// # Commands
//
//   - parse (default): parse expressions and print their declarations in
//     canonical, yaml, json or ast form, with diagnostics on stderr
//   - deps: print the names each expression depends on
//   - order: print the declarations of a flow document in dependency order
//   - eval: evaluate the declarations of a flow document
//   - repl: inspect expressions interactively
//
// Expressions are taken from the command line, else from --source files,
// else from stdin, one per line.
//
// # Configuration
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory. Nested keys are joined with hyphens:
//
//	log:
//	  level: debug
//	order:
//	  strict: true
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (see [profile.Modes])
//   - --pprof-dir: Set profile output directory
package cli

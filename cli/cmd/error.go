package cmd

import "github.com/ardnew/flowc/lang"

// Error is a command failure. Commands share the sentinel type of the
// language packages, so callers match either with errors.Is.
type Error = lang.Error

var (
	ErrOpenFlow    = lang.NewError("open flow document")
	ErrWriteOutput = lang.NewError("write output")
	ErrEvaluation  = lang.NewError("declarations failed to evaluate")
	ErrWriteConfig = lang.NewError("write configuration")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrNoContext   = lang.NewError("command context unavailable")
)

package cmd

import (
	"context"

	"github.com/ardnew/flowc/cli/cmd/repl"
	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
)

// Repl starts an interactive session for inspecting expressions against the
// declarations of a flow document.
type Repl struct {
	History string `default:"${cache}/history.utf8" help:"Input history file." type:"path"`
	Watch   bool   `default:"true"                    help:"Reload the flow document when it changes on disk." negatable:""`

	File string `arg:"" help:"Flow XML document or YAML manifest." name:"file" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, r.File, func(ctx context.Context, path string) (*flow.Graph, error) {
		return loadFlow(ctx, path)
	}, r.Watch, r.History, log.Default())
}

package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
)

const defaultEditor = "vi"

// Loader reads the flow document at path.
type Loader func(ctx context.Context, path string) (*flow.Graph, error)

// editFlowCommand implements [tea.ExecCommand] for the edit-load-retry loop.
// It opens the flow document in the user's editor and reloads it. When the
// document fails to load the user is prompted to re-edit; declining keeps
// the previously loaded graph.
type editFlowCommand struct {
	path    string
	load    Loader
	ctxFunc func() context.Context
	logger  log.Logger
	graph   *flow.Graph
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editFlowCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editFlowCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editFlowCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-load-retry loop. It returns [ErrEditDeclined] if
// the user declines to re-edit a document that does not load.
func (c *editFlowCommand) Run() error {
	ctx := c.ctxFunc()

	for attempt := 1; ; attempt++ {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.path); err != nil {
			return err
		}

		g, err := c.load(ctx, c.path)

		c.logger.TraceContext(ctx, "editor load attempt",
			slog.Int("attempt", attempt),
			slog.String("path", c.path),
			slog.Bool("success", err == nil))

		if err == nil {
			c.graph = g

			return nil
		}

		fmt.Fprintf(c.stderr, "\nLoad error: %s\n", err)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}
	}
}

// confirm reads one line from r and reports whether it is not a refusal.
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "n", "no":
		return false
	}

	return true
}

// runEditor opens path in $EDITOR and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

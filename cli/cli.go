package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/flowc/cli/cmd"
	"github.com/ardnew/flowc/log"
	"github.com/ardnew/flowc/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

var defaultDirMode os.FileMode = 0o700

// CLI is the top-level command-line interface for flowc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source []string `help:"Read expressions from file(s), or '-' for stdin." name:"source" short:"s" type:"existingfile"`

	Parse cmd.Parse `cmd:"" default:"withargs" help:"Parse expressions and print their declarations."`
	Deps  cmd.Deps  `cmd:""                    help:"Print the names each expression depends on."`
	Order cmd.Order `cmd:""                    help:"Print the declarations of a flow document in dependency order."`
	Eval  cmd.Eval  `cmd:""                    help:"Evaluate the declarations of a flow document."`
	Repl  cmd.Repl  `cmd:""                    help:"Inspect expressions interactively."`
	Init  cmd.Init  `cmd:""                    help:"Write the current global flags to the configuration file."`
}

// Run executes the flowc CLI with the process's standard streams.
// The exit function is called with the appropriate exit code upon completion.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, exit, os.Stdout, os.Stderr, args...)
}

func run(
	ctx context.Context,
	exit func(code int),
	stdout, stderr io.Writer,
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	log.Config(log.WithOutput(stderr))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	// exit returns when it is not os.Exit; stop before running a command.
	exited := false

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			exited = true

			exit(code)
		}),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configPath(baseConfig+".yaml")),
		kong.Vars{
			"version":            pkg.Version(),
			cmd.ConfigIdentifier: configPath(baseConfig + ".yaml"),
			cmd.CacheIdentifier:  pkg.CacheDir(),
		}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil || exited {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOutput(ctx, stdout, stderr)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	defer func() { _ = cmd.CloseSourceFiles(ctx) }()

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/flowc/log"
	"github.com/ardnew/flowc/profile"
)

// defaultConfigIndent is the indent width of generated configuration files.
const defaultConfigIndent = 2

// Init writes a configuration file holding the current value of every
// global flag.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(ErrNoContext)
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		return ErrWriteConfig.Wrap(ErrNoContext).With(slog.String("var", ConfigIdentifier))
	}

	attr := slog.String("file", path)

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteConfig.Wrap(ErrFileExists).With(attr)
	}

	data, err := yaml.MarshalContext(ctx, configValues(ktx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.Wrap(err).With(attr)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ErrWriteConfig.Wrap(err).With(attr)
	}

	log.DebugContext(ctx, "initialized configuration file", attr)

	return nil
}

// configValues returns the set values of the application's global flags,
// nested by their first hyphen-separated word. Help, version and profiling
// flags are omitted, as are empty values.
func configValues(ktx *kong.Context) map[string]any {
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || skipFlag(flag.Name) {
			continue
		}

		v := flagValue(ktx.FlagValue(flag))
		if v == nil {
			continue
		}

		group, key, nested := strings.Cut(flag.Name, "-")
		if !nested {
			values[flag.Name] = v

			continue
		}

		m, ok := values[group].(map[string]any)
		if !ok {
			m = make(map[string]any)
			values[group] = m
		}

		m[key] = v
	}

	return values
}

func skipFlag(name string) bool {
	for _, prefix := range []string{"help", "version", profile.Tag} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// flagValue returns v as written to the configuration file, or nil when v
// is empty.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
	case []string:
		if len(v) == 0 {
			return nil
		}
	case kong.VersionFlag:
		return nil
	}

	return v
}

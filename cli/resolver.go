package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/flowc/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// Nested mappings are flattened by joining keys with hyphens, so both
//
//	log:
//	  level: debug
//	  pretty: false
//	order:
//	  strict: true
//
// and the equivalent flat keys log-level, log_level, or order-strict set the
// flags --log-level, --no-log-pretty and the order command's --strict.
// Scalars are passed to kong as strings. A file that is not valid YAML is
// ignored with a warning. Command-line flags override configured values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring invalid configuration",
				slog.String("error", err.Error()))

			return config{}, nil
		}

		c := config{}
		c.flatten("", doc)

		return c, nil
	}
}

// config implements [kong.Resolver] over flattened YAML keys.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := value.(type) {
		case map[string]any:
			c.flatten(key, v)
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = scalar(item)
			}

			c[key] = strings.Join(parts, ",")
		default:
			c[key] = scalar(v)
		}
	}
}

// scalar formats a decoded YAML scalar the way kong parses flag values.
func scalar(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A flag of a subcommand is looked up
// under the command's name first.
func (c config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := strings.ReplaceAll(flag.Name, "_", "-")

	if parent != nil && parent.Command != nil {
		if value, ok := c[parent.Command.Name+"-"+name]; ok {
			return value, nil
		}
	}

	if value, ok := c[name]; ok {
		return value, nil
	}

	return nil, nil
}

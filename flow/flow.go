// Package flow builds ordered declaration graphs from flow documents.
//
// A flow document names a set of declarations, each with a type and zero or
// more source expressions. The expressions are parsed with package lang to
// discover which declarations each one reads, and the graph is then ordered
// so that every declaration follows the declarations it depends on.
//
// Two document forms are accepted: the Flow XML format written by the node
// graph editor (see [LoadXML]) and a YAML manifest (see [LoadYAML]).
package flow

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"github.com/ardnew/flowc/lang"
	"github.com/ardnew/flowc/log"
)

// TypeFunction marks declarations whose sources are the body of a function.
const TypeFunction = "Function"

// Validation errors reported by the loaders, joined under [lang.ErrLoad].
var (
	ErrEmptyName         = lang.NewError("declaration name is empty")
	ErrEmptyType         = lang.NewError("declaration type is empty")
	ErrDuplicateFunction = lang.NewError("function is already defined")
	ErrVersion           = lang.NewError("document requires another version")
)

// Entry is one named declaration of a flow document.
type Entry struct {
	ID        string   `yaml:"id,omitempty"`
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Sources   []string `yaml:"sources,omitempty"`
	Arguments []string `yaml:"arguments,omitempty"`
}

func (e *Entry) String() string {
	if e.ID != "" && e.ID != e.Name {
		return e.Name + "#" + e.ID
	}

	return e.Name
}

// LogValue implements slog.LogValuer.
func (e *Entry) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", e.Name),
		slog.String("type", e.Type),
	}
	if e.ID != "" {
		attrs = append(attrs, slog.String("id", e.ID))
	}

	return slog.GroupValue(attrs...)
}

// Option configures a [Graph].
type Option func(*options)

type options struct {
	logger  log.Logger
	cache   *lang.Cache
	version *semver.Version
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger used while loading and ordering.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCache shares a parse cache between graphs. Without it each graph
// creates its own.
func WithCache(cache *lang.Cache) Option {
	return func(o *options) { o.cache = cache }
}

// WithVersion sets the version that documents declaring a version
// constraint are checked against. Without it constraints are not checked.
func WithVersion(v *semver.Version) Option {
	return func(o *options) { o.version = v }
}

// checkVersion reports whether the version in o satisfies the constraint
// requires. An empty constraint is always satisfied.
func checkVersion(requires string, o options) error {
	if requires == "" || o.version == nil {
		return nil
	}

	c, err := semver.NewConstraint(requires)
	if err != nil {
		return lang.ErrReadInput.Wrap(err).With(slog.String("requires", requires))
	}

	if ok, errs := c.Validate(o.version); !ok {
		return ErrVersion.
			Wrap(errors.Join(errs...)).
			With(
				slog.String("requires", requires),
				slog.String("version", o.version.String()),
			)
	}

	return nil
}

// Graph is a validated set of entries.
type Graph struct {
	entries []*Entry
	byName  map[string]*Entry
	names   []string
	logger  log.Logger
	cache   *lang.Cache
}

// New validates entries and returns a graph over them.
//
// Every entry must have a name and a type, and no two entries of type
// [TypeFunction] may share a name. All problems are reported together in an
// error matching [lang.ErrLoad].
func New(entries []*Entry, opts ...Option) (*Graph, error) {
	o := makeOptions(opts...)

	if err := validate(entries); err != nil {
		return nil, err
	}

	if o.cache == nil {
		cache, err := lang.NewCache(
			lang.DefaultCacheSize,
			lang.WithLogger(o.logger),
		)
		if err != nil {
			return nil, err
		}

		o.cache = cache
	}

	g := &Graph{
		entries: entries,
		byName:  make(map[string]*Entry, len(entries)),
		names:   make([]string, 0, len(entries)),
		logger:  o.logger,
		cache:   o.cache,
	}

	for _, e := range entries {
		if _, ok := g.byName[e.Name]; ok {
			continue
		}

		g.byName[e.Name] = e
		g.names = append(g.names, e.Name)
	}

	g.logger.Debug("graph loaded",
		slog.Int("entries", len(entries)),
		slog.Int("names", len(g.names)))

	return g, nil
}

func validate(entries []*Entry) error {
	var (
		problems  []error
		functions = make(map[string]struct{})
	)

	for i, e := range entries {
		where := e.ID
		if where == "" {
			where = fmt.Sprintf("#%d", i)
		}

		switch {
		case e.Name == "":
			problems = append(problems, ErrEmptyName.
				Wrap(fmt.Errorf("declaration %s", where)).
				With(slog.String("id", where)))

		case e.Type == "":
			problems = append(problems, ErrEmptyType.
				Wrap(fmt.Errorf("declaration %s", e.Name)).
				With(slog.String("id", where), slog.String("name", e.Name)))

		case e.Type == TypeFunction:
			if _, ok := functions[e.Name]; ok {
				problems = append(problems, ErrDuplicateFunction.
					Wrap(fmt.Errorf("function %s", e.Name)).
					With(slog.String("id", where), slog.String("name", e.Name)))

				continue
			}

			functions[e.Name] = struct{}{}
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return lang.ErrLoad.
		Wrap(errors.Join(problems...)).
		With(slog.Int("problems", len(problems)))
}

// Entries returns the entries in document order.
func (g *Graph) Entries() []*Entry { return g.entries }

// Names returns the distinct entry names in document order.
func (g *Graph) Names() []string { return g.names }

// Lookup returns the first entry named name.
func (g *Graph) Lookup(name string) (*Entry, bool) {
	e, ok := g.byName[name]

	return e, ok
}

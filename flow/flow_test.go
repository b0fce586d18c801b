package flow

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/lang"
	"github.com/ardnew/flowc/log"
	"github.com/ardnew/flowc/order"
)

const boxFlow = `<?xml version="1.0" encoding="UTF-8"?>
<Flow Namespace="Demo">
  <Node Id="1" Type="Variable" Name="area" Inherits="float32"/>
  <Node Id="2" Type="Variable" Name="width" Inherits="float32"/>
  <Node Id="3" Type="Variable" Name="height" Inherits="float32"/>
  <Node Id="4" Type="Data" Inherits="width * height"/>
  <Node Id="5" Type="Data" Inherits="4"/>
  <Node Id="6" Type="Data" Inherits="width / 2"/>
  <Node Id="7" Type="Variable" Name="scale" Inherits="Function" Arguments="(x : float32) y"/>
  <Node Id="8" Type="Entity" Name="Box" Inherits="Entity"/>
  <Node Id="9" Type="Data" Inherits="  "/>
  <Connection Source="4.Out" Target="1.Out"/>
  <Connection Source="5.Out" Target="2.Out"/>
  <Connection Source="6.Out" Target="3.Out"/>
  <Connection Source="8.Out" Target="1.Out"/>
  <Connection Source="9.Out" Target="2.Out"/>
</Flow>
`

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}

	return out
}

func mustGraph(t *testing.T, entries ...*Entry) *Graph {
	t.Helper()

	g, err := New(entries)
	require.NoError(t, err)

	return g
}

func variable(name string, sources ...string) *Entry {
	return &Entry{Name: name, Type: "float32", Sources: sources}
}

func TestLoadXML(t *testing.T) {
	g, err := LoadXML(context.Background(), strings.NewReader(boxFlow))
	require.NoError(t, err)

	want := []*Entry{
		{ID: "1", Name: "area", Type: "float32", Sources: []string{"width * height"}},
		{ID: "2", Name: "width", Type: "float32", Sources: []string{"4"}},
		{ID: "3", Name: "height", Type: "float32", Sources: []string{"width / 2"}},
		{ID: "7", Name: "scale", Type: TypeFunction, Arguments: []string{"x", "y"}},
	}

	assert.Equal(t, want, g.Entries())
	assert.Equal(t, []string{"area", "width", "height", "scale"}, g.Names())
}

func TestLoadXML_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadXML(ctx, strings.NewReader(`<Other/>`))
	assert.True(t, errors.Is(err, ErrNotFlow))

	_, err = LoadXML(ctx, strings.NewReader(`<Flow><Node`))
	assert.True(t, errors.Is(err, lang.ErrReadInput))

	_, err = LoadXML(ctx, strings.NewReader(
		`<Flow><Node Id="1" Type="Variable" Inherits="int"/></Flow>`))
	assert.True(t, errors.Is(err, lang.ErrLoad))
	assert.True(t, errors.Is(err, ErrEmptyName))

	_, err = LoadXML(ctx, strings.NewReader(`<Flow Requires="&gt;= 9.0"/>`),
		WithVersion(semver.MustParse("0.3.0")))
	assert.True(t, errors.Is(err, ErrVersion), "got %v", err)
}

func TestGraph_Order(t *testing.T) {
	g, err := LoadXML(context.Background(), strings.NewReader(boxFlow))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"width", "height", "area", "scale"},
		names(g.Order(context.Background())))
}

func TestGraph_Dependencies(t *testing.T) {
	a := variable("a", "b + c.d", "[c; b]")
	b := variable("b", "2")
	c := variable("c", "f(b) +")
	g := mustGraph(t, a, b, c)

	ctx := context.Background()

	assert.Equal(t, []*Entry{b, c}, g.Dependencies(ctx, a))
	assert.Empty(t, g.Dependencies(ctx, b))
	assert.Empty(t, g.Dependencies(ctx, c), "invalid source contributes nothing")
}

func TestGraph_DependenciesLogsSuggestions(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithLevel(log.LevelDebug))

	g, err := New([]*Entry{
		variable("width", "4"),
		variable("area", "wdth * 2"),
	}, WithLogger(logger))
	require.NoError(t, err)

	area, _ := g.Lookup("area")
	assert.Empty(t, g.Dependencies(context.Background(), area))

	out := buf.String()
	assert.Contains(t, out, "unresolved dependency")
	assert.Contains(t, out, `"wdth"`)
	assert.Contains(t, out, `"width"`)
}

func TestGraph_Suggest(t *testing.T) {
	g := mustGraph(t, variable("width"), variable("height"), variable("weight"))

	assert.Equal(t, []string{"width"}, g.Suggest("wdth"))
	assert.Empty(t, g.Suggest("zzz"))
}

func TestGraph_Cycle(t *testing.T) {
	g := mustGraph(t,
		variable("a", "b + 1"),
		variable("b", "a + 1"),
	)
	ctx := context.Background()

	assert.ElementsMatch(t, []string{"a", "b"}, names(g.Order(ctx)))

	_, err := g.OrderStrict(ctx)

	var cycle *order.CycleError[*Entry]
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"a", "b", "a"}, names(cycle.Cycle))
}

func TestGraph_OrderStrict(t *testing.T) {
	g := mustGraph(t,
		variable("c", "a + b"),
		variable("b", "a"),
		variable("a", "1"),
	)

	got, err := g.OrderStrict(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(got))
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]*Entry{
		{ID: "1", Type: "int"},
		{ID: "2", Name: "x"},
		{ID: "3", Name: "f", Type: TypeFunction},
		{ID: "4", Name: "f", Type: TypeFunction},
		{ID: "5", Name: "x", Type: "int"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, lang.ErrLoad))
	assert.True(t, errors.Is(err, ErrEmptyName))
	assert.True(t, errors.Is(err, ErrEmptyType))
	assert.True(t, errors.Is(err, ErrDuplicateFunction))
	assert.Contains(t, err.Error(), "function f")

	var le *lang.Error
	require.True(t, errors.As(err, &le))
	assert.Equal(t, int64(3), le.Attrs()[0].Value.Int64())
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"empty", "", nil},
		{"typed", "(x : float32)", []string{"x"}},
		{"mixed", "(x:float32) (y : Vector2) scale", []string{"x", "y", "scale"}},
		{"bare", "a b _c", []string{"a", "b", "_c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArguments(tt.src))
		})
	}
}

func TestWriteXML_RoundTrip(t *testing.T) {
	ctx := context.Background()

	g, err := LoadXML(ctx, strings.NewReader(boxFlow))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, g.Order(ctx), 2))

	back, err := LoadXML(ctx, &buf)
	require.NoError(t, err)

	assert.Equal(t, g.Order(ctx), back.Entries())
}

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
)

const shapes = `declarations:
  - name: area
    type: float32
    source: width * height
  - name: width
    type: float32
    source: "4"
  - name: height
    type: float32
    sources:
      - width / 2
  - name: scale
    type: Function
    arguments: "(factor : float32)"
    sources:
      - factor * 2
`

func TestLoadYAML(t *testing.T) {
	g, err := LoadYAML(context.Background(), strings.NewReader(shapes))
	require.NoError(t, err)

	want := []*Entry{
		{Name: "area", Type: "float32", Sources: []string{"width * height"}},
		{Name: "width", Type: "float32", Sources: []string{"4"}},
		{Name: "height", Type: "float32", Sources: []string{"width / 2"}},
		{
			Name:      "scale",
			Type:      TypeFunction,
			Sources:   []string{"factor * 2"},
			Arguments: []string{"factor"},
		},
	}

	assert.Equal(t, want, g.Entries())
}

func TestLoadYAML_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadYAML(ctx, strings.NewReader("declarations:\n  - name: a\n    kind: x\n"))
	assert.True(t, errors.Is(err, lang.ErrReadInput), "unknown field: %v", err)

	_, err = LoadYAML(ctx, strings.NewReader("declarations:\n  - name: a\n"))
	assert.True(t, errors.Is(err, ErrEmptyType))

	g, err := LoadYAML(ctx, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, g.Entries())
}

func TestLoadYAML_Requires(t *testing.T) {
	ctx := context.Background()
	v := semver.MustParse("0.3.0")

	tests := []struct {
		name     string
		requires string
		opts     []Option
		want     *lang.Error
	}{
		{"satisfied", ">= 0.2", []Option{WithVersion(v)}, nil},
		{"caret", "^0.3.0", []Option{WithVersion(v)}, nil},
		{"too old", ">= 1.0", []Option{WithVersion(v)}, ErrVersion},
		{"unchecked without version", ">= 1.0", nil, nil},
		{"invalid constraint", "not a version", []Option{WithVersion(v)}, lang.ErrReadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "requires: \"" + tt.requires + "\"\n" + shapes

			g, err := LoadYAML(ctx, strings.NewReader(doc), tt.opts...)
			if tt.want == nil {
				require.NoError(t, err)
				assert.Len(t, g.Entries(), 4)

				return
			}

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	ctx := context.Background()

	g, err := LoadYAML(ctx, strings.NewReader(shapes))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(ctx, &buf, g.Entries(), 2))

	back, err := LoadYAML(ctx, &buf)
	require.NoError(t, err, buf.String())

	assert.Equal(t, g.Entries(), back.Entries())
}

func TestGraph_Evaluate(t *testing.T) {
	ctx := context.Background()

	g, err := LoadYAML(ctx, strings.NewReader(shapes))
	require.NoError(t, err)

	results, err := g.Evaluate(ctx, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	got := make(map[string]any, len(results))
	for _, r := range results {
		require.NoError(t, r.Err, r.Entry.Name)
		got[r.Entry.Name] = r.Value
	}

	assert.Equal(t, map[string]any{
		"width":  4,
		"height": 2.0,
		"area":   8.0,
	}, got)
	assert.Equal(t, "width", results[0].Entry.Name)
}

func TestGraph_EvaluateFailures(t *testing.T) {
	ctx := context.Background()

	g := mustGraph(t,
		variable("bad", "1 +"),
		variable("uses", "bad * 2"),
		variable("multi", "k", "k + 1"),
	)

	results, err := g.Evaluate(ctx, map[string]any{"k": 1})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, errors.Is(results[0].Err, lang.ErrParse))
	assert.True(t, errors.Is(results[1].Err, lang.ErrCompile), "bad is unbound")
	assert.Equal(t, []any{1, 2}, results[2].Value)
}

func TestGraph_EvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := mustGraph(t, variable("a", "1"))

	_, err := g.Evaluate(ctx, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

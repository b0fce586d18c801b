package lang

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"qualified call uses root", "a.b.c(1,2)", []string{"a"}},
		{"keywords excluded", "true + 1", nil},
		{"keywords ignore case", "TRUE + Null + x", []string{"x"}},
		{"literals only", `1 + "two" * 3.0<m>`, nil},
		{
			"call arguments in order", "f(x, g(y), x) + y.z",
			[]string{"f", "x", "g", "y"},
		},
		{"generic arguments ignored", "list<T>", []string{"list"}},
		{"unit is not a name", "5<kg> * n", []string{"n"}},
		{"negated reference", "-speed", []string{"speed"}},
		{"qualified arguments", "max(a.min, b.max)", []string{"max", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(mustParse(t, tt.src)))
		})
	}
}

func TestExtract_CustomExclusions(t *testing.T) {
	d := mustParse(t, "true + x + Y")

	assert.Equal(t, []string{"true"}, Extract(d, "x", "y"))
}

func TestExtract_PartialTreeSkipsMissingNames(t *testing.T) {
	d, diags := ParseString(context.Background(), "a.(b)")

	require.NotEmpty(t, diags)
	assert.NotContains(t, Extract(d), "")
}

func TestParseNameList(t *testing.T) {
	tests := []struct {
		src  string
		want []string
		ok   bool
	}{
		{"[a; b; c]", []string{"a", "b", "c"}, true},
		{"[a]", []string{"a"}, true},
		{"  [ a ;b; ]  ", []string{"a", "b"}, true},
		{"[a; a; b]", []string{"a", "b"}, true},
		{"[x_1;y2]", []string{"x_1", "y2"}, true},
		{"[]", nil, false},
		{"[a b]", nil, false},
		{"[a, b]", nil, false},
		{"a; b", nil, false},
		{"[a; b] + c", nil, false},
		{"f([a])", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, ok := ParseNameList(tt.src)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDependencies(t *testing.T) {
	ctx := context.Background()

	names, err := Dependencies(ctx, "[x; y]")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names)

	names, err = Dependencies(ctx, "a + b.c(null)")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	names, err = Dependencies(ctx, "1 +")
	require.Error(t, err)
	assert.Nil(t, names)
	assert.True(t, errors.Is(err, ErrParse))
}

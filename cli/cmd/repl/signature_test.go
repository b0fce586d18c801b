package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/flowc/flow"
)

func TestArgumentIndex(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		fn     string
		want   int
	}{
		{"no call", "scale", 5, "scale", -1},
		{"first argument", "scale(", 6, "scale", 0},
		{"first argument typed", "scale(w", 7, "scale", 0},
		{"second argument", "scale(w, ", 9, "scale", 1},
		{"nested closed call", "scale(other(a, b), ", 19, "scale", 1},
		{"inside nested call", "scale(other(a, ", 15, "scale", -1},
		{"inside nested call by name", "scale(other(a, ", 15, "other", 1},
		{"space before paren", "scale (", 7, "scale", 0},
		{"grouping paren", "(a + ", 5, "scale", -1},
		{"after close", "scale(a) + ", 11, "scale", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, argumentIndex(tt.input, tt.cursor, tt.fn))
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	fn := &flow.Entry{
		Name:      "scale",
		Type:      flow.TypeFunction,
		Arguments: []string{"factor", "offset"},
		Sources:   []string{"factor * 2 + offset"},
	}

	hint := renderSignatureHint(fn, 1)
	for _, want := range []string{"scale", "factor", "offset", "Function", "factor * 2 + offset"} {
		assert.Contains(t, hint, want)
	}

	v := &flow.Entry{Name: "width", Type: "float32"}

	hint = renderSignatureHint(v, -1)
	assert.Contains(t, hint, "width")
	assert.Contains(t, hint, "float32")
	assert.NotContains(t, hint, "(")
}

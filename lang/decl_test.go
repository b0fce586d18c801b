package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclaration_String(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+2*3", "( 1 + ( 2 * 3 ) )"},
		{"a.b.c(1, 2)", "a.b.c(1, 2)"},
		{"5<kg>", "5<kg>"},
		{"list<int>.len()", "list<int>.len()"},
		{"f()", "f()"},
		{`"s" == 'c'`, `( "s" == 'c' )`},
		{"-x", "( 0 - x )"},
		{"(a) > b % 2", "( a > ( b % 2 ) )"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.src).String())
		})
	}
}

func TestDeclaration_StringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"a.b.c(1, 2)", "5<kg>", "ns.make<T>(x, y)", "f(g(h()))",
	} {
		d := mustParse(t, src)
		assert.True(t, Equal(d, mustParse(t, d.String())), src)
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, "a.b(1, x + 2)")

	assert.True(t, Equal(a, mustParse(t, "a.b(1, x+2)")))
	assert.False(t, Equal(a, mustParse(t, "a.b(1, x - 2)")))
	assert.False(t, Equal(a, mustParse(t, "c.b(1, x + 2)")))
	assert.False(t, Equal(a, mustParse(t, "a.b(1)")))
	assert.False(t, Equal(a, mustParse(t, "a.b")))
	assert.False(t, Equal(mustParse(t, "5<m>"), mustParse(t, "5")))
	assert.False(t, Equal(mustParse(t, "x"), mustParse(t, "1")))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestMatch(t *testing.T) {
	kind := func(d Declaration) string {
		return Match(d,
			func(*Literal) string { return "literal" },
			func(*BinaryOp) string { return "binary" },
			func(*Reference) string { return "reference" },
		)
	}

	assert.Equal(t, "literal", kind(mustParse(t, "1")))
	assert.Equal(t, "binary", kind(mustParse(t, "1-2")))
	assert.Equal(t, "reference", kind(mustParse(t, "a.b")))
	assert.Empty(t, kind(nil))
}

func TestReference_RootAndPath(t *testing.T) {
	r, ok := mustParse(t, "a.b.c").(*Reference)

	assert.True(t, ok)
	assert.Equal(t, "a", r.Root().Name)
	assert.Nil(t, r.Root().Qualifier)
	assert.Equal(t, []string{"a", "b", "c"}, r.Path())

	x := ref("x")
	assert.Same(t, x, x.Root())
}

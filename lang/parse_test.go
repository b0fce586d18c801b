package lang

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/lang/token"
)

func intLit(raw string) *Literal   { return &Literal{Kind: LiteralInteger, Raw: raw} }
func floatLit(raw string) *Literal { return &Literal{Kind: LiteralFloat, Raw: raw} }
func ref(name string) *Reference   { return &Reference{Name: name} }

func bin(op Operator, l, r Declaration) *BinaryOp {
	return &BinaryOp{Op: op, Left: l, Right: r}
}

func qualified(names ...string) *Reference {
	var r *Reference
	for _, n := range names {
		r = &Reference{Name: n, Qualifier: r}
	}

	return r
}

func mustParse(t *testing.T, src string) Declaration {
	t.Helper()

	d, diags := ParseString(context.Background(), src)
	require.Empty(t, diags, "unexpected diagnostics for %q", src)

	return d
}

func TestParse_TokenStream_UnitLiteral(t *testing.T) {
	s := token.NewSlice(
		token.New(token.Int, "5"),
		token.New(token.Less, ""),
		token.New(token.Ident, "kg"),
		token.New(token.Greater, ""),
	)

	d, diags := Parse(context.Background(), s)

	assert.Empty(t, diags)
	assert.Equal(t, &Literal{Kind: LiteralInteger, Raw: "5", Unit: "kg"}, d)
}

func TestParseString_Valid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Declaration
	}{
		{"integer", "42", intLit("42")},
		{"float", "2.5", floatLit("2.5")},
		{"float unit", "2.5<m>", &Literal{Kind: LiteralFloat, Raw: "2.5", Unit: "m"}},
		{"string", `"hi"`, &Literal{Kind: LiteralString, Raw: `"hi"`}},
		{"char", `'c'`, &Literal{Kind: LiteralChar, Raw: `'c'`}},
		{"identifier", "x", ref("x")},
		{
			"multiplication binds tighter", "1+2*3",
			bin(OpAdd, intLit("1"), bin(OpMul, intLit("2"), intLit("3"))),
		},
		{
			"multiplication first", "1*2+3",
			bin(OpAdd, bin(OpMul, intLit("1"), intLit("2")), intLit("3")),
		},
		{
			"left associative", "a+b+c",
			bin(OpAdd, bin(OpAdd, ref("a"), ref("b")), ref("c")),
		},
		{
			"left associative mul", "a/b%c",
			bin(OpMod, bin(OpDiv, ref("a"), ref("b")), ref("c")),
		},
		{
			"parentheses", "(1+2)*3",
			bin(OpMul, bin(OpAdd, intLit("1"), intLit("2")), intLit("3")),
		},
		{
			"comparison lowest", "x*2 == y+1",
			bin(OpEqual,
				bin(OpMul, ref("x"), intLit("2")),
				bin(OpAdd, ref("y"), intLit("1"))),
		},
		{
			"relational after parenthesis", "(a) < b",
			bin(OpLess, ref("a"), ref("b")),
		},
		{
			"relational after call", "f() > 0",
			bin(OpGreater, &Reference{Name: "f", IsCall: true}, intLit("0")),
		},
		{
			"not equal string", `"s" != name`,
			bin(OpNotEqual, &Literal{Kind: LiteralString, Raw: `"s"`}, ref("name")),
		},
		{
			"qualified call", "a.b.c(1,2)",
			&Reference{
				Name:      "c",
				IsCall:    true,
				Args:      []Declaration{intLit("1"), intLit("2")},
				Qualifier: qualified("a", "b"),
			},
		},
		{"empty call", "f()", &Reference{Name: "f", IsCall: true}},
		{
			"generic", "list<int>",
			&Reference{Name: "list", Generic: ref("int")},
		},
		{
			"nested generic call", "make<map<K>>(n)",
			&Reference{
				Name:    "make",
				Generic: &Reference{Name: "map", Generic: ref("K")},
				IsCall:  true,
				Args:    []Declaration{ref("n")},
			},
		},
		{"negative integer", "-5", intLit("-5")},
		{"negative float unit", "-1.5<s>", &Literal{Kind: LiteralFloat, Raw: "-1.5", Unit: "s"}},
		{"negated reference", "-x", bin(OpSub, intLit("0"), ref("x"))},
		{"unary plus", "+x", ref("x")},
		{
			"subtract negative", "a - -1",
			bin(OpSub, ref("a"), intLit("-1")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.src)
			assert.True(t, Equal(tt.want, got), "want %s, got %s", tt.want, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseString_Diagnostics(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		codes []Code
		lines []string
	}{
		{
			"trailing operator", "1 +",
			[]Code{CodeInvalidPrimary},
			[]string{"-- line 1 col 4: invalid primary"},
		},
		{
			"trailing tokens", "1 2",
			[]Code{Expected(token.EOF)},
			[]string{"-- line 1 col 3: EOF expected"},
		},
		{
			"comparison of identifiers is a generic", "a < b",
			[]Code{Expected(token.Greater)},
			[]string{`-- line 1 col 6: ">" expected`},
		},
		{
			"empty input", "",
			[]Code{CodeInvalidExpression},
			[]string{"-- line 1 col 1: invalid expression"},
		},
		{
			"unit must be an identifier", "1<2>",
			[]Code{Expected(token.Ident)},
			[]string{"-- line 1 col 3: ident expected"},
		},
		{
			"unclosed parenthesis", "(a",
			[]Code{Expected(token.RParen)},
			[]string{`-- line 1 col 3: ")" expected`},
		},
		{
			"two reports far apart", "f(1 2) 3",
			[]Code{Expected(token.RParen), Expected(token.EOF)},
			[]string{
				`-- line 1 col 5: ")" expected`,
				"-- line 1 col 8: EOF expected",
			},
		},
		{
			"second report suppressed", "1 + )",
			[]Code{CodeInvalidPrimary},
			[]string{"-- line 1 col 5: invalid primary"},
		},
		{
			"invalid rune", "a $",
			[]Code{Expected(token.EOF)},
			[]string{"-- line 1 col 3: EOF expected"},
		},
		{
			"unit with generic", "5<m<s>>",
			[]Code{CodeSemantic},
			[]string{"-- line 1 col 7: unit must be a plain identifier"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, diags := ParseString(context.Background(), tt.src)

			require.NotNil(t, d, "a tree is always returned")
			require.Equal(t, len(tt.codes), diags.Count(), "diagnostics: %v", diags)

			for i, diag := range diags {
				assert.Equal(t, tt.codes[i], diag.Code)
				assert.Equal(t, tt.lines[i], diag.Error())
			}
		})
	}
}

func TestParseString_TrailingOperator_KeepsPartialTree(t *testing.T) {
	d, diags := ParseString(context.Background(), "1 +")

	require.NotEmpty(t, diags)

	op, ok := d.(*BinaryOp)
	require.True(t, ok, "expected BinaryOp, got %T", d)
	assert.Equal(t, OpAdd, op.Op)
	assert.Equal(t, intLit("1"), op.Left)
	assert.Equal(t, &Literal{Kind: LiteralUnknown}, op.Right)
	assert.Equal(t, "( 1 + ? )", d.String())
}

func TestParseString_UnitWithGeneric_KeepsUnitName(t *testing.T) {
	d, diags := ParseString(context.Background(), "5<m<s>>")

	require.Len(t, diags, 1)
	assert.True(t, diags[0].Semantic())
	assert.Equal(t, &Literal{Kind: LiteralInteger, Raw: "5", Unit: "m"}, d)
}

func TestParseString_EmptyArguments_Recover(t *testing.T) {
	d, diags := ParseString(context.Background(), "f(,)")

	require.Len(t, diags, 1)
	assert.Equal(t, CodeInvalidExpression, diags[0].Code)

	r, ok := d.(*Reference)
	require.True(t, ok)
	assert.True(t, r.IsCall)
	assert.Len(t, r.Args, 2)
}

func TestParseString_Deterministic(t *testing.T) {
	for _, src := range []string{"a.b(c, 1<kg>) * -d + e", "1 + ) (", "x<y"} {
		a, da := ParseString(context.Background(), src)
		b, db := ParseString(context.Background(), src)

		assert.True(t, Equal(a, b), "trees differ for %q", src)
		assert.Equal(t, da, db)
	}
}

func TestParseString_Terminates(t *testing.T) {
	inputs := []string{
		")))", "((((", "<<<>>>", ",,,", "a.b.", "a<", "f(", "1 + + + 2",
		"'", `"unterminated`, "....", "- - -", "a..b", "==",
		strings.Repeat("(", 200) + "x",
	}

	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			d, diags := ParseString(context.Background(), src)

			assert.NotNil(t, d)
			assert.NotEmpty(t, diags)
		})
	}
}

func TestParseReader(t *testing.T) {
	d, diags, err := ParseReader(context.Background(), strings.NewReader("a + 1"))

	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, "( a + 1 )", d.String())
}

func BenchmarkParseString(b *testing.B) {
	ctx := context.Background()
	src := "ns.scale<float>(x, 2.5<m>) * (y + -z) == limit(a, b, c) - 1"

	b.ResetTimer()

	for b.Loop() {
		_, _ = ParseString(ctx, src)
	}
}

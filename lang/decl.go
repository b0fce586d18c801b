package lang

import (
	"strings"
)

// Declaration is the syntax tree of one parsed expression.
//
// The set of implementations is closed: [*Literal], [*BinaryOp], and
// [*Reference]. Use [Match] to handle every variant with compile-time
// exhaustiveness. Trees are never mutated after [Parse] returns them.
type Declaration interface {
	// String returns the canonical rendering used by code emitters.
	String() string

	declaration()
}

// LiteralKind classifies a [Literal].
type LiteralKind int

const (
	// LiteralUnknown marks a placeholder built in place of an operand that
	// failed to parse.
	LiteralUnknown LiteralKind = iota
	LiteralInteger
	LiteralFloat
	LiteralString
	LiteralChar
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	case LiteralChar:
		return "char"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether literals of kind k may carry a unit.
func (k LiteralKind) IsNumeric() bool {
	return k == LiteralInteger || k == LiteralFloat
}

// Literal is a constant value. Raw holds the source text, including quotes
// for strings and chars. Unit is the identifier of a numeric unit suffix
// such as the kg in 5<kg>, or empty.
type Literal struct {
	Raw  string
	Unit string
	Kind LiteralKind
}

// Operator is a binary operator symbol.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSub      Operator = "-"
	OpMul      Operator = "*"
	OpDiv      Operator = "/"
	OpMod      Operator = "%"
	OpEqual    Operator = "=="
	OpNotEqual Operator = "!="
	OpLess     Operator = "<"
	OpGreater  Operator = ">"
)

// BinaryOp applies Op to exactly two operands.
type BinaryOp struct {
	Left  Declaration
	Right Declaration
	Op    Operator
}

// Reference is a possibly qualified, possibly generic name, optionally
// invoked as a call.
//
// a.b.c is represented as c with Qualifier b, whose Qualifier is a.
// Args is empty unless IsCall.
type Reference struct {
	Qualifier *Reference
	Generic   *Reference
	Name      string
	Args      []Declaration
	IsCall    bool
}

func (*Literal) declaration()   {}
func (*BinaryOp) declaration()  {}
func (*Reference) declaration() {}

// Root returns the outermost qualifier of r, or r itself if unqualified.
func (r *Reference) Root() *Reference {
	for r.Qualifier != nil {
		r = r.Qualifier
	}

	return r
}

// Path returns the qualified name segments of r from the root.
func (r *Reference) Path() []string {
	var path []string
	for q := r; q != nil; q = q.Qualifier {
		path = append(path, q.Name)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// Match calls the handler for the concrete variant of d and returns its
// result. A nil d yields the zero value of R.
func Match[R any](
	d Declaration,
	literal func(*Literal) R,
	binary func(*BinaryOp) R,
	reference func(*Reference) R,
) R {
	switch v := d.(type) {
	case *Literal:
		return literal(v)
	case *BinaryOp:
		return binary(v)
	case *Reference:
		return reference(v)
	default:
		var zero R

		return zero
	}
}

func (l *Literal) String() string {
	if l.Kind == LiteralUnknown {
		return "?"
	}

	if l.Unit == "" {
		return l.Raw
	}

	return l.Raw + "<" + l.Unit + ">"
}

func (b *BinaryOp) String() string {
	return "( " + render(b.Left) + " " + string(b.Op) + " " + render(b.Right) + " )"
}

func (r *Reference) String() string {
	var sb strings.Builder

	r.write(&sb)

	return sb.String()
}

func (r *Reference) write(sb *strings.Builder) {
	if r.Qualifier != nil {
		r.Qualifier.write(sb)
		sb.WriteByte('.')
	}

	sb.WriteString(r.Name)

	if r.Generic != nil {
		sb.WriteByte('<')
		r.Generic.write(sb)
		sb.WriteByte('>')
	}

	if r.IsCall {
		sb.WriteByte('(')

		for i, arg := range r.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(render(arg))
		}

		sb.WriteByte(')')
	}
}

func render(d Declaration) string {
	if d == nil {
		return "?"
	}

	return d.String()
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Declaration) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return Match(a,
		func(x *Literal) bool {
			y, ok := b.(*Literal)

			return ok && *x == *y
		},
		func(x *BinaryOp) bool {
			y, ok := b.(*BinaryOp)

			return ok && x.Op == y.Op &&
				Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
		},
		func(x *Reference) bool {
			y, ok := b.(*Reference)

			return ok && equalRef(x, y)
		},
	)
}

func equalRef(x, y *Reference) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}

	if x.Name != y.Name || x.IsCall != y.IsCall || len(x.Args) != len(y.Args) {
		return false
	}

	for i := range x.Args {
		if !Equal(x.Args[i], y.Args[i]) {
			return false
		}
	}

	return equalRef(x.Qualifier, y.Qualifier) && equalRef(x.Generic, y.Generic)
}

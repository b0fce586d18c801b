package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/flowc/lang/lexer"
	"github.com/ardnew/flowc/lang/token"
	"github.com/ardnew/flowc/log"
)

// minErrDist is the number of tokens that must be consumed after a
// diagnostic before another one is reported.
const minErrDist = 2

// Option configures parsing.
type Option func(*options)

type options struct {
	logger   log.Logger
	filename string
}

// WithLogger sets the logger used for parser tracing.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFilename names the source in log output.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
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

// Parse parses exactly one expression followed by end of input from s.
//
// Parse always returns a tree. The tree is reliable only when the returned
// Diagnostics is empty; otherwise it may contain placeholder literals of
// kind [LiteralUnknown] where operands could not be parsed.
func Parse(
	ctx context.Context,
	s token.Stream,
	opts ...Option,
) (Declaration, Diagnostics) {
	o := makeOptions(opts...)
	p := &parser{
		ctx:     ctx,
		scan:    s,
		errDist: minErrDist,
		logger:  o.logger,
	}

	p.get()
	d := p.expression()
	p.expect(token.EOF, setOf(token.EOF))

	p.logger.TraceContext(ctx, "parse complete",
		slog.String("file", o.filename),
		slog.String("decl", render(d)),
		slog.Int("diagnostics", len(p.diags)))

	return d, p.diags
}

// ParseString lexes and parses src.
func ParseString(
	ctx context.Context,
	src string,
	opts ...Option,
) (Declaration, Diagnostics) {
	o := makeOptions(opts...)

	return Parse(ctx, lexer.New(src,
		lexer.WithLogger(o.logger),
		lexer.WithFilename(o.filename),
	), opts...)
}

// ParseReader reads all of r and parses it as one expression.
// The returned error is non-nil only if r could not be read.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Declaration, Diagnostics, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	d, diags := ParseString(ctx, string(data), opts...)

	return d, diags, nil
}

// kindSet is a bit set of token kinds.
type kindSet uint32

func setOf(kinds ...token.Kind) kindSet {
	var s kindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}

	return s
}

func (s kindSet) has(k token.Kind) bool {
	return k >= 0 && int(k) < token.NumKinds && s&(1<<uint(k)) != 0
}

func (s kindSet) with(kinds ...token.Kind) kindSet { return s | setOf(kinds...) }

// FIRST and synchronization sets. EOF belongs to every sync set, so error
// recovery always terminates.
var (
	firstLiteral = setOf(token.Int, token.Float, token.Char, token.String)
	firstPrimary = firstLiteral.with(token.LParen, token.Ident)
	firstUnary   = firstPrimary.with(token.Plus, token.Minus)

	relOps = setOf(token.Equal, token.NotEqual, token.Less, token.Greater)
	mulOps = setOf(token.Star, token.Slash, token.Percent)
	addOps = setOf(token.Plus, token.Minus)

	syncExpr    = setOf(token.EOF, token.RParen, token.Comma)
	syncAdd     = syncExpr | relOps
	syncMul     = syncAdd | addOps
	syncPrimary = syncMul | mulOps
	syncGeneric = syncPrimary.with(token.Greater)
)

// parser is a single-lookahead recursive-descent parser.
// t is the last consumed token and la the lookahead.
type parser struct {
	ctx     context.Context //nolint:containedctx
	scan    token.Stream
	logger  log.Logger
	diags   Diagnostics
	t, la   token.Token
	errDist int
}

func (p *parser) get() {
	p.t = p.la
	p.la = p.scan.Next()
	p.errDist++
}

// synErr reports code at the lookahead unless an error was reported fewer
// than minErrDist tokens ago. The distance is reset either way.
func (p *parser) synErr(code Code) {
	if p.errDist >= minErrDist {
		p.report(Diagnostic{Pos: p.la.Pos(), Code: code, Msg: code.String()})
	} else {
		p.logger.TraceContext(p.ctx, "diagnostic suppressed",
			slog.String("msg", code.String()),
			slog.Int("line", p.la.Line),
			slog.Int("col", p.la.Column))
	}

	p.errDist = 0
}

// semErr reports msg at the last consumed token, subject to the same
// distance rule as synErr.
func (p *parser) semErr(msg string) {
	if p.errDist >= minErrDist {
		p.report(Diagnostic{Pos: p.t.Pos(), Code: CodeSemantic, Msg: msg})
	}

	p.errDist = 0
}

func (p *parser) report(d Diagnostic) {
	p.logger.DebugContext(p.ctx, "diagnostic", slog.Any("diagnostic", d))
	p.diags = append(p.diags, d)
}

// skip discards tokens until the lookahead is in sync.
func (p *parser) skip(sync kindSet) {
	for !sync.has(p.la.Kind) {
		p.logger.TraceContext(p.ctx, "skip", slog.String("token", p.la.String()))
		p.get()
	}
}

// expect consumes a token of kind k. On mismatch it reports, skips to
// sync or k, and consumes k if found. It reports whether k was consumed.
func (p *parser) expect(k token.Kind, sync kindSet) bool {
	if p.la.Kind == k {
		p.get()

		return true
	}

	p.synErr(Expected(k))
	p.skip(sync.with(k))

	if p.la.Kind == k {
		p.get()

		return true
	}

	return false
}

func placeholder() *Literal { return &Literal{Kind: LiteralUnknown} }

// expression := condExpr.
func (p *parser) expression() Declaration {
	if !firstUnary.has(p.la.Kind) {
		p.synErr(CodeInvalidExpression)
		p.skip(syncExpr)

		return placeholder()
	}

	return p.condExpr()
}

// condExpr := addExpr (('==' | '!=' | '<' | '>') addExpr)*.
func (p *parser) condExpr() Declaration {
	left := p.addExpr()

	for relOps.has(p.la.Kind) {
		p.get()
		op := Operator(p.t.Kind.String())
		left = &BinaryOp{Op: op, Left: left, Right: p.addExpr()}
	}

	return left
}

// addExpr := mulExpr (('+' | '-') mulExpr)*.
func (p *parser) addExpr() Declaration {
	left := p.mulExpr()

	for addOps.has(p.la.Kind) {
		p.get()
		op := Operator(p.t.Kind.String())
		left = &BinaryOp{Op: op, Left: left, Right: p.mulExpr()}
	}

	return left
}

// mulExpr := unary (('*' | '/' | '%') unary)*.
func (p *parser) mulExpr() Declaration {
	left := p.unary()

	for mulOps.has(p.la.Kind) {
		p.get()
		op := Operator(p.t.Kind.String())
		left = &BinaryOp{Op: op, Left: left, Right: p.unary()}
	}

	return left
}

// unary := ('+' | '-')? primary.
//
// A negated numeric literal keeps the sign in its text. Any other negated
// operand becomes 0 - operand.
func (p *parser) unary() Declaration {
	switch p.la.Kind {
	case token.Plus:
		p.get()

		return p.primary()

	case token.Minus:
		p.get()

		x := p.primary()
		if lit, ok := x.(*Literal); ok && lit.Kind.IsNumeric() {
			lit.Raw = "-" + lit.Raw

			return lit
		}

		return &BinaryOp{
			Op:    OpSub,
			Left:  &Literal{Kind: LiteralInteger, Raw: "0"},
			Right: x,
		}

	default:
		return p.primary()
	}
}

// primary := literal | '(' expression ')' | reference.
func (p *parser) primary() Declaration {
	switch {
	case firstLiteral.has(p.la.Kind):
		return p.literal()

	case p.la.Kind == token.LParen:
		p.get()
		d := p.expression()
		p.expect(token.RParen, syncPrimary)

		return d

	case p.la.Kind == token.Ident:
		return p.reference()

	default:
		p.synErr(CodeInvalidPrimary)
		p.skip(syncPrimary)

		return placeholder()
	}
}

// literal := (Float | Integer) ['<' template '>'] | Char | String.
func (p *parser) literal() Declaration {
	switch p.la.Kind {
	case token.Int, token.Float:
		p.get()

		lit := &Literal{Kind: LiteralInteger, Raw: p.t.Text}
		if p.t.Kind == token.Float {
			lit.Kind = LiteralFloat
		}

		if p.la.Kind == token.Less {
			p.get()
			unit := p.template()
			p.expect(token.Greater, syncGeneric)

			if unit.Generic != nil {
				p.semErr("unit must be a plain identifier")
			}

			lit.Unit = unit.Name
		}

		return lit

	case token.Char:
		p.get()

		return &Literal{Kind: LiteralChar, Raw: p.t.Text}

	case token.String:
		p.get()

		return &Literal{Kind: LiteralString, Raw: p.t.Text}

	default:
		p.synErr(CodeInvalidLiteral)
		p.skip(syncPrimary)

		return placeholder()
	}
}

// template := ident ['<' template '>'].
//
// A '<' directly after an identifier always opens a generic argument.
// The returned reference has an empty Name if no identifier was found.
func (p *parser) template() *Reference {
	ref := &Reference{}

	if p.expect(token.Ident, syncGeneric) {
		ref.Name = p.t.Text
	}

	if p.la.Kind == token.Less {
		p.get()
		ref.Generic = p.template()
		p.expect(token.Greater, syncGeneric)
	}

	return ref
}

// reference := template ('.' template)* ['(' [expression (',' expression)*] ')'].
func (p *parser) reference() Declaration {
	ref := p.template()

	for p.la.Kind == token.Dot {
		p.get()

		next := p.template()
		next.Qualifier = ref
		ref = next
	}

	if p.la.Kind == token.LParen {
		p.get()

		ref.IsCall = true

		if p.la.Kind != token.RParen {
			ref.Args = append(ref.Args, p.expression())

			for p.la.Kind == token.Comma {
				p.get()
				ref.Args = append(ref.Args, p.expression())
			}
		}

		p.expect(token.RParen, syncPrimary)
	}

	return ref
}

// Package lang parses flow declaration expressions and extracts the names
// they depend on.
//
// # Grammar
//
// From highest to lowest binding strength:
//
//	literal   → (Float | Integer) [ '<' template '>' ] | Char | String
//	template  → ident [ '<' template '>' ]
//	reference → template ('.' template)* [ '(' [ expr (',' expr)* ] ')' ]
//	primary   → literal | '(' expr ')' | reference
//	unary     → [ '+' | '-' ] primary
//	mulExpr   → unary (('*' | '/' | '%') unary)*
//	addExpr   → mulExpr (('+' | '-') mulExpr)*
//	condExpr  → addExpr (('==' | '!=' | '<' | '>') addExpr)*
//	expr      → condExpr
//
// Operators at one level associate to the left, so a-b-c is (a-b)-c.
//
// The '<' and '>' glyphs are resolved by the active production. After a
// number they delimit a unit (5<kg>), after an identifier they delimit a
// generic argument (list<int>), and elsewhere they compare. As a
// consequence a < b does not compare: it is an unterminated generic. Write
// (a) < b instead.
//
// # Diagnostics
//
// Parsing never fails outright. [Parse] returns a best-effort tree together
// with [Diagnostics]; callers must check [Diagnostics.Count] before trusting
// the tree. After a diagnostic, further diagnostics are suppressed until at
// least two tokens have been consumed, and the parser resynchronizes by
// skipping to a token that may legally follow the failing production.
//
// # Dependencies
//
// [Extract] returns the root names an expression reads, so a.b.c(d) depends
// on a and d. [Dependencies] also accepts a bracketed list such as [a; b]
// in place of an expression.
package lang

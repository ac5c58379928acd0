// Package ast defines the expression tree of the formula language.
//
// The set of expressions is closed: Literal, QuotedName, Variable, Grouping,
// Unary, Binary, Call and Assign. Nodes are immutable values. A node owns its
// sub-expressions and the same sub-expression must not be inserted in two
// parents.
//
// Behaviour is added to the tree from the outside with a Visitor and Accept.
package ast

import (
	"fmt"
	"slices"

	"github.com/peternovig/formulae/formula/token"
)

type Kind int8

const (
	KindLiteral Kind = iota + 1
	KindQuotedName
	KindVariable
	KindGrouping
	KindUnary
	KindBinary
	KindCall
	KindAssign
)

var kindNames = map[Kind]string{
	KindLiteral:    "Literal",
	KindQuotedName: "QuotedName",
	KindVariable:   "Variable",
	KindGrouping:   "Grouping",
	KindUnary:      "Unary",
	KindBinary:     "Binary",
	KindCall:       "Call",
	KindAssign:     "Assign",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

type Expr interface {
	fmt.Stringer
	Kind() Kind
	Accept(Visitor[any]) any

	exprNode()
}

type Literal struct {
	value     Value
	lexeme    string
	hasLexeme bool
}

func NewLiteral(value Value) Literal {
	return Literal{
		value: value,
	}
}

// NewLiteralWithLexeme keeps the source text the value was read from.
func NewLiteralWithLexeme(value Value, lexeme string) Literal {
	return Literal{
		value:     value,
		lexeme:    lexeme,
		hasLexeme: true,
	}
}

func (l Literal) Value() Value {
	return l.value
}

func (l Literal) Lexeme() (string, bool) {
	return l.lexeme, l.hasLexeme
}

func (Literal) Kind() Kind {
	return KindLiteral
}

func (l Literal) String() string {
	return Dump(l)
}

func (Literal) exprNode() {}

// QuotedName is a back-quoted name: `@weird name!!`.
type QuotedName struct {
	name token.Token
}

func NewQuotedName(name token.Token) QuotedName {
	return QuotedName{
		name: name,
	}
}

func (q QuotedName) Token() token.Token {
	return q.name
}

func (QuotedName) Kind() Kind {
	return KindQuotedName
}

func (q QuotedName) String() string {
	return Dump(q)
}

func (QuotedName) exprNode() {}

type Variable struct {
	name     token.Token
	level    token.Token
	hasLevel bool
}

func NewVariable(name token.Token) Variable {
	return Variable{
		name: name,
	}
}

// NewQualifiedVariable creates a reference resolved in the scope named by
// level, for example the sheet of Sheet1!A1.
func NewQualifiedVariable(name, level token.Token) Variable {
	return Variable{
		name:     name,
		level:    level,
		hasLevel: true,
	}
}

func (v Variable) Name() token.Token {
	return v.name
}

func (v Variable) Level() (token.Token, bool) {
	return v.level, v.hasLevel
}

func (Variable) Kind() Kind {
	return KindVariable
}

func (v Variable) String() string {
	return Dump(v)
}

func (Variable) exprNode() {}

type Grouping struct {
	expr Expr
}

func NewGrouping(expr Expr) Grouping {
	return Grouping{
		expr: expr,
	}
}

func (g Grouping) Expr() Expr {
	return g.expr
}

func (Grouping) Kind() Kind {
	return KindGrouping
}

func (g Grouping) String() string {
	return Dump(g)
}

func (Grouping) exprNode() {}

type Unary struct {
	op    token.Token
	right Expr
}

func NewUnary(oper token.Token, right Expr) Unary {
	return Unary{
		op:    oper,
		right: right,
	}
}

func (u Unary) Operator() token.Token {
	return u.op
}

func (u Unary) Right() Expr {
	return u.right
}

func (Unary) Kind() Kind {
	return KindUnary
}

func (u Unary) String() string {
	return Dump(u)
}

func (Unary) exprNode() {}

type Binary struct {
	left  Expr
	op    token.Token
	right Expr
}

func NewBinary(left Expr, oper token.Token, right Expr) Binary {
	return Binary{
		left:  left,
		op:    oper,
		right: right,
	}
}

func (b Binary) Left() Expr {
	return b.left
}

func (b Binary) Operator() token.Token {
	return b.op
}

func (b Binary) Right() Expr {
	return b.right
}

func (Binary) Kind() Kind {
	return KindBinary
}

func (b Binary) String() string {
	return Dump(b)
}

func (Binary) exprNode() {}

type Call struct {
	callee Expr
	args   []Expr
}

// NewCall copies args: the call owns its argument list.
func NewCall(callee Expr, args ...Expr) Call {
	return Call{
		callee: callee,
		args:   slices.Clone(args),
	}
}

func (c Call) Callee() Expr {
	return c.callee
}

func (c Call) Args() []Expr {
	return slices.Clone(c.args)
}

func (c Call) Arg(i int) Expr {
	return c.args[i]
}

func (c Call) NumArgs() int {
	return len(c.args)
}

func (Call) Kind() Kind {
	return KindCall
}

func (c Call) String() string {
	return Dump(c)
}

func (Call) exprNode() {}

// Assign is a named argument when it appears in the argument list of a
// Call. Anywhere else it parses but has no meaning.
type Assign struct {
	name  token.Token
	value Expr
}

func NewAssign(name token.Token, value Expr) Assign {
	return Assign{
		name:  name,
		value: value,
	}
}

func (a Assign) Name() token.Token {
	return a.name
}

func (a Assign) Value() Expr {
	return a.value
}

func (Assign) Kind() Kind {
	return KindAssign
}

func (a Assign) String() string {
	return Dump(a)
}

func (Assign) exprNode() {}

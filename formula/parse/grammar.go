package parse

import (
	"fmt"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/token"
)

const (
	powLowest = iota
	powAssign
	powCmp
	powConcat
	powAdd
	powMul
	powPow
	powUnary
	powRange
	powCall
)

var defaultBindings = map[op.Op]int{
	op.Assign:   powAssign,
	op.Add:      powAdd,
	op.Sub:      powAdd,
	op.Mul:      powMul,
	op.Div:      powMul,
	op.Pow:      powPow,
	op.Concat:   powConcat,
	op.Eq:       powCmp,
	op.Ne:       powCmp,
	op.Lt:       powCmp,
	op.Le:       powCmp,
	op.Gt:       powCmp,
	op.Ge:       powCmp,
	op.RangeRef: powRange,
	op.BegGrp:   powCall,
}

type (
	PrefixFunc func(*Parser) (ast.Expr, error)
	InfixFunc  func(*Parser, ast.Expr) (ast.Expr, error)
)

var errForbidden = fmt.Errorf("not allowed")

func forbiddenInfix(p *Parser, _ ast.Expr) (ast.Expr, error) {
	return nil, p.wrapError(fmt.Errorf("%w: infix operator %s", errForbidden, p.curr))
}

func forbiddenPrefix(p *Parser) (ast.Expr, error) {
	return nil, p.wrapError(fmt.Errorf("%w: prefix operator %s", errForbidden, p.curr))
}

// Grammar maps token kinds to the functions parsing them and to their
// binding power.
type Grammar struct {
	name string

	prefix   map[op.Op]PrefixFunc
	infix    map[op.Op]InfixFunc
	postfix  map[op.Op]InfixFunc
	bindings map[op.Op]int
	right    map[op.Op]bool
}

func NewGrammar(name string) *Grammar {
	g := Grammar{
		name:     name,
		prefix:   make(map[op.Op]PrefixFunc),
		infix:    make(map[op.Op]InfixFunc),
		postfix:  make(map[op.Op]InfixFunc),
		bindings: make(map[op.Op]int),
		right:    make(map[op.Op]bool),
	}
	for k, v := range defaultBindings {
		g.bindings[k] = v
	}
	return &g
}

func FormulaGrammar() *Grammar {
	g := NewGrammar("formula")

	g.RegisterPrefix(op.Ident, parseIdentifier)
	g.RegisterPrefix(op.Quoted, parseQuoted)
	g.RegisterPrefix(op.Number, parseNumber)
	g.RegisterPrefix(op.Literal, parseLiteral)
	g.RegisterPrefix(op.Bool, parseBool)
	g.RegisterPrefix(op.Null, parseNull)
	g.RegisterPrefix(op.Sub, parseUnary)
	g.RegisterPrefix(op.Add, parseUnary)
	g.RegisterPrefix(op.BegGrp, parseGroup)

	g.RegisterPostfix(op.BegGrp, parseCall)

	g.RegisterInfix(op.Assign, parseAssign)
	g.RegisterInfix(op.RangeRef, parseBinary)
	g.RegisterInfix(op.Add, parseBinary)
	g.RegisterInfix(op.Sub, parseBinary)
	g.RegisterInfix(op.Mul, parseBinary)
	g.RegisterInfix(op.Div, parseBinary)
	g.RegisterInfix(op.Concat, parseBinary)
	g.RegisterInfix(op.Pow, parseBinary)
	g.RegisterInfix(op.Eq, parseBinary)
	g.RegisterInfix(op.Ne, parseBinary)
	g.RegisterInfix(op.Lt, parseBinary)
	g.RegisterInfix(op.Le, parseBinary)
	g.RegisterInfix(op.Gt, parseBinary)
	g.RegisterInfix(op.Ge, parseBinary)

	g.RightAssociative(op.Pow)
	g.RightAssociative(op.Assign)

	return g
}

func (g *Grammar) Context() string {
	return g.name
}

func (g *Grammar) Pow(kind op.Op) int {
	pow, ok := g.bindings[kind]
	if !ok {
		pow = powLowest
	}
	return pow
}

// RightPow returns the binding power used to parse the right operand of
// kind.
func (g *Grammar) RightPow(kind op.Op) int {
	pow := g.Pow(kind)
	if g.right[kind] && pow > powLowest {
		pow--
	}
	return pow
}

func (g *Grammar) Prefix(tok token.Token) (PrefixFunc, error) {
	fn, ok := g.prefix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%s: unexpected %s", g.name, tok)
	}
	return fn, nil
}

func (g *Grammar) Infix(tok token.Token) (InfixFunc, error) {
	fn, ok := g.infix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported infix operator %s", g.name, tok)
	}
	return fn, nil
}

func (g *Grammar) Postfix(tok token.Token) (InfixFunc, error) {
	fn, ok := g.postfix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported postfix operator %s", g.name, tok)
	}
	return fn, nil
}

func (g *Grammar) RegisterInfix(kd op.Op, fn InfixFunc) {
	g.infix[kd] = fn
}

func (g *Grammar) UnregisterInfix(kd op.Op) {
	g.infix[kd] = forbiddenInfix
}

func (g *Grammar) RegisterPostfix(kd op.Op, fn InfixFunc) {
	g.postfix[kd] = fn
}

func (g *Grammar) UnregisterPostfix(kd op.Op) {
	delete(g.postfix, kd)
}

func (g *Grammar) RegisterPrefix(kd op.Op, fn PrefixFunc) {
	g.prefix[kd] = fn
}

func (g *Grammar) UnregisterPrefix(kd op.Op) {
	g.prefix[kd] = forbiddenPrefix
}

func (g *Grammar) RegisterBinding(kd op.Op, pow int) {
	g.bindings[kd] = pow
}

func (g *Grammar) RightAssociative(kd op.Op) {
	g.right[kd] = true
}

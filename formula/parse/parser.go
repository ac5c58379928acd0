package parse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/scan"
	"github.com/peternovig/formulae/formula/token"
)

var ErrSyntax = errors.New("syntax error")

type Parser struct {
	scan    *scan.Scanner
	curr    token.Token
	peek    token.Token
	grammar *Grammar
}

func NewParser(g *Grammar) *Parser {
	return &Parser{
		grammar: g,
	}
}

// ParseString parses a single formula with the default grammar. A leading
// '=' is allowed.
func ParseString(str string) (ast.Expr, error) {
	return NewParser(FormulaGrammar()).ParseString(str)
}

func Parse(r io.Reader) (ast.Expr, error) {
	return NewParser(FormulaGrammar()).Parse(r)
}

// MustParse is like ParseString but panics on error.
func MustParse(str string) ast.Expr {
	expr, err := ParseString(str)
	if err != nil {
		panic(err)
	}
	return expr
}

func (p *Parser) ParseString(str string) (ast.Expr, error) {
	return p.Parse(strings.NewReader(str))
}

func (p *Parser) Parse(r io.Reader) (ast.Expr, error) {
	if err := p.Init(r); err != nil {
		return nil, err
	}
	return p.parseFormula()
}

func (p *Parser) Init(r io.Reader) error {
	sc, err := scan.Scan(r)
	if err != nil {
		return err
	}
	p.Attach(sc)
	return nil
}

func (p *Parser) Attach(sc *scan.Scanner) {
	p.scan = sc
	p.next()
	p.next()
}

func (p *Parser) parseFormula() (ast.Expr, error) {
	if p.done() {
		return nil, p.makeError("empty formula")
	}
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.makeError(fmt.Sprintf("unexpected %s", p.curr))
	}
	return expr, nil
}

func (p *Parser) parse(pow int) (ast.Expr, error) {
	fn, err := p.prefix()
	if err != nil {
		return nil, p.wrapError(err)
	}
	left, err := fn(p)
	if err != nil {
		return nil, err
	}
	for {
		fn, err := p.postfix()
		if err != nil {
			break
		}
		left, err = fn(p, left)
		if err != nil {
			return nil, err
		}
	}
	for !p.done() && pow < p.pow(p.curr.Type) {
		fn, err := p.infix()
		if err != nil {
			return nil, p.wrapError(err)
		}
		left, err = fn(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

func (p *Parser) done() bool {
	return p.is(op.EOF)
}

func (p *Parser) is(kind op.Op) bool {
	return p.curr.Type == kind
}

func (p *Parser) pow(kind op.Op) int {
	return p.grammar.Pow(kind)
}

func (p *Parser) prefix() (PrefixFunc, error) {
	return p.grammar.Prefix(p.curr)
}

func (p *Parser) postfix() (InfixFunc, error) {
	return p.grammar.Postfix(p.curr)
}

func (p *Parser) infix() (InfixFunc, error) {
	return p.grammar.Infix(p.curr)
}

func (p *Parser) makeError(msg string) error {
	return fmt.Errorf("%w: (%s) %s: %s", ErrSyntax, p.grammar.Context(), p.curr.Position, msg)
}

func (p *Parser) wrapError(err error) error {
	return fmt.Errorf("%w: (%s) %s: %w", ErrSyntax, p.grammar.Context(), p.curr.Position, err)
}

func parseCall(p *Parser, expr ast.Expr) (ast.Expr, error) {
	p.next()
	var args []ast.Expr
	for !p.done() && !p.is(op.EndGrp) {
		arg, err := p.parse(powLowest)
		if err != nil {
			return nil, err
		}
		switch p.curr.Type {
		case op.Comma:
			p.next()
			if p.is(op.EndGrp) {
				return nil, p.makeError("missing argument after ','")
			}
		case op.EndGrp:
		default:
			return nil, p.makeError("unexpected character in function call")
		}
		args = append(args, arg)
	}
	if !p.is(op.EndGrp) {
		return nil, p.makeError("missing ')' at end of function call")
	}
	p.next()
	return ast.NewCall(expr, args...), nil
}

func parseBinary(p *Parser, left ast.Expr) (ast.Expr, error) {
	oper := p.curr
	p.next()
	right, err := p.parse(p.grammar.RightPow(oper.Type))
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(left, oper, right), nil
}

func parseAssign(p *Parser, left ast.Expr) (ast.Expr, error) {
	v, ok := left.(ast.Variable)
	if !ok {
		return nil, p.makeError("identifier expected on the left of ':='")
	}
	if _, ok := v.Level(); ok {
		return nil, p.makeError("qualified name can not be assigned")
	}
	oper := p.curr
	p.next()
	right, err := p.parse(p.grammar.RightPow(oper.Type))
	if err != nil {
		return nil, err
	}
	return ast.NewAssign(v.Name(), right), nil
}

func parseUnary(p *Parser) (ast.Expr, error) {
	oper := p.curr
	p.next()
	right, err := p.parse(powUnary)
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(oper, right), nil
}

func parseGroup(p *Parser) (ast.Expr, error) {
	p.next()
	if p.is(op.EndGrp) {
		return nil, p.makeError("empty group")
	}
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(op.EndGrp) {
		return nil, p.makeError("missing ')' at end of expression")
	}
	p.next()
	return ast.NewGrouping(expr), nil
}

func parseNumber(p *Parser) (ast.Expr, error) {
	lit := p.curr.Literal
	x, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, p.makeError(fmt.Sprintf("invalid number %s", lit))
	}
	p.next()
	if lit != strconv.FormatFloat(x, 'f', -1, 64) {
		return ast.NewLiteralWithLexeme(ast.Number(x), lit), nil
	}
	return ast.NewLiteral(ast.Number(x)), nil
}

func parseBool(p *Parser) (ast.Expr, error) {
	lit := p.curr.Literal
	p.next()
	val := ast.Bool(strings.EqualFold(lit, "true"))
	if lit != val.String() {
		return ast.NewLiteralWithLexeme(val, lit), nil
	}
	return ast.NewLiteral(val), nil
}

func parseNull(p *Parser) (ast.Expr, error) {
	lit := p.curr.Literal
	p.next()
	val := ast.Null()
	if lit != val.String() {
		return ast.NewLiteralWithLexeme(val, lit), nil
	}
	return ast.NewLiteral(val), nil
}

func parseLiteral(p *Parser) (ast.Expr, error) {
	if p.peek.Type == op.SheetRef {
		return parseQualified(p)
	}
	defer p.next()
	return ast.NewLiteral(ast.Text(p.curr.Literal)), nil
}

func parseQuoted(p *Parser) (ast.Expr, error) {
	if p.peek.Type == op.SheetRef {
		return parseQualified(p)
	}
	defer p.next()
	return ast.NewQuotedName(p.curr), nil
}

func parseIdentifier(p *Parser) (ast.Expr, error) {
	if p.peek.Type == op.SheetRef {
		return parseQualified(p)
	}
	defer p.next()
	return ast.NewVariable(p.curr), nil
}

func parseQualified(p *Parser) (ast.Expr, error) {
	level := p.curr
	p.next()
	p.next()
	if !p.is(op.Ident) {
		return nil, p.makeError("identifier expected after '!'")
	}
	defer p.next()
	return ast.NewQualifiedVariable(p.curr, level), nil
}

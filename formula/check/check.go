// Package check validates the shape of formula trees beyond what the
// grammar enforces.
package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/token"
)

var (
	ErrMisplacedAssign      = errors.New("named argument outside of a function call")
	ErrDuplicateArgument    = errors.New("duplicate named argument")
	ErrPositionalAfterNamed = errors.New("positional argument after named argument")
)

// Error reports one problem found in a tree. Name is the name involved when
// there is one.
type Error struct {
	Pos  token.Position
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Check walks expr and returns every problem found joined in a single
// error, or nil when the tree is valid.
func Check(expr ast.Expr) error {
	if expr == nil {
		return nil
	}
	var c checker
	ast.Accept[struct{}](expr, &c)
	return errors.Join(c.errs...)
}

type checker struct {
	errs []error
}

func (c *checker) report(tok token.Token, name string, err error) {
	c.errs = append(c.errs, &Error{
		Pos:  tok.Position,
		Name: name,
		Err:  err,
	})
}

func (c *checker) visit(expr ast.Expr) {
	if expr == nil {
		return
	}
	ast.Accept[struct{}](expr, c)
}

func (c *checker) VisitLiteralExpr(_ ast.Literal) struct{} {
	return struct{}{}
}

func (c *checker) VisitQuotedNameExpr(_ ast.QuotedName) struct{} {
	return struct{}{}
}

func (c *checker) VisitVariableExpr(_ ast.Variable) struct{} {
	return struct{}{}
}

func (c *checker) VisitGroupingExpr(e ast.Grouping) struct{} {
	c.visit(e.Expr())
	return struct{}{}
}

func (c *checker) VisitUnaryExpr(e ast.Unary) struct{} {
	c.visit(e.Right())
	return struct{}{}
}

func (c *checker) VisitBinaryExpr(e ast.Binary) struct{} {
	c.visit(e.Left())
	c.visit(e.Right())
	return struct{}{}
}

func (c *checker) VisitCallExpr(e ast.Call) struct{} {
	c.visit(e.Callee())

	var (
		seen  = make(map[string]struct{})
		named bool
	)
	for i := 0; i < e.NumArgs(); i++ {
		arg := e.Arg(i)
		a, ok := arg.(ast.Assign)
		if !ok {
			if named {
				c.report(firstToken(arg), "", ErrPositionalAfterNamed)
			}
			c.visit(arg)
			continue
		}
		named = true
		name := a.Name()
		key := strings.ToUpper(name.Lexeme())
		if _, ok := seen[key]; ok {
			c.report(name, name.Lexeme(), ErrDuplicateArgument)
		}
		seen[key] = struct{}{}
		c.visit(a.Value())
	}
	return struct{}{}
}

// VisitAssignExpr is only reached for assignments that are not a direct
// argument of a call.
func (c *checker) VisitAssignExpr(e ast.Assign) struct{} {
	name := e.Name()
	c.report(name, name.Lexeme(), ErrMisplacedAssign)
	c.visit(e.Value())
	return struct{}{}
}

// firstToken returns the leftmost token of expr, used to locate an error.
func firstToken(expr ast.Expr) token.Token {
	switch e := expr.(type) {
	case ast.Literal:
		return token.Token{}
	case ast.QuotedName:
		return e.Token()
	case ast.Variable:
		if level, ok := e.Level(); ok {
			return level
		}
		return e.Name()
	case ast.Grouping:
		return firstToken(e.Expr())
	case ast.Unary:
		return e.Operator()
	case ast.Binary:
		return firstToken(e.Left())
	case ast.Call:
		return firstToken(e.Callee())
	case ast.Assign:
		return e.Name()
	default:
		return token.Token{}
	}
}

// Package printer renders formula trees back to source text.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/token"
)

// Format returns the source text of expr. Groupings are printed as they are
// found in the tree, no parenthesis is added.
func Format(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return ast.Accept[string](expr, sourcePrinter{})
}

// Fprint writes the source text of expr to w prefixed by '='.
func Fprint(w io.Writer, expr ast.Expr) error {
	_, err := fmt.Fprintf(w, "=%s\n", Format(expr))
	return err
}

type sourcePrinter struct{}

func (p sourcePrinter) VisitLiteralExpr(e ast.Literal) string {
	if lex, ok := e.Lexeme(); ok {
		if str, ok := e.Value().Text(); ok {
			return quoteText(str)
		}
		return lex
	}
	v := e.Value()
	switch v.Type() {
	case ast.TypeNumber:
		f, _ := v.Float()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case ast.TypeText:
		str, _ := v.Text()
		return quoteText(str)
	default:
		return v.String()
	}
}

func (p sourcePrinter) VisitQuotedNameExpr(e ast.QuotedName) string {
	return quoteName(e.Token().Lexeme())
}

func (p sourcePrinter) VisitVariableExpr(e ast.Variable) string {
	name := e.Name().Lexeme()
	level, ok := e.Level()
	if !ok {
		return name
	}
	return fmt.Sprintf("%s!%s", formatLevel(level), name)
}

func (p sourcePrinter) VisitGroupingExpr(e ast.Grouping) string {
	return fmt.Sprintf("(%s)", p.format(e.Expr()))
}

func (p sourcePrinter) VisitUnaryExpr(e ast.Unary) string {
	return fmt.Sprintf("%s%s", e.Operator().Lexeme(), p.format(e.Right()))
}

func (p sourcePrinter) VisitBinaryExpr(e ast.Binary) string {
	oper := e.Operator()
	if oper.Type == op.RangeRef {
		return fmt.Sprintf("%s:%s", p.format(e.Left()), p.format(e.Right()))
	}
	return fmt.Sprintf("%s %s %s", p.format(e.Left()), oper.Lexeme(), p.format(e.Right()))
}

func (p sourcePrinter) VisitCallExpr(e ast.Call) string {
	var args []string
	for i := 0; i < e.NumArgs(); i++ {
		args = append(args, p.format(e.Arg(i)))
	}
	return fmt.Sprintf("%s(%s)", p.format(e.Callee()), strings.Join(args, ", "))
}

func (p sourcePrinter) VisitAssignExpr(e ast.Assign) string {
	return fmt.Sprintf("%s := %s", e.Name().Lexeme(), p.format(e.Value()))
}

func (p sourcePrinter) format(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return ast.Accept[string](expr, p)
}

func formatLevel(level token.Token) string {
	switch level.Type {
	case op.Literal:
		return quote(level.Lexeme(), '\'')
	case op.Quoted:
		return quoteName(level.Lexeme())
	default:
		return level.Lexeme()
	}
}

func quoteText(str string) string {
	return quote(str, '"')
}

func quoteName(str string) string {
	return quote(str, '`')
}

func quote(str string, q rune) string {
	var (
		single = string(q)
		double = single + single
	)
	return single + strings.ReplaceAll(str, single, double) + single
}

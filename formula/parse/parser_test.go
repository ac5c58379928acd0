package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/token"
)

func num(f float64) ast.Expr {
	return ast.NewLiteral(ast.Number(f))
}

func ident(name string) ast.Expr {
	return ast.NewVariable(token.Ident(name))
}

func binary(left ast.Expr, kind op.Op, right ast.Expr) ast.Expr {
	return ast.NewBinary(left, token.Operator(kind), right)
}

func TestParse(t *testing.T) {
	tests := []struct {
		Input string
		Want  ast.Expr
	}{
		{
			Input: "=2+3*4",
			Want:  binary(num(2), op.Add, binary(num(3), op.Mul, num(4))),
		},
		{
			Input: "(2+3)*4",
			Want:  binary(ast.NewGrouping(binary(num(2), op.Add, num(3))), op.Mul, num(4)),
		},
		{
			Input: "1-2-3",
			Want:  binary(binary(num(1), op.Sub, num(2)), op.Sub, num(3)),
		},
		{
			Input: "2^3^2",
			Want:  binary(num(2), op.Pow, binary(num(3), op.Pow, num(2))),
		},
		{
			Input: "-2^2",
			Want:  binary(ast.NewUnary(token.Operator(op.Sub), num(2)), op.Pow, num(2)),
		},
		{
			Input: "a & b + c",
			Want:  binary(ident("a"), op.Concat, binary(ident("b"), op.Add, ident("c"))),
		},
		{
			Input: "a + 1 >= b & c",
			Want:  binary(binary(ident("a"), op.Add, num(1)), op.Ge, binary(ident("b"), op.Concat, ident("c"))),
		},
		{
			Input: "1 = 2 <> 3",
			Want:  binary(binary(num(1), op.Eq, num(2)), op.Ne, num(3)),
		},
		{
			Input: "SUM(A1:B2)",
			Want:  ast.NewCall(ident("SUM"), binary(ident("A1"), op.RangeRef, ident("B2"))),
		},
		{
			Input: "NOW()",
			Want:  ast.NewCall(ident("NOW")),
		},
		{
			Input: "f(1)(2)",
			Want:  ast.NewCall(ast.NewCall(ident("f"), num(1)), num(2)),
		},
		{
			Input: "SUM(A1, x := 2)",
			Want:  ast.NewCall(ident("SUM"), ident("A1"), ast.NewAssign(token.Ident("x"), num(2))),
		},
		{
			Input: "x := 1",
			Want:  ast.NewAssign(token.Ident("x"), num(1)),
		},
		{
			Input: "Sheet1!A1",
			Want:  ast.NewQualifiedVariable(token.Ident("A1"), token.Ident("Sheet1")),
		},
		{
			Input: "'My Sheet'!A1 + 1",
			Want: binary(
				ast.NewQualifiedVariable(token.Ident("A1"), token.New(op.Literal, "My Sheet")),
				op.Add,
				num(1),
			),
		},
		{
			Input: "`My Sheet`!$A$1",
			Want:  ast.NewQualifiedVariable(token.Ident("$A$1"), token.New(op.Quoted, "My Sheet")),
		},
		{
			Input: "`@weird name!!`",
			Want:  ast.NewQuotedName(token.New(op.Quoted, "@weird name!!")),
		},
		{
			Input: `"a""b" & 'c'`,
			Want:  binary(ast.NewLiteral(ast.Text(`a"b`)), op.Concat, ast.NewLiteral(ast.Text("c"))),
		},
		{
			Input: "1.50",
			Want:  ast.NewLiteralWithLexeme(ast.Number(1.5), "1.50"),
		},
		{
			Input: "1.5",
			Want:  num(1.5),
		},
		{
			Input: "1e3",
			Want:  ast.NewLiteralWithLexeme(ast.Number(1000), "1e3"),
		},
		{
			Input: "TRUE",
			Want:  ast.NewLiteral(ast.Bool(true)),
		},
		{
			Input: "false",
			Want:  ast.NewLiteralWithLexeme(ast.Bool(false), "false"),
		},
		{
			Input: "NULL",
			Want:  ast.NewLiteral(ast.Null()),
		},
		{
			Input: "IF(A1 > 0, \"pos\", -A1)",
			Want: ast.NewCall(
				ident("IF"),
				binary(ident("A1"), op.Gt, num(0)),
				ast.NewLiteral(ast.Text("pos")),
				ast.NewUnary(token.Operator(op.Sub), ident("A1")),
			),
		},
	}
	for _, c := range tests {
		got, err := ParseString(c.Input)
		require.NoError(t, err, c.Input)
		assert.True(t, ast.Equal(c.Want, got), "%s: results mismatched!\nwant: %s\ngot:  %s", c.Input, c.Want, got)
	}
}

func TestParseError(t *testing.T) {
	tests := []string{
		"",
		"=",
		"SUM(1,)",
		"SUM(1",
		"SUM(1 2)",
		"(1",
		"()",
		"1)",
		"1 +",
		"#",
		"'unterminated",
		"1 := 2",
		"Sheet1!A1 := 2",
		"Sheet1!1",
		"1\xff+2",
		"1\x00+2",
		"SUM(A1)\xfe garbage",
	}
	for _, in := range tests {
		_, err := ParseString(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrSyntax), "%s: expected syntax error, got %v", in, err)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseString("SUM(1,\n  )")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2:3")
}

func TestParseReader(t *testing.T) {
	got, err := Parse(strings.NewReader("=A1*2"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(binary(ident("A1"), op.Mul, num(2)), got))
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() {
		MustParse("1+1")
	})
	assert.Panics(t, func() {
		MustParse("1+")
	})
}

func TestGrammarUnregister(t *testing.T) {
	g := FormulaGrammar()
	g.UnregisterInfix(op.Concat)
	g.UnregisterPrefix(op.Sub)

	p := NewParser(g)
	for _, in := range []string{"a & b", "-1"} {
		_, err := p.ParseString(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrSyntax), in)
		assert.True(t, errors.Is(err, errForbidden), in)
	}
	_, err := p.ParseString("a + b")
	assert.NoError(t, err)
}

package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peternovig/formulae/formula/ast"
	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/parse"
	"github.com/peternovig/formulae/formula/token"
)

func TestCheckValid(t *testing.T) {
	tests := []string{
		"1+2",
		"SUM(A1:B2)",
		"ROUND(A1, digits := 2)",
		"f(1, x := 2, y := 3)",
		"f(g(x := 1), y := 2)",
		"Sheet1!A1 & `name`",
		"NOW()",
	}
	for _, in := range tests {
		expr, err := parse.ParseString(in)
		require.NoError(t, err, in)
		assert.NoError(t, Check(expr), in)
	}
}

func TestCheckInvalid(t *testing.T) {
	tests := []struct {
		Input string
		Want  []error
	}{
		{
			Input: "x := 1",
			Want:  []error{ErrMisplacedAssign},
		},
		{
			Input: "1 + f((x := 1))",
			Want:  []error{ErrMisplacedAssign},
		},
		{
			Input: "f(x := 1, X := 2)",
			Want:  []error{ErrDuplicateArgument},
		},
		{
			Input: "f(x := 1, 2)",
			Want:  []error{ErrPositionalAfterNamed},
		},
		{
			Input: "f(x := 1, x := 2, 3) + (y := 0)",
			Want:  []error{ErrDuplicateArgument, ErrPositionalAfterNamed, ErrMisplacedAssign},
		},
		{
			Input: "f(x := (y := 1))",
			Want:  []error{ErrMisplacedAssign},
		},
	}
	for _, c := range tests {
		expr, err := parse.ParseString(c.Input)
		require.NoError(t, err, c.Input)

		err = Check(expr)
		require.Error(t, err, c.Input)
		for _, w := range c.Want {
			assert.ErrorIs(t, err, w, c.Input)
		}
		joined, ok := err.(interface{ Unwrap() []error })
		require.True(t, ok, c.Input)
		assert.Len(t, joined.Unwrap(), len(c.Want), c.Input)
	}
}

func TestCheckErrorDetails(t *testing.T) {
	expr, err := parse.ParseString("f(a := 1,\n  a := 2)")
	require.NoError(t, err)

	err = Check(expr)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "a", cerr.Name)
	assert.Equal(t, token.Position{Line: 2, Column: 3}, cerr.Pos)
	assert.Equal(t, "2:3: a: duplicate named argument", cerr.Error())
}

func TestCheckBuiltTree(t *testing.T) {
	bare := ast.NewBinary(
		ast.NewAssign(token.Ident("x"), ast.NewLiteral(ast.Number(1))),
		token.Operator(op.Add),
		ast.NewLiteral(ast.Number(2)),
	)
	assert.ErrorIs(t, Check(bare), ErrMisplacedAssign)
	assert.NoError(t, Check(nil))
}

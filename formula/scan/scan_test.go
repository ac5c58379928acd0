package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peternovig/formulae/formula/op"
	"github.com/peternovig/formulae/formula/token"
)

func TestScan(t *testing.T) {
	tests := []struct {
		Input string
		Want  []token.Token
	}{
		{
			Input: "=SUM(A1, 2)",
			Want: []token.Token{
				{Literal: "SUM", Type: op.Ident},
				{Literal: "(", Type: op.BegGrp},
				{Literal: "A1", Type: op.Ident},
				{Literal: ",", Type: op.Comma},
				{Literal: "2", Type: op.Number},
				{Literal: ")", Type: op.EndGrp},
			},
		},
		{
			Input: "'a''b' & \"c\"",
			Want: []token.Token{
				{Literal: "a'b", Type: op.Literal},
				{Literal: "&", Type: op.Concat},
				{Literal: "c", Type: op.Literal},
			},
		},
		{
			Input: "`@weird name!!`",
			Want: []token.Token{
				{Literal: "@weird name!!", Type: op.Quoted},
			},
		},
		{
			Input: "Sheet1!$A$1:B2",
			Want: []token.Token{
				{Literal: "Sheet1", Type: op.Ident},
				{Literal: "!", Type: op.SheetRef},
				{Literal: "$A$1", Type: op.Ident},
				{Literal: ":", Type: op.RangeRef},
				{Literal: "B2", Type: op.Ident},
			},
		},
		{
			Input: "x := 1.5e3 <> true",
			Want: []token.Token{
				{Literal: "x", Type: op.Ident},
				{Literal: ":=", Type: op.Assign},
				{Literal: "1.5e3", Type: op.Number},
				{Literal: "<>", Type: op.Ne},
				{Literal: "true", Type: op.Bool},
			},
		},
		{
			Input: "a<=b>=c<d>e=NULL",
			Want: []token.Token{
				{Literal: "a", Type: op.Ident},
				{Literal: "<=", Type: op.Le},
				{Literal: "b", Type: op.Ident},
				{Literal: ">=", Type: op.Ge},
				{Literal: "c", Type: op.Ident},
				{Literal: "<", Type: op.Lt},
				{Literal: "d", Type: op.Ident},
				{Literal: ">", Type: op.Gt},
				{Literal: "e", Type: op.Ident},
				{Literal: "=", Type: op.Eq},
				{Literal: "NULL", Type: op.Null},
			},
		},
		{
			Input: "-2^3*4/5+6",
			Want: []token.Token{
				{Literal: "-", Type: op.Sub},
				{Literal: "2", Type: op.Number},
				{Literal: "^", Type: op.Pow},
				{Literal: "3", Type: op.Number},
				{Literal: "*", Type: op.Mul},
				{Literal: "4", Type: op.Number},
				{Literal: "/", Type: op.Div},
				{Literal: "5", Type: op.Number},
				{Literal: "+", Type: op.Add},
				{Literal: "6", Type: op.Number},
			},
		},
	}
	for _, c := range tests {
		got := Tokens(c.Input)
		require.NotEmpty(t, got, c.Input)
		last := got[len(got)-1]
		assert.Equal(t, op.EOF, last.Type, c.Input)

		got = got[:len(got)-1]
		require.Len(t, got, len(c.Want), c.Input)
		for i := range c.Want {
			assert.True(t, c.Want[i].Equal(got[i]), "%s: token %d: want %s - got %s", c.Input, i, c.Want[i], got[i])
		}
	}
}

func TestScanInvalid(t *testing.T) {
	tests := []string{
		"'unterminated",
		"`unterminated",
		"1e",
		"#",
	}
	for _, in := range tests {
		toks := Tokens(in)
		require.NotEmpty(t, toks)
		assert.Equal(t, op.Invalid, toks[0].Type, in)
	}
}

func TestScanInvalidBytes(t *testing.T) {
	tests := []struct {
		Input string
		Bad   string
	}{
		{Input: "1\xff+2", Bad: "\xff"},
		{Input: "1\x00+2", Bad: "\x00"},
	}
	for _, c := range tests {
		toks := Tokens(c.Input)
		require.Len(t, toks, 5, c.Input)
		assert.Equal(t, op.Number, toks[0].Type)
		assert.Equal(t, op.Invalid, toks[1].Type)
		assert.Equal(t, c.Bad, toks[1].Literal)
		assert.Equal(t, op.Add, toks[2].Type)
		assert.Equal(t, "2", toks[3].Literal)
		assert.Equal(t, op.EOF, toks[4].Type)
	}

	toks := Tokens("'a\xffb' & 1")
	require.Len(t, toks, 4)
	assert.Equal(t, op.Literal, toks[0].Type)
	assert.Equal(t, "a\xffb", toks[0].Literal)
	assert.Equal(t, op.Concat, toks[1].Type)
}

func TestScanPosition(t *testing.T) {
	toks := Tokens("A1 +\n  B2")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Position{Line: 1, Column: 1}, toks[0].Position)
	assert.Equal(t, token.Position{Line: 1, Column: 4}, toks[1].Position)
	assert.Equal(t, 2, toks[2].Line)
}

func TestPeek(t *testing.T) {
	s := New([]byte("A1 + 1"))
	peek := s.Peek()
	tok := s.Scan()
	assert.Equal(t, peek, tok)
	assert.Equal(t, op.Add, s.Scan().Type)
}

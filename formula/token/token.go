package token

import (
	"fmt"

	"github.com/peternovig/formulae/formula/op"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexical unit produced by the scanner. Literal holds the lexeme
// without its delimiters for strings and quoted names.
type Token struct {
	Literal string
	Type    op.Op
	Position
}

// New creates a token with no position. It is mostly useful to build trees
// by hand.
func New(kind op.Op, literal string) Token {
	if literal == "" {
		literal = op.Symbol(kind)
	}
	return Token{
		Literal: literal,
		Type:    kind,
	}
}

func Ident(name string) Token {
	return New(op.Ident, name)
}

func Operator(kind op.Op) Token {
	return New(kind, "")
}

// Lexeme returns the text of the token as it should appear in renderings.
func (t Token) Lexeme() string {
	if t.Literal == "" {
		return op.Symbol(t.Type)
	}
	return t.Literal
}

// Equal reports whether two tokens have the same kind and lexeme. Positions
// are not compared.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Lexeme() == other.Lexeme()
}

func (t Token) String() string {
	switch t.Type {
	case op.Invalid:
		if t.Literal != "" {
			return fmt.Sprintf("<invalid>(%s)", t.Literal)
		}
		return "<invalid>"
	case op.EOF:
		return "<eof>"
	case op.Ident, op.Number, op.Literal, op.Quoted, op.Bool, op.Null:
		return fmt.Sprintf("%s(%s)", op.Name(t.Type), t.Literal)
	default:
		return fmt.Sprintf("<%s>", op.Name(t.Type))
	}
}

// Package export converts formula trees into a generic node structure that
// can be serialized to YAML or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/peternovig/formulae/formula/ast"
)

// Node is the serializable form of an expression. Kind is the name of the
// variant. For calls the first child is the callee.
type Node struct {
	Kind     string            `yaml:"kind" json:"kind"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Children []Node            `yaml:"children,omitempty" json:"children,omitempty"`
}

func Tree(expr ast.Expr) Node {
	if expr == nil {
		return Node{Kind: "nil"}
	}
	return ast.Accept[Node](expr, builder{})
}

func YAML(w io.Writer, expr ast.Expr) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Tree(expr)); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}

func JSON(w io.Writer, expr ast.Expr) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Tree(expr)); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}

type builder struct{}

func (b builder) VisitLiteralExpr(e ast.Literal) Node {
	v := e.Value()
	n := Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"type": v.Type().String(),
		},
	}
	switch v.Type() {
	case ast.TypeText:
		n.Attrs["value"], _ = v.Text()
	default:
		n.Attrs["value"] = v.String()
	}
	if lex, ok := e.Lexeme(); ok {
		n.Attrs["lexeme"] = lex
	}
	return n
}

func (b builder) VisitQuotedNameExpr(e ast.QuotedName) Node {
	return Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"name": e.Token().Lexeme(),
		},
	}
}

func (b builder) VisitVariableExpr(e ast.Variable) Node {
	n := Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"name": e.Name().Lexeme(),
		},
	}
	if level, ok := e.Level(); ok {
		n.Attrs["level"] = level.Lexeme()
	}
	return n
}

func (b builder) VisitGroupingExpr(e ast.Grouping) Node {
	return Node{
		Kind:     e.Kind().String(),
		Children: []Node{b.build(e.Expr())},
	}
}

func (b builder) VisitUnaryExpr(e ast.Unary) Node {
	return Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"op": e.Operator().Lexeme(),
		},
		Children: []Node{b.build(e.Right())},
	}
}

func (b builder) VisitBinaryExpr(e ast.Binary) Node {
	return Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"op": e.Operator().Lexeme(),
		},
		Children: []Node{b.build(e.Left()), b.build(e.Right())},
	}
}

func (b builder) VisitCallExpr(e ast.Call) Node {
	n := Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"args": strconv.Itoa(e.NumArgs()),
		},
		Children: make([]Node, 0, e.NumArgs()+1),
	}
	n.Children = append(n.Children, b.build(e.Callee()))
	for i := 0; i < e.NumArgs(); i++ {
		n.Children = append(n.Children, b.build(e.Arg(i)))
	}
	return n
}

func (b builder) VisitAssignExpr(e ast.Assign) Node {
	return Node{
		Kind: e.Kind().String(),
		Attrs: map[string]string{
			"name": e.Name().Lexeme(),
		},
		Children: []Node{b.build(e.Value())},
	}
}

func (b builder) build(expr ast.Expr) Node {
	if expr == nil {
		return Node{Kind: "nil"}
	}
	return ast.Accept[Node](expr, b)
}

package ast

import "fmt"

// Visitor has one handler per expression kind. Adding a kind to the
// package adds a method here, so every implementation stops compiling until
// it handles the new kind.
type Visitor[T any] interface {
	VisitLiteralExpr(Literal) T
	VisitQuotedNameExpr(QuotedName) T
	VisitVariableExpr(Variable) T
	VisitGroupingExpr(Grouping) T
	VisitUnaryExpr(Unary) T
	VisitBinaryExpr(Binary) T
	VisitCallExpr(Call) T
	VisitAssignExpr(Assign) T
}

// Accept calls the handler of v matching the kind of expr and returns its
// result. It panics with an *UnhandledError if expr is nil or is not one of
// the expressions of this package.
func Accept[T any](expr Expr, v Visitor[T]) T {
	switch e := expr.(type) {
	case Literal:
		return v.VisitLiteralExpr(e)
	case QuotedName:
		return v.VisitQuotedNameExpr(e)
	case Variable:
		return v.VisitVariableExpr(e)
	case Grouping:
		return v.VisitGroupingExpr(e)
	case Unary:
		return v.VisitUnaryExpr(e)
	case Binary:
		return v.VisitBinaryExpr(e)
	case Call:
		return v.VisitCallExpr(e)
	case Assign:
		return v.VisitAssignExpr(e)
	default:
		panic(unhandled(expr))
	}
}

func (l Literal) Accept(v Visitor[any]) any {
	return v.VisitLiteralExpr(l)
}

func (q QuotedName) Accept(v Visitor[any]) any {
	return v.VisitQuotedNameExpr(q)
}

func (v Variable) Accept(vs Visitor[any]) any {
	return vs.VisitVariableExpr(v)
}

func (g Grouping) Accept(v Visitor[any]) any {
	return v.VisitGroupingExpr(g)
}

func (u Unary) Accept(v Visitor[any]) any {
	return v.VisitUnaryExpr(u)
}

func (b Binary) Accept(v Visitor[any]) any {
	return v.VisitBinaryExpr(b)
}

func (c Call) Accept(v Visitor[any]) any {
	return v.VisitCallExpr(c)
}

func (a Assign) Accept(v Visitor[any]) any {
	return v.VisitAssignExpr(a)
}

// UnhandledError is the panic value of a dispatch that found no handler.
type UnhandledError struct {
	Kind Kind
	Type string
}

func unhandled(expr Expr) *UnhandledError {
	if expr == nil {
		return &UnhandledError{Type: "<nil>"}
	}
	return &UnhandledError{
		Kind: expr.Kind(),
		Type: fmt.Sprintf("%T", expr),
	}
}

func (e *UnhandledError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("ast: unhandled expression %s", e.Type)
	}
	return fmt.Sprintf("ast: no handler for %s expression", e.Kind)
}

// Funcs builds a Visitor from functions. Calling a handler left nil panics
// with an *UnhandledError.
type Funcs[T any] struct {
	Literal    func(Literal) T
	QuotedName func(QuotedName) T
	Variable   func(Variable) T
	Grouping   func(Grouping) T
	Unary      func(Unary) T
	Binary     func(Binary) T
	Call       func(Call) T
	Assign     func(Assign) T
}

func (f Funcs[T]) VisitLiteralExpr(e Literal) T {
	if f.Literal == nil {
		panic(&UnhandledError{Kind: KindLiteral})
	}
	return f.Literal(e)
}

func (f Funcs[T]) VisitQuotedNameExpr(e QuotedName) T {
	if f.QuotedName == nil {
		panic(&UnhandledError{Kind: KindQuotedName})
	}
	return f.QuotedName(e)
}

func (f Funcs[T]) VisitVariableExpr(e Variable) T {
	if f.Variable == nil {
		panic(&UnhandledError{Kind: KindVariable})
	}
	return f.Variable(e)
}

func (f Funcs[T]) VisitGroupingExpr(e Grouping) T {
	if f.Grouping == nil {
		panic(&UnhandledError{Kind: KindGrouping})
	}
	return f.Grouping(e)
}

func (f Funcs[T]) VisitUnaryExpr(e Unary) T {
	if f.Unary == nil {
		panic(&UnhandledError{Kind: KindUnary})
	}
	return f.Unary(e)
}

func (f Funcs[T]) VisitBinaryExpr(e Binary) T {
	if f.Binary == nil {
		panic(&UnhandledError{Kind: KindBinary})
	}
	return f.Binary(e)
}

func (f Funcs[T]) VisitCallExpr(e Call) T {
	if f.Call == nil {
		panic(&UnhandledError{Kind: KindCall})
	}
	return f.Call(e)
}

func (f Funcs[T]) VisitAssignExpr(e Assign) T {
	if f.Assign == nil {
		panic(&UnhandledError{Kind: KindAssign})
	}
	return f.Assign(e)
}

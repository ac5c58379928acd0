package ast

// Clone returns a deep copy of expr. The copy is Equal to expr and shares no
// argument list with it.
func Clone(expr Expr) Expr {
	if expr == nil {
		return nil
	}
	return Accept[Expr](expr, cloner{})
}

type cloner struct{}

func (c cloner) VisitLiteralExpr(e Literal) Expr {
	return e
}

func (c cloner) VisitQuotedNameExpr(e QuotedName) Expr {
	return e
}

func (c cloner) VisitVariableExpr(e Variable) Expr {
	return e
}

func (c cloner) VisitGroupingExpr(e Grouping) Expr {
	return NewGrouping(c.clone(e.expr))
}

func (c cloner) VisitUnaryExpr(e Unary) Expr {
	return NewUnary(e.op, c.clone(e.right))
}

func (c cloner) VisitBinaryExpr(e Binary) Expr {
	return NewBinary(c.clone(e.left), e.op, c.clone(e.right))
}

func (c cloner) VisitCallExpr(e Call) Expr {
	x := Call{
		callee: c.clone(e.callee),
		args:   make([]Expr, 0, len(e.args)),
	}
	for _, a := range e.args {
		x.args = append(x.args, c.clone(a))
	}
	return x
}

func (c cloner) VisitAssignExpr(e Assign) Expr {
	return NewAssign(e.name, c.clone(e.value))
}

func (c cloner) clone(expr Expr) Expr {
	if expr == nil {
		return nil
	}
	return Accept[Expr](expr, c)
}

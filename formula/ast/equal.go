package ast

// Equal reports whether a and b are the same kind of expression with equal
// attributes. Sub-expressions are compared recursively, tokens by kind and
// lexeme. Equality is syntactic: a Grouping is never equal to the expression
// it wraps.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Literal:
		y, ok := b.(Literal)
		return ok && x.value.Equal(y.value) &&
			x.hasLexeme == y.hasLexeme && x.lexeme == y.lexeme
	case QuotedName:
		y, ok := b.(QuotedName)
		return ok && x.name.Equal(y.name)
	case Variable:
		y, ok := b.(Variable)
		if !ok || !x.name.Equal(y.name) || x.hasLevel != y.hasLevel {
			return false
		}
		return !x.hasLevel || x.level.Equal(y.level)
	case Grouping:
		y, ok := b.(Grouping)
		return ok && Equal(x.expr, y.expr)
	case Unary:
		y, ok := b.(Unary)
		return ok && x.op.Equal(y.op) && Equal(x.right, y.right)
	case Binary:
		y, ok := b.(Binary)
		return ok && x.op.Equal(y.op) && Equal(x.left, y.left) && Equal(x.right, y.right)
	case Call:
		y, ok := b.(Call)
		if !ok || len(x.args) != len(y.args) || !Equal(x.callee, y.callee) {
			return false
		}
		for i := range x.args {
			if !Equal(x.args[i], y.args[i]) {
				return false
			}
		}
		return true
	case Assign:
		y, ok := b.(Assign)
		return ok && x.name.Equal(y.name) && Equal(x.value, y.value)
	default:
		return false
	}
}

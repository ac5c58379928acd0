package ast

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const defaultIndent = "  "

// Dump returns a multi-line description of expr meant for diagnostics and
// tests. It is not source syntax.
func Dump(expr Expr) string {
	return DumpIndent(expr, defaultIndent)
}

// DumpIndent is like Dump but uses indent for each nesting level.
func DumpIndent(expr Expr, indent string) string {
	var buf bytes.Buffer
	d := dumper{
		w:      &buf,
		indent: indent,
	}
	d.dumpExpr(expr, 0)
	return buf.String()
}

type dumper struct {
	w      io.Writer
	indent string
}

func (d dumper) dumpExpr(expr Expr, depth int) {
	switch e := expr.(type) {
	case nil:
		io.WriteString(d.w, "<nil>")
	case Literal:
		io.WriteString(d.w, "Literal(value=")
		io.WriteString(d.w, e.value.String())
		if e.hasLexeme {
			io.WriteString(d.w, ", lexeme=")
			io.WriteString(d.w, e.lexeme)
		}
		io.WriteString(d.w, ")")
	case QuotedName:
		io.WriteString(d.w, "QuotedName(")
		io.WriteString(d.w, e.name.Lexeme())
		io.WriteString(d.w, ")")
	case Variable:
		io.WriteString(d.w, "Variable(name=")
		io.WriteString(d.w, e.name.Lexeme())
		if e.hasLevel {
			io.WriteString(d.w, ", level=")
			io.WriteString(d.w, e.level.Lexeme())
		}
		io.WriteString(d.w, ")")
	case Grouping:
		io.WriteString(d.w, "Grouping(\n")
		d.prefix(depth + 1)
		d.dumpExpr(e.expr, depth+1)
		d.close(depth)
	case Unary:
		io.WriteString(d.w, "Unary(\n")
		d.field("op", depth+1)
		io.WriteString(d.w, e.op.Lexeme())
		io.WriteString(d.w, ",\n")
		d.field("right", depth+1)
		d.dumpExpr(e.right, depth+1)
		d.close(depth)
	case Binary:
		io.WriteString(d.w, "Binary(\n")
		d.field("left", depth+1)
		d.dumpExpr(e.left, depth+1)
		io.WriteString(d.w, ",\n")
		d.field("op", depth+1)
		io.WriteString(d.w, e.op.Lexeme())
		io.WriteString(d.w, ",\n")
		d.field("right", depth+1)
		d.dumpExpr(e.right, depth+1)
		d.close(depth)
	case Call:
		io.WriteString(d.w, "Call(\n")
		d.field("callee", depth+1)
		d.dumpExpr(e.callee, depth+1)
		io.WriteString(d.w, ",\n")
		d.field("args", depth+1)
		if len(e.args) == 0 {
			io.WriteString(d.w, "[]")
			d.close(depth)
			break
		}
		io.WriteString(d.w, "[\n")
		for i := range e.args {
			if i > 0 {
				io.WriteString(d.w, ",\n")
			}
			d.prefix(depth + 2)
			d.dumpExpr(e.args[i], depth+2)
		}
		io.WriteString(d.w, "\n")
		d.prefix(depth + 1)
		io.WriteString(d.w, "]")
		d.close(depth)
	case Assign:
		io.WriteString(d.w, "Assign(\n")
		d.field("name", depth+1)
		io.WriteString(d.w, e.name.Lexeme())
		io.WriteString(d.w, ",\n")
		d.field("value", depth+1)
		d.dumpExpr(e.value, depth+1)
		d.close(depth)
	default:
		io.WriteString(d.w, fmt.Sprintf("unknown(%T)", e))
	}
}

func (d dumper) field(name string, depth int) {
	d.prefix(depth)
	io.WriteString(d.w, name)
	io.WriteString(d.w, "=")
}

func (d dumper) close(depth int) {
	io.WriteString(d.w, "\n")
	d.prefix(depth)
	io.WriteString(d.w, ")")
}

func (d dumper) prefix(depth int) {
	io.WriteString(d.w, strings.Repeat(d.indent, depth))
}

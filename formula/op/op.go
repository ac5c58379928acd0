package op

type Op rune

const (
	Invalid Op = iota
	EOF
	Ident
	Number
	Literal
	Quoted
	Bool
	Null
	Assign
	Add
	Sub
	Mul
	Div
	Pow
	Concat
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Comma
	BegGrp
	EndGrp
	RangeRef
	SheetRef
)

var mapping = map[Op]string{
	Assign:   ":=",
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Pow:      "^",
	Div:      "/",
	Concat:   "&",
	Eq:       "=",
	Ne:       "<>",
	Lt:       "<",
	Le:       "<=",
	Gt:       ">",
	Ge:       ">=",
	Comma:    ",",
	BegGrp:   "(",
	EndGrp:   ")",
	RangeRef: ":",
	SheetRef: "!",
}

var names = map[Op]string{
	Invalid:  "invalid",
	EOF:      "eof",
	Ident:    "identifier",
	Number:   "number",
	Literal:  "literal",
	Quoted:   "quoted",
	Bool:     "boolean",
	Null:     "null",
	Assign:   "assignment",
	Add:      "add",
	Sub:      "subtract",
	Mul:      "multiply",
	Div:      "divide",
	Pow:      "power",
	Concat:   "concat",
	Eq:       "equal",
	Ne:       "notequal",
	Lt:       "lesser",
	Le:       "lesseq",
	Gt:       "greater",
	Ge:       "greateq",
	Comma:    "comma",
	BegGrp:   "beg-group",
	EndGrp:   "end-group",
	RangeRef: "range",
	SheetRef: "sheet",
}

// Symbol returns the source text of an operator or delimiter. It returns an
// empty string for kinds whose text varies (identifiers, numbers, ...).
func Symbol(oper Op) string {
	return mapping[oper]
}

func Name(oper Op) string {
	if n, ok := names[oper]; ok {
		return n
	}
	return names[Invalid]
}

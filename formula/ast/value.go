package ast

import (
	"math"
	"strconv"
)

type ValueKind int8

const (
	TypeNull ValueKind = iota
	TypeNumber
	TypeText
	TypeBool
)

func (k ValueKind) String() string {
	switch k {
	case TypeNull:
		return "null"
	case TypeNumber:
		return "number"
	case TypeText:
		return "text"
	case TypeBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is a scalar of the literal domain. The zero Value is null.
type Value struct {
	kind    ValueKind
	number  float64
	text    string
	boolean bool
}

func Number(f float64) Value {
	return Value{
		kind:   TypeNumber,
		number: f,
	}
}

func Text(str string) Value {
	return Value{
		kind: TypeText,
		text: str,
	}
}

func Bool(b bool) Value {
	return Value{
		kind:    TypeBool,
		boolean: b,
	}
}

func Null() Value {
	return Value{}
}

func (v Value) Type() ValueKind {
	return v.kind
}

func (v Value) Float() (float64, bool) {
	return v.number, v.kind == TypeNumber
}

func (v Value) Text() (string, bool) {
	return v.text, v.kind == TypeText
}

func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == TypeBool
}

func (v Value) IsNull() bool {
	return v.kind == TypeNull
}

// Equal compares kind and payload. Two NaN numbers are equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case TypeNumber:
		if math.IsNaN(v.number) && math.IsNaN(other.number) {
			return true
		}
		return v.number == other.number && math.Signbit(v.number) == math.Signbit(other.number)
	case TypeText:
		return v.text == other.text
	case TypeBool:
		return v.boolean == other.boolean
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case TypeNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case TypeText:
		return strconv.Quote(v.text)
	case TypeBool:
		if v.boolean {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "NULL"
	}
}

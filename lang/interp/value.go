package interp

import (
	"math"
	"strconv"
)

// Value is the interface implemented by any value manipulated by the
// interpreter.
type Value interface {
	// String returns the display form of the value, the exact text produced
	// by the print statement.
	String() string

	// Type returns a short string describing the value's type.
	Type() string
}

// A Callable value f may be the operand of a function call, f(x). Client
// code should go through the interpreter's call evaluation, which performs
// the arity check, never call CallInternal directly.
type Callable interface {
	Value
	Name() string
	Arity() int
	CallInternal(it *Interp, args []Value) (Value, error)
}

// NilType is the type of nil. Its only legal value is Nil. (We represent it
// as a number, not struct{}, so that Nil may be constant.)
type NilType byte

// Nil is the nil value.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }

// Bool is the type of boolean values.
type Bool bool

var _ Value = Bool(false)

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Type() string   { return "boolean" }

// Number is the type of numbers, an IEEE-754 double.
type Number float64

var _ Value = Number(0)

// String renders integral numbers without a fractional part ("3", not
// "3.0") and everything else in the default floating-point form.
func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (n Number) Type() string { return "number" }

// String is the type of string values. Its display form is the raw content,
// without quoting.
type String string

var _ Value = String("")

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Truthy reports whether v is considered true in a boolean context. Only
// nil and false are falsy; every other value is truthy, including 0 and the
// empty string.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether x and y are equal under the language's structural
// equality rules: nil equals only nil, numbers compare numerically (so NaN
// is not equal to itself, following IEEE), strings by content, booleans by
// identity, functions and native functions by name. Values of different
// types are never equal.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case NilType:
		_, ok := y.(NilType)
		return ok
	case Number:
		yv, ok := y.(Number)
		return ok && x == yv
	case String:
		yv, ok := y.(String)
		return ok && x == yv
	case Bool:
		yv, ok := y.(Bool)
		return ok && x == yv
	case *Function:
		yv, ok := y.(*Function)
		return ok && x.Name() == yv.Name()
	case *NativeFunc:
		yv, ok := y.(*NativeFunc)
		return ok && x.Name() == yv.Name()
	}
	return false
}

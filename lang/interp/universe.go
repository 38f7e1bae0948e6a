package interp

import (
	"time"
)

// A NativeFunc is a function implemented in Go and exposed to the language.
type NativeFunc struct {
	name  string
	arity int
	fn    func(it *Interp, args []Value) (Value, error)
}

var (
	_ Value    = (*NativeFunc)(nil)
	_ Callable = (*NativeFunc)(nil)
)

// NewNativeFunc returns a native function value with the provided name,
// arity and implementation.
func NewNativeFunc(name string, arity int, fn func(it *Interp, args []Value) (Value, error)) *NativeFunc {
	return &NativeFunc{name: name, arity: arity, fn: fn}
}

func (fn *NativeFunc) String() string { return "<native fn " + fn.name + ">" }
func (fn *NativeFunc) Type() string   { return "native function" }
func (fn *NativeFunc) Name() string   { return fn.name }
func (fn *NativeFunc) Arity() int     { return fn.arity }

func (fn *NativeFunc) CallInternal(it *Interp, args []Value) (Value, error) {
	return fn.fn(it, args)
}

// Universe defines the set of native functions core to the language,
// defined in the global environment of every interpreter. This should not
// be modified; use Interp.Define to add bindings to a single interpreter.
var Universe = map[string]Value{
	"clock": NewNativeFunc("clock", 0, clock),
}

// clock returns the number of seconds since the Unix epoch with sub-second
// precision.
func clock(_ *Interp, _ []Value) (Value, error) {
	return Number(float64(time.Now().UnixMicro()) / 1e6), nil
}

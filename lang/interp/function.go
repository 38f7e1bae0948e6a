package interp

import (
	"errors"

	"github.com/nmercier/golox/lang/ast"
)

// A Function is a user function defined by a function declaration, together
// with the environment that was current at its point of declaration. When
// invoked, the body runs in a fresh child of that captured environment, not
// of the caller's current environment; this is the lexical-scope contract.
type Function struct {
	Decl    *ast.FuncStmt
	Closure EnvRef
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (fn *Function) String() string { return "<fn " + fn.Name() + ">" }
func (fn *Function) Type() string   { return "function" }
func (fn *Function) Name() string   { return fn.Decl.Name.Raw }
func (fn *Function) Arity() int     { return len(fn.Decl.Params) }

// CallInternal binds the arguments to the parameters in a fresh child of
// the captured closure, runs the body, and catches the return signal. A
// body that completes without returning produces nil. The caller's
// environment is restored on every exit path.
func (fn *Function) CallInternal(it *Interp, args []Value) (Value, error) {
	env := it.store.NewEnv(fn.Closure)
	for i, param := range fn.Decl.Params {
		it.store.Define(env, param.Raw, args[i])
	}

	prev := it.env
	it.env = env
	defer func() { it.env = prev }()

	for _, stmt := range fn.Decl.Body.Stmts {
		if err := it.execStmt(stmt); err != nil {
			var ret *returnSignal
			if errors.As(err, &ret) {
				return ret.value, nil
			}
			return nil, err
		}
	}
	return Nil, nil
}

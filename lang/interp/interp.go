// Package interp implements the tree-walking interpreter: the runtime value
// model, the chained environment frames backed by an arena store, and the
// statement and expression evaluators.
package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nmercier/golox/lang/ast"
	"github.com/nmercier/golox/lang/token"
)

// Interp is a tree-walking interpreter. It is single-threaded and
// synchronous: every Interpret call runs to completion or until a runtime
// error propagates out. The zero value is not usable, use New.
type Interp struct {
	// Stdout is the writer the print statement writes to. If nil, os.Stdout
	// is used.
	Stdout io.Writer

	// MaxCallDepth limits the number of nested function calls. If the limit
	// is reached the program fails with a runtime error. A value <= 0 means
	// no limit (recursion depth is then bounded by the host call stack).
	MaxCallDepth int

	store     *EnvStore
	globals   EnvRef
	env       EnvRef
	callDepth int
}

// New returns an interpreter with a fresh environment store whose global
// frame holds the Universe native functions.
func New() *Interp {
	it := &Interp{store: NewEnvStore()}
	it.globals = it.store.NewEnv(NoEnv)
	it.env = it.globals
	for name, v := range Universe {
		it.store.Define(it.globals, name, v)
	}
	return it
}

// Define binds name to v in the interpreter's global environment.
func (it *Interp) Define(name string, v Value) {
	it.store.Define(it.globals, name, v)
}

// Globals returns the handle of the global frame and the store that owns
// it.
func (it *Interp) Globals() (*EnvStore, EnvRef) {
	return it.store, it.globals
}

func (it *Interp) out() io.Writer {
	if it.Stdout != nil {
		return it.Stdout
	}
	return os.Stdout
}

// Interpret evaluates the statements of the program in order against the
// interpreter's global environment. It returns on the first runtime error;
// top-level bindings defined before the error survive, so a persistent
// interpreter (e.g. a REPL) can keep interpreting further programs. The
// context is only consulted between top-level statements.
func (it *Interp) Interpret(ctx context.Context, prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := it.execStmt(stmt); err != nil {
			var ret *returnSignal
			if errors.As(err, &ret) {
				// return cannot unwind past the top level
				return &RuntimeError{Line: ret.line, Msg: "Cannot return from top-level code."}
			}
			return err
		}
	}
	return nil
}

// execStmt evaluates a single statement for its effect. The returned error
// is nil, a *RuntimeError, the internal return signal, or an error from
// writing print output to Stdout; any evaluation
// site propagates both transparently except function invocation, which
// consumes the return signal.
func (it *Interp) execStmt(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		_, err := it.evalExpr(stmt.Expr)
		return err

	case *ast.PrintStmt:
		v, err := it.evalExpr(stmt.Expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(it.out(), v.String())
		return err

	case *ast.VarStmt:
		var v Value = Nil
		if stmt.Init != nil {
			var err error
			if v, err = it.evalExpr(stmt.Init); err != nil {
				return err
			}
		}
		it.store.Define(it.env, stmt.Name.Raw, v)
		return nil

	case *ast.BlockStmt:
		return it.execBlock(stmt)

	case *ast.IfStmt:
		cond, err := it.evalExpr(stmt.Cond)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return it.execStmt(stmt.Then)
		}
		if stmt.Else != nil {
			return it.execStmt(stmt.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.evalExpr(stmt.Cond)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := it.execStmt(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.FuncStmt:
		// the closure is the environment current at declaration; because the
		// name is defined in that same environment, lookups from the body
		// find the function and recursion works
		fn := &Function{Decl: stmt, Closure: it.env}
		it.store.Define(it.env, stmt.Name.Raw, fn)
		return nil

	case *ast.ReturnStmt:
		var v Value = Nil
		if stmt.Value != nil {
			var err error
			if v, err = it.evalExpr(stmt.Value); err != nil {
				return err
			}
		}
		return &returnSignal{value: v, line: stmt.Return.Line}

	case *ast.BadStmt:
		return &RuntimeError{Line: stmt.Start, Msg: "Cannot evaluate invalid syntax."}

	default:
		panic(fmt.Sprintf("unexpected statement type %T", stmt))
	}
}

// execBlock runs the block's statements in a fresh child of the current
// environment. The prior environment is restored on every exit path,
// including runtime error and return-signal propagation.
func (it *Interp) execBlock(block *ast.BlockStmt) error {
	prev := it.env
	it.env = it.store.NewEnv(prev)
	defer func() { it.env = prev }()

	for _, stmt := range block.Stmts {
		if err := it.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// evalExpr evaluates a single expression to a value. Operand evaluation is
// strictly left-to-right.
func (it *Interp) evalExpr(expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		switch expr.Type {
		case token.NUMBER:
			return Number(expr.Val.Num), nil
		case token.STRING:
			return String(expr.Val.Str), nil
		case token.TRUE:
			return Bool(true), nil
		case token.FALSE:
			return Bool(false), nil
		default: // NIL
			return Nil, nil
		}

	case *ast.GroupExpr:
		return it.evalExpr(expr.Expr)

	case *ast.UnaryExpr:
		return it.evalUnaryExpr(expr)

	case *ast.BinExpr:
		return it.evalBinExpr(expr)

	case *ast.LogicalExpr:
		left, err := it.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		// short-circuit: the result is the deciding operand's value, not a
		// coerced boolean
		if expr.Type == token.OR {
			if Truthy(left) {
				return left, nil
			}
		} else if !Truthy(left) {
			return left, nil
		}
		return it.evalExpr(expr.Right)

	case *ast.IdentExpr:
		v, ok := it.store.Get(it.env, expr.Name.Raw)
		if !ok {
			return nil, it.undefinedVar(expr.Name)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := it.evalExpr(expr.Value)
		if err != nil {
			return nil, err
		}
		if !it.store.Assign(it.env, expr.Name.Raw, v) {
			return nil, it.undefinedVar(expr.Name)
		}
		return v, nil

	case *ast.CallExpr:
		return it.evalCallExpr(expr)

	case *ast.BadExpr:
		return nil, &RuntimeError{Line: expr.Line, Msg: "Cannot evaluate invalid syntax."}

	default:
		panic(fmt.Sprintf("unexpected expression type %T", expr))
	}
}

func (it *Interp) evalUnaryExpr(expr *ast.UnaryExpr) (Value, error) {
	right, err := it.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	if expr.Type == token.BANG {
		return Bool(!Truthy(right)), nil
	}

	// MINUS
	n, ok := right.(Number)
	if !ok {
		return nil, &RuntimeError{Line: expr.Op.Line, Msg: "Operand must be a number."}
	}
	return -n, nil
}

func (it *Interp) evalBinExpr(expr *ast.BinExpr) (Value, error) {
	left, err := it.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Type {
	case token.PLUS:
		return it.evalPlus(expr, left, right)

	case token.EQEQ:
		return Bool(Equal(left, right)), nil
	case token.BANGEQ:
		return Bool(!Equal(left, right)), nil
	}

	// the remaining operators require two number operands
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, &RuntimeError{Line: expr.Op.Line, Msg: "Operands must be numbers."}
	}

	switch expr.Type {
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		if r == 0 {
			return nil, &RuntimeError{Line: expr.Op.Line, Msg: "Division by zero."}
		}
		return l / r, nil
	case token.GT:
		return Bool(l > r), nil
	case token.GE:
		return Bool(l >= r), nil
	case token.LT:
		return Bool(l < r), nil
	case token.LE:
		return Bool(l <= r), nil
	default:
		panic(fmt.Sprintf("unexpected binary operator %s", expr.Type))
	}
}

// evalPlus implements +: numeric addition for two numbers, concatenation
// for two strings, and if exactly one operand is a string, the other is
// coerced to its display form and concatenated.
func (it *Interp) evalPlus(expr *ast.BinExpr, left, right Value) (Value, error) {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(String); ok {
		return l + String(right.String()), nil
	}
	if r, ok := right.(String); ok {
		return String(left.String()) + r, nil
	}
	return nil, &RuntimeError{Line: expr.Op.Line, Msg: "Operands must be two numbers or two strings."}
}

func (it *Interp) evalCallExpr(expr *ast.CallExpr) (Value, error) {
	callee, err := it.evalExpr(expr.Fn)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := it.evalExpr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Line: expr.Rparen.Line, Msg: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Line: expr.Rparen.Line,
			Msg:  fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}

	if it.MaxCallDepth > 0 && it.callDepth >= it.MaxCallDepth {
		return nil, &RuntimeError{Line: expr.Rparen.Line, Msg: "Stack overflow."}
	}
	it.callDepth++
	defer func() { it.callDepth-- }()

	return callable.CallInternal(it, args)
}

func (it *Interp) undefinedVar(name token.Value) error {
	return &RuntimeError{
		Line: name.Line,
		Msg:  fmt.Sprintf("Undefined variable '%s'.", name.Raw),
	}
}

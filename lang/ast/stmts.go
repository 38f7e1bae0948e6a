package ast

import (
	"fmt"

	"github.com/nmercier/golox/lang/token"
)

type (
	// BadStmt represents a statement that failed to parse. The parser emits
	// one after synchronizing past a syntax error.
	BadStmt struct {
		Start int
		End   int
	}

	// BlockStmt represents a braced block of statements. Entering a block
	// introduces exactly one fresh child environment.
	BlockStmt struct {
		Lbrace token.Value
		Stmts  []Stmt
		Rbrace token.Value
	}

	// ExprStmt represents an expression used as a statement; the resulting
	// value is discarded.
	ExprStmt struct {
		Expr Expr
	}

	// FuncStmt represents a function declaration.
	FuncStmt struct {
		Fun    token.Value
		Name   token.Value // IDENT token
		Params []token.Value
		Body   *BlockStmt
	}

	// IfStmt represents an if statement with an optional else branch.
	IfStmt struct {
		If   token.Value
		Cond Expr
		Then Stmt
		Else Stmt // may be nil
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Print token.Value
		Expr  Expr
	}

	// ReturnStmt represents a return statement with an optional value.
	ReturnStmt struct {
		Return token.Value
		Value  Expr // may be nil
	}

	// VarStmt represents a variable declaration with an optional
	// initializer.
	VarStmt struct {
		Var  token.Value
		Name token.Value // IDENT token
		Init Expr        // may be nil
	}

	// WhileStmt represents a while loop. The parser also desugars for loops
	// into (possibly block-wrapped) while loops.
	WhileStmt struct {
		While token.Value
		Cond  Expr
		Body  Stmt
	}
)

func (n *BadStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad stmt!", nil)
}
func (n *BadStmt) Span() (start, end int) {
	return n.Start, n.End
}
func (n *BadStmt) Walk(_ Visitor) {}
func (n *BadStmt) stmt()          {}

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (start, end int) {
	return n.Lbrace.Line, n.Rbrace.Line
}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "expr stmt", nil)
}
func (n *ExprStmt) Span() (start, end int) {
	return n.Expr.Span()
}
func (n *ExprStmt) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *ExprStmt) stmt() {}

func (n *FuncStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun "+n.Name.Raw, map[string]int{"params": len(n.Params)})
}
func (n *FuncStmt) Span() (start, end int) {
	_, end = n.Body.Span()
	return n.Fun.Line, end
}
func (n *FuncStmt) Walk(v Visitor) {
	Walk(v, n.Body)
}
func (n *FuncStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl = "if-else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end int) {
	last := n.Then
	if n.Else != nil {
		last = n.Else
	}
	_, end = last.Span()
	return n.If.Line, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *PrintStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "print", nil)
}
func (n *PrintStmt) Span() (start, end int) {
	_, end = n.Expr.Span()
	return n.Print.Line, end
}
func (n *PrintStmt) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *PrintStmt) stmt() {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "return", nil)
}
func (n *ReturnStmt) Span() (start, end int) {
	start, end = n.Return.Line, n.Return.Line
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return start, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var "+n.Name.Raw, nil)
}
func (n *VarStmt) Span() (start, end int) {
	start, end = n.Var.Line, n.Name.Line
	if n.Init != nil {
		_, end = n.Init.Span()
	}
	return start, end
}
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "while", nil)
}
func (n *WhileStmt) Span() (start, end int) {
	_, end = n.Body.Span()
	return n.While.Line, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}

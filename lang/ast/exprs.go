package ast

import (
	"fmt"

	"github.com/nmercier/golox/lang/token"
)

type (
	// AssignExpr represents an assignment expression, e.g. x = y. Assignment
	// is an expression whose value is the assigned value, so x = y = 1 is
	// legal and right-associative.
	AssignExpr struct {
		Name  token.Value // IDENT token of the target
		Value Expr
	}

	// BadExpr represents an expression that failed to parse.
	BadExpr struct {
		Line int
	}

	// BinExpr represents a binary expression, e.g. x + y. The short-circuit
	// logical operators are represented by LogicalExpr, not BinExpr, so that
	// both operands of a BinExpr are always evaluated.
	BinExpr struct {
		Left  Expr
		Type  token.Token // binary operator token type
		Op    token.Value
		Right Expr
	}

	// CallExpr represents a function call, e.g. x(y, z). The closing paren
	// token is kept to report call-site runtime errors.
	CallExpr struct {
		Fn     Expr
		Args   []Expr
		Rparen token.Value
	}

	// GroupExpr represents an expression wrapped in parentheses.
	GroupExpr struct {
		Lparen token.Value
		Expr   Expr
		Rparen token.Value
	}

	// IdentExpr represents a variable reference.
	IdentExpr struct {
		Name token.Value // IDENT token
	}

	// LiteralExpr represents a literal number, string, boolean or nil. The
	// typed payload is carried by Val based on Type (Val.Num for NUMBER,
	// Val.Str for STRING, nothing for TRUE/FALSE/NIL).
	LiteralExpr struct {
		Type token.Token // NUMBER, STRING, TRUE, FALSE or NIL
		Val  token.Value
	}

	// LogicalExpr represents a short-circuit logical expression, e.g.
	// x or y. It evaluates to the value of one of its operands, not to a
	// coerced boolean.
	LogicalExpr struct {
		Left  Expr
		Type  token.Token // AND or OR
		Op    token.Value
		Right Expr
	}

	// UnaryExpr represents a unary operator expression, e.g. -x or !x.
	UnaryExpr struct {
		Type  token.Token // BANG or MINUS
		Op    token.Value
		Right Expr
	}
)

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name.Raw, nil)
}
func (n *AssignExpr) Span() (start, end int) {
	_, end = n.Value.Span()
	return n.Name.Line, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Value)
}
func (n *AssignExpr) expr() {}

func (n *BadExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad expr!", nil)
}
func (n *BadExpr) Span() (start, end int) {
	return n.Line, n.Line
}
func (n *BadExpr) Walk(_ Visitor) {}
func (n *BadExpr) expr()          {}

func (n *BinExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Type.GoString(), nil)
}
func (n *BinExpr) Span() (start, end int) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end int) {
	start, _ = n.Fn.Span()
	return start, n.Rparen.Line
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *GroupExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "(expr)", nil)
}
func (n *GroupExpr) Span() (start, end int) {
	return n.Lparen.Line, n.Rparen.Line
}
func (n *GroupExpr) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *GroupExpr) expr() {}

func (n *IdentExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Name.Raw, nil)
}
func (n *IdentExpr) Span() (start, end int) {
	return n.Name.Line, n.Name.Line
}
func (n *IdentExpr) Walk(_ Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	if lit := n.Type.Literal(n.Val); lit != "" {
		format(f, verb, n, n.Type.String()+" "+lit, nil)
		return
	}
	format(f, verb, n, n.Type.String(), nil)
}
func (n *LiteralExpr) Span() (start, end int) {
	return n.Val.Line, n.Val.Line
}
func (n *LiteralExpr) Walk(_ Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Type.GoString(), nil)
}
func (n *LogicalExpr) Span() (start, end int) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Type.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end int) {
	_, end = n.Right.Span()
	return n.Op.Line, end
}
func (n *UnaryExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *UnaryExpr) expr() {}

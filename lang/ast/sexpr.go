package ast

import (
	"strings"

	"github.com/nmercier/golox/lang/token"
)

// Sexpr renders the node in prefix notation, e.g. `(+ 1 (* 2 3))` for
// `1 + 2 * 3`. Grouping renders as `(group ...)` and assignment as
// `(= name ...)`. Statements render with their keyword as the head symbol.
// This form makes precedence and associativity decisions of the parser
// explicit, which is what the parser tests assert against.
func Sexpr(n Node) string {
	var sb strings.Builder
	writeSexpr(&sb, n)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		for i, s := range n.Stmts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeSexpr(sb, s)
		}

	case *AssignExpr:
		parenthesize(sb, "= "+n.Name.Raw, n.Value)
	case *BadExpr:
		sb.WriteString("(bad)")
	case *BinExpr:
		parenthesize(sb, n.Op.Raw, n.Left, n.Right)
	case *CallExpr:
		nodes := make([]Node, 0, len(n.Args)+1)
		nodes = append(nodes, n.Fn)
		for _, a := range n.Args {
			nodes = append(nodes, a)
		}
		parenthesize(sb, "call", nodes...)
	case *GroupExpr:
		parenthesize(sb, "group", n.Expr)
	case *IdentExpr:
		sb.WriteString(n.Name.Raw)
	case *LiteralExpr:
		switch n.Type {
		case token.STRING:
			sb.WriteString(n.Val.Str)
		case token.NUMBER:
			sb.WriteString(n.Val.Raw)
		default: // TRUE, FALSE, NIL
			sb.WriteString(n.Type.String())
		}
	case *LogicalExpr:
		parenthesize(sb, n.Op.Raw, n.Left, n.Right)
	case *UnaryExpr:
		parenthesize(sb, n.Op.Raw, n.Right)

	case *BadStmt:
		sb.WriteString("(bad)")
	case *BlockStmt:
		nodes := make([]Node, len(n.Stmts))
		for i, s := range n.Stmts {
			nodes[i] = s
		}
		parenthesize(sb, "block", nodes...)
	case *ExprStmt:
		parenthesize(sb, ";", n.Expr)
	case *FuncStmt:
		sb.WriteString("(fun ")
		sb.WriteString(n.Name.Raw)
		sb.WriteByte('(')
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Raw)
		}
		sb.WriteByte(')')
		for _, s := range n.Body.Stmts {
			sb.WriteByte(' ')
			writeSexpr(sb, s)
		}
		sb.WriteByte(')')
	case *IfStmt:
		if n.Else != nil {
			parenthesize(sb, "if-else", n.Cond, n.Then, n.Else)
		} else {
			parenthesize(sb, "if", n.Cond, n.Then)
		}
	case *PrintStmt:
		parenthesize(sb, "print", n.Expr)
	case *ReturnStmt:
		if n.Value != nil {
			parenthesize(sb, "return", n.Value)
		} else {
			sb.WriteString("(return)")
		}
	case *VarStmt:
		if n.Init != nil {
			parenthesize(sb, "var "+n.Name.Raw+" =", n.Init)
		} else {
			sb.WriteString("(var " + n.Name.Raw + ")")
		}
	case *WhileStmt:
		parenthesize(sb, "while", n.Cond, n.Body)
	}
}

func parenthesize(sb *strings.Builder, name string, nodes ...Node) {
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, n := range nodes {
		sb.WriteByte(' ')
		writeSexpr(sb, n)
	}
	sb.WriteByte(')')
}

package parser

import (
	"github.com/nmercier/golox/lang/ast"
	"github.com/nmercier/golox/lang/token"
)

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// parseAssignExpr parses an assignment or anything of lower precedence.
// Assignment is right-associative: the right-hand side is parsed by a
// recursive call. The left-hand side must be a plain variable reference;
// any other expression is reported as an invalid assignment target, but
// parsing continues past the error so that synchronization can take over
// at the statement level.
func (p *parser) parseAssignExpr() ast.Expr {
	left := p.parseSubExpr(0)

	if p.tok == token.EQ {
		eqVal := p.val
		p.advance()
		right := p.parseAssignExpr()

		if ident, ok := left.(*ast.IdentExpr); ok {
			return &ast.AssignExpr{Name: ident.Name, Value: right}
		}
		p.errorAt(token.EQ, eqVal, "Invalid assignment target.")
	}
	return left
}

var (
	binopPriority = [...]struct{ left, right int }{
		token.OR:   {1, 1},
		token.AND:  {2, 2},
		token.EQEQ: {3, 3}, token.BANGEQ: {3, 3},
		token.GT: {4, 4}, token.GE: {4, 4},
		token.LT: {4, 4}, token.LE: {4, 4},
		token.PLUS: {5, 5}, token.MINUS: {5, 5},
		token.STAR: {6, 6}, token.SLASH: {6, 6},
	}
	unopPriority = 7
)

// parses a SubExpr where the binary operator has a priority higher than the
// provided priority (for precedence climbing). All binary operators are
// left-associative.
func (p *parser) parseSubExpr(priority int) ast.Expr {
	var left ast.Expr

	if p.tok.IsUnop() {
		var unop ast.UnaryExpr
		unop.Type = p.tok
		unop.Op = p.expect(p.tok)
		unop.Right = p.parseSubExpr(unopPriority)
		left = &unop
	} else {
		left = p.parseCallExpr()
	}

	for p.tok.IsBinop() && binopPriority[p.tok].left > priority {
		typ, opVal := p.tok, p.val
		p.advance()
		right := p.parseSubExpr(binopPriority[typ].right)
		if typ.IsLogical() {
			left = &ast.LogicalExpr{Left: left, Type: typ, Op: opVal, Right: right}
		} else {
			left = &ast.BinExpr{Left: left, Type: typ, Op: opVal, Right: right}
		}
	}
	return left
}

// parseCallExpr parses a primary expression followed by any number of call
// argument groups, so f(a)(b) parses as nested calls.
func (p *parser) parseCallExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	for p.tok == token.LPAREN {
		expr = p.finishCallExpr(expr)
	}
	return expr
}

func (p *parser) finishCallExpr(fn ast.Expr) *ast.CallExpr {
	var expr ast.CallExpr
	expr.Fn = fn
	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		expr.Args = append(expr.Args, p.parseExpr())
		for p.tok == token.COMMA {
			p.advance()
			expr.Args = append(expr.Args, p.parseExpr())
		}
	}
	expr.Rparen = p.expect(token.RPAREN)
	return &expr
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NIL:
		lit := &ast.LiteralExpr{Type: p.tok, Val: p.val}
		p.advance()
		return lit

	case token.IDENT:
		ident := &ast.IdentExpr{Name: p.val}
		p.advance()
		return ident

	case token.LPAREN:
		var group ast.GroupExpr
		group.Lparen = p.expect(token.LPAREN)
		group.Expr = p.parseExpr()
		group.Rparen = p.expect(token.RPAREN)
		return &group

	default:
		p.errorExpected("expression")
		panic(errPanicMode)
	}
}

package parser

import (
	"github.com/nmercier/golox/lang/ast"
	"github.com/nmercier/golox/lang/token"
)

func (p *parser) parseProgram() *ast.Program {
	var prog ast.Program
	prog.Name = p.filename

	for p.tok != token.EOF {
		if stmt := p.parseDecl(); stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	prog.EOF = p.val
	return &prog
}

// parseDecl parses a single declaration or statement, recovering from a
// syntax error by synchronizing to the next statement boundary and
// returning a BadStmt covering the discarded interval.
func (p *parser) parseDecl() (stmt ast.Stmt) {
	start := p.val.Line

	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				stmt = &ast.BadStmt{
					Start: start,
					End:   p.syncAfterError(),
				}
				return
			}
			panic(err)
		}
	}()

	switch p.tok {
	case token.VAR:
		return p.parseVarStmt()
	case token.FUN:
		return p.parseFuncStmt()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.PRINT:
		return p.parsePrintStmt()
	case token.LBRACE:
		return p.parseBlockStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseVarStmt() *ast.VarStmt {
	var stmt ast.VarStmt
	stmt.Var = p.expect(token.VAR)
	stmt.Name = p.expect(token.IDENT)
	if p.tok == token.EQ {
		p.advance()
		stmt.Init = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseFuncStmt() *ast.FuncStmt {
	var stmt ast.FuncStmt
	stmt.Fun = p.expect(token.FUN)
	stmt.Name = p.expect(token.IDENT)

	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		stmt.Params = append(stmt.Params, p.expect(token.IDENT))
		for p.tok == token.COMMA {
			p.advance()
			stmt.Params = append(stmt.Params, p.expect(token.IDENT))
		}
	}
	p.expect(token.RPAREN)

	stmt.Body = p.parseBlockStmt()
	return &stmt
}

func (p *parser) parseBlockStmt() *ast.BlockStmt {
	var block ast.BlockStmt
	block.Lbrace = p.expect(token.LBRACE)
	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		if stmt := p.parseDecl(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	block.Rbrace = p.expect(token.RBRACE)
	return &block
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Then = p.parseStmt()
	if p.tok == token.ELSE {
		p.advance()
		stmt.Else = p.parseStmt()
	}
	return &stmt
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	var stmt ast.WhileStmt
	stmt.While = p.expect(token.WHILE)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Body = p.parseStmt()
	return &stmt
}

// parseForStmt parses a for statement and desugars it into a while loop:
//
//	for (init; cond; incr) body
//
// becomes
//
//	{ init; while (cond) { body; incr; } }
//
// A missing cond is replaced by true. The outer block is only emitted when
// init is present, so that the scope of the induction variable matches the
// loop. The inner block is only emitted when incr is present.
func (p *parser) parseForStmt() ast.Stmt {
	forVal := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok {
	case token.SEMICOLON:
		p.advance()
	case token.VAR:
		init = p.parseVarStmt()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if p.tok != token.SEMICOLON {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	var incr ast.Expr
	if p.tok != token.RPAREN {
		incr = p.parseExpr()
	}
	rparen := p.expect(token.RPAREN)

	body := p.parseStmt()

	if incr != nil {
		_, end := body.Span()
		body = &ast.BlockStmt{
			Lbrace: token.Value{Raw: "{", Line: forVal.Line},
			Stmts:  []ast.Stmt{body, &ast.ExprStmt{Expr: incr}},
			Rbrace: token.Value{Raw: "}", Line: end},
		}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{
			Type: token.TRUE,
			Val:  token.Value{Raw: "true", Line: rparen.Line},
		}
	}
	var loop ast.Stmt = &ast.WhileStmt{While: forVal, Cond: cond, Body: body}

	if init != nil {
		_, end := loop.Span()
		loop = &ast.BlockStmt{
			Lbrace: token.Value{Raw: "{", Line: forVal.Line},
			Stmts:  []ast.Stmt{init, loop},
			Rbrace: token.Value{Raw: "}", Line: end},
		}
	}
	return loop
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Return = p.expect(token.RETURN)
	if p.tok != token.SEMICOLON {
		stmt.Value = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	var stmt ast.PrintStmt
	stmt.Print = p.expect(token.PRINT)
	stmt.Expr = p.parseExpr()
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	var stmt ast.ExprStmt
	stmt.Expr = p.parseExpr()
	p.expect(token.SEMICOLON)
	return &stmt
}

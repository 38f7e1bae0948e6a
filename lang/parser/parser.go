// Package parser implements the recursive-descent parser that transforms a
// token stream into an abstract syntax tree (AST). On a syntax error the
// parser reports the error against the offending token and synchronizes to
// the next statement boundary, so a single parse reports as many distinct
// errors as possible.
package parser

import (
	"context"
	"errors"
	"strings"

	"github.com/nmercier/golox/lang/ast"
	"github.com/nmercier/golox/lang/scanner"
	"github.com/nmercier/golox/lang/token"
)

// ParseFiles is a helper function that parses the source files and returns
// the ASTs along with any error encountered. The error, if non-nil, is
// guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) ([]*ast.Program, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var el scanner.ErrorList
	res := make([]*ast.Program, 0, len(files))
	for _, file := range files {
		toks, err := scanner.ScanFiles(ctx, file)
		if err != nil {
			el = append(el, err.(scanner.ErrorList)...)
		}
		if len(toks) == 0 || len(toks[0]) == 0 {
			continue
		}

		var p parser
		p.init(file, toks[0])
		prog := p.parseProgram()
		el = append(el, p.errors...)
		res = append(res, prog)
	}
	el.Sort()
	return res, el.Err()
}

// ParseChunk is a helper function that scans and parses a single chunk of
// source bytes under the name specified in filename and returns the AST and
// any error encountered. The error, if non-nil, is guaranteed to be a
// scanner.ErrorList.
func ParseChunk(ctx context.Context, filename string, src []byte) (*ast.Program, error) {
	var el scanner.ErrorList
	toks := scanner.ScanChunk(ctx, filename, src, el.Add)

	var p parser
	p.init(filename, toks)
	prog := p.parseProgram()
	el = append(el, p.errors...)
	el.Sort()
	return prog, el.Err()
}

// ParseTokens parses an already-scanned token stream. The stream must end
// with an EOF token. The error, if non-nil, is guaranteed to be a
// scanner.ErrorList.
func ParseTokens(filename string, toks []scanner.TokenAndValue) (*ast.Program, error) {
	var p parser
	p.init(filename, toks)
	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

var errPanicMode = errors.New("panic")

// parser parses a token stream and generates an AST.
type parser struct {
	// filename and toks are immutable after p.init, errors accumulates the
	// syntax errors
	filename string
	toks     []scanner.TokenAndValue
	errors   scanner.ErrorList

	// current token, one token of lookahead
	index int
	tok   token.Token
	val   token.Value
}

func (p *parser) init(filename string, toks []scanner.TokenAndValue) {
	p.filename = filename
	p.toks = toks
	p.index = 0

	// the stream is expected to end with an EOF token, tolerate an empty
	// slice by treating it as immediately at end
	p.tok, p.val = token.EOF, token.Value{Line: 1}

	// advance to first token
	p.advance()
}

func (p *parser) advance() {
	if p.index >= len(p.toks) {
		// the stream ends with EOF, stay there
		return
	}
	tv := p.toks[p.index]
	p.index++
	p.tok, p.val = tv.Token, tv.Value
}

// expect returns the value of the current token and consumes it if it is
// one of the expected tokens, otherwise it reports an error and panics with
// errPanicMode which gets recovered at the statement level, resulting in a
// BadStmt.
func (p *parser) expect(toks ...token.Token) token.Value {
	val := p.val

	var buf strings.Builder
	var ok bool
	for i, tok := range toks {
		if p.tok == tok {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}

	if !ok {
		var lbl string
		if len(toks) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.errorExpected(lbl)
		panic(errPanicMode)
	}

	p.advance()
	return val
}

// error reports msg against the current token, prefixed with the token's
// location ("at end" for EOF, "at '<lexeme>'" otherwise).
func (p *parser) error(msg string) {
	p.errorAt(p.tok, p.val, msg)
}

func (p *parser) errorAt(tok token.Token, val token.Value, msg string) {
	loc := "at end"
	if tok != token.EOF {
		loc = "at '" + val.Raw + "'"
	}
	p.errors.Add(val.Pos(p.filename), loc+": "+msg)
}

func (p *parser) errorExpected(lbl string) {
	msg := "expected " + lbl
	switch lit := p.tok.Literal(p.val); lit {
	case "":
		msg += ", found " + p.tok.GoString()
	default:
		// print 123 rather than 'number literal', etc.
		msg += ", found " + lit
	}
	p.error(msg)
}

type syncMode int

const (
	syncAfter syncMode = iota
	syncAt
)

// Statement-keyword tokens are safe positions to resume parsing at; a
// semicolon is a safe position to resume after.
var syncToks = map[token.Token]syncMode{
	token.SEMICOLON: syncAfter,
	token.CLASS:     syncAt,
	token.FUN:       syncAt,
	token.VAR:       syncAt,
	token.FOR:       syncAt,
	token.IF:        syncAt,
	token.WHILE:     syncAt,
	token.PRINT:     syncAt,
	token.RETURN:    syncAt,
}

// syncAfterError discards tokens up to the next statement boundary and
// returns the line of the token where it stopped: the discarded ';', or the
// statement keyword or EOF at which parsing resumes.
func (p *parser) syncAfterError() int {
	for p.tok != token.EOF {
		if mode, ok := syncToks[p.tok]; ok {
			if mode == syncAfter {
				line := p.val.Line
				p.advance()
				return line
			}
			return p.val.Line
		}
		p.advance()
	}
	return p.val.Line
}

func tokenIn(t token.Token, toks ...token.Token) bool {
	for _, tok := range toks {
		if t == tok {
			return true
		}
	}
	return false
}

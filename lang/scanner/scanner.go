// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner implements the scanner that tokenizes source files for
// the parser to consume. Errors are accumulated in a go/scanner ErrorList,
// which this package re-exports for convenience.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"go/scanner"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/nmercier/golox/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token type with the token value type in the
// same struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles is a helper function that tokenizes the source files and returns
// the list of tokens, grouped by the file at the same index, along with any
// error encountered. The error, if non-nil, is guaranteed to be an
// ErrorList.
func ScanFiles(ctx context.Context, files ...string) ([][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var el ErrorList
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}
		tokensByFile[i] = ScanChunk(ctx, file, b, el.Add)
	}
	el.Sort()
	return tokensByFile, el.Err()
}

// ScanChunk tokenizes a single chunk of source bytes under the name
// specified in filename. The returned slice always ends with an EOF token.
// Scan errors are reported to errHandler, which may be nil.
func ScanChunk(ctx context.Context, filename string, src []byte, errHandler func(token.Position, string)) []TokenAndValue {
	var (
		s      Scanner
		tokVal token.Value
		toks   []TokenAndValue
	)

	s.Init(filename, src, errHandler)
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			return toks
		}
	}
}

// Scanner tokenizes source files for the parser to consume.
type Scanner struct {
	// immutable state after Init
	filename string
	src      []byte
	err      func(pos token.Position, msg string)

	// mutable scanning state
	invalidByte byte // when cur==RuneError due to failed utf8 decode, this is the invalid byte
	cur         rune // current character
	off         int  // character offset in bytes of cur
	roff        int  // reading offset in bytes (position after current character)
	line        int  // 1-based line of cur
}

// Init initializes the scanner to tokenize a new source buffer.
func (s *Scanner) Init(filename string, src []byte, errHandler func(token.Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler

	s.invalidByte = 0
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1

	s.advance()
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.line++
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.line++
	}

	// fast path if the rune is an ASCII char, no decoding necessary
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		// not ASCII
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.line, "illegal UTF-8 encoding")
			// store the actual invalid byte
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(line int, msg string) {
	if s.err != nil {
		s.err(token.Position{Filename: s.filename, Line: line}, msg)
	}
}

func (s *Scanner) errorf(line int, format string, args ...any) {
	s.error(line, fmt.Sprintf(format, args...))
}

// advance only if the current char matches c.
func (s *Scanner) advanceIf(c rune) bool {
	if s.cur == c {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source buffer.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	// current token start line
	line := s.line

	switch cur := s.cur; {
	case isLetter(cur):
		// keywords and identifiers
		lit := s.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			// keywords are longer than one letter - avoid lookup otherwise
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Line: line}

	case isDecimal(cur):
		lit := s.number()
		tok = token.NUMBER
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil && errors.Is(err, strconv.ErrRange) {
			s.error(line, "number literal value out of range")
		}
		*tokVal = token.Value{Raw: lit, Line: line, Num: v}

	default:
		s.advance() // always make progress
		switch cur {
		case '=', '!', '<', '>':
			// single-char operators that can be followed by '='
			raw := string(cur)
			if s.advanceIf('=') {
				raw += "="
			}
			tok = lookupPunct(raw)
			*tokVal = token.Value{Raw: raw, Line: line}

		case '"':
			tok = token.STRING
			lit, val := s.stringLit(line)
			*tokVal = token.Value{Raw: lit, Line: line, Str: val}

		case '(', ')', '{', '}', ',', '.', '-', '+', ';', '*', '/':
			// unambiguous single-char punctuation ('//' comments are consumed
			// with the whitespace, so '/' is always a SLASH here)
			tok = lookupPunct(string(cur))
			*tokVal = token.Value{Raw: string(cur), Line: line}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Line: line}

		default:
			if cur == utf8.RuneError && s.invalidByte > 0 {
				cur = rune(s.invalidByte)
				s.invalidByte = 0
			}
			s.errorf(line, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Line: line}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) number() string {
	start := s.off
	for isDecimal(s.cur) {
		s.advance()
	}
	// a fractional part requires a digit right after the dot, otherwise the
	// dot is left for the next token
	if s.cur == '.' && isDecimal(rune(s.peek())) {
		s.advance()
		for isDecimal(s.cur) {
			s.advance()
		}
	}
	return string(s.src[start:s.off])
}

// stringLit scans a string literal after the opening quote has been
// consumed. It returns the raw lexeme including the quotes and the
// interpreted value. Strings may span multiple lines and support no escape
// sequences.
func (s *Scanner) stringLit(startLine int) (raw, val string) {
	start := s.off
	for s.cur != '"' && s.cur >= 0 {
		s.advance()
	}
	if s.cur < 0 {
		s.error(startLine, "unterminated string literal")
		return `"` + string(s.src[start:s.off]), string(s.src[start:s.off])
	}

	val = string(s.src[start:s.off])
	s.advance() // closing quote
	return `"` + val + `"`, val
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for isWhitespace(s.cur) {
			s.advance()
		}
		if s.cur == '/' && s.peek() == '/' {
			// line comment, consumed up to (excluding) the newline
			for s.cur != '\n' && s.cur >= 0 {
				s.advance()
			}
			continue
		}
		return
	}
}

var puncts = map[string]token.Token{
	"(": token.LPAREN, ")": token.RPAREN, "{": token.LBRACE, "}": token.RBRACE,
	",": token.COMMA, ".": token.DOT, "-": token.MINUS, "+": token.PLUS,
	";": token.SEMICOLON, "/": token.SLASH, "*": token.STAR,
	"!": token.BANG, "!=": token.BANGEQ, "=": token.EQ, "==": token.EQEQ,
	">": token.GT, ">=": token.GE, "<": token.LT, "<=": token.LE,
}

func lookupPunct(raw string) token.Token {
	if tok, ok := puncts[raw]; ok {
		return tok
	}
	return token.ILLEGAL
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}

func isDecimal(rn rune) bool {
	return '0' <= rn && rn <= '9'
}

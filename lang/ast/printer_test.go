package ast_test

import (
	"context"
	"strings"
	"testing"

	"github.com/nmercier/golox/lang/ast"
	"github.com/nmercier/golox/lang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseChunk(context.Background(), "test.lox", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestPrinterTree(t *testing.T) {
	prog := parse(t, "var a = 1;\nprint a;")

	var sb strings.Builder
	p := ast.Printer{Output: &sb}
	require.NoError(t, p.Print(prog))

	want := `program
. var a
. . number literal 1
. print
. . a
`
	assert.Equal(t, want, sb.String())
}

func TestPrinterLines(t *testing.T) {
	prog := parse(t, "var a = 1;\nprint a;")

	var sb strings.Builder
	p := ast.Printer{Output: &sb, Lines: true}
	require.NoError(t, p.Print(prog))

	want := `[1:2] program
. [1:1] var a
. . [1:1] number literal 1
. [2:2] print
. . [2:2] a
`
	assert.Equal(t, want, sb.String())
}

func TestPrinterCounts(t *testing.T) {
	prog := parse(t, "fun f(a, b) { return a; }")

	var sb strings.Builder
	p := ast.Printer{Output: &sb, NodeFmt: "%#v"}
	require.NoError(t, p.Print(prog))

	want := `program {stmts=1}
. fun f {params=2}
. . block {stmts=1}
. . . return
. . . . a
`
	assert.Equal(t, want, sb.String())
}

func TestPrinterNested(t *testing.T) {
	prog := parse(t, "if (a and b) print 1 + 2; else print !c;")

	var sb strings.Builder
	p := ast.Printer{Output: &sb}
	require.NoError(t, p.Print(prog))

	want := `program
. if-else
. . logical and
. . . a
. . . b
. . print
. . . binary '+'
. . . . number literal 1
. . . . number literal 2
. . print
. . . unary '!'
. . . . c
`
	assert.Equal(t, want, sb.String())
}

func TestWalkSkipsChildren(t *testing.T) {
	prog := parse(t, "print 1 + 2;")

	var seen []string
	var walk ast.VisitorFunc
	walk = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitExit {
			return nil
		}
		seen = append(seen, ast.Sexpr(n))
		if _, ok := n.(*ast.PrintStmt); ok {
			// returning nil skips the print statement's children
			return nil
		}
		return walk
	}
	ast.Walk(walk, prog)

	assert.Equal(t, []string{"(print (+ 1 2))", "(print (+ 1 2))"}, seen)
}

package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/nmercier/golox/lang/ast"
	"github.com/nmercier/golox/lang/parser"
	"github.com/nmercier/golox/lang/scanner"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, c.Lines, "", args...)
}

// ParseFiles parses the source files and prints the resulting ASTs as
// indented trees. Scan and parse errors are printed to stderr and returned;
// the AST parsed so far is still printed.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, lines bool, nodeFmt string, files ...string) error {
	printer := ast.Printer{
		Output:  stdio.Stdout,
		Lines:   lines,
		NodeFmt: nodeFmt,
	}
	progs, err := parser.ParseFiles(ctx, files...)
	for _, prog := range progs {
		if perr := printer.Print(prog); perr != nil {
			fmt.Fprintln(stdio.Stderr, perr)
			return perr
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}

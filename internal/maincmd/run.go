package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/nmercier/golox/lang/interp"
	"github.com/nmercier/golox/lang/parser"
	"github.com/nmercier/golox/lang/scanner"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFiles(ctx, stdio, args...)
}

// RunFiles interprets the source files in order, each with a fresh
// interpreter, stopping at the first failure. If any scan or parse error is
// reported for a file, it is printed to stderr and evaluation of that file
// is skipped.
func RunFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	for _, file := range files {
		if err := runFile(ctx, stdio, file); err != nil {
			return err
		}
	}
	return nil
}

func runFile(ctx context.Context, stdio mainer.Stdio, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	prog, err := parser.ParseChunk(ctx, file, src)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	it := interp.New()
	it.Stdout = stdio.Stdout
	if err := it.Interpret(ctx, prog); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}

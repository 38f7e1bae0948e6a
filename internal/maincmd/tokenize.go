package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/nmercier/golox/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles scans the source files and prints one token per line in the
// form "file:line: token [literal]". Scan errors are printed to stderr and
// returned.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	toksByFile, err := scanner.ScanFiles(ctx, files...)
	for i, toks := range toksByFile {
		for _, tv := range toks {
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s", files[i], tv.Value.Line, tv.Token)
			if lit := tv.Token.Literal(tv.Value); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}

package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
	"github.com/nmercier/golox/lang/interp"
	"github.com/nmercier/golox/lang/parser"
	"github.com/nmercier/golox/lang/scanner"
)

// replConfig is the REPL configuration, read from GOLOX_* environment
// variables.
type replConfig struct {
	Prompt   string `env:"PROMPT" envDefault:"> "`
	NoBanner bool   `env:"NO_BANNER"`
}

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(ctx, stdio, c.BuildVersion)
}

// Repl runs a read-eval-print loop on stdio.Stdin until end of input. A
// single interpreter instance persists across prompts so that top-level
// bindings survive. Scan, parse and runtime errors are reported and the
// prompt resumes.
func Repl(ctx context.Context, stdio mainer.Stdio, version string) error {
	var cfg replConfig
	if err := env.Parse(&cfg, env.Options{Prefix: "GOLOX_"}); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	if !cfg.NoBanner {
		fmt.Fprintf(stdio.Stdout, "%s %s (ctrl-D to exit)\n", binName, version)
	}

	it := interp.New()
	it.Stdout = stdio.Stdout

	scn := bufio.NewScanner(stdio.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(stdio.Stdout, cfg.Prompt)
		if !scn.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return scn.Err()
		}

		prog, err := parser.ParseChunk(ctx, "repl", scn.Bytes())
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			continue
		}
		if err := it.Interpret(ctx, prog); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
}

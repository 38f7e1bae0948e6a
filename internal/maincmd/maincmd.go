// Package maincmd implements the command-line interface of the golox
// binary: the REPL, the file runner and the tokenize/parse tooling
// commands.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
	"github.com/nmercier/golox/lang/interp"
	"github.com/nmercier/golox/lang/scanner"
)

const binName = "golox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the lox scripting language. Without any
argument, an interactive session (REPL) is started; with a single <path>
argument, the file is interpreted.

The <command> can be one of:
       repl                      Start an interactive session (the
                                 default when no argument is given).
       run                       Interpret the provided files.
       tokenize                  Execute the scanner phase and print the
                                 resulting tokens.
       parse                     Execute the parser phase and print the
                                 resulting abstract syntax tree (AST).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <parse> command are:
       --lines                   Print the source line span of each node.

The REPL reads its configuration from GOLOX_* environment variables
(GOLOX_PROMPT, GOLOX_NO_BANNER).
`, binName)
)

// Exit codes of the binary, following the BSD sysexits convention for
// usage, data and I/O errors.
const (
	exitUsage   mainer.ExitCode = 64
	exitParse   mainer.ExitCode = 65
	exitIO      mainer.ExitCode = 66
	exitRuntime mainer.ExitCode = 70
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Lines bool `flag:"lines"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	commands := buildCmds(c)

	var cmdName string
	switch {
	case len(c.args) == 0:
		// no argument, start the REPL
		cmdName = "repl"
	case commands[strings.ToLower(c.args[0])] != nil:
		cmdName = strings.ToLower(c.args[0])
		c.args = c.args[1:]
	default:
		// a bare path argument interprets the file
		cmdName = "run"
	}
	c.cmdFn = commands[cmdName]

	if cmdName == "tokenize" || cmdName == "parse" || cmdName == "run" {
		if len(c.args) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	}
	if c.flags["lines"] && cmdName != "parse" {
		return fmt.Errorf("%s: invalid flag 'lines'", cmdName)
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		// each command takes care of printing its errors, just map the error
		// to the exit code
		return exitCode(err)
	}
	return mainer.Success
}

// exitCode maps the error of a command to the binary's exit code: 65 for
// scan/parse errors, 66 for I/O errors, 70 for runtime errors.
func exitCode(err error) mainer.ExitCode {
	var (
		el      scanner.ErrorList
		rt      *interp.RuntimeError
		pathErr *fs.PathError
	)
	switch {
	case errors.As(err, &el):
		return exitParse
	case errors.As(err, &rt):
		return exitRuntime
	case errors.As(err, &pathErr):
		return exitIO
	}
	return mainer.Failure
}

// valid commands are those that take a context.Context, a mainer.Stdio and
// a slice of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}

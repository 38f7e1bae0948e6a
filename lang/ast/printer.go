package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of the AST nodes as an indented tree,
// one node per line. This is the output of the CLI parse command.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Lines indicates if the span of each node (start and end source line)
	// should be printed before the node.
	Lines bool

	// NodeFmt is the format string to use to print the nodes. The verb must
	// be either `s` or `v`, a width can be set, and the `#` and `-` flags
	// are supported (`-` only when a width is set, to pad with spaces on
	// the right instead of the left). Defaults to `%v`.
	NodeFmt string
}

// Print pretty-prints the AST rooted at node n.
func (p *Printer) Print(n Node) error {
	pp := &printer{
		w:       p.Output,
		lines:   p.Lines,
		nodeFmt: p.NodeFmt,
	}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}

	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	lines   bool
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.lines {
		start, end := n.Span()
		format += "[%d:%d] "
		args = append(args, start, end)
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

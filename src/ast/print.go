package ast

import (
	"fmt"
	"strings"
)

// String returns a one-line, print-friendly summary of n, in the style of
// the teacher's ir.Node.String(): the Kind name plus whatever data field is
// meaningful for that Kind.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Identifier:
		if n.Sym != nil {
			return fmt.Sprintf("Identifier %q (%s)", n.Name, n.Sym.Kind)
		}
		return fmt.Sprintf("Identifier %q (%s)", n.Name, n.IdentKind)
	case Constant:
		return fmt.Sprintf("Constant %d", n.Value)
	case Declarator:
		return fmt.Sprintf("Declarator %q", n.Name)
	case Assign, BinaryOp, UnaryOp:
		return fmt.Sprintf("%s %q", n.Kind, n.Op)
	default:
		return n.Kind.String()
	}
}

// Print recursively dumps n and its children to stdout, indenting once per
// recursive call — the AST-printer component of spec.md §2, grounded on the
// teacher's ir.Node.Print.
func (n *Node) Print(depth int) {
	if depth < 0 {
		depth = 0
	}
	if n == nil {
		fmt.Printf("%*c%s\n", depth<<1, ' ', "<nil>")
		return
	}
	fmt.Printf("%*c%s\n", depth<<1, ' ', n.String())
	for _, c := range n.Children {
		c.Print(depth + 1)
	}
}

// Dump returns Print's output as a string instead of writing to stdout;
// used by tests and by the `-ast` CLI flag, whose output goes to stdout or
// to the -o file.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dumpTo(&sb, 0)
	return sb.String()
}

func (n *Node) dumpTo(sb *strings.Builder, depth int) {
	if n == nil {
		fmt.Fprintf(sb, "%*c%s\n", depth<<1, ' ', "<nil>")
		return
	}
	fmt.Fprintf(sb, "%*c%s\n", depth<<1, ' ', n.String())
	for _, c := range n.Children {
		c.dumpTo(sb, depth+1)
	}
}

// Package sig implements the function-signature/arity pass (spec.md §4.3):
// it stamps each function declarator with its declared parameter count and
// checks every call site's argument count against it, including the
// forward-reference case where a call precedes the definition it names.
package sig

import (
	"tinycc/src/ast"
	"tinycc/src/diag"
	"tinycc/src/symtab"
)

// Run walks program, recording each function's declared arity on its shared
// Symbol and reporting a diagnostic for every arity mismatch.
func Run(program *ast.Node, tally *diag.Tally) {
	s := &signer{tally: tally, seen: make(map[*symtab.Symbol]bool)}
	v := ast.NewVisitor()
	v.On(ast.FunctionDefinition, s.functionDefinition)
	v.On(ast.FunctionCall, s.functionCall)
	for _, item := range program.Children {
		ast.Walk(item, v)
	}
}

type signer struct {
	tally *diag.Tally
	// seen tracks which UndefinedFunction stubs have already had their
	// arity recorded by a call, distinguishing "first call, arity 0" from
	// "no call yet" (both read Symbol.Parameters == 0).
	seen map[*symtab.Symbol]bool
}

// functionDefinition handles spec.md §4.3's "On FunctionDefinition" rule. A
// symbol that arrived here as an UndefinedFunction stub (src/resolve binds a
// forward call's callee and a later definition's declarator to the same
// Symbol) must have its previously call-recorded arity checked against the
// definition before being upgraded to Function.
func (s *signer) functionDefinition(v *ast.Visitor, n *ast.Node) error {
	decl := n.FuncDeclarator()
	declared := n.NumParams

	if sym := decl.Sym; sym != nil {
		if sym.Kind == symtab.UndefinedFunction && s.seen[sym] && sym.Parameters != declared {
			s.tally.Errorf(n.Line, "function %q called with %d argument(s), declared with %d",
				sym.Name, sym.Parameters, declared)
		}
		sym.Kind = symtab.Function
		sym.Parameters = declared
	}

	return v.Visit(n.FuncBody())
}

// functionCall handles spec.md §4.3's "On FunctionCall" rule, then recurses
// into the call's own arguments (which may themselves contain calls).
func (s *signer) functionCall(v *ast.Visitor, n *ast.Node) error {
	callee := n.Callee()
	argc := len(n.Args())

	if sym := callee.Sym; sym != nil {
		switch sym.Kind {
		case symtab.Function:
			if argc != sym.Parameters {
				s.tally.Errorf(n.Line, "call to %q has %d argument(s), expected %d", sym.Name, argc, sym.Parameters)
			}
		case symtab.UndefinedFunction:
			if !s.seen[sym] {
				sym.Parameters = argc
				s.seen[sym] = true
			} else if argc != sym.Parameters {
				s.tally.Errorf(n.Line, "call to %q has %d argument(s), previous call had %d", sym.Name, argc, sym.Parameters)
			}
		}
	}

	for _, a := range n.Args() {
		if err := v.Visit(a); err != nil {
			return err
		}
	}
	return nil
}

package codegen

import (
	"tinycc/src/asmir"
	"tinycc/src/ast"
	"tinycc/src/symtab"
)

// genCall lowers a FunctionCall under the fixed cdecl-32 convention:
// arguments pushed right-to-left so the first declared parameter ends up
// closest to the return address, `call`, then the caller tears its own
// arguments back off the stack.
//
// An Extern directive is emitted unconditionally at every call site whose
// callee is still an UndefinedFunction symbol (spec.md §4.7 item 2): this
// package never checks whether it already emitted one for the same callee.
// Deduplicating repeated Extern directives for the same symbol is the
// peephole GlobalExternOptimizer's job, not codegen's — the same
// naive-emit/peephole-cleans-up split genFunction uses for the `sub esp`
// frame reservation.
func (g *Generator) genCall(n *ast.Node) {
	callee := n.Callee()
	args := n.Args()

	for i := len(args) - 1; i >= 0; i-- {
		g.genExpression(args[i])
		g.ins("push", asmir.R(asmir.EAX))
	}

	label := g.functionLabel(callee.Sym)
	if callee.Sym.Kind == symtab.UndefinedFunction {
		g.emit(asmir.Directive{Kind: asmir.Extern, Name: label})
	}
	g.ins("call", asmir.LabelRef{Label: label})

	if argc := len(args); argc > 0 {
		g.ins("add", asmir.R(asmir.ESP), asmir.Imm(int32(argc*4)))
	}
}

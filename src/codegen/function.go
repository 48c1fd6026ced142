package codegen

import (
	"tinycc/src/asmir"
	"tinycc/src/ast"
)

// genFunction lowers one FunctionDefinition: the cdecl-32 prologue, the
// body, and the epilogue at the function's shared return label (spec.md
// §4.6's "every return funnels through one epilogue" rule, needed because
// a Return statement can appear anywhere inside the body, not just last).
//
// The `sub esp, N` frame-size instruction is emitted as a placeholder and
// patched once the body has run and top_alloc is known — the teacher's
// backend/riscv.emitPrologue has the same two-pass shape (it reserves the
// frame slot, assembles the body, then rewrites the reservation in place)
// because the frame size isn't known until every local in the body has
// been counted.
func (g *Generator) genFunction(n *ast.Node) {
	decl := n.FuncDeclarator()
	label := g.functionLabel(decl.Sym)

	g.lastAlloc = 0
	g.topAlloc = 0
	g.retLabel = "ret_" + label

	g.emit(asmir.Directive{Kind: asmir.Global, Name: label})
	g.emit(asmir.Label{Name: label, Global: true})
	g.ins("push", asmir.R(asmir.EBP))
	g.ins("mov", asmir.R(asmir.EBP), asmir.R(asmir.ESP))
	subIdx := g.ins("sub", asmir.R(asmir.ESP), asmir.Imm(0))

	g.genCompoundStatement(n.FuncBody())

	g.emit(asmir.Label{Name: g.retLabel})
	g.ins("mov", asmir.R(asmir.ESP), asmir.R(asmir.EBP))
	g.ins("pop", asmir.R(asmir.EBP))
	g.ins("ret")

	// Patched unconditionally, even to `sub esp, 0` when the function has no
	// locals: eliding a no-op reservation here is the peephole
	// UnnecessaryCodeOptimizer's job, not codegen's (the same
	// naive-emit/peephole-cleans-up split as the Extern directive at call
	// sites, see DESIGN.md).
	g.items[subIdx] = asmir.Instruction{Op: "sub", Args: []asmir.Operand{asmir.R(asmir.ESP), asmir.Imm(int32(g.topAlloc))}}
}

// Package codegen lowers a resolved, sized AST (spec.md §4.2–§4.5 have all
// run) into the flat asmir.Item stream spec.md §4.6 describes: one
// accumulator (eax), a negative-offset local/temporary stack frame, and a
// fixed cdecl-32 calling convention.
//
// This is new infrastructure grounded conceptually rather than
// line-for-line: the teacher's backend/riscv and backend/arm packages emit
// text directly through util.Writer with no intermediate rewritable
// instruction stream (see src/asmir's package doc), but the file split
// here — generator.go for shared state, function.go/expression.go/
// statement.go/call.go for the four lowering concerns — mirrors the
// teacher's own one-file-per-concern layout
// (riscv.go/function.go/expression.go/conditional.go).
package codegen

import (
	"fmt"

	"tinycc/src/asmir"
	"tinycc/src/ast"
	"tinycc/src/diag"
	"tinycc/src/symtab"
)

// Generator holds all pass-local state for one compilation run: the
// item stream under construction, the seven label counters of spec.md §5
// (minus label_N, see DESIGN.md), and the current function's stack-frame
// bookkeeping. Per spec.md §5's "shared resources" note, this state belongs
// to the pass object, not the AST; it does not survive past Run.
type Generator struct {
	items []asmir.Item
	tally *diag.Tally

	// Per-program, monotonically increasing, never reset between
	// functions (spec.md §5's determinism note).
	ifElseN, ifDoneN, whileTestN, whileDoneN, andN, orN int

	// Per-function; reset on function entry (spec.md §4.6).
	lastAlloc int
	topAlloc  int
	retLabel  string
}

// Run lowers program into an item stream, emitting the global declarations
// first and then every function body in source order.
func Run(program *ast.Node, tally *diag.Tally) []asmir.Item {
	g := &Generator{tally: tally}
	g.genGlobals(program)
	g.emit(asmir.Directive{Kind: asmir.Section, Section: ".text"})
	for _, item := range program.Children {
		if item.Kind == ast.FunctionDefinition {
			g.genFunction(item)
		}
	}
	return g.items
}

// genGlobals implements spec.md §4.6's "Globals" rule: every top-level
// Declaration becomes a `Global`/`Common` directive pair, and its
// declarator's symbol is stamped with the `_name` label codegen (not
// src/resolve) owns assigning.
func (g *Generator) genGlobals(program *ast.Node) {
	for _, item := range program.Children {
		if item.Kind != ast.Declaration {
			continue
		}
		for _, declarator := range item.Children {
			label := g.globalLabel(declarator.Sym)
			g.emit(asmir.Directive{Kind: asmir.Global, Name: label})
			g.emit(asmir.Directive{Kind: asmir.Common, Name: label, Size: 4})
		}
	}
}

// emit appends it to the stream and returns its index, used by genFunction
// to patch the `sub esp, N` placeholder once N is known.
func (g *Generator) emit(it asmir.Item) int {
	g.items = append(g.items, it)
	return len(g.items) - 1
}

// ins is a convenience wrapper over emit for the common case of a plain
// instruction with no comment.
func (g *Generator) ins(op string, args ...asmir.Operand) int {
	return g.emit(asmir.Instruction{Op: op, Args: args})
}

// label returns the next name from the counter at *counter, in the form
// "prefix_N", and advances the counter.
func (g *Generator) label(counter *int, prefix string) string {
	n := *counter
	*counter++
	return fmt.Sprintf("%s_%d", prefix, n)
}

// allocate reserves the next stack slot below ebp and returns its signed
// frame offset (negative, e.g. -4 for the first slot), per spec.md §4.6:
// last_alloc tracks the current depth, top_alloc the deepest ever reached
// this function. spec.md's literal "[ebp - (last_alloc-4)]" phrasing is
// under-specified about allocate's pre/post-increment order — every literal
// reading either aliases the first local with the saved ebp slot or reuses
// one offset twice — so this is the straightforward, alias-free bump
// allocator instead; see DESIGN.md.
func (g *Generator) allocate() int {
	g.lastAlloc += 4
	if g.lastAlloc > g.topAlloc {
		g.topAlloc = g.lastAlloc
	}
	return -g.lastAlloc
}

// release gives back the most recently allocated slot (used for expression
// temporaries; a CompoundStatement's declared locals are released in bulk
// by restoring g.lastAlloc directly, see genCompoundStatement).
func (g *Generator) release() {
	g.lastAlloc -= 4
}

// globalLabel stamps and returns a global variable's `_name` assembly
// label.
func (g *Generator) globalLabel(sym *symtab.Symbol) string {
	if sym.Label == "" {
		sym.Label = "_" + sym.Name
	}
	return sym.Label
}

// functionLabel stamps and returns a function symbol's `_name` assembly
// label, lazily: a Function gets it from genFunction when its definition
// is reached, an UndefinedFunction gets it from the first call site that
// needs to name it in a `call`/`extern`.
func (g *Generator) functionLabel(sym *symtab.Symbol) string {
	if sym.Label == "" {
		sym.Label = "_" + sym.Name
	}
	return sym.Label
}

// identOperand returns the direct memory/data operand for a resolved
// Identifier node: `[ebp+offset]` for a frame-bound Variable/Parameter,
// `[_label]` for a global.
func (g *Generator) identOperand(n *ast.Node) asmir.Operand {
	sym := n.Sym
	if sym.Global {
		return asmir.DataRef{Label: g.globalLabel(sym)}
	}
	return asmir.Mem{Base: asmir.EBP, Offset: int32(sym.Offset)}
}

// directOperand returns the immediate/memory operand form of an expression
// node known to have Registers == 0 (spec.md §4.6's L-/R-shape "rhs/lhs's
// direct form"). Only Identifier and Constant ever estimate 0 registers
// (spec.md §4.5), so those are the only two cases.
func (g *Generator) directOperand(n *ast.Node) asmir.Operand {
	switch n.Kind {
	case ast.Constant:
		return asmir.Imm(int32(n.Value))
	case ast.Identifier:
		return g.identOperand(n)
	}
	panic("codegen: directOperand called on an expression with registers != 0")
}

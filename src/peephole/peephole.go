// Package peephole implements the six-pass instruction-stream optimizer of
// spec.md §4.7: a fixed set of local rewrites run to a fixed point over the
// asmir.Item stream codegen produced.
//
// Grounded on the teacher's ir/optimise.go, whose `optimise` function
// iterates a fixed worklist of tree-rewrite functions and reports every
// rewrite through a shared counter until a pass makes no further change —
// the same iterate-to-fixed-point shape this package uses, retargeted from
// AST nodes to the flat asmir.Item stream (the teacher never peephole-
// optimizes generated assembly text directly; its backends emit final code
// once).
package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// Pass rewrites items, reporting every local rewrite it makes through
// tally.Optimized, and returns the (possibly shorter, possibly reordered)
// result.
type Pass func(items []asmir.Item, tally *diag.Tally) []asmir.Item

// passes runs in this fixed order every cycle, per spec.md §4.7's numbered
// list.
var passes = []Pass{
	LabelOptimizer,
	GlobalExternOptimizer,
	JumpOptimizer,
	UnnecessaryCodeOptimizer,
	ReplaceCodeOptimizer,
	StackPointerOptimizer,
}

// maxCycles caps the fixed-point loop at five full passes over all six
// sub-optimizers, per spec.md §4.7.
const maxCycles = 5

// Run repeats the six sub-optimizers, in order, until a full cycle leaves
// tally's optimized counter unchanged or maxCycles is reached.
func Run(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	for cycle := 0; cycle < maxCycles; cycle++ {
		_, _, before := tally.Counts()
		for _, p := range passes {
			items = p(items, tally)
		}
		_, _, after := tally.Counts()
		if after == before {
			break
		}
	}
	return items
}

// regOf reports the register named by op, and whether op is a register
// operand at all.
func regOf(op asmir.Operand) (asmir.Reg, bool) {
	r, ok := op.(asmir.RegOperand)
	return asmir.Reg(r), ok
}

// isReg reports whether op names register want.
func isReg(op asmir.Operand, want asmir.Reg) bool {
	r, ok := regOf(op)
	return ok && r == want
}

// argIs reports whether args has an operand at index i and it names
// register want.
func argIs(args []asmir.Operand, i int, want asmir.Reg) bool {
	return i < len(args) && isReg(args[i], want)
}

// anyArgIs reports whether any operand in args names register want.
func anyArgIs(args []asmir.Operand, want asmir.Reg) bool {
	for _, a := range args {
		if isReg(a, want) {
			return true
		}
	}
	return false
}

// imm reports the immediate value of op and whether op is an immediate at
// all.
func imm(op asmir.Operand) (int32, bool) {
	i, ok := op.(asmir.Imm)
	return int32(i), ok
}

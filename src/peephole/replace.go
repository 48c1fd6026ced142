package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// ReplaceCodeOptimizer implements spec.md §4.7 item 5: a handful of local
// instruction substitutions that are always strictly smaller or faster.
func ReplaceCodeOptimizer(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	out := make([]asmir.Item, len(items))
	for i, it := range items {
		out[i] = it
		ins, ok := it.(asmir.Instruction)
		if !ok {
			continue
		}
		switch {
		case ins.Op == "mov" && len(ins.Args) == 2 && isZeroImm(ins.Args[1]) && isRegisterOperand(ins.Args[0]):
			out[i] = asmir.Instruction{Op: "xor", Args: []asmir.Operand{ins.Args[0], ins.Args[0]}, Comment: ins.Comment}
			tally.Optimized(1)
		case ins.Op == "imul" && len(ins.Args) == 2 && isZeroImm(ins.Args[1]):
			out[i] = asmir.Instruction{Op: "mov", Args: []asmir.Operand{ins.Args[0], asmir.Imm(0)}, Comment: ins.Comment}
			tally.Optimized(1)
		case ins.Op == "inc" && len(ins.Args) == 1:
			out[i] = asmir.Instruction{Op: "add", Args: []asmir.Operand{ins.Args[0], asmir.Imm(1)}, Comment: ins.Comment}
			tally.Optimized(1)
		case ins.Op == "dec" && len(ins.Args) == 1:
			out[i] = asmir.Instruction{Op: "sub", Args: []asmir.Operand{ins.Args[0], asmir.Imm(1)}, Comment: ins.Comment}
			tally.Optimized(1)
		}
	}
	return out
}

func isZeroImm(op asmir.Operand) bool {
	v, ok := imm(op)
	return ok && v == 0
}

func isRegisterOperand(op asmir.Operand) bool {
	_, ok := op.(asmir.RegOperand)
	return ok
}

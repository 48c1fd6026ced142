package peephole

import "tinycc/src/asmir"

// classifyEax implements spec.md §4.7.1's read/write table for `eax`, used
// by UnnecessaryCodeOptimizer's dead-store elimination. The mnemonics
// src/codegen and the peephole rewrites emit are covered, plus test/and/or;
// anything else (jumps included) is "neither", not a read.
func classifyEax(ins asmir.Instruction) (reads, writes bool) {
	switch ins.Op {
	case "cdq", "idiv":
		// Both implicitly operate on the edx:eax pair.
		return true, true
	case "ret":
		return true, false
	case "call":
		return false, true
	case "pop":
		return false, argIs(ins.Args, 0, asmir.EAX)
	case "push":
		return argIs(ins.Args, 0, asmir.EAX), false
	case "neg":
		eax := argIs(ins.Args, 0, asmir.EAX)
		return eax, eax
	case "inc", "dec":
		// Both read-modify-write their one operand in place (spec.md
		// §4.7.1 lists inc/dec in both the read and write families).
		return anyArgIs(ins.Args, asmir.EAX), argIs(ins.Args, 0, asmir.EAX)
	case "movzx":
		// "movzx eax, al" is explicitly listed under both tables in
		// spec.md §4.7.1 (al aliases eax's low byte); every other
		// movzx/mov form follows the plain source/destination rule.
		if argIs(ins.Args, 0, asmir.EAX) && argIs(ins.Args, 1, asmir.AL) {
			return true, true
		}
		return argIs(ins.Args, 1, asmir.EAX), argIs(ins.Args, 0, asmir.EAX)
	case "mov":
		return argIs(ins.Args, 1, asmir.EAX), argIs(ins.Args, 0, asmir.EAX)
	case "cmp", "test":
		return anyArgIs(ins.Args, asmir.EAX), false
	case "add", "sub", "imul", "and", "or", "xor":
		return anyArgIs(ins.Args, asmir.EAX), argIs(ins.Args, 0, asmir.EAX)
	case "sete", "setne", "setl", "setle", "setg", "setge":
		return false, true
	default:
		return false, false
	}
}

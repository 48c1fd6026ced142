package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// JumpOptimizer implements spec.md §4.7 item 3: code between an
// unconditional jmp and the label that follows it can never run and is
// dropped, and a jmp immediately followed by the definition of its own
// target is a no-op and is dropped too.
func JumpOptimizer(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	items = dropUnreachableAfterJump(items, tally)
	return dropJumpToNextLabel(items, tally)
}

func isUnconditionalJump(it asmir.Item) (asmir.Instruction, bool) {
	ins, ok := it.(asmir.Instruction)
	return ins, ok && ins.Op == "jmp"
}

// dropUnreachableAfterJump removes every Instruction/Comment sitting
// between an unconditional jmp and the next Label (or the end of the
// stream); a Directive boundary also stops the scan. The Extern directives
// src/codegen emits at call sites have already been hoisted to the top by
// GlobalExternOptimizer, which runs earlier in each cycle.
func dropUnreachableAfterJump(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	out := make([]asmir.Item, 0, len(items))
	i := 0
	for i < len(items) {
		out = append(out, items[i])
		if _, ok := isUnconditionalJump(items[i]); !ok {
			i++
			continue
		}
		j := i + 1
		for j < len(items) {
			if _, ok := items[j].(asmir.Label); ok {
				break
			}
			if _, ok := items[j].(asmir.Directive); ok {
				break
			}
			tally.Optimized(1)
			j++
		}
		i = j
	}
	return out
}

// dropJumpToNextLabel removes a `jmp L` immediately followed by the
// definition of L.
func dropJumpToNextLabel(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	out := make([]asmir.Item, 0, len(items))
	for i := 0; i < len(items); i++ {
		ins, ok := isUnconditionalJump(items[i])
		if ok && i+1 < len(items) {
			if lbl, ok := items[i+1].(asmir.Label); ok {
				if ref, ok := ins.Args[0].(asmir.LabelRef); ok && ref.Label == lbl.Name {
					tally.Optimized(1)
					continue
				}
			}
		}
		out = append(out, items[i])
	}
	return out
}

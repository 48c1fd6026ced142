package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// StackPointerOptimizer implements spec.md §4.7 item 6: a leaf-function
// frame-pointer elision. A function window whose body never pushes
// anything else onto the stack doesn't need ebp at all — every [ebp+k]
// reference can be rewritten relative to esp instead, and the push/mov that
// set up ebp, the `mov esp, ebp` genFunction's epilogue pairs with `pop
// ebp`, and the pop itself are all deleted outright.
//
// A window is only rewritten when it contains no other `push` between its
// prologue and epilogue: once the body pushes call arguments, the esp-to-
// ebp distance stops being the constant N this rewrite assumes.
func StackPointerOptimizer(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	out := make([]asmir.Item, 0, len(items))
	i := 0
	for i < len(items) {
		win, ok := findFrameWindow(items, i)
		if !ok {
			out = append(out, items[i])
			i++
			continue
		}

		// Drop `push ebp` and `mov ebp, esp` outright; a `sub esp, N`
		// between them and the body stays untouched (it still reserves
		// the N bytes of locals the esp-relative rewrite assumes).
		tally.Optimized(3)
		for k := i + 2; k < win.prologueEnd; k++ {
			out = append(out, items[k])
		}
		for k := win.prologueEnd; k < win.popIndex; k++ {
			if k == win.popIndex-1 && isMovEspEbp(items[k]) {
				continue
			}
			out = append(out, rewriteFrameOperand(items[k], win.frameSize))
		}
		out = append(out, asmir.Instruction{Op: "add", Args: []asmir.Operand{asmir.R(asmir.ESP), asmir.Imm(int32(win.frameSize))}})
		tally.Optimized(1)
		i = win.popIndex + 1
	}
	return out
}

type frameWindow struct {
	prologueEnd int // Index of the first body instruction (past push/mov/[sub]).
	popIndex    int // Index of the matching `pop ebp`.
	frameSize   int32
}

// findFrameWindow looks for a `push ebp` / `mov ebp,esp` / optional
// `sub esp,N` prologue starting at i, a following body with no further
// push, and a matching `pop ebp` epilogue. ok is false if i isn't the start
// of such a window.
func findFrameWindow(items []asmir.Item, i int) (frameWindow, bool) {
	push, ok := items[i].(asmir.Instruction)
	if !ok || push.Op != "push" || !argIs(push.Args, 0, asmir.EBP) {
		return frameWindow{}, false
	}
	if i+1 >= len(items) {
		return frameWindow{}, false
	}
	setup, ok := items[i+1].(asmir.Instruction)
	if !ok || setup.Op != "mov" || !argIs(setup.Args, 0, asmir.EBP) || !argIs(setup.Args, 1, asmir.ESP) {
		return frameWindow{}, false
	}

	frameSize := int32(0)
	bodyStart := i + 2
	if bodyStart < len(items) {
		if sub, ok := items[bodyStart].(asmir.Instruction); ok && sub.Op == "sub" && argIs(sub.Args, 0, asmir.ESP) {
			if n, ok := imm(sub.Args[1]); ok {
				frameSize = n
				bodyStart++
			}
		}
	}

	for j := bodyStart; j < len(items); j++ {
		if ins, ok := items[j].(asmir.Instruction); ok {
			if ins.Op == "push" {
				return frameWindow{}, false // Another push invalidates the constant esp-to-ebp distance.
			}
			if ins.Op == "pop" && argIs(ins.Args, 0, asmir.EBP) {
				return frameWindow{prologueEnd: bodyStart, popIndex: j, frameSize: frameSize}, true
			}
		}
	}
	return frameWindow{}, false
}

// isMovEspEbp reports whether it is the `mov esp, ebp` genFunction emits
// immediately before `pop ebp` in its epilogue. Once this window's `push
// ebp`/`mov ebp, esp` prologue is gone, ebp still holds the caller's frame
// pointer, so that mov would set esp to the wrong address instead of just
// releasing this function's own locals — the final `add esp, N` already
// does that job.
func isMovEspEbp(it asmir.Item) bool {
	ins, ok := it.(asmir.Instruction)
	return ok && ins.Op == "mov" && argIs(ins.Args, 0, asmir.ESP) && argIs(ins.Args, 1, asmir.EBP)
}

// rewriteFrameOperand rewrites every Mem{ebp, k} operand an instruction
// carries to Mem{esp, k+N-4}, per spec.md §4.7 item 6's formula.
func rewriteFrameOperand(it asmir.Item, frameSize int32) asmir.Item {
	ins, ok := it.(asmir.Instruction)
	if !ok {
		return it
	}
	changed := false
	args := ins.Args
	for i, a := range args {
		m, ok := a.(asmir.Mem)
		if !ok || m.Base != asmir.EBP {
			continue
		}
		if !changed {
			args = append([]asmir.Operand(nil), ins.Args...)
			changed = true
		}
		args[i] = asmir.Mem{Base: asmir.ESP, Offset: m.Offset + frameSize - 4}
	}
	if !changed {
		return it
	}
	ins.Args = args
	return ins
}

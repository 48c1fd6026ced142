package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// UnnecessaryCodeOptimizer implements spec.md §4.7 item 4: no-op arithmetic,
// redundant reload-after-store, and dead stores to eax.
func UnnecessaryCodeOptimizer(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	items = dropNoOpArithmetic(items, tally)
	items = dropRedundantReload(items, tally)
	return dropDeadEaxStores(items, tally)
}

// dropNoOpArithmetic drops `add R, 0`, `sub R, 0` and `imul R, 1`.
func dropNoOpArithmetic(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	out := make([]asmir.Item, 0, len(items))
	for _, it := range items {
		ins, ok := it.(asmir.Instruction)
		if ok && len(ins.Args) == 2 {
			if v, isImm := imm(ins.Args[1]); isImm {
				if (v == 0 && (ins.Op == "add" || ins.Op == "sub")) || (v == 1 && ins.Op == "imul") {
					tally.Optimized(1)
					continue
				}
			}
		}
		out = append(out, it)
	}
	return out
}

// dropRedundantReload removes a `mov eax, [mem]` that immediately follows
// (modulo Comments) a `mov [mem], eax` storing to the same address — the
// value is already sitting in eax.
func dropRedundantReload(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	out := make([]asmir.Item, 0, len(items))
	i := 0
	for i < len(items) {
		out = append(out, items[i])
		store, ok := items[i].(asmir.Instruction)
		if !ok || store.Op != "mov" || len(store.Args) != 2 {
			i++
			continue
		}
		mem, isMem := store.Args[0].(asmir.Mem)
		if !isMem || !isReg(store.Args[1], asmir.EAX) {
			i++
			continue
		}

		j := i + 1
		for j < len(items) {
			if _, ok := items[j].(asmir.Comment); ok {
				out = append(out, items[j])
				j++
				continue
			}
			break
		}
		if j < len(items) {
			if reload, ok := items[j].(asmir.Instruction); ok && reload.Op == "mov" && len(reload.Args) == 2 {
				if isReg(reload.Args[0], asmir.EAX) {
					if m, ok := reload.Args[1].(asmir.Mem); ok && m == mem {
						tally.Optimized(1)
						i = j + 1
						continue
					}
				}
			}
		}
		i++
	}
	return out
}

// dropDeadEaxStores drops a write to eax that is overwritten by another
// write before ever being read, per spec.md §4.7.1's classification. A
// Label resets the tracking state: a pending write crossing a label
// boundary is treated as live, since a jump may land there and consume it.
func dropDeadEaxStores(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	drop := make(map[int]bool)
	pending := -1

	for i, it := range items {
		switch v := it.(type) {
		case asmir.Label:
			pending = -1
		case asmir.Instruction:
			reads, writes := classifyEax(v)
			if reads {
				pending = -1
			}
			if writes {
				if pending != -1 {
					drop[pending] = true
				}
				pending = i
			}
		}
	}

	if len(drop) == 0 {
		return items
	}
	out := make([]asmir.Item, 0, len(items))
	for i, it := range items {
		if drop[i] {
			tally.Optimized(1)
			continue
		}
		out = append(out, it)
	}
	return out
}

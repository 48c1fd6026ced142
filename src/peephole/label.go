package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// LabelOptimizer implements spec.md §4.7 item 1: consecutive label
// definitions with no intervening instruction collapse onto the first
// non-global one among them (an exported label names an externally
// visible symbol and is never rewritten away), and any label nothing ever
// references is dropped outright unless it's exported.
func LabelOptimizer(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	items = mergeConsecutiveLabels(items, tally)
	return dropUnreferencedLabels(items, tally)
}

// mergeConsecutiveLabels finds runs of Label items separated only by
// Comments, picks the first non-global label in each run as the run's
// canonical name, rewrites every LabelRef in the stream that pointed at one
// of the run's other non-global labels, and drops those now-aliased labels.
// A run with no non-global label at all (every label in it exported) is
// left untouched — each of those names a distinct externally visible
// symbol.
func mergeConsecutiveLabels(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	alias := make(map[string]string)
	drop := make(map[int]bool)

	i := 0
	for i < len(items) {
		if _, ok := items[i].(asmir.Label); !ok {
			i++
			continue
		}
		runStart := i
		run := []int{i}
		j := i + 1
		for j < len(items) {
			if _, ok := items[j].(asmir.Label); ok {
				run = append(run, j)
				j++
				continue
			}
			if _, ok := items[j].(asmir.Comment); ok {
				j++
				continue
			}
			break
		}

		canonical := -1
		for _, idx := range run {
			if !items[idx].(asmir.Label).Global {
				canonical = idx
				break
			}
		}
		if canonical != -1 {
			canonicalName := items[canonical].(asmir.Label).Name
			for _, idx := range run {
				if idx == canonical {
					continue
				}
				l := items[idx].(asmir.Label)
				if l.Global {
					continue
				}
				alias[l.Name] = canonicalName
				drop[idx] = true
			}
		}
		i = runStart + len(run)
	}

	if len(alias) == 0 {
		return items
	}

	out := make([]asmir.Item, 0, len(items))
	for idx, it := range items {
		if drop[idx] {
			tally.Optimized(1)
			continue
		}
		out = append(out, rewriteLabelRefs(it, alias))
	}
	return out
}

// rewriteLabelRefs follows alias (possibly through more than one hop) for
// every LabelRef operand an Instruction carries; every other Item passes
// through unchanged.
func rewriteLabelRefs(it asmir.Item, alias map[string]string) asmir.Item {
	ins, ok := it.(asmir.Instruction)
	if !ok {
		return it
	}
	changed := false
	args := ins.Args
	for i, a := range args {
		ref, ok := a.(asmir.LabelRef)
		if !ok {
			continue
		}
		target := resolveAlias(ref.Label, alias)
		if target != ref.Label {
			if !changed {
				args = append([]asmir.Operand(nil), ins.Args...)
				changed = true
			}
			args[i] = asmir.LabelRef{Label: target}
		}
	}
	if !changed {
		return it
	}
	ins.Args = args
	return ins
}

func resolveAlias(name string, alias map[string]string) string {
	for {
		next, ok := alias[name]
		if !ok {
			return name
		}
		name = next
	}
}

// dropUnreferencedLabels removes any non-global Label no instruction
// operand names.
func dropUnreferencedLabels(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	referenced := make(map[string]bool)
	for _, it := range items {
		ins, ok := it.(asmir.Instruction)
		if !ok {
			continue
		}
		for _, a := range ins.Args {
			if ref, ok := a.(asmir.LabelRef); ok {
				referenced[ref.Label] = true
			}
		}
	}

	out := make([]asmir.Item, 0, len(items))
	for _, it := range items {
		if l, ok := it.(asmir.Label); ok && !l.Global && !referenced[l.Name] {
			tally.Optimized(1)
			continue
		}
		out = append(out, it)
	}
	return out
}

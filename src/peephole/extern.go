package peephole

import (
	"tinycc/src/asmir"
	"tinycc/src/diag"
)

// GlobalExternOptimizer implements spec.md §4.7 item 2: every Global and
// Extern directive (deduplicated by name) is gathered to the top of the
// stream, Global block first then Extern block, in first-seen order;
// everything else is left in its original relative order. This is where
// the repeated, naive Extern directive src/codegen emits at every
// UndefinedFunction call site finally collapses to one.
func GlobalExternOptimizer(items []asmir.Item, tally *diag.Tally) []asmir.Item {
	var globals, externs []asmir.Item
	seenGlobal := make(map[string]bool)
	seenExtern := make(map[string]bool)
	rest := make([]asmir.Item, 0, len(items))

	dups := 0
	for _, it := range items {
		d, ok := it.(asmir.Directive)
		if !ok {
			rest = append(rest, it)
			continue
		}
		switch d.Kind {
		case asmir.Global:
			if seenGlobal[d.Name] {
				dups++
				continue
			}
			seenGlobal[d.Name] = true
			globals = append(globals, it)
		case asmir.Extern:
			if seenExtern[d.Name] {
				dups++
				continue
			}
			seenExtern[d.Name] = true
			externs = append(externs, it)
		default:
			rest = append(rest, it)
		}
	}

	out := make([]asmir.Item, 0, len(globals)+len(externs)+len(rest))
	out = append(out, globals...)
	out = append(out, externs...)
	out = append(out, rest...)

	if dups > 0 {
		tally.Optimized(dups)
	}
	return out
}

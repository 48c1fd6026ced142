// Package layout implements the parameter-layout pass (spec.md §4.4):
// assigning each parameter its cdecl-32 frame offset.
package layout

import "tinycc/src/ast"

// Run stamps every FunctionDefinition's parameters with their frame offset.
// Offsets start at 8: after `push ebp`, [ebp+0] holds the saved base
// pointer, [ebp+4] the return address, [ebp+8] the first argument.
func Run(program *ast.Node) {
	for _, item := range program.Children {
		if item.Kind != ast.FunctionDefinition {
			continue
		}
		offset := 8
		for _, p := range item.FuncParams() {
			declarator := p.Children[0]
			if declarator.Sym != nil {
				declarator.Sym.Offset = offset
			}
			offset += 4
		}
	}
}

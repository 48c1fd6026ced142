// Package regest implements the register-need estimation pass (spec.md
// §4.5): a bottom-up annotation of every expression node's Registers field,
// which src/codegen uses to choose among its three BinaryOp lowering
// shapes.
package regest

import "tinycc/src/ast"

// Run annotates every expression in program. Identifier and Constant always
// estimate 0; UnaryOp, BinaryOp and FunctionCall always estimate 1 — only
// these two values are distinguished anywhere downstream.
func Run(program *ast.Node) {
	v := ast.NewVisitor()
	v.On(ast.Identifier, leaf)
	v.On(ast.Constant, leaf)
	v.On(ast.UnaryOp, needsRegister)
	v.On(ast.BinaryOp, needsRegister)
	v.On(ast.FunctionCall, needsRegister)
	ast.Walk(program, v)
}

func leaf(v *ast.Visitor, n *ast.Node) error {
	n.Registers = 0
	return nil
}

// needsRegister recurses into n's children first — the "bottom-up" half of
// the annotation — then stamps n itself. The recursion only matters for
// reaching nested expressions; the stamped value never depends on what it
// found.
func needsRegister(v *ast.Visitor, n *ast.Node) error {
	if err := v.WalkChildren(n); err != nil {
		return err
	}
	n.Registers = 1
	return nil
}

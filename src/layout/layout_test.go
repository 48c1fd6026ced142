package layout

import (
	"testing"

	"tinycc/src/ast"
	"tinycc/src/diag"
	"tinycc/src/resolve"
)

func TestRunAssignsSequentialOffsets(t *testing.T) {
	params := []*ast.Node{
		ast.NewParameterDeclaration(ast.NewDeclarator("a", 1), 1),
		ast.NewParameterDeclaration(ast.NewDeclarator("b", 1), 1),
		ast.NewParameterDeclaration(ast.NewDeclarator("c", 1), 1),
	}
	body := ast.NewCompoundStatement(nil, nil)
	fn := ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), params, body, 1)
	program := ast.NewProgram([]*ast.Node{fn})

	var tally diag.Tally
	resolve.Resolve(program, &tally)
	Run(program)

	want := []int{8, 12, 16}
	for i, p := range fn.FuncParams() {
		got := p.Children[0].Sym.Offset
		if got != want[i] {
			t.Errorf("parameter %d: expected offset %d, got %d", i, want[i], got)
		}
	}
}

func TestRunResetsOffsetPerFunction(t *testing.T) {
	paramsF := []*ast.Node{ast.NewParameterDeclaration(ast.NewDeclarator("a", 1), 1)}
	fn1 := ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), paramsF, ast.NewCompoundStatement(nil, nil), 1)

	paramsG := []*ast.Node{ast.NewParameterDeclaration(ast.NewDeclarator("x", 2), 2)}
	fn2 := ast.NewFunctionDefinition(ast.NewDeclarator("g", 2), paramsG, ast.NewCompoundStatement(nil, nil), 2)

	program := ast.NewProgram([]*ast.Node{fn1, fn2})

	var tally diag.Tally
	resolve.Resolve(program, &tally)
	Run(program)

	if got := fn2.FuncParams()[0].Children[0].Sym.Offset; got != 8 {
		t.Errorf("expected g's first parameter to restart at offset 8, got %d", got)
	}
}

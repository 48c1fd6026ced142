package regest

import (
	"testing"

	"tinycc/src/ast"
	"tinycc/src/symtab"
)

func TestRunEstimatesLeavesAsZero(t *testing.T) {
	ident := ast.NewIdentifier("x", symtab.Fresh, 1)
	constant := ast.NewConstant(5, 1)
	program := ast.NewProgram([]*ast.Node{
		ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), nil,
			ast.NewCompoundStatement(nil, []*ast.Node{
				ast.NewReturn(ast.NewBinaryOp("+", ident, constant, 1), 1),
			}), 1),
	})
	Run(program)

	if ident.Registers != 0 {
		t.Errorf("expected Identifier Registers 0, got %d", ident.Registers)
	}
	if constant.Registers != 0 {
		t.Errorf("expected Constant Registers 0, got %d", constant.Registers)
	}
}

func TestRunEstimatesOperatorsAsOne(t *testing.T) {
	inner := ast.NewBinaryOp("*", ast.NewConstant(2, 1), ast.NewConstant(3, 1), 1)
	outer := ast.NewBinaryOp("+", ast.NewConstant(1, 1), inner, 1)
	neg := ast.NewUnaryOp("-", ast.NewConstant(4, 1), 1)
	call := ast.NewFunctionCall(ast.NewIdentifier("f", symtab.FunctionCall, 1), nil, 1)

	program := ast.NewProgram([]*ast.Node{
		ast.NewFunctionDefinition(ast.NewDeclarator("main", 1), nil,
			ast.NewCompoundStatement(nil, []*ast.Node{
				ast.NewReturn(outer, 1),
				ast.NewReturn(neg, 1),
				ast.NewReturn(call, 1),
			}), 1),
	})
	Run(program)

	if outer.Registers != 1 || inner.Registers != 1 {
		t.Errorf("expected nested BinaryOp nodes to estimate 1, got outer=%d inner=%d", outer.Registers, inner.Registers)
	}
	if neg.Registers != 1 {
		t.Errorf("expected UnaryOp to estimate 1, got %d", neg.Registers)
	}
	if call.Registers != 1 {
		t.Errorf("expected FunctionCall to estimate 1, got %d", call.Registers)
	}
}

package sig

import (
	"testing"

	"tinycc/src/ast"
	"tinycc/src/diag"
	"tinycc/src/resolve"
	"tinycc/src/symtab"
)

func TestRunRecordsDeclaredArity(t *testing.T) {
	param := ast.NewParameterDeclaration(ast.NewDeclarator("a", 1), 1)
	body := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(ast.NewNull(), 1)})
	fn := ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), []*ast.Node{param}, body, 1)
	program := ast.NewProgram([]*ast.Node{fn})

	var tally diag.Tally
	resolve.Resolve(program, &tally)
	Run(program, &tally)

	if tally.HasErrors() {
		t.Fatalf("unexpected errors: %v", tally.Diagnostics())
	}
	if fn.FuncDeclarator().Sym.Parameters != 1 {
		t.Errorf("expected declared arity 1, got %d", fn.FuncDeclarator().Sym.Parameters)
	}
}

func TestRunErrorsOnWrongCallArity(t *testing.T) {
	param := ast.NewParameterDeclaration(ast.NewDeclarator("a", 1), 1)
	body := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(ast.NewNull(), 1)})
	fDef := ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), []*ast.Node{param}, body, 1)

	call := ast.NewFunctionCall(ast.NewIdentifier("f", symtab.FunctionCall, 3), []*ast.Node{ast.NewConstant(1, 3), ast.NewConstant(2, 3)}, 3)
	mainBody := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(call, 3)})
	mainFn := ast.NewFunctionDefinition(ast.NewDeclarator("main", 3), nil, mainBody, 3)

	program := ast.NewProgram([]*ast.Node{fDef, mainFn})

	var tally diag.Tally
	resolve.Resolve(program, &tally)
	Run(program, &tally)

	errs, _, _ := tally.Counts()
	if errs != 1 {
		t.Fatalf("expected exactly one arity-mismatch error, got %d: %v", errs, tally.Diagnostics())
	}
}

// TestRunForwardCallArityMismatch matches spec.md §8 scenario 5: a call
// precedes the definition and disagrees with its arity.
func TestRunForwardCallArityMismatch(t *testing.T) {
	call := ast.NewFunctionCall(ast.NewIdentifier("g", symtab.FunctionCall, 1), []*ast.Node{ast.NewConstant(1, 1)}, 1)
	mainBody := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(call, 1)})
	mainFn := ast.NewFunctionDefinition(ast.NewDeclarator("main", 1), nil, mainBody, 1)

	params := []*ast.Node{
		ast.NewParameterDeclaration(ast.NewDeclarator("a", 2), 2),
		ast.NewParameterDeclaration(ast.NewDeclarator("b", 2), 2),
	}
	gBody := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(ast.NewNull(), 2)})
	gFn := ast.NewFunctionDefinition(ast.NewDeclarator("g", 2), params, gBody, 2)

	program := ast.NewProgram([]*ast.Node{mainFn, gFn})

	var tally diag.Tally
	resolve.Resolve(program, &tally)
	Run(program, &tally)

	errs, warns, _ := tally.Counts()
	if warns != 1 {
		t.Errorf("expected the resolve-time undeclared-function warning to survive, got %d", warns)
	}
	if errs != 1 {
		t.Fatalf("expected one arity-mismatch error once g's definition is seen, got %d: %v", errs, tally.Diagnostics())
	}
}

func TestRunMatchingCallArityIsClean(t *testing.T) {
	params := []*ast.Node{ast.NewParameterDeclaration(ast.NewDeclarator("a", 1), 1)}
	body := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(ast.NewNull(), 1)})
	fn := ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), params, body, 1)

	call := ast.NewFunctionCall(ast.NewIdentifier("f", symtab.FunctionCall, 3), []*ast.Node{ast.NewConstant(5, 3)}, 3)
	mainBody := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(call, 3)})
	mainFn := ast.NewFunctionDefinition(ast.NewDeclarator("main", 3), nil, mainBody, 3)

	program := ast.NewProgram([]*ast.Node{fn, mainFn})

	var tally diag.Tally
	resolve.Resolve(program, &tally)
	Run(program, &tally)

	if tally.HasErrors() {
		t.Fatalf("unexpected errors: %v", tally.Diagnostics())
	}
}

package fold

import (
	"testing"

	"tinycc/src/ast"
	"tinycc/src/diag"
)

func program(expr *ast.Node) *ast.Node {
	body := ast.NewCompoundStatement(nil, []*ast.Node{ast.NewReturn(expr, 1)})
	fn := ast.NewFunctionDefinition(ast.NewDeclarator("f", 1), nil, body, 1)
	return ast.NewProgram([]*ast.Node{fn})
}

func TestRunFoldsArithmetic(t *testing.T) {
	expr := ast.NewBinaryOp("+", ast.NewConstant(2, 1), ast.NewBinaryOp("*", ast.NewConstant(3, 1), ast.NewConstant(4, 1), 1), 1)
	p := program(expr)
	var tally diag.Tally
	Run(p, &tally)

	if expr.Kind != ast.Constant || expr.Value != 14 {
		t.Fatalf("expected folded Constant 14, got %s value=%d", expr.Kind, expr.Value)
	}
	_, _, optimized := tally.Counts()
	if optimized != 2 {
		t.Errorf("expected 2 folds (inner multiply, outer add), got %d", optimized)
	}
}

func TestRunFoldsNegation(t *testing.T) {
	expr := ast.NewUnaryOp("-", ast.NewConstant(5, 1), 1)
	p := program(expr)
	var tally diag.Tally
	Run(p, &tally)

	if expr.Kind != ast.Constant || expr.Value != -5 {
		t.Fatalf("expected folded Constant -5, got %s value=%d", expr.Kind, expr.Value)
	}
}

func TestRunLeavesNonConstantUnfolded(t *testing.T) {
	expr := ast.NewBinaryOp("+", ast.NewIdentifier("x", 0, 1), ast.NewConstant(1, 1), 1)
	p := program(expr)
	var tally diag.Tally
	Run(p, &tally)

	if expr.Kind != ast.BinaryOp {
		t.Fatalf("expected the expression to remain a BinaryOp, got %s", expr.Kind)
	}
	_, _, optimized := tally.Counts()
	if optimized != 0 {
		t.Errorf("expected no folds, got %d", optimized)
	}
}

func TestRunDivisionByZeroIsError(t *testing.T) {
	expr := ast.NewBinaryOp("/", ast.NewConstant(1, 7), ast.NewConstant(0, 7), 7)
	p := program(expr)
	var tally diag.Tally
	Run(p, &tally)

	if !tally.HasErrors() {
		t.Fatalf("expected a division-by-zero error")
	}
	if expr.Kind != ast.BinaryOp {
		t.Errorf("expected the expression to stay unfolded after a division-by-zero error")
	}
}

func TestRunCeilDivOnNegativeRemainder(t *testing.T) {
	// -7 / 2 truncates to -3 with remainder -1; spec's rule adds 1 regardless
	// of sign, giving -2.
	expr := ast.NewBinaryOp("/", ast.NewConstant(-7, 1), ast.NewConstant(2, 1), 1)
	p := program(expr)
	var tally diag.Tally
	Run(p, &tally)

	if expr.Kind != ast.Constant || expr.Value != -2 {
		t.Fatalf("expected -7/2 to fold to -2 under the ceiling rule, got %s value=%d", expr.Kind, expr.Value)
	}
}

func TestRunFoldsLogicalAndComparison(t *testing.T) {
	and := ast.NewBinaryOp("&&", ast.NewConstant(1, 1), ast.NewConstant(0, 1), 1)
	cmp := ast.NewBinaryOp("<=", ast.NewConstant(3, 1), ast.NewConstant(3, 1), 1)
	p := program(ast.NewBinaryOp("+", and, cmp, 1))
	var tally diag.Tally
	Run(p, &tally)

	if and.Kind != ast.Constant || and.Value != 0 {
		t.Errorf("expected 1 && 0 to fold to 0, got %s value=%d", and.Kind, and.Value)
	}
	if cmp.Kind != ast.Constant || cmp.Value != 1 {
		t.Errorf("expected 3 <= 3 to fold to 1, got %s value=%d", cmp.Kind, cmp.Value)
	}
}

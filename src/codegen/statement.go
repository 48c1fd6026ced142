package codegen

import (
	"fmt"

	"tinycc/src/asmir"
	"tinycc/src/ast"
)

// genStatementOrBlock lowers a statement slot that may itself be a bare
// CompoundStatement (an if/while branch written with braces) or any other
// single statement, mirroring src/resolve's statementOrBlock split.
func (g *Generator) genStatementOrBlock(n *ast.Node) {
	if n.IsNull() {
		return
	}
	if n.Kind == ast.CompoundStatement {
		g.genCompoundStatement(n)
		return
	}
	g.genStatement(n)
}

func (g *Generator) genStatement(n *ast.Node) {
	switch n.Kind {
	case ast.If:
		g.genIf(n)
	case ast.While:
		g.genWhile(n)
	case ast.Return:
		g.genReturn(n)
	case ast.Assign:
		g.genAssign(n)
	case ast.CompoundStatement:
		g.genCompoundStatement(n)
	case ast.FunctionCall:
		g.genExpression(n) // A bare call statement; its eax result is discarded.
	default:
		panic(fmt.Sprintf("codegen: %s is not a statement", n.Kind))
	}
}

// genCompoundStatement assigns frame slots to the block's own locals, lowers
// its statements in order, and then gives the slots back: last_alloc is
// restored to its pre-entry value so that a sibling block reuses the same
// offsets a predecessor block used, the stack-nesting rule spec.md §4.6
// describes. top_alloc is untouched, since it tracks the deepest point
// reached anywhere in the function.
func (g *Generator) genCompoundStatement(n *ast.Node) {
	saved := g.lastAlloc
	for _, decl := range n.Decls() {
		for _, declarator := range decl.Children {
			declarator.Sym.Offset = g.allocate()
		}
	}
	for _, s := range n.Stmts() {
		g.genStatement(s)
	}
	g.lastAlloc = saved
}

// genIf lowers If in the "cleaner" single-jump-per-branch form (spec.md's
// own preference over the double-jump form when a test only cares about
// instruction-stream shape, not literal text). An absent else branch skips
// emitting if_else_N entirely: there's nothing to jump over, so the
// condition's false edge can target if_done_N directly.
func (g *Generator) genIf(n *ast.Node) {
	g.genExpression(n.Cond())
	g.ins("cmp", asmir.R(asmir.EAX), asmir.Imm(0))

	if n.Else().IsNull() {
		doneLabel := g.label(&g.ifDoneN, "if_done")
		g.ins("je", asmir.LabelRef{Label: doneLabel})
		g.genStatementOrBlock(n.Then())
		g.emit(asmir.Label{Name: doneLabel})
		return
	}

	elseLabel := g.label(&g.ifElseN, "if_else")
	doneLabel := g.label(&g.ifDoneN, "if_done")
	g.ins("je", asmir.LabelRef{Label: elseLabel})
	g.genStatementOrBlock(n.Then())
	g.ins("jmp", asmir.LabelRef{Label: doneLabel})
	g.emit(asmir.Label{Name: elseLabel})
	g.genStatementOrBlock(n.Else())
	g.emit(asmir.Label{Name: doneLabel})
}

// genWhile lowers While in test-at-top form: the condition is re-evaluated
// before every iteration, including the first, so a false condition skips
// the body entirely.
func (g *Generator) genWhile(n *ast.Node) {
	testLabel := g.label(&g.whileTestN, "while_test")
	doneLabel := g.label(&g.whileDoneN, "while_done")

	g.emit(asmir.Label{Name: testLabel})
	g.genExpression(n.WhileCond())
	g.ins("cmp", asmir.R(asmir.EAX), asmir.Imm(0))
	g.ins("je", asmir.LabelRef{Label: doneLabel})
	g.genStatementOrBlock(n.WhileBody())
	g.ins("jmp", asmir.LabelRef{Label: testLabel})
	g.emit(asmir.Label{Name: doneLabel})
}

// genReturn evaluates the return expression into eax and funnels to the
// function's shared epilogue.
func (g *Generator) genReturn(n *ast.Node) {
	g.genExpression(n.ReturnExpr())
	g.ins("jmp", asmir.LabelRef{Label: g.retLabel})
}

// genAssign lowers "=", "+=" and "-=" against an Identifier lhs.
func (g *Generator) genAssign(n *ast.Node) {
	g.genExpression(n.AssignRHS())
	dst := g.identOperand(n.AssignLHS())
	switch n.Op {
	case "=":
		g.ins("mov", dst, asmir.R(asmir.EAX))
	case "+=":
		g.ins("add", dst, asmir.R(asmir.EAX))
	case "-=":
		g.ins("sub", dst, asmir.R(asmir.EAX))
	default:
		panic(fmt.Sprintf("codegen: unknown assignment operator %q", n.Op))
	}
}

package codegen

import (
	"fmt"

	"tinycc/src/asmir"
	"tinycc/src/ast"
)

// mnemonic maps a BinaryOp's arithmetic operator directly onto a two-operand
// x86 instruction; the comparison operators go through genCompare instead.
var mnemonic = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "imul",
}

// commutative is the subset of spec.md §3.1's twelve BinaryOp operators for
// which `a op b == b op a`; only these may use the R-shape, which evaluates
// the right operand into eax and the left operand as the direct operand.
var commutative = map[string]bool{
	"+": true, "*": true, "==": true, "!=": true,
}

// setcc maps a comparison operator onto the x86 byte-set instruction that
// follows a `cmp`.
var setcc = map[string]string{
	"==": "sete",
	"!=": "setne",
	"<":  "setl",
	"<=": "setle",
	">":  "setg",
	">=": "setge",
}

func isCompare(op string) bool {
	_, ok := setcc[op]
	return ok
}

// genExpression lowers n so that its value ends up in eax, per spec.md
// §4.6's single-accumulator convention.
func (g *Generator) genExpression(n *ast.Node) {
	switch n.Kind {
	case ast.Constant:
		g.ins("mov", asmir.R(asmir.EAX), asmir.Imm(int32(n.Value)))
	case ast.Identifier:
		g.ins("mov", asmir.R(asmir.EAX), g.identOperand(n))
	case ast.UnaryOp:
		g.genUnary(n)
	case ast.BinaryOp:
		switch n.Op {
		case "&&":
			g.genLogicalAnd(n)
		case "||":
			g.genLogicalOr(n)
		default:
			g.genBinary(n)
		}
	case ast.FunctionCall:
		g.genCall(n)
	default:
		panic(fmt.Sprintf("codegen: %s is not an expression", n.Kind))
	}
}

// genUnary lowers the three UnaryOp operators: negation, and prefix
// increment/decrement (spec.md §4.6's "Increment/Decrement(id)" form, which
// writes its result back to the operand's storage rather than leaving it
// purely in eax like every other expression).
func (g *Generator) genUnary(n *ast.Node) {
	switch n.Op {
	case "++", "--":
		operand := n.Operand()
		g.genExpression(operand)
		if n.Op == "++" {
			g.ins("inc", asmir.R(asmir.EAX))
		} else {
			g.ins("dec", asmir.R(asmir.EAX))
		}
		g.ins("mov", g.identOperand(operand), asmir.R(asmir.EAX))
	default:
		g.genExpression(n.Operand())
		g.ins("neg", asmir.R(asmir.EAX))
	}
}

// genBinary picks one of the three operand shapes spec.md §4.6 describes,
// driven by src/regest's Registers estimate on each side:
//
//   - L-shape: right needs no register (Registers == 0). Valid for every
//     operator, since eax ends up holding left and the direct operand is
//     applied on the right, preserving `left op right` order.
//   - R-shape: left needs no register AND right does AND op is commutative.
//     eax ends up holding right; applying op against left's direct form
//     only computes `left op right` when op doesn't care about order.
//   - RSL-shape: every other case (right needs a register and the R-shape
//     does not apply). Right is evaluated first and
//     spilled to a fresh stack slot, then left is evaluated into eax, then
//     op is applied against the spilled slot — preserving `left op right`
//     for every operator, commutative or not.
func (g *Generator) genBinary(n *ast.Node) {
	op := n.Op
	left, right := n.Left(), n.Right()

	switch {
	case right.Registers == 0:
		g.genExpression(left)
		g.applyOp(op, g.directOperand(right))
	case left.Registers == 0 && commutative[op]:
		g.genExpression(right)
		g.applyOp(op, g.directOperand(left))
	default:
		g.genExpression(right)
		offset := g.allocate()
		slot := asmir.Mem{Base: asmir.EBP, Offset: int32(offset)}
		g.ins("mov", slot, asmir.R(asmir.EAX))
		g.genExpression(left)
		g.applyOp(op, slot)
		g.release()
	}
}

// applyOp applies op against eax and operand, leaving the (possibly
// boolean, 0/1) result in eax.
func (g *Generator) applyOp(op string, operand asmir.Operand) {
	switch {
	case op == "/":
		g.genDivide(operand)
	case isCompare(op):
		g.ins("cmp", asmir.R(asmir.EAX), operand)
		g.ins(setcc[op], asmir.R(asmir.AL))
		g.ins("movzx", asmir.R(asmir.EAX), asmir.R(asmir.AL))
	default:
		g.ins(mnemonic[op], asmir.R(asmir.EAX), operand)
	}
}

// genDivide lowers integer division. idiv takes its divisor in a register
// or memory operand, never an immediate, so a constant divisor is first
// spilled into ecx — the one case genBinary's direct-operand shapes don't
// already guarantee a register/memory operand.
func (g *Generator) genDivide(operand asmir.Operand) {
	divisor := operand
	if _, ok := operand.(asmir.Imm); ok {
		g.ins("mov", asmir.RegOperand("ecx"), operand)
		divisor = asmir.RegOperand("ecx")
	}
	g.ins("cdq")
	g.ins("idiv", divisor)
}

// genLogicalAnd and genLogicalOr lower && and || with true short-circuit
// evaluation: the right operand is only ever evaluated when the left one
// didn't already decide the result. Both need just a single label (and_N /
// or_N, per spec.md §5's counter list) because the short-circuit landing
// site doubles as the normalization point for either path: a single
// `cmp eax,0 / setcc / movzx` after the label turns whatever value is
// sitting in eax (the left side's on the short-circuit path, the right
// side's otherwise) into the 0/1 result either way.
func (g *Generator) genLogicalAnd(n *ast.Node) {
	g.genExpression(n.Left())
	g.ins("cmp", asmir.R(asmir.EAX), asmir.Imm(0))
	label := g.label(&g.andN, "and")
	g.ins("je", asmir.LabelRef{Label: label})
	g.genExpression(n.Right())
	g.emit(asmir.Label{Name: label})
	g.ins("cmp", asmir.R(asmir.EAX), asmir.Imm(0))
	g.ins("setne", asmir.R(asmir.AL))
	g.ins("movzx", asmir.R(asmir.EAX), asmir.R(asmir.AL))
}

func (g *Generator) genLogicalOr(n *ast.Node) {
	g.genExpression(n.Left())
	g.ins("cmp", asmir.R(asmir.EAX), asmir.Imm(0))
	label := g.label(&g.orN, "or")
	g.ins("jne", asmir.LabelRef{Label: label})
	g.genExpression(n.Right())
	g.emit(asmir.Label{Name: label})
	g.ins("cmp", asmir.R(asmir.EAX), asmir.Imm(0))
	g.ins("setne", asmir.R(asmir.AL))
	g.ins("movzx", asmir.R(asmir.EAX), asmir.R(asmir.AL))
}

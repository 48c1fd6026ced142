// Package asmir defines the flat assembly IR the code generator emits and
// the peephole optimizer rewrites (spec.md §3.4): an ordered slice of Items
// (Instruction, Label, Comment, Directive) built from a small closed set of
// Operand variants.
//
// This is new infrastructure: the teacher's backends (backend/riscv,
// backend/arm) write assembly text directly through util.Writer's
// Ins1/Ins2/Ins3 formatting helpers, with no intermediate rewritable
// instruction stream, because nothing downstream of code generation ever
// rewrites what they wrote. spec.md's multi-pass peephole optimizer needs
// exactly that rewritable stream, so asmir introduces it — while
// src/render's textual emission deliberately keeps the teacher's
// Write/Ins*-style formatting for the final text, see DESIGN.md.
package asmir

import "fmt"

// Reg is one of the fixed register names spec.md §3.4 allows as an operand.
type Reg string

const (
	AL  Reg = "al"
	EAX Reg = "eax"
	EBP Reg = "ebp"
	ESP Reg = "esp"
)

// Operand is the closed set of operand variants spec.md §3.4 defines.
type Operand interface {
	fmt.Stringer
	isOperand()
}

// Imm is a 32-bit immediate operand.
type Imm int32

func (Imm) isOperand()       {}
func (i Imm) String() string { return fmt.Sprintf("%d", int32(i)) }

// RegOperand names a register directly (al, eax, ebp, esp, plus ecx, which
// src/codegen uses to hold a constant divisor).
type RegOperand Reg

func (RegOperand) isOperand()       {}
func (r RegOperand) String() string { return string(r) }

// Mem is a base-plus-displacement memory operand, e.g. `[ebp-4]`.
type Mem struct {
	Base   Reg
	Offset int32
}

func (Mem) isOperand() {}
func (m Mem) String() string {
	if m.Offset == 0 {
		return fmt.Sprintf("[%s]", m.Base)
	}
	if m.Offset < 0 {
		return fmt.Sprintf("[%s-%d]", m.Base, -m.Offset)
	}
	return fmt.Sprintf("[%s+%d]", m.Base, m.Offset)
}

// DataRef is a memory reference to a data-section symbol (a global
// variable's label), e.g. `[_x]`. Always bracketed: unlike LabelRef, a
// DataRef operand is never used bare.
type DataRef struct{ Label string }

func (DataRef) isOperand()       {}
func (d DataRef) String() string { return fmt.Sprintf("[%s]", d.Label) }

// LabelRef names a code-section symbol (a function or a control-flow
// target).
type LabelRef struct{ Label string }

func (LabelRef) isOperand()       {}
func (l LabelRef) String() string { return l.Label }

// RawText is an escape hatch for an operand that doesn't fit the other
// variants (e.g. a bare numeric literal rendered in a non-default base).
type RawText string

func (RawText) isOperand()       {}
func (t RawText) String() string { return string(t) }

// R wraps r as an Operand; a small convenience over writing
// asmir.RegOperand(asmir.EAX) at every call site.
func R(r Reg) Operand { return RegOperand(r) }

// DirectiveKind is the closed set of NASM directives spec.md §3.4 allows.
type DirectiveKind int

const (
	Global DirectiveKind = iota
	Extern
	Common
	Section
)

// Item is the closed set of stream elements: Instruction, Label, Comment,
// Directive.
type Item interface {
	isItem()
}

// Instruction is one assembly instruction: a mnemonic plus its ordered
// operand list, with an optional trailing comment.
type Instruction struct {
	Op      string
	Args    []Operand
	Comment string
}

func (Instruction) isItem() {}

// Ins builds an Instruction with no comment.
func Ins(op string, args ...Operand) Instruction {
	return Instruction{Op: op, Args: args}
}

// Label is a code position. Global distinguishes a label naming an exported
// symbol (a function entry point) from one used purely for local control
// flow (if/while targets, peephole-introduced branch targets).
type Label struct {
	Name   string
	Global bool
}

func (Label) isItem() {}

// Comment is a stream-level comment with no semantic effect; the peephole
// optimizer's JumpOptimizer removes those sitting in the unreachable
// stretch after an unconditional jmp.
type Comment struct{ Text string }

func (Comment) isItem() {}

// Directive is one of NASM's `global`, `extern`, `common` or `section`
// declarations.
type Directive struct {
	Kind    DirectiveKind
	Name    string // Symbol name, for Global/Extern/Common.
	Size    int32  // Byte size, for Common only.
	Section string // Section name, for Section only (e.g. ".text", ".bss").
}

func (Directive) isItem() {}

// Package ast defines the tagged-variant syntax tree the compilation
// pipeline consumes (spec.md §3.1). Lexing and parsing are an external
// collaborator (src/frontend provides a minimal one, see SPEC_FULL.md §10);
// this package only defines the node shapes every pass after parsing agrees
// on, plus the visitor dispatch rule of spec.md §4.1.
package ast

import (
	"fmt"

	"tinycc/src/symtab"
)

// Kind is the closed set of AST node variants (spec.md §3.1).
type Kind int

const (
	Null Kind = iota
	Program
	Declaration
	FunctionDefinition
	ParameterDeclaration
	Declarator
	CompoundStatement
	If
	While
	Return
	FunctionCall
	Assign
	BinaryOp
	UnaryOp
	Identifier
	Constant
)

var kindNames = [...]string{
	"Null",
	"Program",
	"Declaration",
	"FunctionDefinition",
	"ParameterDeclaration",
	"Declarator",
	"CompoundStatement",
	"If",
	"While",
	"Return",
	"FunctionCall",
	"Assign",
	"BinaryOp",
	"UnaryOp",
	"Identifier",
	"Constant",
}

// String returns the print-friendly name of k.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// group is the "abstract parent" a concrete Kind falls back to when a
// Visitor has no handler registered for that Kind directly (spec.md §4.1,
// "Negative → UnaryOp → Node"). Node itself is the root: a Visitor always
// falls back to its Default handler (which recurses into Children) if
// nothing in the concrete-Kind or group chain matches.
type group int

const (
	groupNone group = iota
	groupExpression
	groupStatement
	groupDecl
)

// kindGroup realizes the abstract-parent chain for the closed Kind set.
// UnaryOp's three operators (unary '-', prefix '++', prefix '--') and
// BinaryOp's twelve operators are all still tagged with the single concrete
// Kind UnaryOp/BinaryOp — the Op field distinguishes them — so the only
// generalization the fallback chain needs to provide is "any expression" and
// "any statement", matching how src/regest and src/codegen actually share
// logic across operators.
var kindGroup = map[Kind]group{
	BinaryOp:     groupExpression,
	UnaryOp:      groupExpression,
	FunctionCall: groupExpression,
	Identifier:   groupExpression,
	Constant:     groupExpression,

	If:                groupStatement,
	While:             groupStatement,
	Return:            groupStatement,
	CompoundStatement: groupStatement,
	Assign:            groupStatement,

	Declaration:          groupDecl,
	ParameterDeclaration: groupDecl,
	Declarator:           groupDecl,
}

// Node is a single AST node. Every variant uses a fixed subset of these
// fields; Children always holds the full, ordered list of child nodes so
// that a Visitor's default handler can walk any node uniformly regardless of
// which fields it understands.
type Node struct {
	Kind Kind
	Line int

	// Op holds the operator for Assign ("=", "+=", "-="), BinaryOp (the
	// twelve operators of spec.md §3.1) and UnaryOp ("-", "++", "--").
	Op string

	// Name is the identifier text for Identifier nodes, pre- and
	// post-resolution (Sym carries the resolved binding).
	Name string

	// Value is the literal value for Constant nodes.
	Value int

	// IdentKind classifies an Identifier node's syntactic role before/while
	// resolution runs (spec.md §3.2): Fresh, Variable, Parameter, Function,
	// FunctionCall, or (after resolution of a forward reference)
	// UndefinedFunction.
	IdentKind symtab.Kind

	// Sym is the shared symbol-table entry this Identifier node is bound to,
	// installed by src/resolve. nil until bound (or forever, for an
	// identifier left Fresh after a resolution error).
	Sym *symtab.Symbol

	// Registers is the register-need estimate for expression nodes
	// (spec.md §4.5), set by src/regest.
	Registers int

	// NumParams is the parameter count for a FunctionDefinition node and the
	// declaration count for a CompoundStatement node; see the constructors
	// below for why this accompanies Children instead of a separate list
	// node.
	NumParams int

	Children []*Node
}

// IsNull reports whether n is either a nil pointer or the explicit Null
// variant — both mean "this optional slot is empty" (spec.md §3.1).
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == Null
}

// NewNull returns a fresh Null node, used to fill an optional slot (an
// absent else-branch, an empty parameter list) so every pass can walk
// Children uniformly instead of special-casing a Go nil.
func NewNull() *Node {
	return &Node{Kind: Null}
}

// --- Constructors -----------------------------------------------------
//
// The AST has no dedicated "list" variant (unlike the teacher's
// PARAMETER_LIST/ARGUMENT_LIST wrapper nodes): an ordered sequence such as a
// function's parameters or a call's arguments is spliced directly into the
// parent's Children, exactly as spec.md §3.1 describes ("ordered parameter
// list", "argument sequence"). The accessor methods below recover the named
// slots a pass actually wants instead of re-deriving magic indices at every
// call site.

// NewProgram builds the Program node: the ordered sequence of top-level
// Declaration/FunctionDefinition items.
func NewProgram(items []*Node) *Node {
	return &Node{Kind: Program, Children: items}
}

// NewDeclaration builds a Declaration node over one or more Declarators.
func NewDeclaration(declarators []*Node, line int) *Node {
	return &Node{Kind: Declaration, Line: line, Children: declarators}
}

// NewDeclarator builds a Declarator node for identifier name.
func NewDeclarator(name string, line int) *Node {
	return &Node{Kind: Declarator, Name: name, Line: line}
}

// NewParameterDeclaration builds a ParameterDeclaration node wrapping a
// Declarator.
func NewParameterDeclaration(declarator *Node, line int) *Node {
	return &Node{Kind: ParameterDeclaration, Line: line, Children: []*Node{declarator}}
}

// NewFunctionDefinition builds a FunctionDefinition node. Children is laid
// out [declarator, param_0, ..., param_{n-1}, body]; NumParams records n so
// FuncParams/FuncBody can slice it back out.
func NewFunctionDefinition(declarator *Node, params []*Node, body *Node, line int) *Node {
	children := make([]*Node, 0, len(params)+2)
	children = append(children, declarator)
	children = append(children, params...)
	children = append(children, body)
	return &Node{
		Kind:      FunctionDefinition,
		Line:      line,
		NumParams: len(params),
		Children:  children,
	}
}

// FuncDeclarator returns a FunctionDefinition's declarator slot.
func (n *Node) FuncDeclarator() *Node { return n.Children[0] }

// FuncParams returns a FunctionDefinition's ordered parameter list.
func (n *Node) FuncParams() []*Node { return n.Children[1 : 1+n.NumParams] }

// FuncBody returns a FunctionDefinition's compound-statement body.
func (n *Node) FuncBody() *Node { return n.Children[len(n.Children)-1] }

// NewCompoundStatement builds a CompoundStatement node from a declaration
// sequence followed by a statement sequence; NumParams records the split so
// Decls/Stmts can slice it back out.
func NewCompoundStatement(decls, stmts []*Node) *Node {
	children := make([]*Node, 0, len(decls)+len(stmts))
	children = append(children, decls...)
	children = append(children, stmts...)
	return &Node{Kind: CompoundStatement, NumParams: len(decls), Children: children}
}

// Decls returns a CompoundStatement's declaration sequence.
func (n *Node) Decls() []*Node { return n.Children[:n.NumParams] }

// Stmts returns a CompoundStatement's statement sequence.
func (n *Node) Stmts() []*Node { return n.Children[n.NumParams:] }

// NewIf builds an If node; elseBranch may be nil (becomes NewNull()).
func NewIf(cond, then, elseBranch *Node, line int) *Node {
	if elseBranch == nil {
		elseBranch = NewNull()
	}
	return &Node{Kind: If, Line: line, Children: []*Node{cond, then, elseBranch}}
}

func (n *Node) Cond() *Node { return n.Children[0] }
func (n *Node) Then() *Node { return n.Children[1] }
func (n *Node) Else() *Node { return n.Children[2] }

// NewWhile builds a While node.
func NewWhile(cond, body *Node, line int) *Node {
	return &Node{Kind: While, Line: line, Children: []*Node{cond, body}}
}

func (n *Node) WhileCond() *Node { return n.Children[0] }
func (n *Node) WhileBody() *Node { return n.Children[1] }

// NewReturn builds a Return node.
func NewReturn(expr *Node, line int) *Node {
	return &Node{Kind: Return, Line: line, Children: []*Node{expr}}
}

func (n *Node) ReturnExpr() *Node { return n.Children[0] }

// NewFunctionCall builds a FunctionCall node: callee is the Identifier node
// naming the callee, args is the ordered argument sequence.
func NewFunctionCall(callee *Node, args []*Node, line int) *Node {
	children := make([]*Node, 0, len(args)+1)
	children = append(children, callee)
	children = append(children, args...)
	return &Node{Kind: FunctionCall, Line: line, Children: children}
}

func (n *Node) Callee() *Node { return n.Children[0] }
func (n *Node) Args() []*Node { return n.Children[1:] }

// NewAssign builds an Assign node. op is one of "=", "+=", "-=".
func NewAssign(op string, lhs, rhs *Node, line int) *Node {
	return &Node{Kind: Assign, Op: op, Line: line, Children: []*Node{lhs, rhs}}
}

func (n *Node) AssignLHS() *Node { return n.Children[0] }
func (n *Node) AssignRHS() *Node { return n.Children[1] }

// NewBinaryOp builds a BinaryOp node. op is one of the twelve operators of
// spec.md §3.1.
func NewBinaryOp(op string, lhs, rhs *Node, line int) *Node {
	return &Node{Kind: BinaryOp, Op: op, Line: line, Children: []*Node{lhs, rhs}}
}

func (n *Node) Left() *Node  { return n.Children[0] }
func (n *Node) Right() *Node { return n.Children[1] }

// NewUnaryOp builds a UnaryOp node. op is one of "-", "++", "--".
func NewUnaryOp(op string, operand *Node, line int) *Node {
	return &Node{Kind: UnaryOp, Op: op, Line: line, Children: []*Node{operand}}
}

func (n *Node) Operand() *Node { return n.Children[0] }

// NewIdentifier builds an Identifier node, unresolved (IdentKind Fresh by
// default unless overridden by the caller before binding).
func NewIdentifier(name string, kind symtab.Kind, line int) *Node {
	return &Node{Kind: Identifier, Name: name, IdentKind: kind, Line: line}
}

// NewConstant builds a Constant node holding value.
func NewConstant(value int, line int) *Node {
	return &Node{Kind: Constant, Value: value, Line: line}
}

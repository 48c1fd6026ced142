// parser.go replaces the teacher's goyacc-generated grammar (see
// lexer_test.go and DESIGN.md) with a hand-written recursive-descent parser
// over the same item stream the lexer emits. It implements exactly the
// grammar spec.md §3.1's node list implies: top-level int declarations and
// function definitions, if/while/return, =/+=/-= assignment, the twelve
// BinaryOp operators (precedence from tightest: * / , + -, the six
// comparisons sharing one level, &&, ||) and the three
// UnaryOp operators, and function calls.
package frontend

import (
	"fmt"

	"tinycc/src/ast"
	"tinycc/src/symtab"
)

// parser turns a lexer's item stream into an *ast.Node Program, one token
// of lookahead at a time.
type parser struct {
	lex *lexer
	tok item
}

// Parse lexes and parses src, returning the Program node or the first
// syntax error encountered.
func Parse(src string) (prog *ast.Node, err error) {
	p := &parser{lex: newLexer(src, lexGlobal)}
	go p.lex.run()
	p.advance()

	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(syntaxError); ok {
				err = fmt.Errorf("%s", string(se))
				return
			}
			panic(r)
		}
	}()

	items := p.parseProgram()
	return ast.NewProgram(items), nil
}

// syntaxError is panicked by parser helpers and recovered in Parse, so a
// deeply nested recursive-descent call chain doesn't need to thread error
// returns through every production.
type syntaxError string

func (p *parser) fail(format string, args ...interface{}) {
	panic(syntaxError(fmt.Sprintf("line %d: %s", p.tok.line, fmt.Sprintf(format, args...))))
}

// advance consumes the current token and fetches the next one, bailing out
// immediately on a lexer error token.
func (p *parser) advance() {
	p.tok = p.lex.nextItem()
	if p.tok.typ == itemError {
		panic(syntaxError(fmt.Sprintf("line %d: %s", p.tok.line, p.tok.val)))
	}
}

// expect consumes the current token if it has type typ, else fails.
func (p *parser) expect(typ itemType, what string) item {
	if p.tok.typ != typ {
		p.fail("expected %s, got %s", what, p.tok.String())
	}
	tok := p.tok
	p.advance()
	return tok
}

func (p *parser) at(typ itemType) bool { return p.tok.typ == typ }

// parseProgram parses a sequence of top-level declarations and function
// definitions: `int` always starts one of the two, disambiguated by
// whether `(` follows the identifier.
func (p *parser) parseProgram() []*ast.Node {
	var items []*ast.Node
	for !p.at(itemEOF) {
		items = append(items, p.parseTopLevel())
	}
	return items
}

func (p *parser) parseTopLevel() *ast.Node {
	line := p.tok.line
	p.expect(INT, "'int'")
	name := p.expect(IDENTIFIER, "identifier")

	if p.at('(') {
		return p.parseFunctionDefinition(name.val, line)
	}

	decls := []*ast.Node{ast.NewDeclarator(name.val, line)}
	for p.at(',') {
		p.advance()
		id := p.expect(IDENTIFIER, "identifier")
		decls = append(decls, ast.NewDeclarator(id.val, id.line))
	}
	p.expect(';', "';'")
	return ast.NewDeclaration(decls, line)
}

func (p *parser) parseFunctionDefinition(name string, line int) *ast.Node {
	p.expect('(', "'('")
	var params []*ast.Node
	if !p.at(')') {
		params = append(params, p.parseParameter())
		for p.at(',') {
			p.advance()
			params = append(params, p.parseParameter())
		}
	}
	p.expect(')', "')'")
	body := p.parseCompoundStatement()
	return ast.NewFunctionDefinition(ast.NewDeclarator(name, line), params, body, line)
}

func (p *parser) parseParameter() *ast.Node {
	line := p.tok.line
	p.expect(INT, "'int'")
	id := p.expect(IDENTIFIER, "identifier")
	return ast.NewParameterDeclaration(ast.NewDeclarator(id.val, id.line), line)
}

// parseCompoundStatement parses `{` decl* stmt* `}`. TinyC (like the
// grammar spec.md implies) requires locals to be declared before any
// statement in a block, so the declaration loop ends at the first token
// that isn't `int`.
func (p *parser) parseCompoundStatement() *ast.Node {
	p.expect('{', "'{'")
	var decls, stmts []*ast.Node
	for p.at(INT) {
		decls = append(decls, p.parseLocalDeclaration())
	}
	for !p.at('}') {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect('}', "'}'")
	return ast.NewCompoundStatement(decls, stmts)
}

func (p *parser) parseLocalDeclaration() *ast.Node {
	line := p.tok.line
	p.expect(INT, "'int'")
	id := p.expect(IDENTIFIER, "identifier")
	decls := []*ast.Node{ast.NewDeclarator(id.val, id.line)}
	for p.at(',') {
		p.advance()
		id = p.expect(IDENTIFIER, "identifier")
		decls = append(decls, ast.NewDeclarator(id.val, id.line))
	}
	p.expect(';', "';'")
	return ast.NewDeclaration(decls, line)
}

func (p *parser) parseStatement() *ast.Node {
	switch p.tok.typ {
	case '{':
		return p.parseCompoundStatement()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case RETURN:
		return p.parseReturn()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseIf() *ast.Node {
	line := p.tok.line
	p.advance()
	p.expect('(', "'('")
	cond := p.parseExpression()
	p.expect(')', "')'")
	then := p.parseStatement()
	var els *ast.Node
	if p.at(ELSE) {
		p.advance()
		els = p.parseStatement()
	}
	return ast.NewIf(cond, then, els, line)
}

func (p *parser) parseWhile() *ast.Node {
	line := p.tok.line
	p.advance()
	p.expect('(', "'('")
	cond := p.parseExpression()
	p.expect(')', "')'")
	body := p.parseStatement()
	return ast.NewWhile(cond, body, line)
}

func (p *parser) parseReturn() *ast.Node {
	line := p.tok.line
	p.advance()
	expr := p.parseExpression()
	p.expect(';', "';'")
	return ast.NewReturn(expr, line)
}

// parseExpressionStatement handles the two statement forms that start with
// an expression: assignment (`=`/`+=`/`-=`), folded into the parsed node
// directly by parseAssignOrLogicalOr, and a bare call/side-effecting
// expression (`++i;`, `f(x);`) used for its effect alone.
func (p *parser) parseExpressionStatement() *ast.Node {
	expr := p.parseExpression()
	p.expect(';', "';'")
	return expr
}

func (p *parser) parseExpression() *ast.Node {
	return p.parseAssignOrLogicalOr()
}

// parseAssignOrLogicalOr implements the grammar's one point of ambiguity:
// an identifier may start either an assignment or an ordinary expression.
// Since assignment's left side is always a bare Identifier, we consume the
// identifier, look at the next token, and either build an Assign node (when
// an assignment operator follows) or resume the precedence chain from the
// already-parsed identifier.
func (p *parser) parseAssignOrLogicalOr() *ast.Node {
	line := p.tok.line
	if p.at(IDENTIFIER) {
		save := p.tok
		idLine := p.tok.line
		p.advance()
		switch p.tok.typ {
		case '=', PLUSEQ, MINUSEQ:
			op := assignOp(p.tok.typ)
			p.advance()
			rhs := p.parseLogicalOr()
			lhs := ast.NewIdentifier(save.val, symtab.Fresh, idLine)
			return ast.NewAssign(op, lhs, rhs, line)
		default:
			lhs := p.parseIdentifierTail(save, idLine)
			muldiv := p.parseMulDivTailFrom(lhs)
			addsub := p.parseAddSubTailFrom(muldiv)
			cmp := p.parseComparisonTailFrom(addsub)
			and := p.parseLogicalAndTail(cmp)
			return p.parseLogicalOrTail(and)
		}
	}
	return p.parseLogicalOr()
}

func assignOp(typ itemType) string {
	switch typ {
	case '=':
		return "="
	case PLUSEQ:
		return "+="
	case MINUSEQ:
		return "-="
	}
	return "="
}

func (p *parser) parseLogicalOr() *ast.Node {
	return p.parseLogicalOrTail(p.parseLogicalAnd())
}

func (p *parser) parseLogicalOrTail(left *ast.Node) *ast.Node {
	for p.at(OR) {
		line := p.tok.line
		p.advance()
		right := p.parseLogicalAnd()
		left = ast.NewBinaryOp("||", left, right, line)
	}
	return left
}

func (p *parser) parseLogicalAnd() *ast.Node {
	return p.parseLogicalAndTail(p.parseComparison())
}

func (p *parser) parseLogicalAndTail(left *ast.Node) *ast.Node {
	for p.at(AND) {
		line := p.tok.line
		p.advance()
		right := p.parseComparison()
		left = ast.NewBinaryOp("&&", left, right, line)
	}
	return left
}

var comparisonOps = map[itemType]string{
	EQ: "==", NEQ: "!=", LEQ: "<=", GEQ: ">=", '<': "<", '>': ">",
}

func (p *parser) parseComparison() *ast.Node {
	return p.parseComparisonTailFrom(p.parseAddSub())
}

func (p *parser) parseComparisonTailFrom(left *ast.Node) *ast.Node {
	for {
		op, ok := comparisonOps[p.tok.typ]
		if !ok {
			return left
		}
		line := p.tok.line
		p.advance()
		right := p.parseAddSub()
		left = ast.NewBinaryOp(op, left, right, line)
	}
}

func (p *parser) parseAddSub() *ast.Node {
	return p.parseAddSubTailFrom(p.parseMulDiv())
}

func (p *parser) parseAddSubTailFrom(left *ast.Node) *ast.Node {
	for p.at('+') || p.at('-') {
		op := "+"
		if p.at('-') {
			op = "-"
		}
		line := p.tok.line
		p.advance()
		right := p.parseMulDiv()
		left = ast.NewBinaryOp(op, left, right, line)
	}
	return left
}

func (p *parser) parseMulDiv() *ast.Node {
	return p.parseMulDivTailFrom(p.parseUnary())
}

func (p *parser) parseMulDivTailFrom(left *ast.Node) *ast.Node {
	for p.at('*') || p.at('/') {
		op := "*"
		if p.at('/') {
			op = "/"
		}
		line := p.tok.line
		p.advance()
		right := p.parseUnary()
		left = ast.NewBinaryOp(op, left, right, line)
	}
	return left
}

func (p *parser) parseUnary() *ast.Node {
	switch p.tok.typ {
	case '-':
		line := p.tok.line
		p.advance()
		return ast.NewUnaryOp("-", p.parseUnary(), line)
	case INC:
		line := p.tok.line
		p.advance()
		return ast.NewUnaryOp("++", p.parseUnary(), line)
	case DEC:
		line := p.tok.line
		p.advance()
		return ast.NewUnaryOp("--", p.parseUnary(), line)
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() *ast.Node {
	switch p.tok.typ {
	case INTEGER:
		tok := p.tok
		p.advance()
		return ast.NewConstant(atoi(tok.val), tok.line)
	case '(':
		p.advance()
		e := p.parseExpression()
		p.expect(')', "')'")
		return e
	case IDENTIFIER:
		tok := p.tok
		p.advance()
		return p.parseIdentifierTail(tok, tok.line)
	default:
		p.fail("expected an expression, got %s", p.tok.String())
		return nil
	}
}

// parseIdentifierTail finishes parsing an identifier already consumed as
// tok: either a function call (`name(` args `)`) or a bare variable
// reference.
func (p *parser) parseIdentifierTail(tok item, line int) *ast.Node {
	if p.at('(') {
		p.advance()
		var args []*ast.Node
		if !p.at(')') {
			args = append(args, p.parseExpression())
			for p.at(',') {
				p.advance()
				args = append(args, p.parseExpression())
			}
		}
		p.expect(')', "')'")
		callee := ast.NewIdentifier(tok.val, symtab.FunctionCall, line)
		return ast.NewFunctionCall(callee, args, line)
	}
	return ast.NewIdentifier(tok.val, symtab.Fresh, line)
}

// atoi parses an unsigned decimal literal; the lexer only ever emits
// INTEGER tokens consisting of ASCII digits, so this never needs to report
// an error back to the parser.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

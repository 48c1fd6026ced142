// Tests the lexer type by verifying that a short TinyC snippet is
// tokenized as expected. The source is kept as an inline literal (rather
// than the teacher's on-disk resource file) so the test carries no external
// fixture dependency.

package frontend

import "testing"

func TestLexer(t *testing.T) {
	src := `int add(int a, int b) {
    int c;
    c = a + b;
    if (c >= 10) {
        return c;
    }
    return 0;
}
`
	exp := []item{
		{val: "int", typ: INT, line: 1, pos: 1},
		{val: "add", typ: IDENTIFIER, line: 1, pos: 5},
		{val: "(", typ: '(', line: 1, pos: 8},
		{val: "int", typ: INT, line: 1, pos: 9},
		{val: "a", typ: IDENTIFIER, line: 1, pos: 13},
		{val: ",", typ: ',', line: 1, pos: 14},
		{val: "int", typ: INT, line: 1, pos: 16},
		{val: "b", typ: IDENTIFIER, line: 1, pos: 20},
		{val: ")", typ: ')', line: 1, pos: 21},
		{val: "{", typ: '{', line: 1, pos: 23},
		{val: "int", typ: INT, line: 2, pos: 5},
		{val: "c", typ: IDENTIFIER, line: 2, pos: 9},
		{val: ";", typ: ';', line: 2, pos: 10},
		{val: "c", typ: IDENTIFIER, line: 3, pos: 5},
		{val: "=", typ: '=', line: 3, pos: 7},
		{val: "a", typ: IDENTIFIER, line: 3, pos: 9},
		{val: "+", typ: '+', line: 3, pos: 11},
		{val: "b", typ: IDENTIFIER, line: 3, pos: 13},
		{val: ";", typ: ';', line: 3, pos: 14},
		{val: "if", typ: IF, line: 4, pos: 5},
		{val: "(", typ: '(', line: 4, pos: 8},
		{val: "c", typ: IDENTIFIER, line: 4, pos: 9},
		{val: ">=", typ: GEQ, line: 4, pos: 11},
		{val: "10", typ: INTEGER, line: 4, pos: 14},
		{val: ")", typ: ')', line: 4, pos: 16},
		{val: "{", typ: '{', line: 4, pos: 18},
		{val: "return", typ: RETURN, line: 5, pos: 9},
		{val: "c", typ: IDENTIFIER, line: 5, pos: 16},
		{val: ";", typ: ';', line: 5, pos: 17},
		{val: "}", typ: '}', line: 6, pos: 5},
		{val: "return", typ: RETURN, line: 7, pos: 5},
		{val: "0", typ: INTEGER, line: 7, pos: 12},
		{val: ";", typ: ';', line: 7, pos: 13},
		{val: "}", typ: '}', line: 8, pos: 1},
	}

	l := newLexer(src, lexGlobal)
	go l.run()

	for i1 := 0; ; i1++ {
		tok := l.nextItem()
		if tok.typ == itemEOF {
			if i1 < len(exp) {
				t.Fatalf("expected %d tokens, got %d", len(exp), i1)
			}
			break
		}
		if i1 >= len(exp) {
			t.Fatalf("expected %d tokens, got more (next: %s)", len(exp), tok.String())
		}
		if tok.typ != exp[i1].typ || tok.val != exp[i1].val {
			t.Errorf("(token %d): expected %q, got %q", i1+1, exp[i1].val, tok.String())
		} else if tok.line != exp[i1].line || tok.pos != exp[i1].pos {
			t.Errorf("(token %d): expected %q to be on line %d:%d, got line %d:%d",
				i1+1, exp[i1].val, exp[i1].line, exp[i1].pos, tok.line, tok.pos)
		}
	}
}

func TestLexerSkipsLineComments(t *testing.T) {
	src := "int x; // trailing comment\nint y;"
	l := newLexer(src, lexGlobal)
	go l.run()

	var got []itemType
	for {
		tok := l.nextItem()
		if tok.typ == itemEOF {
			break
		}
		got = append(got, tok.typ)
	}
	want := []itemType{INT, IDENTIFIER, ';', INT, IDENTIFIER, ';'}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerRecognizesMultiCharOperators(t *testing.T) {
	src := "a == b != c <= d >= e && f || g ++ -- += -="
	l := newLexer(src, lexGlobal)
	go l.run()

	var got []itemType
	for {
		tok := l.nextItem()
		if tok.typ == itemEOF {
			break
		}
		got = append(got, tok.typ)
	}
	want := []itemType{
		IDENTIFIER, EQ, IDENTIFIER, NEQ, IDENTIFIER, LEQ, IDENTIFIER, GEQ, IDENTIFIER,
		AND, IDENTIFIER, OR, IDENTIFIER, INC, DEC, PLUSEQ, MINUSEQ,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

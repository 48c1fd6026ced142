package frontend

// lexGlobal starts the lexing process and serves as the default state.
func lexGlobal(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case isAlpha(r):
			// Keyword or identifier.
			return lexWord
		case isDigit(r):
			// Number.
			return lexNumber
		case r == '\n':
			// Newline.
			l.ignore()
			l.line++
			l.startOnLine = 1
		case isSpace(r):
			// Ignore whitespace. Newlines are caught before whitespaces.
			l.ignore()
		case r == '/' && l.peek() == '/':
			// Ignore line comments.
			for c := l.next(); c != '\n' && c != eof; c = l.next() {
			}
			l.backup()
			l.ignore()
		case r == '=' && l.peek() == '=':
			l.next()
			l.emit(EQ)
		case r == '!' && l.peek() == '=':
			l.next()
			l.emit(NEQ)
		case r == '<' && l.peek() == '=':
			l.next()
			l.emit(LEQ)
		case r == '>' && l.peek() == '=':
			l.next()
			l.emit(GEQ)
		case r == '&' && l.peek() == '&':
			l.next()
			l.emit(AND)
		case r == '|' && l.peek() == '|':
			l.next()
			l.emit(OR)
		case r == '+' && l.peek() == '+':
			l.next()
			l.emit(INC)
		case r == '-' && l.peek() == '-':
			l.next()
			l.emit(DEC)
		case r == '+' && l.peek() == '=':
			l.next()
			l.emit(PLUSEQ)
		case r == '-' && l.peek() == '=':
			l.next()
			l.emit(MINUSEQ)
		case r == eof:
			// End of file: stop the state machine.
			l.emit(itemEOF)
			return nil
		default:
			// Let the parser use the single-character token as-is
			// (+ - * / = < > , ( ) { } ;).
			l.emit(itemType(r))
		}
	}
}

// lexWord scans the input string for keywords and identifiers.
func lexWord(l *lexer) stateFunc {
	// We know that the currently scanned rune is an alphabetic character.
	for {
		r := l.next()

		// Check if character is valid character.
		if !isAlpha(r) && !isDigit(r) && r != '_' {
			l.backup()
			kw, typ := isKeyword(l.input[l.start:l.pos])
			if kw {
				l.emit(typ)
			} else {
				l.emit(IDENTIFIER)
			}
			return lexGlobal
		}
	}
}

// lexNumber scans the input stream for an integer number. TinyC has no
// floating-point type, unlike the teacher's language, so this state never
// branches on a decimal point.
func lexNumber(l *lexer) stateFunc {
	// We've scanned the first digit already. We don't scan negative numbers:
	// the parser handles negation via the unary '-' grammar rule instead.
	for r := l.next(); isDigit(r); r = l.next() {
	}
	l.backup()
	l.emit(INTEGER)
	return lexGlobal
}

// ----------------------------
// ----- Helper functions -----
// ----------------------------

// isAlpha return true if rune r is an alphabetic character in the set [a-zA-Z].
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit return true if rune r is a digit in the range [0-9].
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isSpace return true if rune r is a whitespace character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
}

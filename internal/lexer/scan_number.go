package lexer

import (
	"tracelet/internal/diag"
	"tracelet/internal/token"
)

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Offset()
	kind := token.IntLit

	for !lx.cursor.EOF() && isDigitByte(lx.cursor.Peek()) {
		lx.cursor.Advance()
	}

	// Fractional part; a bare trailing '.' still makes a float, but
	// "1.foo" is an attribute access on an int and is left alone.
	if lx.cursor.Peek() == '.' && isDigitByte(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Advance()
		for !lx.cursor.EOF() && isDigitByte(lx.cursor.Peek()) {
			lx.cursor.Advance()
		}
	}

	end := lx.cursor.Offset()
	sp := lx.cursor.span(start, end)

	if isIdentStartByte(lx.cursor.Peek()) {
		lx.report(diag.LexBadNumber, sp, "invalid number literal")
		// Consume the junk so the lexer makes progress.
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Advance()
		}
		end = lx.cursor.Offset()
		sp = lx.cursor.span(start, end)
	}

	return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Slice(start, end)}
}

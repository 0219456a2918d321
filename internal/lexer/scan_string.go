package lexer

import (
	"tracelet/internal/diag"
	"tracelet/internal/token"
)

// scanString lexes a single- or double-quoted string. Text keeps the
// raw source slice including quotes; the parser unescapes.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Offset()
	quote := lx.cursor.Peek()
	lx.cursor.Advance()

	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' {
			break
		}
		if ch == '\\' {
			lx.cursor.Advance()
			if !lx.cursor.EOF() {
				lx.cursor.Advance()
			}
			continue
		}
		lx.cursor.Advance()
		if ch == quote {
			end := lx.cursor.Offset()
			return token.Token{
				Kind: token.StringLit,
				Span: lx.cursor.span(start, end),
				Text: lx.cursor.Slice(start, end),
			}
		}
	}

	end := lx.cursor.Offset()
	sp := lx.cursor.span(start, end)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.cursor.Slice(start, end)}
}

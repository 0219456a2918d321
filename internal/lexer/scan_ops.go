package lexer

import (
	"fmt"

	"tracelet/internal/diag"
	"tracelet/internal/token"
)

// scanOperator lexes operators and punctuation with maximal munch.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Offset()
	ch := lx.cursor.Peek()
	next := lx.cursor.PeekAt(1)

	kind := token.Invalid
	length := uint32(1)

	switch ch {
	case '+':
		kind = token.Plus
		if next == '=' {
			kind, length = token.PlusAssign, 2
		}
	case '-':
		kind = token.Minus
		if next == '=' {
			kind, length = token.MinusAssign, 2
		}
	case '*':
		kind = token.Star
		if next == '*' {
			kind, length = token.StarStar, 2
		}
	case '/':
		kind = token.Slash
		if next == '/' {
			kind, length = token.SlashSlash, 2
		}
	case '<':
		if next == '<' {
			kind, length = token.Shl, 2
		}
	case '>':
		if next == '>' {
			kind, length = token.Shr, 2
		}
	case '@':
		kind = token.At
	case '%':
		kind = token.Percent
	case '|':
		kind = token.Pipe
	case '^':
		kind = token.Caret
	case '&':
		kind = token.Amp
	case '=':
		kind = token.Assign
	case '(':
		kind = token.LParen
		lx.parenDepth++
	case ')':
		kind = token.RParen
		if lx.parenDepth > 0 {
			lx.parenDepth--
		}
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	}

	for i := uint32(0); i < length; i++ {
		lx.cursor.Advance()
	}
	end := lx.cursor.Offset()
	sp := lx.cursor.span(start, end)

	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", rune(ch)))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.cursor.Slice(start, end)}
}

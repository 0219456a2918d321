package lexer

import (
	"tracelet/internal/diag"
	"tracelet/internal/source"
	"tracelet/internal/token"
)

// Lexer turns one script file into a token stream. Indentation is
// significant: it synthesizes Newline, Indent, and Dedent tokens the way
// the layout rules of the language demand, with implicit line joining
// inside parentheses.
type Lexer struct {
	file       *source.File
	cursor     Cursor
	opts       Options
	look       *token.Token  // 1-token lookahead buffer
	pending    []token.Token // queued layout tokens
	indents    []uint32      // indentation stack; always starts with 0
	atLineBgn  bool
	parenDepth int
	eofDrained bool
	lastKind   token.Kind
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []uint32{0},
		atLineBgn: true,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	off := lx.cursor.Offset()
	return lx.cursor.span(off, off)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	tok := lx.scan0()
	lx.lastKind = tok.Kind
	return tok
}

func (lx *Lexer) scan0() token.Token {
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}

		if lx.atLineBgn && lx.parenDepth == 0 {
			lx.handleLineStart()
			lx.atLineBgn = false
			continue
		}

		lx.skipInlineSpace()

		if lx.cursor.EOF() {
			lx.drainAtEOF()
			continue
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '\n':
			lx.cursor.Advance()
			lx.atLineBgn = true
			if lx.parenDepth > 0 {
				continue // implicit line joining
			}
			switch lx.lastKind {
			case token.Invalid, token.Newline, token.Indent, token.Dedent:
				continue // blank line, no logical newline
			}
			return token.Token{Kind: token.Newline, Span: lx.EmptySpan()}
		case ch == '#':
			lx.skipComment()
		case isIdentStartByte(ch):
			return lx.scanIdentOrKeyword()
		case isDigitByte(ch):
			return lx.scanNumber()
		case ch == '\'' || ch == '"':
			return lx.scanString()
		default:
			return lx.scanOperator()
		}
	}
}

// handleLineStart measures indentation and queues Indent/Dedent tokens.
// Blank and comment-only lines produce nothing.
func (lx *Lexer) handleLineStart() {
	startOff := lx.cursor.Offset()
	col := uint32(0)
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == ' ' {
			col++
			lx.cursor.Advance()
			continue
		}
		if ch == '\t' {
			lx.report(diag.LexTabIndent, lx.cursor.span(lx.cursor.Offset(), lx.cursor.Offset()+1),
				"tab in indentation; use spaces")
			col++
			lx.cursor.Advance()
			continue
		}
		break
	}

	// Nothing to lay out on blank or comment-only lines.
	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '#' {
		return
	}

	sp := lx.cursor.span(startOff, lx.cursor.Offset())
	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: sp})
	case col < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		if lx.indents[len(lx.indents)-1] != col {
			lx.report(diag.LexBadIndent, sp, "unindent does not match any outer indentation level")
		}
	}
}

// drainAtEOF queues the final Newline, closing Dedents, and EOF.
func (lx *Lexer) drainAtEOF() {
	if lx.eofDrained {
		lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.EmptySpan()})
		return
	}
	lx.eofDrained = true
	sp := lx.EmptySpan()
	// A file that ends without a newline still terminates its last
	// logical line.
	switch lx.lastKind {
	case token.Invalid, token.Newline, token.Indent, token.Dedent:
	default:
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: sp})
}

func (lx *Lexer) skipInlineSpace() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			lx.cursor.Advance()
			continue
		}
		break
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Advance()
	}
}

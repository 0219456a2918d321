package parser

import (
	"tracelet/internal/ast"
	"tracelet/internal/diag"
	"tracelet/internal/source"
	"tracelet/internal/token"
)

// parseStatement parses one statement, including its terminating
// Newline.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwDef:
		return p.parseFuncDef()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwImport:
		return p.parseImport()
	case token.KwGlobal:
		return p.parseGlobal()
	default:
		return p.parseExprLine()
	}
}

// parseFuncDef parses `def name(params):` and its indented body.
func (p *Parser) parseFuncDef() (ast.StmtID, bool) {
	defTok := p.advance() // def

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'def'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoStmtID, false
	}

	var params []ast.Param
	for !p.at(token.RParen) {
		paramTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.NoStmtID, false
		}
		params = append(params, ast.Param{
			Name: p.arenas.Intern(paramTok.Text),
			Span: paramTok.Span,
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after parameters"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after function signature"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	sp := defTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFuncDef(sp, p.arenas.Intern(nameTok.Text), params, body), true
}

// parseBlock parses Newline Indent stmt+ Dedent.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.Newline, diag.SynExpectNewline, "expected newline before indented block"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Indent, diag.SynExpectIndent, "expected an indented block"); !ok {
		return nil, false
	}

	var body []ast.StmtID
	for {
		switch p.lx.Peek().Kind {
		case token.Dedent:
			p.advance()
			return body, true
		case token.EOF:
			return body, true
		case token.Newline:
			p.advance()
			continue
		}
		stmtID, ok := p.parseStatement()
		if !ok {
			p.resyncLine()
			continue
		}
		body = append(body, stmtID)
	}
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	retTok := p.advance() // return

	value := ast.NoExprID
	if !p.at(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
		v, ok := p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
		value = v
	}
	if !p.endOfLine() {
		return ast.NoStmtID, false
	}
	sp := retTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewReturn(sp, value), true
}

func (p *Parser) parseImport() (ast.StmtID, bool) {
	impTok := p.advance() // import
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name after 'import'")
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.endOfLine() {
		return ast.NoStmtID, false
	}
	sp := impTok.Span.Cover(nameTok.Span)
	return p.arenas.Stmts.NewImport(sp, p.arenas.Intern(nameTok.Text)), true
}

func (p *Parser) parseGlobal() (ast.StmtID, bool) {
	glTok := p.advance() // global

	var names []source.StringID
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'global'")
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, p.arenas.Intern(nameTok.Text))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.endOfLine() {
		return ast.NoStmtID, false
	}
	sp := glTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewGlobal(sp, names), true
}

// parseExprLine parses assignment, augmented assignment, or a bare
// expression statement.
func (p *Parser) parseExprLine() (ast.StmtID, bool) {
	first, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	firstSpan := p.arenas.Exprs.Get(first).Span

	switch p.lx.Peek().Kind {
	case token.Assign:
		p.advance()
		value, ok := p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.endOfLine() {
			return ast.NoStmtID, false
		}
		sp := firstSpan.Cover(p.lastSpan)
		return p.arenas.Stmts.NewAssign(sp, []ast.ExprID{first}, value), true

	case token.PlusAssign, token.MinusAssign:
		opTok := p.advance()
		op := ast.OpAdd
		if opTok.Kind == token.MinusAssign {
			op = ast.OpSub
		}
		value, ok := p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.endOfLine() {
			return ast.NoStmtID, false
		}
		sp := firstSpan.Cover(p.lastSpan)
		return p.arenas.Stmts.NewAugAssign(sp, first, op, value), true

	default:
		if !p.endOfLine() {
			return ast.NoStmtID, false
		}
		sp := firstSpan.Cover(p.lastSpan)
		return p.arenas.Stmts.NewExpr(sp, first), true
	}
}

// endOfLine consumes the statement terminator. EOF and Dedent also
// terminate (the lexer guarantees a Newline for well-formed input).
func (p *Parser) endOfLine() bool {
	switch p.lx.Peek().Kind {
	case token.Newline:
		p.advance()
		return true
	case token.EOF, token.Dedent:
		return true
	}
	p.errorAt(diag.SynExpectNewline, p.lx.Peek().Span, "expected end of line")
	return false
}

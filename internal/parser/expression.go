package parser

import (
	"strings"

	"tracelet/internal/ast"
	"tracelet/internal/diag"
	"tracelet/internal/token"
)

// Binding powers for the binary operator table, loosest first. Pow is
// right-associative; everything else is left-associative.
const (
	bpBitOr = iota + 1
	bpBitXor
	bpBitAnd
	bpShift
	bpAdditive
	bpMultiplicative
	bpPow
)

type binOpInfo struct {
	op    ast.BinaryOp
	bp    int
	right bool
}

var binOps = map[token.Kind]binOpInfo{
	token.Pipe:       {op: ast.OpBitOr, bp: bpBitOr},
	token.Caret:      {op: ast.OpBitXor, bp: bpBitXor},
	token.Amp:        {op: ast.OpBitAnd, bp: bpBitAnd},
	token.Shl:        {op: ast.OpShl, bp: bpShift},
	token.Shr:        {op: ast.OpShr, bp: bpShift},
	token.Plus:       {op: ast.OpAdd, bp: bpAdditive},
	token.Minus:      {op: ast.OpSub, bp: bpAdditive},
	token.Star:       {op: ast.OpMul, bp: bpMultiplicative},
	token.At:         {op: ast.OpMatMul, bp: bpMultiplicative},
	token.Slash:      {op: ast.OpDiv, bp: bpMultiplicative},
	token.SlashSlash: {op: ast.OpFloorDiv, bp: bpMultiplicative},
	token.Percent:    {op: ast.OpMod, bp: bpMultiplicative},
	token.StarStar:   {op: ast.OpPow, bp: bpPow, right: true},
}

func (p *Parser) parseExpression() (ast.ExprID, bool) {
	return p.parseBinary(0)
}

// parseBinary is a precedence climber over the closed operator set.
func (p *Parser) parseBinary(minBP int) (ast.ExprID, bool) {
	left, ok := p.parsePostfix()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		info, isOp := binOps[p.lx.Peek().Kind]
		if !isOp || info.bp < minBP {
			return left, true
		}
		p.advance()

		nextBP := info.bp + 1
		if info.right {
			nextBP = info.bp
		}
		right, ok := p.parseBinary(nextBP)
		if !ok {
			return ast.NoExprID, false
		}

		sp := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(sp, info.op, left, right)
	}
}

// parsePostfix parses a primary followed by any chain of calls and
// attribute accesses.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			attrTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '.'")
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(attrTok.Span)
			expr = p.arenas.Exprs.NewAttr(sp, expr, p.arenas.Intern(attrTok.Text))

		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) {
				arg, ok := p.parseExpression()
				if !ok {
					return ast.NoExprID, false
				}
				args = append(args, arg)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			closeTok, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after call arguments")
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewCall(sp, expr, args)

		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Intern(tok.Text)), true
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, p.arenas.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, p.arenas.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitStr, p.arenas.Intern(unquoteString(tok.Text))), true
	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitTrue, p.arenas.Intern(tok.Text)), true
	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFalse, p.arenas.Intern(tok.Text)), true
	case token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNone, p.arenas.Intern(tok.Text)), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return inner, true
	}
	p.errorAt(diag.SynExpectExpression, tok.Span, "expected an expression, got "+tok.Kind.String())
	return ast.NoExprID, false
}

// unquoteString strips the quotes from a raw string token and resolves
// the escape sequences the lexer admitted.
func unquoteString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 == len(body) {
			sb.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\', '\'', '"':
			sb.WriteByte(body[i])
		default:
			// Unknown escape: keep it verbatim.
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}

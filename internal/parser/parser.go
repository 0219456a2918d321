package parser

import (
	"tracelet/internal/ast"
	"tracelet/internal/diag"
	"tracelet/internal/lexer"
	"tracelet/internal/source"
	"tracelet/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
}

// Parser holds the state for parsing one script file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile is the entry point for parsing one file. It requires an
// already-created lexer over a source.File.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	program := ast.NewProgram(arenas, lx.EmptySpan())
	p.parseModule(program)

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Program: program, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of kind k or reports code and returns false
// without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorAt(code, p.lx.Peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil && !p.enoughAlready() {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (p *Parser) enoughAlready() bool {
	if p.opts.MaxErrors == 0 {
		return false
	}
	return p.opts.CurrentErrors > p.opts.MaxErrors
}

// resyncLine skips to the start of the next logical line.
func (p *Parser) resyncLine() {
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Newline, token.Dedent:
			p.advance()
			return
		}
		p.advance()
	}
}

// parseModule is the top-level loop: statements until EOF.
func (p *Parser) parseModule(program *ast.Program) {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		if p.at(token.Indent) || p.at(token.Dedent) {
			// Stray layout at top level; the lexer already complained
			// if the indentation was inconsistent.
			p.advance()
			continue
		}
		stmtID, ok := p.parseStatement()
		if !ok {
			p.resyncLine()
			continue
		}
		program.Module.Body = append(program.Module.Body, stmtID)
	}
	program.Module.Span = startSpan.Cover(p.lastSpan)
}

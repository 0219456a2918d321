// Package printer renders a program back to source text. Instrumented
// trees contain synthesized nodes with no faithful original text, so
// the printer works from the tree alone and produces canonical
// formatting.
package printer

import (
	"strings"

	"tracelet/internal/ast"
)

// Options controls output formatting.
type Options struct {
	IndentWidth int // spaces per block level; default 4
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	prog   *ast.Program
	sb     strings.Builder
	indent int
	opt    Options
}

// Print renders the whole module.
func Print(prog *ast.Program, opt Options) string {
	p := &printer{prog: prog, opt: opt.withDefaults()}
	p.printStmts(prog.Module.Body)
	return p.sb.String()
}

func (p *printer) line(text string) {
	p.sb.WriteString(strings.Repeat(" ", p.indent*p.opt.IndentWidth))
	p.sb.WriteString(text)
	p.sb.WriteByte('\n')
}

func (p *printer) printStmts(body []ast.StmtID) {
	for _, id := range body {
		p.printStmt(id)
	}
}

func (p *printer) printStmt(id ast.StmtID) {
	stmt := p.prog.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtFuncDef:
		data, _ := p.prog.Stmts.FuncDef(id)
		params := make([]string, len(data.Params))
		for i, param := range data.Params {
			params[i] = p.prog.Strings.MustLookup(param.Name)
		}
		p.line("def " + p.prog.Strings.MustLookup(data.Name) + "(" + strings.Join(params, ", ") + "):")
		p.indent++
		if len(data.Body) == 0 {
			p.line("return")
		} else {
			p.printStmts(data.Body)
		}
		p.indent--

	case ast.StmtAssign:
		data, _ := p.prog.Stmts.Assign(id)
		targets := make([]string, len(data.Targets))
		for i, target := range data.Targets {
			targets[i] = p.expr(target, 0)
		}
		p.line(strings.Join(targets, " = ") + " = " + p.expr(data.Value, 0))

	case ast.StmtAugAssign:
		data, _ := p.prog.Stmts.AugAssign(id)
		p.line(p.expr(data.Target, 0) + " " + data.Op.Token() + "= " + p.expr(data.Value, 0))

	case ast.StmtReturn:
		data, _ := p.prog.Stmts.Return(id)
		if data.Value.IsValid() {
			p.line("return " + p.expr(data.Value, 0))
		} else {
			p.line("return")
		}

	case ast.StmtExpr:
		data, _ := p.prog.Stmts.Expr(id)
		p.line(p.expr(data.Value, 0))

	case ast.StmtImport:
		data, _ := p.prog.Stmts.Import(id)
		p.line("import " + p.prog.Strings.MustLookup(data.Module))

	case ast.StmtGlobal:
		data, _ := p.prog.Stmts.Global(id)
		names := make([]string, len(data.Names))
		for i, nameID := range data.Names {
			names[i] = p.prog.Strings.MustLookup(nameID)
		}
		p.line("global " + strings.Join(names, ", "))
	}
}

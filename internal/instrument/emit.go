package instrument

import (
	"strconv"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

func (t *Transformer) intLit(sp source.Span, n int) ast.ExprID {
	return t.prog.Exprs.NewLiteral(sp, ast.LitInt, t.prog.Strings.Intern(strconv.Itoa(n)))
}

func (t *Transformer) strLit(sp source.Span, s string) ast.ExprID {
	return t.prog.Exprs.NewLiteral(sp, ast.LitStr, t.prog.Strings.Intern(s))
}

// indentExpr synthesizes the indentation argument: `" " * __depth`, or
// with a prefix `" " * (__depth - len(prefix)) + prefix`, which shifts
// the marker one level left of the block it brackets. Prefix width was
// validated once against the indent width.
func (t *Transformer) indentExpr(sp source.Span, prefix string) ast.ExprID {
	depth := t.prog.Exprs.NewIdent(sp, t.depthVar)
	width := depth
	if prefix != "" {
		width = t.prog.Exprs.NewBinary(sp, ast.OpSub, depth, t.intLit(sp, len(prefix)))
	}
	indent := t.prog.Exprs.NewBinary(sp, ast.OpMul, t.strLit(sp, " "), width)
	if prefix != "" {
		indent = t.prog.Exprs.NewBinary(sp, ast.OpAdd, indent, t.strLit(sp, prefix))
	}
	return indent
}

// buildTrace synthesizes one trace statement:
//
//	sys.trace(<indent>, part, part, ...)
//
// sys.trace stringifies its arguments, concatenates them with no
// separator, and writes one line to stderr. Adjacent literal segments
// are merged into a single constant.
func (t *Transformer) buildTrace(segs []Segment, prefix string, sp source.Span) ast.StmtID {
	args := []ast.ExprID{t.indentExpr(sp, prefix)}

	pending := ""
	flush := func() {
		if pending != "" {
			args = append(args, t.strLit(sp, pending))
			pending = ""
		}
	}
	for _, seg := range segs {
		if seg.Expr.IsValid() {
			flush()
			args = append(args, seg.Expr)
			continue
		}
		pending += seg.Text
	}
	flush()

	callee := t.prog.Exprs.NewAttr(sp, t.prog.Exprs.NewIdent(sp, t.sysName), t.traceName)
	call := t.prog.Exprs.NewCall(sp, callee, args)
	return t.prog.Stmts.NewExpr(sp, call)
}

// depthDelta synthesizes `__depth += w` or `__depth -= w`.
func (t *Transformer) depthDelta(sp source.Span, op ast.BinaryOp) ast.StmtID {
	target := t.prog.Exprs.NewIdent(sp, t.depthVar)
	return t.prog.Stmts.NewAugAssign(sp, target, op, t.intLit(sp, t.opts.IndentWidth))
}

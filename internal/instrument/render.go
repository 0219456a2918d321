package instrument

import (
	"strings"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// Segment is one piece of a trace line: either literal text fixed (and
// styled) at rewrite time, or a placeholder expression the executed
// program evaluates when the line prints. The renderer only describes
// expressions; it never duplicates their evaluation.
type Segment struct {
	Text string
	Expr ast.ExprID
}

func literal(text string) Segment {
	return Segment{Text: text}
}

func placeholder(id ast.ExprID) Segment {
	return Segment{Expr: id}
}

// reprOf synthesizes `repr(<name>)` for a debug-representation
// placeholder. sp is the span of the statement the trace line derives
// from.
func (t *Transformer) reprOf(sp source.Span, name source.StringID) ast.ExprID {
	callee := t.prog.Exprs.NewIdent(sp, t.reprName)
	arg := t.prog.Exprs.NewIdent(sp, name)
	return t.prog.Exprs.NewCall(sp, callee, []ast.ExprID{arg})
}

// renderValue renders an expression for display. Only the closed
// grammar subset is supported; anything else is a fatal rewrite error.
func (t *Transformer) renderValue(id ast.ExprID, sp source.Span) ([]Segment, error) {
	expr := t.prog.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := t.prog.Exprs.Ident(id)
		name := t.prog.Strings.MustLookup(data.Name)
		return []Segment{
			literal(t.opts.Styles.Name.Sprintf("%s (", name)),
			placeholder(t.reprOf(sp, data.Name)),
			literal(t.opts.Styles.Name.Sprint(")")),
		}, nil

	case ast.ExprLit:
		data, _ := t.prog.Exprs.Literal(id)
		return []Segment{
			literal(t.opts.Styles.Const.Sprint(t.reprLiteral(data))),
		}, nil

	case ast.ExprBinary:
		data, _ := t.prog.Exprs.Binary(id)
		// Copy before recursing; arena growth may move the payload.
		op, left, right := data.Op, data.Left, data.Right
		leftSegs, err := t.renderValue(left, sp)
		if err != nil {
			return nil, err
		}
		rightSegs, err := t.renderValue(right, sp)
		if err != nil {
			return nil, err
		}
		segs := append(leftSegs, literal(" "+op.Token()+" "))
		return append(segs, rightSegs...), nil

	case ast.ExprCall:
		return t.renderCall(id, sp)
	}
	return nil, unsupportedf(expr.Span, "cannot render %s expression", expr.Kind)
}

// renderParam renders a formal parameter for an entry line as
// `name={value}`.
func (t *Transformer) renderParam(p ast.Param, sp source.Span) []Segment {
	name := t.prog.Strings.MustLookup(p.Name)
	return []Segment{
		literal(t.opts.Styles.Name.Sprintf("%s=", name)),
		placeholder(t.prog.Exprs.NewIdent(sp, p.Name)),
	}
}

// renderCallee renders the callee path of a call. The outermost name
// and every attribute tail get the call-site style; a deeper base
// renders as a plain value.
func (t *Transformer) renderCallee(id ast.ExprID, sp source.Span, first bool) ([]Segment, error) {
	expr := t.prog.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		if !first {
			return t.renderValue(id, sp)
		}
		data, _ := t.prog.Exprs.Ident(id)
		return []Segment{
			literal(t.opts.Styles.Func.Sprint(t.prog.Strings.MustLookup(data.Name))),
		}, nil

	case ast.ExprAttr:
		data, _ := t.prog.Exprs.Attr(id)
		object, attr := data.Object, data.Attr
		base, err := t.renderCallee(object, sp, false)
		if err != nil {
			return nil, err
		}
		return append(base,
			literal("."),
			literal(t.opts.Styles.Func.Sprint(t.prog.Strings.MustLookup(attr))),
		), nil
	}
	return nil, unsupportedf(expr.Span, "cannot render %s as a callee", expr.Kind)
}

// renderCall renders `callee(arg, ...)`. Reduced fidelity collapses the
// argument list to an ellipsis instead of recursing.
func (t *Transformer) renderCall(id ast.ExprID, sp source.Span) ([]Segment, error) {
	data, _ := t.prog.Exprs.Call(id)
	callee := data.Callee
	args := make([]ast.ExprID, len(data.Args))
	copy(args, data.Args)

	segs, err := t.renderCallee(callee, sp, true)
	if err != nil {
		return nil, err
	}
	segs = append(segs, literal("("))

	if t.opts.Fidelity == FidelityReduced && len(args) > 0 {
		segs = append(segs, literal("..."))
	} else {
		for i, arg := range args {
			if i > 0 {
				segs = append(segs, literal(", "))
			}
			argSegs, err := t.renderValue(arg, sp)
			if err != nil {
				return nil, err
			}
			segs = append(segs, argSegs...)
		}
	}
	return append(segs, literal(")")), nil
}

// reprLiteral is the rewrite-time debug representation of a constant.
func (t *Transformer) reprLiteral(data *ast.ExprLitData) string {
	text := t.prog.Strings.MustLookup(data.Value)
	if data.Kind != ast.LitStr {
		return text
	}

	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range text {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

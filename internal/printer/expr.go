package printer

import (
	"strings"

	"tracelet/internal/ast"
)

// Binding powers mirror the parser's precedence table so printed
// output re-parses to the same tree with a minimum of parentheses.
var printBP = map[ast.BinaryOp]int{
	ast.OpBitOr:    1,
	ast.OpBitXor:   2,
	ast.OpBitAnd:   3,
	ast.OpShl:      4,
	ast.OpShr:      4,
	ast.OpAdd:      5,
	ast.OpSub:      5,
	ast.OpMul:      6,
	ast.OpMatMul:   6,
	ast.OpDiv:      6,
	ast.OpFloorDiv: 6,
	ast.OpMod:      6,
	ast.OpPow:      7,
}

// expr renders an expression, parenthesizing when its binding power is
// too weak for the surrounding context.
func (p *printer) expr(id ast.ExprID, minBP int) string {
	e := p.prog.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := p.prog.Exprs.Ident(id)
		return p.prog.Strings.MustLookup(data.Name)

	case ast.ExprLit:
		data, _ := p.prog.Exprs.Literal(id)
		return p.literal(data)

	case ast.ExprBinary:
		data, _ := p.prog.Exprs.Binary(id)
		bp := printBP[data.Op]
		leftBP, rightBP := bp, bp+1
		if data.Op == ast.OpPow {
			// Right associative.
			leftBP, rightBP = bp+1, bp
		}
		text := p.expr(data.Left, leftBP) + " " + data.Op.Token() + " " + p.expr(data.Right, rightBP)
		if bp < minBP {
			return "(" + text + ")"
		}
		return text

	case ast.ExprCall:
		data, _ := p.prog.Exprs.Call(id)
		args := make([]string, len(data.Args))
		for i, arg := range data.Args {
			args[i] = p.expr(arg, 0)
		}
		return p.expr(data.Callee, postfixBP) + "(" + strings.Join(args, ", ") + ")"

	case ast.ExprAttr:
		data, _ := p.prog.Exprs.Attr(id)
		return p.expr(data.Object, postfixBP) + "." + p.prog.Strings.MustLookup(data.Attr)
	}
	return "<?>"
}

// postfixBP forces parentheses around any binary operand used as a
// callee or attribute base.
const postfixBP = 100

func (p *printer) literal(data *ast.ExprLitData) string {
	text := p.prog.Strings.MustLookup(data.Value)
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

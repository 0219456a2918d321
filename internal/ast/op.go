package ast

// BinaryOp enumerates the closed binary operator set of the script
// language.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpMatMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpBitOr
	OpBitXor
	OpBitAnd
	OpFloorDiv
	OpPow

	binaryOpCount // keep last
)

// binaryOpTokens is the fixed operator table; it is the single source of
// truth for both the printer and the trace renderer.
var binaryOpTokens = [binaryOpCount]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpMatMul:   "@",
	OpDiv:      "/",
	OpMod:      "%",
	OpShl:      "<<",
	OpShr:      ">>",
	OpBitOr:    "|",
	OpBitXor:   "^",
	OpBitAnd:   "&",
	OpFloorDiv: "//",
	OpPow:      "**",
}

// Token returns the source-text operator token.
func (op BinaryOp) Token() string {
	if op >= binaryOpCount {
		return "?"
	}
	return binaryOpTokens[op]
}

// BinaryOps returns every operator in table order (used by tests and the
// printer).
func BinaryOps() []BinaryOp {
	ops := make([]BinaryOp, 0, binaryOpCount)
	for op := OpAdd; op < binaryOpCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

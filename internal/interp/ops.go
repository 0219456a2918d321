package interp

import (
	"math"
	"strings"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// applyBinary dispatches a binary operator on two values. Numeric
// operators promote int to float when either side is a float; bitwise
// and shift operators are int-only; `@` has no operand types at all.
func (in *Interp) applyBinary(op ast.BinaryOp, left, right Value, sp source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.OpAdd:
		if left.Kind == VKStr && right.Kind == VKStr {
			return StrValue(left.Str + right.Str), nil
		}
		if left.Kind == VKList && right.Kind == VKList {
			out := make([]Value, 0, len(left.List)+len(right.List))
			out = append(out, left.List...)
			out = append(out, right.List...)
			return Value{Kind: VKList, List: out}, nil
		}
		return in.numericOp(op, left, right, sp)

	case ast.OpMul:
		if left.Kind == VKStr && right.Kind == VKInt {
			return in.repeatStr(left.Str, right.Int, sp)
		}
		if left.Kind == VKInt && right.Kind == VKStr {
			return in.repeatStr(right.Str, left.Int, sp)
		}
		return in.numericOp(op, left, right, sp)

	case ast.OpSub, ast.OpDiv, ast.OpFloorDiv, ast.OpMod, ast.OpPow:
		return in.numericOp(op, left, right, sp)

	case ast.OpShl, ast.OpShr, ast.OpBitOr, ast.OpBitXor, ast.OpBitAnd:
		return in.intOp(op, left, right, sp)

	case ast.OpMatMul:
		return Value{}, errorf(sp, "unsupported operand type(s) for @: %s and %s",
			left.Kind, right.Kind)
	}
	return Value{}, errorf(sp, "unknown binary operator")
}

func (in *Interp) repeatStr(s string, n int64, sp source.Span) (Value, *RuntimeError) {
	if n < 0 {
		n = 0
	}
	if n > 1<<20 {
		return Value{}, errorf(sp, "string repetition count %d is too large", n)
	}
	return StrValue(strings.Repeat(s, int(n))), nil
}

// numericOp handles int/float arithmetic with Python-style promotion
// and sign conventions.
func (in *Interp) numericOp(op ast.BinaryOp, left, right Value, sp source.Span) (Value, *RuntimeError) {
	if left.Kind == VKInt && right.Kind == VKInt {
		return in.intArith(op, left.Int, right.Int, sp)
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return Value{}, errorf(sp, "unsupported operand type(s) for %s: %s and %s",
			op.Token(), left.Kind, right.Kind)
	}
	return in.floatArith(op, lf, rf, sp)
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case VKInt:
		return float64(v.Int), true
	case VKFloat:
		return v.Float, true
	}
	return 0, false
}

func (in *Interp) intArith(op ast.BinaryOp, l, r int64, sp source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.OpAdd:
		return IntValue(l + r), nil
	case ast.OpSub:
		return IntValue(l - r), nil
	case ast.OpMul:
		return IntValue(l * r), nil
	case ast.OpDiv:
		if r == 0 {
			return Value{}, errorf(sp, "division by zero")
		}
		// `/` is always true division; `//` keeps the int.
		return FloatValue(float64(l) / float64(r)), nil
	case ast.OpFloorDiv:
		if r == 0 {
			return Value{}, errorf(sp, "integer division by zero")
		}
		return IntValue(floorDiv(l, r)), nil
	case ast.OpMod:
		if r == 0 {
			return Value{}, errorf(sp, "integer modulo by zero")
		}
		return IntValue(l - floorDiv(l, r)*r), nil
	case ast.OpPow:
		return intPow(l, r), nil
	}
	return Value{}, errorf(sp, "unknown arithmetic operator")
}

func (in *Interp) floatArith(op ast.BinaryOp, l, r float64, sp source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.OpAdd:
		return FloatValue(l + r), nil
	case ast.OpSub:
		return FloatValue(l - r), nil
	case ast.OpMul:
		return FloatValue(l * r), nil
	case ast.OpDiv:
		if r == 0 {
			return Value{}, errorf(sp, "float division by zero")
		}
		return FloatValue(l / r), nil
	case ast.OpFloorDiv:
		if r == 0 {
			return Value{}, errorf(sp, "float floor division by zero")
		}
		return FloatValue(math.Floor(l / r)), nil
	case ast.OpMod:
		if r == 0 {
			return Value{}, errorf(sp, "float modulo by zero")
		}
		m := math.Mod(l, r)
		// Result takes the divisor's sign.
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return FloatValue(m), nil
	case ast.OpPow:
		return FloatValue(math.Pow(l, r)), nil
	}
	return Value{}, errorf(sp, "unknown arithmetic operator")
}

func (in *Interp) intOp(op ast.BinaryOp, left, right Value, sp source.Span) (Value, *RuntimeError) {
	if left.Kind != VKInt || right.Kind != VKInt {
		return Value{}, errorf(sp, "unsupported operand type(s) for %s: %s and %s",
			op.Token(), left.Kind, right.Kind)
	}
	l, r := left.Int, right.Int
	switch op {
	case ast.OpShl, ast.OpShr:
		if r < 0 {
			return Value{}, errorf(sp, "negative shift count")
		}
		if r >= 64 {
			if op == ast.OpShl {
				return IntValue(0), nil
			}
			if l < 0 {
				return IntValue(-1), nil
			}
			return IntValue(0), nil
		}
		if op == ast.OpShl {
			return IntValue(l << uint(r)), nil
		}
		return IntValue(l >> uint(r)), nil
	case ast.OpBitOr:
		return IntValue(l | r), nil
	case ast.OpBitXor:
		return IntValue(l ^ r), nil
	case ast.OpBitAnd:
		return IntValue(l & r), nil
	}
	return Value{}, errorf(sp, "unknown bitwise operator")
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(l, r int64) int64 {
	q := l / r
	if l%r != 0 && (l < 0) != (r < 0) {
		q--
	}
	return q
}

// intPow keeps integer results for non-negative exponents and falls
// back to float for negative ones.
func intPow(base, exp int64) Value {
	if exp < 0 {
		return FloatValue(math.Pow(float64(base), float64(exp)))
	}
	result := int64(1)
	b := base
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
	}
	return IntValue(result)
}

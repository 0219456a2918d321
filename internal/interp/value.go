package interp

import (
	"math"
	"strconv"
	"strings"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// ValueKind is the runtime kind tag of a Value.
type ValueKind uint8

const (
	VKInvalid ValueKind = iota
	VKNone
	VKInt
	VKFloat
	VKStr
	VKBool
	VKList
	VKFunc
	VKBuiltin
	VKModule
)

// String returns the kind name the way runtime error messages spell it.
func (k ValueKind) String() string {
	switch k {
	case VKNone:
		return "NoneType"
	case VKInt:
		return "int"
	case VKFloat:
		return "float"
	case VKStr:
		return "str"
	case VKBool:
		return "bool"
	case VKList:
		return "list"
	case VKFunc:
		return "function"
	case VKBuiltin:
		return "builtin"
	case VKModule:
		return "module"
	}
	return "invalid"
}

// Value is a runtime value. The kind tag selects which payload field is
// live; the rest stay zero.
type Value struct {
	Kind    ValueKind
	Int     int64     // VKInt
	Float   float64   // VKFloat
	Str     string    // VKStr
	Bool    bool      // VKBool
	List    []Value   // VKList
	Func    *Function // VKFunc
	Builtin *Builtin  // VKBuiltin
	Module  *Module   // VKModule
}

// Function is a user-defined function closed over module scope.
type Function struct {
	Name   string
	Params []string
	Body   []ast.StmtID
}

// Builtin is a host-implemented function.
type Builtin struct {
	Name string
	Call func(in *Interp, sp source.Span, args []Value) (Value, *RuntimeError)
}

// Module is an importable object with named members.
type Module struct {
	Name    string
	Members map[string]Value
}

func NoneValue() Value           { return Value{Kind: VKNone} }
func IntValue(n int64) Value     { return Value{Kind: VKInt, Int: n} }
func FloatValue(f float64) Value { return Value{Kind: VKFloat, Float: f} }
func StrValue(s string) Value    { return Value{Kind: VKStr, Str: s} }
func BoolValue(b bool) Value     { return Value{Kind: VKBool, Bool: b} }

// StrText renders a value the way the script-level str() builtin does:
// strings pass through raw, everything else matches its repr.
func (v Value) StrText() string {
	if v.Kind == VKStr {
		return v.Str
	}
	return v.Repr()
}

// Repr renders the debug representation: strings are single-quoted with
// escapes, floats always carry a fractional part.
func (v Value) Repr() string {
	switch v.Kind {
	case VKNone:
		return "None"
	case VKInt:
		return strconv.FormatInt(v.Int, 10)
	case VKFloat:
		return formatFloat(v.Float)
	case VKStr:
		return quoteStr(v.Str)
	case VKBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case VKList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, el := range v.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(el.Repr())
		}
		sb.WriteByte(']')
		return sb.String()
	case VKFunc:
		return "<function " + v.Func.Name + ">"
	case VKBuiltin:
		return "<builtin " + v.Builtin.Name + ">"
	case VKModule:
		return "<module " + v.Module.Name + ">"
	}
	return "<invalid>"
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func quoteStr(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
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

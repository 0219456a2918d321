package interp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tracelet/internal/source"
)

func (in *Interp) installBuiltins() {
	for _, b := range []*Builtin{
		{Name: "repr", Call: builtinRepr},
		{Name: "str", Call: builtinStr},
		{Name: "print", Call: builtinPrint},
		{Name: "len", Call: builtinLen},
	} {
		in.globals[b.Name] = Value{Kind: VKBuiltin, Builtin: b}
	}
}

func wantArgs(name string, sp source.Span, args []Value, n int) *RuntimeError {
	if len(args) != n {
		return errorf(sp, "%s() takes %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func builtinRepr(in *Interp, sp source.Span, args []Value) (Value, *RuntimeError) {
	if err := wantArgs("repr", sp, args, 1); err != nil {
		return Value{}, err
	}
	return StrValue(args[0].Repr()), nil
}

func builtinStr(in *Interp, sp source.Span, args []Value) (Value, *RuntimeError) {
	if err := wantArgs("str", sp, args, 1); err != nil {
		return Value{}, err
	}
	return StrValue(args[0].StrText()), nil
}

func builtinPrint(in *Interp, sp source.Span, args []Value) (Value, *RuntimeError) {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = v.StrText()
	}
	if _, err := fmt.Fprintln(in.stdout, strings.Join(parts, " ")); err != nil {
		return Value{}, errorf(sp, "write to stdout failed: %v", err)
	}
	return NoneValue(), nil
}

func builtinLen(in *Interp, sp source.Span, args []Value) (Value, *RuntimeError) {
	if err := wantArgs("len", sp, args, 1); err != nil {
		return Value{}, err
	}
	switch v := args[0]; v.Kind {
	case VKStr:
		return IntValue(int64(utf8.RuneCountInString(v.Str))), nil
	case VKList:
		return IntValue(int64(len(v.List))), nil
	default:
		return Value{}, errorf(sp, "%s object has no length", v.Kind)
	}
}

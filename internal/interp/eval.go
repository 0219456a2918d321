package interp

import (
	"strconv"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

func (in *Interp) evalExpr(id ast.ExprID, fr *frame) (Value, *RuntimeError) {
	expr := in.prog.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := in.prog.Exprs.Ident(id)
		name := in.name(data.Name)
		v, ok := in.load(fr, name)
		if !ok {
			return Value{}, errorf(expr.Span, "name %q is not defined", name)
		}
		return v, nil

	case ast.ExprLit:
		data, _ := in.prog.Exprs.Literal(id)
		return in.evalLiteral(data, expr.Span)

	case ast.ExprBinary:
		data, _ := in.prog.Exprs.Binary(id)
		left, err := in.evalExpr(data.Left, fr)
		if err != nil {
			return Value{}, err
		}
		right, err := in.evalExpr(data.Right, fr)
		if err != nil {
			return Value{}, err
		}
		return in.applyBinary(data.Op, left, right, expr.Span)

	case ast.ExprCall:
		return in.evalCall(id, fr)

	case ast.ExprAttr:
		data, _ := in.prog.Exprs.Attr(id)
		object, err := in.evalExpr(data.Object, fr)
		if err != nil {
			return Value{}, err
		}
		attr := in.name(data.Attr)
		if object.Kind != VKModule {
			return Value{}, errorf(expr.Span, "%s object has no attribute %q", object.Kind, attr)
		}
		member, ok := object.Module.Members[attr]
		if !ok {
			return Value{}, errorf(expr.Span, "module %s has no attribute %q", object.Module.Name, attr)
		}
		return member, nil
	}
	return Value{}, errorf(expr.Span, "cannot evaluate %s expression", expr.Kind)
}

func (in *Interp) evalLiteral(data *ast.ExprLitData, sp source.Span) (Value, *RuntimeError) {
	text := in.prog.Strings.MustLookup(data.Value)
	switch data.Kind {
	case ast.LitInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, errorf(sp, "integer literal %q out of range", text)
		}
		return IntValue(n), nil
	case ast.LitFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, errorf(sp, "malformed float literal %q", text)
		}
		return FloatValue(f), nil
	case ast.LitStr:
		return StrValue(text), nil
	case ast.LitTrue:
		return BoolValue(true), nil
	case ast.LitFalse:
		return BoolValue(false), nil
	case ast.LitNone:
		return NoneValue(), nil
	}
	return Value{}, errorf(sp, "unknown literal kind")
}

func (in *Interp) evalCall(id ast.ExprID, fr *frame) (Value, *RuntimeError) {
	sp := in.prog.Exprs.Get(id).Span
	data, _ := in.prog.Exprs.Call(id)

	callee, err := in.evalExpr(data.Callee, fr)
	if err != nil {
		return Value{}, err
	}
	args := make([]Value, len(data.Args))
	for i, argID := range data.Args {
		v, err := in.evalExpr(argID, fr)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	switch callee.Kind {
	case VKFunc:
		return in.callFunction(callee.Func, args, sp)
	case VKBuiltin:
		return callee.Builtin.Call(in, sp, args)
	}
	return Value{}, errorf(sp, "%s object is not callable", callee.Kind)
}

func (in *Interp) callFunction(fn *Function, args []Value, sp source.Span) (Value, *RuntimeError) {
	if len(args) != len(fn.Params) {
		return Value{}, errorf(sp, "%s() takes %d arguments, got %d",
			fn.Name, len(fn.Params), len(args))
	}
	if in.depth >= maxCallDepth {
		return Value{}, errorf(sp, "maximum recursion depth exceeded")
	}

	fr := newFrame()
	for i, name := range fn.Params {
		fr.locals[name] = args[i]
	}

	in.depth++
	ret, err := in.execStmts(fn.Body, fr)
	in.depth--

	if err != nil {
		// Accumulate the backtrace as the error unwinds, innermost
		// frame first.
		err.Backtrace = append(err.Backtrace, BacktraceFrame{FuncName: fn.Name, Span: sp})
		return Value{}, err
	}
	if ret == nil {
		return NoneValue(), nil
	}
	return ret.value, nil
}

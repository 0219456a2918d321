package interp

import (
	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// returnSignal propagates a `return` up through execStmts until the
// enclosing call consumes it.
type returnSignal struct {
	value Value
	span  source.Span
}

func (in *Interp) execStmts(body []ast.StmtID, fr *frame) (*returnSignal, *RuntimeError) {
	for _, id := range body {
		ret, err := in.execStmt(id, fr)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (in *Interp) execStmt(id ast.StmtID, fr *frame) (*returnSignal, *RuntimeError) {
	stmt := in.prog.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtFuncDef:
		return nil, in.execFuncDef(id, fr)
	case ast.StmtAssign:
		return nil, in.execAssign(id, fr)
	case ast.StmtAugAssign:
		return nil, in.execAugAssign(id, fr)
	case ast.StmtReturn:
		return in.execReturn(id, fr)
	case ast.StmtExpr:
		data, _ := in.prog.Stmts.Expr(id)
		_, err := in.evalExpr(data.Value, fr)
		return nil, err
	case ast.StmtImport:
		return nil, in.execImport(id, fr)
	case ast.StmtGlobal:
		return nil, in.execGlobal(id, fr)
	}
	return nil, errorf(stmt.Span, "cannot execute %s statement", stmt.Kind)
}

func (in *Interp) execFuncDef(id ast.StmtID, fr *frame) *RuntimeError {
	data, _ := in.prog.Stmts.FuncDef(id)
	params := make([]string, len(data.Params))
	for i, p := range data.Params {
		params[i] = in.name(p.Name)
	}
	fn := &Function{
		Name:   in.name(data.Name),
		Params: params,
		Body:   data.Body,
	}
	in.store(fr, fn.Name, Value{Kind: VKFunc, Func: fn})
	return nil
}

func (in *Interp) execAssign(id ast.StmtID, fr *frame) *RuntimeError {
	sp := in.prog.Stmts.Get(id).Span
	data, _ := in.prog.Stmts.Assign(id)
	if len(data.Targets) != 1 {
		return errorf(sp, "multi-target assignment is not supported")
	}
	target, ok := in.prog.Exprs.Ident(data.Targets[0])
	if !ok {
		return errorf(sp, "assignment target must be a plain name")
	}
	v, err := in.evalExpr(data.Value, fr)
	if err != nil {
		return err
	}
	in.store(fr, in.name(target.Name), v)
	return nil
}

func (in *Interp) execAugAssign(id ast.StmtID, fr *frame) *RuntimeError {
	sp := in.prog.Stmts.Get(id).Span
	data, _ := in.prog.Stmts.AugAssign(id)
	target, ok := in.prog.Exprs.Ident(data.Target)
	if !ok {
		return errorf(sp, "augmented assignment target must be a plain name")
	}
	name := in.name(target.Name)

	cur, ok := in.load(fr, name)
	if !ok {
		return errorf(sp, "name %q is not defined", name)
	}
	rhs, err := in.evalExpr(data.Value, fr)
	if err != nil {
		return err
	}
	v, err := in.applyBinary(data.Op, cur, rhs, sp)
	if err != nil {
		return err
	}
	in.store(fr, name, v)
	return nil
}

func (in *Interp) execReturn(id ast.StmtID, fr *frame) (*returnSignal, *RuntimeError) {
	sp := in.prog.Stmts.Get(id).Span
	data, _ := in.prog.Stmts.Return(id)
	value := NoneValue()
	if data.Value.IsValid() {
		v, err := in.evalExpr(data.Value, fr)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return &returnSignal{value: value, span: sp}, nil
}

func (in *Interp) execImport(id ast.StmtID, fr *frame) *RuntimeError {
	sp := in.prog.Stmts.Get(id).Span
	data, _ := in.prog.Stmts.Import(id)
	name := in.name(data.Module)
	if name != in.sys.Name {
		return errorf(sp, "no module named %q", name)
	}
	in.store(fr, name, Value{Kind: VKModule, Module: in.sys})
	return nil
}

func (in *Interp) execGlobal(id ast.StmtID, fr *frame) *RuntimeError {
	sp := in.prog.Stmts.Get(id).Span
	data, _ := in.prog.Stmts.Global(id)
	if fr == nil {
		// Module scope is already global; the statement is inert.
		return nil
	}
	for _, nameID := range data.Names {
		name := in.name(nameID)
		if _, assigned := fr.locals[name]; assigned {
			return errorf(sp, "name %q is assigned before global declaration", name)
		}
		fr.globalDecls[name] = struct{}{}
	}
	return nil
}

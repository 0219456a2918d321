package instrument

import (
	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// Names of the bindings the rewrite threads through synthesized code.
// They are reserved: user code never reads or writes them.
const (
	depthVarName  = "__depth"
	returnVarName = "__return"
	streamModule  = "sys"
	streamFunc    = "trace"
	reprFunc      = "repr"
)

// Transformer is the tree-rewrite pass. One instance handles one
// program; every rewrite decision is keyed only on node kind and
// immediate children, so the pass is deterministic.
type Transformer struct {
	prog *ast.Program
	opts Options

	depthVar  source.StringID
	returnVar source.StringID
	sysName   source.StringID
	traceName source.StringID
	reprName  source.StringID
}

// Instrument rewrites prog in place. On error the tree is partially
// rewritten and must be discarded; nothing is ever half-applied to the
// caller's view of a successful run.
func Instrument(prog *ast.Program, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	t := &Transformer{
		prog:      prog,
		opts:      opts,
		depthVar:  prog.Strings.Intern(depthVarName),
		returnVar: prog.Strings.Intern(returnVarName),
		sysName:   prog.Strings.Intern(streamModule),
		traceName: prog.Strings.Intern(streamFunc),
		reprName:  prog.Strings.Intern(reprFunc),
	}
	return t.rewriteModule()
}

// rewriteModule rewrites all children first, then prepends the stream
// import and the depth-counter initialization so that neither is ever
// traced itself.
func (t *Transformer) rewriteModule() error {
	body, err := t.rewriteStmts(t.prog.Module.Body)
	if err != nil {
		return err
	}

	sp := t.prog.Module.Span
	if len(body) > 0 {
		sp = t.prog.Stmts.Get(body[0]).Span
	}

	importStmt := t.prog.Stmts.NewImport(sp, t.sysName)
	depthTarget := t.prog.Exprs.NewIdent(sp, t.depthVar)
	depthInit := t.prog.Stmts.NewAssign(sp, []ast.ExprID{depthTarget}, t.intLit(sp, 0))

	t.prog.Module.Body = append([]ast.StmtID{importStmt, depthInit}, body...)
	return nil
}

// rewriteStmts maps every statement to its replacement sequence and
// splices the results.
func (t *Transformer) rewriteStmts(ids []ast.StmtID) ([]ast.StmtID, error) {
	out := make([]ast.StmtID, 0, len(ids))
	for _, id := range ids {
		seq, err := t.rewriteStmt(id)
		if err != nil {
			return nil, err
		}
		out = append(out, seq...)
	}
	return out, nil
}

// rewriteStmt applies the per-kind rewrite rule. The result is always
// an ordered sequence; length 1 means unchanged or mutated in place.
func (t *Transformer) rewriteStmt(id ast.StmtID) ([]ast.StmtID, error) {
	stmt := t.prog.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtFuncDef:
		return t.rewriteFuncDef(id)
	case ast.StmtAssign:
		return t.rewriteAssign(id)
	case ast.StmtReturn:
		return t.rewriteReturn(id)
	case ast.StmtExpr:
		return t.rewriteExprStmt(id)
	case ast.StmtAugAssign, ast.StmtImport, ast.StmtGlobal:
		// Nothing to trace and no instrumentable children.
		return []ast.StmtID{id}, nil
	}
	return nil, unsupportedf(stmt.Span, "cannot instrument %s statement", stmt.Kind)
}

// rewriteFuncDef recurses into the body first, then brackets it:
// shared-binding declaration, depth increment, entry trace line, and a
// depth decrement as the final statement. Every early return decrements
// on its own path, so depth returns to its pre-call value exactly once.
func (t *Transformer) rewriteFuncDef(id ast.StmtID) ([]ast.StmtID, error) {
	sp := t.prog.Stmts.Get(id).Span
	data, _ := t.prog.Stmts.FuncDef(id)
	name := t.prog.Strings.MustLookup(data.Name)
	params := make([]ast.Param, len(data.Params))
	copy(params, data.Params)

	body, err := t.rewriteStmts(data.Body)
	if err != nil {
		return nil, err
	}

	segs := []Segment{
		literal(t.opts.Styles.FuncCalled.Sprint(name)),
		literal("("),
	}
	for i, p := range params {
		if i > 0 {
			segs = append(segs, literal(", "))
		}
		segs = append(segs, t.renderParam(p, sp)...)
	}
	segs = append(segs, literal(")"))

	newBody := []ast.StmtID{
		t.prog.Stmts.NewGlobal(sp, []source.StringID{t.depthVar}),
		t.depthDelta(sp, ast.OpAdd),
		t.buildTrace(segs, entryPrefix, sp),
	}
	newBody = append(newBody, body...)
	newBody = append(newBody, t.depthDelta(sp, ast.OpSub))

	// Re-fetch: the payload may have moved while we allocated.
	data, _ = t.prog.Stmts.FuncDef(id)
	data.Body = newBody
	return []ast.StmtID{id}, nil
}

// rewriteAssign keeps the assignment and appends a trace line echoing
// the assigned value. Only a single plain-name target is supported.
func (t *Transformer) rewriteAssign(id ast.StmtID) ([]ast.StmtID, error) {
	sp := t.prog.Stmts.Get(id).Span
	data, _ := t.prog.Stmts.Assign(id)

	if len(data.Targets) != 1 {
		return nil, &Error{
			Code: ErrMalformedAssign, Span: sp,
			Msg: "multi-target assignment is not supported",
		}
	}
	target, ok := t.prog.Exprs.Ident(data.Targets[0])
	if !ok {
		return nil, &Error{
			Code: ErrMalformedAssign, Span: t.prog.Exprs.Get(data.Targets[0]).Span,
			Msg: "assignment target must be a plain name",
		}
	}
	targetName := target.Name

	segs := []Segment{
		literal(t.opts.Styles.Func.Sprintf("%s = ", t.prog.Strings.MustLookup(targetName))),
		placeholder(t.reprOf(sp, targetName)),
	}
	return []ast.StmtID{id, t.buildTrace(segs, "", sp)}, nil
}

// rewriteReturn captures the return value into a temporary before the
// depth decrement: if the value is itself a call, its entry/exit lines
// and depth changes must complete before this function's exit line
// prints. Reduced fidelity skips the exit line and only injects the
// decrement.
func (t *Transformer) rewriteReturn(id ast.StmtID) ([]ast.StmtID, error) {
	sp := t.prog.Stmts.Get(id).Span

	if t.opts.Fidelity == FidelityReduced {
		return []ast.StmtID{t.depthDelta(sp, ast.OpSub), id}, nil
	}

	data, _ := t.prog.Stmts.Return(id)
	value := data.Value
	if !value.IsValid() {
		value = t.prog.Exprs.NewLiteral(sp, ast.LitNone, t.prog.Strings.Intern("None"))
	}

	tmpTarget := t.prog.Exprs.NewIdent(sp, t.returnVar)
	tmpAssign := t.prog.Stmts.NewAssign(sp, []ast.ExprID{tmpTarget}, value)

	segs := []Segment{
		literal(t.opts.Styles.Return.Sprint("return ")),
		placeholder(t.reprOf(sp, t.returnVar)),
	}
	trace := t.buildTrace(segs, exitPrefix, sp)
	dec := t.depthDelta(sp, ast.OpSub)

	// The original return now returns the temporary.
	retValue := t.prog.Exprs.NewIdent(sp, t.returnVar)
	data, _ = t.prog.Stmts.Return(id)
	data.Value = retValue

	return []ast.StmtID{tmpAssign, trace, dec, id}, nil
}

// rewriteExprStmt traces a bare call before it executes; any other
// expression statement passes through unchanged.
func (t *Transformer) rewriteExprStmt(id ast.StmtID) ([]ast.StmtID, error) {
	sp := t.prog.Stmts.Get(id).Span
	data, _ := t.prog.Stmts.Expr(id)

	if _, ok := t.prog.Exprs.Call(data.Value); !ok {
		return []ast.StmtID{id}, nil
	}

	segs, err := t.renderCall(data.Value, sp)
	if err != nil {
		return nil, err
	}
	return []ast.StmtID{t.buildTrace(segs, "", sp), id}, nil
}

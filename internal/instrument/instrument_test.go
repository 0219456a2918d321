package instrument_test

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"tracelet/internal/ast"
	"tracelet/internal/diag"
	"tracelet/internal/instrument"
	"tracelet/internal/lexer"
	"tracelet/internal/parser"
	"tracelet/internal/source"
)

func init() {
	// Trace text assertions run against plain text.
	color.NoColor = true
}

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tr", []byte(src))
	rep := diag.NewBagReporter(16)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, b, parser.Options{Reporter: rep})
	if res.Bag.HasErrors() {
		t.Fatalf("parse errors: %+v", res.Bag.Items())
	}
	return res.Program
}

func instrumentSource(t *testing.T, src string, opts instrument.Options) *ast.Program {
	t.Helper()
	prog := parseSource(t, src)
	if err := instrument.Instrument(prog, opts); err != nil {
		t.Fatalf("Instrument failed: %v", err)
	}
	return prog
}

// isTraceStmt reports whether id is a synthesized `sys.trace(...)`
// statement, returning its argument list.
func isTraceStmt(prog *ast.Program, id ast.StmtID) ([]ast.ExprID, bool) {
	exprStmt, ok := prog.Stmts.Expr(id)
	if !ok {
		return nil, false
	}
	call, ok := prog.Exprs.Call(exprStmt.Value)
	if !ok {
		return nil, false
	}
	attr, ok := prog.Exprs.Attr(call.Callee)
	if !ok || prog.Strings.MustLookup(attr.Attr) != "trace" {
		return nil, false
	}
	return call.Args, true
}

// traceText concatenates the literal fragments of a trace statement's
// arguments, skipping the indent expression and runtime placeholders.
func traceText(prog *ast.Program, args []ast.ExprID) string {
	var sb strings.Builder
	for _, arg := range args[1:] {
		if lit, ok := prog.Exprs.Literal(arg); ok && lit.Kind == ast.LitStr {
			sb.WriteString(prog.Strings.MustLookup(lit.Value))
		}
	}
	return sb.String()
}

// countDepthDeltas walks a statement list (recursing into function
// bodies) and counts `__depth += w` / `__depth -= w` statements.
func countDepthDeltas(prog *ast.Program, body []ast.StmtID) (incs, decs int) {
	for _, id := range body {
		if fn, ok := prog.Stmts.FuncDef(id); ok {
			i, d := countDepthDeltas(prog, fn.Body)
			incs += i
			decs += d
			continue
		}
		aug, ok := prog.Stmts.AugAssign(id)
		if !ok {
			continue
		}
		ident, ok := prog.Exprs.Ident(aug.Target)
		if !ok || prog.Strings.MustLookup(ident.Name) != "__depth" {
			continue
		}
		switch aug.Op {
		case ast.OpAdd:
			incs++
		case ast.OpSub:
			decs++
		}
	}
	return incs, decs
}

func TestModulePrelude(t *testing.T) {
	prog := instrumentSource(t, "x = 1\n", instrument.DefaultOptions())

	if len(prog.Module.Body) < 2 {
		t.Fatalf("module body too short: %d", len(prog.Module.Body))
	}
	imp, ok := prog.Stmts.Import(prog.Module.Body[0])
	if !ok || prog.Strings.MustLookup(imp.Module) != "sys" {
		t.Fatalf("first statement is not `import sys`")
	}
	init, ok := prog.Stmts.Assign(prog.Module.Body[1])
	if !ok {
		t.Fatalf("second statement is not an assignment")
	}
	target, _ := prog.Exprs.Ident(init.Targets[0])
	if prog.Strings.MustLookup(target.Name) != "__depth" {
		t.Fatalf("second statement does not initialize __depth")
	}
	lit, ok := prog.Exprs.Literal(init.Value)
	if !ok || prog.Strings.MustLookup(lit.Value) != "0" {
		t.Fatalf("__depth not initialized to 0")
	}
}

func TestDepthDeltaCounts(t *testing.T) {
	src := "def f(x):\n" +
		"    return 1\n" +
		"    return 2\n" +
		"def g():\n" +
		"    x = 1\n"
	prog := instrumentSource(t, src, instrument.DefaultOptions())

	incs, decs := countDepthDeltas(prog, prog.Module.Body)
	// One increment per function; one decrement per function body plus
	// one per explicit return.
	if incs != 2 {
		t.Fatalf("increments = %d, want 2", incs)
	}
	if decs != 2+2 {
		t.Fatalf("decrements = %d, want 4", decs)
	}
}

func TestFunctionEntrySequence(t *testing.T) {
	prog := instrumentSource(t, "def add(a, b):\n    return a + b\n", instrument.DefaultOptions())

	fn, ok := prog.Stmts.FuncDef(prog.Module.Body[2])
	if !ok {
		t.Fatalf("third module statement should be the function")
	}

	gl, ok := prog.Stmts.Global(fn.Body[0])
	if !ok || prog.Strings.MustLookup(gl.Names[0]) != "__depth" {
		t.Fatalf("body[0] is not `global __depth`")
	}
	aug, ok := prog.Stmts.AugAssign(fn.Body[1])
	if !ok || aug.Op != ast.OpAdd {
		t.Fatalf("body[1] is not the depth increment")
	}
	args, ok := isTraceStmt(prog, fn.Body[2])
	if !ok {
		t.Fatalf("body[2] is not the entry trace line")
	}
	text := traceText(prog, args)
	if !strings.Contains(text, "add(") || !strings.Contains(text, "a=") || !strings.Contains(text, "b=") {
		t.Fatalf("entry line text = %q", text)
	}

	// Last body statement is the fallthrough decrement.
	last, ok := prog.Stmts.AugAssign(fn.Body[len(fn.Body)-1])
	if !ok || last.Op != ast.OpSub {
		t.Fatalf("final body statement is not the depth decrement")
	}
}

func TestReturnCapturesBeforeDecrement(t *testing.T) {
	prog := instrumentSource(t, "def f():\n    return g()\n", instrument.DefaultOptions())

	fn, _ := prog.Stmts.FuncDef(prog.Module.Body[2])
	// global, inc, entry trace, then the return expansion, then the
	// fallthrough decrement.
	seq := fn.Body[3:]
	if len(seq) != 5 {
		t.Fatalf("return expansion has %d statements, want 5 (incl. fallthrough dec)", len(seq))
	}

	tmp, ok := prog.Stmts.Assign(seq[0])
	if !ok {
		t.Fatalf("expansion[0] is not the temporary capture")
	}
	target, _ := prog.Exprs.Ident(tmp.Targets[0])
	if prog.Strings.MustLookup(target.Name) != "__return" {
		t.Fatalf("temporary is %q", prog.Strings.MustLookup(target.Name))
	}
	if _, ok := prog.Exprs.Call(tmp.Value); !ok {
		t.Fatalf("temporary does not capture the original call")
	}

	args, ok := isTraceStmt(prog, seq[1])
	if !ok || !strings.Contains(traceText(prog, args), "return ") {
		t.Fatalf("expansion[1] is not the exit trace line")
	}
	dec, ok := prog.Stmts.AugAssign(seq[2])
	if !ok || dec.Op != ast.OpSub {
		t.Fatalf("expansion[2] is not the depth decrement")
	}
	ret, ok := prog.Stmts.Return(seq[3])
	if !ok {
		t.Fatalf("expansion[3] is not the return")
	}
	retIdent, ok := prog.Exprs.Ident(ret.Value)
	if !ok || prog.Strings.MustLookup(retIdent.Name) != "__return" {
		t.Fatalf("return does not return the temporary")
	}
}

func TestAssignEchoFollowsAssignment(t *testing.T) {
	prog := instrumentSource(t, "y = 2 * 3\n", instrument.DefaultOptions())

	body := prog.Module.Body[2:]
	if len(body) != 2 {
		t.Fatalf("assignment rewrote to %d statements, want 2", len(body))
	}
	if _, ok := prog.Stmts.Assign(body[0]); !ok {
		t.Fatalf("original assignment not first")
	}
	args, ok := isTraceStmt(prog, body[1])
	if !ok {
		t.Fatalf("echo trace line missing")
	}
	if text := traceText(prog, args); !strings.Contains(text, "y = ") {
		t.Fatalf("echo text = %q", text)
	}
	// The runtime value placeholder is repr(y).
	reprCall, ok := prog.Exprs.Call(args[2])
	if !ok {
		t.Fatalf("echo has no placeholder call")
	}
	callee, _ := prog.Exprs.Ident(reprCall.Callee)
	if prog.Strings.MustLookup(callee.Name) != "repr" {
		t.Fatalf("placeholder is not repr()")
	}
}

func TestCallStatementTracedBeforeCall(t *testing.T) {
	prog := instrumentSource(t, "foo.bar(1, 2)\n", instrument.DefaultOptions())

	body := prog.Module.Body[2:]
	if len(body) != 2 {
		t.Fatalf("call statement rewrote to %d statements, want 2", len(body))
	}
	args, ok := isTraceStmt(prog, body[0])
	if !ok {
		t.Fatalf("trace line does not precede the call")
	}
	text := traceText(prog, args)
	if !strings.Contains(text, "foo (") || !strings.Contains(text, ".bar(1, 2)") {
		t.Fatalf("call trace text = %q", text)
	}
	if _, ok := prog.Stmts.Expr(body[1]); !ok {
		t.Fatalf("original call statement not preserved")
	}
}

func TestOperatorTokensRendered(t *testing.T) {
	for _, op := range ast.BinaryOps() {
		src := "foo(a " + op.Token() + " b)\n"
		prog := instrumentSource(t, src, instrument.DefaultOptions())

		args, ok := isTraceStmt(prog, prog.Module.Body[2])
		if !ok {
			t.Fatalf("%s: no trace line", op.Token())
		}
		text := traceText(prog, args)
		if !strings.Contains(text, " "+op.Token()+" ") {
			t.Fatalf("%s: trace text %q lacks the operator token", op.Token(), text)
		}
	}
}

func TestUnsupportedArgumentFails(t *testing.T) {
	prog := parseSource(t, "foo(a.b)\n")
	err := instrument.Instrument(prog, instrument.DefaultOptions())
	if err == nil {
		t.Fatalf("expected an error for an attribute argument")
	}
	rwErr, ok := err.(*instrument.Error)
	if !ok || rwErr.Code != instrument.ErrUnsupported {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(rwErr.Msg, "Attribute") {
		t.Fatalf("error does not name the node kind: %q", rwErr.Msg)
	}
	if rwErr.Span.Empty() {
		t.Fatalf("error has no location")
	}
}

func TestMalformedAssignmentFails(t *testing.T) {
	// The grammar cannot produce these shapes, so build them directly.
	b := ast.NewBuilder(ast.Hints{})
	sp := source.Span{File: 0, Start: 0, End: 5}

	x := b.Exprs.NewIdent(sp, b.Intern("x"))
	y := b.Exprs.NewIdent(sp, b.Intern("y"))
	val := b.Exprs.NewLiteral(sp, ast.LitInt, b.Intern("1"))

	multi := ast.NewProgram(b, sp)
	multi.Module.Body = []ast.StmtID{b.Stmts.NewAssign(sp, []ast.ExprID{x, y}, val)}
	err := instrument.Instrument(multi, instrument.DefaultOptions())
	rwErr, ok := err.(*instrument.Error)
	if !ok || rwErr.Code != instrument.ErrMalformedAssign {
		t.Fatalf("multi-target error = %v", err)
	}

	b2 := ast.NewBuilder(ast.Hints{})
	lit := b2.Exprs.NewLiteral(sp, ast.LitInt, b2.Intern("3"))
	val2 := b2.Exprs.NewLiteral(sp, ast.LitInt, b2.Intern("1"))
	bad := ast.NewProgram(b2, sp)
	bad.Module.Body = []ast.StmtID{b2.Stmts.NewAssign(sp, []ast.ExprID{lit}, val2)}
	err = instrument.Instrument(bad, instrument.DefaultOptions())
	rwErr, ok = err.(*instrument.Error)
	if !ok || rwErr.Code != instrument.ErrMalformedAssign {
		t.Fatalf("non-identifier target error = %v", err)
	}
}

func TestReducedFidelity(t *testing.T) {
	opts := instrument.DefaultOptions()
	opts.Fidelity = instrument.FidelityReduced

	prog := instrumentSource(t, "def f():\n    return 1\nfoo(1, 2)\n", opts)

	fn, _ := prog.Stmts.FuncDef(prog.Module.Body[2])
	for _, id := range fn.Body {
		if args, ok := isTraceStmt(prog, id); ok {
			if strings.Contains(traceText(prog, args), "return") {
				t.Fatalf("reduced fidelity still traces returns")
			}
		}
	}
	// The return keeps its original value; only the decrement precedes.
	var retSeen bool
	for i, id := range fn.Body {
		ret, ok := prog.Stmts.Return(id)
		if !ok {
			continue
		}
		retSeen = true
		if lit, ok := prog.Exprs.Literal(ret.Value); !ok || prog.Strings.MustLookup(lit.Value) != "1" {
			t.Fatalf("return value was rewritten in reduced fidelity")
		}
		dec, ok := prog.Stmts.AugAssign(fn.Body[i-1])
		if !ok || dec.Op != ast.OpSub {
			t.Fatalf("no decrement immediately before the return")
		}
	}
	if !retSeen {
		t.Fatalf("return statement missing")
	}

	// Call arguments collapse to an ellipsis.
	args, ok := isTraceStmt(prog, prog.Module.Body[3])
	if !ok {
		t.Fatalf("call trace line missing")
	}
	if text := traceText(prog, args); !strings.Contains(text, "foo(...)") {
		t.Fatalf("reduced call trace = %q", text)
	}
}

func TestConfigRejectsNarrowIndent(t *testing.T) {
	prog := parseSource(t, "x = 1\n")
	opts := instrument.DefaultOptions()
	opts.IndentWidth = 1

	err := instrument.Instrument(prog, opts)
	rwErr, ok := err.(*instrument.Error)
	if !ok || rwErr.Code != instrument.ErrConfig {
		t.Fatalf("error = %v", err)
	}
}

func TestSynthesizedSpansAreSet(t *testing.T) {
	prog := instrumentSource(t, "def f(x):\n    y = x + 1\n    return y\nf(3)\n", instrument.DefaultOptions())

	var walk func(body []ast.StmtID)
	walk = func(body []ast.StmtID) {
		for _, id := range body {
			stmt := prog.Stmts.Get(id)
			if stmt.Span.Empty() {
				t.Fatalf("statement %d (%s) has an empty span", id, stmt.Kind)
			}
			if fn, ok := prog.Stmts.FuncDef(id); ok {
				walk(fn.Body)
			}
		}
	}
	walk(prog.Module.Body)
}

func TestRewriteIsDeterministic(t *testing.T) {
	src := "def f(x):\n    return x + 1\nf(3)\n"

	shape := func() []ast.StmtKind {
		prog := instrumentSource(t, src, instrument.DefaultOptions())
		var kinds []ast.StmtKind
		var walk func(body []ast.StmtID)
		walk = func(body []ast.StmtID) {
			for _, id := range body {
				kinds = append(kinds, prog.Stmts.Get(id).Kind)
				if fn, ok := prog.Stmts.FuncDef(id); ok {
					walk(fn.Body)
				}
			}
		}
		walk(prog.Module.Body)
		return kinds
	}

	first, second := shape(), shape()
	if len(first) != len(second) {
		t.Fatalf("shape lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("shape[%d] differs: %v vs %v", i, first[i], second[i])
		}
	}
}

package parser_test

import (
	"testing"

	"tracelet/internal/ast"
	"tracelet/internal/diag"
	"tracelet/internal/lexer"
	"tracelet/internal/parser"
	"tracelet/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tr", []byte(src))
	rep := diag.NewBagReporter(16)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, b, parser.Options{Reporter: rep})
	return res.Program, res.Bag
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	return prog
}

func TestParseFunctionDef(t *testing.T) {
	prog := mustParse(t, "def add(a, b):\n    return a + b\n")

	if len(prog.Module.Body) != 1 {
		t.Fatalf("module body has %d statements", len(prog.Module.Body))
	}
	fn, ok := prog.Stmts.FuncDef(prog.Module.Body[0])
	if !ok {
		t.Fatalf("expected a FunctionDef")
	}
	if prog.Strings.MustLookup(fn.Name) != "add" {
		t.Fatalf("name = %q", prog.Strings.MustLookup(fn.Name))
	}
	if len(fn.Params) != 2 || prog.Strings.MustLookup(fn.Params[1].Name) != "b" {
		t.Fatalf("params = %+v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("body has %d statements", len(fn.Body))
	}
	ret, ok := prog.Stmts.Return(fn.Body[0])
	if !ok || !ret.Value.IsValid() {
		t.Fatalf("expected return with value")
	}
	bin, ok := prog.Exprs.Binary(ret.Value)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected a + b")
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "x = 1 + 2 * 3\n")

	assign, ok := prog.Stmts.Assign(prog.Module.Body[0])
	if !ok {
		t.Fatalf("expected assignment")
	}
	top, ok := prog.Exprs.Binary(assign.Value)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("top operator should be +")
	}
	rhs, ok := prog.Exprs.Binary(top.Right)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("right operand should be 2 * 3")
	}
}

func TestParsePowRightAssociative(t *testing.T) {
	prog := mustParse(t, "x = 2 ** 3 ** 2\n")

	assign, _ := prog.Stmts.Assign(prog.Module.Body[0])
	top, ok := prog.Exprs.Binary(assign.Value)
	if !ok || top.Op != ast.OpPow {
		t.Fatalf("top should be **")
	}
	if _, ok := prog.Exprs.Binary(top.Right); !ok {
		t.Fatalf("** should nest to the right")
	}
	if _, ok := prog.Exprs.Literal(top.Left); !ok {
		t.Fatalf("left of top ** should be the literal 2")
	}
}

func TestParseAttributeCall(t *testing.T) {
	prog := mustParse(t, "foo.bar(1, 2)\n")

	exprStmt, ok := prog.Stmts.Expr(prog.Module.Body[0])
	if !ok {
		t.Fatalf("expected expression statement")
	}
	call, ok := prog.Exprs.Call(exprStmt.Value)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected call with 2 args")
	}
	attr, ok := prog.Exprs.Attr(call.Callee)
	if !ok || prog.Strings.MustLookup(attr.Attr) != "bar" {
		t.Fatalf("callee should be foo.bar")
	}
	obj, ok := prog.Exprs.Ident(attr.Object)
	if !ok || prog.Strings.MustLookup(obj.Name) != "foo" {
		t.Fatalf("attribute base should be foo")
	}
}

func TestParseAugAssign(t *testing.T) {
	prog := mustParse(t, "d += 2\nd -= 4\n")

	plus, ok := prog.Stmts.AugAssign(prog.Module.Body[0])
	if !ok || plus.Op != ast.OpAdd {
		t.Fatalf("expected +=")
	}
	minus, ok := prog.Stmts.AugAssign(prog.Module.Body[1])
	if !ok || minus.Op != ast.OpSub {
		t.Fatalf("expected -=")
	}
}

func TestParseImportAndGlobal(t *testing.T) {
	prog := mustParse(t, "import sys\ndef f():\n    global counter, other\n    return None\n")

	imp, ok := prog.Stmts.Import(prog.Module.Body[0])
	if !ok || prog.Strings.MustLookup(imp.Module) != "sys" {
		t.Fatalf("expected import sys")
	}
	fn, _ := prog.Stmts.FuncDef(prog.Module.Body[1])
	gl, ok := prog.Stmts.Global(fn.Body[0])
	if !ok || len(gl.Names) != 2 {
		t.Fatalf("expected global with two names")
	}
}

func TestParseLiterals(t *testing.T) {
	prog := mustParse(t, "a = 'hi\\n'\nb = 3.5\nc = True\nd = None\n")

	wantKinds := []ast.LitKind{ast.LitStr, ast.LitFloat, ast.LitTrue, ast.LitNone}
	for i, want := range wantKinds {
		assign, ok := prog.Stmts.Assign(prog.Module.Body[i])
		if !ok {
			t.Fatalf("stmt %d is not an assignment", i)
		}
		lit, ok := prog.Exprs.Literal(assign.Value)
		if !ok || lit.Kind != want {
			t.Fatalf("stmt %d literal kind = %v, want %v", i, lit.Kind, want)
		}
	}

	strAssign, _ := prog.Stmts.Assign(prog.Module.Body[0])
	lit, _ := prog.Exprs.Literal(strAssign.Value)
	if prog.Strings.MustLookup(lit.Value) != "hi\n" {
		t.Fatalf("string literal not unescaped: %q", prog.Strings.MustLookup(lit.Value))
	}
}

func TestParseErrorRecovery(t *testing.T) {
	prog, bag := parseSource(t, "x = = 1\ny = 2\n")
	if !bag.HasErrors() {
		t.Fatalf("expected a parse error")
	}
	// The good line after the bad one still parses.
	found := false
	for _, id := range prog.Module.Body {
		if assign, ok := prog.Stmts.Assign(id); ok {
			target, _ := prog.Exprs.Ident(assign.Targets[0])
			if prog.Strings.MustLookup(target.Name) == "y" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("parser did not recover to the next line")
	}
}

func TestParseSpansCoverStatements(t *testing.T) {
	prog := mustParse(t, "def f(x):\n    return x\n")
	stmt := prog.Stmts.Get(prog.Module.Body[0])
	if stmt.Span.Empty() {
		t.Fatalf("function span is empty")
	}
	fn, _ := prog.Stmts.FuncDef(prog.Module.Body[0])
	ret := prog.Stmts.Get(fn.Body[0])
	if ret.Span.Empty() || ret.Span.Start < stmt.Span.Start {
		t.Fatalf("return span %v not inside def span %v", ret.Span, stmt.Span)
	}
}

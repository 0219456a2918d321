package lexer_test

import (
	"testing"

	"tracelet/internal/diag"
	"tracelet/internal/lexer"
	"tracelet/internal/source"
	"tracelet/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tr", []byte(src))
	rep := diag.NewBagReporter(16)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, rep.Bag
		}
		if len(toks) > 10000 {
			t.Fatalf("lexer did not terminate")
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, got []token.Token, want []token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v (all: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestLexSimpleAssignment(t *testing.T) {
	toks, bag := lexAll(t, "x = 2 * 3\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors")
	}
	expectKinds(t, toks, []token.Kind{
		token.Ident, token.Assign, token.IntLit, token.Star, token.IntLit,
		token.Newline, token.EOF,
	})
}

func TestLexFunctionLayout(t *testing.T) {
	src := "def f(x):\n    return x + 1\n\nf(3)\n"
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	expectKinds(t, toks, []token.Kind{
		token.KwDef, token.Ident, token.LParen, token.Ident, token.RParen,
		token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.Ident, token.Plus, token.IntLit,
		token.Newline,
		token.Dedent,
		token.Ident, token.LParen, token.IntLit, token.RParen, token.Newline,
		token.EOF,
	})
}

func TestLexNestedDedents(t *testing.T) {
	src := "def f():\n    def g():\n        return 1\n    return 2\n"
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	var indents, dedents int
	for _, tok := range toks {
		switch tok.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Fatalf("indents=%d dedents=%d, want 2/2 (%v)", indents, dedents, kinds(toks))
	}
}

func TestLexImplicitLineJoining(t *testing.T) {
	toks, bag := lexAll(t, "foo(1,\n    2)\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors")
	}
	// No Newline/Indent inside the parens.
	expectKinds(t, toks, []token.Kind{
		token.Ident, token.LParen, token.IntLit, token.Comma, token.IntLit,
		token.RParen, token.Newline, token.EOF,
	})
}

func TestLexMissingTrailingNewline(t *testing.T) {
	toks, bag := lexAll(t, "x = 1")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors")
	}
	expectKinds(t, toks, []token.Kind{
		token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF,
	})
}

func TestLexOperators(t *testing.T) {
	toks, bag := lexAll(t, "a ** b // c << d >> e @ f | g ^ h & i\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors")
	}
	want := []token.Kind{
		token.Ident, token.StarStar, token.Ident, token.SlashSlash, token.Ident,
		token.Shl, token.Ident, token.Shr, token.Ident, token.At, token.Ident,
		token.Pipe, token.Ident, token.Caret, token.Ident, token.Amp, token.Ident,
		token.Newline, token.EOF,
	}
	expectKinds(t, toks, want)
}

func TestLexAugAssign(t *testing.T) {
	toks, _ := lexAll(t, "d += 2\nd -= 2\n")
	expectKinds(t, toks, []token.Kind{
		token.Ident, token.PlusAssign, token.IntLit, token.Newline,
		token.Ident, token.MinusAssign, token.IntLit, token.Newline,
		token.EOF,
	})
}

func TestLexStringsAndComments(t *testing.T) {
	toks, bag := lexAll(t, "s = 'a\\'b'  # trailing comment\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	expectKinds(t, toks, []token.Kind{
		token.Ident, token.Assign, token.StringLit, token.Newline, token.EOF,
	})
	if toks[2].Text != `'a\'b'` {
		t.Fatalf("string text = %q", toks[2].Text)
	}
}

func TestLexBadIndentReported(t *testing.T) {
	_, bag := lexAll(t, "def f():\n    x = 1\n  y = 2\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexBadIndent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexBadIndent, got %+v", bag.Items())
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, "s = 'oops\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}

func TestLexFloats(t *testing.T) {
	toks, bag := lexAll(t, "pi = 3.14\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors")
	}
	if toks[2].Kind != token.FloatLit || toks[2].Text != "3.14" {
		t.Fatalf("float token = %v %q", toks[2].Kind, toks[2].Text)
	}
}

package printer_test

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"tracelet/internal/ast"
	"tracelet/internal/diag"
	"tracelet/internal/instrument"
	"tracelet/internal/lexer"
	"tracelet/internal/parser"
	"tracelet/internal/printer"
	"tracelet/internal/source"
)

func init() {
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

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = 1\n", "x = 1\n"},
		{"x += 2\n", "x += 2\n"},
		{"import sys\n", "import sys\n"},
		{"global a, b\n", "global a, b\n"},
		{"foo.bar(1, 2)\n", "foo.bar(1, 2)\n"},
		{"x = 'a\\nb'\n", "x = 'a\\nb'\n"},
		{"def f(a, b):\n    return a + b\n", "def f(a, b):\n    return a + b\n"},
		{"def f():\n    return\n", "def f():\n    return\n"},
	}
	for _, tt := range tests {
		prog := parseSource(t, tt.src)
		got := printer.Print(prog, printer.Options{})
		if got != tt.want {
			t.Fatalf("print(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPrintKeepsGroupingParens(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x = (1 + 2) * 3\n", "x = (1 + 2) * 3\n"},
		{"x = 1 + 2 * 3\n", "x = 1 + 2 * 3\n"},
		{"x = 2 ** 3 ** 4\n", "x = 2 ** 3 ** 4\n"},
		{"x = (2 ** 3) ** 4\n", "x = (2 ** 3) ** 4\n"},
		{"x = 1 - (2 - 3)\n", "x = 1 - (2 - 3)\n"},
		{"x = a | b & c\n", "x = a | b & c\n"},
	}
	for _, tt := range tests {
		prog := parseSource(t, tt.src)
		got := printer.Print(prog, printer.Options{})
		if got != tt.want {
			t.Fatalf("print(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

// Printed output must re-parse to a tree that prints identically.
func TestPrintRoundTrip(t *testing.T) {
	src := "def f(x):\n" +
		"    y = x * (x + 1)\n" +
		"    return y\n" +
		"f(3)\n"
	first := printer.Print(parseSource(t, src), printer.Options{})
	second := printer.Print(parseSource(t, first), printer.Options{})
	if first != second {
		t.Fatalf("round trip diverged:\n%s\nvs\n%s", first, second)
	}
}

func TestPrintInstrumentedProgram(t *testing.T) {
	prog := parseSource(t, "def f(x):\n    return x\nf(1)\n")
	if err := instrument.Instrument(prog, instrument.DefaultOptions()); err != nil {
		t.Fatalf("Instrument failed: %v", err)
	}
	out := printer.Print(prog, printer.Options{})

	for _, want := range []string{
		"import sys\n",
		"__depth = 0\n",
		"global __depth\n",
		"__depth += 2\n",
		"__depth -= 2\n",
		"sys.trace(' ' * (__depth - 2) + '> ', ",
		"__return = x\n",
		"return __return\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("instrumented output lacks %q:\n%s", want, out)
		}
	}

	// The printed program must re-parse cleanly.
	reparsed := printer.Print(parseSource(t, out), printer.Options{})
	if reparsed != out {
		t.Fatalf("instrumented output does not round trip")
	}
}

// Package interp is a tree-walking executor for parsed (usually
// instrumented) programs. It is deliberately small: the value model,
// operator semantics, and builtins cover exactly what traced scripts
// need, with runtime errors carrying source spans for diag rendering.
package interp

import (
	"io"
	"os"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// maxCallDepth bounds user-level recursion before the interpreter bails
// out instead of exhausting the host stack.
const maxCallDepth = 1000

// Options configures one execution.
type Options struct {
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr; trace lines go here
}

// Interp executes one program. It is single-use and single-threaded.
type Interp struct {
	prog    *ast.Program
	stdout  io.Writer
	stderr  io.Writer
	globals map[string]Value
	depth   int
	sys     *Module
}

// Run executes prog as a script. name binds sys.name and argv binds
// sys.argv inside the script.
func Run(prog *ast.Program, name string, argv []string, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	in := &Interp{
		prog:    prog,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		globals: make(map[string]Value),
	}
	in.installBuiltins()
	in.sys = in.newSysModule(name, argv)

	if err := in.execModule(); err != nil {
		return err
	}
	return nil
}

func (in *Interp) execModule() *RuntimeError {
	ret, err := in.execStmts(in.prog.Module.Body, nil)
	if err != nil {
		return err
	}
	if ret != nil {
		return errorf(ret.span, "return outside function")
	}
	return nil
}

func (in *Interp) name(id source.StringID) string {
	return in.prog.Strings.MustLookup(id)
}

// Package bundle serializes an instrumented program to a compact binary
// form so a script can be instrumented once and executed many times.
package bundle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"tracelet/internal/ast"
	"tracelet/internal/source"
)

// Increment when the payload format changes; decoding rejects every
// other version.
const schemaVersion uint16 = 1

// Ext is the conventional file extension for serialized programs.
const Ext = ".tbin"

var errSchema = errors.New("bundle: unsupported schema version")

// payload is the flat wire form of a Program: the arena backing slices
// plus the interner snapshot, nothing derived.
type payload struct {
	Schema uint16

	ModuleSpan source.Span
	ModuleBody []ast.StmtID

	Stmts      []ast.Stmt
	FuncDefs   []ast.StmtFuncDefData
	Assigns    []ast.StmtAssignData
	AugAssigns []ast.StmtAugAssignData
	Returns    []ast.StmtReturnData
	ExprStmts  []ast.StmtExprData
	Imports    []ast.StmtImportData
	Globals    []ast.StmtGlobalData

	Exprs    []ast.Expr
	Idents   []ast.ExprIdentData
	Literals []ast.ExprLitData
	Binaries []ast.ExprBinaryData
	Calls    []ast.ExprCallData
	Attrs    []ast.ExprAttrData

	Strings []string
}

// Encode writes prog to w.
func Encode(w io.Writer, prog *ast.Program) error {
	p := payload{
		Schema:     schemaVersion,
		ModuleSpan: prog.Module.Span,
		ModuleBody: prog.Module.Body,

		Stmts:      prog.Stmts.Arena.Slice(),
		FuncDefs:   prog.Stmts.FuncDefs.Slice(),
		Assigns:    prog.Stmts.Assigns.Slice(),
		AugAssigns: prog.Stmts.AugAssigns.Slice(),
		Returns:    prog.Stmts.Returns.Slice(),
		ExprStmts:  prog.Stmts.Exprs.Slice(),
		Imports:    prog.Stmts.Imports.Slice(),
		Globals:    prog.Stmts.Globals.Slice(),

		Exprs:    prog.Exprs.Arena.Slice(),
		Idents:   prog.Exprs.Idents.Slice(),
		Literals: prog.Exprs.Literals.Slice(),
		Binaries: prog.Exprs.Binaries.Slice(),
		Calls:    prog.Exprs.Calls.Slice(),
		Attrs:    prog.Exprs.Attrs.Slice(),

		Strings: prog.Strings.Snapshot(),
	}
	return msgpack.NewEncoder(w).Encode(&p)
}

// Decode reads a program from r.
func Decode(r io.Reader) (*ast.Program, error) {
	var p payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("bundle: decode: %w", err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", errSchema, p.Schema, schemaVersion)
	}

	stmts := ast.NewStmts(0)
	stmts.Arena.SetSlice(p.Stmts)
	stmts.FuncDefs.SetSlice(p.FuncDefs)
	stmts.Assigns.SetSlice(p.Assigns)
	stmts.AugAssigns.SetSlice(p.AugAssigns)
	stmts.Returns.SetSlice(p.Returns)
	stmts.Exprs.SetSlice(p.ExprStmts)
	stmts.Imports.SetSlice(p.Imports)
	stmts.Globals.SetSlice(p.Globals)

	exprs := ast.NewExprs(0)
	exprs.Arena.SetSlice(p.Exprs)
	exprs.Idents.SetSlice(p.Idents)
	exprs.Literals.SetSlice(p.Literals)
	exprs.Binaries.SetSlice(p.Binaries)
	exprs.Calls.SetSlice(p.Calls)
	exprs.Attrs.SetSlice(p.Attrs)

	if len(p.Strings) == 0 {
		return nil, errors.New("bundle: empty string table")
	}
	return &ast.Program{
		Module:  ast.Module{Span: p.ModuleSpan, Body: p.ModuleBody},
		Stmts:   stmts,
		Exprs:   exprs,
		Strings: source.Restore(p.Strings),
	}, nil
}

// WriteFile atomically writes prog to path.
func WriteFile(path string, prog *ast.Program) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := Encode(f, prog); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile loads a program from path.
func ReadFile(path string) (*ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

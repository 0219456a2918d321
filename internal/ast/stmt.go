package ast

import (
	"tracelet/internal/source"
)

// StmtKind enumerates the different kinds of statements.
type StmtKind uint8

const (
	// StmtFuncDef represents a function definition.
	StmtFuncDef StmtKind = iota + 1
	// StmtAssign represents an assignment.
	StmtAssign
	// StmtAugAssign represents an augmented assignment (+=, -=).
	StmtAugAssign
	// StmtReturn represents a return statement.
	StmtReturn
	// StmtExpr represents a bare expression statement.
	StmtExpr
	// StmtImport represents a module import.
	StmtImport
	// StmtGlobal represents a shared-binding declaration.
	StmtGlobal
)

func (k StmtKind) String() string {
	switch k {
	case StmtFuncDef:
		return "FunctionDef"
	case StmtAssign:
		return "Assign"
	case StmtAugAssign:
		return "AugAssign"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "Expr"
	case StmtImport:
		return "Import"
	case StmtGlobal:
		return "Global"
	}
	return "Unknown"
}

// Stmt is the per-node header; the payload lives in a per-kind arena.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// Param is a formal parameter of a function definition.
type Param struct {
	Name source.StringID
	Span source.Span
}

type StmtFuncDefData struct {
	Name   source.StringID
	Params []Param
	Body   []StmtID
}

// StmtAssignData keeps a target list even though the grammar only
// produces one identifier target; the instrumentation pass validates the
// shape and rejects anything else.
type StmtAssignData struct {
	Targets []ExprID
	Value   ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare return
}

type StmtExprData struct {
	Value ExprID
}

type StmtImportData struct {
	Module source.StringID
}

type StmtGlobalData struct {
	Names []source.StringID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena      *Arena[Stmt]
	FuncDefs   *Arena[StmtFuncDefData]
	Assigns    *Arena[StmtAssignData]
	AugAssigns *Arena[StmtAugAssignData]
	Returns    *Arena[StmtReturnData]
	Exprs      *Arena[StmtExprData]
	Imports    *Arena[StmtImportData]
	Globals    *Arena[StmtGlobalData]
}

// NewStmts creates a new Stmts with per-kind arenas preallocated using
// capHint as the initial capacity.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		FuncDefs:   NewArena[StmtFuncDefData](capHint),
		Assigns:    NewArena[StmtAssignData](capHint),
		AugAssigns: NewArena[StmtAugAssignData](capHint),
		Returns:    NewArena[StmtReturnData](capHint),
		Exprs:      NewArena[StmtExprData](capHint),
		Imports:    NewArena[StmtImportData](capHint),
		Globals:    NewArena[StmtGlobalData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement header with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewFuncDef creates a new function definition statement.
func (s *Stmts) NewFuncDef(span source.Span, name source.StringID, params []Param, body []StmtID) StmtID {
	payload := s.FuncDefs.Allocate(StmtFuncDefData{Name: name, Params: params, Body: body})
	return s.new(StmtFuncDef, span, PayloadID(payload))
}

// FuncDef returns the function definition data for the given statement ID.
func (s *Stmts) FuncDef(id StmtID) (*StmtFuncDefData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFuncDef {
		return nil, false
	}
	return s.FuncDefs.Get(uint32(stmt.Payload)), true
}

// NewAssign creates a new assignment statement.
func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{Targets: targets, Value: value})
	return s.new(StmtAssign, span, PayloadID(payload))
}

// Assign returns the assignment data for the given statement ID.
func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(stmt.Payload)), true
}

// NewAugAssign creates a new augmented assignment statement.
func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	payload := s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value})
	return s.new(StmtAugAssign, span, PayloadID(payload))
}

// AugAssign returns the augmented assignment data for the given statement ID.
func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAugAssign {
		return nil, false
	}
	return s.AugAssigns.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a new return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data for the given statement ID.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewExpr creates a new expression statement.
func (s *Stmts) NewExpr(span source.Span, value ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Value: value})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression statement data for the given statement ID.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewImport creates a new import statement.
func (s *Stmts) NewImport(span source.Span, module source.StringID) StmtID {
	payload := s.Imports.Allocate(StmtImportData{Module: module})
	return s.new(StmtImport, span, PayloadID(payload))
}

// Import returns the import data for the given statement ID.
func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(stmt.Payload)), true
}

// NewGlobal creates a new shared-binding declaration.
func (s *Stmts) NewGlobal(span source.Span, names []source.StringID) StmtID {
	payload := s.Globals.Allocate(StmtGlobalData{Names: names})
	return s.new(StmtGlobal, span, PayloadID(payload))
}

// Global returns the global declaration data for the given statement ID.
func (s *Stmts) Global(id StmtID) (*StmtGlobalData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtGlobal {
		return nil, false
	}
	return s.Globals.Get(uint32(stmt.Payload)), true
}

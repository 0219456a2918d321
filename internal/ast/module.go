package ast

import (
	"tracelet/internal/source"
)

// Module is the root node: one parsed unit owning an ordered sequence of
// top-level statements.
type Module struct {
	Span source.Span
	Body []StmtID
}

// Program bundles the module root with the arenas its IDs point into.
type Program struct {
	Module  Module
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

// NewProgram creates an empty program backed by the builder's arenas.
func NewProgram(b *Builder, span source.Span) *Program {
	return &Program{
		Module:  Module{Span: span},
		Stmts:   b.Stmts,
		Exprs:   b.Exprs,
		Strings: b.Strings,
	}
}

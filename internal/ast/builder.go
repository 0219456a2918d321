package ast

import (
	"tracelet/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Builder allocates AST nodes for one program unit. Both the parser and
// the instrumentation pass go through it, so synthesized nodes live in
// the same arenas as parsed ones.
type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

// Intern is a shorthand for interning a name through the builder.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name resolves an interned name, panicking on an invalid ID.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}

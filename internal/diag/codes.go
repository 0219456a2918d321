package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004
	LexTabIndent          Code = 1005

	// Syntactic.
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynExpectNewline    Code = 2004
	SynExpectIndent     Code = 2005
	SynExpectColon      Code = 2006
	SynExpectRParen     Code = 2007

	// Instrumentation (always fatal).
	RewriteUnsupported     Code = 3001
	RewriteMalformedAssign Code = 3002
	RewriteConfig          Code = 3003

	// Script runtime.
	RunError Code = 4001
)

// ID returns the stable, user-facing identifier, e.g. "TRACE2001".
func (c Code) ID() string {
	return fmt.Sprintf("TRACE%04d", uint16(c))
}

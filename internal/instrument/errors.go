package instrument

import (
	"fmt"

	"tracelet/internal/diag"
	"tracelet/internal/source"
)

// ErrorCode classifies rewrite failures.
type ErrorCode uint8

const (
	// ErrUnsupported marks an expression or statement shape outside the
	// supported grammar subset.
	ErrUnsupported ErrorCode = iota + 1
	// ErrMalformedAssign marks a multi-target or non-identifier
	// assignment target.
	ErrMalformedAssign
	// ErrConfig marks an invalid instrumentation configuration.
	ErrConfig
)

// Error is a fatal rewrite error. The tree it was produced for must not
// be used.
type Error struct {
	Code ErrorCode
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Diagnostic converts the error for CLI rendering.
func (e *Error) Diagnostic() diag.Diagnostic {
	code := diag.RewriteUnsupported
	switch e.Code {
	case ErrMalformedAssign:
		code = diag.RewriteMalformedAssign
	case ErrConfig:
		code = diag.RewriteConfig
	}
	return diag.NewError(code, e.Span, e.Msg)
}

func unsupportedf(sp source.Span, format string, args ...any) *Error {
	return &Error{Code: ErrUnsupported, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

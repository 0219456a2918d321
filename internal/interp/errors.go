package interp

import (
	"fmt"
	"strings"

	"tracelet/internal/diag"
	"tracelet/internal/source"
)

// BacktraceFrame is one activation record in a runtime error backtrace,
// innermost first.
type BacktraceFrame struct {
	FuncName string
	Span     source.Span
}

// RuntimeError is a fatal script error: the failing node's span plus the
// call stack at the point of failure.
type RuntimeError struct {
	Span      source.Span
	Msg       string
	Backtrace []BacktraceFrame
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

// Diagnostic converts the error for rendering through diag.
func (e *RuntimeError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(diag.RunError, e.Span, e.Msg)
	for _, fr := range e.Backtrace {
		d = d.WithNote(fr.Span, "called from "+fr.FuncName)
	}
	return d
}

// FormatBacktrace renders the stack with resolved positions, innermost
// frame first. A nil file set (a bundle run carries no sources) drops
// the positions and keeps the function names.
func (e *RuntimeError) FormatBacktrace(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runtime error: %s\n", e.Msg)
	for _, fr := range e.Backtrace {
		if files != nil {
			if file := files.Get(fr.Span.File); file != nil {
				start, _ := files.Resolve(fr.Span)
				fmt.Fprintf(&sb, "  in %s at %s:%d:%d\n", fr.FuncName, file.Path, start.Line, start.Col)
				continue
			}
		}
		fmt.Fprintf(&sb, "  in %s\n", fr.FuncName)
	}
	return sb.String()
}

func errorf(sp source.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{Span: sp, Msg: fmt.Sprintf(format, args...)}
}

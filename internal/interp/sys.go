package interp

import (
	"strings"

	"tracelet/internal/source"
)

// newSysModule builds the script-visible sys module. trace is the
// instrumentation sink: it stringifies every argument, concatenates
// them with no separator, and writes one line to stderr.
func (in *Interp) newSysModule(name string, argv []string) *Module {
	args := make([]Value, len(argv))
	for i, a := range argv {
		args[i] = StrValue(a)
	}

	trace := &Builtin{
		Name: "trace",
		Call: func(in *Interp, sp source.Span, callArgs []Value) (Value, *RuntimeError) {
			var sb strings.Builder
			for _, v := range callArgs {
				sb.WriteString(v.StrText())
			}
			sb.WriteByte('\n')
			if _, err := in.stderr.Write([]byte(sb.String())); err != nil {
				return Value{}, errorf(sp, "write to stderr failed: %v", err)
			}
			return NoneValue(), nil
		},
	}

	return &Module{
		Name: "sys",
		Members: map[string]Value{
			"trace": {Kind: VKBuiltin, Builtin: trace},
			"argv":  {Kind: VKList, List: args},
			"name":  StrValue(name),
		},
	}
}

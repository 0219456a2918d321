// Package instrument rewrites a parsed script so that running it emits
// an execution trace: function entry and exit with argument and return
// values, assignment results, and call expressions, indented by live
// call depth and colored by category.
//
// The pass is a single deterministic top-down walk. Each statement
// rewrites to an ordered statement sequence (length 1 when unchanged)
// that the parent splices into its body. A module-level counter,
// __depth, is initialized before any user code and adjusted by
// synthesized entry/exit statements; injected trace lines scale their
// indentation by it. The rewritten tree stays inside the same grammar,
// so the interpreter runs it like any other program.
//
// Failures are fatal: an expression or statement shape outside the
// supported subset aborts the rewrite, and the caller must discard the
// tree.
package instrument

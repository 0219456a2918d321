// Package diag carries diagnostics from the lexer, parser,
// instrumentation pass, and interpreter to the CLI.
//
// Phases report through the Reporter interface; the CLI collects into a
// Bag and renders with Render. Instrumentation failures are fatal and
// surface as exactly one diagnostic.
package diag

// Package token defines lexical token kinds for the tracelet script
// language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly, except for the synthetic layout
//     tokens (Newline, Indent, Dedent, EOF), whose spans are empty.
//   - Keywords are recognized by the lexer via LookupKeyword; builtin
//     names (print, repr, ...) are ordinary identifiers.
package token

// Package tokenizer splits CSV input into the grammar's terminals using
// Shape's tokenizer framework. It serves diagnostics; the table engine in
// internal/fastparser scans bytes directly.
package tokenizer

// Token kinds. The tokenizer is context free: inside a quoted field it still
// emits Comma, Newline and Space tokens, and the reader decides what they mean.
const (
	TokenComma   = "Comma"   // ,
	TokenDQuote  = "DQuote"  // "
	TokenNewline = "Newline" // \n
	TokenSpace   = "Space"   // run of spaces and tabs
	TokenField   = "Field"   // run of any other bytes, including \r
)

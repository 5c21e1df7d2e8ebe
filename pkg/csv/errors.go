package csv

import (
	"github.com/shapestone/shape-csvtable/internal/fastparser"
)

// ParseError describes where and why parsing stopped.
//
// Kind selects which payload fields are meaningful:
//   - KindInvalidCharacter: Expected, Got
//   - KindInvalidRowLength: ExpectedFields, GotFields (Pos.Column is 0)
//   - KindInvalidUTF8: Pos only
//   - KindGeneric: Detail, e.g. ErrUnterminatedQuote
type ParseError = fastparser.ParseError

// Position is a 0-based row index and byte column within that row.
type Position = fastparser.Position

// ErrorKind classifies a ParseError.
type ErrorKind = fastparser.ErrorKind

// Error kinds.
const (
	KindGeneric          = fastparser.KindGeneric
	KindInvalidCharacter = fastparser.KindInvalidCharacter
	KindInvalidRowLength = fastparser.KindInvalidRowLength
	KindInvalidUTF8      = fastparser.KindInvalidUTF8
)

// Sentinel errors for use with errors.Is.
var (
	ErrGeneric           = fastparser.ErrGeneric
	ErrInvalidCharacter  = fastparser.ErrInvalidCharacter
	ErrInvalidRowLength  = fastparser.ErrInvalidRowLength
	ErrInvalidUTF8       = fastparser.ErrInvalidUTF8
	ErrUnterminatedQuote = fastparser.ErrUnterminatedQuote
)

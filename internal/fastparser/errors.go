package fastparser

import (
	"errors"
	"fmt"
)

// Position locates a parse event in the input.
// Line is the 0-based row index, Column the 0-based byte offset within that row.
type Position struct {
	Line   int
	Column int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindGeneric is a grammar violation not otherwise classified,
	// such as a quoted field with no closing quote.
	KindGeneric ErrorKind = iota
	// KindInvalidCharacter is a byte the grammar does not allow at that point.
	KindInvalidCharacter
	// KindInvalidRowLength is a row whose field count differs from the first row.
	KindInvalidRowLength
	// KindInvalidUTF8 is a field whose bytes are not valid UTF-8.
	KindInvalidUTF8
)

// String returns the name used in error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindGeneric:
		return "GenericError"
	case KindInvalidCharacter:
		return "InvalidCharacter"
	case KindInvalidRowLength:
		return "InvalidRowLength"
	case KindInvalidUTF8:
		return "InvalidUTF8"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors, one per kind. A *ParseError unwraps to the sentinel of its kind.
var (
	ErrGeneric          = errors.New("generic parsing error")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidRowLength = errors.New("invalid row length")
	ErrInvalidUTF8      = errors.New("invalid UTF-8")

	// ErrUnterminatedQuote is the detail of a KindGeneric error raised
	// when a quoted field reaches end of input.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
)

// ParseError describes where and why parsing stopped.
// Only the payload fields of its Kind are meaningful.
type ParseError struct {
	Kind ErrorKind
	Pos  Position

	// KindInvalidCharacter
	Expected rune
	Got      rune

	// KindInvalidRowLength
	ExpectedFields int
	GotFields      int

	// Detail is an optional finer-grained cause, e.g. ErrUnterminatedQuote.
	Detail error
}

// Error returns a human-readable message.
func (e *ParseError) Error() string {
	switch e.Kind {
	case KindInvalidCharacter:
		return fmt.Sprintf("%s: %s: expected %q, got %q", e.Kind, e.Pos, e.Expected, e.Got)
	case KindInvalidRowLength:
		plural := "s"
		if e.ExpectedFields == 1 {
			plural = ""
		}
		return fmt.Sprintf("%s: %s: expected %d element%s, got %d",
			e.Kind, e.Pos, e.ExpectedFields, plural, e.GotFields)
	case KindInvalidUTF8:
		return fmt.Sprintf("%s: %s: field is not valid UTF-8", e.Kind, e.Pos)
	default:
		if e.Detail != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Detail)
		}
		return e.Kind.String()
	}
}

// Unwrap exposes the kind sentinel and, when set, the detail error.
func (e *ParseError) Unwrap() []error {
	sentinel := e.sentinel()
	if e.Detail == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Detail}
}

func (e *ParseError) sentinel() error {
	switch e.Kind {
	case KindInvalidCharacter:
		return ErrInvalidCharacter
	case KindInvalidRowLength:
		return ErrInvalidRowLength
	case KindInvalidUTF8:
		return ErrInvalidUTF8
	default:
		return ErrGeneric
	}
}

func newCharError(expected, got rune, pos Position) *ParseError {
	return &ParseError{Kind: KindInvalidCharacter, Pos: pos, Expected: expected, Got: got}
}

func newRowLengthError(expected, got int, pos Position) *ParseError {
	return &ParseError{Kind: KindInvalidRowLength, Pos: pos, ExpectedFields: expected, GotFields: got}
}

func newUTF8Error(pos Position) *ParseError {
	return &ParseError{Kind: KindInvalidUTF8, Pos: pos}
}

func newGenericError(detail error, pos Position) *ParseError {
	return &ParseError{Kind: KindGeneric, Pos: pos, Detail: detail}
}

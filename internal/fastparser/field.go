package fastparser

import (
	"bytes"
	"unicode/utf8"
)

const (
	delimiter = ','
	newline   = '\n'
	quote     = '"'
)

// fieldState is a state of the field scanner.
//
//	skipSpace --(")--> quoted --(")--> terminator --> done
//	skipSpace --(*)--> bare ------------------------> done
type fieldState int

const (
	stateSkipSpace fieldState = iota
	stateQuoted
	stateBare
	stateTerminator
	stateDone
)

// field is one scanned field. offset is the absolute byte offset of its first
// content byte (after the opening quote, if any); next is where scanning stopped,
// which is always a delimiter, a newline, or len(data).
type field struct {
	value  string
	offset int
	next   int
}

// scanField recognizes exactly one field starting at data[start].
// rowStart and line are only used to position errors.
//
// Grammar:
//
//	Field       = { " " | "\t" } ( QuotedField | BareField ) ;
//	QuotedField = '"' { any byte except '"' } '"' ;
//	BareField   = { any byte except "," and "\n" } ;
//
// A quoted field must be followed by ",", "\n" or end of input.
func scanField(data []byte, start, rowStart, line int) (field, error) {
	var (
		i        = start
		valStart int
		valEnd   int
		state    = stateSkipSpace
	)

	for state != stateDone {
		switch state {
		case stateSkipSpace:
			for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
				i++
			}
			if i < len(data) && data[i] == quote {
				i++
				state = stateQuoted
			} else {
				state = stateBare
			}
			valStart = i

		case stateQuoted:
			end := bytes.IndexByte(data[i:], quote)
			if end < 0 {
				// position of the opening quote
				return field{}, newGenericError(ErrUnterminatedQuote, Position{Line: line, Column: valStart - 1 - rowStart})
			}
			valEnd = i + end
			i = valEnd + 1
			state = stateTerminator

		case stateBare:
			end := indexTerminator(data[i:])
			if end < 0 {
				end = len(data) - i
			}
			valEnd = i + end
			i = valEnd
			state = stateDone

		case stateTerminator:
			if i < len(data) && data[i] != delimiter && data[i] != newline {
				got, _ := utf8.DecodeRune(data[i:])
				return field{}, newCharError(delimiter, got, Position{Line: line, Column: i - rowStart})
			}
			state = stateDone
		}
	}

	raw := data[valStart:valEnd]
	if !utf8.Valid(raw) {
		return field{}, newUTF8Error(Position{Line: line, Column: valStart - rowStart})
	}

	return field{value: string(raw), offset: valStart, next: i}, nil
}

// indexTerminator returns the index of the first delimiter or newline in b, or -1.
func indexTerminator(b []byte) int {
	for i, c := range b {
		if c == delimiter || c == newline {
			return i
		}
	}
	return -1
}

// Package csv parses comma-separated text into a rectangular Table.
//
// The grammar is deliberately small:
//
//   - Rows are separated by "\n"; "\r" is ordinary field data
//   - Fields are separated by ","
//   - A field is either bare or enclosed in double quotes
//   - Quoted fields may contain "," and "\n"; a '"' cannot be escaped
//   - Spaces and tabs before a field are ignored; trailing ones are kept
//   - A blank line ends the table
//   - Every row must have as many fields as the first row
//
// The first row is ordinary data. Use NewDocument to treat it as a header.
//
// # Errors
//
// Parsing stops at the first violation and returns a *ParseError carrying the
// 0-based row index and byte column of the problem:
//
//	_, err := csv.ParseString("\"nom\" ,age")
//	// InvalidCharacter: 0:5: expected ',', got ' '
//
//	if errors.Is(err, csv.ErrInvalidCharacter) { ... }
//
//	var pe *csv.ParseError
//	if errors.As(err, &pe) {
//	    fmt.Println(pe.Pos.Line, pe.Pos.Column)
//	}
//
// A table is never returned together with an error.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. Each call owns its
// input and its result; there is no shared state.
package csv

import (
	"io"

	"github.com/shapestone/shape-csvtable/internal/fastparser"
	"github.com/shapestone/shape-csvtable/internal/source"
)

// Parse parses an in-memory buffer.
//
// The returned Table does not reference data.
//
// Example:
//
//	table, err := csv.Parse([]byte("\"nom\",age\ncarles,30\nlaure,28\n"))
//	// table.Records() == [][]string{{"nom","age"},{"carles","30"},{"laure","28"}}
func Parse(data []byte) (*Table, error) {
	records, err := fastparser.Parse(data)
	if err != nil {
		return nil, err
	}
	return newTable(records), nil
}

// ParseString parses s. It is Parse([]byte(s)).
func ParseString(s string) (*Table, error) {
	return Parse([]byte(s))
}

// ParseFile parses the file at path.
//
// Failures to open or read the file are returned wrapped, and are not
// *ParseError values. On unix the file is memory-mapped for the duration of
// the parse only.
func ParseFile(path string) (*Table, error) {
	var table *Table
	err := source.WithFile(path, func(data []byte) error {
		var err error
		table, err = Parse(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ParseReader reads r to the end and parses the result.
// Read failures are returned wrapped, and are not *ParseError values.
func ParseReader(r io.Reader) (*Table, error) {
	data, err := source.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate reports whether data parses, returning the *ParseError if it does not.
func Validate(data []byte) error {
	_, err := fastparser.Parse(data)
	return err
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}

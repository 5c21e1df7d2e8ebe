// Package fastparser implements the CSV table engine: a field scanner, a row
// assembler and a table assembler working directly on a byte buffer.
//
// The grammar:
//   - Rows are separated by "\n" ("\r" is ordinary field data)
//   - Fields are separated by ","
//   - A field is bare, or delimited by double quotes
//   - Quoted fields may contain "," and "\n"; there is no way to escape '"'
//   - Leading spaces and tabs before a field are discarded
//   - A blank line ends the table; nothing after it is scanned
//   - Every row must have as many fields as the first row
//
// Parsing stops at the first violation and returns a *ParseError;
// no partial table is ever returned.
package fastparser

// Parse parses data into rows of fields.
//
// Field values are copied out of data, so data may be reused or released
// as soon as Parse returns. Empty input yields an empty, non-nil result.
func Parse(data []byte) ([][]string, error) {
	return ParseWithHook(data, nil)
}

// ParseWithHook is Parse, additionally reporting every accepted field to hook.
func ParseWithHook(data []byte, hook FieldHook) ([][]string, error) {
	p := &parser{
		data: data,
		hook: hook,
	}
	return p.parse()
}

// parser is the table assembler state for a single call.
type parser struct {
	data []byte
	pos  int
	hook FieldHook
}

// parse runs the row assembler until end of input or a blank line.
//
// Grammar:
//
//	Table = { Row } [ "\n" Rest ] ;
func (p *parser) parse() ([][]string, error) {
	// Assume roughly 32 bytes per row
	estimatedRows := len(p.data) / 32
	if estimatedRows < 4 {
		estimatedRows = 4
	}
	rows := make([][]string, 0, estimatedRows)

	width := 0
	for line := 0; ; line++ {
		// a zero-byte row ends the table
		if p.pos >= len(p.data) || p.data[p.pos] == newline {
			break
		}

		row, next, err := scanRow(p.data, p.pos, line, width, p.hook)
		if err != nil {
			return nil, err
		}

		if line == 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, newRowLengthError(width, len(row), Position{Line: line, Column: 0})
		}

		rows = append(rows, row)

		p.pos = next
		if p.pos < len(p.data) {
			p.pos++ // newline
		}
	}

	return rows, nil
}

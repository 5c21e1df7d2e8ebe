package csv

// Row is one line of the input: its fields in order.
type Row []string

// Table is a parsed CSV document. All rows have the same number of fields.
type Table struct {
	rows []Row
}

func newTable(records [][]string) *Table {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row(r)
	}
	return &Table{rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of fields per row, or 0 for an empty table.
func (t *Table) Width() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// Rows returns the rows. The slice is shared with the table.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row returns row i, or false if i is out of range.
func (t *Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// Column returns the values of column i from every row, or false if i is out of range.
func (t *Table) Column(i int) ([]string, bool) {
	if i < 0 || i >= t.Width() {
		return nil, false
	}
	col := make([]string, len(t.rows))
	for r, row := range t.rows {
		col[r] = row[i]
	}
	return col, true
}

// Records returns a copy of the table as [][]string.
func (t *Table) Records() [][]string {
	records := make([][]string, len(t.rows))
	for i, row := range t.rows {
		records[i] = append([]string(nil), row...)
	}
	return records
}

package csv

// Document is a header-aware view of a Table.
//
// Whether the first row names the columns is the caller's decision; the
// parser treats every row as data.
//
//	table, _ := csv.ParseString("name,age\nAlice,30\nBob,25")
//	doc := csv.NewDocument(table, true)
//	record, _ := doc.GetRecord(0)
//	age, _ := record.GetByName("age") // "30"
type Document struct {
	headers []string
	records []Row
}

// Record is a single data row with access by index or header name.
type Record struct {
	fields  []string
	headers []string
}

// NewDocument wraps table. If hasHeader is true the first row becomes the
// headers and the remaining rows the records.
func NewDocument(table *Table, hasHeader bool) *Document {
	rows := table.Rows()
	if !hasHeader || len(rows) == 0 {
		return &Document{headers: []string{}, records: rows}
	}
	return &Document{headers: rows[0], records: rows[1:]}
}

// Headers returns the column headers, or an empty slice when there are none.
func (d *Document) Headers() []string {
	return d.headers
}

// HasHeaders reports whether the document has a header row.
func (d *Document) HasHeaders() bool {
	return len(d.headers) > 0
}

// Width returns the number of columns.
func (d *Document) Width() int {
	if len(d.headers) > 0 {
		return len(d.headers)
	}
	if len(d.records) > 0 {
		return len(d.records[0])
	}
	return 0
}

// ColumnIndex returns the index of the first header equal to name, or -1.
func (d *Document) ColumnIndex(name string) int {
	for i, h := range d.headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Records returns all data records.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{fields: fields, headers: d.headers}
	}
	return records
}

// RecordCount returns the number of data records, not counting the header.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns data record index (0 = first record after the header).
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return Record{fields: d.records[index], headers: d.headers}, true
}

// Get returns the field at index.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName returns the field under the header name.
// It returns false when the name is unknown or the document has no headers.
func (r Record) GetByName(name string) (string, bool) {
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns a copy of the record's fields.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}

package fastparser

// Field is a field reported to a FieldHook.
type Field struct {
	Value  string
	Pos    Position
	Offset int // absolute byte offset of the first content byte
	Index  int // 0-based field index within the row
}

// FieldHook is called for every field as the row assembler accepts it.
// Fields of a row that later fails validation have already been reported.
type FieldHook func(Field)

// scanRow assembles one row starting at data[start].
//
// Grammar:
//
//	Row = Field { "," Field } ( "\n" | EOF ) ;
//
// The returned next index points at the row's newline or at len(data).
// widthHint sizes the field slice; zero is fine.
func scanRow(data []byte, start, line, widthHint int, hook FieldHook) ([]string, int, error) {
	if widthHint <= 0 {
		widthHint = 8
	}
	fields := make([]string, 0, widthHint)

	i := start
	for {
		f, err := scanField(data, i, start, line)
		if err != nil {
			return nil, f.next, err
		}
		if hook != nil {
			hook(Field{
				Value:  f.value,
				Pos:    Position{Line: line, Column: f.offset - start},
				Offset: f.offset,
				Index:  len(fields),
			})
		}
		fields = append(fields, f.value)
		i = f.next

		if i < len(data) && data[i] == delimiter {
			i++
			continue
		}
		// newline or end of input
		return fields, i, nil
	}
}

package csv

import (
	"strconv"
	"strings"
)

// ColumnType is the narrowest type every value of a column converts to.
type ColumnType string

// Column types, from narrowest to widest.
const (
	TypeBool   ColumnType = "bool"
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeString ColumnType = "string"
)

// DefaultNullValues are field values treated as missing during inference.
var DefaultNullValues = []string{"", "NULL", "null", "nil", "N/A", "n/a", "NA", "na", "-"}

// IsNullValue reports whether value is one of nullValues.
func IsNullValue(value string, nullValues []string) bool {
	for _, nv := range nullValues {
		if value == nv {
			return true
		}
	}
	return false
}

// InferType returns the narrowest type value converts to.
// Empty values are strings.
func InferType(value string) ColumnType {
	v := strings.TrimSpace(value)
	if v == "" {
		return TypeString
	}

	lower := strings.ToLower(v)
	if lower == "true" || lower == "false" {
		return TypeBool
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return TypeInt
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return TypeFloat
	}
	return TypeString
}

// InferColumnTypes infers one type per column from the document's records,
// ignoring null values. A column of only nulls is a string column. Ints
// widen to float; any other disagreement widens to string.
func InferColumnTypes(doc *Document, nullValues []string) []ColumnType {
	types := make([]ColumnType, doc.Width())
	for _, record := range doc.records {
		for i, value := range record {
			if i >= len(types) || IsNullValue(value, nullValues) {
				continue
			}
			types[i] = widen(types[i], InferType(value))
		}
	}
	for i, t := range types {
		if t == "" {
			types[i] = TypeString
		}
	}
	return types
}

func widen(have, next ColumnType) ColumnType {
	switch {
	case have == "" || have == next:
		return next
	case (have == TypeInt && next == TypeFloat) || (have == TypeFloat && next == TypeInt):
		return TypeFloat
	default:
		return TypeString
	}
}

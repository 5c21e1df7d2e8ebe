package csv

import (
	"fmt"
	"strings"
)

// ColumnDefinition describes the values expected under one header.
type ColumnDefinition struct {
	// Name is the column header name.
	Name string `yaml:"name" json:"name"`
	// Type is the expected value type; empty accepts anything.
	Type ColumnType `yaml:"type" json:"type,omitempty"`
	// Required rejects null values.
	Required bool `yaml:"required" json:"required,omitempty"`
	// AllowedValues restricts values to a fixed set.
	AllowedValues []string `yaml:"allowed_values" json:"allowed_values,omitempty"`
	// MinLength and MaxLength bound the byte length (0 = no bound).
	MinLength int `yaml:"min_length" json:"min_length,omitempty"`
	MaxLength int `yaml:"max_length" json:"max_length,omitempty"`
	// Validator is an optional custom check.
	Validator func(value string) error `yaml:"-" json:"-"`
}

// Schema describes the expected columns of a Document with headers.
type Schema struct {
	Columns []ColumnDefinition `yaml:"columns" json:"columns"`
	// AllowExtraColumns permits headers not named in Columns.
	AllowExtraColumns bool `yaml:"allow_extra_columns" json:"allow_extra_columns,omitempty"`
	// AllowMissingColumns permits Columns absent from the headers.
	AllowMissingColumns bool `yaml:"allow_missing_columns" json:"allow_missing_columns,omitempty"`
	// NullValues are treated as missing; nil means DefaultNullValues.
	NullValues []string `yaml:"null_values" json:"null_values,omitempty"`
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{Columns: make([]ColumnDefinition, 0)}
}

// AddColumn adds a column definition to the schema.
func (s *Schema) AddColumn(col ColumnDefinition) *Schema {
	s.Columns = append(s.Columns, col)
	return s
}

// AddRequiredColumn adds a required column with name and type.
func (s *Schema) AddRequiredColumn(name string, colType ColumnType) *Schema {
	return s.AddColumn(ColumnDefinition{
		Name:     name,
		Type:     colType,
		Required: true,
	})
}

// InferSchema builds a schema matching doc: one column per header, typed
// by InferColumnTypes.
func InferSchema(doc *Document, nullValues []string) *Schema {
	types := InferColumnTypes(doc, nullValues)
	s := NewSchema()
	s.NullValues = nullValues
	for i, h := range doc.Headers() {
		s.AddColumn(ColumnDefinition{Name: h, Type: types[i]})
	}
	return s
}

// ValidationError is one schema violation.
type ValidationError struct {
	// Record is the 0-based data record index, or -1 for the header.
	Record  int    `json:"record"`
	Column  string `json:"column"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("header, column %q: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("record %d, column %q: %s (value: %q)", e.Record, e.Column, e.Message, e.Value)
}

// ValidationResult collects every violation found.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError records a violation.
func (r *ValidationResult) AddError(err ValidationError) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Error returns all messages joined by newlines, or "" when valid.
func (r *ValidationResult) Error() string {
	msgs := make([]string, len(r.Errors))
	for i := range r.Errors {
		msgs[i] = r.Errors[i].Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns r as an error, or nil when valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return r
}

// ValidateDocument checks doc against schema, reporting every violation
// rather than stopping at the first. doc must have headers.
func ValidateDocument(doc *Document, schema *Schema) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !doc.HasHeaders() {
		result.AddError(ValidationError{Record: -1, Message: "document has no header row"})
		return result
	}

	nullValues := schema.NullValues
	if nullValues == nil {
		nullValues = DefaultNullValues
	}

	known := make(map[string]bool, len(schema.Columns))
	for _, col := range schema.Columns {
		known[col.Name] = true
		if doc.ColumnIndex(col.Name) < 0 && !schema.AllowMissingColumns {
			result.AddError(ValidationError{Record: -1, Column: col.Name, Message: "column not found in header"})
		}
	}
	if !schema.AllowExtraColumns {
		for _, h := range doc.Headers() {
			if !known[h] {
				result.AddError(ValidationError{Record: -1, Column: h, Message: "unexpected column not in schema"})
			}
		}
	}

	for r, record := range doc.Records() {
		for _, col := range schema.Columns {
			idx := doc.ColumnIndex(col.Name)
			if idx < 0 {
				continue
			}
			value, _ := record.Get(idx)
			if msg := col.check(value, nullValues); msg != "" {
				result.AddError(ValidationError{Record: r, Column: col.Name, Value: value, Message: msg})
			}
		}
	}

	return result
}

// check returns the first violation of value, or "".
func (c *ColumnDefinition) check(value string, nullValues []string) string {
	if IsNullValue(value, nullValues) {
		if c.Required {
			return "required field is empty"
		}
		return ""
	}

	if c.Type != "" && widen(c.Type, InferType(value)) != c.Type {
		return fmt.Sprintf("expected %s", c.Type)
	}

	if len(c.AllowedValues) > 0 {
		found := false
		for _, allowed := range c.AllowedValues {
			if value == allowed {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("value not in allowed set: %v", c.AllowedValues)
		}
	}

	if c.MinLength > 0 && len(value) < c.MinLength {
		return fmt.Sprintf("value length %d is less than minimum %d", len(value), c.MinLength)
	}
	if c.MaxLength > 0 && len(value) > c.MaxLength {
		return fmt.Sprintf("value length %d exceeds maximum %d", len(value), c.MaxLength)
	}

	if c.Validator != nil {
		if err := c.Validator(value); err != nil {
			return err.Error()
		}
	}
	return ""
}

package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// LoadSchema reads a column schema from a YAML file:
//
//	columns:
//	  - name: id
//	    type: int
//	    required: true
//	  - name: status
//	    allowed_values: [open, closed]
//	allow_extra_columns: true
func LoadSchema(path string) (*csv.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	schema, err := DecodeSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return schema, nil
}

// DecodeSchema parses a YAML column schema. Unknown keys and column types
// are rejected.
func DecodeSchema(data []byte) (*csv.Schema, error) {
	schema := csv.NewSchema()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(schema); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	for i, col := range schema.Columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d: name is required", i)
		}
		switch col.Type {
		case "", csv.TypeBool, csv.TypeInt, csv.TypeFloat, csv.TypeString:
		default:
			return nil, fmt.Errorf("column %q: invalid type %q", col.Name, col.Type)
		}
	}
	return schema, nil
}

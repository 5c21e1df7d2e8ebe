// Package export converts parsed tables to Apache Arrow and writes them as
// Parquet.
package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// ColumnName returns the Arrow field name for column i: the header when
// one is present and non-empty, otherwise "column_<i+1>".
func ColumnName(doc *csv.Document, i int) string {
	if headers := doc.Headers(); i < len(headers) && strings.TrimSpace(headers[i]) != "" {
		return headers[i]
	}
	return fmt.Sprintf("column_%d", i+1)
}

// Schema builds the Arrow schema for doc from the inferred column types.
// Every field is nullable.
func Schema(doc *csv.Document, types []csv.ColumnType) *arrow.Schema {
	fields := make([]arrow.Field, len(types))
	for i, t := range types {
		fields[i] = arrow.Field{
			Name:     ColumnName(doc, i),
			Type:     arrowType(t),
			Nullable: true,
		}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t csv.ColumnType) arrow.DataType {
	switch t {
	case csv.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case csv.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case csv.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// ToArrow converts doc's records into an Arrow table with one typed column
// per CSV column. Values found in nullValues become nulls.
//
// The caller must Release the returned table.
func ToArrow(doc *csv.Document, nullValues []string) (arrow.Table, error) {
	types := csv.InferColumnTypes(doc, nullValues)
	schema := Schema(doc, types)
	records := doc.Records()

	pool := memory.NewGoAllocator()

	columns := make([]arrow.Column, len(types))
	for i := range types {
		field := schema.Field(i)

		builder := array.NewBuilder(pool, field.Type)
		defer builder.Release()

		for r, record := range records {
			value, _ := record.Get(i)
			if err := appendValue(builder, value, nullValues); err != nil {
				return nil, fmt.Errorf("record %d column %q: %w", r, field.Name, err)
			}
		}

		arr := builder.NewArray()
		defer arr.Release()

		chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
		columns[i] = *arrow.NewColumn(field, chunked)
	}

	return array.NewTable(schema, columns, int64(len(records))), nil
}

// appendValue appends the text value to a builder created for one of the
// inferred column types.
func appendValue(builder array.Builder, value string, nullValues []string) error {
	if csv.IsNullValue(value, nullValues) {
		builder.AppendNull()
		return nil
	}

	trimmed := strings.TrimSpace(value)
	switch b := builder.(type) {
	case *array.BooleanBuilder:
		b.Append(strings.EqualFold(trimmed, "true"))
	case *array.Int64Builder:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return err
		}
		b.Append(n)
	case *array.Float64Builder:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return err
		}
		b.Append(f)
	case *array.StringBuilder:
		b.Append(value)
	default:
		return fmt.Errorf("unsupported builder %T", builder)
	}
	return nil
}

// WriteParquet writes table to w as a Snappy-compressed Parquet file with the
// Arrow schema stored in the metadata.
func WriteParquet(w io.Writer, table arrow.Table) error {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	chunkSize := table.NumRows()
	if chunkSize == 0 {
		chunkSize = 1
	}
	if err := writer.WriteTable(table, chunkSize); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteParquetFile converts doc and writes it to a Parquet file at path.
func WriteParquetFile(path string, doc *csv.Document, nullValues []string) error {
	table, err := ToArrow(doc, nullValues)
	if err != nil {
		return err
	}
	defer table.Release()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}

	if err := WriteParquet(file, table); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

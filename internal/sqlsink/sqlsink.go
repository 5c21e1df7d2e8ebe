// Package sqlsink loads parsed tables into SQLite through GORM.
package sqlsink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// BatchSize is the number of rows inserted per statement.
const BatchSize = 500

// ErrNoColumns is returned when a document has no columns to create.
var ErrNoColumns = errors.New("document has no columns")

// Sink writes documents into tables of a single database.
type Sink struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (or creates) the SQLite database at path.
func Open(path string, logger *slog.Logger) (*Sink, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return New(db, logger), nil
}

// New wraps an open database.
func New(db *gorm.DB, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{db: db, logger: logger.With("component", "sqlsink")}
}

// DB returns the underlying database handle.
func (s *Sink) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection.
func (s *Sink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Identifier turns name into a SQL identifier made of lowercase letters,
// digits and underscores. It returns fallback when nothing is left.
func Identifier(name, fallback string) string {
	id := strings.ReplaceAll(slug.Make(name), "-", "_")
	if id == "" {
		return fallback
	}
	return id
}

// ColumnNames returns one unique identifier per document column, derived from
// the headers when present. A repeated name gets the first "_N" suffix, N >= 2,
// that no other column uses.
func ColumnNames(doc *csv.Document) []string {
	headers := doc.Headers()
	names := make([]string, doc.Width())
	used := make(map[string]bool, len(names))
	suffix := make(map[string]int, len(names))

	for i := range names {
		fallback := "column_" + strconv.Itoa(i+1)
		name := fallback
		if i < len(headers) {
			name = Identifier(headers[i], fallback)
		}
		if used[name] {
			base := name
			n := suffix[base]
			if n < 2 {
				n = 2
			}
			for name = base + "_" + strconv.Itoa(n); used[name]; name = base + "_" + strconv.Itoa(n) {
				n++
			}
			suffix[base] = n + 1
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func sqlType(t csv.ColumnType) string {
	switch t {
	case csv.TypeBool, csv.TypeInt:
		return "INTEGER"
	case csv.TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quote(id string) string {
	return `"` + id + `"`
}

// Load replaces the table name with the document's records and returns the
// number of rows inserted. Column types are inferred from the values;
// nullValues become SQL NULL. The whole load runs in one transaction.
func (s *Sink) Load(ctx context.Context, name string, doc *csv.Document, nullValues []string) (int64, error) {
	if doc.Width() == 0 {
		return 0, ErrNoColumns
	}

	table := Identifier(name, "csv_table")
	columns := ColumnNames(doc)
	types := csv.InferColumnTypes(doc, nullValues)

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quote(col) + " " + sqlType(types[i])
	}

	var inserted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DROP TABLE IF EXISTS " + quote(table)).Error; err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
		ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(defs, ", "))
		if err := tx.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}

		batch := make([]map[string]interface{}, 0, BatchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			result := tx.Table(table).Create(&batch)
			if result.Error != nil {
				return fmt.Errorf("insert into %s: %w", table, result.Error)
			}
			inserted += result.RowsAffected
			batch = make([]map[string]interface{}, 0, BatchSize)
			return nil
		}

		for _, record := range doc.Records() {
			row := make(map[string]interface{}, len(columns))
			for i, col := range columns {
				value, _ := record.Get(i)
				v, err := convert(value, types[i], nullValues)
				if err != nil {
					return fmt.Errorf("column %s: %w", col, err)
				}
				row[col] = v
			}
			batch = append(batch, row)

			if len(batch) >= BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	})
	if err != nil {
		s.logger.Error("load failed", "table", table, "error", err)
		return 0, err
	}

	s.logger.Info("table loaded", "table", table, "columns", len(columns), "rows", inserted)
	return inserted, nil
}

// convert turns a field into the Go value stored for its column type.
func convert(value string, t csv.ColumnType, nullValues []string) (interface{}, error) {
	if csv.IsNullValue(value, nullValues) {
		return nil, nil
	}

	trimmed := strings.TrimSpace(value)
	switch t {
	case csv.TypeBool:
		return strings.EqualFold(trimmed, "true"), nil
	case csv.TypeInt:
		return strconv.ParseInt(trimmed, 10, 64)
	case csv.TypeFloat:
		return strconv.ParseFloat(trimmed, 64)
	default:
		return value, nil
	}
}

// Command csvtable parses comma-separated tables.
//
// It prints a parsed file as JSON or an aligned table, dumps the token
// stream, exports to Parquet, loads into SQLite, or serves the parser over
// HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/shapestone/shape-csvtable/internal/config"
	"github.com/shapestone/shape-csvtable/internal/export"
	"github.com/shapestone/shape-csvtable/internal/httpapi"
	"github.com/shapestone/shape-csvtable/internal/metrics"
	"github.com/shapestone/shape-csvtable/internal/source"
	"github.com/shapestone/shape-csvtable/internal/sqlsink"
	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "csvtable"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		_, _ = fmt.Fprintln(os.Stderr, "csvtable:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if cli.ConfigPath != "" {
		file, err := config.Load(cli.ConfigPath)
		if err != nil {
			return err
		}
		cli.apply(file)
	}

	if err := validateFlags(cli); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cli.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}

	if cli.Serve {
		registry := metrics.NewRegistry()
		router := httpapi.NewRouter(registry, logger)
		return httpapi.Serve(ctx, cli.Addr, router, cli.ShutdownTimeout, logger)
	}

	if cli.Tokens {
		return printTokens(cli, stdin, stdout)
	}

	table, err := parseInput(cli.Input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("parsed input", "input", cli.Input, "rows", table.Len(), "columns", table.Width())

	nullValues := cli.NullValues
	if nullValues == nil {
		nullValues = csv.DefaultNullValues
	}
	doc := csv.NewDocument(table, cli.Header)

	if cli.SchemaPath != "" {
		schema, err := config.LoadSchema(cli.SchemaPath)
		if err != nil {
			return err
		}
		if result := csv.ValidateDocument(doc, schema); !result.Valid {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			return fmt.Errorf("schema validation failed: %d errors", len(result.Errors))
		}
		logger.Debug("schema validation passed", "schema", cli.SchemaPath)
	}

	exported := false
	if cli.ParquetPath != "" {
		if err := export.WriteParquetFile(cli.ParquetPath, doc, nullValues); err != nil {
			return err
		}
		logger.Info("wrote parquet", "path", cli.ParquetPath, "records", doc.RecordCount())
		exported = true
	}

	if cli.SQLitePath != "" {
		sink, err := sqlsink.Open(cli.SQLitePath, logger)
		if err != nil {
			return err
		}
		defer sink.Close()

		if _, err := sink.Load(ctx, cli.SQLiteTable, doc, nullValues); err != nil {
			return err
		}
		exported = true
	}

	if exported {
		return nil
	}
	return printTable(cli.Format, doc, stdout)
}

func parseInput(input string, stdin io.Reader) (*csv.Table, error) {
	if input == "-" {
		return csv.ParseReader(stdin)
	}
	return csv.ParseFile(input)
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "-" {
		return source.ReadAll(stdin)
	}
	var data []byte
	err := source.WithFile(input, func(b []byte) error {
		data = append([]byte(nil), b...)
		return nil
	})
	return data, err
}

type tableOutput struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

func printTable(format string, doc *csv.Document, w io.Writer) error {
	out := tableOutput{Headers: doc.Headers(), Rows: make([][]string, 0, doc.RecordCount())}
	for _, record := range doc.Records() {
		out.Rows = append(out.Rows, record.Fields())
	}

	if format == "table" {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		if doc.HasHeaders() {
			_, _ = fmt.Fprintln(tw, strings.Join(out.Headers, "\t"))
		}
		for _, row := range out.Rows {
			_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTokens(cli *CLIConfig, stdin io.Reader, w io.Writer) error {
	data, err := readInput(cli.Input, stdin)
	if err != nil {
		return err
	}

	tokens := csv.Tokenize(string(data))

	if cli.Format == "table" {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "KIND\tOFFSET\tLINE\tCOLUMN\tVALUE")
		for _, tok := range tokens {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%q\n", tok.Kind, tok.Offset, tok.Line, tok.Column, tok.Value)
		}
		return tw.Flush()
	}

	enc := json.NewEncoder(w)
	for _, tok := range tokens {
		if err := enc.Encode(tok); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shapestone/shape-csvtable/internal/config"
)

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	Format          string
	Header          bool
	Tokens          bool
	ParquetPath     string
	SchemaPath      string
	SQLitePath      string
	SQLiteTable     string
	Serve           bool
	Addr            string
	ShutdownTimeout time.Duration
	ShowVersion     bool
	NullValues      []string

	// Input is the file to parse, "-" for stdin.
	Input string

	// set records flags given on the command line or through the environment.
	set map[string]bool
}

type envFlag struct {
	name, env string
}

var (
	flagLogLevel    = envFlag{"log-level", "CSVTABLE_LOG_LEVEL"}
	flagLogFormat   = envFlag{"log-format", "CSVTABLE_LOG_FORMAT"}
	flagHeader      = envFlag{"header", "CSVTABLE_HEADER"}
	flagSQLitePath  = envFlag{"sqlite", "CSVTABLE_SQLITE"}
	flagSQLiteTable = envFlag{"table", "CSVTABLE_TABLE"}
	flagAddr        = envFlag{"addr", "CSVTABLE_ADDR"}
)

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	defaults := config.Default()
	cfg := &CLIConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("CSVTABLE_CONFIG", ""),
		"Path to YAML configuration file (env: CSVTABLE_CONFIG)")

	fs.StringVar(&cfg.LogLevel, flagLogLevel.name,
		getEnv(flagLogLevel.env, defaults.Log.Level),
		"Log level: debug, info, warn, error (env: CSVTABLE_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, flagLogFormat.name,
		getEnv(flagLogFormat.env, defaults.Log.Format),
		"Log format: json, text (env: CSVTABLE_LOG_FORMAT)")

	fs.StringVar(&cfg.Format, "format", "json",
		"Output format: json, table")

	fs.BoolVar(&cfg.Header, flagHeader.name,
		getEnvBool(flagHeader.env, defaults.Export.Header),
		"Treat the first row as column names (env: CSVTABLE_HEADER)")

	fs.BoolVar(&cfg.Tokens, "tokens", false,
		"Print the token stream instead of the table")

	fs.StringVar(&cfg.SchemaPath, "schema", "",
		"Validate records against this YAML column schema (requires a header row)")

	fs.StringVar(&cfg.ParquetPath, "parquet", "",
		"Write the table to this Parquet file")

	fs.StringVar(&cfg.SQLitePath, flagSQLitePath.name,
		getEnv(flagSQLitePath.env, defaults.SQLite.Path),
		"Load the table into this SQLite database (env: CSVTABLE_SQLITE)")

	fs.StringVar(&cfg.SQLiteTable, flagSQLiteTable.name,
		getEnv(flagSQLiteTable.env, defaults.SQLite.Table),
		"SQLite table name (env: CSVTABLE_TABLE)")

	fs.BoolVar(&cfg.Serve, "serve", false,
		"Run the HTTP parse service")

	fs.StringVar(&cfg.Addr, flagAddr.name,
		getEnv(flagAddr.env, defaults.Server.Addr),
		"HTTP listen address (env: CSVTABLE_ADDR)")

	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("CSVTABLE_SHUTDOWN_TIMEOUT", 10*time.Second),
		"Graceful shutdown timeout (env: CSVTABLE_SHUTDOWN_TIMEOUT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, `%s - parse comma-separated tables

Usage:
  %s [options] FILE      parse FILE ("-" for stdin)
  %s -serve [options]    run the HTTP service

Options:
`, appName, appName, appName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})
	for _, f := range []envFlag{flagLogLevel, flagLogFormat, flagHeader, flagSQLitePath, flagSQLiteTable, flagAddr} {
		if os.Getenv(f.env) != "" {
			cfg.set[f.name] = true
		}
	}

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		cfg.Input = fs.Arg(0)
	}

	return cfg, nil
}

// apply copies the file configuration into every option that was not set
// explicitly.
func (c *CLIConfig) apply(file config.Config) {
	if !c.set[flagLogLevel.name] {
		c.LogLevel = file.Log.Level
	}
	if !c.set[flagLogFormat.name] {
		c.LogFormat = file.Log.Format
	}
	if !c.set[flagHeader.name] {
		c.Header = file.Export.Header
	}
	if !c.set[flagSQLitePath.name] {
		c.SQLitePath = file.SQLite.Path
	}
	if !c.set[flagSQLiteTable.name] {
		c.SQLiteTable = file.SQLite.Table
	}
	if !c.set[flagAddr.name] {
		c.Addr = file.Server.Addr
	}
	c.NullValues = file.Export.NullValues
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion {
		return nil
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	outputFormats := []string{"json", "table"}
	if !contains(outputFormats, cfg.Format) {
		return fmt.Errorf("invalid output format: %s", cfg.Format)
	}

	if cfg.Serve {
		if cfg.Input != "" {
			return fmt.Errorf("-serve does not take an input file")
		}
		return nil
	}

	if cfg.Input == "" {
		return fmt.Errorf("missing input file")
	}
	if cfg.SchemaPath != "" && !cfg.Header {
		return fmt.Errorf("-schema requires -header")
	}
	if cfg.SQLitePath != "" && cfg.SQLiteTable == "" {
		return fmt.Errorf("-sqlite requires -table")
	}
	return nil
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

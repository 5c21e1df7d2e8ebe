// Package config loads the csvtable YAML configuration file.
//
// Example file:
//
//	log:
//	  level: debug
//	  format: text
//	server:
//	  addr: ":8080"
//	export:
//	  header: true
//	sqlite:
//	  path: data.db
//	  table: imports
//
// Command-line flags override values read from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete csvtable configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Export ExportConfig `yaml:"export"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ExportConfig controls how tables are turned into typed columns.
type ExportConfig struct {
	// Header treats the first row as column names.
	Header     bool     `yaml:"header"`
	NullValues []string `yaml:"null_values"`
}

// SQLiteConfig names the database and table rows are loaded into.
type SQLiteConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Export: ExportConfig{
			Header: true,
		},
		SQLite: SQLiteConfig{
			Table: "csv_table",
		},
	}
}

// Load reads the file at path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML over Default and validates the result. Unknown keys are
// rejected.
func Decode(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that has a fixed set of values.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.SQLite.Path != "" && c.SQLite.Table == "" {
		return errors.New("sqlite.table must be set when sqlite.path is")
	}
	return nil
}

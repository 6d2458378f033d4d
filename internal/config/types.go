package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nibzard/kanban-go/internal/board"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, user file first.
	Files []string
}

// Default values.
const (
	DefaultDataDir    = "~/.kanban"
	DefaultStorageKey = "task-manager-data"
	DefaultBoardTitle = "Task Manager"
	DefaultIDScheme   = board.IDSchemeTimestamp
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for kanban.
type Config struct {
	// Storage
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`

	// Board
	BoardTitle string `toml:"board_title"`
	IDScheme   string `toml:"id_scheme"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// LogDir returns the directory holding per-run log files.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	key := strings.TrimSpace(c.StorageKey)
	if key == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("storage_key %q must be a plain name", c.StorageKey)
	}
	if _, err := board.NewIDSource(c.IDScheme); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}

// FieldNames returns the configurable keys in display order.
func FieldNames() []string {
	return configFields()
}

// Value returns the value of a config key formatted for display.
func (c *Config) Value(field string) string {
	switch field {
	case "data_dir":
		return c.DataDir
	case "storage_key":
		return c.StorageKey
	case "board_title":
		return c.BoardTitle
	case "id_scheme":
		return c.IDScheme
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}

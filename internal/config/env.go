package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from KANBAN_* environment variables and
// updates source tracking.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("KANBAN_DATA_DIR", "data_dir", &cfg.DataDir)
	setString("KANBAN_STORAGE_KEY", "storage_key", &cfg.StorageKey)
	setString("KANBAN_BOARD_TITLE", "board_title", &cfg.BoardTitle)
	setString("KANBAN_ID_SCHEME", "id_scheme", &cfg.IDScheme)

	// Logging configuration
	setString("KANBAN_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("KANBAN_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("KANBAN_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("KANBAN_LOG_CALLER", "log_caller", &cfg.LogCaller)
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Kanban configuration file
# Values can be overridden by KANBAN_* environment variables or CLI flags

# Directory holding the board snapshot and per-run logs
# (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.kanban"

# Storage key; the board is saved as <data_dir>/<storage_key>.json
storage_key = "task-manager-data"

# Title shown in the board header
board_title = "Task Manager"

# Identifier scheme for new columns, tasks and tags: timestamp, uuid or ulid
id_scheme = "timestamp"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}

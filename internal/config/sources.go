package config

import (
	"os"
	"path/filepath"
)

const configFileName = "kanban.toml"

// projectConfigCandidates lists project config files, preferred first.
func projectConfigCandidates() []string {
	return []string{configFileName, "." + configFileName}
}

// userConfigCandidates lists user config files, preferred first:
// ~/.kanban/kanban.toml, then kanban/kanban.toml under the OS config dir
// (XDG_CONFIG_HOME, ~/Library/Application Support or %APPDATA%).
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".kanban", configFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "kanban", configFileName))
	}
	return paths
}

// firstRegularFile returns the first path that exists and is not a directory.
func firstRegularFile(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func findProjectConfigFile() string { return firstRegularFile(projectConfigCandidates()) }

func findUserConfigFile() string { return firstRegularFile(userConfigCandidates()) }

// setDefaults resets cfg to the built-in defaults.
func setDefaults(cfg *Config) {
	*cfg = Config{
		DataDir:    DefaultDataDir,
		StorageKey: DefaultStorageKey,
		BoardTitle: DefaultBoardTitle,
		IDScheme:   DefaultIDScheme,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load returns the effective configuration. See the package doc for the
// order in which sources are applied.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// fileLayer is one optional TOML file in the layering.
type fileLayer struct {
	label  string
	source ConfigSource
	find   func() string
}

var fileLayers = []fileLayer{
	{label: "user", source: SourceUserFile, find: findUserConfigFile},
	{label: "project", source: SourceProjFile, find: findProjectConfigFile},
}

// LoadWithSources loads configuration and records, per key, which layer set
// the final value. Files that were read are listed in Files.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cfg := &Config{}
	setDefaults(cfg)
	cws := &ConfigWithSources{Config: cfg, Sources: make(map[string]ConfigSource)}
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	for _, layer := range fileLayers {
		path := layer.find()
		if path == "" {
			continue
		}
		if err := loadConfigFile(cfg, path, cws.Sources, layer.source); err != nil {
			return nil, fmt.Errorf("loading %s config file %s: %w", layer.label, path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	loadFromEnv(cfg, cws.Sources)

	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cws, nil
}

// configFields lists the config keys in display order.
func configFields() []string {
	return []string{
		"data_dir",
		"storage_key",
		"board_title",
		"id_scheme",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile decodes TOML over cfg. Keys the file defines are credited
// to source; unknown keys are an error.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for _, field := range configFields() {
		if meta.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig resolves the data dir against the working directory and
// validates the result.
func finalizeConfig(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(cfg.ProjectRoot, cfg.DataDir)
	}
	return cfg.Validate()
}

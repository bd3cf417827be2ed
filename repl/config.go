package repl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory; a missing file
// simply means defaults.
const DefaultConfigFile = "lisplet.yml"

// Config is the optional REPL manifest.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history"`
	NoBanner    bool   `yaml:"no_banner"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:      "> ",
		HistoryFile: ".lisplet_history",
	}
}

// LoadConfig reads path over the defaults. Only set fields override.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultConfig().HistoryFile
	}
	return cfg, nil
}

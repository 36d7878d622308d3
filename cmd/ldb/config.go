package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config mirrors the CLI flags so a deployment can check a single YAML
// file into its own repo instead of assembling a long flag line.
// Flags always take precedence over a loaded config value that was
// left at its zero value.
type config struct {
	Addr      string   `yaml:"addr"`
	Space     string   `yaml:"space"`
	Capacity  int      `yaml:"capacity"`
	CacheSize int      `yaml:"cacheSize"`
	Peers     []string `yaml:"peers"`
	Verbosity int      `yaml:"verbosity"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %v", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %v", path)
	}
	return cfg, nil
}

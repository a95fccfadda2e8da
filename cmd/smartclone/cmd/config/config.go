// Package config loads the command configuration file.
package config

import (
	"io/fs"
	"os"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// DefaultConfigFilename is read when no path is given.
const DefaultConfigFilename = "smartclone.yaml"

// ConfigPath is the path given by the --config flag.
var ConfigPath string

// Config is the content of a configuration file. Command line flags
// override it field by field.
type Config struct {
	// Color forces colored output on or off.
	Color *bool `yaml:"color,omitempty"`
	// Parallel is the number of files processed at once.
	Parallel int `yaml:"parallel,omitempty"`
	// OmitIntrinsics lists built-ins the realm is created without.
	OmitIntrinsics []string `yaml:"omitIntrinsics,omitempty"`
	Verbose        bool     `yaml:"verbose,omitempty"`
}

// Load reads the configuration file. It returns nil without error when no
// path is given and the default file does not exist.
func Load() (*Config, error) {
	path := ConfigPath
	if path == "" {
		path = DefaultConfigFilename
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if ConfigPath == "" && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var cfg Config
	if err := yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict()); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return &cfg, nil
}

// Merge returns cfg overridden by the non-zero fields of flags.
// cfg may be nil.
func Merge(cfg, flags *Config) (*Config, error) {
	merged := &Config{}
	if cfg != nil {
		*merged = *cfg
	}
	if flags == nil {
		return merged, nil
	}
	if err := mergo.Merge(merged, flags, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return nil, errors.Wrap(err, "failed to merge flags")
	}
	return merged, nil
}

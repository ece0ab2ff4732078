package tabulate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds file-based defaults for the command line. Every field
// is optional; nil means "not set" so flag values are only replaced
// by values the file actually carries.
type Config struct {
	Ratio            *float64 `yaml:"ratio"`
	EstimateLines    *int     `yaml:"estimate_lines"`
	Delimiters       *string  `yaml:"delimiters"`
	OutputDelimiter  *string  `yaml:"output_delimiter"`
	StrictDelimiters *bool    `yaml:"strict_delimiters"`
	Truncate         *string  `yaml:"truncate"`
	Include          *string  `yaml:"include"`
	Exclude          *string  `yaml:"exclude"`
}

// DefaultConfigPath returns the conventional location of the
// defaults file, or "" when the user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tabulate", "tabulate.yaml")
}

// LoadConfig reads defaults from path. An empty path means
// [DefaultConfigPath], and a missing file at the default location is
// not an error; a missing or malformed file at an explicit path is.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the
// current directory and the home directory.
const DefaultConfigFile = ".vacationreport"

// XDGConfigFile is the configuration file name inside XDGConfigDir().
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk configuration.
type File struct {
	// Report holds output settings.
	Report ReportSection `yaml:"report"`

	// History holds snapshot storage settings.
	History HistorySection `yaml:"history"`

	// Log holds logging settings.
	Log LogSection `yaml:"log"`
}

// ReportSection is the "report" block of the configuration file.
type ReportSection struct {
	// Format is text, json or markdown.
	Format string `yaml:"format"`

	// Output is a file path to write the report to instead of stdout.
	Output string `yaml:"output"`

	// Tee also prints the report to stdout when Output is set.
	Tee bool `yaml:"tee"`
}

// LogSection is the "log" block of the configuration file.
type LogSection struct {
	// Format is text or json.
	Format string `yaml:"format"`
}

// HistorySection is the "history" block of the configuration file.
type HistorySection struct {
	// Enabled stores every generated report as a snapshot.
	Enabled bool `yaml:"enabled"`

	// Dir overrides the database directory.
	Dir string `yaml:"dir"`
}

// LoadConfigFile loads the configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. .vacationreport in the current directory
// 3. config.yaml in the XDG config directory
// 4. .vacationreport in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// AppName is the application name used for XDG directory paths.
const AppName = "vacationreport"

// Format selects the report writer.
type Format string

// Supported report formats.
const (
	// FormatText is the plain console report. It is the default.
	FormatText Format = "text"

	// FormatJSON is structured JSON output.
	FormatJSON Format = "json"

	// FormatMarkdown is a GitHub flavored Markdown document.
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a user supplied string to a Format.
// Matching is case-insensitive; the empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// LogFormat selects the log handler.
type LogFormat string

// Supported log formats.
const (
	// LogFormatText is human-readable output. It is the default.
	LogFormatText LogFormat = "text"

	// LogFormatJSON writes one JSON object per record.
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat converts a user supplied string to a LogFormat.
// The empty string means LogFormatText.
func ParseLogFormat(s string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", LogFormatText:
		return LogFormatText, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLogFormat, s)
	}
}

// Config holds all runtime options for one invocation.
// It is built from defaults, then the configuration file, then CLI flags.
type Config struct {
	// Format is the report output format.
	Format Format

	// ReportFile is the output file path for the report.
	// When empty the report goes to stdout.
	ReportFile string

	// Tee also prints the report to stdout when ReportFile is set.
	Tee bool

	// Verbose enables debug logging on stderr.
	Verbose bool

	// LogFormat is the stderr log format.
	LogFormat LogFormat

	// SaveHistory stores every generated report in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:    FormatText,
		LogFormat: LogFormatText,
		DBDir:     XDGDataDir(),
	}
}

// Apply copies the values set in the configuration file into c.
// Zero values in the file leave the current value untouched.
func (c *Config) Apply(f *File) error {
	if f == nil {
		return nil
	}

	if f.Report.Format != "" {
		format, err := ParseFormat(f.Report.Format)
		if err != nil {
			return err
		}
		c.Format = format
	}
	if f.Report.Output != "" {
		c.ReportFile = f.Report.Output
	}
	if f.Report.Tee {
		c.Tee = true
	}
	if f.Log.Format != "" {
		format, err := ParseLogFormat(f.Log.Format)
		if err != nil {
			return err
		}
		c.LogFormat = format
	}
	if f.History.Enabled {
		c.SaveHistory = true
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if c.SaveHistory && c.DBDir == "" {
		return ErrNoHistoryDir
	}
	return nil
}

// XDGDataDir returns the XDG data directory for vacationreport.
// On Linux: ~/.local/share/vacationreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for vacationreport.
// On Linux: ~/.config/vacationreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

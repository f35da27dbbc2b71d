package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and ParseFormat() and can
// be tested with errors.Is().
var (
	// ErrInvalidFormat is returned when the report format is not one of
	// text, json or markdown.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json or markdown")

	// ErrInvalidLogFormat is returned when the log format is not text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoHistoryDir is returned when history is enabled but no directory
	// could be determined.
	ErrNoHistoryDir = errors.New("history is enabled but no history directory is set")
)

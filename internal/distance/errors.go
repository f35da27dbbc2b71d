package distance

import (
	"errors"
	"fmt"
)

// ErrInvalidDistance is wrapped by every ParseError so callers can test
// for a parse failure with errors.Is.
var ErrInvalidDistance = errors.New("invalid distance")

// OpenError is returned when the input file cannot be opened.
// Its message is the user-facing line printed after "Error: ".
type OpenError struct {
	// Path is the path that was passed to the loader.
	Path string

	// Err is the underlying error from the operating system.
	Err error
}

// Error implements the error interface.
func (e *OpenError) Error() string {
	return "Could not open " + e.Path
}

// Unwrap returns the underlying error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the distance column of a data row cannot be
// converted to an integer.
type ParseError struct {
	// Path is the file the row was read from.
	Path string

	// Line is the 1-based line number, counting the header as line 1.
	Line int

	// City is the text before the first comma.
	City string

	// Text is the distance text that failed to parse. It is empty when the
	// row has no comma.
	Text string

	// Err is the strconv error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid distance %q for city %q", e.Path, e.Line, e.Text, e.City)
}

// Unwrap returns both ErrInvalidDistance and the strconv error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidDistance, e.Err}
}

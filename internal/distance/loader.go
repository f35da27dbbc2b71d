package distance

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/vacationreport/internal/model"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileName is the fixed input file, relative to the working directory.
const FileName = "distances.csv"

// maxLineSize bounds a single row. Real rows are a few dozen bytes.
const maxLineSize = 1024 * 1024

// Loader reads distance tables.
type Loader struct {
	// logger receives debug output about the rows read.
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used by the Loader.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader. Without options it logs to slog.Default().
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load opens path, parses it and closes it again before returning.
// A file that cannot be opened yields *OpenError.
func (l *Loader) Load(path string) ([]model.CityDistance, error) {
	f, err := os.Open(path) //nolint:gosec // fixed input path
	if err != nil {
		l.logger.Debug("open failed", "path", path, "error", err)
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	entries, err := l.Parse(f, path)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("distance table loaded", "path", path, "rows", len(entries))
	return entries, nil
}

// LoadReport is Load followed by model.NewReport.
func (l *Loader) LoadReport(path string) (*model.Report, error) {
	entries, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return model.NewReport(entries), nil
}

// Parse reads a distance table from r. name is only used in error messages.
//
// The first line is skipped. A leading byte order mark is honoured, so
// files saved as UTF-8 with BOM or UTF-16 by spreadsheet tools are read
// correctly. A trailing carriage return is removed from every line.
func (l *Loader) Parse(r io.Reader, name string) ([]model.CityDistance, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	entries := make([]model.CityDistance, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			l.logger.Debug("header skipped", "header", scanner.Text())
			continue
		}

		entry, err := parseLine(strings.TrimSuffix(scanner.Text(), "\r"))
		if err != nil {
			err.Path = name
			err.Line = lineNo
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return entries, nil
}

// parseLine splits a row on its first comma. The returned ParseError has
// no position set; Parse fills it in.
func parseLine(line string) (model.CityDistance, *ParseError) {
	city, text, _ := strings.Cut(line, ",")

	km, err := strconv.Atoi(text)
	if err != nil {
		return model.CityDistance{}, &ParseError{City: city, Text: text, Err: err}
	}
	return model.NewCityDistance(city, km), nil
}

package report

import (
	"io"
	"strings"

	"github.com/nao1215/vacationreport/internal/model"
)

// Separator is the rule printed under the banner.
const Separator = "---------------------------------"

// TextWriter outputs the console report:
//
//	European Vacation Project - Sprint 1
//	Starting City: Berlin
//	---------------------------------
//	Paris - 878 km
//
// The format is fixed; nothing about it is configurable.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the banner followed by one line per entry, in entry order.
// The whole report is built first and written with a single call.
func (w *TextWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	sb.WriteString(report.Title)
	sb.WriteString("\n")
	sb.WriteString("Starting City: ")
	sb.WriteString(report.StartingCity)
	sb.WriteString("\n")
	sb.WriteString(Separator)
	sb.WriteString("\n")

	for _, e := range report.Entries {
		sb.WriteString(e.Line())
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

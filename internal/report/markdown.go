package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/vacationreport/internal/model"
)

// MarkdownWriter outputs reports as GitHub flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(report.Title)
	md.PlainText("")
	md.PlainTextf("Starting City: **%s**", report.StartingCity)
	md.PlainText("")

	w.writeDistances(md, report)

	return len(md.String()), md.Build()
}

// writeDistances writes the distance table, or a note when there is nothing to show.
func (w *MarkdownWriter) writeDistances(md *markdown.Markdown, report *model.Report) {
	md.H2("Distances")
	md.PlainText("")

	if report.IsEmpty() {
		md.Note("distances.csv has no data rows.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, report.Len())
	for _, e := range report.Entries {
		rows = append(rows, []string{e.City, strconv.Itoa(e.Distance)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"City", "Distance (km)"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("%d destinations, %d km in total.", report.Len(), report.TotalDistance())
}

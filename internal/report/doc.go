// Package report renders a model.Report.
//
// This package contains writers for different output formats:
//   - TextWriter: the plain console report (banner plus one line per city)
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: a Markdown document with a distance table
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-destination output.
package report

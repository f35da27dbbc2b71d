package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/vacationreport/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.Report {
	return model.NewReport([]model.CityDistance{
		model.NewCityDistance("Paris", 878),
		model.NewCityDistance("Amsterdam", 577),
	})
}

// TestTextWriter tests the console report writer.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes exact report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewTextWriter(&buf).Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "European Vacation Project - Sprint 1\n" +
			"Starting City: Berlin\n" +
			"---------------------------------\n" +
			"Paris - 878 km\n" +
			"Amsterdam - 577 km\n"
		if buf.String() != want {
			t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
		}
		if n != len(want) {
			t.Errorf("expected %d bytes written, got %d", len(want), n)
		}
	})

	t.Run("empty report prints banner only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(model.NewReport(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 banner lines, got %d: %q", len(lines), lines)
		}
		if lines[2] != Separator {
			t.Errorf("expected separator, got %q", lines[2])
		}
	})

	t.Run("N rows give N lines after banner in order", func(t *testing.T) {
		t.Parallel()

		cities := []string{"Vienna", "Prague", "Warsaw", "Prague", "Copenhagen"}
		entries := make([]model.CityDistance, 0, len(cities))
		for i, c := range cities {
			entries = append(entries, model.NewCityDistance(c, 100*(i+1)))
		}

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(model.NewReport(entries)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if len(lines) != 3+len(entries) {
			t.Fatalf("expected %d lines, got %d", 3+len(entries), len(lines))
		}
		for i, e := range entries {
			if lines[3+i] != e.Line() {
				t.Errorf("line %d: expected %q, got %q", 3+i, e.Line(), lines[3+i])
			}
		}
	})

	t.Run("separator has 33 dashes", func(t *testing.T) {
		t.Parallel()
		if Separator != strings.Repeat("-", 33) {
			t.Errorf("unexpected separator %q", Separator)
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Title        string `json:"title"`
			StartingCity string `json:"starting_city"`
			Entries      []struct {
				City     string `json:"city"`
				Distance int    `json:"distance_km"`
			} `json:"entries"`
			Count   int `json:"count"`
			TotalKm int `json:"total_km"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to unmarshal output: %v", err)
		}

		if decoded.StartingCity != "Berlin" {
			t.Errorf("expected starting city Berlin, got %q", decoded.StartingCity)
		}
		if decoded.Count != 2 || len(decoded.Entries) != 2 {
			t.Errorf("expected 2 entries, got count=%d len=%d", decoded.Count, len(decoded.Entries))
		}
		if decoded.Entries[0].City != "Paris" || decoded.Entries[0].Distance != 878 {
			t.Errorf("unexpected first entry %+v", decoded.Entries[0])
		}
		if decoded.TotalKm != 878+577 {
			t.Errorf("expected total %d, got %d", 878+577, decoded.TotalKm)
		}
	})

	t.Run("compact output is a single line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected single line, got %q", buf.String())
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"title\"") {
			t.Errorf("expected indented output, got %s", buf.String())
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent("", "\t")).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n\t\"title\"") {
			t.Errorf("expected tab indentation, got %s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes title and table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# European Vacation Project - Sprint 1",
			"Starting City: **Berlin**",
			"## Distances",
			"Paris",
			"878",
			"Amsterdam",
			"577",
			"2 destinations, 1455 km in total.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}

		// header case depends on the table renderer
		lower := strings.ToLower(output)
		if !strings.Contains(lower, "distance (km)") {
			t.Errorf("expected table header in output:\n%s", output)
		}

		if strings.Index(output, "Paris") > strings.Index(output, "Amsterdam") {
			t.Error("expected rows in input order")
		}
	})

	t.Run("empty report writes note", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewReport(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "no data rows") {
			t.Errorf("expected empty note, got:\n%s", output)
		}
		if strings.Contains(strings.ToLower(output), "distance (km)") {
			t.Errorf("expected no table for empty report, got:\n%s", output)
		}
	})
}

// errWriter fails every write.
type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
		if !strings.Contains(text.String(), "Paris - 878 km") {
			t.Error("expected text output")
		}
		if !strings.Contains(js.String(), `"city":"Paris"`) {
			t.Error("expected JSON output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(errWriter{}), NewTextWriter(&after))

		if _, err := mw.Write(createTestReport()); err == nil {
			t.Fatal("expected error")
		}
		if after.Len() != 0 {
			t.Error("expected second writer not to be called")
		}
	})
}

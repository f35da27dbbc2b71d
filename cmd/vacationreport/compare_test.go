package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/vacationreport/internal/database"
)

func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	if cmd.Use != "compare" {
		t.Errorf("unexpected Use: got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected non-empty descriptions")
	}

	flagsWithShort := map[string]string{
		"with-id":  "i",
		"json":     "j",
		"markdown": "m",
	}
	for flag, shorthand := range flagsWithShort {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag %q to exist", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
		}
	}
}

// saveBaseline records sampleCSV as the first snapshot and then replaces
// distances.csv with a modified version.
func saveBaseline(t *testing.T) {
	t.Helper()

	dir := setupWorkDir(t, sampleCSV)
	writeHistoryConfig(t, dir, false)
	if _, stderr, code := runCLI(t, "--save"); code != 0 {
		t.Fatalf("failed to save baseline: %q", stderr)
	}
	writeCSV(t, "City,Distance\nParis,880\nRome,1181\nVienna,524\n")
}

func TestCompareCmd(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		saveBaseline(t)

		stdout, stderr, code := runCLI(t, "compare")
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d (stderr: %q)", code, stderr)
		}
		for _, want := range []string{
			"snapshot #1",
			"[+] Vienna - 524 km",
			"[-] Madrid - 1869 km",
			"[~] Paris: 878 km -> 880 km (+2)",
			"Unchanged: 1 cities",
			"Total: 3928 km -> 2585 km (-1343)",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		saveBaseline(t)

		stdout, stderr, code := runCLI(t, "compare", "--json")
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d (stderr: %q)", code, stderr)
		}

		var got ComparisonResult
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if got.SnapshotID != 1 || got.Unchanged {
			t.Errorf("snapshot = %d, unchanged = %v", got.SnapshotID, got.Unchanged)
		}
		if got.Result == nil || len(got.Added) != 1 || len(got.Removed) != 1 || len(got.Changed) != 1 {
			t.Fatalf("unexpected diff: %+v", got.Result)
		}
		if got.Changed[0].City != "Paris" || got.Changed[0].Delta() != 2 {
			t.Errorf("unexpected change: %+v", got.Changed[0])
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		saveBaseline(t)

		stdout, _, code := runCLI(t, "compare", "-m")
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d", code)
		}
		for _, want := range []string{"# Distance Comparison: snapshot #1", "## Added (1)", "Vienna - 524 km"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("no changes", func(t *testing.T) {
		dir := setupWorkDir(t, sampleCSV)
		writeHistoryConfig(t, dir, true)
		if _, stderr, code := runCLI(t); code != 0 {
			t.Fatalf("failed to save baseline: %q", stderr)
		}

		stdout, _, code := runCLI(t, "compare", "--with-id", "1")
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d", code)
		}
		if !strings.Contains(stdout, "No changes.") {
			t.Errorf("expected no changes, got %q", stdout)
		}
	})

	t.Run("no snapshots", func(t *testing.T) {
		dir := setupWorkDir(t, sampleCSV)
		writeHistoryConfig(t, dir, false)

		stdout, stderr, code := runCLI(t, "compare")
		if code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
		if stdout != "" {
			t.Errorf("expected empty stdout, got %q", stdout)
		}
		if !strings.Contains(stderr, "no snapshots recorded") {
			t.Errorf("unexpected stderr: %q", stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, "db", database.DBFileName)); !os.IsNotExist(err) {
			t.Errorf("compare must not create the database, stat returned %v", err)
		}
	})

	t.Run("unknown snapshot id", func(t *testing.T) {
		saveBaseline(t)

		_, stderr, code := runCLI(t, "compare", "-i", "42")
		if code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
		if !strings.Contains(stderr, "snapshot with ID 42 not found") {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	})

	t.Run("missing distances.csv", func(t *testing.T) {
		saveBaseline(t)
		if err := os.Remove("distances.csv"); err != nil {
			t.Fatal(err)
		}
		_, stderr, code := runCLI(t, "compare")
		if code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
		if stderr != "Error: Could not open distances.csv\n" {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		setupWorkDir(t, sampleCSV)

		_, stderr, code := runCLI(t, "compare", "-j", "-m")
		if code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
		if !strings.Contains(stderr, "cannot be used together") {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	})
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{delta: 5, want: "+5"},
		{delta: 0, want: "0"},
		{delta: -12, want: "-12"},
	}
	for _, tt := range tests {
		if got := formatDelta(tt.delta); got != tt.want {
			t.Errorf("formatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

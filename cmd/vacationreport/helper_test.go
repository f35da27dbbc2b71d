package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// sampleCSV is a distances.csv with a header and three cities.
const sampleCSV = "City,Distance\nParis,878\nRome,1181\nMadrid,1869\n"

// sampleReport is the text report produced for sampleCSV.
const sampleReport = "European Vacation Project - Sprint 1\n" +
	"Starting City: Berlin\n" +
	"---------------------------------\n" +
	"Paris - 878 km\n" +
	"Rome - 1181 km\n" +
	"Madrid - 1869 km\n"

// setupWorkDir changes into a fresh directory that also serves as HOME.
// When csv is not empty it is written to distances.csv.
// Tests using it must not run in parallel.
func setupWorkDir(t *testing.T, csv string) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	if csv != "" {
		writeCSV(t, csv)
	}
	return dir
}

// writeCSV replaces distances.csv in the current directory.
func writeCSV(t *testing.T, csv string) {
	t.Helper()
	if err := os.WriteFile("distances.csv", []byte(csv), 0600); err != nil {
		t.Fatalf("failed to write distances.csv: %v", err)
	}
}

// writeHistoryConfig writes a .vacationreport that keeps the history
// database under dir and returns the database directory.
func writeHistoryConfig(t *testing.T, dir string, enabled bool) string {
	t.Helper()

	dbDir := filepath.Join(dir, "db")
	content := fmt.Sprintf("history:\n  enabled: %t\n  dir: %q\n", enabled, dbDir)
	if err := os.WriteFile(filepath.Join(dir, ".vacationreport"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dbDir
}

// runCLI runs the CLI with args and returns stdout, stderr and the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

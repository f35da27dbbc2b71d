package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/vacationreport/internal/compare"
	"github.com/nao1215/vacationreport/internal/config"
	"github.com/nao1215/vacationreport/internal/database"
	"github.com/nao1215/vacationreport/internal/distance"
	"github.com/nao1215/vacationreport/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewCompareCmd creates the compare command.
// This command compares distances.csv with a saved snapshot.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare distances.csv with a saved snapshot",
		Long: `Compare shows how distances.csv differs from a report saved earlier
with 'vacationreport --save':
- Cities that were added
- Cities that were removed
- Cities whose distance changed

By default the latest snapshot is used.

Examples:
  # Compare with the latest snapshot
  vacationreport compare

  # Compare with a specific snapshot (see 'vacationreport history')
  vacationreport compare --with-id 3

  # Output comparison in JSON format
  vacationreport compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare with a specific snapshot by ID (use 'history' to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// ComparisonResult is the compare command output.
type ComparisonResult struct {
	// SnapshotID is the snapshot compared against.
	SnapshotID int64 `json:"snapshot_id"`

	// SnapshotDate is when the snapshot was generated.
	SnapshotDate time.Time `json:"snapshot_date"`

	// Unchanged is true when the checksum of distances.csv matches the snapshot.
	Unchanged bool `json:"unchanged"`

	*compare.Result
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}

	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}
	if withID < 0 {
		return fmt.Errorf("invalid snapshot ID %d", withID)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	db, err := database.Open(cfg.DBDir, database.ReadOnlyOptions())
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return fmt.Errorf("%w (use 'vacationreport --save' to record one)", database.ErrNoSnapshots)
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var (
		current  *model.Report
		snapshot *database.Snapshot
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		current, err = distance.NewLoader(distance.WithLogger(logger)).LoadReport(distance.FileName)
		return err
	})
	g.Go(func() error {
		var err error
		if withID > 0 {
			snapshot, err = db.Get(ctx, withID)
			if err == nil && snapshot == nil {
				err = fmt.Errorf("snapshot with ID %d not found", withID)
			}
			return err
		}
		snapshot, err = db.Latest(ctx)
		if errors.Is(err, database.ErrNoSnapshots) {
			return fmt.Errorf("%w (use 'vacationreport --save' to record one)", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	result := &ComparisonResult{
		SnapshotID:   snapshot.ID,
		SnapshotDate: snapshot.Timestamp,
		Unchanged:    database.Checksum(current) == snapshot.Checksum,
		Result:       compare.Reports(snapshot.Report, current),
	}
	logger.Debug("comparison done",
		"snapshot", result.SnapshotID,
		"added", len(result.Added),
		"removed", len(result.Removed),
		"changed", len(result.Changed),
	)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return outputComparisonJSON(out, result)
	case markdownOutput:
		return outputComparisonMarkdown(out, result)
	default:
		return outputComparisonText(out, result)
	}
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(w io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(w io.Writer, result *ComparisonResult) error {
	md := markdown.NewMarkdown(w)

	md.H1(fmt.Sprintf("Distance Comparison: snapshot #%d", result.SnapshotID))
	md.PlainText("")
	md.PlainTextf("Snapshot taken %s.", result.SnapshotDate.Local().Format("2006-01-02 15:04"))
	md.PlainText("")

	if !result.HasChanges() {
		if result.Unchanged {
			md.Tip("distances.csv is identical to the snapshot.")
		} else {
			md.Note("No city was added, removed or changed; only row order or duplicates differ.")
		}
		return md.Build()
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Snapshot", "Current", "Change"},
		Rows: [][]string{
			{"Total km", strconv.Itoa(result.PreviousTotal), strconv.Itoa(result.CurrentTotal),
				formatDelta(result.CurrentTotal - result.PreviousTotal)},
		},
	})
	md.PlainText("")

	if len(result.Added) > 0 {
		md.H2(fmt.Sprintf("Added (%d)", len(result.Added)))
		md.PlainText("")
		md.BulletList(citiesToLines(result.Added)...)
		md.PlainText("")
	}
	if len(result.Removed) > 0 {
		md.H2(fmt.Sprintf("Removed (%d)", len(result.Removed)))
		md.PlainText("")
		md.BulletList(citiesToLines(result.Removed)...)
		md.PlainText("")
	}
	if len(result.Changed) > 0 {
		md.H2(fmt.Sprintf("Changed (%d)", len(result.Changed)))
		md.PlainText("")
		rows := make([][]string, 0, len(result.Changed))
		for _, c := range result.Changed {
			rows = append(rows, []string{c.City, strconv.Itoa(c.Previous), strconv.Itoa(c.Current), formatDelta(c.Delta())})
		}
		md.Table(markdown.TableSet{
			Header: []string{"City", "Snapshot km", "Current km", "Change"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if result.UnchangedCount > 0 {
		md.PlainTextf("*%d cities unchanged*", result.UnchangedCount)
	}

	return md.Build()
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(w io.Writer, result *ComparisonResult) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Comparing %s with snapshot #%d (%s)\n",
		distance.FileName, result.SnapshotID, result.SnapshotDate.Local().Format("2006-01-02 15:04:05"))
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	if !result.HasChanges() {
		sb.WriteString("\nNo changes.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	if len(result.Added) > 0 {
		fmt.Fprintf(&sb, "\nAdded (%d):\n", len(result.Added))
		for _, e := range result.Added {
			fmt.Fprintf(&sb, "  [+] %s\n", e.Line())
		}
	}
	if len(result.Removed) > 0 {
		fmt.Fprintf(&sb, "\nRemoved (%d):\n", len(result.Removed))
		for _, e := range result.Removed {
			fmt.Fprintf(&sb, "  [-] %s\n", e.Line())
		}
	}
	if len(result.Changed) > 0 {
		fmt.Fprintf(&sb, "\nChanged (%d):\n", len(result.Changed))
		for _, c := range result.Changed {
			fmt.Fprintf(&sb, "  [~] %s: %d km -> %d km (%s)\n", c.City, c.Previous, c.Current, formatDelta(c.Delta()))
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(&sb, "\nUnchanged: %d cities\n", result.UnchangedCount)
	}
	fmt.Fprintf(&sb, "Total: %d km -> %d km (%s)\n",
		result.PreviousTotal, result.CurrentTotal, formatDelta(result.CurrentTotal-result.PreviousTotal))

	_, err := io.WriteString(w, sb.String())
	return err
}

// citiesToLines formats entries as report lines.
func citiesToLines(entries []model.CityDistance) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return lines
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

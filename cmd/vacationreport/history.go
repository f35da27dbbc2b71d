package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/vacationreport/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved report snapshots",
		Long: `History lists the reports recorded with 'vacationreport --save',
newest first, with their number of cities and total distance.

Use the ID with 'vacationreport compare --with-id <id>'.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var snapshots []database.Snapshot
	db, err := database.Open(cfg.DBDir, database.ReadOnlyOptions())
	switch {
	case errors.Is(err, database.ErrDatabaseNotFound):
		// Nothing saved yet.
	case err != nil:
		return fmt.Errorf("failed to open database: %w", err)
	default:
		defer db.Close()
		if snapshots, err = db.List(cmd.Context()); err != nil {
			return err
		}
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(out, "No snapshots found.")
		fmt.Fprintln(out, "\nUse 'vacationreport --save' to record the current report.")
		return nil
	}

	fmt.Fprintf(out, "Snapshots (%d):\n\n", len(snapshots))
	fmt.Fprintf(out, "  %-6s  %-20s  %-6s  %-9s  %s\n", "ID", "Date", "Cities", "Total km", "Checksum")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))

	for _, s := range snapshots {
		fmt.Fprintf(out, "  %-6d  %-20s  %-6d  %-9d  %s\n",
			s.ID,
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			s.EntryCount,
			s.TotalKm,
			shortChecksum(s.Checksum),
		)
	}

	fmt.Fprintln(out, "\nUse 'vacationreport compare --with-id <id>' to compare distances.csv with a snapshot.")
	return nil
}

// shortChecksum returns the first 12 characters of a checksum.
func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

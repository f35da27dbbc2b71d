package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it without a subcommand
// generates the report.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacationreport",
		Short: "Print distances from Berlin listed in distances.csv",
		Long: `vacationreport reads distances.csv from the current directory and prints
each city with its distance from the starting city, Berlin.

The first line of distances.csv is a header and is skipped. Every other
line has the form <city>,<distance in km>.

Examples:
  # Print the report
  vacationreport

  # Write a Markdown report to a file
  vacationreport --markdown -o report.md

  # Record the report in the history database
  vacationreport --save`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReportCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .vacationreport in current or home directory)")
	cmd.PersistentFlags().String("log-format", "",
		"Log format on stderr: text or json (default: text)")

	addReportFlags(cmd)

	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewPlanCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with the given arguments and returns the exit code.
// Errors are printed as "Error: <message>" on stderr.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

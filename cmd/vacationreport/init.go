package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/vacationreport/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/vacationreport.yaml
var configTemplate embed.FS

// templatePath is the embedded configuration template.
const templatePath = "templates/vacationreport.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new vacationreport configuration file",
		Long: `Initialize creates a new .vacationreport configuration file in the current directory.

The generated file documents the report format, the output file
and the history settings with their default values.

Examples:
  # Create .vacationreport in current directory
  vacationreport init

  # Create config file at a specific path
  vacationreport init -o myconfig.yaml

  # Force overwrite existing file
  vacationreport init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to choose:")
	fmt.Fprintln(out, "  - The report format (text, json, markdown)")
	fmt.Fprintln(out, "  - An output file instead of standard output")
	fmt.Fprintln(out, "  - Whether every report is saved to history")

	return nil
}

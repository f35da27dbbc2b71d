package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/vacationreport/internal/config"
	"github.com/nao1215/vacationreport/internal/distance"
	"github.com/nao1215/vacationreport/internal/log"
	"github.com/nao1215/vacationreport/internal/pipeline"
	"github.com/nao1215/vacationreport/internal/report"
	"github.com/spf13/cobra"
)

// addReportFlags registers the flags of the report command.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the report to stdout")
	cmd.Flags().BoolP("save", "s", false,
		"Save the report to the history database")
}

// runReportCmd loads distances.csv and writes the report.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	logger.Debug("configuration",
		"format", cfg.Format,
		"output", cfg.ReportFile,
		"tee", cfg.Tee,
		"saveHistory", cfg.SaveHistory,
		"configFile", cfg.ConfigFilePath,
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		// The load step closes the file before anything is written.
		pipeline.NewLoadStep(distance.NewLoader(distance.WithLogger(logger)), distance.FileName),
		newWriteStep(cmd.OutOrStdout(), cfg),
	)
	if cfg.SaveHistory {
		p.AddStep(pipeline.NewSaveStep(cfg.DBDir, logger))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := p.Execute(ctx, &pipeline.Run{}); err != nil {
		return err
	}

	if cfg.ReportFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to: %s\n", cfg.ReportFile)
	}
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// getLogFormatFlag retrieves the log-format flag and whether it was set.
func getLogFormatFlag(cmd *cobra.Command) (string, bool) {
	flag := cmd.Flags().Lookup("log-format")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("log-format")
	}
	if flag == nil || !flag.Changed {
		return "", false
	}
	return flag.Value.String(), true
}

// loadConfig builds a Config from defaults, the configuration file and the
// global flags. An explicitly given config file that does not exist is an
// error; a missing default config file is not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	explicitPath := getConfigFlag(cmd)
	configPath := config.FindConfigFile(explicitPath)

	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.Apply(cf); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
		cfg.ConfigFilePath = configPath
	case explicitPath != "":
		return nil, fmt.Errorf("configuration file not found: %s", explicitPath)
	}

	if value, ok := getLogFormatFlag(cmd); ok {
		format, err := config.ParseLogFormat(value)
		if err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
		cfg.LogFormat = format
	}

	return cfg, nil
}

// applyReportFlags overrides cfg with the report command flags.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	jsonReport, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonReport && markdownReport {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}
	if jsonReport {
		cfg.Format = config.FormatJSON
	}
	if markdownReport {
		cfg.Format = config.FormatMarkdown
	}

	if cmd.Flags().Changed("output") {
		if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
			return err
		}
	}

	tee, err := cmd.Flags().GetBool("tee")
	if err != nil {
		return err
	}
	if tee {
		cfg.Tee = true
	}

	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}
	if save {
		cfg.SaveHistory = true
	}
	return nil
}

// setupLogger creates the stderr logger for a command.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.New(cmd.ErrOrStderr(), cfg.LogFormat == config.LogFormatJSON, cfg.Verbose)
}

// newReportWriter returns the writer for the configured format.
func newReportWriter(format config.Format, w io.Writer) report.Writer {
	switch format {
	case config.FormatJSON:
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewTextWriter(w)
	}
}

// newWriteStep returns the pipeline step that writes the report to out or
// to the configured report file. With Tee the file copy is also printed to out.
func newWriteStep(out io.Writer, cfg *config.Config) *pipeline.WriteStep {
	if cfg.ReportFile == "" {
		return pipeline.NewWriteStep(func(w io.Writer) report.Writer {
			return newReportWriter(cfg.Format, w)
		}, out)
	}

	factory := func(w io.Writer) report.Writer {
		if cfg.Tee {
			return report.NewMultiWriter(newReportWriter(cfg.Format, w), newReportWriter(cfg.Format, out))
		}
		return newReportWriter(cfg.Format, w)
	}
	return pipeline.NewWriteStep(factory, out, pipeline.WithOutputFile(cfg.ReportFile))
}

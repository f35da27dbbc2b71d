package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/vacationreport/internal/database"
	"github.com/nao1215/vacationreport/internal/distance"
	"github.com/nao1215/vacationreport/internal/report"
)

// errNoReport is returned by steps that run before a report was loaded.
var errNoReport = errors.New("no report loaded")

// LoadStep reads a distances file into Run.Report.
type LoadStep struct {
	loader *distance.Loader
	path   string
}

// NewLoadStep creates a step that loads path with loader.
func NewLoadStep(loader *distance.Loader, path string) *LoadStep {
	return &LoadStep{loader: loader, path: path}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, run *Run) error {
	rep, err := s.loader.LoadReport(s.path)
	if err != nil {
		return err
	}
	run.Report = rep
	return nil
}

// WriterFactory creates a report writer for w.
type WriterFactory func(w io.Writer) report.Writer

// WriteStep renders Run.Report to an output stream or a file.
type WriteStep struct {
	newWriter WriterFactory
	out       io.Writer
	path      string
}

// WriteStepOption configures a WriteStep.
type WriteStepOption func(*WriteStep)

// WithOutputFile writes the report to path instead of the output stream.
// Parent directories are created as needed.
func WithOutputFile(path string) WriteStepOption {
	return func(s *WriteStep) {
		s.path = path
	}
}

// NewWriteStep creates a step that renders the report with newWriter to out.
func NewWriteStep(newWriter WriterFactory, out io.Writer, opts ...WriteStepOption) *WriteStep {
	s := &WriteStep{newWriter: newWriter, out: out}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do executes the write step.
func (s *WriteStep) Do(_ context.Context, run *Run) error {
	if run.Report == nil {
		return errNoReport
	}

	if s.path == "" {
		_, err := s.newWriter(s.out).Write(run.Report)
		return err
	}

	var buf bytes.Buffer
	if _, err := s.newWriter(&buf).Write(run.Report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return writeFile(s.path, buf.Bytes())
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// SaveStep stores Run.Report as a history snapshot.
type SaveStep struct {
	dbDir  string
	opts   database.Options
	logger *slog.Logger
}

// NewSaveStep creates a step that saves into the database under dbDir.
func NewSaveStep(dbDir string, logger *slog.Logger) *SaveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveStep{
		dbDir:  dbDir,
		opts:   database.DefaultOptions(),
		logger: logger,
	}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do executes the save step.
func (s *SaveStep) Do(ctx context.Context, run *Run) error {
	if run.Report == nil {
		return errNoReport
	}

	db, err := database.Open(s.dbDir, s.opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, saved, err := db.Save(ctx, run.Report)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	run.SnapshotID = id
	run.SnapshotSaved = saved

	if saved {
		s.logger.Info("snapshot saved", "id", id, "path", db.Path())
	} else {
		s.logger.Info("distances unchanged since last snapshot", "id", id)
	}
	return nil
}

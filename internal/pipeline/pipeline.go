package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/vacationreport/internal/model"
)

// Run is the state shared by the steps of one pipeline execution.
type Run struct {
	// Report is set by the load step and read by later steps.
	Report *model.Report

	// SnapshotID is the history snapshot matching the report, if one was saved.
	SnapshotID int64

	// SnapshotSaved is false when the report equals the latest snapshot.
	SnapshotSaved bool

	// Completed lists the names of the steps that finished, in order.
	Completed []string
}

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do executes the step. A returned error stops the pipeline.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in the order they were added.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence and returns the first error unchanged.
// Cancellation is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	p.logger.Debug("running pipeline", "steps", p.StepNames())
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			return err
		}

		p.logger.Debug("executing step", "step", step.Name())
		if err := step.Do(ctx, run); err != nil {
			p.logger.Debug("step failed", "step", step.Name(), "error", err)
			return err
		}
		run.Completed = append(run.Completed, step.Name())
	}
	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/mlbleaders/internal/model"
)

// ErrMissingInput is returned by a step whose input an earlier step did not produce.
var ErrMissingInput = errors.New("missing input from an earlier step")

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the run
// state accumulated by previous steps.
type Step interface {
	// Do executes the pipeline step.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// StepError reports which step failed.
type StepError struct {
	Step string
	Err  error
}

// Error implements error.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the step's error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run every step even
// when one fails. Execute then returns all step errors joined.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
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
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// The context is checked before each step; once it is done no further
// step starts and the context error is returned with any earlier failures.
// Each failure is wrapped in a *StepError. Steps that succeed are
// appended to run.PerformedSteps.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	var errs []error

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			return errors.Join(append(errs, err)...)
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"year", run.Year,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"year", run.Year,
				"error", err,
			)

			stepErr := &StepError{Step: step.Name(), Err: err}
			if !p.continueOnError {
				return stepErr
			}
			errs = append(errs, stepErr)
			continue
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"year", run.Year,
		)
		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return errors.Join(errs...)
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

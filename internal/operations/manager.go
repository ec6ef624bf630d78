package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salesreport/internal/infrastructure"
)

// Manager executes the registered steps of a pipeline
type Manager struct {
	registry *Registry
	config   *Config
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new pipeline manager
func NewManager(registry *Registry, config *Config, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if config == nil {
		config = NewConfig()
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Manager{
		registry: registry,
		config:   config,
		tracer:   NewOperationTracer(),
		logger:   infrastructure.WithComponent(logger, "operations"),
	}
}

// RegisterStage registers a new Step with the manager
func (m *Manager) RegisterStage(step Step) error {
	return m.registry.Register(step)
}

// GetRegistry returns the step registry
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// GetConfig returns the pipeline configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Execute runs every registered step in order against run. The first failing
// step stops the pipeline and the remaining steps are marked skipped. The run
// is closed before Execute returns, whatever the outcome.
func (m *Manager) Execute(ctx context.Context, run *Run) (err error) {
	if infrastructure.GetTraceID(ctx) == "" {
		ctx = infrastructure.WithTraceID(ctx, run.ID)
	}

	steps := m.registry.List()
	for _, step := range steps {
		run.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := m.tracer.TraceRun(ctx, run)
	run.Start()
	m.logOperationStart(ctx, run, len(steps))

	defer func() {
		if cerr := run.Close(); cerr != nil {
			m.logReleaseError(ctx, run, cerr)
			if err == nil {
				err = cerr
			}
		}
		run.Finish()
		m.tracer.RecordRunResult(span, run, err)
		if err != nil {
			m.logOperationError(ctx, run, err)
		} else {
			m.logOperationComplete(ctx, run)
		}
	}()

	for i, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			m.skipRemainingStages(ctx, run, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), ctxErr)
		}

		if err := m.executeStage(ctx, run, step); err != nil {
			m.skipRemainingStages(ctx, run, steps[i+1:], fmt.Sprintf("previous step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStage executes a single Step inside its own span and timeout
func (m *Manager) executeStage(ctx context.Context, run *Run, step Step) error {
	state := run.GetStage(step.ID())
	if state == nil {
		return NewFatalError(fmt.Sprintf("state for step %s not found", step.ID()), nil)
	}

	timeout := m.config.GetStageTimeout(step.ID())
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stageCtx, span := m.tracer.TraceStageExecution(stageCtx, run.ID, step)

	state.Start()
	m.logStageStart(stageCtx, run.ID, step)

	startTime := time.Now()
	err := step.Execute(stageCtx, run)
	duration := time.Since(startTime)

	if err == nil {
		state.Complete()
		m.tracer.RecordStageResult(span, duration, nil)
		m.logStageComplete(stageCtx, run.ID, step, duration)
		return nil
	}

	var opErr *OperationError
	if errors.Is(stageCtx.Err(), context.DeadlineExceeded) && !errors.As(err, &opErr) {
		opErr = NewTimeoutError(step.ID(), timeout.String(), err)
	} else {
		opErr = WrapError(err, step.ID())
	}

	state.Fail(opErr)
	m.tracer.RecordStageResult(span, duration, opErr)
	m.logStageError(stageCtx, run.ID, step, duration, opErr)
	return opErr
}

// skipRemainingStages marks steps that will not run as skipped
func (m *Manager) skipRemainingStages(ctx context.Context, run *Run, steps []Step, reason string) {
	for _, step := range steps {
		if state := run.GetStage(step.ID()); state != nil {
			state.Skip(reason)
		}
		m.logStageSkipped(ctx, run.ID, step, reason)
	}
}

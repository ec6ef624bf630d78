package operations

import (
	"context"
	"log/slog"
	"time"

	"salesreport/internal/infrastructure"
)

// logOperationStart logs the start of a pipeline run
func (m *Manager) logOperationStart(ctx context.Context, run *Run, stepCount int) {
	attrs := []any{
		slog.String("run_id", run.ID),
		slog.Int("step_count", stepCount),
	}
	if run.Paths != nil {
		attrs = append(attrs,
			slog.String("input_file", run.Paths.InputFile),
			slog.String("output_file", run.Paths.OutputFile))
	}
	m.logger.InfoContext(ctx, "operation_start", attrs...)
}

// logOperationComplete logs the completion of a pipeline run
func (m *Manager) logOperationComplete(ctx context.Context, run *Run) {
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("run_id", run.ID),
		slog.Duration("duration", run.Duration()))
}

// logOperationError logs a failed pipeline run
func (m *Manager) logOperationError(ctx context.Context, run *Run, err error) {
	infrastructure.WithError(m.logger, err).ErrorContext(ctx, "operation_error",
		slog.String("run_id", run.ID),
		slog.String("operation_error_type", string(GetErrorType(err))),
		slog.Duration("duration", run.Duration()))
}

// logReleaseError logs release hooks that failed while closing a run
func (m *Manager) logReleaseError(ctx context.Context, run *Run, err error) {
	m.logger.ErrorContext(ctx, "release_error",
		slog.String("run_id", run.ID),
		slog.String("error", err.Error()))
}

// logStageStart logs the start of a Step execution
func (m *Manager) logStageStart(ctx context.Context, runID string, step Step) {
	m.logger.InfoContext(ctx, "stage_start",
		slog.String("run_id", runID),
		slog.String("step", step.ID()),
		slog.String("step_name", step.Name()))
}

// logStageComplete logs the completion of a Step execution
func (m *Manager) logStageComplete(ctx context.Context, runID string, step Step, duration time.Duration) {
	m.logger.InfoContext(ctx, "stage_complete",
		slog.String("run_id", runID),
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
}

// logStageError logs a Step error
func (m *Manager) logStageError(ctx context.Context, runID string, step Step, duration time.Duration, err error) {
	infrastructure.WithError(m.logger, err).ErrorContext(ctx, "stage_error",
		slog.String("run_id", runID),
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
}

// logStageSkipped logs a Step that will not run
func (m *Manager) logStageSkipped(ctx context.Context, runID string, step Step, reason string) {
	m.logger.WarnContext(ctx, "stage_skipped",
		slog.String("run_id", runID),
		slog.String("step", step.ID()),
		slog.String("reason", reason))
}

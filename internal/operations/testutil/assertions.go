package testutil

import (
	"testing"

	"salesreport/internal/operations"
)

// AssertStepStatus verifies a step has the expected status
func AssertStepStatus(t *testing.T, step *operations.StepState, expected operations.StepStatus) {
	t.Helper()
	if step == nil {
		t.Fatal("step state is nil")
	}
	if got := step.GetStatus(); got != expected {
		t.Errorf("step %s status = %v, want %v", step.ID, got, expected)
	}
}

// AssertStageCompleted verifies a step completed successfully
func AssertStageCompleted(t *testing.T, run *operations.Run, stageID string) {
	t.Helper()
	step := run.GetStage(stageID)
	if step == nil {
		t.Fatalf("step %s not found", stageID)
	}
	AssertStepStatus(t, step, operations.StepStatusCompleted)
}

// AssertStageFailed verifies a step failed
func AssertStageFailed(t *testing.T, run *operations.Run, stageID string) {
	t.Helper()
	step := run.GetStage(stageID)
	if step == nil {
		t.Fatalf("step %s not found", stageID)
	}
	AssertStepStatus(t, step, operations.StepStatusFailed)
	if step.Error == nil {
		t.Errorf("step %s has no error", stageID)
	}
}

// AssertStageSkipped verifies a step was skipped
func AssertStageSkipped(t *testing.T, run *operations.Run, stageID string) {
	t.Helper()
	step := run.GetStage(stageID)
	if step == nil {
		t.Fatalf("step %s not found", stageID)
	}
	AssertStepStatus(t, step, operations.StepStatusSkipped)
}

// AssertErrorType verifies err carries the expected operation error type
func AssertErrorType(t *testing.T, err error, expected operations.ErrorType) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", expected)
	}
	if got := operations.GetErrorType(err); got != expected {
		t.Errorf("error type = %v, want %v (%v)", got, expected, err)
	}
}

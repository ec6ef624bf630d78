package testutil

import (
	"context"
	"errors"
	"time"

	"salesreport/internal/config"
	"salesreport/internal/operations"
)

// CreateTestRun creates a run with the default configuration and paths rooted at dir
func CreateTestRun(dir string) *operations.Run {
	cfg := config.Default()
	return operations.NewRun(cfg, config.ResolvePaths(dir, cfg))
}

// CreateTestRegistry creates a registry with three successful steps
func CreateTestRegistry() *operations.Registry {
	registry := operations.NewRegistry()
	registry.Register(CreateSuccessfulStage("stage1", "step 1"))
	registry.Register(CreateSuccessfulStage("stage2", "step 2"))
	registry.Register(CreateSuccessfulStage("stage3", "step 3"))
	return registry
}

// CreateSuccessfulStage creates a step that always succeeds
func CreateSuccessfulStage(id, name string) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: name,
	}
}

// CreateFailingStage creates a step that always fails with err
func CreateFailingStage(id, name string, err error) *MockStage {
	if err == nil {
		err = errors.New("step failed")
	}
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, run *operations.Run) error {
			return err
		},
	}
}

// CreateSlowStage creates a step that waits for delay or for its context
func CreateSlowStage(id, name string, delay time.Duration) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: name,
		ExecuteFunc: func(ctx context.Context, run *operations.Run) error {
			select {
			case <-time.After(delay):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// CreateAcquiringStage creates a step that registers a release hook named
// resource and records both the step and the release in rec
func CreateAcquiringStage(id, resource string, rec *Recorder) *MockStage {
	return &MockStage{
		IDValue:   id,
		NameValue: "acquire " + resource,
		ExecuteFunc: func(ctx context.Context, run *operations.Run) error {
			rec.Record("run:" + id)
			return run.OnClose(resource, func() error {
				rec.Record("release:" + resource)
				return nil
			})
		},
	}
}

package operations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salesreport/internal/config"
	"salesreport/internal/operations"
	"salesreport/internal/operations/testutil"
)

func TestNewConfigFrom(t *testing.T) {
	tests := []struct {
		name     string
		settings config.PipelineConfig
		want     map[string]time.Duration
	}{
		{
			name:     "defaults",
			settings: config.Default().Pipeline,
			want:     map[string]time.Duration{"load": config.DefaultStepTimeout, "save": config.DefaultStepTimeout},
		},
		{
			name:     "step timeout applies to every step",
			settings: config.PipelineConfig{StepTimeout: time.Minute},
			want:     map[string]time.Duration{"load": time.Minute, "chart": time.Minute},
		},
		{
			name: "per-step timeout wins",
			settings: config.PipelineConfig{
				StepTimeout:  time.Minute,
				StepTimeouts: map[string]time.Duration{"chart": 30 * time.Second},
			},
			want: map[string]time.Duration{"load": time.Minute, "chart": 30 * time.Second},
		},
		{
			name:     "zero step timeout keeps the built-in default",
			settings: config.PipelineConfig{},
			want:     map[string]time.Duration{"write": operations.DefaultStageTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := operations.NewConfigFrom(tt.settings)
			for stageID, want := range tt.want {
				assert.Equal(t, want, cfg.GetStageTimeout(stageID), stageID)
			}
		})
	}
}

func TestNewConfigFrom_BoundsExecution(t *testing.T) {
	settings := config.PipelineConfig{
		StepTimeout:  time.Minute,
		StepTimeouts: map[string]time.Duration{"chart": 10 * time.Millisecond},
	}
	manager := operations.NewManager(nil, operations.NewConfigFrom(settings), nil)
	assert.NoError(t, manager.RegisterStage(testutil.CreateSlowStage("chart", "Chart", time.Second)))
	assert.NoError(t, manager.RegisterStage(testutil.CreateSuccessfulStage("embed", "Embed")))
	run := testutil.CreateTestRun(t.TempDir())

	err := manager.Execute(context.Background(), run)

	testutil.AssertErrorType(t, err, operations.ErrorTypeTimeout)
	testutil.AssertStageFailed(t, run, "chart")
	testutil.AssertStageSkipped(t, run, "embed")
}

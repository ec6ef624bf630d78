package operations

import (
	"time"

	"salesreport/internal/config"
)

const (
	// DefaultStageTimeout bounds every step without an explicit timeout
	DefaultStageTimeout = config.DefaultStepTimeout
)

// Config represents the pipeline execution configuration
type Config struct {
	// Timeout for steps without an entry in StageTimeouts
	DefaultTimeout time.Duration

	// Step-specific timeouts
	StageTimeouts map[string]time.Duration
}

// NewConfig returns the default pipeline configuration
func NewConfig() *Config {
	return &Config{
		DefaultTimeout: DefaultStageTimeout,
		StageTimeouts:  make(map[string]time.Duration),
	}
}

// NewConfigFrom builds the pipeline configuration from the application settings
func NewConfigFrom(settings config.PipelineConfig) *Config {
	c := NewConfig()
	if settings.StepTimeout > 0 {
		c.DefaultTimeout = settings.StepTimeout
	}
	for stageID, timeout := range settings.StepTimeouts {
		c.SetStageTimeout(stageID, timeout)
	}
	return c
}

// GetStageTimeout returns the timeout for a specific Step
func (c *Config) GetStageTimeout(stageID string) time.Duration {
	if timeout, ok := c.StageTimeouts[stageID]; ok && timeout > 0 {
		return timeout
	}
	if c.DefaultTimeout > 0 {
		return c.DefaultTimeout
	}
	return DefaultStageTimeout
}

// SetStageTimeout sets the timeout for a specific Step
func (c *Config) SetStageTimeout(stageID string, timeout time.Duration) {
	if c.StageTimeouts == nil {
		c.StageTimeouts = make(map[string]time.Duration)
	}
	c.StageTimeouts[stageID] = timeout
}

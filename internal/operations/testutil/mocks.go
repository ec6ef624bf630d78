package testutil

import (
	"context"
	"sync"
	"time"

	"salesreport/internal/operations"
)

// MockStage is a configurable mock implementation of the step interface
type MockStage struct {
	IDValue   string
	NameValue string

	// Configurable function
	ExecuteFunc func(ctx context.Context, run *operations.Run) error

	// Call tracking
	mu           sync.Mutex
	ExecuteCalls int
	ExecuteArgs  []ExecuteCall
}

// ExecuteCall tracks arguments passed to Execute
type ExecuteCall struct {
	Ctx  context.Context
	Run  *operations.Run
	Time time.Time
}

// ID returns the step ID
func (m *MockStage) ID() string {
	return m.IDValue
}

// Name returns the step name
func (m *MockStage) Name() string {
	return m.NameValue
}

// Execute runs the mock execute function
func (m *MockStage) Execute(ctx context.Context, run *operations.Run) error {
	m.mu.Lock()
	m.ExecuteCalls++
	m.ExecuteArgs = append(m.ExecuteArgs, ExecuteCall{
		Ctx:  ctx,
		Run:  run,
		Time: time.Now(),
	})
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, run)
	}
	return nil
}

// GetExecuteCalls returns the number of Execute calls
func (m *MockStage) GetExecuteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ExecuteCalls
}

// Recorder collects the order in which steps and release hooks ran
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Record appends an event
func (r *Recorder) Record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

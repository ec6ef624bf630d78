package operations

import (
	"sync"
	"time"

	"salesreport/internal/charts"
	"salesreport/internal/config"
	"salesreport/internal/dataprocessing"
	"salesreport/internal/exporter"
	"salesreport/internal/infrastructure"
)

// Run carries one execution of the report pipeline. Each step reads the
// artifacts left by earlier steps and stores its own. Resources that need
// releasing are registered with OnClose as soon as they are acquired.
type Run struct {
	ID      string
	Config  *config.Config
	Paths   *config.Paths
	Columns dataprocessing.Columns

	Table    *dataprocessing.Table
	Summary  *dataprocessing.Summary
	Workbook *exporter.Workbook
	Figure   *charts.Figure

	mu        sync.RWMutex
	steps     map[string]*StepState
	order     []string
	closers   []closer
	closed    bool
	startTime time.Time
	endTime   *time.Time
}

type closer struct {
	name string
	fn   func() error
}

// NewRun creates the state for one pipeline execution
func NewRun(cfg *config.Config, paths *config.Paths) *Run {
	return &Run{
		ID:      infrastructure.GenerateTraceID(),
		Config:  cfg,
		Paths:   paths,
		Columns: ColumnsFromConfig(cfg.Columns),
		steps:   make(map[string]*StepState),
	}
}

// ColumnsFromConfig maps the configured header names onto the logical fields
func ColumnsFromConfig(c config.ColumnsConfig) dataprocessing.Columns {
	return dataprocessing.Columns{
		InvoiceID:    c.InvoiceID,
		UnitPrice:    c.UnitPrice,
		Quantity:     c.Quantity,
		Tax:          c.Tax,
		Branch:       c.Branch,
		City:         c.City,
		CustomerType: c.CustomerType,
		Gender:       c.Gender,
		ProductLine:  c.ProductLine,
	}
}

// OnClose registers a release hook. Hooks run in reverse registration order.
// A hook registered after Close runs immediately.
func (r *Run) OnClose(name string, fn func() error) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		if err := fn(); err != nil {
			return NewReleaseError(name, err)
		}
		return nil
	}
	r.closers = append(r.closers, closer{name: name, fn: fn})
	r.mu.Unlock()
	return nil
}

// Close runs every release hook once, last registered first, and reports all
// hook failures together. Later calls are no-ops.
func (r *Run) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	errs := &ErrorList{}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].fn(); err != nil {
			errs.Add(NewReleaseError(closers[i].name, err))
		}
	}
	return errs.ErrorOrNil()
}

// Closed reports whether Close has run
func (r *Run) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// PendingReleases returns the number of hooks Close would run
func (r *Run) PendingReleases() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.closers)
}

// Start marks the beginning of the run
func (r *Run) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startTime = time.Now()
}

// Finish marks the end of the run
func (r *Run) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.endTime = &now
}

// Duration returns how long the run took, or has taken so far
func (r *Run) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.startTime.IsZero() {
		return 0
	}
	if r.endTime != nil {
		return r.endTime.Sub(r.startTime)
	}
	return time.Since(r.startTime)
}

// SetStage records the state of a step
func (r *Run) SetStage(stageID string, state *StepState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.steps[stageID]; !exists {
		r.order = append(r.order, stageID)
	}
	r.steps[stageID] = state
}

// GetStage returns the state of a step, or nil
func (r *Run) GetStage(stageID string) *StepState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.steps[stageID]
}

// Stages returns every step state in execution order
func (r *Run) Stages() []*StepState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	states := make([]*StepState, 0, len(r.order))
	for _, id := range r.order {
		states = append(states, r.steps[id])
	}
	return states
}

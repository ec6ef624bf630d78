// Package operations runs the sales report as an ordered pipeline of steps.
//
// Core Components:
//
// Step: a single unit of work (load, enrich, aggregate, write, style, chart,
// embed, save). Every step reads what earlier steps left on the Run and adds
// its own artifact.
//
// Registry: holds steps in registration order and rejects duplicate ids.
//
// Run: owns every artifact of one execution together with a LIFO list of
// release hooks. Close runs each hook exactly once.
//
// Manager: executes the registered steps in order, one span and one pair of
// start/finish log records per step. The first failure stops the run, marks
// the remaining steps skipped and is returned as an *OperationError that
// unwraps to the underlying typed error. The run is always closed on exit.
//
// Example usage:
//
//	manager, err := operations.NewReportPipeline(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	run := operations.NewRun(cfg, paths)
//	if err := manager.Execute(ctx, run); err != nil {
//	    return err
//	}
package operations

package operations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salesreport/internal/infrastructure"
)

// OperationTracer provides OpenTelemetry spans for pipeline runs and steps
type OperationTracer struct {
	tracer trace.Tracer
}

// NewOperationTracer creates a tracer backed by the global provider
func NewOperationTracer() *OperationTracer {
	return &OperationTracer{tracer: infrastructure.Tracer()}
}

// TraceRun creates the span covering the whole run
func (t *OperationTracer) TraceRun(ctx context.Context, run *Run) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("run.id", run.ID)}
	if run.Paths != nil {
		attrs = append(attrs,
			attribute.String("report.input", run.Paths.InputFile),
			attribute.String("report.output", run.Paths.OutputFile))
	}
	return t.tracer.Start(ctx, "report.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// TraceStageExecution creates a span for an individual step
func (t *OperationTracer) TraceStageExecution(ctx context.Context, runID string, step Step) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "report.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// RecordStageResult sets the outcome of a step on its span and ends it
func (t *OperationTracer) RecordStageResult(span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RecordRunResult sets the outcome of a run on its span and ends it
func (t *OperationTracer) RecordRunResult(span trace.Span, run *Run, err error) {
	span.SetAttributes(attribute.Float64("run.duration_seconds", run.Duration().Seconds()))
	if run.Table != nil {
		span.SetAttributes(attribute.Int("report.rows", run.Table.Len()))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

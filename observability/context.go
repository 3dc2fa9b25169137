package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Operation holds observability state for one traced lifecycle phase or
// flow-control call.
type Operation struct {
	Configuration string
	Name          string
	ProcessID     string
	StartTime     time.Time
	Metrics       *PhaseMetrics
}

// NewOperation creates an operation. If metrics is nil, metric recording is
// skipped.
func NewOperation(configuration, name, processID string, metrics *PhaseMetrics) *Operation {
	return &Operation{
		Configuration: configuration,
		Name:          name,
		ProcessID:     processID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

type operationKey struct{}

// WithOperation stores op in ctx.
func WithOperation(ctx context.Context, op *Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext returns the operation stored in ctx, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// Start starts the operation's span and stores the operation in the
// returned context.
func (op *Operation) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrConfiguration, op.Configuration),
		attribute.String(AttrPhase, op.Name),
	)
	if op.ProcessID != "" {
		span.SetAttributes(attribute.String(AttrProcessID, op.ProcessID))
	}
	return WithOperation(ctx, op), span
}

// End closes the span and records the phase metrics.
func (op *Operation) End(ctx context.Context, span trace.Span, status string, messages int, err error) {
	duration := time.Since(op.StartTime)

	if err != nil {
		SetSpanError(trace.ContextWithSpan(ctx, span), err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrMessageCount, messages),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if op.Metrics != nil {
		op.Metrics.RecordPhase(ctx, op.Configuration, op.Name, status, messages, duration)
	}
}

// Duration returns the time elapsed since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}

// Package observability provides OpenTelemetry tracing and metrics for the
// emulator: one span per lifecycle phase and per flow-control call, plus
// phase counters and duration histograms.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("smcemu"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("smcemu"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewPhaseMetrics(observability.Meter("smcemu"))
//	op := observability.NewOperation("cfg", "EXECUTE", processID, metrics)
//	ctx, span := op.Start(ctx, observability.SpanPhase)
//	defer op.End(ctx, span, observability.StatusOK, len(messages), nil)
package observability

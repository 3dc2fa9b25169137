package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("smcemu")
	if cfg.ServiceName != "smcemu" {
		t.Errorf("expected ServiceName 'smcemu', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 || !cfg.Insecure {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("smcemu")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.rate), func(t *testing.T) {
			if got := Sampler(tt.rate).Description(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewPhaseMetrics(t *testing.T) {
	metrics, err := NewPhaseMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordPhase(ctx, "cfg", "EXECUTE", StatusOK, 3, 10*time.Millisecond)
	metrics.RecordPhase(ctx, "cfg", "EXECUTE", StatusContained, 3, time.Millisecond)
	metrics.RecordFlowControl(ctx, "cfg", "parallel", "EXECUTE", 2)
}

func TestOperation_SpanAttributes(t *testing.T) {
	recorder := installRecorder(t)

	op := NewOperation("cfg", "EXECUTE", "pid-1", nil)
	ctx, span := op.Start(context.Background(), SpanPhase)
	if OperationFromContext(ctx) != op {
		t.Fatal("expected operation in context")
	}
	op.End(ctx, span, StatusContained, 3, fmt.Errorf("boom"))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != SpanPhase {
		t.Errorf("expected span %s, got %s", SpanPhase, s.Name())
	}
	checks := map[string]string{
		AttrConfiguration: "cfg",
		AttrPhase:         "EXECUTE",
		AttrProcessID:     "pid-1",
		AttrStatus:        StatusContained,
		AttrErrorMessage:  "boom",
	}
	for key, want := range checks {
		v, ok := attr(s.Attributes(), key)
		if !ok || v.AsString() != want {
			t.Errorf("attribute %s: expected %q, got %v", key, want, v.Emit())
		}
	}
	if v, ok := attr(s.Attributes(), AttrMessageCount); !ok || v.AsInt64() != 3 {
		t.Errorf("expected message count 3, got %v", v.Emit())
	}
	if len(s.Events()) != 1 {
		t.Errorf("expected the error recorded as an event, got %d events", len(s.Events()))
	}
}

func TestOperation_WithMetrics(t *testing.T) {
	metrics, _ := NewPhaseMetrics(noop.NewMeterProvider().Meter("test"))
	op := NewOperation("cfg", "START", "", metrics)
	ctx, span := op.Start(context.Background(), SpanPhase)
	op.End(ctx, span, StatusOK, 2, nil)
}

func TestOperationFromContext_NotSet(t *testing.T) {
	if OperationFromContext(context.Background()) != nil {
		t.Error("expected nil when operation not set")
	}
}

func TestOperation_Duration(t *testing.T) {
	op := NewOperation("cfg", "STOP", "", nil)
	op.StartTime = time.Now().Add(-50 * time.Millisecond)
	if d := op.Duration(); d < 45*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", d)
	}
}

func TestSetSpanAttribute(t *testing.T) {
	recorder := installRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanFlowControl)
	SetSpanAttribute(ctx, AttrCommandType, "EXECUTE")
	SetSpanAttribute(ctx, AttrThreadID, 2)
	SetSpanAttribute(ctx, AttrManagedIDs, []int{0, 1})
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, fmt.Errorf("flow failed"))
	span.End()

	s := recorder.Ended()[0]
	if v, ok := attr(s.Attributes(), AttrManagedIDs); !ok || len(v.AsInt64Slice()) != 2 {
		t.Errorf("expected managed ids slice, got %v", v.Emit())
	}
	if v, ok := attr(s.Attributes(), AttrThreadID); !ok || v.AsInt64() != 2 {
		t.Errorf("expected thread id 2, got %v", v.Emit())
	}
	if _, ok := attr(s.Attributes(), "ignored"); ok {
		t.Error("expected unsupported attribute type to be ignored")
	}
}

func TestSetSpanAttribute_NoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), fmt.Errorf("no span"))
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("test")
	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test")
	cfg.Interval = 0
	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = mp
}

package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/smcemu/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for local runs.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// PhaseMetrics holds the emulator's metric instruments.
type PhaseMetrics struct {
	phaseTotal     metric.Int64Counter
	phaseDuration  metric.Float64Histogram
	phaseMessages  metric.Int64Counter
	moduleFailures metric.Int64Counter
	flowExecutions metric.Int64Counter
}

// NewPhaseMetrics creates the instruments on meter.
func NewPhaseMetrics(meter metric.Meter) (*PhaseMetrics, error) {
	phaseTotal, err := meter.Int64Counter("smcemu.phase.total",
		metric.WithDescription("Lifecycle phases run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smcemu.phase.total counter: %w", err)
	}

	phaseDuration, err := meter.Float64Histogram("smcemu.phase.duration",
		metric.WithDescription("Duration of lifecycle phases in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smcemu.phase.duration histogram: %w", err)
	}

	phaseMessages, err := meter.Int64Counter("smcemu.phase.messages",
		metric.WithDescription("Messages returned by lifecycle phases"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smcemu.phase.messages counter: %w", err)
	}

	moduleFailures, err := meter.Int64Counter("smcemu.module.failures",
		metric.WithDescription("Module callback failures contained by the driver"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smcemu.module.failures counter: %w", err)
	}

	flowExecutions, err := meter.Int64Counter("smcemu.flow.executions",
		metric.WithDescription("Managed execution contexts run through flow control"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smcemu.flow.executions counter: %w", err)
	}

	return &PhaseMetrics{
		phaseTotal:     phaseTotal,
		phaseDuration:  phaseDuration,
		phaseMessages:  phaseMessages,
		moduleFailures: moduleFailures,
		flowExecutions: flowExecutions,
	}, nil
}

// RecordPhase records one completed phase.
func (m *PhaseMetrics) RecordPhase(ctx context.Context, configuration, phase, status string, messages int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("configuration", configuration),
		attribute.String("phase", phase),
	)
	m.phaseTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("configuration", configuration),
		attribute.String("phase", phase),
		attribute.String("status", status),
	))
	m.phaseDuration.Record(ctx, duration.Seconds(), attrs)
	m.phaseMessages.Add(ctx, int64(messages), attrs)
	if status == StatusContained {
		m.moduleFailures.Add(ctx, 1, attrs)
	}
}

// RecordFlowControl records managed executions started by one flow-control
// call. mode is "now" or "parallel".
func (m *PhaseMetrics) RecordFlowControl(ctx context.Context, configuration, mode, command string, executions int) {
	m.flowExecutions.Add(ctx, int64(executions), metric.WithAttributes(
		attribute.String("configuration", configuration),
		attribute.String("mode", mode),
		attribute.String("command", command),
	))
}

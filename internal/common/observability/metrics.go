package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Meter wraps the OpenTelemetry instruments recorded per chat request.
// The prometheus exporter feeds the same registry served on /metrics.
type Meter struct {
	provider *sdkmetric.MeterProvider

	requests  metric.Int64Counter
	durations metric.Float64Histogram
}

func NewMeter(serviceName, serviceVersion string) (*Meter, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	m := provider.Meter(serviceName)

	requests, err := m.Int64Counter(
		"attendant.requests",
		metric.WithDescription("Chat requests handled"),
	)
	if err != nil {
		return nil, err
	}

	durations, err := m.Float64Histogram(
		"attendant.request.duration",
		metric.WithDescription("Chat request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Meter{
		provider:  provider,
		requests:  requests,
		durations: durations,
	}, nil
}

// RecordRequest records one handled request and its latency.
func (m *Meter) RecordRequest(ctx context.Context, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.requests.Add(ctx, 1, attrs)
	m.durations.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *Meter) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

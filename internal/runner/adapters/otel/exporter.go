// Package otel exports runtime metrics to an OTEL Collector.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "flexrun"
	serviceVersion = "1.0.0"
)

// Metrics exports session runtime metrics to an OTEL Collector.
type Metrics struct {
	provider            *sdkmetric.MeterProvider
	meter               metric.Meter
	fetchesTotal        metric.Int64Counter
	submissionsTotal    metric.Int64Counter
	transcriptionsTotal metric.Int64Counter
	requestDuration     metric.Float64Histogram
}

// NewMetrics creates a new OTEL metrics exporter.
func NewMetrics(ctx context.Context, cfg Config) (*Metrics, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	fetchesTotal, err := meter.Int64Counter(
		"flexrun_definition_fetches_total",
		metric.WithDescription("Test definition fetch attempts by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetches counter: %w", err)
	}

	submissionsTotal, err := meter.Int64Counter(
		"flexrun_feedback_submissions_total",
		metric.WithDescription("Feedback submission attempts by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submissions counter: %w", err)
	}

	transcriptionsTotal, err := meter.Int64Counter(
		"flexrun_transcriptions_total",
		metric.WithDescription("Audio transcription attempts by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcriptions counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram(
		"flexrun_request_duration_seconds",
		metric.WithDescription("Remote request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Metrics{
		provider:            provider,
		meter:               meter,
		fetchesTotal:        fetchesTotal,
		submissionsTotal:    submissionsTotal,
		transcriptionsTotal: transcriptionsTotal,
		requestDuration:     requestDuration,
	}, nil
}

func (m *Metrics) RecordFetch(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("operation", "fetch_definition"),
		attribute.String("outcome", outcome),
	)
	m.fetchesTotal.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *Metrics) RecordSubmission(ctx context.Context, outcome string) {
	m.submissionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", "submit_feedback"),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordTranscription(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("operation", "transcribe_audio"),
		attribute.String("outcome", outcome),
	)
	m.transcriptionsTotal.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// Close shuts down the exporter and flushes any pending metrics.
func (m *Metrics) Close(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

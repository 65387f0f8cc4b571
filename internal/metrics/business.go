package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder tracks generator and classifier activity.
type Recorder interface {
	// RecordOperation counts an operation ("generate", "classify") with its status ("success", "error").
	RecordOperation(ctx context.Context, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, operation string, duration time.Duration, status string)

	// RecordStrength counts how often each strength tier was produced.
	RecordStrength(ctx context.Context, operation, tier string)
}

type recorder struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	strengthCounter  metric.Int64Counter
}

// NewRecorder creates a Recorder whose instrument names are prefixed with namespace.
func NewRecorder(meterProvider metric.MeterProvider, namespace string) (Recorder, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of generator and classifier operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of generator and classifier operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	strengthCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_strength_total", namespace),
		metric.WithDescription("Strength tiers assigned to passwords"),
		metric.WithUnit("{password}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create strength counter: %w", err)
	}

	return &recorder{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		strengthCounter:  strengthCounter,
	}, nil
}

func (r *recorder) RecordOperation(ctx context.Context, operation, status string) {
	r.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (r *recorder) RecordDuration(ctx context.Context, operation string, duration time.Duration, status string) {
	r.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (r *recorder) RecordStrength(ctx context.Context, operation, tier string) {
	r.strengthCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("tier", tier),
		),
	)
}

// NoOpRecorder discards everything; used when metrics are disabled.
type NoOpRecorder struct{}

func (NoOpRecorder) RecordOperation(context.Context, string, string) {}
func (NoOpRecorder) RecordDuration(context.Context, string, time.Duration, string) {}
func (NoOpRecorder) RecordStrength(context.Context, string, string) {}

package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"culturalevents/internal/domain"
)

const meterName = "culturalevents"

// MetricsRecorder records lifecycle and ledger metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordStatusChange records one applied status change. automatic is true for sweep moves.
	RecordStatusChange(ctx context.Context, from, to domain.EventStatus, automatic bool)

	// RecordSweep records a finished scheduler sweep.
	RecordSweep(ctx context.Context, changed, failed int, duration time.Duration)

	// RecordParticipation records a ledger add or remove attempt.
	RecordParticipation(ctx context.Context, op string, role domain.Role, err error)
}

type otelMetrics struct {
	statusChanges     metric.Int64Counter
	sweeps            metric.Int64Counter
	sweepLatency      metric.Float64Histogram
	sweepFailures     metric.Int64Counter
	participationOps  metric.Int64Counter
	participationErrs metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter(meterName)

	statusChanges, err := meter.Int64Counter("events.status.changes",
		metric.WithDescription("Number of applied event status changes"),
	)
	if err != nil {
		return nil, err
	}

	sweeps, err := meter.Int64Counter("events.sweep.runs",
		metric.WithDescription("Number of auto-transition sweeps"),
	)
	if err != nil {
		return nil, err
	}

	sweepLatency, err := meter.Float64Histogram("events.sweep.latency_ms",
		metric.WithDescription("Auto-transition sweep latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	sweepFailures, err := meter.Int64Counter("events.sweep.failures",
		metric.WithDescription("Events skipped by a sweep because their update failed"),
	)
	if err != nil {
		return nil, err
	}

	participationOps, err := meter.Int64Counter("participations.operations",
		metric.WithDescription("Number of participation ledger operations"),
	)
	if err != nil {
		return nil, err
	}

	participationErrs, err := meter.Int64Counter("participations.rejections",
		metric.WithDescription("Number of rejected participation ledger operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		statusChanges:     statusChanges,
		sweeps:            sweeps,
		sweepLatency:      sweepLatency,
		sweepFailures:     sweepFailures,
		participationOps:  participationOps,
		participationErrs: participationErrs,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel meter provider.
// If metrics initialization fails, returns a no-op recorder.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordStatusChange(ctx context.Context, from, to domain.EventStatus, automatic bool) {
	m.statusChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", string(from)),
		attribute.String("to", string(to)),
		attribute.Bool("automatic", automatic),
	))
}

func (m *otelMetrics) RecordSweep(ctx context.Context, changed, failed int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", failed == 0))
	m.sweeps.Add(ctx, 1, attrs)
	m.sweepLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if failed > 0 {
		m.sweepFailures.Add(ctx, int64(failed))
	}
}

func (m *otelMetrics) RecordParticipation(ctx context.Context, op string, role domain.Role, err error) {
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("role", string(role)),
	)
	m.participationOps.Add(ctx, 1, attrs)
	if err != nil {
		m.participationErrs.Add(ctx, 1, attrs)
	}
}

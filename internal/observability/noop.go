package observability

import (
	"context"
	"time"

	"culturalevents/internal/domain"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

func (NoopMetrics) RecordStatusChange(_ context.Context, _, _ domain.EventStatus, _ bool) {}

func (NoopMetrics) RecordSweep(_ context.Context, _, _ int, _ time.Duration) {}

func (NoopMetrics) RecordParticipation(_ context.Context, _ string, _ domain.Role, _ error) {}

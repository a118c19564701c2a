package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"culturalevents/internal/clock"
	"culturalevents/internal/domain"
	"culturalevents/internal/observability"
)

type schedulerService struct {
	eventRepo      domain.EventRepository
	clock          clock.Clock
	metrics        observability.MetricsRecorder
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSchedulerService(eventRepo domain.EventRepository,
	clk clock.Clock,
	metrics observability.MetricsRecorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SchedulerService {
	return &schedulerService{
		eventRepo:      eventRepo,
		clock:          clk,
		metrics:        metrics,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// RunAutoTransitionSweep moves past events to FINISHED and confirmed events in progress to RUNNING.
// Each event is written on its own; one failing write is logged and does not stop the sweep.
func (s *schedulerService) RunAutoTransitionSweep(ctx context.Context) (_ []*domain.Event, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ctx, span := observability.StartSweepSpan(ctx)
	defer func() { observability.EndSpanWithError(span, err) }()

	started := time.Now()
	events, err := s.eventRepo.FindNonTerminal(ctx)
	if err != nil {
		return nil, fmt.Errorf("find non-terminal events: %w", err)
	}

	now := s.clock.Now()
	today := domain.DateOf(now)
	changed := make([]*domain.Event, 0)
	failed := 0
	for _, e := range events {
		target, ok := e.AutoTransition(today)
		if !ok {
			continue
		}
		from := e.Status
		e.ForceStatus(target)
		e.UpdatedAt = now
		if err := s.eventRepo.UpdateStatus(ctx, e, from); err != nil {
			failed++
			s.logger.WarnContext(ctx, "auto transition skipped",
				slog.String("event_id", e.ID),
				slog.String("from", string(from)),
				slog.String("to", string(target)),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.metrics.RecordStatusChange(ctx, from, target, true)
		observability.AddSpanEvent(ctx, "event.transitioned",
			attribute.String("event.id", e.ID),
			attribute.String("to", string(target)),
		)
		changed = append(changed, e)
	}

	s.metrics.RecordSweep(ctx, len(changed), failed, time.Since(started))
	if len(changed) > 0 || failed > 0 {
		s.logger.InfoContext(ctx, "auto transition sweep finished",
			slog.Int("checked", len(events)),
			slog.Int("changed", len(changed)),
			slog.Int("failed", failed),
		)
	}
	return changed, nil
}

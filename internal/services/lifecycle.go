package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"culturalevents/internal/clock"
	"culturalevents/internal/domain"
	"culturalevents/internal/observability"
)

type lifecycleService struct {
	eventRepo         domain.EventRepository
	participationRepo domain.ParticipationRepository
	personRepo        domain.PersonRepository
	tx                domain.TxManager
	emailService      domain.EmailService
	clock             clock.Clock
	metrics           observability.MetricsRecorder
	logger            *slog.Logger
	contextTimeout    time.Duration
}

// NewLifecycleService returns the operator-facing status state machine. emailService may be nil
// to disable notifications.
func NewLifecycleService(eventRepo domain.EventRepository,
	participationRepo domain.ParticipationRepository,
	personRepo domain.PersonRepository,
	tx domain.TxManager,
	emailService domain.EmailService,
	clk clock.Clock,
	metrics observability.MetricsRecorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.LifecycleService {
	return &lifecycleService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		personRepo:        personRepo,
		tx:                tx,
		emailService:      emailService,
		clock:             clk,
		metrics:           metrics,
		logger:            logger,
		contextTimeout:    timeout,
	}
}

// ChangeStatus loads the event and its roles, applies the transition and writes it with a
// compare-and-set on the previous status, all in one transaction.
func (s *lifecycleService) ChangeStatus(ctx context.Context, eventID string, target domain.EventStatus) (_ *domain.Event, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ctx, span := observability.StartStatusChangeSpan(ctx, eventID, string(target))
	defer func() { observability.EndSpanWithError(span, err) }()

	var (
		event *domain.Event
		from  domain.EventStatus
		ps    []*domain.Participation
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, roles, parts, err := s.loadWithRoles(ctx, eventID)
		if err != nil {
			return err
		}
		from = e.Status
		if err := e.ChangeStatus(target, roles); err != nil {
			return err
		}
		e.UpdatedAt = s.clock.Now()
		if err := s.eventRepo.UpdateStatus(ctx, e, from); err != nil {
			if errors.Is(err, domain.ErrStaleEvent) {
				return err
			}
			return fmt.Errorf("update status: %w", err)
		}
		event, ps = e, parts
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordStatusChange(ctx, from, event.Status, false)
	s.logger.InfoContext(ctx, "event status changed",
		slog.String("event_id", event.ID),
		slog.String("from", string(from)),
		slog.String("to", string(event.Status)),
	)
	if _, notify := statusTemplates[event.Status]; notify {
		s.notify(ctx, event, ps)
	}
	return event, nil
}

func (s *lifecycleService) ValidateForConfirmation(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, roles, _, err := s.loadWithRoles(ctx, eventID)
	if err != nil {
		return err
	}
	return domain.ValidateTypeRequirements(e, roles)
}

func (s *lifecycleService) ConfirmationIssues(ctx context.Context, eventID string) ([]*domain.ValidationError, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, roles, _, err := s.loadWithRoles(ctx, eventID)
	if err != nil {
		return nil, err
	}
	issues := domain.CheckTypeRequirements(e, roles)
	if issues == nil {
		issues = []*domain.ValidationError{}
	}
	return issues, nil
}

func (s *lifecycleService) loadWithRoles(ctx context.Context, eventID string) (*domain.Event, domain.RoleCounts, []*domain.Participation, error) {
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, domain.ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("get event: %w", err)
	}
	ps, err := s.participationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list participations: %w", err)
	}
	return e, domain.CountRoles(ps), ps, nil
}

// notify emails every participation holder about the new status. Failures are logged and dropped:
// the status change has already been committed.
func (s *lifecycleService) notify(ctx context.Context, e *domain.Event, ps []*domain.Participation) {
	if s.emailService == nil || len(ps) == 0 {
		return
	}
	persons := make(map[string]*domain.Person, len(ps))
	sent := 0
	for _, p := range ps {
		person, ok := persons[p.PersonID]
		if !ok {
			var err error
			person, err = s.personRepo.GetByID(ctx, p.PersonID)
			if err != nil {
				s.logger.WarnContext(ctx, "notification skipped",
					slog.String("event_id", e.ID),
					slog.String("person_id", p.PersonID),
					slog.String("error", err.Error()),
				)
				continue
			}
			persons[p.PersonID] = person
		}
		data := &domain.StatusChangeEmailData{
			Email:       person.Email,
			FirstName:   person.FirstName,
			EventName:   e.Name,
			Description: e.Describe(),
			StartDate:   e.StartDate.String(),
			EndDate:     e.EndDate().String(),
			Role:        p.Role,
			Status:      e.Status,
		}
		if err := s.emailService.SendStatusChange(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "notification failed",
				slog.String("event_id", e.ID),
				slog.String("person_id", p.PersonID),
				slog.String("error", err.Error()),
			)
			continue
		}
		sent++
	}
	observability.AddSpanEvent(ctx, "notifications.sent", attribute.Int("count", sent))
}

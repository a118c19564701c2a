package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"culturalevents/internal/clock"
	"culturalevents/internal/domain"
	"culturalevents/internal/observability"
)

type participationService struct {
	eventRepo         domain.EventRepository
	personRepo        domain.PersonRepository
	participationRepo domain.ParticipationRepository
	tx                domain.TxManager
	clock             clock.Clock
	metrics           observability.MetricsRecorder
	contextTimeout    time.Duration
}

// NewParticipationService returns the participation ledger.
func NewParticipationService(eventRepo domain.EventRepository,
	personRepo domain.PersonRepository,
	participationRepo domain.ParticipationRepository,
	tx domain.TxManager,
	clk clock.Clock,
	metrics observability.MetricsRecorder,
	timeout time.Duration,
) domain.ParticipationService {
	return &participationService{
		eventRepo:         eventRepo,
		personRepo:        personRepo,
		participationRepo: participationRepo,
		tx:                tx,
		clock:             clk,
		metrics:           metrics,
		contextTimeout:    timeout,
	}
}

func (s *participationService) AddParticipation(ctx context.Context, eventID, personID string, role domain.Role) (_ *domain.Participation, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ctx, span := observability.StartLedgerSpan(ctx, "add", eventID, personID)
	defer func() {
		s.metrics.RecordParticipation(ctx, "add", role, err)
		observability.EndSpanWithError(span, err)
	}()

	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	var created *domain.Participation
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.getEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if _, err := s.personRepo.GetByID(ctx, personID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get person: %w", err)
		}
		if event.Status.IsTerminal() {
			return domain.NewValidationError("status", fmt.Sprintf("a %s event accepts no new participations", event.Status))
		}

		exists, err := s.participationRepo.Exists(ctx, eventID, personID, role)
		if err != nil {
			return fmt.Errorf("check participation: %w", err)
		}
		if exists {
			return domain.ErrDuplicateParticipation
		}
		if role == domain.RoleParticipant && !event.AllowRegistration {
			return domain.ErrRegistrationClosed
		}
		if limit := domain.RoleLimit(event.Kind, role); limit > 0 {
			holders, err := s.participationRepo.ListByEventAndRole(ctx, eventID, role)
			if err != nil {
				return fmt.Errorf("list role holders: %w", err)
			}
			if len(holders) >= limit {
				return &domain.ValidationError{
					Field:  roleField(role),
					Reason: fmt.Sprintf("%s accepts at most %d %s", strings.ToLower(string(event.Kind)), limit, role),
					Err:    domain.ErrRoleLimit,
				}
			}
		}

		p := domain.NewParticipation(eventID, personID, role, s.clock.Now())
		if err := s.participationRepo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicateParticipation) || errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("create participation: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveParticipation refuses to leave a CONFIRMED or RUNNING event without a holder of a role its
// kind requires.
func (s *participationService) RemoveParticipation(ctx context.Context, eventID, personID string, role *domain.Role) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var metricRole domain.Role
	if role != nil {
		metricRole = *role
	}
	ctx, span := observability.StartLedgerSpan(ctx, "remove", eventID, personID)
	defer func() {
		s.metrics.RecordParticipation(ctx, "remove", metricRole, err)
		observability.EndSpanWithError(span, err)
	}()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.getEvent(ctx, eventID)
		if err != nil {
			return err
		}
		ps, err := s.participationRepo.ListByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list participations: %w", err)
		}

		var removed []domain.Role
		for _, p := range ps {
			if p.PersonID == personID && (role == nil || p.Role == *role) {
				removed = append(removed, p.Role)
			}
		}
		if len(removed) == 0 {
			return domain.ErrNotFound
		}

		if err := checkRequiredRolesKept(event, ps, removed); err != nil {
			return err
		}

		n, err := s.participationRepo.Delete(ctx, eventID, personID, role)
		if err != nil {
			return fmt.Errorf("delete participation: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// checkRequiredRolesKept fails when dropping removed from ps would leave a CONFIRMED
// or RUNNING event without a role its type requires.
func checkRequiredRolesKept(event *domain.Event, ps []*domain.Participation, removed []domain.Role) error {
	if event.Status != domain.StatusConfirmed && event.Status != domain.StatusRunning {
		return nil
	}
	remaining := domain.CountRoles(ps).Without(removed...)
	for _, r := range removed {
		if domain.IsRequiredRole(event.Kind, r) && remaining.Count(r) == 0 {
			return &domain.ValidationError{
				Field:  roleField(r),
				Reason: fmt.Sprintf("cannot remove the last %s of a %s %s", r, event.Status, strings.ToLower(string(event.Kind))),
				Err:    domain.ErrRequiredRole,
			}
		}
	}
	return nil
}

func (s *participationService) RolesOf(ctx context.Context, eventID string) (domain.RoleCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	ps, err := s.participationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	return domain.CountRoles(ps), nil
}

func (s *participationService) HasRole(ctx context.Context, eventID, personID string, role domain.Role) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.participationRepo.Exists(ctx, eventID, personID, role)
	if err != nil {
		return false, fmt.Errorf("check participation: %w", err)
	}
	return ok, nil
}

func (s *participationService) ParticipantsOf(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return loadParticipants(ctx, s.participationRepo, s.personRepo, eventID)
}

func (s *participationService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func roleField(r domain.Role) string {
	return "roles." + strings.ToLower(string(r))
}

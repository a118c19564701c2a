package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"culturalevents/internal/clock"
	"culturalevents/internal/domain"
)

type eventService struct {
	eventRepo         domain.EventRepository
	participationRepo domain.ParticipationRepository
	personRepo        domain.PersonRepository
	tx                domain.TxManager
	clock             clock.Clock
	rules             domain.EventRules
	contextTimeout    time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	participationRepo domain.ParticipationRepository,
	personRepo domain.PersonRepository,
	tx domain.TxManager,
	clk clock.Clock,
	rules domain.EventRules,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		personRepo:        personRepo,
		tx:                tx,
		clock:             clk,
		rules:             rules,
		contextTimeout:    timeout,
	}
}

// CreateEvent stores a new PLANNING event. The start date may not be before today.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.clock.Now()
	event.ID = ""
	event.Name = strings.TrimSpace(event.Name)
	event.ForceStatus(domain.StatusPlanning)
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.rules.ValidateFields(event); err != nil {
		return err
	}
	if event.StartDate.Before(domain.DateOf(now)) {
		return domain.NewValidationError("start_date", "must not be in the past")
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, []*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := loadParticipants(ctx, s.participationRepo, s.personRepo, id)
	if err != nil {
		return nil, nil, err
	}
	return event, participants, nil
}

// UpdateEvent applies the non-nil fields of update. Finished, running and cancelled events are read-only
// and the kind never changes.
func (s *eventService) UpdateEvent(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if !event.Editable() {
			return domain.NewValidationError("status", fmt.Sprintf("a %s event can no longer be edited", event.Status))
		}

		now := s.clock.Now()
		if update.StartDate != nil && !update.StartDate.Equal(event.StartDate) {
			if update.StartDate.Before(domain.DateOf(now)) {
				return domain.NewValidationError("start_date", "must not be in the past")
			}
			event.StartDate = *update.StartDate
		}
		applyEventUpdate(event, update)

		if err := s.rules.ValidateFields(event); err != nil {
			return err
		}
		event.UpdatedAt = now
		if err := s.eventRepo.Update(ctx, event); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("update event: %w", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyEventUpdate(e *domain.Event, u domain.EventUpdate) {
	if u.Name != nil {
		e.Name = strings.TrimSpace(*u.Name)
	}
	if u.DurationDays != nil {
		e.DurationDays = *u.DurationDays
	}
	if u.Screening != nil {
		e.Screening = u.Screening
	}
	if u.Workshop != nil {
		e.Workshop = u.Workshop
	}
	if u.Concert != nil {
		e.Concert = u.Concert
	}
	if u.Exhibition != nil {
		e.Exhibition = u.Exhibition
	}
	if u.Fair != nil {
		e.Fair = u.Fair
	}
}

// DeleteEvent removes the event and every participation it owns.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.participationRepo.DeleteByEvent(ctx, id); err != nil {
			return fmt.Errorf("delete participations: %w", err)
		}
		if err := s.eventRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

// ListEvents uses the dedicated finder when the filter has a single criterion.
func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, domain.NewValidationError("to", "must not be before from")
	}
	filter.Name = strings.TrimSpace(filter.Name)

	var (
		events []*domain.Event
		err    error
	)
	switch criteria(filter) {
	case 0:
		events, err = s.eventRepo.FindAll(ctx)
	case 1:
		switch {
		case filter.Name != "":
			events, err = s.eventRepo.FindByName(ctx, filter.Name)
		case filter.Status != "":
			events, err = s.eventRepo.FindByStatus(ctx, filter.Status)
		case filter.ParticipantID != "":
			events, err = s.eventRepo.FindByParticipant(ctx, filter.ParticipantID)
		default:
			events, err = s.eventRepo.FindByDateRange(ctx, filter.From, filter.To)
		}
	default:
		events, err = s.eventRepo.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// criteria counts the filter's independent criteria. A date range counts once, and only when closed.
func criteria(f domain.EventFilter) int {
	n := 0
	if f.Name != "" {
		n++
	}
	if f.Status != "" {
		n++
	}
	if f.ParticipantID != "" {
		n++
	}
	switch {
	case !f.From.IsZero() && !f.To.IsZero():
		n++
	case !f.From.IsZero() || !f.To.IsZero():
		n += 2
	}
	return n
}

func (s *eventService) EventsOnDay(ctx context.Context, day domain.Date) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if day.IsZero() {
		return nil, domain.NewValidationError("date", "is required")
	}
	events, err := s.eventRepo.FindByDateRange(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("events on day: %w", err)
	}
	return events, nil
}

func (s *eventService) EventsInMonth(ctx context.Context, year int, month time.Month) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if year < 1 || year > 9999 {
		return nil, domain.NewValidationError("year", "out of range")
	}
	if month < time.January || month > time.December {
		return nil, domain.NewValidationError("month", "must be between 1 and 12")
	}
	first := domain.NewDate(year, month, 1)
	last := domain.DateOf(first.Time().AddDate(0, 1, -1))
	events, err := s.eventRepo.FindByDateRange(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("events in month: %w", err)
	}
	return events, nil
}

// loadParticipants returns the event's participations with their persons attached.
func loadParticipants(ctx context.Context, participationRepo domain.ParticipationRepository, personRepo domain.PersonRepository, eventID string) ([]*domain.Participant, error) {
	ps, err := participationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	persons := make(map[string]*domain.Person, len(ps))
	out := make([]*domain.Participant, 0, len(ps))
	for _, p := range ps {
		person, ok := persons[p.PersonID]
		if !ok {
			person, err = personRepo.GetByID(ctx, p.PersonID)
			if err != nil {
				return nil, fmt.Errorf("get person %s: %w", p.PersonID, err)
			}
			persons[p.PersonID] = person
		}
		out = append(out, &domain.Participant{Participation: *p, Person: person})
	}
	return out, nil
}

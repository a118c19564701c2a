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

type personService struct {
	personRepo        domain.PersonRepository
	participationRepo domain.ParticipationRepository
	eventRepo         domain.EventRepository
	tx                domain.TxManager
	clock             clock.Clock
	contextTimeout    time.Duration
}

func NewPersonService(personRepo domain.PersonRepository,
	participationRepo domain.ParticipationRepository,
	eventRepo domain.EventRepository,
	tx domain.TxManager,
	clk clock.Clock,
	timeout time.Duration,
) domain.PersonService {
	return &personService{
		personRepo:        personRepo,
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		tx:                tx,
		clock:             clk,
		contextTimeout:    timeout,
	}
}

// CreatePerson validates p and stores it unless another person already holds its national ID.
func (s *personService) CreatePerson(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := p.Validate(); err != nil {
		return err
	}
	now := s.clock.Now()
	p.ID = ""
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.personRepo.ExistsNationalID(ctx, p.NationalID, "")
		if err != nil {
			return fmt.Errorf("check national id: %w", err)
		}
		if taken {
			return domain.DuplicateNationalIDError(p.NationalID)
		}
		if err := s.personRepo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return err
			}
			return fmt.Errorf("create person: %w", err)
		}
		return nil
	})
}

// UpdatePerson replaces the stored fields of p.ID. Keeping one's own national ID is not a conflict.
func (s *personService) UpdatePerson(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := p.Validate(); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.personRepo.GetByID(ctx, p.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get person: %w", err)
		}
		taken, err := s.personRepo.ExistsNationalID(ctx, p.NationalID, p.ID)
		if err != nil {
			return fmt.Errorf("check national id: %w", err)
		}
		if taken {
			return domain.DuplicateNationalIDError(p.NationalID)
		}
		p.CreatedAt = current.CreatedAt
		p.UpdatedAt = s.clock.Now()
		if err := s.personRepo.Update(ctx, p); err != nil {
			if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("update person: %w", err)
		}
		return nil
	})
}

func (s *personService) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

// DeletePerson removes the person together with every participation they hold.
// It fails when that would leave a CONFIRMED or RUNNING event without a required role.
func (s *personService) DeletePerson(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requiredRolesSurvive(ctx, id); err != nil {
			return err
		}
		if err := s.participationRepo.DeleteByPerson(ctx, id); err != nil {
			return fmt.Errorf("delete participations: %w", err)
		}
		if err := s.personRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete person: %w", err)
		}
		return nil
	})
}

func (s *personService) requiredRolesSurvive(ctx context.Context, personID string) error {
	events, err := s.eventRepo.FindByParticipant(ctx, personID)
	if err != nil {
		return fmt.Errorf("events of person: %w", err)
	}
	for _, event := range events {
		if event.Status != domain.StatusConfirmed && event.Status != domain.StatusRunning {
			continue
		}
		ps, err := s.participationRepo.ListByEvent(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("list participations: %w", err)
		}
		var removed []domain.Role
		for _, p := range ps {
			if p.PersonID == personID {
				removed = append(removed, p.Role)
			}
		}
		if err := checkRequiredRolesKept(event, ps, removed); err != nil {
			return err
		}
	}
	return nil
}

func (s *personService) SearchPersons(ctx context.Context, text string) ([]*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		persons []*domain.Person
		err     error
	)
	if text = strings.TrimSpace(text); text == "" {
		persons, err = s.personRepo.List(ctx)
	} else {
		persons, err = s.personRepo.Search(ctx, text)
	}
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	return persons, nil
}

// EventsOf lists the events the person takes part in, in any role.
func (s *personService) EventsOf(ctx context.Context, personID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.personRepo.GetByID(ctx, personID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	events, err := s.eventRepo.FindByParticipant(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("events of person: %w", err)
	}
	return events, nil
}

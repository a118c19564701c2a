package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxDurationDays is the longest event accepted unless configured otherwise.
const DefaultMaxDurationDays = 31

// Event is a cultural event. Kind selects which details pointer is set; the others are nil.
// swagger:model Event
type Event struct {
	ID                string             `json:"id"`
	Kind              EventKind          `json:"kind"`
	Name              string             `json:"name"`
	StartDate         Date               `json:"start_date"`
	DurationDays      int                `json:"duration_days"`
	Status            EventStatus        `json:"status"`
	AllowRegistration bool               `json:"allow_registration"`
	Screening         *ScreeningDetails  `json:"screening,omitempty"`
	Workshop          *WorkshopDetails   `json:"workshop,omitempty"`
	Concert           *ConcertDetails    `json:"concert,omitempty"`
	Exhibition        *ExhibitionDetails `json:"exhibition,omitempty"`
	Fair              *FairDetails       `json:"fair,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// NewEvent returns a PLANNING event of the given kind. Details are set by the caller.
func NewEvent(kind EventKind, name string, start Date, durationDays int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Kind:         kind,
		Name:         name,
		StartDate:    start,
		DurationDays: durationDays,
		Status:       StatusPlanning,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// EndDate is the last day the event occupies: start + duration - 1.
func (e *Event) EndDate() Date {
	return e.StartDate.AddDays(e.DurationDays - 1)
}

// ContainsDate reports whether d falls within the event window, both ends inclusive.
func (e *Event) ContainsDate(d Date) bool {
	return !d.Before(e.StartDate) && !d.After(e.EndDate())
}

// OverlapsRange reports whether the event window intersects [from, to], both ends inclusive.
func (e *Event) OverlapsRange(from, to Date) bool {
	return !e.StartDate.After(to) && !e.EndDate().Before(from)
}

// ChangeStatus applies an operator-requested transition. Confirmation additionally
// requires the type requirements to hold for roles. On error the event is unchanged.
func (e *Event) ChangeStatus(target EventStatus, roles RoleCounts) error {
	if err := e.Status.CheckOperatorTransition(target); err != nil {
		return err
	}
	if target == StatusConfirmed {
		if err := ValidateTypeRequirements(e, roles); err != nil {
			return err
		}
	}
	e.setStatus(target)
	return nil
}

// AutoTransition returns the status the scheduler should move the event to on today,
// and false when nothing changes. Terminal events never move.
func (e *Event) AutoTransition(today Date) (EventStatus, bool) {
	if e.Status.IsTerminal() {
		return e.Status, false
	}
	if e.EndDate().Before(today) {
		return StatusFinished, true
	}
	if e.Status == StatusConfirmed && e.ContainsDate(today) {
		return StatusRunning, true
	}
	return e.Status, false
}

// ForceStatus sets status without legality checks. Used by the scheduler only.
func (e *Event) ForceStatus(s EventStatus) {
	e.setStatus(s)
}

func (e *Event) setStatus(s EventStatus) {
	e.Status = s
	e.AllowRegistration = s == StatusConfirmed
}

// Editable reports whether the event's base fields and details may still change.
func (e *Event) Editable() bool {
	return e.Status == StatusPlanning || e.Status == StatusConfirmed
}

// Describe returns a one-line human description that depends on the kind.
func (e *Event) Describe() string {
	switch e.Kind {
	case KindScreening:
		if e.Screening != nil {
			return fmt.Sprintf("Screening #%d: %s", e.Screening.ProjectionOrder, e.Screening.Title)
		}
	case KindWorkshop:
		if e.Workshop != nil {
			return fmt.Sprintf("Workshop %s - %d seats, %s", e.Name, e.Workshop.Capacity, humanize(string(e.Workshop.Modality)))
		}
	case KindConcert:
		if e.Concert != nil {
			return fmt.Sprintf("Concert %s - %s admission", e.Name, humanize(string(e.Concert.TicketType)))
		}
	case KindExhibition:
		if e.Exhibition != nil {
			return fmt.Sprintf("Exhibition of %s: %s", humanize(string(e.Exhibition.ArtType)), e.Name)
		}
	case KindFair:
		if e.Fair != nil {
			return fmt.Sprintf("Fair %s - %d stands, %s", e.Name, e.Fair.StandCount, humanize(string(e.Fair.LocationType)))
		}
	}
	return e.Name
}

func humanize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

// EventRules holds the configurable limits applied when events are created or edited.
type EventRules struct {
	MaxDurationDays int
}

// CheckFields returns every violated base or detail rule of e, without role checks.
func (r EventRules) CheckFields(e *Event) []*ValidationError {
	maxDays := r.MaxDurationDays
	if maxDays <= 0 {
		maxDays = DefaultMaxDurationDays
	}
	errs := checkBaseFields(e)
	if e.DurationDays > maxDays {
		errs = append(errs, NewValidationError("duration_days", fmt.Sprintf("must be at most %d days", maxDays)))
	}
	return append(errs, checkDetails(e)...)
}

// ValidateFields returns the first violation reported by CheckFields.
func (r EventRules) ValidateFields(e *Event) error {
	if errs := r.CheckFields(e); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func checkBaseFields(e *Event) []*ValidationError {
	var errs []*ValidationError
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, NewValidationError("name", "must not be empty"))
	}
	if e.StartDate.IsZero() {
		errs = append(errs, NewValidationError("start_date", "is required"))
	}
	if e.DurationDays <= 0 {
		errs = append(errs, NewValidationError("duration_days", "must be a positive number of days"))
	}
	return errs
}

// EventFilter narrows event listings. Zero fields are ignored.
type EventFilter struct {
	Name          string
	Status        EventStatus
	From          Date
	To            Date
	ParticipantID string
}

// EventRepository is the persistence gateway for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	// UpdateStatus writes status and allow_registration only if the stored status still equals from.
	UpdateStatus(ctx context.Context, event *Event, from EventStatus) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter EventFilter) ([]*Event, error)
	FindAll(ctx context.Context) ([]*Event, error)
	FindByName(ctx context.Context, text string) ([]*Event, error)
	FindByStatus(ctx context.Context, status EventStatus) ([]*Event, error)
	FindByDateRange(ctx context.Context, from, to Date) ([]*Event, error)
	FindByParticipant(ctx context.Context, personID string) ([]*Event, error)
	FindNonTerminal(ctx context.Context) ([]*Event, error)
}

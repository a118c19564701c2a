package domain

import (
	"context"
	"time"
)

// TxManager runs fn inside one storage transaction. Nested calls join the outer transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventUpdate carries the editable fields of an event. Nil fields are unchanged.
// Only the details pointer matching the event kind may be set.
type EventUpdate struct {
	Name         *string
	StartDate    *Date
	DurationDays *int
	Screening    *ScreeningDetails
	Workshop     *WorkshopDetails
	Concert      *ConcertDetails
	Exhibition   *ExhibitionDetails
	Fair         *FairDetails
}

// EventService manages event records and calendar queries.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, []*Participant, error)
	UpdateEvent(ctx context.Context, id string, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	EventsOnDay(ctx context.Context, day Date) ([]*Event, error)
	EventsInMonth(ctx context.Context, year int, month time.Month) ([]*Event, error)
}

// LifecycleService applies operator status changes.
type LifecycleService interface {
	ChangeStatus(ctx context.Context, eventID string, target EventStatus) (*Event, error)
	// ValidateForConfirmation returns the first rule blocking confirmation, or nil.
	ValidateForConfirmation(ctx context.Context, eventID string) error
	// ConfirmationIssues lists every rule blocking confirmation.
	ConfirmationIssues(ctx context.Context, eventID string) ([]*ValidationError, error)
}

// ParticipationService is the participation ledger.
type ParticipationService interface {
	AddParticipation(ctx context.Context, eventID, personID string, role Role) (*Participation, error)
	// RemoveParticipation removes one role, or every role of the person when role is nil.
	RemoveParticipation(ctx context.Context, eventID, personID string, role *Role) error
	RolesOf(ctx context.Context, eventID string) (RoleCounts, error)
	HasRole(ctx context.Context, eventID, personID string, role Role) (bool, error)
	ParticipantsOf(ctx context.Context, eventID string) ([]*Participant, error)
}

// PersonService manages persons.
type PersonService interface {
	CreatePerson(ctx context.Context, p *Person) error
	UpdatePerson(ctx context.Context, p *Person) error
	GetPerson(ctx context.Context, id string) (*Person, error)
	DeletePerson(ctx context.Context, id string) error
	// SearchPersons returns everyone when text is blank.
	SearchPersons(ctx context.Context, text string) ([]*Person, error)
	EventsOf(ctx context.Context, personID string) ([]*Event, error)
}

// SchedulerService advances event statuses from the calendar.
type SchedulerService interface {
	// RunAutoTransitionSweep returns the events whose status changed.
	RunAutoTransitionSweep(ctx context.Context) ([]*Event, error)
}

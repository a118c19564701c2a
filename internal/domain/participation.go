package domain

import (
	"context"
	"fmt"
	"time"
)

// Role is the capacity in which a person takes part in an event.
type Role string

const (
	RoleOrganizer   Role = "ORGANIZER"
	RoleInstructor  Role = "INSTRUCTOR"
	RoleArtist      Role = "ARTIST"
	RoleCurator     Role = "CURATOR"
	RoleParticipant Role = "PARTICIPANT"
	RolePresenter   Role = "PRESENTER"
)

// ParseRole parses s into a known Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleOrganizer, RoleInstructor, RoleArtist, RoleCurator, RoleParticipant, RolePresenter:
		return r, nil
	}
	return "", NewValidationError("role", fmt.Sprintf("unknown role %q", s))
}

// Participation links a person to an event with a role.
// swagger:model Participation
type Participation struct {
	ID           string    `json:"id" db:"id"`
	EventID      string    `json:"event_id" db:"event_id"`
	PersonID     string    `json:"person_id" db:"person_id"`
	Role         Role      `json:"role" db:"role"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// NewParticipation returns a Participation stamped with registeredAt. ID is set by the repository.
func NewParticipation(eventID, personID string, role Role, registeredAt time.Time) *Participation {
	return &Participation{
		EventID:      eventID,
		PersonID:     personID,
		Role:         role,
		RegisteredAt: registeredAt,
	}
}

// Participant is a participation together with the person it refers to.
// swagger:model Participant
type Participant struct {
	Participation
	Person *Person `json:"person"`
}

// RoleCounts is the multiset of roles held on one event.
type RoleCounts map[Role]int

// CountRoles builds the role multiset of ps.
func CountRoles(ps []*Participation) RoleCounts {
	rc := make(RoleCounts, len(ps))
	for _, p := range ps {
		rc[p.Role]++
	}
	return rc
}

// Count returns how many participations hold role.
func (rc RoleCounts) Count(role Role) int { return rc[role] }

// Total returns the size of the multiset.
func (rc RoleCounts) Total() int {
	n := 0
	for _, c := range rc {
		n += c
	}
	return n
}

// Without returns a copy of rc with the given roles removed once each.
func (rc RoleCounts) Without(roles ...Role) RoleCounts {
	out := make(RoleCounts, len(rc))
	for r, c := range rc {
		out[r] = c
	}
	for _, r := range roles {
		if out[r] > 0 {
			out[r]--
		}
		if out[r] == 0 {
			delete(out, r)
		}
	}
	return out
}

// ParticipationRepository is the persistence gateway for participations.
type ParticipationRepository interface {
	Create(ctx context.Context, p *Participation) error
	// Delete removes the person's participations on the event, only those with role when role is non-nil.
	// It returns how many rows were removed.
	Delete(ctx context.Context, eventID, personID string, role *Role) (int64, error)
	DeleteByEvent(ctx context.Context, eventID string) error
	DeleteByPerson(ctx context.Context, personID string) error
	ListByEvent(ctx context.Context, eventID string) ([]*Participation, error)
	ListByEventAndRole(ctx context.Context, eventID string, role Role) ([]*Participation, error)
	Exists(ctx context.Context, eventID, personID string, role Role) (bool, error)
}

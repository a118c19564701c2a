package domain

import (
	"fmt"
	"strings"
)

// RoleRequirement bounds how many participations with Role an event kind needs.
// Max zero means unbounded.
type RoleRequirement struct {
	Role Role
	Min  int
	Max  int
}

var roleRequirements = map[EventKind][]RoleRequirement{
	KindWorkshop:   {{Role: RoleInstructor, Min: 1}},
	KindConcert:    {{Role: RoleArtist, Min: 1}},
	KindExhibition: {{Role: RoleArtist, Min: 1}, {Role: RoleCurator, Min: 1, Max: 1}},
}

// RoleRequirements returns the role bounds of kind. Screenings and fairs have none.
func RoleRequirements(kind EventKind) []RoleRequirement {
	return roleRequirements[kind]
}

// RoleLimit returns the maximum number of role holders kind accepts, or 0 when unbounded.
func RoleLimit(kind EventKind, role Role) int {
	for _, req := range roleRequirements[kind] {
		if req.Role == role {
			return req.Max
		}
	}
	return 0
}

// IsRequiredRole reports whether kind needs at least one holder of role.
func IsRequiredRole(kind EventKind, role Role) bool {
	for _, req := range roleRequirements[kind] {
		if req.Role == role && req.Min > 0 {
			return true
		}
	}
	return false
}

// CheckTypeRequirements returns every rule e violates for confirmation: base fields,
// kind-specific details and role cardinality against roles. Empty means e may be confirmed.
func CheckTypeRequirements(e *Event, roles RoleCounts) []*ValidationError {
	errs := checkBaseFields(e)
	errs = append(errs, checkDetails(e)...)
	for _, req := range roleRequirements[e.Kind] {
		n := roles.Count(req.Role)
		switch {
		case req.Max > 0 && req.Min == req.Max && n != req.Min:
			errs = append(errs, roleError(e.Kind, req.Role, fmt.Sprintf("requires exactly %d %s, has %d", req.Min, req.Role, n), ErrMissingRole))
		case n < req.Min:
			errs = append(errs, roleError(e.Kind, req.Role, fmt.Sprintf("requires at least %d %s", req.Min, req.Role), ErrMissingRole))
		case req.Max > 0 && n > req.Max:
			errs = append(errs, roleError(e.Kind, req.Role, fmt.Sprintf("accepts at most %d %s, has %d", req.Max, req.Role, n), ErrRoleLimit))
		}
	}
	return errs
}

// ValidateTypeRequirements returns the first rule reported by CheckTypeRequirements, or nil.
func ValidateTypeRequirements(e *Event, roles RoleCounts) error {
	if errs := CheckTypeRequirements(e, roles); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func roleError(kind EventKind, role Role, reason string, cause error) *ValidationError {
	return &ValidationError{
		Field:  "roles." + strings.ToLower(string(role)),
		Reason: strings.ToLower(string(kind)) + " " + reason,
		Err:    cause,
	}
}

// checkDetails validates the kind-specific payload of e.
func checkDetails(e *Event) []*ValidationError {
	var errs []*ValidationError
	if extra := e.detailsSetOtherThan(e.Kind); extra != "" {
		errs = append(errs, NewValidationError(extra, fmt.Sprintf("not allowed for %s events", e.Kind)))
	}
	switch e.Kind {
	case KindScreening:
		d := e.Screening
		if d == nil {
			return append(errs, NewValidationError("screening", "details are required"))
		}
		if d.ProjectionOrder < 1 {
			errs = append(errs, NewValidationError("screening.projection_order", "must be at least 1"))
		}
		if strings.TrimSpace(d.Title) == "" {
			errs = append(errs, NewValidationError("screening.title", "must not be empty"))
		}
	case KindWorkshop:
		d := e.Workshop
		if d == nil {
			return append(errs, NewValidationError("workshop", "details are required"))
		}
		if d.Capacity <= 0 {
			errs = append(errs, NewValidationError("workshop.capacity", "must be positive"))
		}
		if !d.Modality.Valid() {
			errs = append(errs, NewValidationError("workshop.modality", fmt.Sprintf("unknown modality %q", d.Modality)))
		}
	case KindConcert:
		d := e.Concert
		if d == nil {
			return append(errs, NewValidationError("concert", "details are required"))
		}
		if !d.TicketType.Valid() {
			errs = append(errs, NewValidationError("concert.ticket_type", fmt.Sprintf("unknown ticket type %q", d.TicketType)))
		}
	case KindExhibition:
		d := e.Exhibition
		if d == nil {
			return append(errs, NewValidationError("exhibition", "details are required"))
		}
		if !d.ArtType.Valid() {
			errs = append(errs, NewValidationError("exhibition.art_type", fmt.Sprintf("unknown art type %q", d.ArtType)))
		}
	case KindFair:
		d := e.Fair
		if d == nil {
			return append(errs, NewValidationError("fair", "details are required"))
		}
		if d.StandCount <= 0 {
			errs = append(errs, NewValidationError("fair.stand_count", "must be positive"))
		} else if d.StandCount > MaxFairStands {
			errs = append(errs, NewValidationError("fair.stand_count", fmt.Sprintf("exceeds venue capacity of %d stands", MaxFairStands)))
		}
		if !d.LocationType.Valid() {
			errs = append(errs, NewValidationError("fair.location_type", fmt.Sprintf("unknown location type %q", d.LocationType)))
		}
	default:
		errs = append(errs, NewValidationError("kind", fmt.Sprintf("unknown event kind %q", e.Kind)))
	}
	return errs
}

// detailsSetOtherThan returns the JSON name of a details payload that does not belong to kind.
func (e *Event) detailsSetOtherThan(kind EventKind) string {
	switch {
	case e.Screening != nil && kind != KindScreening:
		return "screening"
	case e.Workshop != nil && kind != KindWorkshop:
		return "workshop"
	case e.Concert != nil && kind != KindConcert:
		return "concert"
	case e.Exhibition != nil && kind != KindExhibition:
		return "exhibition"
	case e.Fair != nil && kind != KindFair:
		return "fair"
	}
	return ""
}

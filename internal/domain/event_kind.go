package domain

import "fmt"

// EventKind tags the concrete variant of an Event.
type EventKind string

const (
	KindScreening  EventKind = "SCREENING"
	KindWorkshop   EventKind = "WORKSHOP"
	KindConcert    EventKind = "CONCERT"
	KindExhibition EventKind = "EXHIBITION"
	KindFair       EventKind = "FAIR"
)

// ParseEventKind parses s into a known EventKind.
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(s)
	switch k {
	case KindScreening, KindWorkshop, KindConcert, KindExhibition, KindFair:
		return k, nil
	}
	return "", NewValidationError("kind", fmt.Sprintf("unknown event kind %q", s))
}

// Modality is how a workshop is delivered.
type Modality string

const (
	ModalityInPerson Modality = "IN_PERSON"
	ModalityVirtual  Modality = "VIRTUAL"
	ModalityHybrid   Modality = "HYBRID"
)

func (m Modality) Valid() bool {
	return m == ModalityInPerson || m == ModalityVirtual || m == ModalityHybrid
}

// TicketType is the admission model of a concert.
type TicketType string

const (
	TicketFree TicketType = "FREE"
	TicketPaid TicketType = "PAID"
)

func (t TicketType) Valid() bool { return t == TicketFree || t == TicketPaid }

// ArtType is the discipline shown at an exhibition.
type ArtType string

const (
	ArtPainting     ArtType = "PAINTING"
	ArtSculpture    ArtType = "SCULPTURE"
	ArtPhotography  ArtType = "PHOTOGRAPHY"
	ArtDigital      ArtType = "DIGITAL"
	ArtInstallation ArtType = "INSTALLATION"
	ArtMixedMedia   ArtType = "MIXED_MEDIA"
)

func (a ArtType) Valid() bool {
	switch a {
	case ArtPainting, ArtSculpture, ArtPhotography, ArtDigital, ArtInstallation, ArtMixedMedia:
		return true
	}
	return false
}

// LocationType is where a fair takes place.
type LocationType string

const (
	LocationOutdoor LocationType = "OUTDOOR"
	LocationCovered LocationType = "COVERED"
)

func (l LocationType) Valid() bool { return l == LocationOutdoor || l == LocationCovered }

// MaxFairStands is the venue capacity for fair stands.
const MaxFairStands = 100

// ScreeningDetails holds the fields of a film screening.
// swagger:model ScreeningDetails
type ScreeningDetails struct {
	ProjectionOrder int    `json:"projection_order"`
	Title           string `json:"title"`
}

// WorkshopDetails holds the fields of a workshop.
// swagger:model WorkshopDetails
type WorkshopDetails struct {
	Capacity int      `json:"capacity"`
	Modality Modality `json:"modality"`
}

// ConcertDetails holds the fields of a concert.
// swagger:model ConcertDetails
type ConcertDetails struct {
	TicketType TicketType `json:"ticket_type"`
}

// ExhibitionDetails holds the fields of an exhibition.
// swagger:model ExhibitionDetails
type ExhibitionDetails struct {
	ArtType ArtType `json:"art_type"`
}

// FairDetails holds the fields of a fair.
// swagger:model FairDetails
type FairDetails struct {
	StandCount   int          `json:"stand_count"`
	LocationType LocationType `json:"location_type"`
}

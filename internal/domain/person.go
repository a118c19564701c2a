package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var (
	personNameRegex = regexp.MustCompile(`^[\p{L} ]+$`)
	nationalIDRegex = regexp.MustCompile(`^[0-9]{7,8}$`)
	emailRegex      = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)
)

// Person is someone who can take part in events.
// swagger:model Person
type Person struct {
	ID         string    `json:"id" db:"id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	NationalID string    `json:"national_id" db:"national_id"`
	Phone      string    `json:"phone" db:"phone"`
	Email      string    `json:"email" db:"email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NewPerson validates the fields and returns a Person. ID is set by the repository on create.
// National ID uniqueness is checked by the person service, not here.
func NewPerson(firstName, lastName, nationalID, phone, email string, now time.Time) (*Person, error) {
	p := &Person{
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		NationalID: strings.TrimSpace(nationalID),
		Phone:      strings.TrimSpace(phone),
		Email:      strings.TrimSpace(email),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// FullName returns "first last".
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Validate returns the first field rule p violates.
func (p *Person) Validate() error {
	switch {
	case p.FirstName == "":
		return NewValidationError("first_name", "must not be empty")
	case !personNameRegex.MatchString(p.FirstName):
		return NewValidationError("first_name", "must contain letters only")
	case p.LastName == "":
		return NewValidationError("last_name", "must not be empty")
	case !personNameRegex.MatchString(p.LastName):
		return NewValidationError("last_name", "must contain letters only")
	case p.NationalID == "":
		return NewValidationError("national_id", "must not be empty")
	case !nationalIDRegex.MatchString(p.NationalID):
		return NewValidationError("national_id", "must be 7 or 8 digits")
	case p.Email == "":
		return NewValidationError("email", "must not be empty")
	case !emailRegex.MatchString(p.Email):
		return NewValidationError("email", "invalid format")
	}
	return nil
}

// DuplicateNationalIDError returns the validation error for a national ID held by another person.
func DuplicateNationalIDError(nationalID string) *ValidationError {
	return &ValidationError{
		Field:  "national_id",
		Reason: "national id " + nationalID + " is already registered",
		Err:    ErrDuplicateNationalID,
	}
}

// PersonRepository is the persistence gateway for persons.
type PersonRepository interface {
	Create(ctx context.Context, p *Person) error
	Update(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, id string) (*Person, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Person, error)
	// Search matches text case-insensitively against first and last names.
	Search(ctx context.Context, text string) ([]*Person, error)
	// ExistsNationalID reports whether a person other than excludeID holds nationalID.
	ExistsNationalID(ctx context.Context, nationalID, excludeID string) (bool, error)
}

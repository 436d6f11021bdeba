package person

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is a third-party contact on a case: a landlord or an agent. Rows are
// contact snapshots taken at submission time and are immutable after
// creation; the same landlord appearing in a later submission gets a fresh
// row.
type Person struct {
	id          uuid.UUID
	fullName    string
	email       string
	address     string
	phoneNumber string
	createdAt   time.Time
	updatedAt   time.Time
}

func New(fullName, email, address, phoneNumber string) Person {
	return Person{
		fullName:    strings.TrimSpace(fullName),
		email:       strings.TrimSpace(email),
		address:     strings.TrimSpace(address),
		phoneNumber: strings.TrimSpace(phoneNumber),
	}
}

func Hydrate(
	id uuid.UUID,
	fullName string,
	email string,
	address string,
	phoneNumber string,
	createdAt time.Time,
	updatedAt time.Time,
) Person {
	return Person{
		id:          id,
		fullName:    fullName,
		email:       email,
		address:     address,
		phoneNumber: phoneNumber,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p Person) ID() uuid.UUID        { return p.id }
func (p Person) FullName() string     { return p.fullName }
func (p Person) Email() string        { return p.email }
func (p Person) Address() string      { return p.address }
func (p Person) PhoneNumber() string  { return p.phoneNumber }
func (p Person) CreatedAt() time.Time { return p.createdAt }
func (p Person) UpdatedAt() time.Time { return p.updatedAt }
func (p Person) IsZero() bool         { return p.id == uuid.Nil && p.fullName == "" }

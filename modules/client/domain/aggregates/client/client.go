package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is the primary party to a case: the submitter of an intake form.
// One client accumulates tenancies and issues over time; identity is the
// lower-cased email address.
type Client struct {
	id          uuid.UUID
	firstName   string
	lastName    string
	email       string
	phoneNumber string
	dateOfBirth time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func New(firstName, lastName, email, phoneNumber string, dateOfBirth time.Time) Client {
	return Client{
		firstName:   strings.TrimSpace(firstName),
		lastName:    strings.TrimSpace(lastName),
		email:       NormalizeEmail(email),
		phoneNumber: strings.TrimSpace(phoneNumber),
		dateOfBirth: dateOfBirth,
	}
}

func Hydrate(
	id uuid.UUID,
	firstName string,
	lastName string,
	email string,
	phoneNumber string,
	dateOfBirth time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Client {
	return Client{
		id:          id,
		firstName:   firstName,
		lastName:    lastName,
		email:       NormalizeEmail(email),
		phoneNumber: phoneNumber,
		dateOfBirth: dateOfBirth,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c Client) ID() uuid.UUID          { return c.id }
func (c Client) FirstName() string      { return c.firstName }
func (c Client) LastName() string       { return c.lastName }
func (c Client) Email() string          { return c.email }
func (c Client) PhoneNumber() string    { return c.phoneNumber }
func (c Client) DateOfBirth() time.Time { return c.dateOfBirth }
func (c Client) CreatedAt() time.Time   { return c.createdAt }
func (c Client) UpdatedAt() time.Time   { return c.updatedAt }
func (c Client) IsZero() bool           { return c.id == uuid.Nil && c.email == "" }

func (c Client) FullName() string {
	return strings.TrimSpace(c.firstName + " " + c.lastName)
}

// NormalizeEmail lower-cases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

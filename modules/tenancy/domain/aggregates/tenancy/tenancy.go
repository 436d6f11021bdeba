package tenancy

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tenancy is a residence tied to a client, optionally linked to landlord and
// agent person records. Tenancies are not deduplicated across submissions;
// a caller-side exact-address check decides reuse.
type Tenancy struct {
	id         uuid.UUID
	clientID   uuid.UUID
	address    string
	suburb     string
	postcode   string
	startDate  time.Time
	isOnLease  bool
	landlordID uuid.UUID
	agentID    uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func New(
	clientID uuid.UUID,
	address string,
	suburb string,
	postcode string,
	startDate time.Time,
	isOnLease bool,
	landlordID uuid.UUID,
	agentID uuid.UUID,
) Tenancy {
	return Tenancy{
		clientID:   clientID,
		address:    strings.TrimSpace(address),
		suburb:     strings.TrimSpace(suburb),
		postcode:   strings.TrimSpace(postcode),
		startDate:  startDate,
		isOnLease:  isOnLease,
		landlordID: landlordID,
		agentID:    agentID,
	}
}

func Hydrate(
	id uuid.UUID,
	clientID uuid.UUID,
	address string,
	suburb string,
	postcode string,
	startDate time.Time,
	isOnLease bool,
	landlordID uuid.UUID,
	agentID uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Tenancy {
	return Tenancy{
		id:         id,
		clientID:   clientID,
		address:    address,
		suburb:     suburb,
		postcode:   postcode,
		startDate:  startDate,
		isOnLease:  isOnLease,
		landlordID: landlordID,
		agentID:    agentID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (t Tenancy) ID() uuid.UUID         { return t.id }
func (t Tenancy) ClientID() uuid.UUID   { return t.clientID }
func (t Tenancy) Address() string       { return t.address }
func (t Tenancy) Suburb() string        { return t.suburb }
func (t Tenancy) Postcode() string      { return t.postcode }
func (t Tenancy) StartDate() time.Time  { return t.startDate }
func (t Tenancy) IsOnLease() bool       { return t.isOnLease }
func (t Tenancy) LandlordID() uuid.UUID { return t.landlordID }
func (t Tenancy) AgentID() uuid.UUID    { return t.agentID }
func (t Tenancy) CreatedAt() time.Time  { return t.createdAt }
func (t Tenancy) UpdatedAt() time.Time  { return t.updatedAt }
func (t Tenancy) IsZero() bool          { return t.id == uuid.Nil && t.address == "" }

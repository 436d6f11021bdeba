package issue

import (
	"time"

	"github.com/google/uuid"
)

// Issue is one legal matter for a client. The fileref is allocated exactly
// once, at creation, and never changes afterwards.
type Issue struct {
	id        uuid.UUID
	topic     Topic
	fileref   string
	clientID  uuid.UUID
	tenancyID uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(topic Topic, fileref string, clientID, tenancyID uuid.UUID) Issue {
	return Issue{
		topic:     topic,
		fileref:   fileref,
		clientID:  clientID,
		tenancyID: tenancyID,
	}
}

func Hydrate(
	id uuid.UUID,
	topic Topic,
	fileref string,
	clientID uuid.UUID,
	tenancyID uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Issue {
	return Issue{
		id:        id,
		topic:     topic,
		fileref:   fileref,
		clientID:  clientID,
		tenancyID: tenancyID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (i Issue) ID() uuid.UUID        { return i.id }
func (i Issue) Topic() Topic         { return i.topic }
func (i Issue) Fileref() string      { return i.fileref }
func (i Issue) ClientID() uuid.UUID  { return i.clientID }
func (i Issue) TenancyID() uuid.UUID { return i.tenancyID }
func (i Issue) CreatedAt() time.Time { return i.createdAt }
func (i Issue) UpdatedAt() time.Time { return i.updatedAt }
func (i Issue) IsZero() bool         { return i.id == uuid.Nil && i.fileref == "" }

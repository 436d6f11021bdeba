package person

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

var ErrNotFound = serrors.NewError("PERSON_NOT_FOUND", "person not found", "")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	Create(ctx context.Context, p Person) (Person, error)
}

package tenancy

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

var (
	ErrNotFound      = serrors.NewError("TENANCY_NOT_FOUND", "tenancy not found", "")
	ErrClientMissing = serrors.NewError("TENANCY_CLIENT_MISSING", "referenced client does not exist", "ClientID")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Tenancy, error)
	// GetByClientAndAddress does an exact-address match for a client,
	// used by callers to decide whether to reuse a tenancy.
	GetByClientAndAddress(ctx context.Context, clientID uuid.UUID, address string) (Tenancy, error)
	Create(ctx context.Context, t Tenancy) (Tenancy, error)
}

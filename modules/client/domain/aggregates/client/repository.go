package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

var (
	ErrNotFound   = serrors.NewError("CLIENT_NOT_FOUND", "client not found", "")
	ErrEmailTaken = serrors.NewError("CLIENT_EMAIL_TAKEN", "a client with this email already exists", "Email")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	GetByEmail(ctx context.Context, email string) (Client, error)
	Create(ctx context.Context, c Client) (Client, error)
}

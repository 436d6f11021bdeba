package issue

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

var (
	ErrNotFound      = serrors.NewError("ISSUE_NOT_FOUND", "issue not found", "")
	ErrFilerefTaken  = serrors.NewError("ISSUE_FILEREF_TAKEN", "fileref already allocated", "Fileref")
	ErrClientMissing = serrors.NewError("ISSUE_CLIENT_MISSING", "referenced client does not exist", "ClientID")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Issue, error)
	GetByFileref(ctx context.Context, fileref string) (Issue, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]Issue, error)
	Create(ctx context.Context, i Issue) (Issue, error)
}

// Allocator hands out fileref numbers for a prefix group. Next must be
// atomic under concurrent allocation: two callers never observe the same
// number, and numbers increase monotonically per group.
type Allocator interface {
	Next(ctx context.Context, prefix string) (int64, error)
	// Resync raises the group's counter to the scan-max of existing
	// filerefs. Used to recover when the counter lags behind rows that
	// were created before the counter existed.
	Resync(ctx context.Context, prefix string) error
}

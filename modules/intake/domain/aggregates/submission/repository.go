package submission

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

var (
	ErrNotFound         = serrors.NewError("SUBMISSION_NOT_FOUND", "submission not found", "")
	ErrAlreadyProcessed = serrors.NewError("SUBMISSION_ALREADY_PROCESSED", "submission has already been processed", "")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Submission, error)
	// FindPending returns the oldest pending submissions, up to limit.
	FindPending(ctx context.Context, limit int) ([]Submission, error)
	Create(ctx context.Context, s Submission) (Submission, error)
	Update(ctx context.Context, s Submission) (Submission, error)
}

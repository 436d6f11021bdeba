package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/modules/client/domain/aggregates/client"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

type ClientService struct {
	repo client.Repository
}

func NewClientService(repo client.Repository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) GetByEmail(ctx context.Context, email string) (client.Client, error) {
	return s.repo.GetByEmail(ctx, email)
}

// GetOrCreateByEmail returns the existing client matching the submitter's
// email (case-insensitive) or creates one from the DTO. A client is created
// once per unique submitter; repeat submissions reuse the same row.
func (s *ClientService) GetOrCreateByEmail(ctx context.Context, dto *client.CreateDTO) (client.Client, error) {
	if dto == nil {
		return client.Client{}, errors.New("missing dto")
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		return client.Client{}, fieldErrs
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		existing, err := s.repo.GetByEmail(txCtx, dto.Email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, client.ErrNotFound) {
			return client.Client{}, err
		}

		entity := client.New(dto.FirstName, dto.LastName, dto.Email, dto.PhoneNumber, dto.DateOfBirth)
		created, err := s.repo.Create(txCtx, entity)
		if errors.Is(err, client.ErrEmailTaken) {
			// Lost a create race with a concurrent submission; the row
			// exists now.
			return s.repo.GetByEmail(txCtx, dto.Email)
		}
		return created, err
	})
}

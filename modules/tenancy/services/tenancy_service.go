package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/person"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/tenancy"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/reconcile"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

type TenancyService struct {
	tenancies tenancy.Repository
	persons   person.Repository
}

func NewTenancyService(tenancies tenancy.Repository, persons person.Repository) *TenancyService {
	return &TenancyService{tenancies: tenancies, persons: persons}
}

func (s *TenancyService) GetByID(ctx context.Context, id uuid.UUID) (tenancy.Tenancy, error) {
	return s.tenancies.GetByID(ctx, id)
}

func (s *TenancyService) GetByClientAndAddress(ctx context.Context, clientID uuid.UUID, address string) (tenancy.Tenancy, error) {
	return s.tenancies.GetByClientAndAddress(ctx, clientID, address)
}

// Reconcile turns a submission's tenancy block into persisted records: a
// Person per resolved contact role and a fresh Tenancy linked to the client.
// Everything runs in one transaction so a failed tenancy insert never leaves
// orphaned persons behind. Persons are never deduplicated against prior
// submissions.
func (s *TenancyService) Reconcile(ctx context.Context, clientID uuid.UUID, dto *tenancy.ReconcileDTO) (tenancy.Tenancy, error) {
	if dto == nil {
		return tenancy.Tenancy{}, errors.New("missing dto")
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		return tenancy.Tenancy{}, fieldErrs
	}

	landlordSpec, agentSpec := reconcile.ResolveContacts(dto.AgentIsPropertyManager, dto.Landlord, dto.Agent)

	return composables.InTxResult(ctx, func(txCtx context.Context) (tenancy.Tenancy, error) {
		landlordID, err := s.createContact(txCtx, landlordSpec)
		if err != nil {
			return tenancy.Tenancy{}, err
		}
		agentID, err := s.createContact(txCtx, agentSpec)
		if err != nil {
			return tenancy.Tenancy{}, err
		}

		entity := tenancy.New(
			clientID,
			dto.Address,
			dto.Suburb,
			dto.Postcode,
			dto.StartDate,
			dto.IsOnLease,
			landlordID,
			agentID,
		)
		return s.tenancies.Create(txCtx, entity)
	})
}

func (s *TenancyService) createContact(ctx context.Context, spec *reconcile.ContactFields) (uuid.UUID, error) {
	if spec == nil {
		return uuid.Nil, nil
	}
	created, err := s.persons.Create(ctx, person.New(spec.FullName, spec.Email, spec.Address, spec.PhoneNumber))
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}

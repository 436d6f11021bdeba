package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/tenancy"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

const (
	selectTenancySQL = `
		SELECT id, client_id, address, suburb, postcode, start_date, is_on_lease,
		       landlord_id, agent_id, created_at, updated_at
		FROM tenancies`

	insertTenancySQL = `
		INSERT INTO tenancies (client_id, address, suburb, postcode, start_date, is_on_lease, landlord_id, agent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, client_id, address, suburb, postcode, start_date, is_on_lease,
		          landlord_id, agent_id, created_at, updated_at`
)

type TenancyRepository struct{}

func NewTenancyRepository() tenancy.Repository {
	return &TenancyRepository{}
}

func (r *TenancyRepository) GetByID(ctx context.Context, id uuid.UUID) (tenancy.Tenancy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tenancy.Tenancy{}, err
	}

	row := tx.QueryRow(ctx, selectTenancySQL+` WHERE id = $1`, pgUUID(id))
	entity, err := scanTenancy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tenancy.Tenancy{}, tenancy.ErrNotFound
		}
		return tenancy.Tenancy{}, gerrors.Wrap(err, "get tenancy by id")
	}
	return entity, nil
}

func (r *TenancyRepository) GetByClientAndAddress(ctx context.Context, clientID uuid.UUID, address string) (tenancy.Tenancy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tenancy.Tenancy{}, err
	}

	row := tx.QueryRow(
		ctx,
		selectTenancySQL+` WHERE client_id = $1 AND address = $2 ORDER BY created_at DESC LIMIT 1`,
		pgUUID(clientID),
		address,
	)
	entity, err := scanTenancy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tenancy.Tenancy{}, tenancy.ErrNotFound
		}
		return tenancy.Tenancy{}, gerrors.Wrap(err, "get tenancy by client and address")
	}
	return entity, nil
}

func (r *TenancyRepository) Create(ctx context.Context, t tenancy.Tenancy) (tenancy.Tenancy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tenancy.Tenancy{}, err
	}

	row := tx.QueryRow(ctx, insertTenancySQL,
		pgUUID(t.ClientID()),
		t.Address(),
		t.Suburb(),
		t.Postcode(),
		pgDate(t.StartDate()),
		t.IsOnLease(),
		pgUUIDRef(t.LandlordID()),
		pgUUIDRef(t.AgentID()),
	)
	entity, err := scanTenancy(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the referenced client row does not exist. Fatal; callers
		// must create the client first.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return tenancy.Tenancy{}, tenancy.ErrClientMissing
		}
		return tenancy.Tenancy{}, gerrors.Wrap(err, "create tenancy")
	}
	return entity, nil
}

func scanTenancy(row pgx.Row) (tenancy.Tenancy, error) {
	var (
		id         pgtype.UUID
		clientID   pgtype.UUID
		address    string
		suburb     string
		postcode   string
		startDate  pgtype.Date
		isOnLease  bool
		landlordID pgtype.UUID
		agentID    pgtype.UUID
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &clientID, &address, &suburb, &postcode, &startDate, &isOnLease,
		&landlordID, &agentID, &createdAt, &updatedAt,
	)
	if err != nil {
		return tenancy.Tenancy{}, err
	}
	return tenancy.Hydrate(
		asUUID(id),
		asUUID(clientID),
		address,
		suburb,
		postcode,
		asDate(startDate),
		isOnLease,
		asUUID(landlordID),
		asUUID(agentID),
		asTime(createdAt),
		asTime(updatedAt),
	), nil
}

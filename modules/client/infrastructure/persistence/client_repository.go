package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tenancyjustice/clerk/modules/client/domain/aggregates/client"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

const (
	selectClientSQL = `
		SELECT id, first_name, last_name, email, phone_number, date_of_birth, created_at, updated_at
		FROM clients`

	// DO NOTHING on a duplicate email instead of raising a unique
	// violation: a statement error would abort the surrounding transaction
	// and callers could no longer re-read the winning row inside it.
	insertClientSQL = `
		INSERT INTO clients (first_name, last_name, email, phone_number, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lower(email)) DO NOTHING
		RETURNING id, first_name, last_name, email, phone_number, date_of_birth, created_at, updated_at`
)

type ClientRepository struct{}

func NewClientRepository() client.Repository {
	return &ClientRepository{}
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	row := tx.QueryRow(ctx, selectClientSQL+` WHERE id = $1`, pgUUID(id))
	entity, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, gerrors.Wrap(err, "get client by id")
	}
	return entity, nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	row := tx.QueryRow(ctx, selectClientSQL+` WHERE email = $1`, client.NormalizeEmail(email))
	entity, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}
		return client.Client{}, gerrors.Wrap(err, "get client by email")
	}
	return entity, nil
}

func (r *ClientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return client.Client{}, err
	}

	row := tx.QueryRow(ctx, insertClientSQL,
		c.FirstName(),
		c.LastName(),
		c.Email(),
		c.PhoneNumber(),
		pgDate(c.DateOfBirth()),
	)
	entity, err := scanClient(row)
	if err != nil {
		// the conflict branch returns no row
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrEmailTaken
		}
		return client.Client{}, gerrors.Wrap(err, "create client")
	}
	return entity, nil
}

func scanClient(row pgx.Row) (client.Client, error) {
	var (
		id          pgtype.UUID
		firstName   string
		lastName    string
		email       string
		phoneNumber string
		dateOfBirth pgtype.Date
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &firstName, &lastName, &email, &phoneNumber, &dateOfBirth, &createdAt, &updatedAt); err != nil {
		return client.Client{}, err
	}
	return client.Hydrate(
		asUUID(id),
		firstName,
		lastName,
		email,
		phoneNumber,
		asDate(dateOfBirth),
		asTime(createdAt),
		asTime(updatedAt),
	), nil
}

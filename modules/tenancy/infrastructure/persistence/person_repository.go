package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/person"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

const (
	selectPersonSQL = `
		SELECT id, full_name, email, address, phone_number, created_at, updated_at
		FROM persons`

	insertPersonSQL = `
		INSERT INTO persons (full_name, email, address, phone_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, email, address, phone_number, created_at, updated_at`
)

type PersonRepository struct{}

func NewPersonRepository() person.Repository {
	return &PersonRepository{}
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx, selectPersonSQL+` WHERE id = $1`, pgUUID(id))
	entity, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, gerrors.Wrap(err, "get person by id")
	}
	return entity, nil
}

func (r *PersonRepository) Create(ctx context.Context, p person.Person) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx, insertPersonSQL,
		p.FullName(),
		p.Email(),
		p.Address(),
		p.PhoneNumber(),
	)
	entity, err := scanPerson(row)
	if err != nil {
		return person.Person{}, gerrors.Wrap(err, "create person")
	}
	return entity, nil
}

func scanPerson(row pgx.Row) (person.Person, error) {
	var (
		id          pgtype.UUID
		fullName    string
		email       string
		address     string
		phoneNumber string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &fullName, &email, &address, &phoneNumber, &createdAt, &updatedAt); err != nil {
		return person.Person{}, err
	}
	return person.Hydrate(
		asUUID(id),
		fullName,
		email,
		address,
		phoneNumber,
		asTime(createdAt),
		asTime(updatedAt),
	), nil
}

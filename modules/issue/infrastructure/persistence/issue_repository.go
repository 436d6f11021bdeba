package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tenancyjustice/clerk/modules/issue/domain/aggregates/issue"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

const (
	selectIssueSQL = `
		SELECT id, topic, fileref, client_id, tenancy_id, created_at, updated_at
		FROM issues`

	insertIssueSQL = `
		INSERT INTO issues (topic, fileref, client_id, tenancy_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, topic, fileref, client_id, tenancy_id, created_at, updated_at`
)

type IssueRepository struct{}

func NewIssueRepository() issue.Repository {
	return &IssueRepository{}
}

func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (issue.Issue, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return issue.Issue{}, err
	}

	row := tx.QueryRow(ctx, selectIssueSQL+` WHERE id = $1`, pgUUID(id))
	entity, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issue.Issue{}, issue.ErrNotFound
		}
		return issue.Issue{}, gerrors.Wrap(err, "get issue by id")
	}
	return entity, nil
}

func (r *IssueRepository) GetByFileref(ctx context.Context, fileref string) (issue.Issue, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return issue.Issue{}, err
	}

	row := tx.QueryRow(ctx, selectIssueSQL+` WHERE fileref = $1`, fileref)
	entity, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issue.Issue{}, issue.ErrNotFound
		}
		return issue.Issue{}, gerrors.Wrap(err, "get issue by fileref")
	}
	return entity, nil
}

func (r *IssueRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]issue.Issue, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, selectIssueSQL+` WHERE client_id = $1 ORDER BY created_at`, pgUUID(clientID))
	if err != nil {
		return nil, gerrors.Wrap(err, "list issues by client")
	}
	defer rows.Close()

	var out []issue.Issue
	for rows.Next() {
		entity, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *IssueRepository) Create(ctx context.Context, i issue.Issue) (issue.Issue, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return issue.Issue{}, err
	}

	row := tx.QueryRow(ctx, insertIssueSQL,
		string(i.Topic()),
		i.Fileref(),
		pgUUID(i.ClientID()),
		pgUUIDRef(i.TenancyID()),
	)
	entity, err := scanIssue(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return issue.Issue{}, issue.ErrFilerefTaken
			case "23503":
				return issue.Issue{}, issue.ErrClientMissing
			}
		}
		return issue.Issue{}, gerrors.Wrap(err, "create issue")
	}
	return entity, nil
}

func scanIssue(row pgx.Row) (issue.Issue, error) {
	var (
		id        pgtype.UUID
		topic     string
		fileref   string
		clientID  pgtype.UUID
		tenancyID pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &topic, &fileref, &clientID, &tenancyID, &createdAt, &updatedAt); err != nil {
		return issue.Issue{}, err
	}
	return issue.Hydrate(
		asUUID(id),
		issue.Topic(topic),
		fileref,
		asUUID(clientID),
		asUUID(tenancyID),
		asTime(createdAt),
		asTime(updatedAt),
	), nil
}

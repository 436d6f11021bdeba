package persistence

import (
	"context"
	"encoding/json"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tenancyjustice/clerk/modules/intake/domain/aggregates/submission"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

const (
	selectSubmissionSQL = `
		SELECT id, topic, answers, status, failure_note, issue_id, created_at, updated_at
		FROM submissions`

	insertSubmissionSQL = `
		INSERT INTO submissions (topic, answers, status)
		VALUES ($1, $2, $3)
		RETURNING id, topic, answers, status, failure_note, issue_id, created_at, updated_at`

	updateSubmissionSQL = `
		UPDATE submissions
		SET status = $2, failure_note = $3, issue_id = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, topic, answers, status, failure_note, issue_id, created_at, updated_at`
)

type SubmissionRepository struct{}

func NewSubmissionRepository() submission.Repository {
	return &SubmissionRepository{}
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (submission.Submission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return submission.Submission{}, err
	}

	row := tx.QueryRow(ctx, selectSubmissionSQL+` WHERE id = $1`, pgUUID(id))
	entity, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, gerrors.Wrap(err, "get submission by id")
	}
	return entity, nil
}

func (r *SubmissionRepository) FindPending(ctx context.Context, limit int) ([]submission.Submission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := tx.Query(
		ctx,
		selectSubmissionSQL+` WHERE status = $1 ORDER BY created_at LIMIT $2`,
		string(submission.StatusPending),
		limit,
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "find pending submissions")
	}
	defer rows.Close()

	var out []submission.Submission
	for rows.Next() {
		entity, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *SubmissionRepository) Create(ctx context.Context, s submission.Submission) (submission.Submission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return submission.Submission{}, err
	}

	answers, err := json.Marshal(s.Answers())
	if err != nil {
		return submission.Submission{}, gerrors.Wrap(err, "marshal answers")
	}

	row := tx.QueryRow(ctx, insertSubmissionSQL, s.Topic(), answers, string(s.Status()))
	entity, err := scanSubmission(row)
	if err != nil {
		return submission.Submission{}, gerrors.Wrap(err, "create submission")
	}
	return entity, nil
}

func (r *SubmissionRepository) Update(ctx context.Context, s submission.Submission) (submission.Submission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return submission.Submission{}, err
	}

	row := tx.QueryRow(ctx, updateSubmissionSQL,
		pgUUID(s.ID()),
		string(s.Status()),
		s.FailureNote(),
		pgUUIDRef(s.IssueID()),
	)
	entity, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, gerrors.Wrap(err, "update submission")
	}
	return entity, nil
}

func scanSubmission(row pgx.Row) (submission.Submission, error) {
	var (
		id          pgtype.UUID
		topic       string
		answersRaw  []byte
		status      string
		failureNote string
		issueID     pgtype.UUID
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &topic, &answersRaw, &status, &failureNote, &issueID, &createdAt, &updatedAt); err != nil {
		return submission.Submission{}, err
	}

	answers := submission.Answers{}
	if len(answersRaw) > 0 {
		if err := json.Unmarshal(answersRaw, &answers); err != nil {
			return submission.Submission{}, gerrors.Wrap(err, "unmarshal answers")
		}
	}

	return submission.Hydrate(
		asUUID(id),
		topic,
		answers,
		submission.Status(status),
		failureNote,
		asUUID(issueID),
		asTime(createdAt),
		asTime(updatedAt),
	), nil
}

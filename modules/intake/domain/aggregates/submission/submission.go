package submission

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
)

// Submission is a raw intake form: the answers as submitted, before
// reconciliation into client/tenancy/issue records. Failed submissions keep
// their answers and may be reprocessed; nothing partial is ever persisted by
// a failed run.
type Submission struct {
	id          uuid.UUID
	topic       string
	answers     Answers
	status      Status
	failureNote string
	issueID     uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func New(topic string, answers Answers) Submission {
	if answers == nil {
		answers = Answers{}
	}
	return Submission{
		topic:   strings.TrimSpace(topic),
		answers: answers,
		status:  StatusPending,
	}
}

func Hydrate(
	id uuid.UUID,
	topic string,
	answers Answers,
	status Status,
	failureNote string,
	issueID uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Submission {
	if answers == nil {
		answers = Answers{}
	}
	return Submission{
		id:          id,
		topic:       topic,
		answers:     answers,
		status:      status,
		failureNote: failureNote,
		issueID:     issueID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s Submission) ID() uuid.UUID        { return s.id }
func (s Submission) Topic() string        { return s.topic }
func (s Submission) Answers() Answers     { return s.answers }
func (s Submission) Status() Status       { return s.status }
func (s Submission) FailureNote() string  { return s.failureNote }
func (s Submission) IssueID() uuid.UUID   { return s.issueID }
func (s Submission) CreatedAt() time.Time { return s.createdAt }
func (s Submission) UpdatedAt() time.Time { return s.updatedAt }
func (s Submission) IsZero() bool         { return s.id == uuid.Nil && s.status == "" }

func (s Submission) MarkProcessed(issueID uuid.UUID) Submission {
	s.status = StatusProcessed
	s.failureNote = ""
	s.issueID = issueID
	return s
}

func (s Submission) MarkFailed(note string) Submission {
	s.status = StatusFailed
	s.failureNote = note
	return s
}

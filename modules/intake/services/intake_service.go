package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	clientservices "github.com/tenancyjustice/clerk/modules/client/services"
	"github.com/tenancyjustice/clerk/modules/intake/domain/aggregates/submission"
	"github.com/tenancyjustice/clerk/modules/issue/domain/aggregates/issue"
	issueservices "github.com/tenancyjustice/clerk/modules/issue/services"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/tenancy"
	tenancyservices "github.com/tenancyjustice/clerk/modules/tenancy/services"
	"github.com/tenancyjustice/clerk/pkg/composables"
	"github.com/tenancyjustice/clerk/pkg/configuration"
	"github.com/tenancyjustice/clerk/pkg/eventbus"
)

type IntakeService struct {
	submissions submission.Repository
	clients     *clientservices.ClientService
	tenancies   *tenancyservices.TenancyService
	issues      *issueservices.IssueService
	publisher   eventbus.EventBus
	log         *logrus.Logger
}

func NewIntakeService(
	submissions submission.Repository,
	clients *clientservices.ClientService,
	tenancies *tenancyservices.TenancyService,
	issues *issueservices.IssueService,
	publisher eventbus.EventBus,
	log *logrus.Logger,
) *IntakeService {
	return &IntakeService{
		submissions: submissions,
		clients:     clients,
		tenancies:   tenancies,
		issues:      issues,
		publisher:   publisher,
		log:         log,
	}
}

func (s *IntakeService) GetByID(ctx context.Context, id uuid.UUID) (submission.Submission, error) {
	return s.submissions.GetByID(ctx, id)
}

// Submit records a raw intake form for later processing.
func (s *IntakeService) Submit(ctx context.Context, topic string, answers submission.Answers) (submission.Submission, error) {
	if _, err := issue.ParseTopic(strings.TrimSpace(topic)); err != nil {
		return submission.Submission{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (submission.Submission, error) {
		return s.submissions.Create(txCtx, submission.New(topic, answers))
	})
}

// ProcessSubmission normalizes one submission into client, tenancy and issue
// records. The whole pipeline runs in a single transaction, so a failure at
// any step leaves no partial rows and the submission can be safely
// reprocessed. Fileref allocation races abort the transaction and are
// retried here up to the configured bound.
func (s *IntakeService) ProcessSubmission(ctx context.Context, id uuid.UUID) (submission.Submission, error) {
	var (
		processed    submission.Submission
		createdIssue issue.Issue
		err          error
	)

	// When the caller owns the transaction a failed attempt has poisoned
	// it; retrying (and the counter resync, which would join the same dead
	// transaction) is only sound on transactions we open ourselves.
	ownsTx := !composables.HasTx(ctx)
	retries := 1
	if ownsTx {
		retries = configuration.Use().Intake.AllocationRetries
	}
	for attempt := 0; attempt < retries; attempt++ {
		err = composables.InTxJoin(ctx, func(txCtx context.Context) error {
			var innerErr error
			processed, createdIssue, innerErr = s.processOnce(txCtx, id)
			return innerErr
		})
		if err == nil {
			s.publisher.Publish(issue.CreatedEvent{Issue: createdIssue})
			s.publisher.Publish(submission.ProcessedEvent{Submission: processed})
			return processed, nil
		}
		if !ownsTx || !errors.Is(err, issue.ErrFilerefTaken) {
			break
		}
		if resyncErr := s.resyncTopicGroup(ctx, id); resyncErr != nil {
			err = resyncErr
			break
		}
	}

	s.recordFailure(ctx, id, err)
	return submission.Submission{}, err
}

// ProcessPending drains a batch of pending submissions, up to limit.
// Individual failures are recorded on their submission and do not stop the
// batch.
func (s *IntakeService) ProcessPending(ctx context.Context, limit int) (int, error) {
	pending, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]submission.Submission, error) {
		return s.submissions.FindPending(txCtx, limit)
	})
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, sub := range pending {
		subCtx := composables.WithLogger(ctx, s.log.WithField("submission_id", sub.ID()))
		if _, err := s.ProcessSubmission(subCtx, sub.ID()); err != nil {
			s.log.WithError(err).WithField("submission_id", sub.ID()).Warn("intake: submission processing failed")
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *IntakeService) processOnce(ctx context.Context, id uuid.UUID) (submission.Submission, issue.Issue, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}
	if sub.Status() == submission.StatusProcessed {
		return submission.Submission{}, issue.Issue{}, submission.ErrAlreadyProcessed
	}

	topic, err := issue.ParseTopic(sub.Topic())
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}
	answers := sub.Answers()

	clientDTO, err := clientDTOFromAnswers(answers)
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}
	cl, err := s.clients.GetOrCreateByEmail(ctx, clientDTO)
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}

	reconcileDTO, err := reconcileDTOFromAnswers(answers)
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}

	// Reuse an exact-address tenancy for this client; reconcile a new one
	// otherwise.
	ten, err := s.tenancies.GetByClientAndAddress(ctx, cl.ID(), reconcileDTO.Address)
	if errors.Is(err, tenancy.ErrNotFound) {
		ten, err = s.tenancies.Reconcile(ctx, cl.ID(), reconcileDTO)
	}
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}

	iss, err := s.issues.Create(ctx, &issue.CreateDTO{
		Topic:     topic,
		ClientID:  cl.ID(),
		TenancyID: ten.ID(),
	})
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}

	updated, err := s.submissions.Update(ctx, sub.MarkProcessed(iss.ID()))
	if err != nil {
		return submission.Submission{}, issue.Issue{}, err
	}
	return updated, iss, nil
}

func (s *IntakeService) resyncTopicGroup(ctx context.Context, id uuid.UUID) error {
	sub, err := composables.InTxResult(ctx, func(txCtx context.Context) (submission.Submission, error) {
		return s.submissions.GetByID(txCtx, id)
	})
	if err != nil {
		return err
	}
	topic, err := issue.ParseTopic(sub.Topic())
	if err != nil {
		return err
	}
	return s.issues.ResyncGroup(ctx, topic)
}

// recordFailure notes the error on the submission so staff can see why it
// stalled. Already-processed and missing submissions are left untouched.
// The processing transaction may be aborted by the time a failure lands
// here, so the note is written in its own transaction.
func (s *IntakeService) recordFailure(ctx context.Context, id uuid.UUID, cause error) {
	if cause == nil ||
		errors.Is(cause, submission.ErrAlreadyProcessed) ||
		errors.Is(cause, submission.ErrNotFound) {
		return
	}

	var failed submission.Submission
	err := composables.InTxIsolated(ctx, func(txCtx context.Context) error {
		sub, err := s.submissions.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		failed, err = s.submissions.Update(txCtx, sub.MarkFailed(cause.Error()))
		return err
	})
	if err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("submission_id", id).Error("intake: failed to record submission failure")
		return
	}
	s.publisher.Publish(submission.FailedEvent{Submission: failed, Reason: cause.Error()})
}

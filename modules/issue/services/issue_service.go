package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/modules/issue/domain/aggregates/issue"
	"github.com/tenancyjustice/clerk/pkg/composables"
	"github.com/tenancyjustice/clerk/pkg/configuration"
	"github.com/tenancyjustice/clerk/pkg/eventbus"
)

type IssueService struct {
	repo      issue.Repository
	allocator issue.Allocator
	publisher eventbus.EventBus
}

func NewIssueService(repo issue.Repository, allocator issue.Allocator, publisher eventbus.EventBus) *IssueService {
	return &IssueService{repo: repo, allocator: allocator, publisher: publisher}
}

func (s *IssueService) GetByID(ctx context.Context, id uuid.UUID) (issue.Issue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *IssueService) GetByFileref(ctx context.Context, fileref string) (issue.Issue, error) {
	return s.repo.GetByFileref(ctx, fileref)
}

func (s *IssueService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]issue.Issue, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Create persists a new issue and allocates its fileref in the same
// transaction. When the context already carries a transaction the single
// attempt joins it and the caller owns retrying allocation races (nothing of
// the aborted transaction survives, so a retry starts clean). Otherwise the
// service opens its own transaction, retries races up to the configured
// bound, and publishes CreatedEvent after commit.
func (s *IssueService) Create(ctx context.Context, dto *issue.CreateDTO) (issue.Issue, error) {
	if dto == nil {
		return issue.Issue{}, errors.New("missing dto")
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		return issue.Issue{}, fieldErrs
	}

	prefix := dto.Topic.Prefix()

	if composables.HasTx(ctx) {
		return s.createOnce(ctx, dto, prefix)
	}

	var created issue.Issue
	var err error
	retries := configuration.Use().Intake.AllocationRetries
	for attempt := 0; attempt < retries; attempt++ {
		err = composables.InTx(ctx, func(txCtx context.Context) error {
			var innerErr error
			created, innerErr = s.createOnce(txCtx, dto, prefix)
			return innerErr
		})
		if err == nil {
			s.publisher.Publish(issue.CreatedEvent{Issue: created})
			return created, nil
		}
		if !errors.Is(err, issue.ErrFilerefTaken) {
			return issue.Issue{}, err
		}
		// The counter lagged behind existing rows; raise it and go again.
		if rErr := s.ResyncGroup(ctx, dto.Topic); rErr != nil {
			return issue.Issue{}, rErr
		}
	}
	return issue.Issue{}, err
}

// ResyncGroup raises a topic group's counter to the scan-max of allocated
// filerefs.
func (s *IssueService) ResyncGroup(ctx context.Context, topic issue.Topic) error {
	return composables.InTxJoin(ctx, func(txCtx context.Context) error {
		return s.allocator.Resync(txCtx, topic.Prefix())
	})
}

// ResyncAll raises every numbering group's counter to its scan-max. Run after
// restoring data or importing issues that bypassed the allocator.
func (s *IssueService) ResyncAll(ctx context.Context) error {
	return composables.InTxJoin(ctx, func(txCtx context.Context) error {
		for _, prefix := range issue.Prefixes() {
			if err := s.allocator.Resync(txCtx, prefix); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *IssueService) createOnce(ctx context.Context, dto *issue.CreateDTO, prefix string) (issue.Issue, error) {
	n, err := s.allocator.Next(ctx, prefix)
	if err != nil {
		return issue.Issue{}, err
	}
	entity := issue.New(dto.Topic, issue.FormatFileref(prefix, n), dto.ClientID, dto.TenancyID)
	return s.repo.Create(ctx, entity)
}

package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenancyjustice/clerk/modules/client/domain/aggregates/client"
	clientservices "github.com/tenancyjustice/clerk/modules/client/services"
	"github.com/tenancyjustice/clerk/modules/intake/domain/aggregates/submission"
	"github.com/tenancyjustice/clerk/modules/issue/domain/aggregates/issue"
	issueservices "github.com/tenancyjustice/clerk/modules/issue/services"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/person"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/tenancy"
	tenancyservices "github.com/tenancyjustice/clerk/modules/tenancy/services"
	"github.com/tenancyjustice/clerk/pkg/composables"
	"github.com/tenancyjustice/clerk/pkg/eventbus"
	"github.com/tenancyjustice/clerk/pkg/serrors"
)

type stubTx struct{ pgx.Tx }

func txContext() context.Context {
	return composables.WithTx(context.Background(), stubTx{})
}

// --- in-memory repositories -------------------------------------------------

type memClientRepo struct {
	mu      sync.Mutex
	byEmail map[string]client.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{byEmail: map[string]client.Client{}}
}

func (r *memClientRepo) GetByID(_ context.Context, id uuid.UUID) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byEmail {
		if c.ID() == id {
			return c, nil
		}
	}
	return client.Client{}, client.ErrNotFound
}

func (r *memClientRepo) GetByEmail(_ context.Context, email string) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byEmail[client.NormalizeEmail(email)]; ok {
		return c, nil
	}
	return client.Client{}, client.ErrNotFound
}

func (r *memClientRepo) Create(_ context.Context, c client.Client) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[c.Email()]; exists {
		return client.Client{}, client.ErrEmailTaken
	}
	created := client.Hydrate(uuid.New(), c.FirstName(), c.LastName(), c.Email(), c.PhoneNumber(), c.DateOfBirth(), time.Now(), time.Now())
	r.byEmail[created.Email()] = created
	return created, nil
}

func (r *memClientRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

type memPersonRepo struct {
	mu      sync.Mutex
	persons map[uuid.UUID]person.Person
}

func newMemPersonRepo() *memPersonRepo {
	return &memPersonRepo{persons: map[uuid.UUID]person.Person{}}
}

func (r *memPersonRepo) GetByID(_ context.Context, id uuid.UUID) (person.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.persons[id]; ok {
		return p, nil
	}
	return person.Person{}, person.ErrNotFound
}

func (r *memPersonRepo) Create(_ context.Context, p person.Person) (person.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := person.Hydrate(uuid.New(), p.FullName(), p.Email(), p.Address(), p.PhoneNumber(), time.Now(), time.Now())
	r.persons[created.ID()] = created
	return created, nil
}

func (r *memPersonRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.persons)
}

type memTenancyRepo struct {
	mu        sync.Mutex
	tenancies map[uuid.UUID]tenancy.Tenancy
}

func newMemTenancyRepo() *memTenancyRepo {
	return &memTenancyRepo{tenancies: map[uuid.UUID]tenancy.Tenancy{}}
}

func (r *memTenancyRepo) GetByID(_ context.Context, id uuid.UUID) (tenancy.Tenancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ten, ok := r.tenancies[id]; ok {
		return ten, nil
	}
	return tenancy.Tenancy{}, tenancy.ErrNotFound
}

func (r *memTenancyRepo) GetByClientAndAddress(_ context.Context, clientID uuid.UUID, address string) (tenancy.Tenancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ten := range r.tenancies {
		if ten.ClientID() == clientID && ten.Address() == address {
			return ten, nil
		}
	}
	return tenancy.Tenancy{}, tenancy.ErrNotFound
}

func (r *memTenancyRepo) Create(_ context.Context, t tenancy.Tenancy) (tenancy.Tenancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := tenancy.Hydrate(
		uuid.New(), t.ClientID(), t.Address(), t.Suburb(), t.Postcode(),
		t.StartDate(), t.IsOnLease(), t.LandlordID(), t.AgentID(),
		time.Now(), time.Now(),
	)
	r.tenancies[created.ID()] = created
	return created, nil
}

func (r *memTenancyRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tenancies)
}

type memIssueRepo struct {
	mu    sync.Mutex
	byRef map[string]issue.Issue
}

func newMemIssueRepo() *memIssueRepo {
	return &memIssueRepo{byRef: map[string]issue.Issue{}}
}

func (r *memIssueRepo) GetByID(_ context.Context, id uuid.UUID) (issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byRef {
		if i.ID() == id {
			return i, nil
		}
	}
	return issue.Issue{}, issue.ErrNotFound
}

func (r *memIssueRepo) GetByFileref(_ context.Context, fileref string) (issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.byRef[fileref]; ok {
		return i, nil
	}
	return issue.Issue{}, issue.ErrNotFound
}

func (r *memIssueRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []issue.Issue
	for _, i := range r.byRef {
		if i.ClientID() == clientID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memIssueRepo) maxLocked(prefix string) int64 {
	var maxN int64
	for ref := range r.byRef {
		if n, ok := issue.FilerefNumber(ref, prefix); ok && n > maxN {
			maxN = n
		}
	}
	return maxN
}

func (r *memIssueRepo) Create(_ context.Context, i issue.Issue) (issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byRef[i.Fileref()]; exists {
		return issue.Issue{}, issue.ErrFilerefTaken
	}
	created := issue.Hydrate(uuid.New(), i.Topic(), i.Fileref(), i.ClientID(), i.TenancyID(), time.Now(), time.Now())
	r.byRef[i.Fileref()] = created
	return created, nil
}

func (r *memIssueRepo) filerefs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.byRef))
	for ref := range r.byRef {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

type memAllocator struct {
	mu       sync.Mutex
	counters map[string]int64
	repo     *memIssueRepo
}

func newMemAllocator(repo *memIssueRepo) *memAllocator {
	return &memAllocator{counters: map[string]int64{}, repo: repo}
}

func (a *memAllocator) Next(_ context.Context, prefix string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.counters[prefix]; !ok {
		a.repo.mu.Lock()
		a.counters[prefix] = a.repo.maxLocked(prefix)
		a.repo.mu.Unlock()
	}
	a.counters[prefix]++
	return a.counters[prefix], nil
}

func (a *memAllocator) Resync(_ context.Context, prefix string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.repo.mu.Lock()
	scanMax := a.repo.maxLocked(prefix)
	a.repo.mu.Unlock()
	if a.counters[prefix] < scanMax {
		a.counters[prefix] = scanMax
	}
	return nil
}

type memSubmissionRepo struct {
	mu   sync.Mutex
	subs map[uuid.UUID]submission.Submission
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{subs: map[uuid.UUID]submission.Submission{}}
}

func (r *memSubmissionRepo) GetByID(_ context.Context, id uuid.UUID) (submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subs[id]; ok {
		return s, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (r *memSubmissionRepo) FindPending(_ context.Context, limit int) ([]submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []submission.Submission
	for _, s := range r.subs {
		if s.Status() == submission.StatusPending {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSubmissionRepo) Create(_ context.Context, s submission.Submission) (submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := submission.Hydrate(uuid.New(), s.Topic(), s.Answers(), s.Status(), s.FailureNote(), s.IssueID(), time.Now(), time.Now())
	r.subs[created.ID()] = created
	return created, nil
}

func (r *memSubmissionRepo) Update(_ context.Context, s submission.Submission) (submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[s.ID()]; !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	updated := submission.Hydrate(s.ID(), s.Topic(), s.Answers(), s.Status(), s.FailureNote(), s.IssueID(), s.CreatedAt(), time.Now())
	r.subs[s.ID()] = updated
	return updated, nil
}

// --- fixture wiring ---------------------------------------------------------

type fixture struct {
	svc       *IntakeService
	subs      *memSubmissionRepo
	clients   *memClientRepo
	persons   *memPersonRepo
	tenancies *memTenancyRepo
	issues    *memIssueRepo
}

func newFixture() *fixture {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	bus := eventbus.NewEventPublisher(log)

	f := &fixture{
		subs:      newMemSubmissionRepo(),
		clients:   newMemClientRepo(),
		persons:   newMemPersonRepo(),
		tenancies: newMemTenancyRepo(),
		issues:    newMemIssueRepo(),
	}
	f.svc = NewIntakeService(
		f.subs,
		clientservices.NewClientService(f.clients),
		tenancyservices.NewTenancyService(f.tenancies, f.persons),
		issueservices.NewIssueService(f.issues, newMemAllocator(f.issues), bus),
		bus,
		log,
	)
	return f
}

func baseAnswers() submission.Answers {
	return submission.Answers{
		submission.KeyFirstName: "Tara",
		submission.KeyLastName:  "Tenant",
		submission.KeyEmail:     "Tara.Tenant@Example.com",
		submission.KeyPhone:     "0400000003",

		submission.KeyAddress:   "5 Renter Ave",
		submission.KeySuburb:    "Fitzroy",
		submission.KeyPostcode:  float64(3065),
		submission.KeyStartDate: "2023-04-01",
		submission.KeyIsOnLease: true,

		submission.KeyLandlordName:    "Len Landlord",
		submission.KeyLandlordEmail:   "len@example.com",
		submission.KeyLandlordAddress: "1 Owner St",
		submission.KeyLandlordPhone:   "0400000001",
	}
}

func (f *fixture) submit(t *testing.T, topic string, answers submission.Answers) submission.Submission {
	t.Helper()
	sub, err := f.svc.Submit(txContext(), topic, answers)
	require.NoError(t, err)
	return sub
}

// --- tests ------------------------------------------------------------------

func TestProcessSubmissionLandlordOnly(t *testing.T) {
	t.Parallel()

	f := newFixture()
	sub := f.submit(t, "REPAIRS", baseAnswers())

	processed, err := f.svc.ProcessSubmission(txContext(), sub.ID())
	require.NoError(t, err)

	assert.Equal(t, submission.StatusProcessed, processed.Status())
	require.NotEqual(t, uuid.Nil, processed.IssueID())

	iss, err := f.issues.GetByID(txContext(), processed.IssueID())
	require.NoError(t, err)
	assert.Equal(t, "R0001", iss.Fileref())
	assert.Equal(t, issue.TopicRepairs, iss.Topic())

	cl, err := f.clients.GetByEmail(txContext(), "tara.tenant@example.com")
	require.NoError(t, err)
	assert.Equal(t, cl.ID(), iss.ClientID())

	ten, err := f.tenancies.GetByID(txContext(), iss.TenancyID())
	require.NoError(t, err)
	assert.Equal(t, "5 Renter Ave", ten.Address())
	assert.Equal(t, "3065", ten.Postcode(), "numeric postcode answers land as text")

	assert.Equal(t, 1, f.persons.count(), "only the landlord contact is created")
	require.NotEqual(t, uuid.Nil, ten.LandlordID())
	assert.Equal(t, uuid.Nil, ten.AgentID())
}

func TestProcessSubmissionAgentIsPropertyManager(t *testing.T) {
	t.Parallel()

	f := newFixture()
	answers := baseAnswers()
	answers[submission.KeyPropertyManagerIsAgent] = true
	answers[submission.KeyAgentName] = "Amy Agent"
	answers[submission.KeyAgentEmail] = "amy@agency.example.com"
	answers[submission.KeyAgentAddress] = "2 Agency Rd"
	answers[submission.KeyAgentPhone] = "0400000002"
	sub := f.submit(t, "BONDS", answers)

	processed, err := f.svc.ProcessSubmission(txContext(), sub.ID())
	require.NoError(t, err)

	iss, err := f.issues.GetByID(txContext(), processed.IssueID())
	require.NoError(t, err)
	assert.Equal(t, "B0001", iss.Fileref())

	ten, err := f.tenancies.GetByID(txContext(), iss.TenancyID())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, ten.AgentID())
	require.NotEqual(t, uuid.Nil, ten.LandlordID())
	assert.Equal(t, 2, f.persons.count())

	agent, err := f.persons.GetByID(txContext(), ten.AgentID())
	require.NoError(t, err)
	assert.Equal(t, "Amy Agent", agent.FullName())
	assert.Equal(t, "amy@agency.example.com", agent.Email())

	// landlord kept name-only when the agent manages the property
	landlord, err := f.persons.GetByID(txContext(), ten.LandlordID())
	require.NoError(t, err)
	assert.Equal(t, "Len Landlord", landlord.FullName())
	assert.Empty(t, landlord.Email())
	assert.Empty(t, landlord.PhoneNumber())
}

func TestProcessSubmissionMalformedDateFails(t *testing.T) {
	t.Parallel()

	f := newFixture()
	answers := baseAnswers()
	answers[submission.KeyStartDate] = "01/04/2023"
	sub := f.submit(t, "REPAIRS", answers)

	_, err := f.svc.ProcessSubmission(txContext(), sub.ID())
	require.Error(t, err)

	var base *serrors.Base
	require.ErrorAs(t, err, &base)
	assert.Equal(t, submission.KeyStartDate, base.Field)

	// the failure is recorded on the submission; nothing else is created
	failed, getErr := f.subs.GetByID(txContext(), sub.ID())
	require.NoError(t, getErr)
	assert.Equal(t, submission.StatusFailed, failed.Status())
	assert.Contains(t, failed.FailureNote(), submission.KeyStartDate)
	assert.Empty(t, f.issues.filerefs())
}

func TestProcessSubmissionTwiceIsRejected(t *testing.T) {
	t.Parallel()

	f := newFixture()
	sub := f.submit(t, "REPAIRS", baseAnswers())

	first, err := f.svc.ProcessSubmission(txContext(), sub.ID())
	require.NoError(t, err)

	_, err = f.svc.ProcessSubmission(txContext(), sub.ID())
	require.ErrorIs(t, err, submission.ErrAlreadyProcessed)

	// the rejection does not downgrade the processed record
	current, err := f.subs.GetByID(txContext(), sub.ID())
	require.NoError(t, err)
	assert.Equal(t, submission.StatusProcessed, current.Status())
	assert.Equal(t, first.IssueID(), current.IssueID())
	assert.Equal(t, []string{"R0001"}, f.issues.filerefs())
}

func TestRepeatSubmitterReusesClientAndTenancy(t *testing.T) {
	t.Parallel()

	f := newFixture()
	first := f.submit(t, "REPAIRS", baseAnswers())
	second := f.submit(t, "EVICTION_ARREARS", baseAnswers())

	_, err := f.svc.ProcessSubmission(txContext(), first.ID())
	require.NoError(t, err)
	_, err = f.svc.ProcessSubmission(txContext(), second.ID())
	require.NoError(t, err)

	assert.Equal(t, 1, f.clients.count(), "same email maps to one client")
	assert.Equal(t, 1, f.tenancies.count(), "same address reuses the tenancy")
	assert.Equal(t, 1, f.persons.count(), "reused tenancy creates no new contacts")
	assert.Equal(t, []string{"E0001", "R0001"}, f.issues.filerefs())
}

func TestNewAddressCreatesFreshTenancyAndContacts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	first := f.submit(t, "REPAIRS", baseAnswers())

	moved := baseAnswers()
	moved[submission.KeyAddress] = "9 Other St"
	second := f.submit(t, "REPAIRS", moved)

	_, err := f.svc.ProcessSubmission(txContext(), first.ID())
	require.NoError(t, err)
	_, err = f.svc.ProcessSubmission(txContext(), second.ID())
	require.NoError(t, err)

	assert.Equal(t, 1, f.clients.count())
	assert.Equal(t, 2, f.tenancies.count())
	// contact snapshots are never deduplicated across tenancies
	assert.Equal(t, 2, f.persons.count())
	assert.Equal(t, []string{"R0001", "R0002"}, f.issues.filerefs())
}

func TestSubmitRejectsUnknownTopic(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.svc.Submit(txContext(), "JAYWALKING", baseAnswers())
	require.Error(t, err)
}

func TestProcessPendingDrainsBatchAndSkipsFailures(t *testing.T) {
	t.Parallel()

	f := newFixture()
	good := f.submit(t, "REPAIRS", baseAnswers())

	bad := baseAnswers()
	bad[submission.KeyStartDate] = "not-a-date"
	broken := f.submit(t, "REPAIRS", bad)

	n, err := f.svc.ProcessPending(txContext(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	processed, err := f.subs.GetByID(txContext(), good.ID())
	require.NoError(t, err)
	assert.Equal(t, submission.StatusProcessed, processed.Status())

	failed, err := f.subs.GetByID(txContext(), broken.ID())
	require.NoError(t, err)
	assert.Equal(t, submission.StatusFailed, failed.Status())
}

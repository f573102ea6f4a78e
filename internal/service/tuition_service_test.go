package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/pricing"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/export"
)

type tuitionRepoStub struct {
	fees    map[string]*models.TuitionFee
	created []models.TuitionFee
	paid    []string
}

func (s *tuitionRepoStub) List(ctx context.Context, filter models.TuitionFeeFilter) ([]models.TuitionFee, int, error) {
	out := make([]models.TuitionFee, 0, len(s.fees))
	for _, fee := range s.fees {
		out = append(out, *fee)
	}
	return out, len(out), nil
}

func (s *tuitionRepoStub) FindByID(ctx context.Context, id string) (*models.TuitionFee, error) {
	fee, ok := s.fees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *fee
	return &copied, nil
}

func (s *tuitionRepoStub) BulkCreate(ctx context.Context, fees []models.TuitionFee) error {
	s.created = append(s.created, fees...)
	return nil
}

func (s *tuitionRepoStub) MarkPaid(ctx context.Context, id string) error {
	if _, ok := s.fees[id]; !ok {
		return sql.ErrNoRows
	}
	s.fees[id].IsPaid = true
	s.paid = append(s.paid, id)
	return nil
}

type gateStub struct {
	admit    bool
	until    time.Time
	tripped  bool
	recorded []pricing.Outcome
}

func (g *gateStub) Admit() (bool, time.Time) {
	return g.admit, g.until
}

func (g *gateStub) RecordOutcome(outcome pricing.Outcome) {
	g.recorded = append(g.recorded, outcome)
}

func (g *gateStub) Tripped() bool {
	return g.tripped
}

type lookupStub struct {
	amount  models.Money
	outcome pricing.Outcome
	calls   int
}

func (l *lookupStub) LookupPrice(ctx context.Context, degreeID int64) (models.Money, pricing.Outcome) {
	l.calls++
	return l.amount, l.outcome
}

type rendererStub struct {
	last export.ReceiptData
}

func (r *rendererStub) Receipt(data export.ReceiptData) ([]byte, error) {
	r.last = data
	return []byte("%PDF-1.4 receipt"), nil
}

func newTuitionFixture(gate *gateStub, lookup *lookupStub) (*TuitionService, *tuitionRepoStub, *rendererStub) {
	repo := &tuitionRepoStub{fees: map[string]*models.TuitionFee{}}
	renderer := &rendererStub{}
	svc := NewTuitionService(repo, gate, lookup, renderer, nil, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, renderer
}

func TestTuitionCreateMonthlySchedule(t *testing.T) {
	gate := &gateStub{admit: true}
	lookup := &lookupStub{amount: money(t, "2500.00"), outcome: pricing.OutcomeSuccess}
	svc, repo, _ := newTuitionFixture(gate, lookup)

	fees, err := svc.Create(context.Background(), CreateTuitionRequest{
		DegreeID:  42,
		StudentID: 7,
		Plan:      models.PaymentPlanMonthly,
	})
	require.NoError(t, err)
	require.Len(t, fees, 10)
	require.Len(t, repo.created, 10)

	var sum models.Money
	for _, fee := range fees {
		assert.Equal(t, int64(42), fee.DegreeID)
		assert.Equal(t, int64(7), fee.StudentID)
		assert.False(t, fee.IsPaid)
		sum += fee.Amount
	}
	assert.Equal(t, money(t, "2500.00"), sum)
	assert.Equal(t, []pricing.Outcome{pricing.OutcomeSuccess}, gate.recorded)
}

func TestTuitionCreateAnnualSchedule(t *testing.T) {
	gate := &gateStub{admit: true}
	lookup := &lookupStub{amount: money(t, "2500.00"), outcome: pricing.OutcomeSuccess}
	svc, _, _ := newTuitionFixture(gate, lookup)

	fees, err := svc.Create(context.Background(), CreateTuitionRequest{
		DegreeID:  42,
		StudentID: 7,
		Plan:      models.PaymentPlanAnnual,
	})
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, "2500.00", fees[0].Amount.String())
	assert.Equal(t, time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC), fees[0].Deadline.Time)
}

func TestTuitionCreateBlockedByBreaker(t *testing.T) {
	gate := &gateStub{admit: false, until: time.Date(2026, time.September, 1, 12, 5, 0, 0, time.UTC)}
	lookup := &lookupStub{}
	svc, repo, _ := newTuitionFixture(gate, lookup)

	_, err := svc.Create(context.Background(), CreateTuitionRequest{
		DegreeID:  42,
		StudentID: 7,
		Plan:      models.PaymentPlanMonthly,
	})
	require.ErrorIs(t, err, appErrors.ErrPricingUnavailable)
	assert.Zero(t, lookup.calls, "blocked requests must not reach the pricing service")
	assert.Empty(t, repo.created)
	assert.Empty(t, gate.recorded)
}

func TestTuitionCreateDegreeNotFound(t *testing.T) {
	gate := &gateStub{admit: true}
	lookup := &lookupStub{outcome: pricing.OutcomeNotFound}
	svc, repo, _ := newTuitionFixture(gate, lookup)

	_, err := svc.Create(context.Background(), CreateTuitionRequest{
		DegreeID:  99,
		StudentID: 7,
		Plan:      models.PaymentPlanAnnual,
	})
	require.ErrorIs(t, err, appErrors.ErrDegreeNotFound)
	assert.Empty(t, repo.created)
	assert.Equal(t, []pricing.Outcome{pricing.OutcomeNotFound}, gate.recorded)
}

func TestTuitionCreateTransientFailure(t *testing.T) {
	gate := &gateStub{admit: true}
	lookup := &lookupStub{outcome: pricing.OutcomeTransientFailure}
	svc, repo, _ := newTuitionFixture(gate, lookup)

	_, err := svc.Create(context.Background(), CreateTuitionRequest{
		DegreeID:  42,
		StudentID: 7,
		Plan:      models.PaymentPlanMonthly,
	})
	require.ErrorIs(t, err, appErrors.ErrPricingUnavailable)
	assert.Empty(t, repo.created)
	assert.Equal(t, []pricing.Outcome{pricing.OutcomeTransientFailure}, gate.recorded)
}

func TestTuitionCreateValidatesPlan(t *testing.T) {
	gate := &gateStub{admit: true}
	svc, _, _ := newTuitionFixture(gate, &lookupStub{})

	_, err := svc.Create(context.Background(), CreateTuitionRequest{
		DegreeID:  42,
		StudentID: 7,
		Plan:      "WEEKLY",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestTuitionListRequiresStudent(t *testing.T) {
	svc, _, _ := newTuitionFixture(&gateStub{admit: true}, &lookupStub{})

	_, _, err := svc.List(context.Background(), models.TuitionFeeFilter{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "A student_id is needed to filter the TuitionFees", appErr.Message)
}

func TestTuitionPayLifecycle(t *testing.T) {
	svc, repo, _ := newTuitionFixture(&gateStub{admit: true}, &lookupStub{})
	repo.fees["fee-1"] = &models.TuitionFee{
		ID:        "fee-1",
		DegreeID:  42,
		StudentID: 7,
		Amount:    money(t, "250.00"),
		Deadline:  models.NewDate(time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)),
	}

	fee, err := svc.Pay(context.Background(), "fee-1")
	require.NoError(t, err)
	assert.True(t, fee.IsPaid)

	_, err = svc.Pay(context.Background(), "fee-1")
	require.ErrorIs(t, err, appErrors.ErrAlreadyPaid)

	_, err = svc.Pay(context.Background(), "missing")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestTuitionReceiptRequiresPayment(t *testing.T) {
	svc, repo, renderer := newTuitionFixture(&gateStub{admit: true}, &lookupStub{})
	repo.fees["fee-1"] = &models.TuitionFee{
		ID:        "fee-1",
		DegreeID:  42,
		StudentID: 7,
		Amount:    money(t, "250.00"),
		Deadline:  models.NewDate(time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)),
	}

	_, err := svc.Receipt(context.Background(), "fee-1")
	require.ErrorIs(t, err, appErrors.ErrNotPaid)

	repo.fees["fee-1"].IsPaid = true
	doc, err := svc.Receipt(context.Background(), "fee-1")
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Equal(t, "fee-1", renderer.last.FeeID)
	assert.Equal(t, "250.00", renderer.last.Amount)
}

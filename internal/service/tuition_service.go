package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/pricing"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
	"github.com/univcloud/campus-services/pkg/export"
)

type tuitionRepository interface {
	List(ctx context.Context, filter models.TuitionFeeFilter) ([]models.TuitionFee, int, error)
	FindByID(ctx context.Context, id string) (*models.TuitionFee, error)
	BulkCreate(ctx context.Context, fees []models.TuitionFee) error
	MarkPaid(ctx context.Context, id string) error
}

type priceGate interface {
	Admit() (bool, time.Time)
	RecordOutcome(outcome pricing.Outcome)
	Tripped() bool
}

type priceLookup interface {
	LookupPrice(ctx context.Context, degreeID int64) (models.Money, pricing.Outcome)
}

type receiptRenderer interface {
	Receipt(data export.ReceiptData) ([]byte, error)
}

// CreateTuitionRequest describes the payload for opening a fee schedule.
type CreateTuitionRequest struct {
	DegreeID  int64              `json:"degree_id" validate:"required,gt=0"`
	StudentID int64              `json:"student_id" validate:"required,gt=0"`
	Plan      models.PaymentPlan `json:"payment_plan" validate:"required,oneof=MONTHLY ANNUAL"`
}

// TuitionService coordinates fee schedules and their payment lifecycle.
type TuitionService struct {
	repo      tuitionRepository
	gate      priceGate
	prices    priceLookup
	renderer  receiptRenderer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTuitionService instantiates TuitionService.
func NewTuitionService(repo tuitionRepository, gate priceGate, prices priceLookup, renderer receiptRenderer, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TuitionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TuitionService{
		repo:      repo,
		gate:      gate,
		prices:    prices,
		renderer:  renderer,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the fees of one student, optionally filtered by degree and
// payment state.
func (s *TuitionService) List(ctx context.Context, filter models.TuitionFeeFilter) ([]models.TuitionFee, int, error) {
	if filter.StudentID == 0 {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "A student_id is needed to filter the TuitionFees")
	}
	fees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tuition fees")
	}
	return fees, total, nil
}

// Get loads one fee.
func (s *TuitionService) Get(ctx context.Context, id string) (*models.TuitionFee, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "TuitionFee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tuition fee")
	}
	return fee, nil
}

// Create opens the fee schedule for one enrollment. The yearly amount comes
// from the pricing service behind the circuit breaker, then it is split into
// dated installments according to the chosen plan.
func (s *TuitionService) Create(ctx context.Context, req CreateTuitionRequest) ([]models.TuitionFee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tuition payload")
	}

	admitted, until := s.gate.Admit()
	if !admitted {
		s.metrics.SetBreakerOpen(true)
		s.logger.Warn("pricing lookup blocked by open breaker",
			zap.Int64("degree_id", req.DegreeID),
			zap.Time("cooldown_until", until))
		return nil, appErrors.ErrPricingUnavailable
	}

	price, outcome := s.prices.LookupPrice(ctx, req.DegreeID)
	s.gate.RecordOutcome(outcome)
	s.metrics.SetBreakerOpen(s.gate.Tripped())

	switch outcome {
	case pricing.OutcomeSuccess:
	case pricing.OutcomeNotFound:
		return nil, appErrors.ErrDegreeNotFound
	default:
		s.metrics.RecordPricingFailure()
		return nil, appErrors.ErrPricingUnavailable
	}

	issued := s.now()
	parts := generateInstallments(price, req.Plan, issued)
	fees := make([]models.TuitionFee, 0, len(parts))
	for _, part := range parts {
		fees = append(fees, models.TuitionFee{
			DegreeID:  req.DegreeID,
			StudentID: req.StudentID,
			Amount:    part.Amount,
			Deadline:  part.Deadline,
		})
	}
	if err := s.repo.BulkCreate(ctx, fees); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tuition fees")
	}

	s.logger.Info("tuition fee schedule created",
		zap.Int64("degree_id", req.DegreeID),
		zap.Int64("student_id", req.StudentID),
		zap.String("payment_plan", string(req.Plan)),
		zap.Int("installments", len(fees)))
	return fees, nil
}

// Pay settles one outstanding fee.
func (s *TuitionService) Pay(ctx context.Context, id string) (*models.TuitionFee, error) {
	fee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if fee.IsPaid {
		return nil, appErrors.ErrAlreadyPaid
	}
	if err := s.repo.MarkPaid(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark tuition fee paid")
	}
	fee.IsPaid = true
	return fee, nil
}

// Receipt renders the payment receipt PDF for a settled fee.
func (s *TuitionService) Receipt(ctx context.Context, id string) ([]byte, error) {
	fee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !fee.IsPaid {
		return nil, appErrors.ErrNotPaid
	}

	doc, err := s.renderer.Receipt(export.ReceiptData{
		FeeID:     fee.ID,
		StudentID: fee.StudentID,
		DegreeID:  fee.DegreeID,
		Amount:    fee.Amount.String(),
		Deadline:  fee.Deadline.Time,
		IssuedAt:  s.now(),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	return doc, nil
}

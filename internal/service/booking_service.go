package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univcloud/campus-services/internal/events"
	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/repository"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
)

type classroomReader interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
}

type scheduleStore interface {
	ListByClassroom(ctx context.Context, classroomID string) ([]models.Schedule, error)
	FindOverlapping(ctx context.Context, classroomID string, start, end time.Time) ([]models.Schedule, error)
	Reserve(ctx context.Context, schedule *models.Schedule) error
}

type eventPublisher interface {
	Publish(ctx context.Context, key string, event events.Event) error
}

// CreateScheduleRequest describes the payload for booking a classroom.
type CreateScheduleRequest struct {
	CourseEditionID string              `json:"course_edition_id" validate:"required,max=24"`
	Kind            models.ScheduleKind `json:"kind" validate:"required,oneof=CLASS EXAM"`
	Start           time.Time           `json:"start" validate:"required"`
	End             time.Time           `json:"end" validate:"required"`
}

// BookingService decides whether a candidate reservation is admitted: the
// classroom must exist and be open, the interval must be well formed, and it
// must not overlap any existing reservation of the same room. Rejections are
// side-effect free.
type BookingService struct {
	classrooms classroomReader
	schedules  scheduleStore
	events     eventPublisher
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewBookingService instantiates BookingService.
func NewBookingService(classrooms classroomReader, schedules scheduleStore, publisher eventPublisher, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		classrooms: classrooms,
		schedules:  schedules,
		events:     publisher,
		validator:  validate,
		metrics:    metrics,
		logger:     logger,
	}
}

// overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant. Touching boundaries do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Reserve admits or rejects a booking for the classroom.
func (s *BookingService) Reserve(ctx context.Context, classroomID string, req CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, s.reject("invalid_payload", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload"))
	}

	room, err := s.classrooms.FindByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.reject("classroom_not_found", appErrors.ErrClassroomNotFound)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	if !room.IsAvailable {
		return nil, s.reject("classroom_unavailable", appErrors.ErrClassroomUnavailable)
	}

	if !req.End.After(req.Start) {
		return nil, s.reject("invalid_interval", appErrors.ErrInvalidInterval)
	}

	existing, err := s.schedules.FindOverlapping(ctx, classroomID, req.Start, req.End)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check schedule conflicts")
	}
	for _, other := range existing {
		if overlaps(req.Start, req.End, other.StartAt, other.EndAt) {
			return nil, s.reject("slot_occupied", appErrors.ErrSlotOccupied)
		}
	}

	schedule := models.Schedule{
		ClassroomID:     classroomID,
		CourseEditionID: req.CourseEditionID,
		Kind:            req.Kind,
		StartAt:         req.Start,
		EndAt:           req.End,
	}

	// The repository re-checks under the classroom row lock; a concurrent
	// booking that won the race surfaces here as a conflict.
	if err := s.schedules.Reserve(ctx, &schedule); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return nil, s.reject("slot_occupied", appErrors.ErrSlotOccupied)
		case errors.Is(err, repository.ErrClassroomClosed):
			return nil, s.reject("classroom_unavailable", appErrors.ErrClassroomUnavailable)
		case errors.Is(err, sql.ErrNoRows):
			return nil, s.reject("classroom_not_found", appErrors.ErrClassroomNotFound)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}

	s.metrics.RecordBookingDecision("accepted")
	s.publishCreated(ctx, &schedule)
	return &schedule, nil
}

// Schedules lists the reservations of one classroom ordered by start time.
func (s *BookingService) Schedules(ctx context.Context, classroomID string) ([]models.Schedule, error) {
	if _, err := s.classrooms.FindByID(ctx, classroomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrClassroomNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	schedules, err := s.schedules.ListByClassroom(ctx, classroomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

func (s *BookingService) reject(outcome string, err error) error {
	s.metrics.RecordBookingDecision(outcome)
	return err
}

func (s *BookingService) publishCreated(ctx context.Context, schedule *models.Schedule) {
	if s.events == nil {
		return
	}
	event := events.Event{Type: events.TypeScheduleCreated, Payload: schedule}
	if err := s.events.Publish(ctx, schedule.ClassroomID, event); err != nil {
		s.logger.Warn("failed to publish schedule created event",
			zap.String("schedule_id", schedule.ID),
			zap.Error(err),
		)
	}
}

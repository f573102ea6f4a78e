package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/univcloud/campus-services/internal/models"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
)

type classroomRepository interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	ListWithSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ClassroomWithSchedules, error)
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	UpdateAvailability(ctx context.Context, id string, isAvailable bool) error
}

// UpdateClassroomRequest toggles the maintenance flag of a room.
type UpdateClassroomRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// ClassroomService coordinates classroom listing and availability updates.
type ClassroomService struct {
	repo   classroomRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewClassroomService instantiates ClassroomService.
func NewClassroomService(repo classroomRepository, cache *CacheService, logger *zap.Logger) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, cache: cache, logger: logger}
}

// List returns a faculty's classrooms. The faculty filter is mandatory.
func (s *ClassroomService) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	if filter.FacultyID == 0 {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "A faculty_id is needed to filter the Classrooms")
	}

	key := classroomListKey(filter)
	var cached classroomListPayload
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached.Items, cached.Total, nil
	}

	classrooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}

	s.cache.Set(ctx, key, classroomListPayload{Items: classrooms, Total: total})
	return classrooms, total, nil
}

// ListWithSchedules returns a faculty's classrooms with embedded reservations,
// optionally narrowed to one course edition.
func (s *ClassroomService) ListWithSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ClassroomWithSchedules, error) {
	if filter.FacultyID == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "A faculty_id is needed to filter the Classrooms")
	}

	classrooms, err := s.repo.ListWithSchedules(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classroom schedules")
	}
	return classrooms, nil
}

// UpdateAvailability flips the maintenance gate on a classroom.
func (s *ClassroomService) UpdateAvailability(ctx context.Context, id string, req UpdateClassroomRequest) (*models.Classroom, error) {
	if req.IsAvailable == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "is_available is required")
	}

	if err := s.repo.UpdateAvailability(ctx, id, *req.IsAvailable); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrClassroomNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	s.cache.InvalidatePattern(ctx, fmt.Sprintf("classrooms:faculty:%d:*", room.FacultyID))
	return room, nil
}

type classroomListPayload struct {
	Items []models.Classroom `json:"items"`
	Total int                `json:"total"`
}

func classroomListKey(filter models.ClassroomFilter) string {
	return fmt.Sprintf("classrooms:faculty:%d:p%d:s%d", filter.FacultyID, filter.Page, filter.PageSize)
}

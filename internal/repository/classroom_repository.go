package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/univcloud/campus-services/internal/models"
)

// ClassroomRepository provides persistence for classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository creates a new classroom repository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// List returns classrooms for a faculty with pagination.
func (r *ClassroomRepository) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, name, is_available, faculty_id, seats, created_at, updated_at FROM classrooms WHERE faculty_id = $1 ORDER BY name ASC LIMIT %d OFFSET %d", size, offset)
	var classrooms []models.Classroom
	if err := r.db.SelectContext(ctx, &classrooms, query, filter.FacultyID); err != nil {
		return nil, 0, fmt.Errorf("list classrooms: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM classrooms WHERE faculty_id = $1", filter.FacultyID); err != nil {
		return nil, 0, fmt.Errorf("count classrooms: %w", err)
	}

	return classrooms, total, nil
}

// FindByID loads a classroom by id.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	const query = `SELECT id, name, is_available, faculty_id, seats, created_at, updated_at FROM classrooms WHERE id = $1`
	var room models.Classroom
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListWithSchedules returns a faculty's classrooms with their reservations
// embedded, for timetable views.
func (r *ClassroomRepository) ListWithSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ClassroomWithSchedules, error) {
	var classrooms []models.Classroom
	if err := r.db.SelectContext(ctx, &classrooms, `SELECT id, name, is_available, faculty_id, seats, created_at, updated_at FROM classrooms WHERE faculty_id = $1 ORDER BY name ASC`, filter.FacultyID); err != nil {
		return nil, fmt.Errorf("list classrooms with schedules: %w", err)
	}
	if len(classrooms) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(classrooms))
	for _, room := range classrooms {
		ids = append(ids, room.ID)
	}

	scheduleQuery := `SELECT id, classroom_id, course_edition_id, kind, start_at, end_at, created_at FROM schedules WHERE classroom_id IN (?)`
	scheduleArgs := []interface{}{ids}
	if filter.CourseEditionID != "" {
		scheduleQuery += ` AND course_edition_id = ?`
		scheduleArgs = append(scheduleArgs, filter.CourseEditionID)
	}
	scheduleQuery += ` ORDER BY start_at ASC`

	query, args, err := sqlx.In(scheduleQuery, scheduleArgs...)
	if err != nil {
		return nil, fmt.Errorf("build schedules query: %w", err)
	}
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}

	byRoom := make(map[string][]models.Schedule, len(classrooms))
	for _, sched := range schedules {
		byRoom[sched.ClassroomID] = append(byRoom[sched.ClassroomID], sched)
	}

	result := make([]models.ClassroomWithSchedules, 0, len(classrooms))
	for _, room := range classrooms {
		result = append(result, models.ClassroomWithSchedules{
			Classroom: room,
			Schedules: byRoom[room.ID],
		})
	}
	return result, nil
}

// UpdateAvailability toggles the maintenance flag on a classroom.
func (r *ClassroomRepository) UpdateAvailability(ctx context.Context, id string, isAvailable bool) error {
	const query = `UPDATE classrooms SET is_available = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, isAvailable, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update classroom availability: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoRows
	}
	return nil
}

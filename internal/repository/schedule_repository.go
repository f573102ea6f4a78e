package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univcloud/campus-services/internal/models"
)

// Sentinel errors surfaced by reservation persistence.
var (
	// ErrNoRows signals a missing row where sql.ErrNoRows is not returned
	// directly by the driver (e.g. zero rows affected).
	ErrNoRows = sql.ErrNoRows
	// ErrOverlap is returned when the transactional re-check finds a
	// reservation overlapping the candidate interval.
	ErrOverlap = errors.New("schedule overlaps an existing reservation")
	// ErrClassroomClosed is returned when the locked classroom row is
	// flagged unavailable.
	ErrClassroomClosed = errors.New("classroom is closed for maintenance")
)

// ScheduleRepository provides persistence for classroom reservations.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByClassroom returns reservations of a room ordered by start time.
func (r *ScheduleRepository) ListByClassroom(ctx context.Context, classroomID string) ([]models.Schedule, error) {
	const query = `SELECT id, classroom_id, course_edition_id, kind, start_at, end_at, created_at FROM schedules WHERE classroom_id = $1 ORDER BY start_at ASC`
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, classroomID); err != nil {
		return nil, fmt.Errorf("list schedules by classroom: %w", err)
	}
	return schedules, nil
}

// FindOverlapping returns reservations of the room that strictly overlap
// [start, end). Back-to-back intervals do not match.
func (r *ScheduleRepository) FindOverlapping(ctx context.Context, classroomID string, start, end time.Time) ([]models.Schedule, error) {
	const query = `SELECT id, classroom_id, course_edition_id, kind, start_at, end_at, created_at FROM schedules WHERE classroom_id = $1 AND start_at < $3 AND end_at > $2`
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, classroomID, start, end); err != nil {
		return nil, fmt.Errorf("find overlapping schedules: %w", err)
	}
	return schedules, nil
}

// Reserve inserts the reservation while holding a lock on the classroom row,
// re-checking availability and overlap so two concurrent bookings of the same
// room cannot both commit.
func (r *ScheduleRepository) Reserve(ctx context.Context, schedule *models.Schedule) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reserve: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var isAvailable bool
	if err = tx.GetContext(ctx, &isAvailable, `SELECT is_available FROM classrooms WHERE id = $1 FOR UPDATE`, schedule.ClassroomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRows
		}
		return fmt.Errorf("lock classroom: %w", err)
	}
	if !isAvailable {
		err = ErrClassroomClosed
		return err
	}

	var occupied bool
	if err = tx.GetContext(ctx, &occupied, `SELECT EXISTS (SELECT 1 FROM schedules WHERE classroom_id = $1 AND start_at < $3 AND end_at > $2)`, schedule.ClassroomID, schedule.StartAt, schedule.EndAt); err != nil {
		return fmt.Errorf("recheck overlap: %w", err)
	}
	if occupied {
		err = ErrOverlap
		return err
	}

	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}

	const insert = `INSERT INTO schedules (id, classroom_id, course_edition_id, kind, start_at, end_at, created_at) VALUES (:id, :classroom_id, :course_edition_id, :kind, :start_at, :end_at, :created_at)`
	if _, err = sqlx.NamedExecContext(ctx, tx, insert, schedule); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reserve: %w", err)
	}
	return nil
}

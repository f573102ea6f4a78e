package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univcloud/campus-services/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "classroom_id", "course_edition_id", "kind", "start_at", "end_at", "created_at"})
}

func TestScheduleRepositoryListByClassroom(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	start := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

	rows := scheduleRows().
		AddRow("sched-1", "room-1", "algo-2026", "CLASS", start, start.Add(time.Hour), time.Now()).
		AddRow("sched-2", "room-1", "db-2026", "EXAM", start.Add(2*time.Hour), start.Add(3*time.Hour), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, classroom_id, course_edition_id, kind, start_at, end_at, created_at FROM schedules WHERE classroom_id = $1 ORDER BY start_at ASC")).
		WithArgs("room-1").
		WillReturnRows(rows)

	schedules, err := repo.ListByClassroom(context.Background(), "room-1")
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, models.ScheduleKindExam, schedules[1].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	start := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rows := scheduleRows().
		AddRow("sched-1", "room-1", "algo-2026", "CLASS", start, end, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, classroom_id, course_edition_id, kind, start_at, end_at, created_at FROM schedules WHERE classroom_id = $1 AND start_at < $3 AND end_at > $2")).
		WithArgs("room-1", start.Add(30*time.Minute), end.Add(30*time.Minute)).
		WillReturnRows(rows)

	found, err := repo.FindOverlapping(context.Background(), "room-1", start.Add(30*time.Minute), end.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "sched-1", found[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReserveCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	start := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_available FROM classrooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"is_available"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedules")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	schedule := &models.Schedule{
		ClassroomID:     "room-1",
		CourseEditionID: "algo-2026",
		Kind:            models.ScheduleKindClass,
		StartAt:         start,
		EndAt:           start.Add(time.Hour),
	}
	require.NoError(t, repo.Reserve(context.Background(), schedule))
	assert.NotEmpty(t, schedule.ID)
	assert.False(t, schedule.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReserveDetectsRace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_available FROM classrooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"is_available"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.Reserve(context.Background(), &models.Schedule{ClassroomID: "room-1"})
	require.ErrorIs(t, err, ErrOverlap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReserveClosedRoom(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_available FROM classrooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"is_available"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.Reserve(context.Background(), &models.Schedule{ClassroomID: "room-1"})
	require.ErrorIs(t, err, ErrClassroomClosed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReserveUnknownRoom(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT is_available FROM classrooms WHERE id = $1 FOR UPDATE")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"is_available"}))
	mock.ExpectRollback()

	err := repo.Reserve(context.Background(), &models.Schedule{ClassroomID: "missing"})
	require.ErrorIs(t, err, ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univcloud/campus-services/internal/events"
	"github.com/univcloud/campus-services/internal/models"
	"github.com/univcloud/campus-services/internal/repository"
	appErrors "github.com/univcloud/campus-services/pkg/errors"
)

type classroomReaderStub struct {
	classroom *models.Classroom
	err       error
}

func (s *classroomReaderStub) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.classroom, nil
}

type scheduleStoreStub struct {
	existing   []models.Schedule
	reserveErr error
	reserved   *models.Schedule
}

func (s *scheduleStoreStub) ListByClassroom(ctx context.Context, classroomID string) ([]models.Schedule, error) {
	return s.existing, nil
}

func (s *scheduleStoreStub) FindOverlapping(ctx context.Context, classroomID string, start, end time.Time) ([]models.Schedule, error) {
	return s.existing, nil
}

func (s *scheduleStoreStub) Reserve(ctx context.Context, schedule *models.Schedule) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	schedule.ID = "sched-1"
	s.reserved = schedule
	return nil
}

type publisherStub struct {
	events []events.Event
	keys   []string
}

func (p *publisherStub) Publish(ctx context.Context, key string, event events.Event) error {
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return nil
}

func openClassroom() *models.Classroom {
	return &models.Classroom{ID: "room-1", Name: "B101", IsAvailable: true, FacultyID: 7, Seats: 40}
}

func bookingRequest(start, end time.Time) CreateScheduleRequest {
	return CreateScheduleRequest{
		CourseEditionID: "algo-2026",
		Kind:            models.ScheduleKindClass,
		Start:           start,
		End:             end,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 9, hour, minute, 0, 0, time.UTC)
}

func TestBookingReserveAcceptsFreeSlot(t *testing.T) {
	store := &scheduleStoreStub{}
	pub := &publisherStub{}
	svc := NewBookingService(&classroomReaderStub{classroom: openClassroom()}, store, pub, nil, nil, nil)

	schedule, err := svc.Reserve(context.Background(), "room-1", bookingRequest(at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, "sched-1", schedule.ID)
	assert.Equal(t, "room-1", schedule.ClassroomID)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeScheduleCreated, pub.events[0].Type)
	assert.Equal(t, "room-1", pub.keys[0])
}

func TestBookingReserveConflicts(t *testing.T) {
	occupied := models.Schedule{
		ID:          "existing",
		ClassroomID: "room-1",
		StartAt:     at(10, 0),
		EndAt:       at(11, 0),
	}

	cases := []struct {
		name       string
		start, end time.Time
		wantErr    *appErrors.Error
	}{
		{"contained interval rejected", at(10, 30), at(10, 45), appErrors.ErrSlotOccupied},
		{"overlap at start rejected", at(9, 30), at(10, 30), appErrors.ErrSlotOccupied},
		{"overlap at end rejected", at(10, 45), at(11, 30), appErrors.ErrSlotOccupied},
		{"touching end accepted", at(11, 0), at(12, 0), nil},
		{"touching start accepted", at(9, 0), at(10, 0), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &scheduleStoreStub{existing: []models.Schedule{occupied}}
			svc := NewBookingService(&classroomReaderStub{classroom: openClassroom()}, store, nil, nil, nil, nil)

			schedule, err := svc.Reserve(context.Background(), "room-1", bookingRequest(tc.start, tc.end))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, schedule)
				assert.Nil(t, store.reserved, "rejected booking must not reach the store")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, store.reserved)
		})
	}
}

func TestBookingReserveRejectsInvalidInterval(t *testing.T) {
	store := &scheduleStoreStub{}
	svc := NewBookingService(&classroomReaderStub{classroom: openClassroom()}, store, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), "room-1", bookingRequest(at(11, 0), at(10, 0)))
	require.ErrorIs(t, err, appErrors.ErrInvalidInterval)

	_, err = svc.Reserve(context.Background(), "room-1", bookingRequest(at(10, 0), at(10, 0)))
	require.ErrorIs(t, err, appErrors.ErrInvalidInterval)
	assert.Nil(t, store.reserved)
}

func TestBookingReserveRejectsClosedClassroom(t *testing.T) {
	closed := openClassroom()
	closed.IsAvailable = false
	svc := NewBookingService(&classroomReaderStub{classroom: closed}, &scheduleStoreStub{}, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), "room-1", bookingRequest(at(10, 0), at(11, 0)))
	require.ErrorIs(t, err, appErrors.ErrClassroomUnavailable)
}

func TestBookingReserveUnknownClassroom(t *testing.T) {
	svc := NewBookingService(&classroomReaderStub{err: sql.ErrNoRows}, &scheduleStoreStub{}, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), "missing", bookingRequest(at(10, 0), at(11, 0)))
	require.ErrorIs(t, err, appErrors.ErrClassroomNotFound)
}

func TestBookingReserveValidatesPayload(t *testing.T) {
	svc := NewBookingService(&classroomReaderStub{classroom: openClassroom()}, &scheduleStoreStub{}, nil, nil, nil, nil)

	req := bookingRequest(at(10, 0), at(11, 0))
	req.Kind = "SEMINAR"
	_, err := svc.Reserve(context.Background(), "room-1", req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestBookingReserveMapsRepositoryConflict(t *testing.T) {
	store := &scheduleStoreStub{reserveErr: repository.ErrOverlap}
	svc := NewBookingService(&classroomReaderStub{classroom: openClassroom()}, store, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), "room-1", bookingRequest(at(10, 0), at(11, 0)))
	require.ErrorIs(t, err, appErrors.ErrSlotOccupied)
}

func TestOverlapsSymmetry(t *testing.T) {
	a0, a1 := at(10, 0), at(11, 0)
	b0, b1 := at(10, 30), at(11, 30)

	assert.True(t, overlaps(a0, a1, b0, b1))
	assert.True(t, overlaps(b0, b1, a0, a1))
	assert.False(t, overlaps(a0, a1, a1, at(12, 0)))
	assert.False(t, overlaps(a1, at(12, 0), a0, a1))
}

func TestBookingSchedulesListsRoom(t *testing.T) {
	store := &scheduleStoreStub{existing: []models.Schedule{
		{ID: "sched-1", ClassroomID: "room-1", StartAt: at(10, 0), EndAt: at(11, 0)},
	}}
	svc := NewBookingService(&classroomReaderStub{classroom: openClassroom()}, store, nil, nil, nil, nil)

	schedules, err := svc.Schedules(context.Background(), "room-1")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "sched-1", schedules[0].ID)
}

func TestBookingSchedulesUnknownClassroom(t *testing.T) {
	svc := NewBookingService(&classroomReaderStub{err: sql.ErrNoRows}, &scheduleStoreStub{}, nil, nil, nil, nil)

	_, err := svc.Schedules(context.Background(), "ghost")
	require.ErrorIs(t, err, appErrors.ErrClassroomNotFound)
}

package models

import "time"

// Classroom is a bookable physical room owned by a faculty.
type Classroom struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	FacultyID   int64     `db:"faculty_id" json:"faculty_id"`
	Seats       int       `db:"seats" json:"seats"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ClassroomFilter describes query params for listing classrooms.
type ClassroomFilter struct {
	FacultyID int64
	Page      int
	PageSize  int
}

// ScheduleFilter describes query params for the timetable listing. The
// faculty scope is mandatory; the course edition narrows the embedded
// reservations when set.
type ScheduleFilter struct {
	FacultyID       int64
	CourseEditionID string
}

// ClassroomWithSchedules embeds the room's reservations for timetable views.
type ClassroomWithSchedules struct {
	Classroom
	Schedules []Schedule `json:"schedules"`
}

// ScheduleKind distinguishes regular classes from exam sittings.
type ScheduleKind string

const (
	ScheduleKindClass ScheduleKind = "CLASS"
	ScheduleKindExam  ScheduleKind = "EXAM"
)

// Schedule is a time-bounded reservation of a classroom. The interval is
// half-open: [start, end), so back-to-back reservations do not conflict.
type Schedule struct {
	ID              string       `db:"id" json:"id"`
	ClassroomID     string       `db:"classroom_id" json:"classroom_id"`
	CourseEditionID string       `db:"course_edition_id" json:"course_edition_id"`
	Kind            ScheduleKind `db:"kind" json:"kind"`
	StartAt         time.Time    `db:"start_at" json:"start"`
	EndAt           time.Time    `db:"end_at" json:"end"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
}

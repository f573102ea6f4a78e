package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univcloud/campus-services/internal/models"
)

// FacultyRepository provides persistence for faculties and their locations.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new faculty repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

type facultyRow struct {
	models.Faculty
	LocID        sql.NullString  `db:"loc_id"`
	LocLatitude  sql.NullFloat64 `db:"loc_latitude"`
	LocLongitude sql.NullFloat64 `db:"loc_longitude"`
	LocCountry   sql.NullString  `db:"loc_country"`
	LocAddress   sql.NullString  `db:"loc_address"`
}

func (row facultyRow) toFaculty() models.Faculty {
	faculty := row.Faculty
	if row.LocID.Valid {
		faculty.Location = &models.Location{
			ID:        row.LocID.String,
			Latitude:  row.LocLatitude.Float64,
			Longitude: row.LocLongitude.Float64,
			Country:   row.LocCountry.String,
			Address:   row.LocAddress.String,
		}
	}
	return faculty
}

const facultySelect = `SELECT f.id, f.name, f.is_active, f.location_id, f.created_at, f.updated_at,
	l.id AS loc_id, l.latitude AS loc_latitude, l.longitude AS loc_longitude, l.country AS loc_country, l.address AS loc_address
	FROM faculties f LEFT JOIN locations l ON l.id = f.location_id`

// List returns all faculties with their locations.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	var rows []facultyRow
	if err := r.db.SelectContext(ctx, &rows, facultySelect+" ORDER BY f.name ASC"); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}

	faculties := make([]models.Faculty, 0, len(rows))
	for _, row := range rows {
		faculties = append(faculties, row.toFaculty())
	}
	return faculties, nil
}

// FindByID loads a faculty and its location by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	var row facultyRow
	if err := r.db.GetContext(ctx, &row, facultySelect+" WHERE f.id = $1", id); err != nil {
		return nil, err
	}
	faculty := row.toFaculty()
	return &faculty, nil
}

// Create stores a faculty and, when present, its location in one transaction.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create faculty: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if faculty.ID == "" {
		faculty.ID = uuid.NewString()
	}
	faculty.CreatedAt = now
	faculty.UpdatedAt = now

	if faculty.Location != nil {
		if faculty.Location.ID == "" {
			faculty.Location.ID = uuid.NewString()
		}
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO locations (id, latitude, longitude, country, address) VALUES (:id, :latitude, :longitude, :country, :address)`, faculty.Location); err != nil {
			return fmt.Errorf("insert location: %w", err)
		}
		faculty.LocationID = &faculty.Location.ID
	}

	if _, err = tx.NamedExecContext(ctx, `INSERT INTO faculties (id, name, is_active, location_id, created_at, updated_at) VALUES (:id, :name, :is_active, :location_id, :created_at, :updated_at)`, faculty); err != nil {
		return fmt.Errorf("insert faculty: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create faculty: %w", err)
	}
	return nil
}

// Archive marks a faculty inactive.
func (r *FacultyRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE faculties SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("archive faculty: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoRows
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univcloud/campus-services/internal/models"
)

// TuitionRepository provides persistence for tuition fees.
type TuitionRepository struct {
	db *sqlx.DB
}

// NewTuitionRepository creates a new tuition repository.
func NewTuitionRepository(db *sqlx.DB) *TuitionRepository {
	return &TuitionRepository{db: db}
}

// List returns tuition fees for a student with optional filters.
func (r *TuitionRepository) List(ctx context.Context, filter models.TuitionFeeFilter) ([]models.TuitionFee, int, error) {
	base := "FROM tuition_fees WHERE student_id = $1"
	args := []interface{}{filter.StudentID}
	var conditions []string

	if filter.DegreeID != 0 {
		conditions = append(conditions, fmt.Sprintf("degree_id = $%d", len(args)+1))
		args = append(args, filter.DegreeID)
	}
	if filter.IsPaid != nil {
		conditions = append(conditions, fmt.Sprintf("is_paid = $%d", len(args)+1))
		args = append(args, *filter.IsPaid)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, degree_id, student_id, amount, deadline, is_paid, created_at %s ORDER BY deadline ASC LIMIT %d OFFSET %d", base, size, offset)
	var fees []models.TuitionFee
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tuition fees: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count tuition fees: %w", err)
	}

	return fees, total, nil
}

// FindByID loads a tuition fee by id.
func (r *TuitionRepository) FindByID(ctx context.Context, id string) (*models.TuitionFee, error) {
	const query = `SELECT id, degree_id, student_id, amount, deadline, is_paid, created_at FROM tuition_fees WHERE id = $1`
	var fee models.TuitionFee
	if err := r.db.GetContext(ctx, &fee, query, id); err != nil {
		return nil, err
	}
	return &fee, nil
}

// BulkCreate inserts a generated installment plan within a transaction.
func (r *TuitionRepository) BulkCreate(ctx context.Context, fees []models.TuitionFee) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create tuition fees: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const insert = `INSERT INTO tuition_fees (id, degree_id, student_id, amount, deadline, is_paid, created_at) VALUES (:id, :degree_id, :student_id, :amount, :deadline, :is_paid, :created_at)`
	for i := range fees {
		payload := fees[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err = sqlx.NamedExecContext(ctx, tx, insert, &payload); err != nil {
			return fmt.Errorf("bulk insert tuition fee: %w", err)
		}
		fees[i] = payload
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create tuition fees: %w", err)
	}
	return nil
}

// MarkPaid settles a tuition fee.
func (r *TuitionRepository) MarkPaid(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tuition_fees SET is_paid = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark tuition fee paid: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNoRows
	}
	return nil
}

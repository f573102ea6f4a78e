package models

import "time"

// PaymentPlan selects how a yearly tuition amount is split into deadlines.
type PaymentPlan string

const (
	PaymentPlanMonthly PaymentPlan = "MONTHLY"
	PaymentPlanAnnual  PaymentPlan = "ANNUAL"
)

// MonthlyInstallments is the number of deadlines on the MONTHLY plan.
const MonthlyInstallments = 10

// TuitionFee is one scheduled partial payment of a student's yearly tuition.
type TuitionFee struct {
	ID        string    `db:"id" json:"id"`
	DegreeID  int64     `db:"degree_id" json:"degree_id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	Amount    Money     `db:"amount" json:"amount"`
	Deadline  Date      `db:"deadline" json:"deadline"`
	IsPaid    bool      `db:"is_paid" json:"is_paid"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TuitionFeeFilter describes query params for listing tuition fees.
type TuitionFeeFilter struct {
	StudentID int64
	DegreeID  int64
	IsPaid    *bool
	Page      int
	PageSize  int
}

package service

import (
	"time"

	"github.com/univcloud/campus-services/internal/models"
)

// monthEnd returns the last day of the month offset months after anchor.
// Day 0 of the following month normalizes to the month's final day, so
// February and leap years fall out of the date arithmetic.
func monthEnd(anchor time.Time, offset int) time.Time {
	y, m, _ := anchor.Date()
	return time.Date(y, m+time.Month(offset)+1, 0, 0, 0, 0, 0, time.UTC)
}

type installment struct {
	Amount   models.Money
	Deadline models.Date
}

// generateInstallments splits a yearly tuition amount into dated installments.
// ANNUAL produces a single installment due at the end of the month after
// anchor. MONTHLY produces ten equal installments, rounded half up to the
// cent, with any residual absorbed into the final one so the amounts sum
// exactly to total.
func generateInstallments(total models.Money, plan models.PaymentPlan, anchor time.Time) []installment {
	if plan == models.PaymentPlanAnnual {
		return []installment{{Amount: total, Deadline: models.NewDate(monthEnd(anchor, 1))}}
	}

	n := models.Money(models.MonthlyInstallments)
	per := (total + n/2) / n
	out := make([]installment, 0, models.MonthlyInstallments)
	for i := 0; i < models.MonthlyInstallments; i++ {
		amount := per
		if i == models.MonthlyInstallments-1 {
			amount = total - per*(n-1)
		}
		out = append(out, installment{
			Amount:   amount,
			Deadline: models.NewDate(monthEnd(anchor, i+1)),
		})
	}
	return out
}

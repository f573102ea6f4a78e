package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univcloud/campus-services/internal/models"
)

func money(t *testing.T, raw string) models.Money {
	t.Helper()
	m, err := models.ParseMoney(raw)
	require.NoError(t, err)
	return m
}

func TestGenerateInstallmentsAnnual(t *testing.T) {
	anchor := time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

	parts := generateInstallments(money(t, "2500.00"), models.PaymentPlanAnnual, anchor)
	require.Len(t, parts, 1)
	assert.Equal(t, "2500.00", parts[0].Amount.String())
	assert.Equal(t, time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC), parts[0].Deadline.Time)
}

func TestGenerateInstallmentsMonthlyEvenSplit(t *testing.T) {
	anchor := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	parts := generateInstallments(money(t, "2500.00"), models.PaymentPlanMonthly, anchor)
	require.Len(t, parts, 10)

	var sum models.Money
	for _, part := range parts {
		assert.Equal(t, "250.00", part.Amount.String())
		sum += part.Amount
	}
	assert.Equal(t, money(t, "2500.00"), sum)

	assert.Equal(t, time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC), parts[0].Deadline.Time)
	assert.Equal(t, time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC), parts[1].Deadline.Time)
	assert.Equal(t, time.Date(2027, time.July, 31, 0, 0, 0, 0, time.UTC), parts[9].Deadline.Time)
}

func TestGenerateInstallmentsResidualGoesToFinal(t *testing.T) {
	anchor := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	parts := generateInstallments(money(t, "100.01"), models.PaymentPlanMonthly, anchor)
	require.Len(t, parts, 10)

	var sum models.Money
	for i, part := range parts {
		if i < 9 {
			assert.Equal(t, "10.00", part.Amount.String())
		} else {
			assert.Equal(t, "10.01", part.Amount.String())
		}
		sum += part.Amount
	}
	assert.Equal(t, money(t, "100.01"), sum)
}

func TestGenerateInstallmentsExactSumWithRounding(t *testing.T) {
	anchor := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"999.99", "1000.05", "3333.33", "2499.99"} {
		total := money(t, raw)
		parts := generateInstallments(total, models.PaymentPlanMonthly, anchor)
		require.Len(t, parts, 10)

		var sum models.Money
		for _, part := range parts {
			sum += part.Amount
		}
		assert.Equal(t, total, sum, "amounts must sum back to %s", raw)
	}
}

func TestMonthEndHandlesLeapFebruary(t *testing.T) {
	anchor := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), monthEnd(anchor, 1))

	anchor = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), monthEnd(anchor, 1))

	// December rolls into the next year.
	anchor = time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC), monthEnd(anchor, 1))
}

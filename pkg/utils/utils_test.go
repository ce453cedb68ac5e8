package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateInstallment(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		rate     decimal.Decimal
		months   int
		expected decimal.Decimal
	}{
		{
			name:     "one percent over a year",
			amount:   decimal.NewFromInt(1000),
			rate:     decimal.NewFromInt(1),
			months:   12,
			expected: decimal.RequireFromString("88.85"), // 1000*0.01 / (1 - 1.01^-12)
		},
		{
			name:     "two percent over a year",
			amount:   decimal.NewFromInt(10000),
			rate:     decimal.NewFromInt(2),
			months:   12,
			expected: decimal.RequireFromString("945.60"),
		},
		{
			name:     "single installment carries one month of interest",
			amount:   decimal.NewFromInt(1000),
			rate:     decimal.NewFromInt(5),
			months:   1,
			expected: decimal.NewFromInt(1050),
		},
		{
			name:     "zero rate is straight-line",
			amount:   decimal.NewFromInt(1200),
			rate:     decimal.Zero,
			months:   12,
			expected: decimal.NewFromInt(100),
		},
		{
			name:     "zero term",
			amount:   decimal.NewFromInt(1000),
			rate:     decimal.NewFromInt(2),
			months:   0,
			expected: decimal.Zero,
		},
		{
			name:     "negative term",
			amount:   decimal.NewFromInt(1000),
			rate:     decimal.NewFromInt(2),
			months:   -3,
			expected: decimal.Zero,
		},
		{
			name:     "zero amount",
			amount:   decimal.Zero,
			rate:     decimal.NewFromInt(2),
			months:   12,
			expected: decimal.Zero,
		},
		{
			name:     "negative amount",
			amount:   decimal.NewFromInt(-500),
			rate:     decimal.NewFromInt(2),
			months:   12,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInstallment(tt.amount, tt.rate, tt.months)
			assert.True(t, result.Round(2).Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestCalculateInstallment_ZeroRateIsExactDivision(t *testing.T) {
	for _, n := range []int{1, 3, 7, 12, 60} {
		amount := decimal.NewFromInt(1000)
		result := CalculateInstallment(amount, decimal.Zero, n)
		assert.True(t, result.Equal(amount.Div(decimal.NewFromInt(int64(n)))), "n=%d got %v", n, result)
	}
}

func TestCalculateInstallment_Deterministic(t *testing.T) {
	amount := decimal.RequireFromString("12345.67")
	rate := decimal.RequireFromString("3.75")

	first := CalculateInstallment(amount, rate, 37)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(CalculateInstallment(amount, rate, 37)))
	}
}

func TestCalculateInstallment_InterestNeverNegative(t *testing.T) {
	amounts := []string{"100", "999.99", "50000", "75000"}
	rates := []string{"0.11", "1", "2.5", "20"}
	terms := []int{1, 6, 12, 24, 60}

	for _, a := range amounts {
		for _, r := range rates {
			for _, n := range terms {
				amount := decimal.RequireFromString(a)
				installment := CalculateInstallment(amount, decimal.RequireFromString(r), n)
				total := CalculateTotalAmount(installment, n)
				assert.True(t, total.GreaterThanOrEqual(amount),
					"amount=%s rate=%s n=%d total=%v", a, r, n, total)
			}
		}
	}
}

func TestCalculateTotalAmount(t *testing.T) {
	total := CalculateTotalAmount(decimal.RequireFromString("88.85"), 12)
	assert.True(t, total.Equal(decimal.RequireFromString("1066.2")))
}

func TestCalculateNextPaymentDate(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 14, 10, 30, 0, 0, time.UTC), CalculateNextPaymentDate(createdAt))
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points   int64
		expected int
	}{
		{points: -10, expected: 1},
		{points: 0, expected: 1},
		{points: 499, expected: 1},
		{points: 500, expected: 2},
		{points: 999, expected: 2},
		{points: 2000, expected: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelForPoints(tt.points), "points=%d", tt.points)
	}
}

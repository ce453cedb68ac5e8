package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business logic constants
const (
	// PaymentIntervalDays is the distance between two contract installments.
	PaymentIntervalDays = 30
	// PointsPerLevel is the number of points needed to climb one level.
	PointsPerLevel = 500
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// CalculateInstallment calculates the fixed monthly payment of an amortizing loan (Price table)
// Formula: amount * i / (1 - (1 + i)^-n), with i = monthlyRatePercent / 100
// Returns zero when amount or termMonths is not positive.
func CalculateInstallment(amount decimal.Decimal, monthlyRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || !amount.IsPositive() {
		return decimal.Zero
	}

	months := decimal.NewFromInt(int64(termMonths))
	if monthlyRatePercent.IsZero() {
		return amount.Div(months)
	}

	rate := monthlyRatePercent.Div(hundred)
	growth := one.Add(rate).Pow(months)
	if growth.IsZero() {
		return amount.Div(months)
	}

	denominator := one.Sub(one.Div(growth))
	if denominator.IsZero() {
		return amount.Div(months)
	}

	return amount.Mul(rate).Div(denominator)
}

// CalculateTotalAmount returns what the borrower pays over the whole contract
func CalculateTotalAmount(installment decimal.Decimal, termMonths int) decimal.Decimal {
	return installment.Mul(decimal.NewFromInt(int64(termMonths)))
}

// CalculateNextPaymentDate returns the due date of the first installment of a contract
// created at the given time.
func CalculateNextPaymentDate(createdAt time.Time) time.Time {
	return createdAt.Add(PaymentIntervalDays * 24 * time.Hour)
}

// LevelForPoints derives a user level from a points balance
// Level 1 (0-499), Level 2 (500-999), etc.
func LevelForPoints(points int64) int {
	if points < 0 {
		return 1
	}
	return int(points/PointsPerLevel) + 1
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusActive ContractStatus = "ACTIVE"
	ContractStatusPaid   ContractStatus = "PAID"
)

// Contract is the loan agreement produced by approving a request.
type Contract struct {
	ID              string          `json:"id" db:"id"`
	RequestID       string          `json:"request_id" db:"request_id"`
	OfferID         string          `json:"offer_id" db:"offer_id"`
	BorrowerID      string          `json:"borrower_id" db:"borrower_id"`
	LenderID        string          `json:"lender_id" db:"lender_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment" db:"monthly_payment"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" db:"remaining_amount"`
	TermMonths      int             `json:"term_months" db:"term_months"`
	MonthsPaid      int             `json:"months_paid" db:"months_paid"`
	Status          ContractStatus  `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	NextPaymentDate time.Time       `json:"next_payment_date" db:"next_payment_date"`
}

// CheckInvariants verifies the balances of a contract are consistent.
func (c *Contract) CheckInvariants() error {
	if c.RemainingAmount.GreaterThan(c.TotalAmount) {
		return fmt.Errorf("contract %s: remaining amount %s exceeds total %s", c.ID, c.RemainingAmount, c.TotalAmount)
	}
	if c.RemainingAmount.IsNegative() {
		return fmt.Errorf("contract %s: remaining amount %s is negative", c.ID, c.RemainingAmount)
	}
	if c.MonthsPaid < 0 || c.MonthsPaid > c.TermMonths {
		return fmt.Errorf("contract %s: months paid %d outside [0, %d]", c.ID, c.MonthsPaid, c.TermMonths)
	}
	return nil
}

// PaymentReminder is emitted by the scheduler for contracts with an upcoming due date.
type PaymentReminder struct {
	ContractID      string          `json:"contract_id"`
	BorrowerID      string          `json:"borrower_id"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	NextPaymentDate time.Time       `json:"next_payment_date"`
}

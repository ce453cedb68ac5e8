package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a lender's published loan proposal. Offers are never modified after creation.
type Offer struct {
	ID                 string          `json:"id" db:"id"`
	LenderID           string          `json:"lender_id" db:"lender_id"`
	Amount             decimal.Decimal `json:"amount" db:"amount"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent" db:"monthly_rate_percent"`
	TermMonths         int             `json:"term_months" db:"term_months"`
	Description        string          `json:"description" db:"description"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateOfferRequest struct {
	LenderID           string          `json:"lender_id" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required,gt=0"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent" validate:"required,gt=0"`
	TermMonths         int             `json:"term_months" validate:"required,gt=0"`
	Description        string          `json:"description" validate:"max=500"`
}

// OfferSimulation previews the installment a borrower would pay for an offer.
type OfferSimulation struct {
	Offer          *Offer          `json:"offer"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

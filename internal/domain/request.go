package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// LoanRequest is a borrower's application against an offer.
// A request leaves PENDING exactly once and is terminal afterwards.
type LoanRequest struct {
	ID              string          `json:"id" db:"id"`
	OfferID         string          `json:"offer_id" db:"offer_id"`
	BorrowerID      string          `json:"borrower_id" db:"borrower_id"`
	AmountRequested decimal.Decimal `json:"amount_requested" db:"amount_requested"`
	Status          RequestStatus   `json:"status" db:"status"`
	RequestDate     time.Time       `json:"request_date" db:"request_date"`
}

func (r *LoanRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

type CreateLoanRequestRequest struct {
	BorrowerID string `json:"borrower_id" validate:"required"`
}

type DecideRequestRequest struct {
	LenderID string `json:"lender_id" validate:"required"`
}

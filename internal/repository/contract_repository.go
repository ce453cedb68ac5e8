package repository

import (
	"context"
	"time"

	"github.com/segyhp/lending-engine/internal/domain"
	apperrors "github.com/segyhp/lending-engine/pkg/errors"
)

const contractColumns = `id, request_id, offer_id, borrower_id, lender_id, total_amount, monthly_payment,
	remaining_amount, term_months, months_paid, status, created_at, next_payment_date`

type contractRepository struct {
	db dbtx
}

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	if err := contract.CheckInvariants(); err != nil {
		return apperrors.MarkPermanent(apperrors.WrapDatabaseError(err))
	}

	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		contract.ID,
		contract.RequestID,
		contract.OfferID,
		contract.BorrowerID,
		contract.LenderID,
		contract.TotalAmount,
		contract.MonthlyPayment,
		contract.RemainingAmount,
		contract.TermMonths,
		contract.MonthsPaid,
		string(contract.Status),
		contract.CreatedAt,
		contract.NextPaymentDate,
	)

	return classify(err)
}

func (r *contractRepository) GetByRequestID(ctx context.Context, requestID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE request_id = ?`

	var contract domain.Contract
	if err := r.db.GetContext(ctx, &contract, r.db.Rebind(query), requestID); err != nil {
		return nil, classify(err)
	}

	return &contract, nil
}

func (r *contractRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + ` FROM contracts
		WHERE borrower_id = ? OR lender_id = ?
		ORDER BY created_at DESC, id
	`

	var contracts []*domain.Contract
	if err := r.db.SelectContext(ctx, &contracts, r.db.Rebind(query), userID, userID); err != nil {
		return nil, classify(err)
	}

	return contracts, nil
}

func (r *contractRepository) ListDueBefore(ctx context.Context, before time.Time) ([]*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + ` FROM contracts
		WHERE status = ? AND next_payment_date <= ?
		ORDER BY next_payment_date, id
	`

	var contracts []*domain.Contract
	err := r.db.SelectContext(ctx, &contracts, r.db.Rebind(query), string(domain.ContractStatusActive), before)
	if err != nil {
		return nil, classify(err)
	}

	return contracts, nil
}

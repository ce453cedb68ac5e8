package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/lending-engine/internal/domain"
)

const requestColumns = `id, offer_id, borrower_id, amount_requested, status, request_date`

type requestRepository struct {
	db dbtx
}

func (r *requestRepository) Create(ctx context.Context, req *domain.LoanRequest) error {
	query := `
		INSERT INTO loan_requests (id, offer_id, borrower_id, amount_requested, status, request_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		req.ID,
		req.OfferID,
		req.BorrowerID,
		req.AmountRequested,
		string(req.Status),
		req.RequestDate,
	)

	return classify(err)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.LoanRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM loan_requests WHERE id = ?`

	var req domain.LoanRequest
	if err := r.db.GetContext(ctx, &req, r.db.Rebind(query), id); err != nil {
		return nil, classify(err)
	}

	return &req, nil
}

func (r *requestRepository) ExistsPending(ctx context.Context, offerID, borrowerID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM loan_requests
		WHERE offer_id = ? AND borrower_id = ? AND status = ?
	`

	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(query), offerID, borrowerID, string(domain.RequestStatusPending))
	if err != nil {
		return false, classify(err)
	}

	return count > 0, nil
}

func (r *requestRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]*domain.LoanRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM loan_requests WHERE borrower_id = ? ORDER BY request_date DESC, id`

	var reqs []*domain.LoanRequest
	if err := r.db.SelectContext(ctx, &reqs, r.db.Rebind(query), borrowerID); err != nil {
		return nil, classify(err)
	}

	return reqs, nil
}

func (r *requestRepository) ListPendingByOfferIDs(ctx context.Context, offerIDs []string) ([]*domain.LoanRequest, error) {
	if len(offerIDs) == 0 {
		return []*domain.LoanRequest{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+requestColumns+` FROM loan_requests WHERE status = ? AND offer_id IN (?) ORDER BY request_date DESC, id`,
		string(domain.RequestStatusPending), offerIDs,
	)
	if err != nil {
		return nil, classify(err)
	}

	var reqs []*domain.LoanRequest
	if err := r.db.SelectContext(ctx, &reqs, r.db.Rebind(query), args...); err != nil {
		return nil, classify(err)
	}

	return reqs, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (bool, error) {
	query := `UPDATE loan_requests SET status = ? WHERE id = ? AND status = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), string(to), id, string(from))
	if err != nil {
		return false, classify(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, classify(err)
	}

	return rows == 1, nil
}

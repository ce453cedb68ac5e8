package repository

import (
	"context"

	"github.com/segyhp/lending-engine/internal/domain"
)

const offerColumns = `id, lender_id, amount, monthly_rate_percent, term_months, description, created_at`

type offerRepository struct {
	db dbtx
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (id, lender_id, amount, monthly_rate_percent, term_months, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		offer.ID,
		offer.LenderID,
		offer.Amount,
		offer.MonthlyRatePercent,
		offer.TermMonths,
		offer.Description,
		offer.CreatedAt,
	)

	return classify(err)
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = ?`

	var offer domain.Offer
	if err := r.db.GetContext(ctx, &offer, r.db.Rebind(query), id); err != nil {
		return nil, classify(err)
	}

	return &offer, nil
}

func (r *offerRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at DESC, id`

	var offers []*domain.Offer
	if err := r.db.SelectContext(ctx, &offers, query); err != nil {
		return nil, classify(err)
	}

	return offers, nil
}

func (r *offerRepository) ListByLender(ctx context.Context, lenderID string) ([]*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE lender_id = ? ORDER BY created_at DESC, id`

	var offers []*domain.Offer
	if err := r.db.SelectContext(ctx, &offers, r.db.Rebind(query), lenderID); err != nil {
		return nil, classify(err)
	}

	return offers, nil
}

package repository

import (
	"context"

	"github.com/segyhp/lending-engine/internal/domain"
)

type rewardRepository struct {
	db dbtx
}

func (r *rewardRepository) List(ctx context.Context) ([]*domain.Reward, error) {
	query := `SELECT id, title, description, point_cost, category FROM rewards ORDER BY point_cost, id`

	var rewards []*domain.Reward
	if err := r.db.SelectContext(ctx, &rewards, query); err != nil {
		return nil, classify(err)
	}

	return rewards, nil
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	query := `SELECT id, title, description, point_cost, category FROM rewards WHERE id = ?`

	var reward domain.Reward
	if err := r.db.GetContext(ctx, &reward, r.db.Rebind(query), id); err != nil {
		return nil, classify(err)
	}

	return &reward, nil
}

func (r *rewardRepository) CreateRedemption(ctx context.Context, redemption *domain.RewardRedemption) error {
	query := `
		INSERT INTO reward_redemptions (id, user_id, reward_id, code, redemption_date)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		redemption.ID,
		redemption.UserID,
		redemption.RewardID,
		redemption.Code,
		redemption.RedemptionDate,
	)

	return classify(err)
}

func (r *rewardRepository) GetRedemption(ctx context.Context, id string) (*domain.RewardRedemption, error) {
	query := `SELECT id, user_id, reward_id, code, redemption_date FROM reward_redemptions WHERE id = ?`

	var redemption domain.RewardRedemption
	if err := r.db.GetContext(ctx, &redemption, r.db.Rebind(query), id); err != nil {
		return nil, classify(err)
	}

	return &redemption, nil
}

func (r *rewardRepository) ListRedemptionsByUser(ctx context.Context, userID string) ([]*domain.RewardRedemption, error) {
	query := `
		SELECT id, user_id, reward_id, code, redemption_date FROM reward_redemptions
		WHERE user_id = ?
		ORDER BY redemption_date DESC, id
	`

	var redemptions []*domain.RewardRedemption
	if err := r.db.SelectContext(ctx, &redemptions, r.db.Rebind(query), userID); err != nil {
		return nil, classify(err)
	}

	return redemptions, nil
}

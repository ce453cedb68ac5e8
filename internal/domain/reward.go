package domain

import "time"

// Reward is a catalog item that can be bought with points.
type Reward struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	PointCost   int64  `json:"point_cost" db:"point_cost"`
	Category    string `json:"category" db:"category"`
}

// RewardRedemption records a successful exchange of points for a reward.
type RewardRedemption struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	RewardID       string    `json:"reward_id" db:"reward_id"`
	Code           string    `json:"code" db:"code"`
	RedemptionDate time.Time `json:"redemption_date" db:"redemption_date"`
}

type RedeemRewardRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
	customError "github.com/segyhp/lending-engine/pkg/errors"
	"github.com/segyhp/lending-engine/pkg/retry"
	"github.com/segyhp/lending-engine/pkg/utils"
)

const redemptionCodeLength = 8

// PointsLedger is the only writer of user point balances.
type PointsLedger struct {
	gateway repository.Gateway
	exec    *retry.Executor
	log     *logrus.Entry
	now     func() time.Time
	newID   func() string
	newCode func() string
}

func NewPointsLedger(gateway repository.Gateway, exec *retry.Executor, log *logrus.Logger) *PointsLedger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PointsLedger{
		gateway: gateway,
		exec:    exec,
		log:     log.WithField("component", "ledger"),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
		newCode: newRedemptionCode,
	}
}

// WithClock replaces the time source used for redemption dates.
func (l *PointsLedger) WithClock(now func() time.Time) *PointsLedger {
	l.now = now
	return l
}

// AddPoints credits points to a user and recomputes the level.
// Accrual is best-effort: failures are logged and never returned to the caller.
func (l *PointsLedger) AddPoints(ctx context.Context, userID string, amount int64, reason string) {
	entry := l.log.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"reason":  reason,
	})

	if amount <= 0 {
		entry.Debug("Ignoring non-positive point accrual")
		return
	}

	var balance int64
	err := l.exec.Run(ctx, func(ctx context.Context) error {
		return l.gateway.WithinTx(ctx, func(r repository.Repos) error {
			user, err := r.Users.GetByID(ctx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				return customError.WrapUserNotFound(userID)
			}
			if err != nil {
				return err
			}

			balance = user.Points + amount
			return l.setBalance(ctx, r, user, balance)
		})
	})
	if err != nil {
		entry.WithError(err).WithField("kind", customError.KindOf(err)).Error("Failed to add points")
		return
	}

	entry.WithFields(logrus.Fields{
		"balance": balance,
		"level":   utils.LevelForPoints(balance),
	}).Info("Points added")
}

// RedeemReward debits the reward cost and records the redemption in one transaction.
// The redemption ID is fixed before the first attempt, so a retried attempt whose
// predecessor already committed returns the stored redemption instead of debiting twice.
func (l *PointsLedger) RedeemReward(ctx context.Context, userID, rewardID string) (*domain.RewardRedemption, error) {
	redemptionID := l.newID()
	code := l.newCode()

	redemption, err := retry.Do(ctx, l.exec, func(ctx context.Context) (*domain.RewardRedemption, error) {
		var result *domain.RewardRedemption
		err := l.gateway.WithinTx(ctx, func(r repository.Repos) error {
			existing, err := r.Rewards.GetRedemption(ctx, redemptionID)
			if err == nil {
				result = existing
				return nil
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			reward, err := r.Rewards.GetByID(ctx, rewardID)
			if errors.Is(err, repository.ErrNotFound) {
				return customError.WrapRewardNotFound(rewardID)
			}
			if err != nil {
				return err
			}

			user, err := r.Users.GetByID(ctx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				return customError.WrapUserNotFound(userID)
			}
			if err != nil {
				return err
			}

			if user.Points < reward.PointCost {
				return customError.WrapInsufficientPoints(user.Points, reward.PointCost)
			}

			if err := l.setBalance(ctx, r, user, user.Points-reward.PointCost); err != nil {
				return err
			}

			red := &domain.RewardRedemption{
				ID:             redemptionID,
				UserID:         userID,
				RewardID:       rewardID,
				Code:           code,
				RedemptionDate: l.now(),
			}
			if err := r.Rewards.CreateRedemption(ctx, red); err != nil {
				return err
			}

			result = red
			return nil
		})
		return result, err
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":       userID,
		"reward_id":     rewardID,
		"redemption_id": redemption.ID,
	}).Info("Reward redeemed")

	return redemption, nil
}

func (l *PointsLedger) ListRewards(ctx context.Context) ([]*domain.Reward, error) {
	return retry.Do(ctx, l.exec, func(ctx context.Context) ([]*domain.Reward, error) {
		return l.gateway.Repos().Rewards.List(ctx)
	})
}

func (l *PointsLedger) ListRedemptions(ctx context.Context, userID string) ([]*domain.RewardRedemption, error) {
	return retry.Do(ctx, l.exec, func(ctx context.Context) ([]*domain.RewardRedemption, error) {
		return l.gateway.Repos().Rewards.ListRedemptionsByUser(ctx, userID)
	})
}

// setBalance writes the new balance only if nobody changed it since user was read.
func (l *PointsLedger) setBalance(ctx context.Context, r repository.Repos, user *domain.User, balance int64) error {
	ok, err := r.Users.SetPoints(ctx, user.ID, user.Points, balance, utils.LevelForPoints(balance))
	if err != nil {
		return err
	}
	if !ok {
		return customError.WrapConcurrentUpdate("user", user.ID)
	}
	return nil
}

func newRedemptionCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:redemptionCodeLength])
}

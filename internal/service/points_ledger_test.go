package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/repository"
	"github.com/segyhp/lending-engine/internal/testutil"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

func newLedger(f *fixture, gateway repository.Gateway) *PointsLedger {
	return NewPointsLedger(gateway, f.exec, f.log).WithClock(fixedClock)
}

func balanceOf(t *testing.T, f *fixture, userID string) (int64, int) {
	t.Helper()
	user, err := f.store.Repos().Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	return user.Points, user.Level
}

func TestRedeemReward_InsufficientPoints(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 100, 1, "")
	testutil.CreateReward(t, f.db, "r1", 200)

	_, err := newLedger(f, f.store).RedeemReward(context.Background(), "u1", "r1")

	require.Error(t, err)
	assert.Equal(t, customError.KindValidation, customError.KindOf(err))
	assert.ErrorIs(t, err, customError.ErrInsufficientPoints)
	points, _ := balanceOf(t, f, "u1")
	assert.Equal(t, int64(100), points)
	assert.Equal(t, 0, testutil.CountRows(t, f.db, "reward_redemptions"))
}

func TestRedeemReward_Success(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 300, 1, "")
	testutil.CreateReward(t, f.db, "r1", 200)

	redemption, err := newLedger(f, f.store).RedeemReward(context.Background(), "u1", "r1")

	require.NoError(t, err)
	assert.Equal(t, "u1", redemption.UserID)
	assert.Equal(t, "r1", redemption.RewardID)
	assert.Len(t, redemption.Code, redemptionCodeLength)
	assert.Regexp(t, `^[0-9A-F]+$`, redemption.Code)
	assert.True(t, redemption.RedemptionDate.Equal(testutil.Now))

	points, level := balanceOf(t, f, "u1")
	assert.Equal(t, int64(100), points)
	assert.Equal(t, 1, level)
	assert.Equal(t, 1, testutil.CountRows(t, f.db, "reward_redemptions"))
}

func TestRedeemReward_LevelDropsWithBalance(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 1200, 3, "")
	testutil.CreateReward(t, f.db, "r1", 800)

	_, err := newLedger(f, f.store).RedeemReward(context.Background(), "u1", "r1")
	require.NoError(t, err)

	points, level := balanceOf(t, f, "u1")
	assert.Equal(t, int64(400), points)
	assert.Equal(t, 1, level)
}

func TestRedeemReward_UnknownRewardOrUser(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 1000, 3, "")
	testutil.CreateReward(t, f.db, "r1", 200)
	ledger := newLedger(f, f.store)

	_, err := ledger.RedeemReward(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, customError.ErrRewardNotFound)

	_, err = ledger.RedeemReward(context.Background(), "ghost", "r1")
	assert.ErrorIs(t, err, customError.ErrUserNotFound)
}

func TestRedeemReward_ReplayDoesNotDebitTwice(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 500, 2, "")
	testutil.CreateReward(t, f.db, "r1", 200)

	lost := true
	gateway := &faultGateway{
		Store: f.store,
		wrap:  func(r repository.Repos) repository.Repos { return r },
		afterCommit: func() error {
			if lost {
				lost = false
				return customError.WrapConnectionError(errors.New("connection lost after commit"))
			}
			return nil
		},
	}

	redemption, err := newLedger(f, gateway).RedeemReward(context.Background(), "u1", "r1")

	require.NoError(t, err)
	assert.Equal(t, "r1", redemption.RewardID)
	points, _ := balanceOf(t, f, "u1")
	assert.Equal(t, int64(300), points)
	assert.Equal(t, 1, testutil.CountRows(t, f.db, "reward_redemptions"))
	assert.Len(t, f.delays, 1)
}

func TestRedeemReward_LostBalanceRaceIsRetried(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 500, 2, "")
	testutil.CreateReward(t, f.db, "r1", 200)

	users := &failingUsers{lostRaces: 1}
	gateway := &faultGateway{Store: f.store, wrap: func(r repository.Repos) repository.Repos {
		users.UserRepository = r.Users
		r.Users = users
		return r
	}}

	_, err := newLedger(f, gateway).RedeemReward(context.Background(), "u1", "r1")

	require.NoError(t, err)
	assert.Equal(t, 2, users.calls)
	points, _ := balanceOf(t, f, "u1")
	assert.Equal(t, int64(300), points)
	assert.Equal(t, 1, testutil.CountRows(t, f.db, "reward_redemptions"))
}

func TestAddPoints(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 450, 1, "")

	newLedger(f, f.store).AddPoints(context.Background(), "u1", 100, "profile_update")

	points, level := balanceOf(t, f, "u1")
	assert.Equal(t, int64(550), points)
	assert.Equal(t, 2, level)
	assert.Equal(t, logrus.InfoLevel, f.hook.LastEntry().Level)
}

func TestAddPoints_IgnoresNonPositiveAmounts(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 450, 1, "")

	newLedger(f, f.store).AddPoints(context.Background(), "u1", -50, "refund")

	points, _ := balanceOf(t, f, "u1")
	assert.Equal(t, int64(450), points)
}

func TestAddPoints_FailureIsLoggedNotReturned(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		getErr   error
		wantKind customError.Kind
	}{
		{name: "unknown user", userID: "ghost", wantKind: customError.KindValidation},
		{name: "backend down", userID: "u1", getErr: customError.WrapConnectionError(errors.New("no route to host")), wantKind: customError.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			testutil.CreateUser(t, f.db, "u1", 0, 1, "")
			users := &failingUsers{getErr: tt.getErr}
			gateway := &faultGateway{Store: f.store, wrap: func(r repository.Repos) repository.Repos {
				users.UserRepository = r.Users
				r.Users = users
				return r
			}}

			assert.NotPanics(t, func() {
				newLedger(f, gateway).AddPoints(context.Background(), tt.userID, 10, "profile_update")
			})

			entry := f.hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.ErrorLevel, entry.Level)
			assert.Equal(t, "Failed to add points", entry.Message)
			assert.Equal(t, tt.userID, entry.Data["user_id"])
			assert.Equal(t, int64(10), entry.Data["amount"])
			assert.Equal(t, "profile_update", entry.Data["reason"])
			assert.Equal(t, tt.wantKind, entry.Data["kind"])

			points, _ := balanceOf(t, f, "u1")
			assert.Equal(t, int64(0), points)
		})
	}
}

func TestLedgerQueries(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 1000, 3, "")
	testutil.CreateReward(t, f.db, "cheap", 100)
	testutil.CreateReward(t, f.db, "pricey", 700)
	ledger := newLedger(f, f.store)
	ctx := context.Background()

	rewards, err := ledger.ListRewards(ctx)
	require.NoError(t, err)
	assert.Len(t, rewards, 2)

	_, err = ledger.RedeemReward(ctx, "u1", "cheap")
	require.NoError(t, err)
	_, err = ledger.RedeemReward(ctx, "u1", "pricey")
	require.NoError(t, err)

	history, err := ledger.ListRedemptions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
	points, _ := balanceOf(t, f, "u1")
	assert.Equal(t, int64(200), points)
}

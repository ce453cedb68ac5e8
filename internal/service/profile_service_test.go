package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/testutil"
	customError "github.com/segyhp/lending-engine/pkg/errors"
)

type mockAccruer struct {
	mock.Mock
}

func (m *mockAccruer) AddPoints(ctx context.Context, userID string, amount int64, reason string) {
	m.Called(ctx, userID, amount, reason)
}

func newProfileService(f *fixture, points PointsAccruer) *ProfileService {
	svc := NewProfileService(f.store, f.exec, points, 10, f.log)
	svc.now = fixedClock
	return svc
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	svc := newProfileService(f, newLedger(f, f.store))
	ctx := context.Background()

	user, err := svc.Register(ctx, &domain.RegisterUserRequest{Email: " Ana@Example.com ", FullName: "Ana Souza"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, int64(0), user.Points)
	assert.Equal(t, 1, user.Level)

	_, err = svc.Register(ctx, &domain.RegisterUserRequest{Email: "ana@example.com", FullName: "Another Ana"})
	require.Error(t, err)
	assert.Equal(t, customError.KindValidation, customError.KindOf(err))
	assert.ErrorIs(t, err, customError.ErrEmailTaken)
	assert.Equal(t, 1, testutil.CountRows(t, f.db, "users"))
}

func TestUpdateProfile_AwardsPoints(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 495, 1, "")
	svc := newProfileService(f, newLedger(f, f.store))

	user, err := svc.UpdateProfile(context.Background(), "u1", &domain.UpdateProfileRequest{
		FullName:   "Maria Silva",
		DocumentID: "123.456.789-01",
		Phone:      "11999990000",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", user.FullName)
	assert.Equal(t, "123.456.789-01", user.DocumentID)
	assert.Equal(t, int64(505), user.Points)
	assert.Equal(t, 2, user.Level)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	f := newFixture(t)
	accruer := &mockAccruer{}
	svc := newProfileService(f, accruer)

	_, err := svc.UpdateProfile(context.Background(), "ghost", &domain.UpdateProfileRequest{FullName: "Nobody"})

	assert.ErrorIs(t, err, customError.ErrUserNotFound)
	accruer.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_CallsAccrualWithConfiguredAmount(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 0, 1, "")
	accruer := &mockAccruer{}
	accruer.On("AddPoints", mock.Anything, "u1", int64(10), "profile_update").Return()
	svc := newProfileService(f, accruer)

	user, err := svc.UpdateProfile(context.Background(), "u1", &domain.UpdateProfileRequest{FullName: "Maria Silva"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), user.Points)
	accruer.AssertExpectations(t)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	testutil.CreateUser(t, f.db, "u1", 42, 1, "")
	svc := newProfileService(f, &mockAccruer{})

	user, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.Points)

	_, err = svc.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, customError.ErrUserNotFound)
}

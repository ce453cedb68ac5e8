package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/internal/repository"
)

// MockGateway hands out the same mocked repositories inside and outside transactions.
type MockGateway struct {
	Offers    *MockOfferRepository
	Requests  *MockRequestRepository
	Contracts *MockContractRepository
	Users     *MockUserRepository
	Rewards   *MockRewardRepository
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Offers:    &MockOfferRepository{},
		Requests:  &MockRequestRepository{},
		Contracts: &MockContractRepository{},
		Users:     &MockUserRepository{},
		Rewards:   &MockRewardRepository{},
	}
}

func (g *MockGateway) Repos() repository.Repos {
	return repository.Repos{
		Offers:    g.Offers,
		Requests:  g.Requests,
		Contracts: g.Contracts,
		Users:     g.Users,
		Rewards:   g.Rewards,
	}
}

func (g *MockGateway) WithinTx(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(g.Repos())
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByLender(ctx context.Context, lenderID string) ([]*domain.Offer, error) {
	args := m.Called(ctx, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.LoanRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.LoanRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}

func (m *MockRequestRepository) ExistsPending(ctx context.Context, offerID, borrowerID string) (bool, error) {
	args := m.Called(ctx, offerID, borrowerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

func (m *MockRequestRepository) ListPendingByOfferIDs(ctx context.Context, offerIDs []string) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx, offerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByRequestID(ctx context.Context, requestID string) (*domain.Contract, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Contract, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) ListDueBefore(ctx context.Context, before time.Time) ([]*domain.Contract, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetPoints(ctx context.Context, id string, expected, points int64, level int) (bool, error) {
	args := m.Called(ctx, id, expected, points, level)
	return args.Bool(0), args.Error(1)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) List(ctx context.Context) ([]*domain.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reward), args.Error(1)
}

func (m *MockRewardRepository) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reward), args.Error(1)
}

func (m *MockRewardRepository) CreateRedemption(ctx context.Context, redemption *domain.RewardRedemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

func (m *MockRewardRepository) GetRedemption(ctx context.Context, id string) (*domain.RewardRedemption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRedemption), args.Error(1)
}

func (m *MockRewardRepository) ListRedemptionsByUser(ctx context.Context, userID string) ([]*domain.RewardRedemption, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RewardRedemption), args.Error(1)
}

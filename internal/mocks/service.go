package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-engine/internal/domain"
)

type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) CreateOfferForLender(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockLendingService) ListOffers(ctx context.Context) ([]*domain.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}

func (m *MockLendingService) SimulateOffer(ctx context.Context, offerID string) (*domain.OfferSimulation, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OfferSimulation), args.Error(1)
}

func (m *MockLendingService) RequestLoan(ctx context.Context, offerID, borrowerID string) (*domain.LoanRequest, error) {
	args := m.Called(ctx, offerID, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}

func (m *MockLendingService) ApproveRequest(ctx context.Context, requestID, lenderID string) (*domain.Contract, error) {
	args := m.Called(ctx, requestID, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockLendingService) RejectRequest(ctx context.Context, requestID, lenderID string) (*domain.LoanRequest, error) {
	args := m.Called(ctx, requestID, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}

func (m *MockLendingService) ListRequestsForBorrower(ctx context.Context, borrowerID string) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

func (m *MockLendingService) ListPendingRequestsForLender(ctx context.Context, lenderID string) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

func (m *MockLendingService) ListContractsForUser(ctx context.Context, userID string) ([]*domain.Contract, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) ListRewards(ctx context.Context) ([]*domain.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reward), args.Error(1)
}

func (m *MockRewardService) RedeemReward(ctx context.Context, userID, rewardID string) (*domain.RewardRedemption, error) {
	args := m.Called(ctx, userID, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRedemption), args.Error(1)
}

func (m *MockRewardService) ListRedemptions(ctx context.Context, userID string) ([]*domain.RewardRedemption, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RewardRedemption), args.Error(1)
}

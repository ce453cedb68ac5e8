package repository

import (
	"context"
	"time"

	"github.com/segyhp/lending-engine/internal/domain"
)

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	// Create persists a new offer
	Create(ctx context.Context, offer *domain.Offer) error

	// GetByID retrieves an offer by its ID
	GetByID(ctx context.Context, id string) (*domain.Offer, error)

	// List returns every offer, newest first
	List(ctx context.Context) ([]*domain.Offer, error)

	// ListByLender returns the offers published by a lender
	ListByLender(ctx context.Context, lenderID string) ([]*domain.Offer, error)
}

// RequestRepository defines the interface for loan request data operations
type RequestRepository interface {
	// Create persists a new loan request
	Create(ctx context.Context, req *domain.LoanRequest) error

	// GetByID retrieves a loan request by its ID
	GetByID(ctx context.Context, id string) (*domain.LoanRequest, error)

	// ExistsPending reports whether the borrower has a PENDING request for the offer
	ExistsPending(ctx context.Context, offerID, borrowerID string) (bool, error)

	// ListByBorrower returns a borrower's requests, newest first
	ListByBorrower(ctx context.Context, borrowerID string) ([]*domain.LoanRequest, error)

	// ListPendingByOfferIDs returns the PENDING requests made against any of the offers
	ListPendingByOfferIDs(ctx context.Context, offerIDs []string) ([]*domain.LoanRequest, error)

	// UpdateStatus moves a request from one status to another.
	// It returns false when the request was not in the expected status.
	UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (bool, error)
}

// ContractRepository defines the interface for contract data operations
type ContractRepository interface {
	// Create persists a new contract
	Create(ctx context.Context, contract *domain.Contract) error

	// GetByRequestID retrieves the contract produced by a request
	GetByRequestID(ctx context.Context, requestID string) (*domain.Contract, error)

	// ListByUser returns the contracts where the user is borrower or lender
	ListByUser(ctx context.Context, userID string) ([]*domain.Contract, error)

	// ListDueBefore returns active contracts whose next payment is due at or before the given time
	ListDueBefore(ctx context.Context, before time.Time) ([]*domain.Contract, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error

	// SetPoints writes a new balance and level only if the stored balance still equals expected.
	SetPoints(ctx context.Context, id string, expected, points int64, level int) (bool, error)
}

// RewardRepository defines the interface for the reward catalog and redemptions
type RewardRepository interface {
	List(ctx context.Context) ([]*domain.Reward, error)
	GetByID(ctx context.Context, id string) (*domain.Reward, error)
	CreateRedemption(ctx context.Context, redemption *domain.RewardRedemption) error
	GetRedemption(ctx context.Context, id string) (*domain.RewardRedemption, error)
	ListRedemptionsByUser(ctx context.Context, userID string) ([]*domain.RewardRedemption, error)
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Offers    OfferRepository
	Requests  RequestRepository
	Contracts ContractRepository
	Users     UserRepository
	Rewards   RewardRepository
}

// Gateway is the persistence boundary used by the services.
type Gateway interface {
	// Repos returns repositories that run outside any transaction
	Repos() Repos

	// WithinTx runs fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

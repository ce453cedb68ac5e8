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

// OfferCache is the read-through cache in front of the offer list.
type OfferCache interface {
	GetOffers(ctx context.Context) ([]*domain.Offer, bool, error)
	SetOffers(ctx context.Context, offers []*domain.Offer) error
	Invalidate(ctx context.Context) error
}

// LendingService owns the offer, request and contract lifecycle.
// It is the only writer of request status and contracts.
type LendingService struct {
	gateway repository.Gateway
	exec    *retry.Executor
	cache   OfferCache
	log     *logrus.Entry
	now     func() time.Time
	newID   func() string
}

// NewLendingService creates the service. cache may be nil, in which case offers are always
// read from the database.
func NewLendingService(gateway repository.Gateway, exec *retry.Executor, cache OfferCache, log *logrus.Logger) *LendingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LendingService{
		gateway: gateway,
		exec:    exec,
		cache:   cache,
		log:     log.WithField("component", "lending"),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// WithClock replaces the time source used for created and due dates.
func (s *LendingService) WithClock(now func() time.Time) *LendingService {
	s.now = now
	return s
}

// CreateOffer validates the terms against the lender level and persists the offer.
func (s *LendingService) CreateOffer(ctx context.Context, req *domain.CreateOfferRequest, lenderLevel int) (*domain.Offer, error) {
	validation := utils.ValidateOffer(req.Amount, req.TermMonths, req.MonthlyRatePercent, lenderLevel)
	if !validation.Valid {
		return nil, customError.WrapOfferRuleViolation(string(validation.Rule), validation.Reason)
	}

	offer := &domain.Offer{
		ID:                 s.newID(),
		LenderID:           req.LenderID,
		Amount:             req.Amount,
		MonthlyRatePercent: req.MonthlyRatePercent,
		TermMonths:         req.TermMonths,
		Description:        req.Description,
		CreatedAt:          s.now(),
	}

	err := s.exec.Run(ctx, func(ctx context.Context) error {
		return s.gateway.Repos().Offers.Create(ctx, offer)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOffers(ctx)

	s.log.WithFields(logrus.Fields{
		"offer_id":  offer.ID,
		"lender_id": offer.LenderID,
		"amount":    offer.Amount.String(),
	}).Info("Offer created")

	return offer, nil
}

// CreateOfferForLender creates an offer using the level stored for the lender.
func (s *LendingService) CreateOfferForLender(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error) {
	lender, err := s.loadUser(ctx, req.LenderID)
	if err != nil {
		return nil, err
	}

	return s.CreateOffer(ctx, req, lender.Level)
}

// CreateRequest opens a PENDING request for the borrower against the offer.
func (s *LendingService) CreateRequest(ctx context.Context, offer *domain.Offer, borrower *domain.User) (*domain.LoanRequest, error) {
	if strings.TrimSpace(borrower.DocumentID) == "" {
		return nil, customError.WrapMissingDocument(borrower.ID)
	}

	req := &domain.LoanRequest{
		ID:              s.newID(),
		OfferID:         offer.ID,
		BorrowerID:      borrower.ID,
		AmountRequested: offer.Amount,
		Status:          domain.RequestStatusPending,
		RequestDate:     s.now(),
	}

	err := s.exec.Run(ctx, func(ctx context.Context) error {
		return s.gateway.WithinTx(ctx, func(r repository.Repos) error {
			// an earlier attempt may have committed before failing to report success
			if _, err := r.Requests.GetByID(ctx, req.ID); err == nil {
				return nil
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			exists, err := r.Requests.ExistsPending(ctx, offer.ID, borrower.ID)
			if err != nil {
				return err
			}
			if exists {
				return customError.WrapDuplicateRequest(offer.ID, borrower.ID)
			}

			if err := r.Requests.Create(ctx, req); err != nil {
				if errors.Is(err, repository.ErrDuplicateKey) {
					return customError.WrapDuplicateRequest(offer.ID, borrower.ID)
				}
				return err
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  req.ID,
		"offer_id":    offer.ID,
		"borrower_id": borrower.ID,
	}).Info("Loan request created")

	return req, nil
}

// RequestLoan loads the offer and borrower and then behaves like CreateRequest.
func (s *LendingService) RequestLoan(ctx context.Context, offerID, borrowerID string) (*domain.LoanRequest, error) {
	offer, err := retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.Offer, error) {
		offer, err := s.gateway.Repos().Offers.GetByID(ctx, offerID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapOfferNotFound(offerID)
		}
		return offer, err
	})
	if err != nil {
		return nil, err
	}

	borrower, err := s.loadUser(ctx, borrowerID)
	if err != nil {
		return nil, err
	}

	return s.CreateRequest(ctx, offer, borrower)
}

// ApproveRequest moves a PENDING request to APPROVED and creates its contract.
// Both writes share one transaction, so an approved request always has a contract.
func (s *LendingService) ApproveRequest(ctx context.Context, requestID, lenderID string) (*domain.Contract, error) {
	contractID := s.newID()

	contract, err := retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.Contract, error) {
		var contract *domain.Contract
		err := s.gateway.WithinTx(ctx, func(r repository.Repos) error {
			req, offer, err := s.loadDecision(ctx, r, requestID, lenderID)
			if err != nil {
				return err
			}

			if !req.IsPending() {
				if req.Status == domain.RequestStatusApproved {
					existing, err := r.Contracts.GetByRequestID(ctx, req.ID)
					if err == nil && existing.ID == contractID {
						contract = existing
						return nil
					}
				}
				return customError.WrapRequestNotPending(req.ID, string(req.Status))
			}

			if err := s.transition(ctx, r, req.ID, domain.RequestStatusApproved); err != nil {
				return err
			}

			monthlyPayment := utils.CalculateInstallment(req.AmountRequested, offer.MonthlyRatePercent, offer.TermMonths)
			totalAmount := utils.CalculateTotalAmount(monthlyPayment, offer.TermMonths)
			createdAt := s.now()

			c := &domain.Contract{
				ID:              contractID,
				RequestID:       req.ID,
				OfferID:         offer.ID,
				BorrowerID:      req.BorrowerID,
				LenderID:        offer.LenderID,
				TotalAmount:     totalAmount,
				MonthlyPayment:  monthlyPayment,
				RemainingAmount: totalAmount,
				TermMonths:      offer.TermMonths,
				MonthsPaid:      0,
				Status:          domain.ContractStatusActive,
				CreatedAt:       createdAt,
				NextPaymentDate: utils.CalculateNextPaymentDate(createdAt),
			}
			if err := r.Contracts.Create(ctx, c); err != nil {
				return err
			}

			contract = c
			return nil
		})
		return contract, err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"contract_id":     contract.ID,
		"lender_id":       lenderID,
		"monthly_payment": contract.MonthlyPayment.StringFixed(2),
	}).Info("Loan request approved")

	return contract, nil
}

// RejectRequest moves a PENDING request to REJECTED.
func (s *LendingService) RejectRequest(ctx context.Context, requestID, lenderID string) (*domain.LoanRequest, error) {
	req, err := retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.LoanRequest, error) {
		var rejected *domain.LoanRequest
		err := s.gateway.WithinTx(ctx, func(r repository.Repos) error {
			req, _, err := s.loadDecision(ctx, r, requestID, lenderID)
			if err != nil {
				return err
			}
			if !req.IsPending() {
				return customError.WrapRequestNotPending(req.ID, string(req.Status))
			}

			if err := s.transition(ctx, r, req.ID, domain.RequestStatusRejected); err != nil {
				return err
			}

			req.Status = domain.RequestStatusRejected
			rejected = req
			return nil
		})
		return rejected, err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"lender_id":  lenderID,
	}).Info("Loan request rejected")

	return req, nil
}

// ListOffers returns every offer, served from the cache when possible.
func (s *LendingService) ListOffers(ctx context.Context) ([]*domain.Offer, error) {
	if s.cache != nil {
		offers, hit, err := s.cache.GetOffers(ctx)
		if err != nil {
			s.log.WithError(err).Warn("Offer cache read failed")
		} else if hit {
			return offers, nil
		}
	}

	offers, err := retry.Do(ctx, s.exec, func(ctx context.Context) ([]*domain.Offer, error) {
		return s.gateway.Repos().Offers.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetOffers(ctx, offers); err != nil {
			s.log.WithError(err).Warn("Offer cache write failed")
		}
	}

	return offers, nil
}

// WarmOfferCache reloads the offer list from the database into the cache.
func (s *LendingService) WarmOfferCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}

	offers, err := retry.Do(ctx, s.exec, func(ctx context.Context) ([]*domain.Offer, error) {
		return s.gateway.Repos().Offers.List(ctx)
	})
	if err != nil {
		return 0, err
	}

	if err := s.cache.SetOffers(ctx, offers); err != nil {
		return 0, err
	}
	return len(offers), nil
}

// SimulateOffer previews the installment schedule a borrower would get for an offer.
func (s *LendingService) SimulateOffer(ctx context.Context, offerID string) (*domain.OfferSimulation, error) {
	offer, err := retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.Offer, error) {
		offer, err := s.gateway.Repos().Offers.GetByID(ctx, offerID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapOfferNotFound(offerID)
		}
		return offer, err
	})
	if err != nil {
		return nil, err
	}

	monthlyPayment := utils.CalculateInstallment(offer.Amount, offer.MonthlyRatePercent, offer.TermMonths)
	return &domain.OfferSimulation{
		Offer:          offer,
		MonthlyPayment: monthlyPayment,
		TotalAmount:    utils.CalculateTotalAmount(monthlyPayment, offer.TermMonths),
	}, nil
}

func (s *LendingService) ListRequestsForBorrower(ctx context.Context, borrowerID string) ([]*domain.LoanRequest, error) {
	return retry.Do(ctx, s.exec, func(ctx context.Context) ([]*domain.LoanRequest, error) {
		return s.gateway.Repos().Requests.ListByBorrower(ctx, borrowerID)
	})
}

// ListPendingRequestsForLender returns PENDING requests made against the lender's offers.
func (s *LendingService) ListPendingRequestsForLender(ctx context.Context, lenderID string) ([]*domain.LoanRequest, error) {
	return retry.Do(ctx, s.exec, func(ctx context.Context) ([]*domain.LoanRequest, error) {
		repos := s.gateway.Repos()

		offers, err := repos.Offers.ListByLender(ctx, lenderID)
		if err != nil {
			return nil, err
		}

		offerIDs := make([]string, 0, len(offers))
		for _, offer := range offers {
			offerIDs = append(offerIDs, offer.ID)
		}

		return repos.Requests.ListPendingByOfferIDs(ctx, offerIDs)
	})
}

// ListContractsForUser returns contracts where the user is borrower or lender.
func (s *LendingService) ListContractsForUser(ctx context.Context, userID string) ([]*domain.Contract, error) {
	return retry.Do(ctx, s.exec, func(ctx context.Context) ([]*domain.Contract, error) {
		return s.gateway.Repos().Contracts.ListByUser(ctx, userID)
	})
}

// ListContractsDueBefore returns active contracts with a payment due at or before the given time.
func (s *LendingService) ListContractsDueBefore(ctx context.Context, before time.Time) ([]*domain.Contract, error) {
	return retry.Do(ctx, s.exec, func(ctx context.Context) ([]*domain.Contract, error) {
		return s.gateway.Repos().Contracts.ListDueBefore(ctx, before)
	})
}

func (s *LendingService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	return retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.User, error) {
		user, err := s.gateway.Repos().Users.GetByID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapUserNotFound(userID)
		}
		return user, err
	})
}

// loadDecision loads a request and its offer and checks the lender owns the offer.
func (s *LendingService) loadDecision(ctx context.Context, r repository.Repos, requestID, lenderID string) (*domain.LoanRequest, *domain.Offer, error) {
	req, err := r.Requests.GetByID(ctx, requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, customError.WrapRequestNotFound(requestID)
	}
	if err != nil {
		return nil, nil, err
	}

	offer, err := r.Offers.GetByID(ctx, req.OfferID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, customError.WrapOfferNotFound(req.OfferID)
	}
	if err != nil {
		return nil, nil, err
	}

	if offer.LenderID != lenderID {
		return nil, nil, customError.WrapLenderMismatch(requestID, lenderID)
	}

	return req, offer, nil
}

// transition applies PENDING -> to. Losing the compare-and-set to a concurrent decision
// is reported as the request no longer being pending.
func (s *LendingService) transition(ctx context.Context, r repository.Repos, requestID string, to domain.RequestStatus) error {
	ok, err := r.Requests.UpdateStatus(ctx, requestID, domain.RequestStatusPending, to)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	current, err := r.Requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	return customError.WrapRequestNotPending(requestID, string(current.Status))
}

func (s *LendingService) invalidateOffers(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("Offer cache invalidation failed")
	}
}

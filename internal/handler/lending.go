package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/response"
)

// LendingService is the part of the lending engine the HTTP layer drives.
type LendingService interface {
	CreateOfferForLender(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error)
	ListOffers(ctx context.Context) ([]*domain.Offer, error)
	SimulateOffer(ctx context.Context, offerID string) (*domain.OfferSimulation, error)
	RequestLoan(ctx context.Context, offerID, borrowerID string) (*domain.LoanRequest, error)
	ApproveRequest(ctx context.Context, requestID, lenderID string) (*domain.Contract, error)
	RejectRequest(ctx context.Context, requestID, lenderID string) (*domain.LoanRequest, error)
	ListRequestsForBorrower(ctx context.Context, borrowerID string) ([]*domain.LoanRequest, error)
	ListPendingRequestsForLender(ctx context.Context, lenderID string) ([]*domain.LoanRequest, error)
	ListContractsForUser(ctx context.Context, userID string) ([]*domain.Contract, error)
}

type LendingHandler struct {
	service   LendingService
	validator *validator.Validate
	log       *logrus.Entry
}

func NewLendingHandler(service LendingService, log *logrus.Logger) *LendingHandler {
	return &LendingHandler{
		service:   service,
		validator: newValidator(),
		log:       log.WithField("component", "lending_handler"),
	}
}

// CreateOffer publishes a new loan offer
func (h *LendingHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOfferRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	offer, err := h.service.CreateOfferForLender(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, offer)
}

func (h *LendingHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListOffers(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, offers)
}

// SimulateOffer returns the installment and total a borrower would pay
func (h *LendingHandler) SimulateOffer(w http.ResponseWriter, r *http.Request) {
	simulation, err := h.service.SimulateOffer(r.Context(), mux.Vars(r)["offerId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, simulation)
}

// RequestLoan files a borrower request against an offer
func (h *LendingHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoanRequestRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	request, err := h.service.RequestLoan(r.Context(), mux.Vars(r)["offerId"], req.BorrowerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, request)
}

// ApproveRequest accepts a pending request and returns the new contract
func (h *LendingHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.DecideRequestRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	contract, err := h.service.ApproveRequest(r.Context(), mux.Vars(r)["requestId"], req.LenderID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, contract)
}

func (h *LendingHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.DecideRequestRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	request, err := h.service.RejectRequest(r.Context(), mux.Vars(r)["requestId"], req.LenderID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, request)
}

func (h *LendingHandler) ListBorrowerRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListRequestsForBorrower(r.Context(), mux.Vars(r)["borrowerId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, requests)
}

func (h *LendingHandler) ListPendingForLender(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListPendingRequestsForLender(r.Context(), mux.Vars(r)["lenderId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, requests)
}

func (h *LendingHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.service.ListContractsForUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, contracts)
}

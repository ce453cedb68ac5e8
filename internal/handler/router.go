package handler

import (
	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint onto a gorilla router
func NewRouter(lending *LendingHandler, ledger *LedgerHandler, health *HealthHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", health.Health).Methods("GET")
	router.HandleFunc("/health/ready", health.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users", ledger.Register).Methods("POST")
	api.HandleFunc("/users/{userId}", ledger.GetUser).Methods("GET")
	api.HandleFunc("/users/{userId}/profile", ledger.UpdateProfile).Methods("PUT")
	api.HandleFunc("/users/{userId}/contracts", lending.ListContracts).Methods("GET")
	api.HandleFunc("/users/{userId}/redemptions", ledger.ListRedemptions).Methods("GET")

	api.HandleFunc("/offers", lending.CreateOffer).Methods("POST")
	api.HandleFunc("/offers", lending.ListOffers).Methods("GET")
	api.HandleFunc("/offers/{offerId}/simulation", lending.SimulateOffer).Methods("GET")
	api.HandleFunc("/offers/{offerId}/requests", lending.RequestLoan).Methods("POST")

	api.HandleFunc("/borrowers/{borrowerId}/requests", lending.ListBorrowerRequests).Methods("GET")
	api.HandleFunc("/lenders/{lenderId}/requests/pending", lending.ListPendingForLender).Methods("GET")
	api.HandleFunc("/requests/{requestId}/approve", lending.ApproveRequest).Methods("POST")
	api.HandleFunc("/requests/{requestId}/reject", lending.RejectRequest).Methods("POST")

	api.HandleFunc("/rewards", ledger.ListRewards).Methods("GET")
	api.HandleFunc("/rewards/{rewardId}/redeem", ledger.RedeemReward).Methods("POST")

	return router
}

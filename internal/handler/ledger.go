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

type ProfileService interface {
	Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

type RewardService interface {
	ListRewards(ctx context.Context) ([]*domain.Reward, error)
	RedeemReward(ctx context.Context, userID, rewardID string) (*domain.RewardRedemption, error)
	ListRedemptions(ctx context.Context, userID string) ([]*domain.RewardRedemption, error)
}

// LedgerHandler serves user profiles and the points reward catalog
type LedgerHandler struct {
	profiles  ProfileService
	rewards   RewardService
	validator *validator.Validate
	log       *logrus.Entry
}

func NewLedgerHandler(profiles ProfileService, rewards RewardService, log *logrus.Logger) *LedgerHandler {
	return &LedgerHandler{
		profiles:  profiles,
		rewards:   rewards,
		validator: newValidator(),
		log:       log.WithField("component", "ledger_handler"),
	}
}

func (h *LedgerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.profiles.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, user)
}

func (h *LedgerHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.profiles.GetUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, user)
}

// UpdateProfile stores profile fields and returns the user with any points awarded
func (h *LedgerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.profiles.UpdateProfile(r.Context(), mux.Vars(r)["userId"], &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, user)
}

func (h *LedgerHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewards.ListRewards(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, rewards)
}

func (h *LedgerHandler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	var req domain.RedeemRewardRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	redemption, err := h.rewards.RedeemReward(r.Context(), req.UserID, mux.Vars(r)["rewardId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, redemption)
}

func (h *LedgerHandler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := h.rewards.ListRedemptions(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, redemptions)
}

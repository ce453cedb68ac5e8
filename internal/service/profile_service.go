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
)

const reasonProfileUpdate = "profile_update"

// PointsAccruer credits points without reporting failures.
type PointsAccruer interface {
	AddPoints(ctx context.Context, userID string, amount int64, reason string)
}

type ProfileService struct {
	gateway       repository.Gateway
	exec          *retry.Executor
	points        PointsAccruer
	profilePoints int64
	log           *logrus.Entry
	now           func() time.Time
	newID         func() string
}

func NewProfileService(gateway repository.Gateway, exec *retry.Executor, points PointsAccruer, profilePoints int64, log *logrus.Logger) *ProfileService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProfileService{
		gateway:       gateway,
		exec:          exec,
		points:        points,
		profilePoints: profilePoints,
		log:           log.WithField("component", "profile"),
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

// Register creates a level 1 user with no points.
func (s *ProfileService) Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error) {
	now := s.now()
	user := &domain.User{
		ID:        s.newID(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:  strings.TrimSpace(req.FullName),
		Points:    0,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.exec.Run(ctx, func(ctx context.Context) error {
		err := s.gateway.Repos().Users.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicateKey) {
			if _, getErr := s.gateway.Repos().Users.GetByID(ctx, user.ID); getErr == nil {
				return nil
			}
			return customError.WrapEmailTaken(user.Email)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// UpdateProfile stores the personal data and awards the profile update bonus.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.User, error) {
		repos := s.gateway.Repos()

		user, err := repos.Users.GetByID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapUserNotFound(userID)
		}
		if err != nil {
			return nil, err
		}

		user.FullName = strings.TrimSpace(req.FullName)
		user.DocumentID = strings.TrimSpace(req.DocumentID)
		user.Phone = strings.TrimSpace(req.Phone)
		user.UpdatedAt = s.now()

		if err := repos.Users.UpdateProfile(ctx, user); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, customError.WrapUserNotFound(userID)
			}
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	s.points.AddPoints(ctx, userID, s.profilePoints, reasonProfileUpdate)

	updated, err := s.GetUser(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Could not reload user after profile update")
		return user, nil
	}
	return updated, nil
}

func (s *ProfileService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return retry.Do(ctx, s.exec, func(ctx context.Context) (*domain.User, error) {
		user, err := s.gateway.Repos().Users.GetByID(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapUserNotFound(userID)
		}
		return user, err
	})
}

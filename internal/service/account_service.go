package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/persistence"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/internal/worker"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// AccountService coordinates CRUD maintenance of user records.
type AccountService struct {
	users      repository.UserRepository
	cache      persistence.UserCache
	hashes     *worker.HashPool
	dispatcher events.Dispatcher
	logger     *zap.Logger
	opTimeout  time.Duration
}

// AccountDependencies encapsulates collaborator requirements for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Cache      persistence.UserCache
	HashPool   *worker.HashPool
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		cache:      deps.Cache,
		hashes:     deps.HashPool,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		opTimeout:  cfg.App.OpTimeout(),
	}
}

// List returns every user record. No users is an empty slice, not an error.
func (s *AccountService) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("user list failed", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// Get returns the user with the given id, serving cached copies when present.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if cached, err := s.cache.Get(ctx, id); err == nil {
		return cached, nil
	} else if !errors.Is(err, persistence.ErrCacheMiss) {
		s.logger.Warn("user cache read failed", zap.String("id", id), zap.Error(err))
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		s.logger.Error("user fetch failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn("user cache write failed", zap.String("id", id), zap.Error(err))
	}
	return user, nil
}

// Update applies a partial merge onto the stored record. Provided fields pass
// through the creation-time validators and a provided password is re-hashed
// before persisting.
func (s *AccountService) Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		s.logger.Error("user fetch failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Role != nil {
		user.Role = domain.Role(*in.Role)
	}
	if in.Password != nil {
		hash, err := s.hashes.Hash(ctx, *in.Password)
		if err != nil {
			s.logger.Error("password hashing failed", zap.String("id", id), zap.Error(err))
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		s.logger.Error("user update failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("user refetch failed", zap.String("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserUpdated, id,
		events.UserUpdatedPayload{Fields: in.Fields()}))

	return updated, nil
}

// Delete removes the record after confirming it exists and returns a
// confirmation message naming the deleted user.
func (s *AccountService) Delete(ctx context.Context, id string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		s.logger.Error("user fetch failed", zap.String("id", id), zap.Error(err))
		return "", apperrors.NewInternalError(err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		s.logger.Error("user delete failed", zap.String("id", id), zap.Error(err))
		return "", apperrors.NewInternalError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserDeleted, id,
		events.UserDeletedPayload{Email: user.Email}))

	return fmt.Sprintf("User %s deleted successfully", user.FullName()), nil
}

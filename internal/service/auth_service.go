package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/internal/worker"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// dummyHash absorbs a bcrypt compare when the email is unknown so a miss
// costs roughly the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	hashes     *worker.HashPool
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	opTimeout  time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	HashPool   *worker.HashPool
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		hashes:     deps.HashPool,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		opTimeout:  cfg.App.OpTimeout(),
	}
}

// Register creates a new account. The requested role is ignored; every new
// account gets the default role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	hash, err := s.hashes.Hash(ctx, in.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("user insert failed", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID,
		events.UserRegisteredPayload{Email: user.Email}))

	return user, nil
}

// Login authenticates credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*domain.User, string, time.Time, error) {
	if err := in.Validate(); err != nil {
		return nil, "", time.Time{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = s.hashes.Compare(ctx, dummyHash, in.Password)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid email or password")
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if err := s.hashes.Compare(ctx, user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.logger.Error("password verification timed out", zap.Error(err))
			return nil, "", time.Time{}, apperrors.NewInternalError(err)
		}
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.ID, nil))

	return user, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

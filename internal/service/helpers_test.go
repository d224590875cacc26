package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/persistence"
	"github.com/spec-kit/account-service/internal/worker"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeCache is an in-memory stand-in for the Redis user cache.
type fakeCache struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeCache() *fakeCache {
	return &fakeCache{users: make(map[string]*domain.User)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user, ok := c.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, persistence.ErrCacheMiss
}

func (c *fakeCache) Set(_ context.Context, user *domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *user
	c.users[user.ID] = &copied
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, id)
	return nil
}

func (c *fakeCache) contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.users[id]
	return ok
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{OpTimeoutSeconds: 5},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTLHours: 1,
			BcryptCost:    bcrypt.MinCost,
			HashWorkers:   2,
		},
	}
}

func testHashPool(t *testing.T) *worker.HashPool {
	t.Helper()
	pool := worker.NewHashPool(2, bcrypt.MinCost)
	t.Cleanup(pool.Close)
	return pool
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

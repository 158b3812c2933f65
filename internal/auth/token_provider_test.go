package auth

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestTokenProvider_Authenticate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	knownUser := &model.User{ID: "U-1", Email: "shopper@example.com", Role: model.RoleUser, APIToken: "good-token"}

	t.Run("Known token resolves the user", func(t *testing.T) {
		users := new(MockUserRepository)
		provider := NewTokenProvider(users, logger)

		users.On("GetByToken", ctx, "good-token").Return(knownUser, nil)

		user, err := provider.Authenticate(ctx, "good-token")

		require.NoError(t, err)
		assert.Equal(t, knownUser, user)
	})

	t.Run("Unknown token is nil without error", func(t *testing.T) {
		users := new(MockUserRepository)
		provider := NewTokenProvider(users, logger)

		users.On("GetByToken", ctx, "bad-token").Return(nil, nil)

		user, err := provider.Authenticate(ctx, "bad-token")

		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Empty token skips the lookup", func(t *testing.T) {
		users := new(MockUserRepository)
		provider := NewTokenProvider(users, logger)

		user, err := provider.Authenticate(ctx, "")

		require.NoError(t, err)
		assert.Nil(t, user)
		users.AssertNotCalled(t, "GetByToken", mock.Anything, mock.Anything)
	})

	t.Run("Repository failure propagates", func(t *testing.T) {
		users := new(MockUserRepository)
		provider := NewTokenProvider(users, logger)

		users.On("GetByToken", ctx, "good-token").Return(nil, errors.New("database down"))

		user, err := provider.Authenticate(ctx, "good-token")

		require.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestContextRoundTrip(t *testing.T) {
	user := &model.User{ID: "U-1"}

	ctx := WithUser(context.Background(), user)
	assert.Equal(t, user, FromContext(ctx))

	assert.Nil(t, FromContext(context.Background()))
}

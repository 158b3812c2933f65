package repository

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewUserRepository(pool, logger)
	ctx := context.Background()

	admin := model.User{ID: "U-admin", Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin, APIToken: "admin-token"}
	seedUsers(t, pool, []model.User{admin})

	t.Run("GetByToken resolves the owner", func(t *testing.T) {
		got, err := repo.GetByToken(ctx, "admin-token")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, admin.ID, got.ID)
		assert.Equal(t, model.RoleAdmin, got.Role)
	})

	t.Run("GetByToken for unknown token is nil", func(t *testing.T) {
		got, err := repo.GetByToken(ctx, "no-such-token")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Create then GetByID", func(t *testing.T) {
		shopper := &model.User{ID: "U-1", Email: "shopper@example.com", Name: "Shopper", Role: model.RoleUser, APIToken: "user-token"}
		require.NoError(t, repo.Create(ctx, shopper))

		got, err := repo.GetByID(ctx, "U-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, shopper.Email, got.Email)
	})

	t.Run("GetByID for unknown user is nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "U-9")

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

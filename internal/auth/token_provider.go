package auth

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// tokenProvider authenticates against per-user API tokens stored in the
// users table.
type tokenProvider struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewTokenProvider creates a Provider backed by the user repository.
func NewTokenProvider(users repository.UserRepository, logger zerolog.Logger) Provider {
	return &tokenProvider{
		users:  users,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Authenticate looks up the user owning the given token.
func (p *tokenProvider) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	user, err := p.users.GetByToken(ctx, token)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to resolve token")
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	if user == nil {
		p.logger.Debug().Msg("unknown token")
		return nil, nil
	}

	return user, nil
}

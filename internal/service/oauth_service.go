package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/internal/oauth"
	"github.com/slopengine/slopengine/internal/repository"
	"github.com/slopengine/slopengine/internal/utils"
	"go.uber.org/zap"
)

// StateStore issues and consumes one-shot OAuth state values
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) error
}

// oauthService turns a provider authorization code into a local user and a
// session token. A failed exchange or profile fetch leaves no user row
// behind; a failed token issue after the upsert keeps the row (harmless, a
// later login retry recovers it).
type oauthService struct {
	registry   *oauth.Registry
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	states     StateStore
	logger     *zap.Logger
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(
	registry *oauth.Registry,
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	states StateStore,
	logger *zap.Logger,
) OAuthService {
	return &oauthService{
		registry:   registry,
		userRepo:   userRepo,
		jwtManager: jwtManager,
		states:     states,
		logger:     logger,
	}
}

// AuthorizationURL begins the login attempt: mint a state and build the
// provider redirect URL
func (s *oauthService) AuthorizationURL(ctx context.Context, providerName string) (string, error) {
	provider, err := oauth.ParseProvider(providerName)
	if err != nil {
		return "", err
	}

	client, err := s.registry.Client(provider)
	if err != nil {
		return "", err
	}

	state, err := s.states.Issue(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to issue oauth state: %w", err)
	}

	return client.AuthCodeURL(state), nil
}

// HandleCallback completes the login attempt: validate state, exchange the
// code, fetch the profile, resolve the user, and issue a session token
func (s *oauthService) HandleCallback(ctx context.Context, providerName, code, state string) (string, error) {
	provider, err := oauth.ParseProvider(providerName)
	if err != nil {
		return "", err
	}

	client, err := s.registry.Client(provider)
	if err != nil {
		return "", err
	}

	if err := s.states.Consume(ctx, state); err != nil {
		return "", fmt.Errorf("state validation failed: %w: %s", ErrProviderError, err)
	}

	token, err := client.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w: %s", ErrProviderError, err)
	}

	profile, err := client.FetchProfile(ctx, token)
	if err != nil {
		if errors.Is(err, oauth.ErrMissingEmail) {
			return "", err
		}
		return "", fmt.Errorf("profile fetch failed: %w: %s", ErrProviderError, err)
	}

	user, err := s.upsertFromOAuth(ctx, profile)
	if err != nil {
		return "", err
	}

	sessionToken, err := s.jwtManager.IssueToken(user.Email)
	if err != nil {
		// The user row stays; a later login retry recovers the account
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("oauth login",
		zap.String("provider", string(provider)),
		zap.Int64("user_id", user.ID),
	)

	return sessionToken, nil
}

// upsertFromOAuth returns the existing user for the profile email, or
// creates one with a placeholder password hash. The placeholder encodes the
// provider deterministically and is never a parseable bcrypt hash, so local
// login can never succeed against it.
func (s *oauthService) upsertFromOAuth(ctx context.Context, profile *oauth.Profile) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &domain.User{
		Email:        profile.Email,
		PasswordHash: PlaceholderHash(profile.Provider),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost a race against a concurrent callback; the winner's row is ours
			return s.userRepo.GetByEmail(ctx, profile.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// PlaceholderHash returns the non-usable password hash stored for
// OAuth-only accounts
func PlaceholderHash(provider oauth.Provider) string {
	return fmt.Sprintf("oauth:%s", provider)
}

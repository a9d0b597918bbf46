package auth

import (
	"context"
	"fmt"

	"github.com/Gkemhcs/janus-backend/internal/auth/jwt"
	"github.com/Gkemhcs/janus-backend/internal/oauth"
	"github.com/Gkemhcs/janus-backend/internal/oauth/provider"
	"github.com/sirupsen/logrus"
)

// AuthService provides authentication logic on top of the OAuth orchestration
// service: it runs the login flow and mints session JWTs for users who
// complete it.
type AuthService struct {
	oauth  *oauth.Service
	jwter  *jwt.Manager
	logger *logrus.Logger
}

// NewAuthService creates a new AuthService with the given OAuth service and
// JWT manager. This enables dependency injection and testability.
func NewAuthService(oauthSvc *oauth.Service, jwter *jwt.Manager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		oauth:  oauthSvc,
		jwter:  jwter,
		logger: logger,
	}
}

// BeginLogin starts a login attempt and returns the provider authorization
// URL to redirect the user to.
func (s *AuthService) BeginLogin(providerName, redirectURI, nextURL string) (string, error) {
	return s.oauth.BeginLogin(providerName, redirectURI, nextURL, nil)
}

// CompleteLogin finishes a login attempt from the provider callback and
// mints a session JWT for the authenticated user.
func (s *AuthService) CompleteLogin(ctx context.Context, providerName, code, state string) (*LoginResult, error) {
	info, token, rec, err := s.oauth.CompleteLogin(ctx, providerName, code, state)
	if err != nil {
		return nil, err
	}

	sessionToken, err := s.jwter.Generate(jwt.CreateJwtParams{
		Provider: info.Provider,
		OAuthID:  info.OAuthID,
		Email:    info.Email,
		Username: info.Username,
	})
	if err != nil {
		s.logger.Errorf("Session JWT generation error: %v", err)
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &LoginResult{
		User:         info,
		Token:        token,
		SessionToken: sessionToken,
		NextURL:      rec.NextURL,
	}, nil
}

// RefreshToken refreshes a provider token via the named provider.
func (s *AuthService) RefreshToken(ctx context.Context, providerName, refreshToken string) (*provider.Token, error) {
	return s.oauth.RefreshToken(ctx, providerName, refreshToken)
}

// RevokeToken asks the named provider to invalidate a token.
func (s *AuthService) RevokeToken(ctx context.Context, providerName, token, tokenTypeHint string) error {
	return s.oauth.RevokeToken(ctx, providerName, token, tokenTypeHint)
}

// Providers lists the registered providers and their configuration status.
func (s *AuthService) Providers() []ProviderStatus {
	names := s.oauth.ListProviders()
	statuses := make([]ProviderStatus, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, ProviderStatus{
			Name:       name,
			Configured: s.oauth.IsProviderConfigured(name),
		})
	}
	return statuses
}

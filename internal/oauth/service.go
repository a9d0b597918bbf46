// Package oauth orchestrates the OAuth2 authorization-code flow across a
// registry of configured providers. It composes the state store's CSRF
// protection with the per-vendor provider clients and exposes the operations
// the host application calls.
package oauth

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
	"github.com/Gkemhcs/janus-backend/internal/oauth/provider"
	"github.com/Gkemhcs/janus-backend/internal/oauth/state"
	"github.com/sirupsen/logrus"
)

// Service orchestrates login attempts across registered providers. Providers
// hold only immutable configuration, so the service is safe for concurrent
// use by any number of simultaneous login attempts; the state store is the
// sole shared mutable resource and carries its own synchronization.
type Service struct {
	mu        sync.RWMutex
	providers map[string]provider.Provider
	states    *state.Store
	stateTTL  time.Duration
	logger    *logrus.Logger
}

// NewService creates a Service backed by the given state store.
func NewService(states *state.Store, stateTTL time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		providers: make(map[string]provider.Provider),
		states:    states,
		stateTTL:  stateTTL,
		logger:    logger,
	}
}

// Register adds a provider to the registry, replacing any previous
// registration under the same name.
func (s *Service) Register(p provider.Provider) {
	s.mu.Lock()
	s.providers[p.Name()] = p
	s.mu.Unlock()
	s.logger.Infof("Registered OAuth provider %s (configured=%v)", p.Name(), p.IsConfigured())
}

// Provider returns the registered provider for name, if any.
func (s *Service) Provider(name string) (provider.Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[name]
	return p, ok
}

// ListProviders returns the sorted names of all registered providers.
func (s *Service) ListProviders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsProviderConfigured reports whether name is registered with full client
// credentials.
func (s *Service) IsProviderConfigured(name string) bool {
	p, ok := s.Provider(name)
	return ok && p.IsConfigured()
}

// BeginLogin starts a login attempt: it creates a CSRF state token and
// returns the provider's authorization URL for the host to redirect the user
// to. BeginLogin is idempotent from the host's perspective; retrying simply
// issues a fresh state.
func (s *Service) BeginLogin(providerName, redirectURI, nextURL string, extra map[string]any) (string, error) {
	p, ok := s.Provider(providerName)
	if !ok {
		return "", apperrors.NewInvalidProviderError(providerName)
	}
	token, err := s.states.Create(providerName, redirectURI, s.stateTTL, nextURL, extra)
	if err != nil {
		return "", err
	}
	s.logger.Debugf("Created login state for provider %s", providerName)
	return p.BuildAuthorizationURL(redirectURI, token, nil, nil), nil
}

// CompleteLogin finishes a login attempt from the provider callback. The
// state token is validated and consumed before anything else; no network
// call happens against an unvalidated state, and once consumed the token is
// permanently spent regardless of how the rest of the call fares. A state
// bound to a different provider than the one named is rejected the same way
// as a missing one, since a cross-provider mismatch is itself a CSRF signal.
func (s *Service) CompleteLogin(ctx context.Context, providerName, code, stateToken string) (*provider.UserInfo, *provider.Token, *state.Record, error) {
	p, ok := s.Provider(providerName)
	if !ok {
		return nil, nil, nil, apperrors.NewInvalidProviderError(providerName)
	}

	rec, ok := s.states.Validate(stateToken)
	if !ok {
		s.logger.Warnf("State validation failed for provider %s", providerName)
		return nil, nil, nil, apperrors.NewStateValidationError(providerName)
	}
	if rec.Provider != providerName {
		s.logger.Warnf("State provider mismatch: state issued for %s, callback claims %s", rec.Provider, providerName)
		return nil, nil, nil, apperrors.NewStateValidationError(providerName)
	}

	token, err := p.ExchangeCode(ctx, code, rec.RedirectURI)
	if err != nil {
		s.logger.Errorf("Code exchange failed for provider %s: %v", providerName, err)
		return nil, nil, nil, err
	}

	raw, err := p.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		s.logger.Errorf("User info fetch failed for provider %s: %v", providerName, err)
		return nil, nil, nil, err
	}
	info, err := p.NormalizeUserInfo(raw)
	if err != nil {
		s.logger.Errorf("User info normalization failed for provider %s: %v", providerName, err)
		return nil, nil, nil, err
	}

	s.logger.Infof("Completed login for provider %s, oauth_id=%s", providerName, info.OAuthID)
	return info, token, rec, nil
}

// RefreshToken passes a refresh grant through to the named provider.
func (s *Service) RefreshToken(ctx context.Context, providerName, refreshToken string) (*provider.Token, error) {
	p, ok := s.Provider(providerName)
	if !ok {
		return nil, apperrors.NewInvalidProviderError(providerName)
	}
	return p.RefreshToken(ctx, refreshToken)
}

// RevokeToken asks the named provider to invalidate a token. Revocation is
// advisory cleanup: provider failures are logged and swallowed, only an
// unknown provider name is surfaced.
func (s *Service) RevokeToken(ctx context.Context, providerName, token, tokenTypeHint string) error {
	p, ok := s.Provider(providerName)
	if !ok {
		return apperrors.NewInvalidProviderError(providerName)
	}
	if err := p.RevokeToken(ctx, token, tokenTypeHint); err != nil {
		if apperrors.IsProviderNotConfigured(err) {
			return err
		}
		s.logger.Warnf("Token revocation failed for provider %s: %v", providerName, err)
	}
	return nil
}

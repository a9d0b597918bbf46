// Package provider implements the uniform OAuth2 client contract for the
// identity providers the service can log users in with. Each vendor differs
// only in endpoint URLs, default scope, request encoding quirks, and how the
// raw profile payload maps onto the canonical UserInfo; the Provider
// interface is identical across all of them so the oauth service can treat
// them polymorphically.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
)

// defaultTimeout bounds every network call to a provider endpoint.
const defaultTimeout = 10 * time.Second

// Provider defines the capability contract every OAuth provider variant
// implements. Implementations hold only immutable configuration and are safe
// for concurrent use.
type Provider interface {
	// Name returns the stable provider identifier (e.g., "github").
	Name() string
	// AuthorizeURL returns the provider's authorization endpoint.
	AuthorizeURL() string
	// TokenURL returns the provider's token endpoint.
	TokenURL() string
	// UserInfoURL returns the provider's user-info endpoint.
	UserInfoURL() string
	// DefaultScope returns the scopes requested when the caller supplies none.
	DefaultScope() []string
	// IsConfigured reports whether both client ID and client secret are set.
	IsConfigured() bool
	// BuildAuthorizationURL constructs the authorize URL for the given
	// redirect URI and state. A nil scope falls back to the configured or
	// default scope; extraParams are merged in verbatim and win on collision.
	// Caller-supplied maps and slices are never mutated.
	BuildAuthorizationURL(redirectURI, state string, scope []string, extraParams map[string]string) string
	// ExchangeCode trades an authorization code for a token.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*Token, error)
	// RefreshToken obtains a fresh token via the refresh grant.
	RefreshToken(ctx context.Context, refreshToken string) (*Token, error)
	// FetchUserInfo retrieves the raw profile payload for an access token.
	FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error)
	// RevokeToken asks the provider to invalidate a token. Revocation is
	// advisory cleanup; callers treat failures as non-fatal.
	RevokeToken(ctx context.Context, token, tokenTypeHint string) error
	// NormalizeUserInfo maps a raw profile payload into the canonical record.
	NormalizeUserInfo(raw map[string]any) (*UserInfo, error)
}

// baseClient owns the HTTP plumbing shared by all provider variants:
// form-encoded token requests, authenticated user-info fetches, and
// best-effort revocation. Variants embed it and supply endpoints, scope, and
// normalization.
type baseClient struct {
	name         string
	clientID     string
	clientSecret string
	scope        []string // configured override; empty means defaultScope
	defaultScope []string
	authorizeURL string
	tokenURL     string
	userInfoURL  string
	revokeURL    string
	httpClient   *http.Client
}

func newBaseClient(name string, cfg Config, defaults baseClient) baseClient {
	b := defaults
	b.name = name
	b.clientID = cfg.ClientID
	b.clientSecret = cfg.ClientSecret
	b.scope = cfg.Scope
	if cfg.AuthorizeURL != "" {
		b.authorizeURL = cfg.AuthorizeURL
	}
	if cfg.TokenURL != "" {
		b.tokenURL = cfg.TokenURL
	}
	if cfg.UserInfoURL != "" {
		b.userInfoURL = cfg.UserInfoURL
	}
	if cfg.RevokeURL != "" {
		b.revokeURL = cfg.RevokeURL
	}
	b.httpClient = cfg.HTTPClient
	if b.httpClient == nil {
		b.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return b
}

func (b *baseClient) Name() string         { return b.name }
func (b *baseClient) AuthorizeURL() string { return b.authorizeURL }
func (b *baseClient) TokenURL() string     { return b.tokenURL }
func (b *baseClient) UserInfoURL() string  { return b.userInfoURL }

func (b *baseClient) DefaultScope() []string { return b.defaultScope }

// IsConfigured reports whether both client credentials are present.
func (b *baseClient) IsConfigured() bool {
	return b.clientID != "" && b.clientSecret != ""
}

// resolveScope picks the effective scope: caller override, then configured
// override, then the vendor default.
func (b *baseClient) resolveScope(override []string) []string {
	if len(override) > 0 {
		return override
	}
	if len(b.scope) > 0 {
		return b.scope
	}
	return b.defaultScope
}

// BuildAuthorizationURL constructs the provider's authorize endpoint URL with
// the standard authorization-code parameters. extraParams win on collision.
func (b *baseClient) BuildAuthorizationURL(redirectURI, state string, scope []string, extraParams map[string]string) string {
	u, err := url.Parse(b.authorizeURL)
	if err != nil {
		return b.authorizeURL
	}
	q := u.Query()
	q.Set("client_id", b.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("state", state)
	q.Set("scope", strings.Join(b.resolveScope(scope), " "))
	for k, v := range extraParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ExchangeCode trades an authorization code for a token via the standard
// form-encoded grant.
func (b *baseClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*Token, error) {
	if !b.IsConfigured() {
		return nil, apperrors.NewProviderNotConfiguredError(b.name)
	}
	form := url.Values{}
	form.Set("client_id", b.clientID)
	form.Set("client_secret", b.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("grant_type", "authorization_code")
	return b.requestToken(ctx, form, false)
}

// RefreshToken obtains a fresh token via the refresh grant.
func (b *baseClient) RefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	if !b.IsConfigured() {
		return nil, apperrors.NewProviderNotConfiguredError(b.name)
	}
	form := url.Values{}
	form.Set("client_id", b.clientID)
	form.Set("client_secret", b.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")
	return b.requestToken(ctx, form, true)
}

// requestToken posts a form to the token endpoint and parses the response.
// refresh selects which error kind a failure maps to. Some vendors (GitHub)
// answer errors with HTTP 200 and an error body, so the decoded payload is
// checked as well.
func (b *baseClient) requestToken(ctx context.Context, form url.Values, refresh bool) (*Token, error) {
	tokenErr := func(status int, body string, err error) error {
		if refresh {
			return apperrors.NewTokenRefreshError(b.name, status, body, err)
		}
		return apperrors.NewTokenExchangeError(b.name, status, body, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, tokenErr(0, "", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, tokenErr(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tokenErr(resp.StatusCode, "", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, tokenErr(resp.StatusCode, string(body), nil)
	}

	raw, err := decodeJSONMap(body)
	if err != nil {
		return nil, tokenErr(resp.StatusCode, string(body), err)
	}
	if errCode := stringField(raw, "error"); errCode != "" {
		return nil, tokenErr(resp.StatusCode, string(body), nil)
	}

	token := newToken(raw)
	if token.AccessToken == "" {
		return nil, tokenErr(resp.StatusCode, string(body), nil)
	}
	return token, nil
}

// FetchUserInfo performs an authenticated GET against the user-info endpoint
// and returns the decoded payload.
func (b *baseClient) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	if !b.IsConfigured() {
		return nil, apperrors.NewProviderNotConfiguredError(b.name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.userInfoURL, nil)
	if err != nil {
		return nil, apperrors.NewUserInfoError(b.name, 0, "", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUserInfoError(b.name, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUserInfoError(b.name, resp.StatusCode, "", nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUserInfoError(b.name, resp.StatusCode, "", err)
	}
	raw, err := decodeJSONMap(body)
	if err != nil {
		return nil, apperrors.NewUserInfoError(b.name, resp.StatusCode, "unable to parse user info response", err)
	}
	return raw, nil
}

// RevokeToken posts the token to the revocation endpoint with client
// credentials, the shape most vendors accept. Variants with a different
// revocation protocol override this.
func (b *baseClient) RevokeToken(ctx context.Context, token, tokenTypeHint string) error {
	if !b.IsConfigured() {
		return apperrors.NewProviderNotConfiguredError(b.name)
	}
	if b.revokeURL == "" {
		return nil
	}
	form := url.Values{}
	form.Set("token", token)
	if tokenTypeHint != "" {
		form.Set("token_type_hint", tokenTypeHint)
	}
	form.Set("client_id", b.clientID)
	form.Set("client_secret", b.clientSecret)
	return b.postRevocation(ctx, form)
}

func (b *baseClient) postRevocation(ctx context.Context, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("revocation rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

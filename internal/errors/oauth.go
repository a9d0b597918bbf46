package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// OAuthErrorKind discriminates the failure classes of the OAuth login flow.
type OAuthErrorKind string

// Failure classes surfaced by the oauth service and provider layers.
const (
	KindInvalidProvider       OAuthErrorKind = "invalid_provider"
	KindProviderNotConfigured OAuthErrorKind = "provider_not_configured"
	KindStateValidation       OAuthErrorKind = "state_validation_failed"
	KindTokenExchange         OAuthErrorKind = "token_exchange_failed"
	KindTokenRefresh          OAuthErrorKind = "token_refresh_failed"
	KindUserInfo              OAuthErrorKind = "user_info_failed"
)

// OAuthError is the root error type for all OAuth flow failures. Callers can
// match broadly with errors.As or narrowly via the Kind predicates below.
type OAuthError struct {
	Kind       OAuthErrorKind
	Provider   string
	Message    string
	StatusCode int    // Upstream HTTP status, when the provider answered
	Body       string // Upstream error body, when available
	Err        error  // Wrapped cause
}

// Error implements the error interface for OAuthError.
func (e *OAuthError) Error() string {
	msg := "oauth: " + e.Message
	if e.Provider != "" {
		msg = fmt.Sprintf("oauth: provider %s: %s", e.Provider, e.Message)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *OAuthError) Unwrap() error {
	return e.Err
}

// NewInvalidProviderError reports an unknown or unregistered provider name.
func NewInvalidProviderError(provider string) *OAuthError {
	return &OAuthError{
		Kind:     KindInvalidProvider,
		Provider: provider,
		Message:  fmt.Sprintf("provider %q is not registered", provider),
	}
}

// NewProviderNotConfiguredError reports missing client credentials.
func NewProviderNotConfiguredError(provider string) *OAuthError {
	return &OAuthError{
		Kind:     KindProviderNotConfigured,
		Provider: provider,
		Message:  fmt.Sprintf("provider %q is not configured", provider),
	}
}

// NewStateValidationError reports a rejected state token. The message is
// deliberately uniform: whether the token was missing, expired, consumed, or
// bound to another provider is not disclosed to callers.
func NewStateValidationError(provider string) *OAuthError {
	return &OAuthError{
		Kind:     KindStateValidation,
		Provider: provider,
		Message:  "state token is invalid or expired",
	}
}

// NewTokenExchangeError reports a failed authorization-code exchange.
func NewTokenExchangeError(provider string, statusCode int, body string, err error) *OAuthError {
	return &OAuthError{
		Kind:       KindTokenExchange,
		Provider:   provider,
		Message:    "token exchange failed",
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}

// NewTokenRefreshError reports a rejected refresh grant. Callers should treat
// it as "re-authentication required".
func NewTokenRefreshError(provider string, statusCode int, body string, err error) *OAuthError {
	return &OAuthError{
		Kind:       KindTokenRefresh,
		Provider:   provider,
		Message:    "token refresh failed",
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}

// NewUserInfoError reports a failed or unusable profile fetch.
func NewUserInfoError(provider string, statusCode int, message string, err error) *OAuthError {
	if message == "" {
		message = "user info fetch failed"
	}
	return &OAuthError{
		Kind:       KindUserInfo,
		Provider:   provider,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

func isOAuthKind(err error, kind OAuthErrorKind) bool {
	var oe *OAuthError
	if stderrors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// IsInvalidProvider reports whether err is an unknown-provider failure.
func IsInvalidProvider(err error) bool { return isOAuthKind(err, KindInvalidProvider) }

// IsProviderNotConfigured reports whether err is a missing-credentials failure.
func IsProviderNotConfigured(err error) bool { return isOAuthKind(err, KindProviderNotConfigured) }

// IsStateValidation reports whether err is a rejected state token.
func IsStateValidation(err error) bool { return isOAuthKind(err, KindStateValidation) }

// IsTokenExchange reports whether err is a failed code exchange.
func IsTokenExchange(err error) bool { return isOAuthKind(err, KindTokenExchange) }

// IsTokenRefresh reports whether err is a rejected refresh grant.
func IsTokenRefresh(err error) bool { return isOAuthKind(err, KindTokenRefresh) }

// IsUserInfo reports whether err is a failed profile fetch.
func IsUserInfo(err error) bool { return isOAuthKind(err, KindUserInfo) }

// FromOAuthError maps an oauth flow failure onto the API error envelope.
func FromOAuthError(err error) *APIError {
	var oe *OAuthError
	if !stderrors.As(err, &oe) {
		return ErrInternalServer
	}
	switch oe.Kind {
	case KindInvalidProvider:
		return NewAPIError("invalid_provider", oe.Message, http.StatusNotFound)
	case KindProviderNotConfigured:
		return NewAPIError("provider_not_configured", oe.Message, http.StatusServiceUnavailable)
	case KindStateValidation:
		return NewAPIError("state_validation_failed", oe.Message, http.StatusBadRequest)
	case KindTokenExchange:
		return NewAPIError("token_exchange_failed", oe.Message, http.StatusBadGateway)
	case KindTokenRefresh:
		return NewAPIError("token_refresh_failed", oe.Message, http.StatusUnauthorized)
	case KindUserInfo:
		return NewAPIError("user_info_failed", oe.Message, http.StatusBadGateway)
	default:
		return ErrInternalServer
	}
}

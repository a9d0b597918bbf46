package auth

import (
	"github.com/Gkemhcs/janus-backend/internal/oauth/provider"
)

// LoginResult is returned to the host application once a login attempt
// completes: the canonical user, the provider token, the session JWT minted
// for the user, and the post-login redirect target captured at BeginLogin.
type LoginResult struct {
	User         *provider.UserInfo `json:"user"`
	Token        *provider.Token    `json:"token"`
	SessionToken string             `json:"session_token"`
	NextURL      string             `json:"next_url,omitempty"`
}

// ProviderStatus describes one registered provider to API consumers.
type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// RefreshRequest is the body of a refresh call.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RevokeRequest is the body of a revoke call.
type RevokeRequest struct {
	Token         string `json:"token" binding:"required"`
	TokenTypeHint string `json:"token_type_hint"`
}

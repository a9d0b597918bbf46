package provider

import (
	"context"
	"net/url"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
)

// Google default endpoints (OpenID Connect).
const (
	googleAuthorizeURL = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
	googleRevokeURL    = "https://oauth2.googleapis.com/revoke"
)

// Google implements the Provider contract for Google OAuth2 with OIDC. Token
// responses carry an id_token, which is preserved on the Token but otherwise
// opaque to this service.
type Google struct {
	baseClient
}

// NewGoogle creates a Google provider from the given configuration.
func NewGoogle(cfg Config) *Google {
	return &Google{
		baseClient: newBaseClient("google", cfg, baseClient{
			authorizeURL: googleAuthorizeURL,
			tokenURL:     googleTokenURL,
			userInfoURL:  googleUserInfoURL,
			revokeURL:    googleRevokeURL,
			defaultScope: []string{"openid", "email", "profile"},
		}),
	}
}

// RevokeToken posts only the token to Google's revocation endpoint, which
// does not take client credentials.
func (g *Google) RevokeToken(ctx context.Context, token, tokenTypeHint string) error {
	if !g.IsConfigured() {
		return apperrors.NewProviderNotConfiguredError(g.name)
	}
	form := url.Values{}
	form.Set("token", token)
	return g.postRevocation(ctx, form)
}

// NormalizeUserInfo maps a Google OIDC userinfo payload onto the canonical
// record. The stable identifier is the "sub" claim.
func (g *Google) NormalizeUserInfo(raw map[string]any) (*UserInfo, error) {
	sub := stringField(raw, "sub")
	if sub == "" {
		return nil, apperrors.NewUserInfoError(g.name, 0, "profile payload is missing the sub claim", nil)
	}
	return &UserInfo{
		Provider:      g.name,
		OAuthID:       sub,
		Email:         stringField(raw, "email"),
		EmailVerified: boolField(raw, "email_verified"),
		FirstName:     stringField(raw, "given_name"),
		LastName:      stringField(raw, "family_name"),
		AvatarURL:     stringField(raw, "picture"),
		ProfileURL:    stringField(raw, "profile"),
		RawData:       raw,
	}, nil
}

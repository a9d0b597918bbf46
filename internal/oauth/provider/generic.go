package provider

import (
	"fmt"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
)

// Generic implements the Provider contract for any OAuth2/OIDC-compliant
// identity provider. All endpoints and the scope come from configuration;
// normalization assumes standard OIDC claim names.
type Generic struct {
	baseClient
}

// NewGeneric creates a provider for an arbitrary OIDC-compliant IdP. The
// authorize, token, and user-info endpoints are required; the revocation
// endpoint is optional.
func NewGeneric(name string, cfg Config) (*Generic, error) {
	if name == "" {
		return nil, fmt.Errorf("generic provider requires a name")
	}
	if cfg.AuthorizeURL == "" || cfg.TokenURL == "" || cfg.UserInfoURL == "" {
		return nil, fmt.Errorf("generic provider %q requires authorize, token, and user info URLs", name)
	}
	scope := cfg.Scope
	if len(scope) == 0 {
		scope = []string{"openid", "email", "profile"}
	}
	return &Generic{
		baseClient: newBaseClient(name, cfg, baseClient{
			defaultScope: scope,
		}),
	}, nil
}

// NormalizeUserInfo maps standard OIDC userinfo claims onto the canonical
// record.
func (g *Generic) NormalizeUserInfo(raw map[string]any) (*UserInfo, error) {
	oauthID := stringField(raw, "sub")
	if oauthID == "" {
		oauthID = numericID(raw, "id")
	}
	if oauthID == "" {
		return nil, apperrors.NewUserInfoError(g.name, 0, "profile payload is missing the user identifier", nil)
	}
	return &UserInfo{
		Provider:      g.name,
		OAuthID:       oauthID,
		Email:         stringField(raw, "email"),
		EmailVerified: boolField(raw, "email_verified"),
		Username:      stringField(raw, "preferred_username"),
		FirstName:     stringField(raw, "given_name"),
		LastName:      stringField(raw, "family_name"),
		AvatarURL:     stringField(raw, "picture"),
		ProfileURL:    stringField(raw, "profile"),
		RawData:       raw,
	}, nil
}

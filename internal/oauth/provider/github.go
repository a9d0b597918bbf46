package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
)

// GitHub default endpoints. GitHub answers token requests with a form-encoded
// body unless JSON is requested explicitly, which the shared client does.
const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserInfoURL  = "https://api.github.com/user"
	githubRevokeURL    = "https://api.github.com/applications"
)

// GitHub implements the Provider contract for GitHub OAuth2.
type GitHub struct {
	baseClient
}

// NewGitHub creates a GitHub provider from the given configuration.
func NewGitHub(cfg Config) *GitHub {
	return &GitHub{
		baseClient: newBaseClient("github", cfg, baseClient{
			authorizeURL: githubAuthorizeURL,
			tokenURL:     githubTokenURL,
			userInfoURL:  githubUserInfoURL,
			revokeURL:    githubRevokeURL,
			defaultScope: []string{"read:user", "user:email"},
		}),
	}
}

// RevokeToken deletes the grant via GitHub's applications API, which uses
// basic auth with the client credentials instead of a form-encoded POST.
func (g *GitHub) RevokeToken(ctx context.Context, token, tokenTypeHint string) error {
	if !g.IsConfigured() {
		return apperrors.NewProviderNotConfiguredError(g.name)
	}
	endpoint := fmt.Sprintf("%s/%s/token", g.revokeURL, g.clientID)
	body := strings.NewReader(fmt.Sprintf(`{"access_token":%q}`, token))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.clientID, g.clientSecret)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("revocation rejected with status %d", resp.StatusCode)
	}
	return nil
}

// NormalizeUserInfo maps a GitHub /user payload onto the canonical record.
// GitHub reports numeric user IDs, which are stringified; the display name is
// split into first and last name components when present.
func (g *GitHub) NormalizeUserInfo(raw map[string]any) (*UserInfo, error) {
	oauthID := numericID(raw, "id")
	if oauthID == "" {
		return nil, apperrors.NewUserInfoError(g.name, 0, "profile payload is missing the user id", nil)
	}
	first, last := splitName(stringField(raw, "name"))
	return &UserInfo{
		Provider:   g.name,
		OAuthID:    oauthID,
		Email:      stringField(raw, "email"),
		Username:   stringField(raw, "login"),
		FirstName:  first,
		LastName:   last,
		AvatarURL:  stringField(raw, "avatar_url"),
		ProfileURL: stringField(raw, "html_url"),
		RawData:    raw,
	}, nil
}

// numericID stringifies a provider user ID that may arrive as a JSON number
// or a string.
func numericID(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// splitName breaks a display name into first and last components on the
// first space. A single-word name becomes the first name.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

package provider

import (
	"fmt"
	"strings"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
)

// Discord default endpoints.
const (
	discordAuthorizeURL = "https://discord.com/api/oauth2/authorize"
	discordTokenURL     = "https://discord.com/api/oauth2/token"
	discordUserInfoURL  = "https://discord.com/api/users/@me"
	discordRevokeURL    = "https://discord.com/api/oauth2/token/revoke"

	discordCDN = "https://cdn.discordapp.com"
)

// Discord implements the Provider contract for Discord OAuth2. Token and
// revocation requests follow the standard form-encoded shape the shared
// client already speaks.
type Discord struct {
	baseClient
}

// NewDiscord creates a Discord provider from the given configuration.
func NewDiscord(cfg Config) *Discord {
	return &Discord{
		baseClient: newBaseClient("discord", cfg, baseClient{
			authorizeURL: discordAuthorizeURL,
			tokenURL:     discordTokenURL,
			userInfoURL:  discordUserInfoURL,
			revokeURL:    discordRevokeURL,
			defaultScope: []string{"identify", "email"},
		}),
	}
}

// NormalizeUserInfo maps a Discord /users/@me payload onto the canonical
// record. Discord returns an avatar hash rather than a URL; the CDN URL is
// composed from the user ID and hash, with animated avatars (hash prefixed
// "a_") served as GIF.
func (d *Discord) NormalizeUserInfo(raw map[string]any) (*UserInfo, error) {
	id := stringField(raw, "id")
	if id == "" {
		return nil, apperrors.NewUserInfoError(d.name, 0, "profile payload is missing the user id", nil)
	}
	return &UserInfo{
		Provider:      d.name,
		OAuthID:       id,
		Email:         stringField(raw, "email"),
		EmailVerified: boolField(raw, "verified"),
		Username:      stringField(raw, "username"),
		FirstName:     stringField(raw, "global_name"),
		AvatarURL:     discordAvatarURL(id, stringField(raw, "avatar")),
		RawData:       raw,
	}, nil
}

// discordAvatarURL builds the CDN URL for a user avatar hash. An empty hash
// means the user has no custom avatar.
func discordAvatarURL(userID, hash string) string {
	if hash == "" {
		return ""
	}
	ext := "png"
	if strings.HasPrefix(hash, "a_") {
		ext = "gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s", discordCDN, userID, hash, ext)
}

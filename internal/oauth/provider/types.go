package provider

import (
	"encoding/json"
	"net/http"
	"time"
)

// UserInfo is the canonical user profile all provider responses normalize
// into. Provider and OAuthID are always non-empty once constructed; every
// other field is optional and left as the zero value when the provider did
// not supply it. The full upstream payload is preserved in RawData.
type UserInfo struct {
	Provider      string         `json:"provider"` // OAuth provider name (e.g., github, google)
	OAuthID       string         `json:"oauth_id"` // Provider-unique user identifier
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"email_verified"`
	Username      string         `json:"username,omitempty"`
	FirstName     string         `json:"first_name,omitempty"`
	LastName      string         `json:"last_name,omitempty"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	ProfileURL    string         `json:"profile_url,omitempty"`
	RawData       map[string]any `json:"raw_data,omitempty"`
}

// FullName combines first and last name when both are present, otherwise
// returns whichever one exists, otherwise the empty string.
func (u *UserInfo) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.LastName
}

// Token holds an OAuth2 access token and the metadata returned alongside it.
// ExpiresAt is pinned once at construction from the current clock; a zero
// ExpiresAt means the provider did not report a lifetime.
type Token struct {
	AccessToken  string         `json:"access_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int            `json:"expires_in,omitempty"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	Scope        string         `json:"scope,omitempty"`
	IDToken      string         `json:"id_token,omitempty"` // OIDC ID token, opaque to this service
	ExpiresAt    time.Time      `json:"expires_at,omitempty"`
	RawResponse  map[string]any `json:"-"`
}

// newToken builds a Token from a decoded token-endpoint response, defaulting
// the token type to Bearer.
func newToken(raw map[string]any) *Token {
	t := &Token{
		AccessToken:  stringField(raw, "access_token"),
		TokenType:    stringField(raw, "token_type"),
		RefreshToken: stringField(raw, "refresh_token"),
		Scope:        stringField(raw, "scope"),
		IDToken:      stringField(raw, "id_token"),
		RawResponse:  raw,
	}
	if t.TokenType == "" {
		t.TokenType = "Bearer"
	}
	if v, ok := raw["expires_in"].(float64); ok && v > 0 {
		t.ExpiresIn = int(v)
		t.ExpiresAt = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return t
}

// Config carries the per-provider settings the host application supplies.
// Only ClientID and ClientSecret are required; endpoint overrides exist for
// self-hosted instances, Scope overrides the vendor default.
type Config struct {
	ClientID     string
	ClientSecret string
	Scope        []string     // Optional scope override
	AuthorizeURL string       // Optional endpoint override
	TokenURL     string       // Optional endpoint override
	UserInfoURL  string       // Optional endpoint override
	RevokeURL    string       // Optional endpoint override
	HTTPClient   *http.Client // Optional transport override
}

// decodeJSONMap decodes a JSON object body into a generic map.
func decodeJSONMap(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// stringField reads a string value from a decoded JSON map, returning the
// empty string when absent or differently typed.
func stringField(raw map[string]any, key string) string {
	v, _ := raw[key].(string)
	return v
}

// boolField reads a bool value from a decoded JSON map.
func boolField(raw map[string]any, key string) bool {
	v, _ := raw[key].(bool)
	return v
}

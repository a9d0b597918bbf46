package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenericRequiresEndpoints(t *testing.T) {
	tests := []struct {
		name string
		id   string
		cfg  Config
	}{
		{name: "missing name", id: "", cfg: Config{AuthorizeURL: "a", TokenURL: "t", UserInfoURL: "u"}},
		{name: "missing authorize URL", id: "idp", cfg: Config{TokenURL: "t", UserInfoURL: "u"}},
		{name: "missing token URL", id: "idp", cfg: Config{AuthorizeURL: "a", UserInfoURL: "u"}},
		{name: "missing user info URL", id: "idp", cfg: Config{AuthorizeURL: "a", TokenURL: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeneric(tt.id, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestGenericDefaultsToOIDCScope(t *testing.T) {
	p, err := NewGeneric("keycloak", Config{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthorizeURL: "https://idp.example.com/authorize",
		TokenURL:     "https://idp.example.com/token",
		UserInfoURL:  "https://idp.example.com/userinfo",
	})
	require.NoError(t, err)
	assert.Equal(t, "keycloak", p.Name())
	assert.Equal(t, []string{"openid", "email", "profile"}, p.DefaultScope())
}

func TestGenericFullFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "generic-access",
			"expires_in":   600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sub":                "user-77",
			"email":              "user@idp.example.com",
			"email_verified":     true,
			"preferred_username": "user77",
			"given_name":         "Generic",
			"family_name":        "User",
			"picture":            "https://idp.example.com/u/77.png",
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	p, err := NewGeneric("keycloak", Config{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthorizeURL: ts.URL + "/authorize",
		TokenURL:     ts.URL + "/token",
		UserInfoURL:  ts.URL + "/userinfo",
	})
	require.NoError(t, err)

	token, err := p.ExchangeCode(context.Background(), "code", "http://localhost/cb")
	require.NoError(t, err)
	assert.Equal(t, "generic-access", token.AccessToken)

	raw, err := p.FetchUserInfo(context.Background(), token.AccessToken)
	require.NoError(t, err)

	info, err := p.NormalizeUserInfo(raw)
	require.NoError(t, err)
	assert.Equal(t, "keycloak", info.Provider)
	assert.Equal(t, "user-77", info.OAuthID)
	assert.Equal(t, "user77", info.Username)
	assert.Equal(t, "Generic User", info.FullName())
	assert.True(t, info.EmailVerified)
}

func TestGenericNormalizeFallsBackToNumericID(t *testing.T) {
	p, err := NewGeneric("legacy", Config{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthorizeURL: "https://idp.example.com/authorize",
		TokenURL:     "https://idp.example.com/token",
		UserInfoURL:  "https://idp.example.com/userinfo",
	})
	require.NoError(t, err)

	info, err := p.NormalizeUserInfo(map[string]any{"id": float64(909)})
	require.NoError(t, err)
	assert.Equal(t, "909", info.OAuthID)
}

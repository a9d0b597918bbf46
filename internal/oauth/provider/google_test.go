package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleEndpoints(t *testing.T) {
	p := NewGoogle(Config{ClientID: "id", ClientSecret: "secret"})

	assert.Equal(t, "google", p.Name())
	assert.Contains(t, p.AuthorizeURL(), "accounts.google.com")
	assert.Contains(t, p.TokenURL(), "oauth2.googleapis.com")
	assert.Contains(t, p.UserInfoURL(), "googleapis.com")
	assert.Equal(t, []string{"openid", "email", "profile"}, p.DefaultScope())
}

func TestGoogleExchangePreservesIDToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "ya29.a0AfH6SMBx",
			"token_type":   "Bearer",
			"expires_in":   3599,
			"scope":        "openid email profile",
			"id_token":     "eyJhbGciOiJSUzI1NiJ9.claims.sig",
		})
	}))
	defer ts.Close()

	p := NewGoogle(Config{ClientID: "id", ClientSecret: "secret", TokenURL: ts.URL})
	token, err := p.ExchangeCode(context.Background(), "code", "http://localhost/cb")
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOiJSUzI1NiJ9.claims.sig", token.IDToken)
	assert.Equal(t, 3599, token.ExpiresIn)
}

func TestGoogleNormalizeUserInfo(t *testing.T) {
	p := NewGoogle(Config{ClientID: "id", ClientSecret: "secret"})

	raw := map[string]any{
		"sub":            "123456789012345678901",
		"name":           "Test User",
		"given_name":     "Test",
		"family_name":    "User",
		"picture":        "https://lh3.googleusercontent.com/a/default-user",
		"email":          "testuser@gmail.com",
		"email_verified": true,
		"hd":             "example.com",
	}

	info, err := p.NormalizeUserInfo(raw)
	require.NoError(t, err)

	assert.Equal(t, "google", info.Provider)
	assert.Equal(t, "123456789012345678901", info.OAuthID)
	assert.Equal(t, "testuser@gmail.com", info.Email)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, "Test", info.FirstName)
	assert.Equal(t, "User", info.LastName)
	assert.Equal(t, "Test User", info.FullName())
	assert.Equal(t, "https://lh3.googleusercontent.com/a/default-user", info.AvatarURL)
	assert.Equal(t, "example.com", info.RawData["hd"], "workspace domain stays in the raw payload")
}

func TestGoogleNormalizeMissingSubFails(t *testing.T) {
	p := NewGoogle(Config{ClientID: "id", ClientSecret: "secret"})

	_, err := p.NormalizeUserInfo(map[string]any{"email": "testuser@gmail.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUserInfo(err))
}

func TestGoogleRevokeSendsTokenOnly(t *testing.T) {
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	p := NewGoogle(Config{ClientID: "id", ClientSecret: "secret", RevokeURL: ts.URL})
	err := p.RevokeToken(context.Background(), "ya29.token", "access_token")
	require.NoError(t, err)

	assert.Equal(t, "ya29.token", gotForm.Get("token"))
	assert.Empty(t, gotForm.Get("client_secret"), "google revocation does not take client credentials")
}

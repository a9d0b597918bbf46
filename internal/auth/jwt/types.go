package jwt

import (
	jwtx "github.com/golang-jwt/jwt/v4"
)

// Claims represents the session JWT claims for a logged-in user, including
// standard and custom fields.
type Claims struct {
	Provider              string `json:"provider"` // OAuth provider name
	OAuthID               string `json:"oauth_id"` // Provider-specific user ID
	Email                 string `json:"email"`    // User email address
	Username              string `json:"username"` // Username or display name
	jwtx.RegisteredClaims        // Embedded standard JWT claims
}

// CreateJwtParams contains the parameters required to generate a session JWT
// for a user.
type CreateJwtParams struct {
	Provider string // OAuth provider name
	OAuthID  string // Provider-specific user ID
	Email    string // User email address
	Username string // Username or display name
}

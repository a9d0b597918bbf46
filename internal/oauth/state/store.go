// Package state owns the CSRF state-token lifecycle for the OAuth login
// flow: creation, one-time validation, and expiry. It is the only stateful,
// concurrency-sensitive piece of the flow; everything else holds immutable
// configuration.
package state

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is the state lifetime used when Create is called without one.
const DefaultTTL = 10 * time.Minute

// tokenBytes is the entropy of a state token. 32 bytes encodes to a 43-char
// base64url string, well past the 128-bit minimum for an unguessable nonce.
const tokenBytes = 32

// Record is the CSRF state bound to a single login attempt. It is created at
// BeginLogin, consumed exactly once at CompleteLogin, and never mutated in
// between.
type Record struct {
	Token       string         `json:"token"` // Random CSRF nonce, also the storage key
	Provider    string         `json:"provider"`
	RedirectURI string         `json:"redirect_uri"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
	NextURL     string         `json:"next_url,omitempty"` // Post-login redirect target, host-supplied
	Extra       map[string]any `json:"extra,omitempty"`    // Caller context carried across the flow
}

// Store issues single-use, time-bounded state tokens and validates them.
// Records live in an expiring in-memory cache; the store's own mutex makes
// Validate's lookup-and-delete atomic, which the cache alone does not
// guarantee. Exactly one of any number of concurrent Validate calls for the
// same token observes the record.
type Store struct {
	mu         sync.Mutex
	cache      *gocache.Cache
	defaultTTL time.Duration
}

// NewStore creates a Store with the given default TTL. A non-positive TTL
// falls back to DefaultTTL.
func NewStore(defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store{
		cache:      gocache.New(defaultTTL, time.Minute),
		defaultTTL: defaultTTL,
	}
}

// Create generates a random state token, stores a record under it, and
// returns the token. A zero ttl uses the store default.
func (s *Store) Create(provider, redirectURI string, ttl time.Duration, nextURL string, extra map[string]any) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()
	rec := &Record{
		Token:       token,
		Provider:    provider,
		RedirectURI: redirectURI,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		NextURL:     nextURL,
		Extra:       extra,
	}

	s.mu.Lock()
	s.cache.Set(token, rec, ttl)
	s.mu.Unlock()

	return token, nil
}

// Validate atomically consumes the record stored under token. It returns the
// record and true exactly once per token; a token that never existed, has
// already been consumed, or has expired yields false. Expiry is inclusive at
// ExpiresAt: the record is still valid at now == ExpiresAt and invalid once
// now > ExpiresAt.
func (s *Store) Validate(token string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(token)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*Record)
	if !ok {
		s.cache.Delete(token)
		return nil, false
	}
	// Lazy expiry: the cache evicts on its own schedule, so the record's
	// deadline is enforced here as well.
	if time.Now().After(rec.ExpiresAt) {
		s.cache.Delete(token)
		return nil, false
	}
	s.cache.Delete(token)
	return rec, true
}

// Len reports the number of live records, expired-but-unevicted ones
// included.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// generateToken returns a cryptographically random base64url string.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

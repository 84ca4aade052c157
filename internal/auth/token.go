package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager supplies bearer tokens to the HTTP layer.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Token is an OAuth2 token as returned by UAA.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope,omitempty"`
	JTI          string    `json:"jti,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can be used, keeping a safety buffer before
// expiry. A token without expiry is considered valid.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}

// ExpiryFromJWT reads the exp claim of an access token without verifying its
// signature. The "bearer " prefix is tolerated.
func ExpiryFromJWT(accessToken string) (time.Time, error) {
	raw := strings.TrimSpace(accessToken)
	if len(raw) > len("bearer ") && strings.EqualFold(raw[:len("bearer ")], "bearer ") {
		raw = raw[len("bearer "):]
	}

	if strings.Count(raw, ".") != constants.TokenPartsCount-1 {
		return time.Time{}, constants.ErrInvalidJWTFormat
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading expiration claim: %w", err)
	}

	if expiresAt == nil {
		return time.Time{}, constants.ErrNoExpirationClaim
	}

	return expiresAt.Time, nil
}

// StaticTokenManager serves a fixed access token.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a manager for token. The expiry is taken from
// the JWT when it can be read.
func NewStaticTokenManager(token string) *StaticTokenManager {
	manager := &StaticTokenManager{store: NewTokenStore()}

	expiresAt, err := ExpiryFromJWT(token)
	if err != nil {
		expiresAt = time.Time{}
	}

	manager.SetToken(token, expiresAt)

	return manager
}

// GetToken returns the static token. An expired token is still returned;
// the server's 401 is more useful to the caller than a local error.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", constants.ErrNoCredentials
	}

	return token.AccessToken, nil
}

// RefreshToken is a no-op for static tokens.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

// SetToken replaces the static token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister persists renewed tokens, typically to the CLI config file.
type ConfigPersister interface {
	SaveToken(token string, expiresAt time.Time, refreshToken string) error
}

// ConfigTokenManager wraps OAuth2TokenManager and persists every renewed token.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	logger          cfapi.Logger
	mutex           sync.Mutex
	lastToken       string
	lastExpiry      time.Time
}

// NewConfigTokenManager creates a config-persisting token manager.
func NewConfigTokenManager(config *OAuth2Config, configPersister ConfigPersister, logger cfapi.Logger) *ConfigTokenManager {
	if logger == nil {
		logger = cfapi.NoopLogger{}
	}

	oauth2Manager := NewOAuth2TokenManager(config)

	manager := &ConfigTokenManager{
		oauth2Manager:   oauth2Manager,
		configPersister: configPersister,
		logger:          logger,
	}

	if current := oauth2Manager.CurrentToken(); current != nil {
		manager.lastToken = current.AccessToken
		manager.lastExpiry = current.ExpiresAt
	}

	return manager
}

// GetToken returns a valid access token, persisting it if it was renewed.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a token refresh and persists the result.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
	m.lastExpiry = expiresAt
}

// TokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) TokenExpiry() time.Time {
	token := m.oauth2Manager.CurrentToken()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *ConfigTokenManager) persistIfChanged() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	current := m.oauth2Manager.CurrentToken()
	if current == nil || (current.AccessToken == m.lastToken && current.ExpiresAt.Equal(m.lastExpiry)) {
		return
	}

	err := m.persistToken(current)
	if err != nil {
		m.logger.Warn("failed to persist refreshed token", map[string]interface{}{"error": err.Error()})

		return
	}

	m.lastToken = current.AccessToken
	m.lastExpiry = current.ExpiresAt
}

func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.SaveToken(token.AccessToken, token.ExpiresAt, token.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

package commands

import (
	"sync"
	"time"
)

// ConfigPersister implements the auth.ConfigPersister interface by writing
// renewed tokens to the CLI config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// SaveToken updates the token and related metadata in the config.
func (p *ConfigPersister) SaveToken(token string, expiresAt time.Time, refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	config.Token = token
	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	if refreshToken != "" {
		config.RefreshToken = refreshToken
	}

	now := time.Now()
	config.LastRefreshed = &now

	return saveConfigStruct(config)
}

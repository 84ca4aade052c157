package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2Config configures token acquisition from UAA.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	AccessToken  string
	Scopes       []string
	// HTTPClient is used for token requests when set.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains and renews tokens with the UAA grants. Grants are
// tried in order: refresh_token, password, client_credentials.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mutex  sync.Mutex
}

type grant struct {
	name  string
	fetch func(ctx context.Context) (*oauth2.Token, error)
}

// NewOAuth2TokenManager creates a token manager. A configured AccessToken is
// used until it expires.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}

	if config.AccessToken != "" {
		expiresAt, err := ExpiryFromJWT(config.AccessToken)
		if err != nil {
			expiresAt = time.Time{}
		}

		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "bearer",
			ExpiresAt:    expiresAt,
		})
	}

	return manager
}

// NewUAATokenManager creates a client credentials manager for a UAA root URL.
func NewUAATokenManager(uaaURL, clientID, clientSecret string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     strings.TrimSuffix(uaaURL, "/") + "/oauth/token",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"cloud_controller.read", "cloud_controller.write"},
	})
}

// NewUAATokenManagerWithPassword creates a password grant manager for a UAA root URL.
func NewUAATokenManagerWithPassword(uaaURL, clientID, clientSecret, username, password string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     strings.TrimSuffix(uaaURL, "/") + "/oauth/token",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		Password:     password,
		Scopes:       []string{"cloud_controller.read", "cloud_controller.write"},
	})
}

// GetToken returns a valid access token, fetching a new one if necessary.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a new token to be fetched.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, err := m.fetchToken(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	m.store.Set(&Token{
		AccessToken:  token,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresAt:    expiresAt,
	})
}

// CurrentToken returns the stored token, including its refresh token.
func (m *OAuth2TokenManager) CurrentToken() *Token {
	return m.store.Get()
}

func (m *OAuth2TokenManager) fetchToken(ctx context.Context) (*Token, error) {
	grants := m.grants()
	if len(grants) == 0 {
		return nil, constants.ErrNoCredentials
	}

	if m.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.config.HTTPClient)
	}

	var errs []error

	for _, grant := range grants {
		fetched, err := grant.fetch(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s grant: %w", grant.name, describeTokenError(err)))

			continue
		}

		token := &Token{
			AccessToken:  fetched.AccessToken,
			RefreshToken: fetched.RefreshToken,
			TokenType:    fetched.TokenType,
			ExpiresAt:    fetched.Expiry,
		}
		if !fetched.Expiry.IsZero() {
			token.ExpiresIn = int(time.Until(fetched.Expiry).Seconds())
		}

		m.store.Set(token)

		return token, nil
	}

	return nil, errors.Join(errs...)
}

func (m *OAuth2TokenManager) grants() []grant {
	var grants []grant

	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	if refreshToken != "" {
		grants = append(grants, grant{name: "refresh_token", fetch: func(ctx context.Context) (*oauth2.Token, error) {
			return m.userConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
		}})
	}

	if m.config.Username != "" && m.config.Password != "" {
		grants = append(grants, grant{name: "password", fetch: func(ctx context.Context) (*oauth2.Token, error) {
			return m.userConfig().PasswordCredentialsToken(ctx, m.config.Username, m.config.Password)
		}})
	}

	if m.config.ClientID != "" && m.config.ClientSecret != "" {
		grants = append(grants, grant{name: "client_credentials", fetch: func(ctx context.Context) (*oauth2.Token, error) {
			config := &clientcredentials.Config{
				ClientID:     m.config.ClientID,
				ClientSecret: m.config.ClientSecret,
				TokenURL:     m.config.TokenURL,
				Scopes:       m.config.Scopes,
				AuthStyle:    oauth2.AuthStyleInHeader,
			}

			return config.Token(ctx)
		}})
	}

	return grants
}

// userConfig is the config for user grants. UAA expects the cf client when
// none is configured.
func (m *OAuth2TokenManager) userConfig() *oauth2.Config {
	clientID := m.config.ClientID
	if clientID == "" {
		clientID = constants.DefaultCFClientID
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: m.config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  m.config.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		Scopes: m.config.Scopes,
	}
}

// describeTokenError surfaces the UAA error payload of a failed token request.
func describeTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return err
	}

	if retrieveErr.ErrorCode != "" {
		return fmt.Errorf("%w: %s: %s", constants.ErrTokenRequestFailed, retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
	}

	return fmt.Errorf("%w: %s", constants.ErrTokenRequestFailed, strings.TrimSpace(string(retrieveErr.Body)))
}

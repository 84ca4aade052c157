package cfapi

import (
	"time"
)

// Logger is the logging interface used by the HTTP layer and helpers.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// HeaderProvider is implemented by requests that carry request-scoped
// headers, such as UAA identity zone switching.
type HeaderProvider interface {
	Headers() map[string]string
}

// Config holds configuration for a Cloud Foundry v2 and UAA client.
//
// Authentication precedence:
//   - AccessToken set: used as a Bearer token. Expiry is read from the JWT
//     when possible.
//   - ClientID/ClientSecret set: OAuth2 client credentials grant.
//   - Username/Password set: OAuth2 password grant (client "cf" unless ClientID
//     is set).
//   - RefreshToken set: refresh grant.
//
// If TokenURL is empty and credentials are present, cfclient.New discovers
// the UAA endpoint from /v2/info and derives the token URL from it. Without
// grant credentials the lookup is deferred to the first UAA request.
type Config struct {
	// APIEndpoint: Cloud Controller URL, for example https://api.example.com.
	// A missing scheme defaults to https.
	APIEndpoint string
	// UAAEndpoint: UAA root used by the identity zone and user operations.
	// Discovered from /v2/info when empty.
	UAAEndpoint string

	// Authentication
	// ClientID: OAuth2 client id for the client credentials or password grant.
	ClientID string
	// ClientSecret: OAuth2 client secret used with ClientID.
	ClientSecret string
	// Username: account username for the OAuth2 password grant.
	Username string
	// Password: account password for the OAuth2 password grant.
	Password string
	// RefreshToken: optional refresh token used to renew access tokens.
	RefreshToken string
	// AccessToken: if set, used directly as a Bearer token.
	AccessToken string
	// TokenURL: full OAuth2 token endpoint.
	TokenURL string

	// Optional configurations
	// HTTPTimeout: per-exchange timeout of the underlying http.Client. Zero
	// leaves timeouts to the caller's context.
	HTTPTimeout time.Duration
	// RetryMax: retries for transient failures (>=500, 429, connection
	// errors). Zero, the default, disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and helpers.
	Logger Logger
	// SkipTLSVerify: skips TLS verification, only when CFV2_DEV_MODE is set.
	SkipTLSVerify bool
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Scheduler: execution context operations run on. Defaults to one
	// goroutine per operation, or a BoundedScheduler when
	// MaxConcurrentRequests is set.
	Scheduler Scheduler
	// MaxConcurrentRequests: bounds in-flight operations when Scheduler is nil.
	MaxConcurrentRequests int
	// Interceptors: optional request/response hooks run around every exchange.
	Interceptors *InterceptorChain
}

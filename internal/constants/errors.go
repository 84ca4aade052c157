package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIEndpointConfigured = errors.New("no API endpoint configured, use 'cfv2 login' first")
	ErrNotAuthenticated        = errors.New("not authenticated, use 'cfv2 login' first")
	ErrInvalidJWTFormat        = errors.New("invalid JWT format")
	ErrNoExpirationClaim       = errors.New("no expiration claim found")
)

// UAA errors.
var (
	ErrNoUAAEndpoint      = errors.New("no UAA endpoint configured and unable to discover it from /v2/info")
	ErrSSLOnlyInDev       = errors.New("skipSSL is only allowed in development environments (set CFV2_DEV_MODE=true)")
	ErrInfoRequestFailed  = errors.New("/v2/info request failed")
	ErrNoCredentials      = errors.New("no valid credentials available")
	ErrTokenRequestFailed = errors.New("token request failed")
)

// Collector errors.
var (
	ErrUnknownCursorStore = errors.New("unknown cursor store")
	ErrUnknownSink        = errors.New("unknown sink")
	ErrUnknownEventKind   = errors.New("unknown usage event kind")
)

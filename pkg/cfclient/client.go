package cfclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/internal/client"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
)

// Client gives access to every Cloud Controller v2 and UAA operation group.
type Client interface {
	Info() cfv2.Info
	ApplicationUsageEvents() cfv2.ApplicationUsageEvents
	ServiceUsageEvents() cfv2.ServiceUsageEvents
	ApplicationsV2() cfv2.ApplicationsV2
	Blobstores() cfv2.Blobstores
	Jobs() cfv2.Jobs
	Organizations() cfv2.Organizations
	Spaces() cfv2.Spaces
	IdentityZones() uaa.IdentityZones
	Users() uaa.Users
}

// New creates a client from config. When the UAA location is not configured
// it is discovered from /v2/info, and the reported API version is checked.
// config is not modified.
func New(ctx context.Context, config *cfapi.Config) (Client, error) {
	resolved, err := resolveConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	c, err := client.New(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithTokenManager is like New but authenticates every request with
// tokenManager instead of building one from the configured credentials.
func NewWithTokenManager(ctx context.Context, config *cfapi.Config, tokenManager auth.TokenManager) (Client, error) {
	resolved, err := resolveConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	c, err := client.NewWithTokenManager(resolved, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

func resolveConfig(ctx context.Context, config *cfapi.Config) (*cfapi.Config, error) {
	if config == nil {
		return nil, cfapi.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, cfapi.ErrAPIEndpointRequired
	}

	resolved := *config
	resolved.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	if resolved.UAAEndpoint != "" || resolved.TokenURL != "" || !needsAuth(&resolved) {
		return &resolved, nil
	}

	info, err := Discover(ctx, &resolved)
	if err != nil {
		return nil, fmt.Errorf("discovering UAA endpoint: %w", err)
	}

	if info.TokenEndpoint == "" {
		return nil, constants.ErrNoUAAEndpoint
	}

	resolved.UAAEndpoint = strings.TrimSuffix(info.TokenEndpoint, "/")
	resolved.TokenURL = resolved.UAAEndpoint + "/oauth/token"

	warnOnOldAPIVersion(resolved.Logger, info.APIVersion)

	return &resolved, nil
}

// NormalizeEndpoint trims a trailing slash and defaults the scheme to https.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// Discover fetches /v2/info without credentials.
func Discover(ctx context.Context, config *cfapi.Config) (*cfv2.GetInfoResponse, error) {
	discovery, err := client.New(&cfapi.Config{
		APIEndpoint:   NormalizeEndpoint(config.APIEndpoint),
		SkipTLSVerify: config.SkipTLSVerify,
		HTTPTimeout:   constants.ShortHTTPTimeout,
		UserAgent:     config.UserAgent,
		Logger:        config.Logger,
	})
	if err != nil {
		return nil, err
	}

	info, err := discovery.Info().Get(ctx, cfv2.GetInfoRequest{}).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInfoRequestFailed, err)
	}

	return info, nil
}

// IsSupportedAPIVersion reports whether version is at least the oldest v2 API
// version this client is tested against. Unparseable versions are reported
// as an error.
func IsSupportedAPIVersion(version string) (bool, error) {
	parsed, err := semver.ParseTolerant(version)
	if err != nil {
		return false, fmt.Errorf("parsing API version %q: %w", version, err)
	}

	return parsed.GTE(semver.MustParse(constants.MinimumV2APIVersion)), nil
}

func warnOnOldAPIVersion(logger cfapi.Logger, version string) {
	if logger == nil {
		return
	}

	supported, err := IsSupportedAPIVersion(version)

	switch {
	case err != nil:
		logger.Debug("could not parse Cloud Controller API version", map[string]interface{}{"error": err.Error()})
	case !supported:
		logger.Warn("Cloud Controller API version is older than the minimum supported version", map[string]interface{}{
			"api_version": version,
			"minimum":     constants.MinimumV2APIVersion,
		})
	}
}

// needsAuth reports whether config carries credentials that require a token
// endpoint.
func needsAuth(config *cfapi.Config) bool {
	return config.RefreshToken != "" ||
		(config.Username != "" && config.Password != "") ||
		(config.ClientID != "" && config.ClientSecret != "")
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (Client, error) {
	return New(ctx, &cfapi.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (Client, error) {
	return New(ctx, &cfapi.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using OAuth2 client credentials.
func NewWithClientCredentials(ctx context.Context, endpoint, clientID, clientSecret string) (Client, error) {
	return New(ctx, &cfapi.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithPassword creates a new client using username/password authentication.
// The password grant is issued to the cf CLI client.
func NewWithPassword(ctx context.Context, endpoint, username, password string) (Client, error) {
	return New(ctx, &cfapi.Config{
		APIEndpoint: endpoint,
		ClientID:    constants.DefaultCFClientID,
		Username:    username,
		Password:    password,
	})
}

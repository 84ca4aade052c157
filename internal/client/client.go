package client

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	cfhttp "github.com/fivetwenty-io/cfv2-client/internal/http"
	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired      = errors.New("API endpoint is required")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// DevModeEnv enables development-only settings such as skipping TLS
// verification.
const DevModeEnv = "CFV2_DEV_MODE"

// Client implements the v2 and UAA operation groups over two API roots.
type Client struct {
	tokenManager auth.TokenManager
	logger       cfapi.Logger
	v2           *rest.Executor
	uaa          *rest.Executor

	info                   *InfoClient
	applicationUsageEvents *ApplicationUsageEventsClient
	serviceUsageEvents     *ServiceUsageEventsClient
	applications           *ApplicationsClient
	blobstores             *BlobstoresClient
	jobs                   *JobsClient
	organizations          *OrganizationsClient
	spaces                 *SpacesClient
	identityZones          *IdentityZonesClient
	users                  *UsersClient
}

// New creates a client from config, choosing a token manager from the
// configured credentials.
func New(config *cfapi.Config) (*Client, error) {
	if config == nil || config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	httpClient, err := NewTransport(config)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(config, createTokenManager(config, httpClient))
}

// NewWithTokenManager creates a client that authenticates with tokenManager.
// A nil tokenManager sends unauthenticated requests.
func NewWithTokenManager(config *cfapi.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil || config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	httpClient, err := NewTransport(config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = cfapi.NoopLogger{}
	}

	scheduler := config.Scheduler
	if scheduler == nil && config.MaxConcurrentRequests > 0 {
		scheduler = cfapi.NewBoundedScheduler(int64(config.MaxConcurrentRequests))
	}

	opts := createHTTPClientOptions(config, logger, httpClient)

	cc := cfhttp.NewClient(config.APIEndpoint, tokenManager, opts...)

	var uaa rest.Doer

	switch {
	case config.UAAEndpoint != "":
		uaa = cfhttp.NewClient(config.UAAEndpoint, tokenManager, opts...)
	case config.TokenURL != "":
		uaa = cfhttp.NewClient(uaaRootFromTokenURL(getTokenURL(config)), tokenManager, opts...)
	default:
		uaa = newDiscoveringUAAClient(cc, tokenManager, opts)
	}

	client := &Client{
		tokenManager: tokenManager,
		logger:       logger,
		v2:           rest.NewExecutor(cc, scheduler),
		uaa:          rest.NewExecutor(uaa, scheduler),
	}

	client.initializeResourceClients()

	return client, nil
}

// NewTransport returns the http.Client used for API and token requests. TLS
// verification can only be skipped in development mode.
func NewTransport(config *cfapi.Config) (*http.Client, error) {
	httpClient := &http.Client{Timeout: config.HTTPTimeout}

	if config.SkipTLSVerify {
		if !IsDevelopmentEnvironment() {
			return nil, fmt.Errorf("%w (set %s=true)", cfapi.ErrSkipTLSOnlyInDev, DevModeEnv)
		}

		httpClient.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- guarded by development mode
		}
	}

	return httpClient, nil
}

// IsDevelopmentEnvironment reports whether CFV2_DEV_MODE is enabled.
func IsDevelopmentEnvironment() bool {
	devMode := os.Getenv(DevModeEnv)

	return devMode == "true" || devMode == "1"
}

// createTokenManager picks a token manager based on config. A lone access
// token is served as is; any other credential enables the UAA grants, seeded
// with the access token when one is set.
func createTokenManager(config *cfapi.Config, httpClient *http.Client) auth.TokenManager {
	hasGrant := config.RefreshToken != "" ||
		(config.Username != "" && config.Password != "") ||
		(config.ClientID != "" && config.ClientSecret != "")

	switch {
	case hasGrant:
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     getTokenURL(config),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Username:     config.Username,
			Password:     config.Password,
			RefreshToken: config.RefreshToken,
			AccessToken:  config.AccessToken,
			HTTPClient:   httpClient,
		})
	case config.AccessToken != "":
		return auth.NewStaticTokenManager(config.AccessToken)
	default:
		return nil
	}
}

// getTokenURL returns the token URL from config or derives it from the UAA
// endpoint.
func getTokenURL(config *cfapi.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	if config.UAAEndpoint != "" {
		return strings.TrimSuffix(config.UAAEndpoint, "/") + "/oauth/token"
	}

	return strings.TrimSuffix(config.APIEndpoint, "/") + "/oauth/token"
}

func uaaRootFromTokenURL(tokenURL string) string {
	return strings.TrimSuffix(strings.TrimSuffix(tokenURL, "/"), "/oauth/token")
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cfapi.Config, logger cfapi.Logger, httpClient *http.Client) []cfhttp.Option {
	httpOpts := []cfhttp.Option{
		cfhttp.WithLogger(logger),
		cfhttp.WithDebug(config.Debug),
		cfhttp.WithUserAgent(config.UserAgent),
		cfhttp.WithHTTPClient(httpClient),
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, cfhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	chain := cfapi.NewInterceptorChain()
	chain.AddRequestInterceptor(cfapi.RequestIDInterceptor())

	if config.Debug {
		chain.AddRequestInterceptor(cfapi.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(cfapi.LoggingResponseInterceptor(logger))
	}

	chain.Append(config.Interceptors)

	return append(httpOpts, cfhttp.WithInterceptors(chain))
}

func (c *Client) initializeResourceClients() {
	c.info = NewInfoClient(c.v2)
	c.applicationUsageEvents = NewApplicationUsageEventsClient(c.v2)
	c.serviceUsageEvents = NewServiceUsageEventsClient(c.v2)
	c.applications = NewApplicationsClient(c.v2)
	c.blobstores = NewBlobstoresClient(c.v2)
	c.jobs = NewJobsClient(c.v2)
	c.organizations = NewOrganizationsClient(c.v2)
	c.spaces = NewSpacesClient(c.v2)
	c.identityZones = NewIdentityZonesClient(c.uaa)
	c.users = NewUsersClient(c.uaa)
}

// TokenManager returns the token manager for this client.
func (c *Client) TokenManager() auth.TokenManager {
	return c.tokenManager
}

// Info returns the v2 info operations.
func (c *Client) Info() cfv2.Info {
	return c.info
}

// ApplicationUsageEvents returns the v2 app usage event operations.
func (c *Client) ApplicationUsageEvents() cfv2.ApplicationUsageEvents {
	return c.applicationUsageEvents
}

// ServiceUsageEvents returns the v2 service usage event operations.
func (c *Client) ServiceUsageEvents() cfv2.ServiceUsageEvents {
	return c.serviceUsageEvents
}

// ApplicationsV2 returns the v2 app operations.
func (c *Client) ApplicationsV2() cfv2.ApplicationsV2 {
	return c.applications
}

// Blobstores returns the v2 blobstore operations.
func (c *Client) Blobstores() cfv2.Blobstores {
	return c.blobstores
}

// Jobs returns the v2 job operations.
func (c *Client) Jobs() cfv2.Jobs {
	return c.jobs
}

// Organizations returns the v2 organization operations.
func (c *Client) Organizations() cfv2.Organizations {
	return c.organizations
}

// Spaces returns the v2 space operations.
func (c *Client) Spaces() cfv2.Spaces {
	return c.spaces
}

// IdentityZones returns the UAA identity zone operations.
func (c *Client) IdentityZones() uaa.IdentityZones {
	return c.identityZones
}

// Users returns the UAA user operations.
func (c *Client) Users() uaa.Users {
	return c.users
}

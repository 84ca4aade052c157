package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires API endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&cfapi.Config{})
		require.ErrorIs(t, err, ErrAPIEndpointRequired)

		_, err = New(nil)
		require.ErrorIs(t, err, ErrAPIEndpointRequired)
	})

	t.Run("no credentials sends unauthenticated requests", func(t *testing.T) {
		t.Parallel()

		client, err := New(&cfapi.Config{APIEndpoint: "https://api.example.com"})
		require.NoError(t, err)
		assert.Nil(t, client.TokenManager())
	})

	t.Run("access token alone is static", func(t *testing.T) {
		t.Parallel()

		client, err := New(&cfapi.Config{
			APIEndpoint: "https://api.example.com",
			AccessToken: "test-token",
		})
		require.NoError(t, err)
		assert.IsType(t, &auth.StaticTokenManager{}, client.TokenManager())
	})

	t.Run("client credentials use the UAA grants", func(t *testing.T) {
		t.Parallel()

		client, err := New(&cfapi.Config{
			APIEndpoint:  "https://api.example.com",
			TokenURL:     "https://uaa.example.com/oauth/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		assert.IsType(t, &auth.OAuth2TokenManager{}, client.TokenManager())
	})

	t.Run("access token with password keeps the grants", func(t *testing.T) {
		t.Parallel()

		client, err := New(&cfapi.Config{
			APIEndpoint: "https://api.example.com",
			AccessToken: "test-token",
			Username:    "user",
			Password:    "pass",
		})
		require.NoError(t, err)
		assert.IsType(t, &auth.OAuth2TokenManager{}, client.TokenManager())
	})
}

func TestNew_SkipTLSRequiresDevMode(t *testing.T) {
	t.Setenv(DevModeEnv, "")

	_, err := New(&cfapi.Config{APIEndpoint: "https://api.example.com", SkipTLSVerify: true})
	require.ErrorIs(t, err, cfapi.ErrSkipTLSOnlyInDev)

	t.Setenv(DevModeEnv, "true")

	client, err := New(&cfapi.Config{APIEndpoint: "https://api.example.com", SkipTLSVerify: true})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestGetTokenURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config cfapi.Config
		want   string
	}{
		{
			name:   "explicit",
			config: cfapi.Config{APIEndpoint: "https://api.example.com", TokenURL: "https://login.example.com/oauth/token"},
			want:   "https://login.example.com/oauth/token",
		},
		{
			name:   "from UAA endpoint",
			config: cfapi.Config{APIEndpoint: "https://api.example.com", UAAEndpoint: "https://uaa.example.com/"},
			want:   "https://uaa.example.com/oauth/token",
		},
		{
			name:   "fallback",
			config: cfapi.Config{APIEndpoint: "https://api.example.com"},
			want:   "https://api.example.com/oauth/token",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, getTokenURL(&tt.config))
		})
	}

	assert.Equal(t, "https://uaa.example.com", uaaRootFromTokenURL("https://uaa.example.com/oauth/token"))
}

func TestClient_RoutesUAAOperationsToUAAEndpoint(t *testing.T) {
	t.Parallel()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v2/"), r.URL.Path)
		writeJSON(t, w, http.StatusOK, `{"name":"test-name","api_version":"2.150.0"}`)
	}))
	t.Cleanup(api.Close)

	uaaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identity-zones", r.URL.Path)
		writeJSON(t, w, http.StatusOK, `[]`)
	}))
	t.Cleanup(uaaServer.Close)

	client, err := New(&cfapi.Config{APIEndpoint: api.URL, UAAEndpoint: uaaServer.URL})
	require.NoError(t, err)

	info, err := client.Info().Get(context.Background(), cfv2.GetInfoRequest{}).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.150.0", info.APIVersion)

	_, err = client.IdentityZones().List(context.Background(), uaa.ListIdentityZonesRequest{}).Await(context.Background())
	require.NoError(t, err)
}

func TestClient_SendsRequestIDAndToken(t *testing.T) {
	t.Parallel()

	var seen atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		seen.Store(r.Header.Get(cfapi.RequestIDHeader))
		writeJSON(t, w, http.StatusOK, `{}`)
	}))
	t.Cleanup(server.Close)

	var intercepted atomic.Int32

	chain := cfapi.NewInterceptorChain()
	chain.AddRequestInterceptor(func(_ context.Context, req *cfapi.Request) error {
		intercepted.Add(1)
		assert.NotEmpty(t, req.Headers.Get(cfapi.RequestIDHeader))

		return nil
	})

	client, err := New(&cfapi.Config{
		APIEndpoint:  server.URL,
		AccessToken:  "test-token",
		Interceptors: chain,
	})
	require.NoError(t, err)

	_, err = client.Info().Get(context.Background(), cfv2.GetInfoRequest{}).Await(context.Background())
	require.NoError(t, err)

	id, ok := seen.Load().(string)
	require.True(t, ok)

	parsed, err := uuid.FromString(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.V4, parsed.Version())
	assert.Equal(t, int32(1), intercepted.Load())
}

func TestClient_MaxConcurrentRequests(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32

	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}

		<-release
		writeJSON(t, w, http.StatusOK, `{}`)
	}))
	t.Cleanup(server.Close)

	client, err := New(&cfapi.Config{APIEndpoint: server.URL, MaxConcurrentRequests: 2})
	require.NoError(t, err)

	futures := make([]*cfapi.Future[cfv2.GetInfoResponse], 5)
	for i := range futures {
		futures[i] = client.Info().Get(context.Background(), cfv2.GetInfoRequest{})
	}

	require.Eventually(t, func() bool { return inFlight.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), inFlight.Load())

	close(release)

	for _, future := range futures {
		_, err := future.Await(context.Background())
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

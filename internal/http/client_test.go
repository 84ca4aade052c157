package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	cfhttp "github.com/fivetwenty-io/cfv2-client/internal/http"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/apps", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"guid": "app-guid", "name": "test-app"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := cfhttp.NewClient(server.URL, tokenManager)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/v2/apps",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "app-guid", result["guid"])
		assert.Equal(t, "test-app", result["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/apps", request.URL.Path)
			assert.Equal(t, "page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/v2/apps",
			Query:  url.Values{"page": []string{"2"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "test-app", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "POST",
			Path:   "/v2/apps",
			Body:   map[string]string{"name": "test-app"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)

			_, _ = writer.Write([]byte(`{"code":100004,"description":"The app could not be found: invalid","error_code":"CF-AppNotFound"}`))
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/v2/apps/invalid",
		}

		resp, err := client.Do(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		apiErr := &cfapi.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, 100004, apiErr.Code)
		assert.Equal(t, "CF-AppNotFound", apiErr.ErrorCode)
		assert.Equal(t, "CF-AppNotFound: The app could not be found: invalid", apiErr.Error())
		assert.True(t, cfapi.IsNotFound(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil)

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/v2/apps",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithLogger(logger), cfhttp.WithDebug(true))

		req := &cfhttp.Request{
			Method: "GET",
			Path:   "/v2/apps",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*cfhttp.Client, context.Context) (*cfhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *cfhttp.Client, ctx context.Context) (*cfhttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := cfhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := cfhttp.NewClient(server.URL, nil, cfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Should not retry
	})
}

type refreshingTokenManager struct {
	token     atomic.Value
	refreshes atomic.Int32
}

func (m *refreshingTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token.Load().(string), nil
}

func (m *refreshingTokenManager) RefreshToken(ctx context.Context) error {
	m.refreshes.Add(1)
	m.token.Store("fresh-token")

	return nil
}

func (m *refreshingTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token.Store(token)
}

func TestClient_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer fresh-token" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error":"invalid_token","error_description":"Token has expired"}`))

			return
		}

		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tokenManager := &refreshingTokenManager{}
	tokenManager.SetToken("stale-token", time.Time{})

	client := cfhttp.NewClient(server.URL, tokenManager)

	resp, err := client.Get(context.Background(), "/v2/info", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, int32(1), tokenManager.refreshes.Load())
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := cfhttp.NewClient(serverURL, nil)

	resp, err := client.Get(context.Background(), "/v2/info", nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	transportErr := &cfapi.TransportError{}
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "GET", transportErr.Method)
	assert.Equal(t, serverURL+"/v2/info", transportErr.URL)
}

func TestClient_RawQueryKeepsOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "results-per-page=10&after_guid=abc&order-direction=asc", request.URL.RawQuery)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := cfhttp.NewClient(server.URL, nil)

	_, err := client.Do(context.Background(), &cfhttp.Request{
		Method:   "GET",
		Path:     "/v2/app_usage_events",
		RawQuery: "results-per-page=10&after_guid=abc&order-direction=asc",
	})
	require.NoError(t, err)
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEmpty(t, request.Header.Get(cfapi.RequestIDHeader))
		assert.Equal(t, "tenant-a", request.Header.Get("X-Tenant"))
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var observed atomic.Int32

	chain := cfapi.NewInterceptorChain()
	chain.AddRequestInterceptor(cfapi.RequestIDInterceptor())
	chain.AddRequestInterceptor(cfapi.HeaderInterceptor(map[string]string{"X-Tenant": "tenant-a"}))
	chain.AddResponseInterceptor(func(ctx context.Context, req *cfapi.Request, resp *cfapi.Response) error {
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		observed.Add(1)

		return nil
	})

	client := cfhttp.NewClient(server.URL, nil, cfhttp.WithInterceptors(chain))

	_, err := client.Delete(context.Background(), "/v2/apps/app-guid")
	require.NoError(t, err)
	assert.Equal(t, int32(1), observed.Load())
}

func TestClient_RequestInterceptorFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	errBlocked := errors.New("blocked")

	chain := cfapi.NewInterceptorChain()
	chain.AddRequestInterceptor(func(ctx context.Context, req *cfapi.Request) error {
		return errBlocked
	})

	client := cfhttp.NewClient(server.URL, nil, cfhttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/v2/info", nil)
	require.ErrorIs(t, err, errBlocked)
	assert.Equal(t, int32(0), calls.Load())
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "cfv2-client"

// Client is the HTTP transport shared by all resource operations.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	userAgent    string
	logger       cfapi.Logger
	debug        bool
	interceptors *cfapi.InterceptorChain
}

// Request is a single API exchange.
type Request struct {
	Method string
	Path   string
	// Query is encoded when RawQuery is empty.
	Query url.Values
	// RawQuery is sent as is, preserving parameter order.
	RawQuery string
	// Body is sent as is when it is a []byte, otherwise JSON encoded.
	Body    any
	Headers map[string]string
}

// Response is the raw result of an exchange.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger cfapi.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables retries of transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout sets the per-exchange timeout. Zero leaves it to the context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors runs chain around every exchange.
func WithInterceptors(chain *cfapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL. A nil tokenManager sends
// unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    DefaultUserAgent,
		logger:       cfapi.NoopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.Logger = &leveledLogger{logger: client.logger}
	retryClient.RequestLogHook = client.logRetry

	return client
}

// BaseURL returns the root all request paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req. A non-2xx status returns the response together with a
// *cfapi.APIError. A 401 triggers one token refresh and a single resend.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, body)
	if err != nil && resp != nil && resp.StatusCode == http.StatusUnauthorized && c.tokenManager != nil {
		refreshErr := c.tokenManager.RefreshToken(ctx)
		if refreshErr != nil {
			c.logger.Warn("token refresh after 401 failed", map[string]interface{}{"error": refreshErr.Error()})

			return resp, err
		}

		return c.send(ctx, req, body)
	}

	return resp, err
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) send(ctx context.Context, req *Request, body []byte) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	intercepted := &cfapi.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
		Body:    body,
	}

	err = c.setHeaders(ctx, intercepted.Headers, req, body != nil)
	if err != nil {
		return nil, err
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, intercepted.Body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        fullURL,
			"request_id": httpReq.Header.Get(cfapi.RequestIDHeader),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &cfapi.TransportError{Method: req.Method, URL: fullURL, Err: err}
		c.afterResponse(ctx, intercepted, &cfapi.Response{Error: transportErr})

		return nil, transportErr
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		transportErr := &cfapi.TransportError{Method: req.Method, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}
		c.afterResponse(ctx, intercepted, &cfapi.Response{StatusCode: httpResp.StatusCode, Error: transportErr})

		return nil, transportErr
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
			"duration":    time.Since(start).String(),
		})
	}

	var apiErr error
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr = cfapi.ParseAPIError(resp.StatusCode, respBody)
	}

	c.afterResponse(ctx, intercepted, &cfapi.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       respBody,
		Error:      apiErr,
	})

	return resp, apiErr
}

func (c *Client) afterResponse(ctx context.Context, req *cfapi.Request, resp *cfapi.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *Client) setHeaders(ctx context.Context, headers http.Header, req *Request, hasBody bool) error {
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", c.userAgent)

	if hasBody {
		headers.Set("Content-Type", "application/json")
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting auth token: %w", err)
		}

		if token != "" {
			headers.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	return nil
}

func (c *Client) buildURL(req *Request) (string, error) {
	raw := req.Path
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = c.baseURL + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	switch {
	case req.RawQuery != "":
		parsed.RawQuery = req.RawQuery
	case len(req.Query) > 0:
		parsed.RawQuery = req.Query.Encode()
	}

	return parsed.String(), nil
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}

	c.logger.Warn("retrying request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.Redacted(),
		"attempt": attempt,
	})
}

func encodeBody(body any) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	case io.Reader:
		var buf bytes.Buffer

		_, err := buf.ReadFrom(typed)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}

		return buf.Bytes(), nil
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		return encoded, nil
	}
}

// leveledLogger bridges retryablehttp to cfapi.Logger. Debug output is
// dropped; the client logs each exchange itself.
type leveledLogger struct {
	logger cfapi.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(string, ...interface{}) {}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}

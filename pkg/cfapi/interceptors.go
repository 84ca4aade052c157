package cfapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// RequestIDHeader is the correlation header Cloud Controller and UAA log.
const RequestIDHeader = "X-Vcap-Request-Id"

const startTimeKey = "start_time"

// Request represents an HTTP request that can be intercepted.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// Append adds the interceptors of other after those already in the chain.
func (c *InterceptorChain) Append(other *InterceptorChain) {
	if other == nil {
		return
	}

	c.requestInterceptors = append(c.requestInterceptors, other.requestInterceptors...)
	c.responseInterceptors = append(c.responseInterceptors, other.responseInterceptors...)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method":     req.Method,
			"path":       req.Path,
			"request_id": req.Headers.Get(RequestIDHeader),
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// RequestIDInterceptor stamps each request with a fresh X-Vcap-Request-Id
// unless the caller already set one.
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		if req.Headers.Get(RequestIDHeader) != "" {
			return nil
		}

		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("generating request id: %w", err)
		}

		req.Headers.Set(RequestIDHeader, id.String())

		return nil
	}
}

// RequestMetrics records request counts and latencies in Prometheus.
type RequestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRequestMetrics creates the collectors and registers them with registerer.
func NewRequestMetrics(registerer prometheus.Registerer) (*RequestMetrics, error) {
	metrics := &RequestMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cfv2_client_requests_total",
			Help: "Requests sent to Cloud Controller and UAA, by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cfv2_client_request_duration_seconds",
			Help:    "Latency of requests sent to Cloud Controller and UAA.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, collector := range []prometheus.Collector{metrics.requests, metrics.duration} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering request metrics: %w", err)
		}
	}

	return metrics, nil
}

// RequestInterceptor records the request start time.
func (m *RequestMetrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[startTimeKey] = time.Now()

		return nil
	}
}

// ResponseInterceptor observes the outcome of the exchange. Transport
// failures are counted with code "error".
func (m *RequestMetrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		code := strconv.Itoa(resp.StatusCode)
		if resp.StatusCode == 0 {
			code = "error"
		}

		m.requests.WithLabelValues(req.Method, code).Inc()

		if startTime, ok := req.Metadata[startTimeKey].(time.Time); ok {
			m.duration.WithLabelValues(req.Method).Observe(time.Since(startTime).Seconds())
		}

		return nil
	}
}

// Install adds both metrics interceptors to chain.
func (m *RequestMetrics) Install(chain *InterceptorChain) {
	chain.AddRequestInterceptor(m.RequestInterceptor())
	chain.AddResponseInterceptor(m.ResponseInterceptor())
}

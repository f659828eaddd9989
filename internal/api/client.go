package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"SocialFlow/internal/backend"
	"SocialFlow/internal/credentials"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// DefaultErrorDetail is used when a failed response carries no usable detail
const DefaultErrorDetail = "An error occurred"

// RequestError is returned when the backend answers with a non-2xx status
type RequestError struct {
	Status int
	Detail string
	// Body is the raw response body
	Body []byte
}

func (e *RequestError) Error() string {
	return e.Detail
}

// IsUnauthorized reports whether the backend rejected the credentials
func (e *RequestError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TransportError wraps a failure to reach the backend at all
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to send request: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a 2xx response body cannot be decoded
type DecodeError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to unmarshal response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a network or transport failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Client is the SocialFlow backend API client
type Client struct {
	baseURL    string
	sameOrigin string
	httpClient *http.Client
	creds      credentials.Store
	logger     *slog.Logger
	tracer     trace.Tracer
	duration   metric.Float64Histogram
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSameOrigin sets the origin used when the base URL is empty
func WithSameOrigin(origin string) Option {
	return func(c *Client) {
		c.sameOrigin = strings.TrimRight(origin, "/")
	}
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTelemetry sets the tracer and meter used for request spans and durations
func WithTelemetry(tracer trace.Tracer, meter metric.Meter) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
		if meter != nil {
			if h, err := meter.Float64Histogram(
				"http.client.request.duration",
				metric.WithDescription("HTTP request duration in milliseconds"),
				metric.WithUnit("ms"),
			); err == nil {
				c.duration = h
			}
		}
	}
}

// NewClient creates a client for baseURL reading tokens from creds.
// An empty baseURL addresses the same-origin rewrite proxy.
func NewClient(baseURL string, creds credentials.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
		logger:     slog.Default(),
		tracer:     tracenoop.NewTracerProvider().Tracer("socialflow"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.duration == nil {
		c.duration, _ = metricnoop.NewMeterProvider().Meter("socialflow").Float64Histogram("http.client.request.duration")
	}
	return c
}

// BaseURL returns the configured base URL, possibly empty
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credentials returns the token store the client reads from
func (c *Client) Credentials() credentials.Store {
	return c.creds
}

// URL builds the absolute URL for path
func (c *Client) URL(path string) string {
	if c.baseURL == "" {
		return c.sameOrigin + path
	}
	return c.baseURL + path
}

type requestOptions struct {
	headers http.Header
	query   map[string]string
}

// RequestOption adjusts a single request
type RequestOption func(*requestOptions)

// WithHeader adds a caller header; caller headers win over defaults
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// WithQuery adds a query parameter
func WithQuery(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.query[key] = value
	}
}

// Request issues method path with an optional JSON body and decodes the
// JSON response into out. A non-2xx status yields a *RequestError and an
// undecodable 2xx body a *DecodeError.
func (c *Client) Request(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{headers: http.Header{}, query: map[string]string{}}
	for _, opt := range opts {
		opt(&ro)
	}

	ctx, span := c.tracer.Start(ctx, "api.request", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)

	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if len(ro.query) > 0 {
		q := req.URL.Query()
		for k, v := range ro.query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token, err := c.token(ctx); err != nil {
		return err
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range ro.headers {
		req.Header[key] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Warn("api request failed", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.duration.Record(ctx, float64(elapsed.Milliseconds()),
		metric.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.Int("http.response.status_code", resp.StatusCode),
		),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Status: resp.StatusCode, Detail: errorDetail(respBody), Body: respBody}
		span.SetStatus(codes.Error, reqErr.Detail)
		c.logger.Info("api request rejected",
			"method", method, "path", path, "status", resp.StatusCode, "detail", reqErr.Detail)
		return reqErr
	}

	c.logger.Debug("api request completed",
		"method", method, "path", path, "status", resp.StatusCode, "duration_ms", elapsed.Milliseconds())

	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &DecodeError{Status: resp.StatusCode, Body: respBody, Err: err}
	}
	return nil
}

// token returns the stored token, "" when none is stored
func (c *Client) token(ctx context.Context) (string, error) {
	if c.creds == nil {
		return "", nil
	}
	token, err := c.creds.Token(ctx)
	if errors.Is(err, credentials.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// errorDetail extracts the detail message of a failed response
func errorDetail(body []byte) string {
	var envelope backend.ErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return DefaultErrorDetail
	}
	if msg := envelope.Message(); msg != "" {
		return msg
	}
	return DefaultErrorDetail
}

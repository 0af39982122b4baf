package xts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
)

// maxResponseSize is the maximum allowed response size from the endpoint (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Config holds the endpoint settings.
type Config struct {
	// Endpoint is the single URL every envelope is posted to.
	Endpoint string
	// InfoBase is sent as _dbId when the endpoint serves several databases.
	InfoBase  string
	Timeout   time.Duration
	UserAgent string
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrConfigMissingEndpoint
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("xts: invalid endpoint %q", c.Endpoint)
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "erp-backoffice"
	}
	return nil
}

// Caller sends one envelope and decodes the answer into resp.
type Caller interface {
	Call(ctx context.Context, req Request, resp any) error
}

// Client posts envelopes to the endpoint. It never retries: a failed call
// is reported to the caller as is.
type Client struct {
	config     Config
	httpClient *http.Client
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records call metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the configured endpoint.
func NewClient(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// Call posts req and decodes the matching response into resp. resp may be nil.
func (c *Client) Call(ctx context.Context, req Request, resp any) (err error) {
	requestType := req.RequestType()
	req.setHeader(requestType, c.config.InfoBase)

	ctx, span := telemetry.StartSpan(ctx, "xts."+requestType,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute("xts.request_type", requestType),
	)
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.metrics.observe(requestType, elapsed.Seconds(), err)
		if err != nil {
			telemetry.RecordError(span, err)
			logger.L(ctx).Warn("xts call failed",
				zap.String("type", requestType),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
		} else {
			logger.L(ctx).Debug("xts call",
				zap.String("type", requestType),
				zap.Duration("elapsed", elapsed),
			)
		}
		span.End()
	}()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("xts: failed to encode %s: %w", requestType, err)
	}

	raw, err := c.doRequest(ctx, req, body)
	if err != nil {
		return err
	}
	return decodeResponse(raw, req.ResponseType(), resp)
}

func (c *Client) doRequest(ctx context.Context, req Request, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("xts: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	if signIn, ok := req.(*SignInRequest); ok {
		httpReq.SetBasicAuth(signIn.UserName, signIn.Password)
	} else if creds, ok := credentialsFrom(ctx); ok {
		httpReq.SetBasicAuth(creds.user, creds.password)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}
	if len(raw) > maxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrInvalidResponse, maxResponseSize)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode >= 400:
		remote := &RemoteError{StatusCode: resp.StatusCode}
		var e ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			remote.Code = e.ErrorCode
			remote.Description = e.Description
		}
		return nil, remote
	}
	return raw, nil
}

// decodeResponse checks the type tag and unmarshals raw into resp.
func decodeResponse(raw []byte, want string, resp any) error {
	var head struct {
		Type string `json:"_type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if head.Type == TypeErrorResponse {
		var e ErrorResponse
		if err := json.Unmarshal(raw, &e); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return &RemoteError{StatusCode: http.StatusOK, Code: e.ErrorCode, Description: e.Description}
	}
	if head.Type == "" {
		return fmt.Errorf("%w: missing _type, expected %s", ErrInvalidResponse, want)
	}
	if head.Type != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidResponse, want, head.Type)
	}
	if resp == nil {
		return nil
	}
	if err := json.Unmarshal(raw, resp); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// Ping checks that the endpoint answers HTTP at all. Any status counts as
// reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.config.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("xts: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

// IsUnavailable reports whether err means the endpoint could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

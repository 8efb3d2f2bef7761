package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/metrics"
)

// maxAttempts bounds how often one call reaches the backend: the original
// attempt plus a single retry after a token refresh.
const maxAttempts = 2

type Config struct {
	BaseURL     string
	RefreshPath string
	Timeout     time.Duration
	Headers     map[string]string
}

// Request describes one backend call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

type Response struct {
	StatusCode int
	Header     http.Header
	Cookies    []*http.Cookie
	Body       []byte
}

func (r *Response) decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(r.Body, v)
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client talks to the HMHY backend on behalf of browser sessions. It attaches
// the session's bearer token and transparently refreshes it once on 401.
type Client struct {
	baseURL     string
	refreshPath string
	headers     http.Header
	httpClient  *http.Client
	logger      *zap.Logger
	metrics     *metrics.AppMetrics
	refreshes   singleflight.Group
}

func New(cfg Config, logger *zap.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL: %w", err)
	}
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = "/new-token"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	headers := make(http.Header, len(cfg.Headers)+1)
	headers.Set("Accept", "application/json")
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	metrics.InitAppMetrics()

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		refreshPath: cfg.RefreshPath,
		headers:     headers,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: metrics.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends req for the session behind creds. A nil creds sends the call
// anonymously (login endpoints) and never triggers a refresh.
//
// Any answer other than 401 is handed back unchanged: 2xx as a Response,
// everything else as an *APIError next to the Response. A 401 on the first
// attempt refreshes the token and re-issues the call exactly once; a failed
// refresh revokes the session and returns ErrSessionExpired.
func (c *Client) Do(ctx context.Context, creds Credentials, req Request) (*Response, error) {
	token := ""
	if creds != nil {
		token = creds.Token()
	}
	return c.do(ctx, creds, req, token, 0)
}

func (c *Client) do(ctx context.Context, creds Credentials, req Request, token string, attempt int) (*Response, error) {
	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("API call",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Int("attempt", attempt))

	if resp.StatusCode != http.StatusUnauthorized {
		if resp.StatusCode >= 400 {
			return resp, newAPIError(resp)
		}
		return resp, nil
	}

	if creds == nil || attempt+1 >= maxAttempts {
		return resp, newAPIError(resp)
	}

	fresh, err := c.refresh(ctx, creds)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, creds, req, fresh, attempt+1)
}

type refreshResult struct {
	token   string
	cookies []*http.Cookie
}

// refresh exchanges the session's credentials for a new token. Concurrent
// refreshes of the same session share one backend call.
func (c *Client) refresh(ctx context.Context, creds Credentials) (string, error) {
	v, err, shared := c.refreshes.Do(creds.Key(), func() (any, error) {
		return c.requestToken(context.WithoutCancel(ctx), creds.Cookies())
	})
	if err != nil {
		c.metrics.TokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		c.logger.Warn("Token refresh failed, ending session",
			zap.String("session", creds.Key()),
			zap.Error(err))

		if revokeErr := creds.Revoke(ctx); revokeErr != nil {
			c.logger.Error("Failed to clear session after refresh failure",
				zap.String("session", creds.Key()),
				zap.Error(revokeErr))
		}
		c.metrics.ForcedLogoutsTotal.Add(ctx, 1)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	res := v.(refreshResult)
	if err := creds.Rotate(ctx, res.token, res.cookies); err != nil {
		return "", fmt.Errorf("persist refreshed token: %w", err)
	}

	c.metrics.TokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "refreshed")))
	c.logger.Info("Access token refreshed",
		zap.String("session", creds.Key()),
		zap.Bool("shared", shared))
	return res.token, nil
}

func (c *Client) requestToken(ctx context.Context, cookies []*http.Cookie) (refreshResult, error) {
	resp, err := c.send(ctx, Request{Method: http.MethodPost, Path: c.refreshPath, Header: cookieHeader(cookies)}, "")
	if err != nil {
		return refreshResult{}, err
	}
	if resp.StatusCode >= 300 {
		return refreshResult{}, newAPIError(resp)
	}

	var env Envelope[struct {
		Token string `json:"token"`
	}]
	if err := resp.decode(&env); err != nil {
		return refreshResult{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if env.Data.Token == "" {
		return refreshResult{}, ErrEmptyToken
	}
	return refreshResult{token: env.Data.Token, cookies: resp.Cookies}, nil
}

func (c *Client) send(ctx context.Context, req Request, token string) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.url(req.Path, req.Query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, values := range c.headers {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	for k, values := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start).Seconds()
	if err != nil {
		c.record(ctx, req, 0, duration)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.record(ctx, req, httpResp.StatusCode, duration)

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Cookies:    httpResp.Cookies(),
		Body:       raw,
	}, nil
}

func (c *Client) record(ctx context.Context, req Request, status int, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.Int("status", status),
	)
	c.metrics.APIRequestsTotal.Add(ctx, 1, attrs)
	c.metrics.APIRequestDuration.Record(ctx, seconds, attrs)
}

// Endpoint is the absolute backend URL of path, for browser redirects such as OAuth.
func (c *Client) Endpoint(path string) string {
	return c.url(path, nil)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func cookieHeader(cookies []*http.Cookie) http.Header {
	if len(cookies) == 0 {
		return nil
	}
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		parts = append(parts, (&http.Cookie{Name: ck.Name, Value: ck.Value}).String())
	}
	return http.Header{"Cookie": []string{strings.Join(parts, "; ")}}
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package catalog is the REST client for the shop catalog: product listing
// and bulk status updates.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/ManuGH/statusbot/internal/platform/httpx"
	"github.com/ManuGH/statusbot/internal/resilience"
	"github.com/ManuGH/statusbot/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout          = 10 * time.Second
	defaultBreakerThreshold = 5
	defaultBreakerReset     = 30 * time.Second
	defaultUserAgent        = "statusbot"
	maxResponseBytes        = 8 << 20
)

// Config configures the catalog client.
type Config struct {
	BaseURL string
	Token   string
	ShopID  string
	Timeout time.Duration

	BreakerThreshold int
	BreakerReset     time.Duration

	// RateLimit bounds outgoing requests per second. Zero disables it.
	RateLimit      rate.Limit
	RateLimitBurst int
	UserAgent      string
}

// Client talks to the catalog REST API. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	token     string
	shopID    string
	userAgent string
	http      *http.Client
	breaker   *resilience.CircuitBreaker
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the traced default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New validates cfg and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("catalog: base URL scheme must be http or https, got %q", base.Scheme)
	}
	if strings.TrimSpace(cfg.ShopID) == "" {
		return nil, errors.New("catalog: shop id is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BreakerThreshold <= 0 {
		cfg.BreakerThreshold = defaultBreakerThreshold
	}
	if cfg.BreakerReset <= 0 {
		cfg.BreakerReset = defaultBreakerReset
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaultUserAgent
	}

	c := &Client{
		base:      base,
		token:     cfg.Token,
		shopID:    strings.TrimSpace(cfg.ShopID),
		userAgent: cfg.UserAgent,
		http:      httpx.NewTracedClient(cfg.Timeout, "catalog"),
		breaker: resilience.NewCircuitBreaker("catalog", cfg.BreakerThreshold, cfg.BreakerReset,
			resilience.WithFailureClassifier(countsAgainstBreaker)),
		logger: log.WithComponent("catalog"),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ShopID returns the configured shop.
func (c *Client) ShopID() string { return c.shopID }

// BreakerState exposes the catalog circuit breaker state for health checks.
func (c *Client) BreakerState() resilience.State { return c.breaker.State() }

type request struct {
	op         string
	method     string
	path       string
	body       any
	out        any
	productIDs []string
}

// Get issues a GET for path (relative to the base URL) and decodes the JSON
// response into out.
func (c *Client) Get(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, request{op: op, method: http.MethodGet, path: path, out: out})
}

// Put issues a PUT with a JSON body. out may be nil.
func (c *Client) Put(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, request{op: op, method: http.MethodPut, path: path, body: body, out: out})
}

func (c *Client) do(ctx context.Context, r request) error {
	ctx, span := telemetry.Tracer("statusbot.catalog").Start(ctx, "catalog."+r.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(telemetry.CatalogAttributes(r.op, c.shopID, r.productIDs...)...),
	)
	defer span.End()

	err := c.wait(ctx, r.op)
	if err == nil {
		err = c.breaker.Execute(func() error { return c.roundTrip(ctx, r) })
		if errors.Is(err, resilience.ErrCircuitOpen) {
			err = &APIError{Sentinel: ErrUnavailable, Operation: r.op, Err: err}
		}
	}
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, r.op+" failed")
	span.SetAttributes(telemetry.ErrorAttributes(err)...)

	class := errorClass(err)
	metrics.IncCatalogError(r.op, class)
	logger := log.WithContext(ctx, c.logger)
	logger.Warn().
		Err(err).
		Str(log.FieldEvent, "catalog.request_failed").
		Str(log.FieldOperation, r.op).
		Str("class", class).
		Msg("catalog request failed")
	return err
}

func (c *Client) wait(ctx context.Context, op string) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Sentinel: ErrUnavailable, Operation: op, Err: err}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, r request) error {
	start := time.Now()
	status := 0
	defer func() { metrics.ObserveCatalogRequest(r.op, status, time.Since(start)) }()

	var payload io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("catalog: %s: encode body: %w", r.op, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.base.JoinPath(r.path).String(), payload)
	if err != nil {
		return fmt.Errorf("catalog: %s: build request: %w", r.op, err)
	}
	c.applyHeaders(req, r.body != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Sentinel: transportSentinel(err), Operation: r.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &APIError{Sentinel: transportSentinel(err), Operation: r.op, Status: status, Err: err}
	}

	if status < 200 || status > 299 {
		return &APIError{
			Sentinel:  statusSentinel(status),
			Operation: r.op,
			Status:    status,
			Body:      excerpt(body),
			Message:   apiMessage(body),
		}
	}

	if r.out == nil {
		return nil
	}
	if err := json.Unmarshal(body, r.out); err != nil {
		return &APIError{Sentinel: ErrBadResponse, Operation: r.op, Status: status, Body: excerpt(body), Err: err}
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func transportSentinel(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrUnavailable
}

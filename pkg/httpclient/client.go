// Package httpclient is a client for the DEX REST API served under /api/v1.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/pkg/ratelimit"
)

// APIPath is the versioned prefix of every endpoint.
const APIPath = "/api/v1/"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// Breaker thresholds: the breaker opens once more than MaxFailingRequests
// requests were seen in the current window and at least FailingRatio of
// them failed.
var (
	MaxFailingRequests = 10
	FailingRatio       = 0.6
)

// maxBodySize caps response bodies read into memory.
const maxBodySize = 8 << 20

// Client talks to one DEX API host.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.Limiter
	breaker *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLimiter replaces the rate limiter. Namespaces that the limiter does
// not know yet are registered with the documented budgets.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithBreaker replaces the circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// New creates a client for baseURL, e.g. https://testnet-dex.binance.org.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = ratelimit.New(ratelimit.DefaultRate)
	}
	registerLimits(c.limiter)
	if c.breaker == nil {
		c.breaker = NewCircuitBreaker("dex-api")
	}
	return c
}

// BaseURL returns the host the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// NewCircuitBreaker returns a breaker that trips when the failure ratio of
// transport errors and 5xx responses crosses FailingRatio.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxFailingRequests && ratio >= FailingRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.HTTP.Warn().Str("breaker", name).Msg("API unreachable, pausing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.HTTP.Info().Str("breaker", name).Msg("Probing API again")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.HTTP.Info().Str("breaker", name).Msg("API reachable again")
			}
		},
	})
}

type rawResponse struct {
	status int
	body   []byte
}

// do sends one request. Transport failures and 5xx responses count against
// the breaker; 4xx responses are the caller's fault and do not.
func (c *Client) do(ctx context.Context, namespace, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	if err := c.limiter.Limit(ctx, namespace); err != nil {
		return fmt.Errorf("rate limit %s: %w", namespace, err)
	}

	u := c.baseURL + APIPath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	start := time.Now()
	res, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, newAPIError(resp.StatusCode, data)
		}
		return &rawResponse{status: resp.StatusCode, body: data}, nil
	})

	ev := log.HTTP.Debug().Str("method", method).Str("path", path).Dur("took", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("API request failed")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	raw := res.(*rawResponse)
	ev.Int("status", raw.status).Msg("API request")
	if raw.status < 200 || raw.status >= 300 {
		return newAPIError(raw.status, raw.body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw.body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, namespace, path string, query url.Values, out interface{}) error {
	return c.do(ctx, namespace, http.MethodGet, path, query, nil, "", out)
}

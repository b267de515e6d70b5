package raidhelper

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

	"golang.org/x/time/rate"
)

const (
	// Domain is the host serving Raid-Helper event payloads.
	Domain = "raid-helper.dev"

	// DefaultTimeout bounds a single event download.
	DefaultTimeout = 10 * time.Second

	// DefaultRate is the number of requests per second sent to the API.
	DefaultRate = rate.Limit(5)

	maxConnsPerHost = 10
	maxBodySize     = 5 << 20
)

// Fetcher fetches a Raid-Helper event (or a test double).
type Fetcher interface {
	FetchEvent(ctx context.Context, rawURL string) (*Event, error)
}

// ClientOption defines a function signature for Client's functional options.
type ClientOption func(*Client)

// WithHTTPClient replaces the default pooled *http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithLimiter uses the given limiter instead of the built-in one.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(client *Client) {
		if l != nil {
			client.limiter = l
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		if d > 0 {
			client.timeout = d
		}
	}
}

// WithDomain changes the accepted API host.
func WithDomain(domain string) ClientOption {
	return func(client *Client) {
		if domain != "" {
			client.domain = domain
		}
	}
}

// Client downloads event payloads from the Raid-Helper API.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	domain     string
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a Client with the given options.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxConnsPerHost:     maxConnsPerHost,
				MaxIdleConnsPerHost: maxConnsPerHost,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(DefaultRate, 1),
		timeout: DefaultTimeout,
		domain:  Domain,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

// ValidateURL checks that raw is an http(s) URL on the Raid-Helper domain.
func ValidateURL(raw string) (*url.URL, error) {
	return validateURL(raw, Domain)
}

func validateURL(raw string, domain string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return nil, fmt.Errorf("%w: host %q is not %s", ErrInvalidURL, host, domain)
	}

	return u, nil
}

// FetchEvent downloads and decodes the event payload at rawURL.
func (c *Client) FetchEvent(ctx context.Context, rawURL string) (*Event, error) {
	u, err := validateURL(rawURL, c.domain)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize))
	var event Event
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after event object", ErrMalformedPayload)
	}

	return &event, nil
}

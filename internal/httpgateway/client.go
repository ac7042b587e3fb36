// Package httpgateway performs outbound HTTP requests and normalizes the
// responses into port.HTTPResponse.
package httpgateway

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"idsync/internal/config"
	"idsync/internal/port"
)

// Client is a port.HTTPGateway backed by net/http. It never retries.
type Client struct {
	httpClient   *http.Client
	maxBodyBytes int64
}

// NewClient creates a gateway bounded by the identity provider timeouts.
// Timeout covers the whole exchange including reading the body;
// ConnectTimeout covers dialing and the TLS handshake.
func NewClient(cfg config.IdentityConfig) *Client {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout
	transport.ResponseHeaderTimeout = cfg.Timeout

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Do sends req and returns the normalized response. Bodies longer than the
// configured limit are truncated.
func (c *Client) Do(ctx context.Context, req port.HTTPRequest) (*port.HTTPResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", req.Method, err)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, httpReq.URL.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &port.HTTPResponse{
		Status:  resp.StatusCode,
		Body:    body,
		Headers: resp.Header.Clone(),
	}, nil
}

// Compile-time check.
var _ port.HTTPGateway = (*Client)(nil)

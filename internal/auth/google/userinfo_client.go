package google

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

	"idsync/internal/domain"
	"idsync/internal/logger"
	"idsync/internal/port"
)

const (
	providerName = "google"

	// DefaultUserinfoURL is Google's OpenID Connect userinfo endpoint.
	DefaultUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

	// maxLoggedBody bounds the upstream body written to server logs.
	maxLoggedBody = 512
)

type userinfoResponse struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// UserinfoClient verifies access tokens by calling the userinfo endpoint.
type UserinfoClient struct {
	userinfoURL string
	gateway     port.HTTPGateway
}

// NewUserinfoClient creates a client for the given userinfo endpoint.
func NewUserinfoClient(userinfoURL string, gateway port.HTTPGateway) *UserinfoClient {
	if userinfoURL == "" {
		userinfoURL = DefaultUserinfoURL
	}
	return &UserinfoClient{userinfoURL: userinfoURL, gateway: gateway}
}

// FetchIdentity exchanges token for the claims of the subject it was issued to.
func (c *UserinfoClient) FetchIdentity(ctx context.Context, token string) (*port.IdentityClaim, error) {
	resp, err := c.gateway.Do(ctx, port.HTTPRequest{
		Method: http.MethodGet,
		URL:    c.userinfoURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
		},
	})
	if err != nil {
		slog.DebugContext(ctx, "userinfo request failed",
			logger.Component("google.userinfo"), logger.Error(err))
		return nil, domain.NewFailure(domain.FailureNetworkError, err)
	}

	if !resp.IsSuccess() {
		failure := classifyStatus(resp.Status, resp.Body)
		slog.DebugContext(ctx, "userinfo returned error status",
			logger.Component("google.userinfo"),
			slog.Int("status", resp.Status),
			slog.String("kind", string(failure.Kind)))
		return nil, failure
	}

	info, err := decodeUserinfo(resp.Body)
	if err != nil {
		slog.DebugContext(ctx, "userinfo payload rejected",
			logger.Component("google.userinfo"), logger.Error(err))
		return nil, domain.NewFailure(domain.FailureMalformedPayload, err)
	}

	if strings.TrimSpace(info.Sub) == "" {
		slog.DebugContext(ctx, "userinfo payload has no subject",
			logger.Component("google.userinfo"),
			slog.Bool("name_present", info.Name != ""),
			slog.Bool("email_present", info.Email != ""))
		return nil, domain.NewFailure(domain.FailureMissingSubject, nil)
	}

	return &port.IdentityClaim{
		Subject: info.Sub,
		Name:    info.Name,
		Email:   info.Email,
		Picture: info.Picture,
	}, nil
}

// Provider returns the provider identifier.
func (c *UserinfoClient) Provider() string {
	return providerName
}

// decodeUserinfo accepts exactly one JSON object and nothing after it.
func decodeUserinfo(body []byte) (*userinfoResponse, error) {
	var info *userinfoResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	if info == nil {
		return nil, errors.New("userinfo payload is null")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after userinfo object")
	}
	return info, nil
}

// classifyStatus maps a non-2xx status to a failure. The cause carries the
// status and a truncated body for the server logs only.
func classifyStatus(status int, body []byte) *domain.Failure {
	cause := fmt.Errorf("userinfo status %d: %s", status, truncate(body, maxLoggedBody))
	switch {
	case status == http.StatusUnauthorized:
		return domain.NewFailure(domain.FailureAuthenticationRejected, cause)
	case status == http.StatusForbidden:
		f := domain.NewFailure(domain.FailureAuthenticationRejected, cause)
		f.Message = "access forbidden"
		return f
	case status >= 400 && status <= 499:
		return domain.NewFailure(domain.FailureUpstreamClientError, cause)
	case status >= 500 && status <= 599:
		return domain.NewFailure(domain.FailureUpstreamServerError, cause)
	default:
		return domain.NewFailure(domain.FailureUnexpectedUpstreamStatus, cause)
	}
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}

// Compile-time check.
var _ port.IdentityProvider = (*UserinfoClient)(nil)

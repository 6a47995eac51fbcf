// Package ssoclient is the HTTP client downstream applications use to
// verify session credentials against the central auth server.
package ssoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTimeout = 8 * time.Second

// Client verifies session credentials by calling the central server's
// /verify-token endpoint. Calls are bounded by the configured timeout
// and never retried; a transport failure surfaces as
// UpstreamUnavailable so the caller can fall back.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type verifyRequest struct {
	Token string `json:"token"`
	App   string `json:"app,omitempty"`
}

type verifyResponse struct {
	Valid   bool                  `json:"valid"`
	User    *entity.IdentityClaim `json:"user,omitempty"`
	Error   string                `json:"error,omitempty"`
	Message string                `json:"message,omitempty"`
}

// NewClient is the constructor for Client.
func NewClient(cfg *config.Config, logger *slog.Logger) (service.SSOVerifier, error) {
	if cfg.SSOClient == nil || cfg.SSOClient.BaseURL == "" {
		return nil, errors.New("ssoClient.baseUrl must be configured")
	}

	timeout := cfg.SSOClient.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.SSOClient.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Verify forwards the credential and app name to the central server.
// Cancelling ctx abandons the outbound call; the server performs no
// writes for verification, so abandonment has no side effects.
func (c *Client) Verify(ctx context.Context, token, appName string) (*entity.IdentityClaim, error) {
	payload, err := json.Marshal(verifyRequest{Token: token, App: appName})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode verify request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify-token", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build verify request")
	}
	req.Header.Set("Content-Type", "application/json")
	if appName != "" {
		req.Header.Set("x-app-name", appName)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("central auth server unreachable", slog.Any("error", err))

		return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage("malformed response from central auth server")
	}

	if result.Valid && result.User != nil {
		return result.User, nil
	}

	// A denial with a reason is a policy rejection; a bare invalid
	// response means the credential itself did not verify.
	if result.Error != "" {
		return nil, domainerrors.ErrAccessDenied.WithDetails(result.Message)
	}

	return nil, domainerrors.ErrInvalidCredential.WrapMessage("credential rejected by central auth server")
}

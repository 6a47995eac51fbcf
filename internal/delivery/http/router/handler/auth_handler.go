// Package handler contains the HTTP handlers for the gateway.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"passport/config"
	"passport/internal/delivery/http/appname"
	"passport/internal/delivery/http/cookie"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the SSO protocol endpoints.
type AuthHandler struct {
	uc     usecase.SSOUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.SSOUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

type googleExchangeRequest struct {
	Token string `json:"token"`
	App   string `json:"app"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
	App   string `json:"app"`
}

type exchangeResponse struct {
	Token string                `json:"token"`
	User  *entity.IdentityClaim `json:"user"`
}

type checkAuthResponse struct {
	LoggedIn bool                  `json:"logged_in"`
	User     *entity.IdentityClaim `json:"user,omitempty"`
}

type verifyTokenResponse struct {
	Valid   bool                  `json:"valid"`
	User    *entity.IdentityClaim `json:"user,omitempty"`
	Error   string                `json:"error,omitempty"`
	Message string                `json:"message,omitempty"`
}

// GoogleExchange handles POST /auth/google: identity token in, session
// cookie pair and credential out.
func (h *AuthHandler) GoogleExchange(c echo.Context) error {
	var input googleExchangeRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, domainerrors.Response{Error: "Invalid request body"})
	}
	if input.Token == "" {
		return c.JSON(http.StatusBadRequest, domainerrors.Response{Error: "Token is required"})
	}

	app := appname.FromRequest(c, input.App, h.cfg.SSO.RootDomain)

	output, err := h.uc.ExchangeGoogleToken(c.Request().Context(), &usecase.ExchangeInput{
		IDToken: input.Token,
		AppName: app,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAccessDenied):
			return c.JSON(http.StatusForbidden, domainerrors.Response{
				Error:   domainerrors.ErrAccessDenied.Message(),
				Message: detailsOf(err),
			})
		case errors.Is(err, domainerrors.ErrUpstreamUnavailable):
			return c.JSON(http.StatusUnauthorized, domainerrors.Response{
				Error: domainerrors.ErrUpstreamUnavailable.Message(),
			})
		default:
			return c.JSON(http.StatusUnauthorized, domainerrors.Response{
				Error: "Invalid authentication token",
			})
		}
	}

	if err := cookie.SetSessionPair(c, h.cfg.SSO.RootDomain, output.Token, output.User, h.cfg.SSO.SessionTTL); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, exchangeResponse{
		Token: output.Token,
		User:  output.User,
	})
}

// CheckAuth handles GET /check-auth. A missing or invalid credential is
// a normal negative answer, never an HTTP error.
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	token := sessionToken(c)
	app := appname.FromRequest(c, "", h.cfg.SSO.RootDomain)

	output := h.uc.CheckAuth(c.Request().Context(), token, app)

	return c.JSON(http.StatusOK, checkAuthResponse{
		LoggedIn: output.LoggedIn,
		User:     output.User,
	})
}

// VerifyToken handles POST /verify-token, the endpoint downstream
// backends call to re-validate a session credential for their app.
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var input verifyTokenRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusForbidden, verifyTokenResponse{Valid: false})
	}
	if input.Token == "" {
		input.Token = sessionToken(c)
	}

	app := appname.FromRequest(c, input.App, h.cfg.SSO.RootDomain)

	output, err := h.uc.VerifyToken(c.Request().Context(), &usecase.VerifyInput{
		Token:   input.Token,
		AppName: app,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccessDenied) {
			return c.JSON(http.StatusForbidden, verifyTokenResponse{
				Valid:   false,
				Error:   domainerrors.ErrAccessDenied.Message(),
				Message: detailsOf(err),
			})
		}

		// Invalid signature, expiry and absence all collapse to a bare
		// negative result.
		return c.JSON(http.StatusForbidden, verifyTokenResponse{Valid: false})
	}

	return c.JSON(http.StatusOK, verifyTokenResponse{
		Valid: true,
		User:  output.User,
	})
}

// Logout handles POST /logout by expiring the cookie pair. Logging out
// twice yields the same response.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie.ClearSessionPair(c, h.cfg.SSO.RootDomain)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// HealthCheck is the liveness probe.
func (h *AuthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   h.cfg.Env.ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// sessionToken extracts the session credential from the credential
// cookie, falling back to the Authorization bearer header.
func sessionToken(c echo.Context) string {
	if ck, err := c.Cookie(cookie.TokenCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:]
	}

	return ""
}

// detailsOf pulls the human-readable denial reason off a domain error.
func detailsOf(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Details() != "" {
		return appErr.Details()
	}

	return ""
}

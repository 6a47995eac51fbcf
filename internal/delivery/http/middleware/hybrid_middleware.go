package middleware

import (
	"net/http"
	"strings"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/appname"
	"passport/internal/delivery/http/cookie"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HybridAuthMiddleware guards downstream routes, accepting either the
// SSO session credential or the legacy local credential.
type HybridAuthMiddleware struct {
	uc  usecase.HybridUsecase
	cfg *config.Config
}

// NewHybridAuthMiddleware is the constructor for HybridAuthMiddleware.
func NewHybridAuthMiddleware(uc usecase.HybridUsecase, cfg *config.Config) *HybridAuthMiddleware {
	return &HybridAuthMiddleware{uc: uc, cfg: cfg}
}

// Authenticate extracts every credential candidate from the request and
// runs the hybrid reconciliation. On success the normalized caller
// identity is stored on the context for handlers.
func (m *HybridAuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &usecase.HybridAuthInput{
			SessionToken: cookieValue(c, cookie.TokenCookieName),
			LegacyToken:  cookieValue(c, cookie.LegacyCookieName),
			BearerToken:  bearerToken(c),
			AppName:      appname.FromRequest(c, "", m.cfg.SSO.RootDomain),
		}

		output, err := m.uc.Authenticate(c.Request().Context(), input)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}

		c.Set(string(deliverycontext.KeyCaller), output.Caller)

		return next(c)
	}
}

// CallerFromContext returns the identity the Authenticate middleware
// stored, or nil when the route was not guarded.
func CallerFromContext(c echo.Context) *entity.CallerIdentity {
	caller, _ := c.Get(string(deliverycontext.KeyCaller)).(*entity.CallerIdentity)

	return caller
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return ck.Value
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}

	return token
}

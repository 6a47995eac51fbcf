// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler          *handler.AuthHandler
	HybridHandler        *handler.HybridHandler
	HybridAuthMiddleware *middleware.HybridAuthMiddleware
	RequestIDMiddleware  *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler          *handler.AuthHandler
	hybridHandler        *handler.HybridHandler
	hybridAuthMiddleware *middleware.HybridAuthMiddleware
	requestIDMiddleware  *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:          params.AuthHandler,
		hybridHandler:        params.HybridHandler,
		hybridAuthMiddleware: params.HybridAuthMiddleware,
		requestIDMiddleware:  params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Liveness probe
	e.GET("/health", r.authHandler.HealthCheck)

	// SSO protocol surface
	e.POST("/auth/google", r.authHandler.GoogleExchange)
	e.GET("/check-auth", r.authHandler.CheckAuth)
	e.POST("/verify-token", r.authHandler.VerifyToken)
	e.POST("/logout", r.authHandler.Logout)

	// Legacy local login, kept alive through the migration window
	e.POST("/auth/login", r.hybridHandler.Login)

	// Downstream-app surface guarded by the hybrid reconciler
	apiGroup := e.Group("/api")
	apiGroup.Use(r.hybridAuthMiddleware.Authenticate)
	{
		apiGroup.GET("/profile", r.hybridHandler.Profile)
	}
}

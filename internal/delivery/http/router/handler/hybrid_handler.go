package handler

import (
	"log/slog"
	"net/http"

	"passport/internal/delivery/http/middleware"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HybridHandler exposes the downstream-app surface: the legacy local
// login and a caller-identity endpoint guarded by the hybrid middleware.
type HybridHandler struct {
	uc     usecase.HybridUsecase
	logger *slog.Logger
}

// NewHybridHandler is the constructor for HybridHandler, injected by Fx.
func NewHybridHandler(uc usecase.HybridUsecase, logger *slog.Logger) *HybridHandler {
	return &HybridHandler{uc: uc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login handles the legacy email/password login and mints a legacy
// credential for the local keyspace.
func (h *HybridHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, domainerrors.Response{Error: "Invalid login input"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, domainerrors.Response{Error: "Email and password are required"})
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return c.JSON(http.StatusUnauthorized, domainerrors.Response{
			Error: domainerrors.ErrInvalidLoginCredentials.Message(),
		})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: output.Token,
		User: loginUser{
			ID:    output.User.ID.String(),
			Email: output.User.Email,
			Name:  output.User.Name,
			Role:  output.User.Role,
		},
	})
}

// Profile returns the normalized caller identity the hybrid middleware
// resolved. It exists so downstream apps have a reference consumer of
// the reconciliation contract.
func (h *HybridHandler) Profile(c echo.Context) error {
	caller := middleware.CallerFromContext(c)
	if caller == nil {
		return c.JSON(http.StatusUnauthorized, domainerrors.Response{Error: "Authentication required"})
	}

	return c.JSON(http.StatusOK, caller)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"minibank/internal/logging"
	"minibank/internal/service"
)

// HeaderAdminKey carries the administrator key that authorizes banker
// registration.
const HeaderAdminKey = "X-Admin-Key"

const msgInvalidFormat = "invalid email or password format"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsBanker bool   `json:"isBanker"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is the body of most non-page responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Param X-Admin-Key header string false "Administrator key, required when isBanker is true"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 409 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if err := c.Validate(&req); err != nil {
		h.log.Warn(ctx, "register validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidFormat)
	}

	user, err := h.authService.Register(ctx, req.Email, req.Password, req.IsBanker, c.Request().Header.Get(HeaderAdminKey))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrBankerNotPermitted):
			h.log.Warn(ctx, "banker self-registration refused", "email", req.Email)
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		h.log.Error(ctx, "register user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}

	h.log.Info(ctx, "user registered", "user_id", user.ID, "banker", user.IsBanker)
	return c.JSON(http.StatusOK, MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if err := c.Validate(&req); err != nil {
		h.log.Warn(ctx, "login validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidFormat)
	}

	accessToken, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		h.log.Error(ctx, "login", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error logging in")
	}

	return c.JSON(http.StatusOK, LoginResponse{AccessToken: accessToken})
}

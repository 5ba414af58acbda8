package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"minibank/internal/logging"
)

const claimsContextKey = "user"

const (
	msgTokenMissing = "Access token missing"
	msgTokenInvalid = "Invalid access token"
)

// Middleware returns the gate for protected routes. It expects
// "Authorization: Bearer <token>" and answers 401 when no token is present
// and 403 when the token does not verify. Valid claims are stored in the
// echo context, see ClaimsFrom.
func Middleware(jwtService *JWTService, log logging.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var parseErr *echojwt.TokenParsingError
			if errors.As(err, &parseErr) {
				log.Warn(c.Request().Context(), "access token rejected",
					"error", parseErr.Err.Error(),
					"path", c.Path(),
				)
				return echo.NewHTTPError(http.StatusForbidden, msgTokenInvalid)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgTokenMissing)
		},
	})
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

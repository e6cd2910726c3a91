package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bigbear/lessons-api/internal/core/ports"
)

// ClaimsKey is the echo.Context key holding the verified domain.Claims.
const ClaimsKey = "claims"

const bearerPrefix = "bearer "

// Auth verifies the session token and injects its claims into the context.
// The Authorization header carries the raw token; a "Bearer " prefix is
// tolerated. Expired and forged tokens get the same response.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(token) > len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
				token = strings.TrimSpace(token[len(bearerPrefix):])
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

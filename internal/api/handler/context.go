package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bigbear/lessons-api/internal/api/middleware"
	"github.com/bigbear/lessons-api/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. A missing
// subject means the route was mounted without the middleware.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(domain.Claims)
	if !ok || claims.UserID == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

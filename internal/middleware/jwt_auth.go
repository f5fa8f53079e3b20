package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/token"
)

// ClaimsContextKey is where verified token claims live on the echo context.
const ClaimsContextKey = "claims"

// JWTAuthMiddleware checks for a valid bearer token and stores the verified
// claims on the context.
func JWTAuthMiddleware(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ClaimsContextKey, claims)

			return next(c)
		}
	}
}

// RequireModerator rejects callers whose verified role is not moderator.
// Must run after JWTAuthMiddleware.
func RequireModerator() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*token.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if claims.Role != models.RoleModerator {
				return echo.NewHTTPError(http.StatusForbidden, "Moderator role required")
			}
			return next(c)
		}
	}
}

package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/awave-app/backend/internal/middleware"
	"github.com/awave-app/backend/internal/token"
)

// getClaims returns the verified token claims set by the JWT middleware, or
// nil when the request is unauthenticated.
func getClaims(c echo.Context) *token.Claims {
	claims, ok := c.Get(middleware.ClaimsContextKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

// parseUintParam parses a numeric path parameter
func parseUintParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parsePagination reads limit/offset query parameters with sane bounds
func parsePagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if limit < 1 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

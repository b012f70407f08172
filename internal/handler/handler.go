package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"gymapi/internal/auth"
	"gymapi/internal/authz"
	apperrors "gymapi/internal/errors"
)

// PageResponse is the fixed-size page envelope returned by list endpoints.
type PageResponse struct {
	Count   int64       `json:"count"`
	Page    int         `json:"page"`
	Results interface{} `json:"results"`
}

// callerFromContext extracts the authenticated caller identity placed in the
// context by the JWT middleware.
func callerFromContext(c echo.Context) (authz.Caller, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return authz.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return authz.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims.Caller(), nil
}

// domainError converts a service error into an echo HTTP error using the
// shared taxonomy.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func queryUint(c echo.Context, name string) *uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

func queryBool(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

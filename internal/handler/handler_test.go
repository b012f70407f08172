package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"gymapi/internal/auth"
	"gymapi/internal/authz"
)

func TestCallerFromContext(t *testing.T) {
	e := echo.New()

	t.Run("extracts caller from token claims", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("user", &jwt.Token{
			Claims: &auth.Claims{UserID: 7, Username: "trainer1", Role: authz.RoleTrainer},
			Valid:  true,
		})

		caller, err := callerFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, authz.Caller{ID: 7, Role: authz.RoleTrainer}, caller)
	})

	t.Run("missing token", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		_, err := callerFromContext(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

// A token issued by JWTService must pass the echo-jwt middleware configured
// the way the router configures it, and the handler must recover the caller.
func TestJWTMiddlewareCallerRoundTrip(t *testing.T) {
	const secret = "test-secret"

	jwtService := auth.NewJWTService(secret)
	token, err := jwtService.GenerateAccessToken(7, "trainer1", "trainer1@gym.local", authz.RoleTrainer)
	assert.NoError(t, err)

	mw := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	var caller authz.Caller
	h := mw(func(c echo.Context) error {
		var err error
		caller, err = callerFromContext(c)
		if err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()

	assert.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, authz.Caller{ID: 7, Role: authz.RoleTrainer}, caller)
}

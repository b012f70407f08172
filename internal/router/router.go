package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gymapi/internal/auth"
	"gymapi/internal/config"
	"gymapi/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	machineHandler *handler.MachineHandler,
	planHandler *handler.PlanHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: credential exchange only. Everything else requires a token.
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/auth/register", authHandler.Register)

	// User routes
	secured.GET("/users", userHandler.List)
	secured.POST("/users", userHandler.Create)
	secured.GET("/users/me", userHandler.Me)
	secured.GET("/users/trainee-choices", userHandler.TraineeChoices)
	secured.GET("/users/:id", userHandler.Get)
	secured.PUT("/users/:id", userHandler.Update)
	secured.PATCH("/users/:id", userHandler.Update)
	secured.DELETE("/users/:id", userHandler.Delete)
	secured.POST("/users/:id/activate", userHandler.Activate)
	secured.POST("/users/:id/deactivate", userHandler.Deactivate)

	// Machine routes
	secured.GET("/machines", machineHandler.List)
	secured.POST("/machines", machineHandler.Create)
	secured.GET("/machines/:id", machineHandler.Get)
	secured.PUT("/machines/:id", machineHandler.Update)
	secured.PATCH("/machines/:id", machineHandler.Update)
	secured.DELETE("/machines/:id", machineHandler.Delete)

	// Plan routes
	secured.GET("/plans", planHandler.List)
	secured.POST("/plans", planHandler.Create)
	secured.GET("/plans/:id", planHandler.Get)
	secured.PUT("/plans/:id", planHandler.Update)
	secured.PATCH("/plans/:id", planHandler.Update)
	secured.DELETE("/plans/:id", planHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

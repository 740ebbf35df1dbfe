package http

import (
	"log/slog"
	"net/http"

	"paquexpress/internal/adapters/in/http/openapi"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// APIPrefix is the common prefix of all API routes.
const APIPrefix = "/api/v1"

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Server    *Server
	Sessions  SessionResolver
	Validator *openapi.Validator
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// NewRouter builds the echo instance with middleware and all routes.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{"*"},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/openapi.json", func(c echo.Context) error {
		doc, err := openapi.JSON()
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	validate := ValidateRequest(cfg.Validator)
	auth := BearerAuth(cfg.Sessions)

	api := e.Group(APIPrefix)
	api.GET("/status", cfg.Server.GetStatus)
	api.POST("/auth/login", cfg.Server.Login, validate)
	api.GET("/packages/assigned", cfg.Server.ListAssignedPackages, auth, validate)
	api.POST("/packages/register_delivery", cfg.Server.RegisterDelivery, auth, validate)

	return e
}

package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/usersapp/accounts-api/docs"
	"github.com/usersapp/accounts-api/internal/api/handler"
	"github.com/usersapp/accounts-api/internal/api/middleware"
	"github.com/usersapp/accounts-api/internal/core/ports"
	"github.com/usersapp/accounts-api/internal/core/usecase"
)

// Dependencies is everything the HTTP layer needs. It is assembled in
// cmd/api and passed in explicitly.
type Dependencies struct {
	Handlers usecase.Handlers
	Tokens   ports.TokenValidator

	// LoginLimiter throttles POST /api/auth/login. Nil disables throttling.
	LoginLimiter middleware.Limiter
	LoginLimit   int
	LoginWindow  time.Duration

	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Pinger

	CORSOrigins []string

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	registerMetrics(e, deps.Registry)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Handlers)
	userHandler := handler.NewUserHandler(deps.Handlers)
	authMiddleware := middleware.Auth(deps.Tokens)
	loginLimit := middleware.RateLimit(deps.LoginLimiter, deps.LoginLimit, deps.LoginWindow, middleware.KeyByIP(), deps.Logger)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login, loginLimit)
	auth.POST("/register", authHandler.Register)

	// --- User routes ---
	users := api.Group("/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List, authMiddleware)
	users.DELETE("/:id", userHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func registerMetrics(e *echo.Echo, reg *prometheus.Registry) {
	mwCfg := echoprometheus.MiddlewareConfig{
		Namespace: "accounts",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	hCfg := echoprometheus.HandlerConfig{}
	if reg != nil {
		mwCfg.Registerer = reg
		hCfg.Gatherer = reg
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(mwCfg))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(hCfg))
}

// requestLogger writes one zerolog line per request, tagged with the
// request id set by the RequestID middleware.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

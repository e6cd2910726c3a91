package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bigbear/lessons-api/docs"
	"github.com/bigbear/lessons-api/internal/api/handler"
	"github.com/bigbear/lessons-api/internal/api/middleware"
	"github.com/bigbear/lessons-api/internal/core/ports"
)

// Dependencies groups everything the HTTP layer needs.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Progress ports.ProgressService
	Lessons  ports.LessonService
	Tokens   ports.TokenVerifier

	// Checks are run by GET /health/ready, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger

	// Metrics receives the HTTP metrics and backs GET /metrics. Nil means
	// the Prometheus default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "lessons",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	progressHandler := handler.NewProgressHandler(deps.Progress)
	lessonHandler := handler.NewLessonHandler(deps.Lessons)
	healthHandler := handler.NewHealthHandler(deps.Checks, deps.Logger)
	requireToken := middleware.Auth(deps.Tokens)

	// --- Probes and tooling (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Users and progress ---
	e.GET("/users", userHandler.List, requireToken)
	e.POST("/update-progress", progressHandler.Update, requireToken)

	// --- Lesson catalog ---
	e.GET("/lessons", lessonHandler.List)
	e.GET("/lessons/:level/:book/:lesson", lessonHandler.Get)

	return e
}

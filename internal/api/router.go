package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/eventrsvp/rsvp-api/docs"
	"github.com/eventrsvp/rsvp-api/internal/api/handler"
	"github.com/eventrsvp/rsvp-api/internal/api/middleware"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

const defaultBodyLimit = "8M"

// Dependencies holds everything the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Events   ports.EventService
	RSVPs    ports.RSVPService
	Admin    ports.AdminService
	Images   ports.ImageStore
	Tokens   ports.TokenVerifier
	Accounts middleware.AccountFinder

	// HealthChecks are pinged by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.HealthCheck

	Log        zerolog.Logger
	CORSOrigin string
	BodyLimit  string

	// Nil values fall back to the Prometheus default registry.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.CORSOrigin)))
	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "rsvp_api",
		Registerer: deps.MetricsRegisterer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	eventHandler := handler.NewEventHandler(deps.Events)
	rsvpHandler := handler.NewRSVPHandler(deps.RSVPs)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	uploadHandler := handler.NewUploadHandler(deps.Images)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	authMiddleware := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RequireAdmin(deps.Accounts)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/me", authHandler.Me, authMiddleware)

	// --- Event routes ---
	api.GET("/events", eventHandler.List)
	api.POST("/events", eventHandler.Create)
	api.GET("/events/:id", eventHandler.Get)
	api.PUT("/events/:id", eventHandler.Update)
	api.GET("/uploads/:id", uploadHandler.Get)

	// --- RSVP routes ---
	api.POST("/events/:id/rsvp", rsvpHandler.RSVP, authMiddleware)
	api.GET("/events/:id/attendees", rsvpHandler.Attendees)
	api.GET("/events/:id/rsvp-summary", rsvpHandler.Summary)

	// --- Admin routes (auth + admin role) ---
	admin := api.Group("/admin", authMiddleware, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/events", adminHandler.ListEvents)
	admin.DELETE("/events/:id", adminHandler.DeleteEvent)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.MetricsGatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsConfig(origin string) echomiddleware.CORSConfig {
	if origin == "" {
		origin = "*"
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: []string{origin},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

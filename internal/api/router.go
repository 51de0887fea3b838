package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/eventsphere/registration-api/internal/api/handler"
	"github.com/eventsphere/registration-api/internal/api/middleware"
	"github.com/eventsphere/registration-api/internal/core/ports"
	"github.com/eventsphere/registration-api/internal/infrastructure/http/handlers"

	_ "github.com/eventsphere/registration-api/docs"
)

const metricsSubsystem = "eventsphere_http"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log           zerolog.Logger
	JWTSecret     string
	APIPrefix     string
	CORSOrigins   []string
	Auth          ports.AuthService
	Events        ports.EventService
	Registrations ports.RegistrationService
	// Mongo is required for readiness; Redis may be nil when the lock is disabled.
	Mongo handlers.Pinger
	Redis handlers.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem: metricsSubsystem,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health")
		},
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Auth)
	eventHandler := handler.NewEventHandler(deps.Events)
	registrationHandler := handler.NewRegistrationHandler(deps.Registrations)

	g := e.Group(deps.APIPrefix)

	auth := g.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	g.GET("/users/me", userHandler.Me, middleware.Auth(deps.JWTSecret))

	// Event mutations authorize by organizer string, not by session.
	events := g.Group("/events")
	events.POST("", eventHandler.Create)
	events.GET("", eventHandler.List)
	events.GET("/mine", eventHandler.ListMine)
	events.GET("/registered", eventHandler.ListRegistered)
	events.GET("/:id", eventHandler.Get)
	events.PUT("/:id", eventHandler.Update)
	events.PUT("/:id/close", eventHandler.Close)
	events.DELETE("/:id", eventHandler.Delete)
	events.POST("/:id/register", registrationHandler.Register)
	events.GET("/:id/registrations", eventHandler.ListRegistrations)
	events.DELETE("/:id/registrations/:registrationId", eventHandler.RemoveRegistration)

	registrations := g.Group("/registrations")
	registrations.GET("", registrationHandler.ListByUser)
	registrations.GET("/:id", registrationHandler.Get)
	registrations.DELETE("", registrationHandler.Cancel)

	return e
}

func corsOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
